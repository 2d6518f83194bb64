package cluster

import "context"
import "fmt"

import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/replica"
import "github.com/sirgallo/rdoc/pkg/service"
import "github.com/sirgallo/rdoc/pkg/system"


//=========================================== Cluster


func NewCluster(opts ClusterOpts) *Cluster {
	return &Cluster{
		opts: opts,
		services: make(map[int]*service.ReplicaService),
		Log: *clog.NewCustomLog(NAME),
	}
}

// replicas launched afterwards reach the directory in process
func (c *Cluster) AttachDirectory(dir replica.DirectoryClient) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.directory = dir
}

/*
	Launch:
		start the replica service bound to the port, the replica loads whatever its store holds
		a port that is already running is left alone
*/

func (c *Cluster) Launch(port int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, running := c.services[port]; running { return nil }

	cfg := c.opts.Replica
	cfg.Port = port
	cfg.HTTPPort = 0
	if c.opts.HTTPOffset > 0 { cfg.HTTPPort = port + c.opts.HTTPOffset }

	svc, newErr := service.NewReplicaService(&service.ReplicaServiceOpts{
		Config: &cfg,
		ConnPoolOpts: c.opts.ConnPoolOpts,
		Directory: c.directory,
	})

	if newErr != nil { return fmt.Errorf("creating %s: %w", system.ServerName(port), newErr) }

	startErr := svc.StartReplicaService()
	if startErr != nil { return fmt.Errorf("starting %s: %w", system.ServerName(port), startErr) }

	c.services[port] = svc
	go c.watch(port, svc)

	c.Log.Info(system.ServerName(port), "launched")
	return nil
}

/*
	Shutdown:
		stop the replica service, which persists its directories, a port that is not running is a no op
*/

func (c *Cluster) Shutdown(port int) error {
	c.mutex.Lock()
	svc, running := c.services[port]
	delete(c.services, port)
	c.mutex.Unlock()

	if ! running { return nil }

	stopErr := svc.StopReplicaService(context.Background())
	c.Log.Info(system.ServerName(port), "shut down")

	return stopErr
}

func (c *Cluster) ShutdownAll() {
	for _, port := range c.Running() {
		shutdownErr := c.Shutdown(port)
		if shutdownErr != nil { c.Log.Error("error shutting down", system.ServerName(port), ":", shutdownErr.Error()) }
	}
}

func (c *Cluster) Running() []int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	ports := make([]int, 0, len(c.services))
	for port := range c.services { ports = append(ports, port) }

	return ports
}

func (c *Cluster) Service(port int) (*service.ReplicaService, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	svc, ok := c.services[port]
	return svc, ok
}

func (c *Cluster) watch(port int, svc *service.ReplicaService) {
	for serveErr := range svc.Errors() {
		c.Log.Error(system.ServerName(port), "serve error:", serveErr.Error())
	}
}
