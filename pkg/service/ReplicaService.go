package service

import "context"
import "net"

import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/directory"
import "github.com/sirgallo/rdoc/pkg/httpservice"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/replica"
import "github.com/sirgallo/rdoc/pkg/system"
import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== Replica Service


/*
	initialize the replica and link its modules together
		1.) one connection pool for the directory, one for the peers
		2.) directory client, in process or grpc
		3.) replica with its data directory under the configured base
		4.) http gateway if a port is configured
*/

func NewReplicaService(opts *ReplicaServiceOpts) (*ReplicaService, error) {
	cfg := opts.Config

	svc := &ReplicaService{
		Config: cfg,
		DirectoryPool: connpool.NewConnectionPool(opts.ConnPoolOpts),
		PeerPool: connpool.NewConnectionPool(opts.ConnPoolOpts),
		errors: make(chan error, 2),
		Log: *clog.NewCustomLog(NAME + system.ServerName(cfg.Port)),
	}

	dirClient := opts.Directory
	if dirClient == nil { dirClient = directory.NewClient(cfg.DirectoryAddr, svc.DirectoryPool) }

	r, replicaErr := replica.NewReplica(&replica.ReplicaOpts{
		Port: cfg.Port,
		DataDir: replica.DataDirFor(cfg.DataDir, cfg.Port),
		Directory: dirClient,
		Transport: replica.NewGRPCTransport(cfg.Host, svc.PeerPool),
		PollAttempts: cfg.PollAttempts,
		PollInterval: cfg.PollInterval,
		RPCTimeout: cfg.RPCTimeout,
	})

	if replicaErr != nil { return nil, replicaErr }
	svc.Replica = r

	if cfg.HTTPPort > 0 {
		svc.HTTPService = httpservice.NewHTTPService(&httpservice.HTTPServiceOpts{ Port: cfg.HTTPPort, Operations: r })
	}

	return svc, nil
}

/*
	Start Replica Service:
		1.) log the disk stats of the data directory
		2.) open the grpc listener and serve the replica service
		3.) open the http listener and serve the gateway, when enabled

	serve failures after startup are delivered on Errors()
*/

func (svc *ReplicaService) StartReplicaService() error {
	svc.InitStats()

	grpcListener, grpcErr := net.Listen("tcp", utils.Address(svc.Config.Host, svc.Config.Port))
	if grpcErr != nil { return grpcErr }

	var httpListener net.Listener
	if svc.HTTPService != nil {
		var httpErr error
		httpListener, httpErr = net.Listen("tcp", utils.Address(svc.Config.Host, svc.Config.HTTPPort))
		if httpErr != nil {
			grpcListener.Close()
			return httpErr
		}
	}

	srv, grpcServeErr := svc.Replica.StartServer(grpcListener)
	svc.grpcServer = srv
	svc.forwarders.Add(1)
	go svc.forward(grpcServeErr)

	if httpListener != nil {
		svc.forwarders.Add(1)
		go svc.forward(svc.HTTPService.StartHTTPService(httpListener))
	}

	svc.Log.Info("replica service started on", grpcListener.Addr().String())
	return nil
}

// closed once the service is stopped
func (svc *ReplicaService) Errors() <-chan error {
	return svc.errors
}

/*
	Stop Replica Service:
		1.) stop the http gateway and the grpc server, giving in flight calls the shutdown timeout to finish
		2.) persist the user and document directories
		3.) close every pooled connection
*/

func (svc *ReplicaService) StopReplicaService(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()

	if svc.HTTPService != nil {
		shutdownErr := svc.HTTPService.Shutdown(ctx)
		if shutdownErr != nil { svc.Log.Warn("http gateway shutdown:", shutdownErr.Error()) }
	}

	if svc.grpcServer != nil { svc.stopGRPC(ctx) }

	svc.forwarders.Wait()
	close(svc.errors)

	persistErr := svc.Replica.Persist()
	if persistErr != nil { svc.Log.Error("error persisting directories:", persistErr.Error()) }

	svc.PeerPool.CloseAll()
	svc.DirectoryPool.CloseAll()

	svc.Log.Info("replica service stopped")
	return persistErr
}
