package main

import "context"
import "net"
import "net/http"
import "os"
import "os/signal"
import "syscall"

import "github.com/sirgallo/rdoc/pkg/cluster"
import "github.com/sirgallo/rdoc/pkg/config"
import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/directory"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/replica"
import "github.com/sirgallo/rdoc/pkg/utils"


const NAME = "Main"
var Log = clog.NewCustomLog(NAME)


/*
	directory binary:
		1.) serve the directory service over grpc
		2.) serve the event feed over http, publishing to redis when configured
		3.) launch every configured replica in process, all start EMPTY
		4.) on SIGINT/SIGTERM stop every replica, which persists its directories
*/

func main() {
	cfg, cfgErr := config.LoadDirectoryConfig(os.Args[0], os.Args[1:], os.Getenv)
	if cfgErr != nil { Log.Fatal("invalid configuration:", cfgErr.Error()) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolOpts := connpool.ConnectionPoolOpts{ MaxConn: connpool.DefaultMaxConn }

	cl := cluster.NewCluster(cluster.ClusterOpts{
		Replica: config.ReplicaConfig{
			Host: cfg.Host,
			DirectoryAddr: utils.Address(cfg.Host, cfg.Port),
			DataDir: cfg.DataDir,
			PollAttempts: replica.DefaultPollAttempts,
			PollInterval: replica.DefaultPollInterval,
			RPCTimeout: replica.DefaultRPCTimeout,
		},
		HTTPOffset: cfg.HTTPOffset,
		ConnPoolOpts: poolOpts,
	})

	publishers := []directory.EventPublisher{}
	if cfg.RedisAddr != "" {
		redisPub, redisErr := directory.NewRedisPublisher(ctx, cfg.RedisAddr)
		if redisErr != nil { Log.Fatal("unable to reach redis:", redisErr.Error()) }

		defer redisPub.Close()
		publishers = append(publishers, redisPub)
	}

	helperPool := connpool.NewConnectionPool(poolOpts)
	defer helperPool.CloseAll()

	dir := directory.NewDirectory(&directory.DirectoryOpts{
		Ports: cfg.Peers,
		Launcher: cl,
		Helper: directory.NewGRPCRecoveryHelper(cfg.Host, helperPool),
		Publishers: publishers,
	})

	cl.AttachDirectory(dir)

	listener, listenErr := net.Listen("tcp", utils.Address(cfg.Host, cfg.Port))
	if listenErr != nil { Log.Fatal("unable to listen:", listenErr.Error()) }

	srv, serveErr := directory.NewDirectoryServer(dir).StartServer(listener)

	var eventServer *http.Server
	if cfg.EventsPort > 0 {
		eventServer = &http.Server{
			Addr: utils.Address(cfg.Host, cfg.EventsPort),
			Handler: directory.NewEventServer(dir).Router(),
		}

		go func() {
			Log.Info("event feed listening on", eventServer.Addr)

			httpErr := eventServer.ListenAndServe()
			if httpErr != nil && httpErr != http.ErrServerClosed { Log.Error("event feed stopped:", httpErr.Error()) }
		}()
	}

	for _, port := range cfg.Peers {
		launchErr := cl.Launch(port)
		if launchErr != nil { Log.Fatal("unable to launch replica:", launchErr.Error()) }
	}

	Log.Info("cluster up with peers", cfg.Peers)

	select {
		case <-ctx.Done():
			Log.Info("shutting down")
		case err := <-serveErr:
			if err != nil { Log.Error("directory server stopped:", err.Error()) }
	}

	cl.ShutdownAll()

	if eventServer != nil { eventServer.Shutdown(context.Background()) }
	srv.GracefulStop()
}
