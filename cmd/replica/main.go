package main

import "context"
import "os"
import "os/signal"
import "syscall"

import "github.com/sirgallo/rdoc/pkg/config"
import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/service"


const NAME = "Main"
var Log = clog.NewCustomLog(NAME)


// a single replica reaching the directory over grpc
func main() {
	cfg, cfgErr := config.LoadReplicaConfig(os.Args[0], os.Args[1:], os.Getenv)
	if cfgErr != nil { Log.Fatal("invalid configuration:", cfgErr.Error()) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, svcErr := service.NewReplicaService(&service.ReplicaServiceOpts{
		Config: cfg,
		ConnPoolOpts: connpool.ConnectionPoolOpts{ MaxConn: connpool.DefaultMaxConn },
	})

	if svcErr != nil { Log.Fatal("unable to create replica:", svcErr.Error()) }

	startErr := svc.StartReplicaService()
	if startErr != nil { Log.Fatal("unable to start replica:", startErr.Error()) }

	select {
		case <-ctx.Done():
			Log.Info("shutting down")
		case err := <-svc.Errors():
			Log.Error("replica stopped:", err.Error())
	}

	svc.StopReplicaService(context.Background())
}
