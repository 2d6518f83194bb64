package service

import "sync"
import "time"

import "google.golang.org/grpc"

import "github.com/sirgallo/rdoc/pkg/config"
import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/httpservice"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/replica"


type ReplicaServiceOpts struct {
	Config *config.ReplicaConfig
	ConnPoolOpts connpool.ConnectionPoolOpts

	// in process directory, when nil the directory is reached over grpc at Config.DirectoryAddr
	Directory replica.DirectoryClient
}

/*
	Replica Service
		one replica and the modules around it: the grpc replica service, the optional http gateway and the
		connection pools used to reach the directory and the peers
*/

type ReplicaService struct {
	Config *config.ReplicaConfig
	Replica *replica.Replica
	HTTPService *httpservice.HTTPService

	DirectoryPool *connpool.ConnectionPool
	PeerPool *connpool.ConnectionPool

	grpcServer *grpc.Server
	errors chan error
	forwarders sync.WaitGroup

	Log clog.CustomLog
}


const NAME = "Service"
const ShutdownTimeout = 5 * time.Second

