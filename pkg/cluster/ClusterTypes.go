package cluster

import "sync"

import "github.com/sirgallo/rdoc/pkg/config"
import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/replica"
import "github.com/sirgallo/rdoc/pkg/service"


type ClusterOpts struct {
	// template for every replica, Port and HTTPPort are filled in per launch
	Replica config.ReplicaConfig
	HTTPOffset int
	ConnPoolOpts connpool.ConnectionPoolOpts
}

/*
	Cluster
		starts and stops replica services inside the directory process, one per configured port
*/

type Cluster struct {
	opts ClusterOpts
	directory replica.DirectoryClient

	mutex sync.Mutex
	services map[int]*service.ReplicaService

	Log clog.CustomLog
}


const NAME = "Cluster"
