package replica

import "net"

import "google.golang.org/grpc"

import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/rpccodec"


//=========================================== Replica Server


var _ docrpc.ReplicaServiceServer = (*Replica)(nil)


/*
	Start Server:
		register the replica as the grpc replica service and serve on the listener until the server stops
*/

func (r *Replica) StartServer(listener net.Listener) (*grpc.Server, <-chan error) {
	srv := rpccodec.NewServer()
	docrpc.RegisterReplicaServiceServer(srv, r)

	serveErr := make(chan error, 1)
	go func() {
		r.Log.Info("grpc server listening on", listener.Addr().String())
		serveErr <- srv.Serve(listener)
		close(serveErr)
	}()

	return srv, serveErr
}
