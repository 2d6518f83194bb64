package directory

import "context"
import "net"

import "google.golang.org/grpc"
import "google.golang.org/grpc/codes"
import "google.golang.org/grpc/status"

import "github.com/sirgallo/rdoc/pkg/dirrpc"
import "github.com/sirgallo/rdoc/pkg/rpccodec"
import "github.com/sirgallo/rdoc/pkg/system"


//=========================================== Directory Server


type DirectoryServer struct {
	Directory *Directory
}

var _ dirrpc.DirectoryServiceServer = (*DirectoryServer)(nil)


func NewDirectoryServer(directory *Directory) *DirectoryServer {
	return &DirectoryServer{ Directory: directory }
}

func (ds *DirectoryServer) StartServer(listener net.Listener) (*grpc.Server, <-chan error) {
	srv := rpccodec.NewServer()
	dirrpc.RegisterDirectoryServiceServer(srv, ds)

	serveErr := make(chan error, 1)
	go func() {
		ds.Directory.Log.Info("grpc server listening on", listener.Addr().String())
		serveErr <- srv.Serve(listener)
		close(serveErr)
	}()

	return srv, serveErr
}

func (ds *DirectoryServer) AssignIdlePeer(ctx context.Context, req *dirrpc.AssignRequest) (*dirrpc.AssignResponse, error) {
	port, assignErr := ds.Directory.AssignIdlePeer(ctx)
	if assignErr != nil { return nil, status.Error(codes.Unavailable, assignErr.Error()) }

	return &dirrpc.AssignResponse{ Port: port }, nil
}

func (ds *DirectoryServer) GetStatus(ctx context.Context, req *dirrpc.StatusRequest) (*dirrpc.StatusResponse, error) {
	peerStatus, statusErr := ds.Directory.GetStatus(ctx, req.Port)
	if statusErr != nil { return &dirrpc.StatusResponse{ Port: req.Port, Status: int(system.Unknown) }, nil }

	return &dirrpc.StatusResponse{ Port: req.Port, Status: int(peerStatus) }, nil
}

func (ds *DirectoryServer) SetStatus(ctx context.Context, req *dirrpc.SetStatusRequest) (*dirrpc.SetStatusResponse, error) {
	setErr := ds.Directory.SetStatus(ctx, req.Port, system.PeerStatus(req.Status))
	if setErr != nil { return nil, status.Error(codes.NotFound, setErr.Error()) }

	return &dirrpc.SetStatusResponse{ Success: true }, nil
}

func (ds *DirectoryServer) GetPeers(ctx context.Context, req *dirrpc.PeersRequest) (*dirrpc.PeersResponse, error) {
	peers, peersErr := ds.Directory.GetPeers(ctx, req.ExcludingPort)
	if peersErr != nil { return nil, status.Error(codes.Internal, peersErr.Error()) }

	return &dirrpc.PeersResponse{ Ports: peers }, nil
}

func (ds *DirectoryServer) Notify(ctx context.Context, req *dirrpc.NotifyRequest) (*dirrpc.NotifyResponse, error) {
	ds.Directory.Notify(ctx, req.Message)
	return &dirrpc.NotifyResponse{}, nil
}

func (ds *DirectoryServer) KillPeer(ctx context.Context, req *dirrpc.PeerRequest) (*dirrpc.PeerResponse, error) {
	killErr := ds.Directory.KillPeer(ctx, req.Port)
	if killErr != nil { return &dirrpc.PeerResponse{ Success: false, Message: killErr.Error() }, nil }

	return &dirrpc.PeerResponse{ Success: true, Message: system.ServerName(req.Port) + " killed" }, nil
}

func (ds *DirectoryServer) RestartPeer(ctx context.Context, req *dirrpc.PeerRequest) (*dirrpc.PeerResponse, error) {
	restartErr := ds.Directory.RestartPeer(ctx, req.Port)
	if restartErr != nil { return &dirrpc.PeerResponse{ Success: false, Message: restartErr.Error() }, nil }

	return &dirrpc.PeerResponse{ Success: true, Message: system.ServerName(req.Port) + " restarted" }, nil
}

func (ds *DirectoryServer) ListStatuses(ctx context.Context, req *dirrpc.ListStatusesRequest) (*dirrpc.ListStatusesResponse, error) {
	statuses := ds.Directory.ListStatuses()

	entries := make([]dirrpc.PeerStatusEntry, 0, len(statuses))
	for _, port := range ds.Directory.Ports() {
		entries = append(entries, dirrpc.PeerStatusEntry{ Port: port, Status: int(statuses[port]) })
	}

	return &dirrpc.ListStatusesResponse{ Statuses: entries }, nil
}
