package dirrpc

import "context"

import "google.golang.org/grpc"

import "github.com/sirgallo/rdoc/pkg/rpccodec"


//=========================================== Directory Service RPC


type DirectoryServiceServer interface {
	AssignIdlePeer(ctx context.Context, req *AssignRequest) (*AssignResponse, error)
	GetStatus(ctx context.Context, req *StatusRequest) (*StatusResponse, error)
	SetStatus(ctx context.Context, req *SetStatusRequest) (*SetStatusResponse, error)
	GetPeers(ctx context.Context, req *PeersRequest) (*PeersResponse, error)
	Notify(ctx context.Context, req *NotifyRequest) (*NotifyResponse, error)
	KillPeer(ctx context.Context, req *PeerRequest) (*PeerResponse, error)
	RestartPeer(ctx context.Context, req *PeerRequest) (*PeerResponse, error)
	ListStatuses(ctx context.Context, req *ListStatusesRequest) (*ListStatusesResponse, error)
}

func server(srv interface{}) DirectoryServiceServer {
	return srv.(DirectoryServiceServer)
}

func method(name string) string {
	return rpccodec.FullMethod(ServiceName, name)
}

var DirectoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AssignIdlePeer",
			Handler: rpccodec.UnaryHandler(method("AssignIdlePeer"), func(srv interface{}, ctx context.Context, req *AssignRequest) (*AssignResponse, error) {
				return server(srv).AssignIdlePeer(ctx, req)
			}),
		},
		{
			MethodName: "GetStatus",
			Handler: rpccodec.UnaryHandler(method("GetStatus"), func(srv interface{}, ctx context.Context, req *StatusRequest) (*StatusResponse, error) {
				return server(srv).GetStatus(ctx, req)
			}),
		},
		{
			MethodName: "SetStatus",
			Handler: rpccodec.UnaryHandler(method("SetStatus"), func(srv interface{}, ctx context.Context, req *SetStatusRequest) (*SetStatusResponse, error) {
				return server(srv).SetStatus(ctx, req)
			}),
		},
		{
			MethodName: "GetPeers",
			Handler: rpccodec.UnaryHandler(method("GetPeers"), func(srv interface{}, ctx context.Context, req *PeersRequest) (*PeersResponse, error) {
				return server(srv).GetPeers(ctx, req)
			}),
		},
		{
			MethodName: "Notify",
			Handler: rpccodec.UnaryHandler(method("Notify"), func(srv interface{}, ctx context.Context, req *NotifyRequest) (*NotifyResponse, error) {
				return server(srv).Notify(ctx, req)
			}),
		},
		{
			MethodName: "KillPeer",
			Handler: rpccodec.UnaryHandler(method("KillPeer"), func(srv interface{}, ctx context.Context, req *PeerRequest) (*PeerResponse, error) {
				return server(srv).KillPeer(ctx, req)
			}),
		},
		{
			MethodName: "RestartPeer",
			Handler: rpccodec.UnaryHandler(method("RestartPeer"), func(srv interface{}, ctx context.Context, req *PeerRequest) (*PeerResponse, error) {
				return server(srv).RestartPeer(ctx, req)
			}),
		},
		{
			MethodName: "ListStatuses",
			Handler: rpccodec.UnaryHandler(method("ListStatuses"), func(srv interface{}, ctx context.Context, req *ListStatusesRequest) (*ListStatusesResponse, error) {
				return server(srv).ListStatuses(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterDirectoryServiceServer(registrar grpc.ServiceRegistrar, srv DirectoryServiceServer) {
	registrar.RegisterService(&DirectoryService_ServiceDesc, srv)
}


//=========================================== Directory Service Client


type DirectoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDirectoryServiceClient(cc grpc.ClientConnInterface) *DirectoryServiceClient {
	return &DirectoryServiceClient{ cc: cc }
}

func (c *DirectoryServiceClient) AssignIdlePeer(ctx context.Context, req *AssignRequest, opts ...grpc.CallOption) (*AssignResponse, error) {
	return rpccodec.Invoke[AssignResponse](ctx, c.cc, method("AssignIdlePeer"), req, opts...)
}

func (c *DirectoryServiceClient) GetStatus(ctx context.Context, req *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return rpccodec.Invoke[StatusResponse](ctx, c.cc, method("GetStatus"), req, opts...)
}

func (c *DirectoryServiceClient) SetStatus(ctx context.Context, req *SetStatusRequest, opts ...grpc.CallOption) (*SetStatusResponse, error) {
	return rpccodec.Invoke[SetStatusResponse](ctx, c.cc, method("SetStatus"), req, opts...)
}

func (c *DirectoryServiceClient) GetPeers(ctx context.Context, req *PeersRequest, opts ...grpc.CallOption) (*PeersResponse, error) {
	return rpccodec.Invoke[PeersResponse](ctx, c.cc, method("GetPeers"), req, opts...)
}

func (c *DirectoryServiceClient) Notify(ctx context.Context, req *NotifyRequest, opts ...grpc.CallOption) (*NotifyResponse, error) {
	return rpccodec.Invoke[NotifyResponse](ctx, c.cc, method("Notify"), req, opts...)
}

func (c *DirectoryServiceClient) KillPeer(ctx context.Context, req *PeerRequest, opts ...grpc.CallOption) (*PeerResponse, error) {
	return rpccodec.Invoke[PeerResponse](ctx, c.cc, method("KillPeer"), req, opts...)
}

func (c *DirectoryServiceClient) RestartPeer(ctx context.Context, req *PeerRequest, opts ...grpc.CallOption) (*PeerResponse, error) {
	return rpccodec.Invoke[PeerResponse](ctx, c.cc, method("RestartPeer"), req, opts...)
}

func (c *DirectoryServiceClient) ListStatuses(ctx context.Context, req *ListStatusesRequest, opts ...grpc.CallOption) (*ListStatusesResponse, error) {
	return rpccodec.Invoke[ListStatusesResponse](ctx, c.cc, method("ListStatuses"), req, opts...)
}
