package docrpc

import "context"

import "google.golang.org/grpc"

import "github.com/sirgallo/rdoc/pkg/recovery"
import "github.com/sirgallo/rdoc/pkg/rpccodec"
import "github.com/sirgallo/rdoc/pkg/txn"


//=========================================== Replica Service RPC


type ReplicaServiceServer interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*txn.Result, error)
	Login(ctx context.Context, req *LoginRequest) (*txn.Result, error)
	Logout(ctx context.Context, req *UserRequest) (*txn.Result, error)
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*txn.Result, error)
	Edit(ctx context.Context, req *SectionRequest) (*txn.Result, error)
	EditEnd(ctx context.Context, req *EditEndRequest) (*txn.Result, error)
	ShowSection(ctx context.Context, req *SectionRequest) (*txn.Result, error)
	ShowDocumentContent(ctx context.Context, req *DocumentRequest) (*txn.Result, error)
	ListOwnedDocs(ctx context.Context, req *UserRequest) (*txn.Result, error)
	ShareDoc(ctx context.Context, req *ShareRequest) (*txn.Result, error)
	GetNotifications(ctx context.Context, req *UserRequest) (*txn.Result, error)

	ReceivePrepare(ctx context.Context, req *PrepareRequest) (*VoteResponse, error)
	ReceiveCommit(ctx context.Context, req *DecisionRequest) (*AckResponse, error)
	ReceiveAbort(ctx context.Context, req *DecisionRequest) (*AckResponse, error)
	HelpRecoverData(ctx context.Context, req *HelpRecoverRequest) (*RecoverResponse, error)
	RecoverData(stream ReplicaService_RecoverDataServer) error
}

type ReplicaService_RecoverDataServer interface {
	SendAndClose(*RecoverResponse) error
	Recv() (*recovery.Chunk, error)
	grpc.ServerStream
}

type recoverDataServer struct {
	grpc.ServerStream
}

func (x *recoverDataServer) SendAndClose(res *RecoverResponse) error {
	return x.ServerStream.SendMsg(res)
}

func (x *recoverDataServer) Recv() (*recovery.Chunk, error) {
	chunk := new(recovery.Chunk)

	recvErr := x.ServerStream.RecvMsg(chunk)
	if recvErr != nil { return nil, recvErr }

	return chunk, nil
}

func server(srv interface{}) ReplicaServiceServer {
	return srv.(ReplicaServiceServer)
}

func method(name string) string {
	return rpccodec.FullMethod(ServiceName, name)
}

var ReplicaService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReplicaServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateUser",
			Handler: rpccodec.UnaryHandler(method("CreateUser"), func(srv interface{}, ctx context.Context, req *CreateUserRequest) (*txn.Result, error) {
				return server(srv).CreateUser(ctx, req)
			}),
		},
		{
			MethodName: "Login",
			Handler: rpccodec.UnaryHandler(method("Login"), func(srv interface{}, ctx context.Context, req *LoginRequest) (*txn.Result, error) {
				return server(srv).Login(ctx, req)
			}),
		},
		{
			MethodName: "Logout",
			Handler: rpccodec.UnaryHandler(method("Logout"), func(srv interface{}, ctx context.Context, req *UserRequest) (*txn.Result, error) {
				return server(srv).Logout(ctx, req)
			}),
		},
		{
			MethodName: "CreateDocument",
			Handler: rpccodec.UnaryHandler(method("CreateDocument"), func(srv interface{}, ctx context.Context, req *CreateDocumentRequest) (*txn.Result, error) {
				return server(srv).CreateDocument(ctx, req)
			}),
		},
		{
			MethodName: "Edit",
			Handler: rpccodec.UnaryHandler(method("Edit"), func(srv interface{}, ctx context.Context, req *SectionRequest) (*txn.Result, error) {
				return server(srv).Edit(ctx, req)
			}),
		},
		{
			MethodName: "EditEnd",
			Handler: rpccodec.UnaryHandler(method("EditEnd"), func(srv interface{}, ctx context.Context, req *EditEndRequest) (*txn.Result, error) {
				return server(srv).EditEnd(ctx, req)
			}),
		},
		{
			MethodName: "ShowSection",
			Handler: rpccodec.UnaryHandler(method("ShowSection"), func(srv interface{}, ctx context.Context, req *SectionRequest) (*txn.Result, error) {
				return server(srv).ShowSection(ctx, req)
			}),
		},
		{
			MethodName: "ShowDocumentContent",
			Handler: rpccodec.UnaryHandler(method("ShowDocumentContent"), func(srv interface{}, ctx context.Context, req *DocumentRequest) (*txn.Result, error) {
				return server(srv).ShowDocumentContent(ctx, req)
			}),
		},
		{
			MethodName: "ListOwnedDocs",
			Handler: rpccodec.UnaryHandler(method("ListOwnedDocs"), func(srv interface{}, ctx context.Context, req *UserRequest) (*txn.Result, error) {
				return server(srv).ListOwnedDocs(ctx, req)
			}),
		},
		{
			MethodName: "ShareDoc",
			Handler: rpccodec.UnaryHandler(method("ShareDoc"), func(srv interface{}, ctx context.Context, req *ShareRequest) (*txn.Result, error) {
				return server(srv).ShareDoc(ctx, req)
			}),
		},
		{
			MethodName: "GetNotifications",
			Handler: rpccodec.UnaryHandler(method("GetNotifications"), func(srv interface{}, ctx context.Context, req *UserRequest) (*txn.Result, error) {
				return server(srv).GetNotifications(ctx, req)
			}),
		},
		{
			MethodName: "ReceivePrepare",
			Handler: rpccodec.UnaryHandler(method("ReceivePrepare"), func(srv interface{}, ctx context.Context, req *PrepareRequest) (*VoteResponse, error) {
				return server(srv).ReceivePrepare(ctx, req)
			}),
		},
		{
			MethodName: "ReceiveCommit",
			Handler: rpccodec.UnaryHandler(method("ReceiveCommit"), func(srv interface{}, ctx context.Context, req *DecisionRequest) (*AckResponse, error) {
				return server(srv).ReceiveCommit(ctx, req)
			}),
		},
		{
			MethodName: "ReceiveAbort",
			Handler: rpccodec.UnaryHandler(method("ReceiveAbort"), func(srv interface{}, ctx context.Context, req *DecisionRequest) (*AckResponse, error) {
				return server(srv).ReceiveAbort(ctx, req)
			}),
		},
		{
			MethodName: "HelpRecoverData",
			Handler: rpccodec.UnaryHandler(method("HelpRecoverData"), func(srv interface{}, ctx context.Context, req *HelpRecoverRequest) (*RecoverResponse, error) {
				return server(srv).HelpRecoverData(ctx, req)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName: "RecoverData",
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				return server(srv).RecoverData(&recoverDataServer{ stream })
			},
			ClientStreams: true,
		},
	},
}

func RegisterReplicaServiceServer(registrar grpc.ServiceRegistrar, srv ReplicaServiceServer) {
	registrar.RegisterService(&ReplicaService_ServiceDesc, srv)
}
