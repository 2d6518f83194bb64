package docrpc

import "context"

import "google.golang.org/grpc"

import "github.com/sirgallo/rdoc/pkg/recovery"
import "github.com/sirgallo/rdoc/pkg/rpccodec"
import "github.com/sirgallo/rdoc/pkg/txn"


//=========================================== Replica Service Client


type ReplicaServiceClient struct {
	cc grpc.ClientConnInterface
}

type ReplicaService_RecoverDataClient interface {
	Send(*recovery.Chunk) error
	CloseAndRecv() (*RecoverResponse, error)
	grpc.ClientStream
}

type recoverDataClient struct {
	grpc.ClientStream
}

func NewReplicaServiceClient(cc grpc.ClientConnInterface) *ReplicaServiceClient {
	return &ReplicaServiceClient{ cc: cc }
}

func (c *ReplicaServiceClient) CreateUser(ctx context.Context, req *CreateUserRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("CreateUser"), req, opts...)
}

func (c *ReplicaServiceClient) Login(ctx context.Context, req *LoginRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("Login"), req, opts...)
}

func (c *ReplicaServiceClient) Logout(ctx context.Context, req *UserRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("Logout"), req, opts...)
}

func (c *ReplicaServiceClient) CreateDocument(ctx context.Context, req *CreateDocumentRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("CreateDocument"), req, opts...)
}

func (c *ReplicaServiceClient) Edit(ctx context.Context, req *SectionRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("Edit"), req, opts...)
}

func (c *ReplicaServiceClient) EditEnd(ctx context.Context, req *EditEndRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("EditEnd"), req, opts...)
}

func (c *ReplicaServiceClient) ShowSection(ctx context.Context, req *SectionRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("ShowSection"), req, opts...)
}

func (c *ReplicaServiceClient) ShowDocumentContent(ctx context.Context, req *DocumentRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("ShowDocumentContent"), req, opts...)
}

func (c *ReplicaServiceClient) ListOwnedDocs(ctx context.Context, req *UserRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("ListOwnedDocs"), req, opts...)
}

func (c *ReplicaServiceClient) ShareDoc(ctx context.Context, req *ShareRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("ShareDoc"), req, opts...)
}

func (c *ReplicaServiceClient) GetNotifications(ctx context.Context, req *UserRequest, opts ...grpc.CallOption) (*txn.Result, error) {
	return rpccodec.Invoke[txn.Result](ctx, c.cc, method("GetNotifications"), req, opts...)
}

func (c *ReplicaServiceClient) ReceivePrepare(ctx context.Context, req *PrepareRequest, opts ...grpc.CallOption) (*VoteResponse, error) {
	return rpccodec.Invoke[VoteResponse](ctx, c.cc, method("ReceivePrepare"), req, opts...)
}

func (c *ReplicaServiceClient) ReceiveCommit(ctx context.Context, req *DecisionRequest, opts ...grpc.CallOption) (*AckResponse, error) {
	return rpccodec.Invoke[AckResponse](ctx, c.cc, method("ReceiveCommit"), req, opts...)
}

func (c *ReplicaServiceClient) ReceiveAbort(ctx context.Context, req *DecisionRequest, opts ...grpc.CallOption) (*AckResponse, error) {
	return rpccodec.Invoke[AckResponse](ctx, c.cc, method("ReceiveAbort"), req, opts...)
}

func (c *ReplicaServiceClient) HelpRecoverData(ctx context.Context, req *HelpRecoverRequest, opts ...grpc.CallOption) (*RecoverResponse, error) {
	return rpccodec.Invoke[RecoverResponse](ctx, c.cc, method("HelpRecoverData"), req, opts...)
}

/*
	Recover Data:
		client streaming rpc, the helper sends the chunks and closes with CloseAndRecv
*/

func (c *ReplicaServiceClient) RecoverData(ctx context.Context, opts ...grpc.CallOption) (ReplicaService_RecoverDataClient, error) {
	stream, streamErr := c.cc.NewStream(ctx, &ReplicaService_ServiceDesc.Streams[0], method("RecoverData"), opts...)
	if streamErr != nil { return nil, streamErr }

	return &recoverDataClient{ stream }, nil
}

func (x *recoverDataClient) Send(chunk *recovery.Chunk) error {
	return x.ClientStream.SendMsg(chunk)
}

func (x *recoverDataClient) CloseAndRecv() (*RecoverResponse, error) {
	closeErr := x.ClientStream.CloseSend()
	if closeErr != nil { return nil, closeErr }

	res := new(RecoverResponse)

	recvErr := x.ClientStream.RecvMsg(res)
	if recvErr != nil { return nil, recvErr }

	return res, nil
}
