package replica

import "context"
import "io"

import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/recovery"
import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== Peer Transport (grpc)


/*
	GRPC Transport:
		reaches peers on host:port through the shared connection pool, a failed call drops the pooled connections
		for that peer so the next call dials fresh
*/

type GRPCTransport struct {
	Host string
	ConnectionPool *connpool.ConnectionPool
	ChunkSize int
}

func NewGRPCTransport(host string, pool *connpool.ConnectionPool) *GRPCTransport {
	return &GRPCTransport{ Host: host, ConnectionPool: pool, ChunkSize: recovery.DefaultChunkSize }
}

func (gt *GRPCTransport) client(port int) (*docrpc.ReplicaServiceClient, string, error) {
	addr := utils.Address(gt.Host, port)

	conn, connErr := gt.ConnectionPool.GetConnection(addr)
	if connErr != nil { return nil, addr, connErr }

	return docrpc.NewReplicaServiceClient(conn), addr, nil
}

func (gt *GRPCTransport) ReceivePrepare(ctx context.Context, port int, req *docrpc.PrepareRequest) (*docrpc.VoteResponse, error) {
	client, addr, connErr := gt.client(port)
	if connErr != nil { return nil, connErr }

	res, rpcErr := client.ReceivePrepare(ctx, req)
	if rpcErr != nil { gt.ConnectionPool.CloseConnections(addr) }

	return res, rpcErr
}

func (gt *GRPCTransport) ReceiveCommit(ctx context.Context, port int, req *docrpc.DecisionRequest) (*docrpc.AckResponse, error) {
	client, addr, connErr := gt.client(port)
	if connErr != nil { return nil, connErr }

	res, rpcErr := client.ReceiveCommit(ctx, req)
	if rpcErr != nil { gt.ConnectionPool.CloseConnections(addr) }

	return res, rpcErr
}

func (gt *GRPCTransport) ReceiveAbort(ctx context.Context, port int, req *docrpc.DecisionRequest) (*docrpc.AckResponse, error) {
	client, addr, connErr := gt.client(port)
	if connErr != nil { return nil, connErr }

	res, rpcErr := client.ReceiveAbort(ctx, req)
	if rpcErr != nil { gt.ConnectionPool.CloseConnections(addr) }

	return res, rpcErr
}

/*
	Recover Data:
		1.) cut the backup into chunks, manifest first
		2.) stream every chunk to the target
		3.) close the stream and return the target's answer
*/

func (gt *GRPCTransport) RecoverData(ctx context.Context, port int, backup *recovery.Backup) (*docrpc.RecoverResponse, error) {
	chunks, splitErr := recovery.Split(backup, gt.ChunkSize)
	if splitErr != nil { return nil, splitErr }

	client, addr, connErr := gt.client(port)
	if connErr != nil { return nil, connErr }

	stream, streamErr := client.RecoverData(ctx)
	if streamErr != nil {
		gt.ConnectionPool.CloseConnections(addr)
		return nil, streamErr
	}

	for idx := range chunks {
		sendErr := stream.Send(&chunks[idx])
		if sendErr == io.EOF { break }
		if sendErr != nil {
			gt.ConnectionPool.CloseConnections(addr)
			return nil, sendErr
		}
	}

	return stream.CloseAndRecv()
}
