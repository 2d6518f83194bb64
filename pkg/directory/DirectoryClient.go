package directory

import "context"
import "errors"
import "fmt"

import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/dirrpc"
import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/system"
import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== Directory Client


/*
	Client
		grpc client for the directory service, used by replicas for status and peer discovery and by the admin
		console for kill and restart

		calls are retried with exponential backoff, a call whose context is already done is not retried
*/

type Client struct {
	Addr string
	ConnectionPool *connpool.ConnectionPool
	MaxRetries int
}

const DefaultClientRetries = 2


func NewClient(addr string, pool *connpool.ConnectionPool) *Client {
	return &Client{ Addr: addr, ConnectionPool: pool, MaxRetries: DefaultClientRetries }
}

func call [T any](ctx context.Context, c *Client, rpc func(client *dirrpc.DirectoryServiceClient) (T, error)) (T, error) {
	maxRetries := c.MaxRetries
	strat := utils.NewExponentialBackoffStrat[T](utils.ExpBackoffOpts{ MaxRetries: &maxRetries, TimeoutInMilliseconds: 50 })

	var ctxErr error
	res, rpcErr := strat.PerformBackoff(func() (T, error) {
		if ctx.Err() != nil {
			ctxErr = ctx.Err()
			return utils.GetZero[T](), nil
		}

		conn, connErr := c.ConnectionPool.GetConnection(c.Addr)
		if connErr != nil { return utils.GetZero[T](), connErr }

		res, err := rpc(dirrpc.NewDirectoryServiceClient(conn))
		if err != nil { c.ConnectionPool.CloseConnections(c.Addr) }

		return res, err
	})

	if ctxErr != nil { return utils.GetZero[T](), ctxErr }
	return res, rpcErr
}

func (c *Client) GetStatus(ctx context.Context, port int) (system.PeerStatus, error) {
	res, rpcErr := call(ctx, c, func(client *dirrpc.DirectoryServiceClient) (*dirrpc.StatusResponse, error) {
		return client.GetStatus(ctx, &dirrpc.StatusRequest{ Port: port })
	})

	if rpcErr != nil { return system.Unknown, rpcErr }

	peerStatus := system.PeerStatus(res.Status)
	if peerStatus == system.Unknown { return system.Unknown, fmt.Errorf("%w: %d", ErrUnknownPeer, port) }

	return peerStatus, nil
}

func (c *Client) SetStatus(ctx context.Context, port int, peerStatus system.PeerStatus) error {
	_, rpcErr := call(ctx, c, func(client *dirrpc.DirectoryServiceClient) (*dirrpc.SetStatusResponse, error) {
		return client.SetStatus(ctx, &dirrpc.SetStatusRequest{ Port: port, Status: int(peerStatus) })
	})

	return rpcErr
}

func (c *Client) GetPeers(ctx context.Context, excludingPort int) ([]int, error) {
	res, rpcErr := call(ctx, c, func(client *dirrpc.DirectoryServiceClient) (*dirrpc.PeersResponse, error) {
		return client.GetPeers(ctx, &dirrpc.PeersRequest{ ExcludingPort: excludingPort })
	})

	if rpcErr != nil { return nil, rpcErr }
	return res.Ports, nil
}

func (c *Client) Notify(ctx context.Context, message string) error {
	_, rpcErr := call(ctx, c, func(client *dirrpc.DirectoryServiceClient) (*dirrpc.NotifyResponse, error) {
		return client.Notify(ctx, &dirrpc.NotifyRequest{ Message: message })
	})

	return rpcErr
}

func (c *Client) AssignIdlePeer(ctx context.Context) (int, error) {
	res, rpcErr := call(ctx, c, func(client *dirrpc.DirectoryServiceClient) (*dirrpc.AssignResponse, error) {
		return client.AssignIdlePeer(ctx, &dirrpc.AssignRequest{})
	})

	if rpcErr != nil { return 0, rpcErr }
	return res.Port, nil
}

func (c *Client) KillPeer(ctx context.Context, port int) (string, error) {
	return c.admin(ctx, port, func(client *dirrpc.DirectoryServiceClient, req *dirrpc.PeerRequest) (*dirrpc.PeerResponse, error) {
		return client.KillPeer(ctx, req)
	})
}

// restart runs recovery, so it is not retried
func (c *Client) RestartPeer(ctx context.Context, port int) (string, error) {
	conn, connErr := c.ConnectionPool.GetConnection(c.Addr)
	if connErr != nil { return "", connErr }

	res, rpcErr := dirrpc.NewDirectoryServiceClient(conn).RestartPeer(ctx, &dirrpc.PeerRequest{ Port: port })
	if rpcErr != nil { return "", rpcErr }
	if ! res.Success { return "", errors.New(res.Message) }

	return res.Message, nil
}

func (c *Client) ListStatuses(ctx context.Context) ([]dirrpc.PeerStatusEntry, error) {
	res, rpcErr := call(ctx, c, func(client *dirrpc.DirectoryServiceClient) (*dirrpc.ListStatusesResponse, error) {
		return client.ListStatuses(ctx, &dirrpc.ListStatusesRequest{})
	})

	if rpcErr != nil { return nil, rpcErr }
	return res.Statuses, nil
}

func (c *Client) admin(
	ctx context.Context,
	port int,
	rpc func(client *dirrpc.DirectoryServiceClient, req *dirrpc.PeerRequest) (*dirrpc.PeerResponse, error),
) (string, error) {
	res, rpcErr := call(ctx, c, func(client *dirrpc.DirectoryServiceClient) (*dirrpc.PeerResponse, error) {
		return rpc(client, &dirrpc.PeerRequest{ Port: port })
	})

	if rpcErr != nil { return "", rpcErr }
	if ! res.Success { return "", errors.New(res.Message) }

	return res.Message, nil
}


//=========================================== Recovery Helper (grpc)


type GRPCRecoveryHelper struct {
	Host string
	ConnectionPool *connpool.ConnectionPool
}

func NewGRPCRecoveryHelper(host string, pool *connpool.ConnectionPool) *GRPCRecoveryHelper {
	return &GRPCRecoveryHelper{ Host: host, ConnectionPool: pool }
}

func (h *GRPCRecoveryHelper) HelpRecoverData(ctx context.Context, helperPort int, targetPort int) error {
	addr := utils.Address(h.Host, helperPort)

	conn, connErr := h.ConnectionPool.GetConnection(addr)
	if connErr != nil { return connErr }

	res, rpcErr := docrpc.NewReplicaServiceClient(conn).HelpRecoverData(ctx, &docrpc.HelpRecoverRequest{ TargetPort: targetPort })
	if rpcErr != nil {
		h.ConnectionPool.CloseConnections(addr)
		return rpcErr
	}

	if ! res.Success { return errors.New(res.Message) }
	return nil
}
