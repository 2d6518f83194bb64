package connpool

import "errors"

import "google.golang.org/grpc"
import "google.golang.org/grpc/connectivity"
import "google.golang.org/grpc/credentials/insecure"

import "github.com/sirgallo/rdoc/pkg/rpccodec"


//=========================================== Connection Pool


/*
	initialize the connection pool

	the purpose of the connection pool is to reuse connections once they have been made, minimizing overhead
	for reconnecting to a peer every time an rpc is made

	the pool has the following structure:
		{
			[key: host:port]: Array<connections>
		}
*/

func NewConnectionPool(opts ConnectionPoolOpts) *ConnectionPool {
	maxConn := opts.MaxConn
	if maxConn <= 0 { maxConn = DefaultMaxConn }

	return &ConnectionPool{
		maxConn: maxConn,
	}
}

/*
	Get Connection:
		1.) load connections for the particular address
		2.) if the address was loaded from the thread safe map, return the first connection that has not been shut down
		3.) otherwise, if the total connections for the address is below max connections, dial a new grpc connection,
			store it at the key associated with the address, and return the new connection
		4.) if the pool is full for the address, return max connections error
*/

func (cp *ConnectionPool) GetConnection(addr string) (*grpc.ClientConn, error) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	var connections []*grpc.ClientConn
	loaded, ok := cp.connections.Load(addr)
	if ok { connections = loaded.([]*grpc.ClientConn) }

	live := []*grpc.ClientConn{}
	for _, conn := range connections {
		if conn != nil && conn.GetState() != connectivity.Shutdown { live = append(live, conn) }
	}

	for _, conn := range live {
		if conn.GetState() != connectivity.TransientFailure { return conn, nil }
	}

	if len(live) >= cp.maxConn { return nil, errors.New("max connections reached") }

	newConn, connErr := grpc.Dial(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(rpccodec.CallOption()),
	)

	if connErr != nil { return nil, connErr }

	cp.connections.Store(addr, append(live, newConn))
	return newConn, nil
}

/*
	Put Connection:
		1.) load connections for the particular address
		2.) if the connection is pooled, keep it open for reuse and return
		3.) otherwise, close the connection
*/

func (cp *ConnectionPool) PutConnection(addr string, connection *grpc.ClientConn) (bool, error) {
	connections, loaded := cp.connections.Load(addr)
	if loaded {
		for _, conn := range connections.([]*grpc.ClientConn) {
			if conn == connection { return true, nil }
		}
	}

	closeErr := connection.Close()
	if closeErr != nil { return false, closeErr }

	return false, nil
}

/*
	Close Connections:
		used when a peer is considered dead, so close and drop every pooled connection for the address
*/

func (cp *ConnectionPool) CloseConnections(addr string) (bool, error) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	connections, loaded := cp.connections.LoadAndDelete(addr)
	if ! loaded { return false, nil }

	var closeErr error
	for _, conn := range connections.([]*grpc.ClientConn) {
		err := conn.Close()
		if err != nil && closeErr == nil { closeErr = err }
	}

	return true, closeErr
}

func (cp *ConnectionPool) CloseAll() {
	cp.connections.Range(func(key, value interface{}) bool {
		cp.CloseConnections(key.(string))
		return true
	})
}
