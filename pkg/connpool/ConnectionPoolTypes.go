package connpool

import "sync"


type ConnectionPoolOpts struct {
	MaxConn int
}

type ConnectionPool struct {
	mutex sync.Mutex
	connections sync.Map
	maxConn int
}

const DefaultMaxConn = 10
