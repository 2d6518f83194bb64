package config

import "time"


type DirectoryConfig struct {
	Host string
	Port int
	Peers []int
	DataDir string
	EventsPort int
	RedisAddr string
	HTTPOffset int
}

type ReplicaConfig struct {
	Host string
	Port int
	DirectoryAddr string
	DataDir string
	HTTPPort int

	PollAttempts int
	PollInterval time.Duration
	RPCTimeout time.Duration
}

type AdminConfig struct {
	DirectoryAddr string
}


const (
	HostEnv = "RDOC_HOST"
	DirectoryPortEnv = "RDOC_DIRECTORY_PORT"
	PeersEnv = "RDOC_PEERS"
	DataDirEnv = "RDOC_DATA_DIR"
	EventsPortEnv = "RDOC_EVENTS_PORT"
	RedisAddrEnv = "REDIS_ADDR"
	HTTPOffsetEnv = "RDOC_HTTP_OFFSET"
	PortEnv = "RDOC_PORT"
	DirectoryAddrEnv = "RDOC_DIRECTORY_ADDR"
	HTTPPortEnv = "RDOC_HTTP_PORT"
	PollAttemptsEnv = "RDOC_POLL_ATTEMPTS"
	PollIntervalEnv = "RDOC_POLL_INTERVAL"
	RPCTimeoutEnv = "RDOC_RPC_TIMEOUT"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultDirectoryPort = 1200
	DefaultPeers = "1300,1400,1500,1600,1700"
	DefaultDataDir = "."
	DefaultEventsPort = 1201
	DefaultHTTPOffset = 10000
	DefaultDirectoryAddr = "127.0.0.1:1200"
)
