package directory

import "context"
import "errors"
import "math/rand"
import "sync"
import "time"

import "github.com/gorilla/websocket"
import "github.com/redis/go-redis/v9"

import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/system"


// starts and stops the replica process bound to a port
type PeerLauncher interface {
	Launch(port int) error
	Shutdown(port int) error
}

// asks the replica on helperPort to ship its state to targetPort
type RecoveryHelper interface {
	HelpRecoverData(ctx context.Context, helperPort int, targetPort int) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type Event struct {
	Kind string `json:"kind"`
	Port int `json:"port,omitempty"`
	Status string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

type DirectoryOpts struct {
	Ports []int
	Launcher PeerLauncher
	Helper RecoveryHelper
	Publishers []EventPublisher
	Seed int64
}

/*
	Directory
		the status map and the fixed peer list, never any document content
*/

type Directory struct {
	ports []int
	peers map[int]*system.Peer

	Launcher PeerLauncher
	Helper RecoveryHelper
	Events *EventHub

	randMutex sync.Mutex
	rand *rand.Rand

	restartMutex sync.Mutex

	Log clog.CustomLog
}

type EventHub struct {
	mutex sync.RWMutex
	subscribers map[chan Event]bool
	publishers []EventPublisher

	Log clog.CustomLog
}

type RedisPublisher struct {
	Client *redis.Client
	Channel string
}

type EventServer struct {
	Directory *Directory
	upgrader websocket.Upgrader
}

const (
	NAME = "Directory"
	EventsChannel = "rdoc:events"
	SubscriberBuffer = 64
	WriteTimeout = 5 * time.Second
	HelperAttempts = 3
)

const (
	NotifyEvent = "notify"
	StatusEvent = "status"
)

var (
	ErrUnknownPeer = errors.New("unknown peer")
	ErrNoIdlePeer = errors.New("no idle peer available")
	ErrNotDead = errors.New("peer is not dead")
	ErrNoHelper = errors.New("no idle peer available to help recovery")
)
