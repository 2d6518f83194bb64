package replica

import "context"
import "errors"
import "sync"
import "time"

import "github.com/sirgallo/rdoc/pkg/chataddr"
import "github.com/sirgallo/rdoc/pkg/docdb"
import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/recovery"
import "github.com/sirgallo/rdoc/pkg/store"
import "github.com/sirgallo/rdoc/pkg/system"
import "github.com/sirgallo/rdoc/pkg/userdb"


// the replica's view of the directory service
type DirectoryClient interface {
	GetStatus(ctx context.Context, port int) (system.PeerStatus, error)
	SetStatus(ctx context.Context, port int, status system.PeerStatus) error
	GetPeers(ctx context.Context, excludingPort int) ([]int, error)
	Notify(ctx context.Context, message string) error
}

// how a replica reaches its peers
type PeerTransport interface {
	ReceivePrepare(ctx context.Context, port int, req *docrpc.PrepareRequest) (*docrpc.VoteResponse, error)
	ReceiveCommit(ctx context.Context, port int, req *docrpc.DecisionRequest) (*docrpc.AckResponse, error)
	ReceiveAbort(ctx context.Context, port int, req *docrpc.DecisionRequest) (*docrpc.AckResponse, error)
	RecoverData(ctx context.Context, port int, backup *recovery.Backup) (*docrpc.RecoverResponse, error)
}

type ReplicaOpts struct {
	Port int
	DataDir string
	Directory DirectoryClient
	Transport PeerTransport

	PollAttempts int
	PollInterval time.Duration
	RPCTimeout time.Duration
}

type Replica struct {
	Port int
	DataDir string
	Directory DirectoryClient
	Transport PeerTransport

	Users *userdb.UserDirectory
	Sessions *userdb.SessionTable
	Documents *docdb.DocumentDirectory
	Chat *chataddr.Table
	Store *store.Store

	participation *system.Participation
	coordMutex sync.Mutex

	pending sync.Map
	votes sync.Map
	acks sync.Map

	pollAttempts int
	pollInterval time.Duration
	rpcTimeout time.Duration

	Log clog.CustomLog
}

const NAME = "Replica"

const (
	DefaultPollAttempts = 3
	DefaultPollInterval = 1 * time.Second
	DefaultRPCTimeout = 3 * time.Second
	DataDirPrefix = "server_data_"
)

var (
	ErrUnknownTransaction = errors.New("unknown transaction")
	ErrReplicaBusy = errors.New("replica busy")
	ErrWrongTarget = errors.New("backup addressed to another replica")
	ErrSlotNotHeld = errors.New("coordinator slot not held for transaction")
	ErrSectionOccupied = errors.New("section occupied by another user")
	ErrUsernameTaken = errors.New("username already taken")
)
