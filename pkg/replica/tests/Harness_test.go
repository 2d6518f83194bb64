package replicatests

import "context"
import "errors"
import "os"
import "sync"
import "testing"
import "time"

import "github.com/sirgallo/rdoc/pkg/directory"
import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/recovery"
import "github.com/sirgallo/rdoc/pkg/replica"
import "github.com/sirgallo/rdoc/pkg/txn"


var errUnreachable = errors.New("peer unreachable")

/*
	loopback transport
		dispatches peer calls straight to the replica values, a port marked down behaves like a crashed process
*/

type loopback struct {
	mutex sync.RWMutex
	replicas map[int]*replica.Replica
	down map[int]bool
}

func (lb *loopback) get(port int) (*replica.Replica, error) {
	lb.mutex.RLock()
	defer lb.mutex.RUnlock()

	r, ok := lb.replicas[port]
	if ! ok || lb.down[port] { return nil, errUnreachable }

	return r, nil
}

func (lb *loopback) setDown(port int, down bool) {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	lb.down[port] = down
}

func (lb *loopback) register(r *replica.Replica) {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	lb.replicas[r.Port] = r
	lb.down[r.Port] = false
}

func (lb *loopback) ReceivePrepare(ctx context.Context, port int, req *docrpc.PrepareRequest) (*docrpc.VoteResponse, error) {
	r, getErr := lb.get(port)
	if getErr != nil { return nil, getErr }

	return r.ReceivePrepare(ctx, req)
}

func (lb *loopback) ReceiveCommit(ctx context.Context, port int, req *docrpc.DecisionRequest) (*docrpc.AckResponse, error) {
	r, getErr := lb.get(port)
	if getErr != nil { return nil, getErr }

	return r.ReceiveCommit(ctx, req)
}

func (lb *loopback) ReceiveAbort(ctx context.Context, port int, req *docrpc.DecisionRequest) (*docrpc.AckResponse, error) {
	r, getErr := lb.get(port)
	if getErr != nil { return nil, getErr }

	return r.ReceiveAbort(ctx, req)
}

func (lb *loopback) RecoverData(ctx context.Context, port int, backup *recovery.Backup) (*docrpc.RecoverResponse, error) {
	r, getErr := lb.get(port)
	if getErr != nil { return nil, getErr }

	installErr := r.InstallBackup(ctx, backup)
	if installErr != nil { return &docrpc.RecoverResponse{ Success: false, Message: installErr.Error() }, nil }

	return &docrpc.RecoverResponse{ Success: true, Message: "recovered" }, nil
}

/*
	test cluster
		one in memory directory, one replica per port, every replica in the same process
*/

type cluster struct {
	t *testing.T
	base string
	dir *directory.Directory
	transport *loopback
}

func newCluster(t *testing.T, ports ...int) *cluster {
	c := &cluster{
		t: t,
		base: t.TempDir(),
		transport: &loopback{ replicas: make(map[int]*replica.Replica), down: make(map[int]bool) },
	}

	c.dir = directory.NewDirectory(&directory.DirectoryOpts{ Ports: ports, Launcher: c, Helper: c, Seed: 1 })

	for _, port := range ports {
		launchErr := c.Launch(port)
		if launchErr != nil { t.Fatalf("launching %d failed: %s\n", port, launchErr.Error()) }
	}

	return c
}

func (c *cluster) replicaOpts(port int) *replica.ReplicaOpts {
	return &replica.ReplicaOpts{
		Port: port,
		DataDir: replica.DataDirFor(c.base, port),
		Directory: c.dir,
		Transport: c.transport,
		PollAttempts: 3,
		PollInterval: 20 * time.Millisecond,
		RPCTimeout: 500 * time.Millisecond,
	}
}

// launches a fresh replica with a wiped data directory
func (c *cluster) Launch(port int) error {
	os.RemoveAll(replica.DataDirFor(c.base, port))

	r, newErr := replica.NewReplica(c.replicaOpts(port))
	if newErr != nil { return newErr }

	c.transport.register(r)
	return nil
}

func (c *cluster) Shutdown(port int) error {
	c.transport.setDown(port, true)
	return nil
}

func (c *cluster) HelpRecoverData(ctx context.Context, helperPort int, targetPort int) error {
	helper, getErr := c.transport.get(helperPort)
	if getErr != nil { return getErr }

	res, helpErr := helper.HelpRecoverData(ctx, &docrpc.HelpRecoverRequest{ TargetPort: targetPort })
	if helpErr != nil { return helpErr }
	if ! res.Success { return errors.New(res.Message) }

	return nil
}

func (c *cluster) replica(port int) *replica.Replica {
	c.transport.mutex.RLock()
	defer c.transport.mutex.RUnlock()

	return c.transport.replicas[port]
}

func (c *cluster) ports() []int {
	return c.dir.Ports()
}

/*
	signup:
		create and log in a user through the given replica, returning the session token
*/

func (c *cluster) signup(port int, username string) string {
	ctx := context.Background()
	r := c.replica(port)

	created, _ := r.CreateUser(ctx, &docrpc.CreateUserRequest{ Username: username, Password: username + "-pw" })
	if ! created.Ok() { c.t.Fatalf("create user %s failed: %v\n", username, created) }

	login, _ := r.Login(ctx, &docrpc.LoginRequest{ Username: username, Password: username + "-pw" })
	if ! login.Ok() { c.t.Fatalf("login %s failed: %v\n", username, login) }

	return login.Token
}

func expectCode(t *testing.T, label string, res *txn.Result, expected txn.Code) {
	t.Logf("%s actual: %s (%s), expected: %s\n", label, res.Code, res.Message, expected)
	if res.Code != expected { t.Errorf("%s actual(%s), expected(%s)\n", label, res.Code, expected) }
}
