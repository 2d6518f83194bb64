package clustertests

import "context"
import "net"
import "testing"
import "time"

import "github.com/sirgallo/rdoc/pkg/cluster"
import "github.com/sirgallo/rdoc/pkg/config"
import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/directory"
import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/system"
import "github.com/sirgallo/rdoc/pkg/txn"


func freePorts(t *testing.T, count int) []int {
	listeners := make([]net.Listener, count)
	ports := make([]int, count)

	for idx := range listeners {
		listener, listenErr := net.Listen("tcp", "127.0.0.1:0")
		if listenErr != nil { t.Fatalf("listen failed: %s\n", listenErr.Error()) }

		listeners[idx] = listener
		ports[idx] = listener.Addr().(*net.TCPAddr).Port
	}

	for _, listener := range listeners { listener.Close() }
	return ports
}

func startCluster(t *testing.T, ports []int) (*cluster.Cluster, *directory.Directory) {
	cl := cluster.NewCluster(cluster.ClusterOpts{
		Replica: config.ReplicaConfig{
			Host: "127.0.0.1",
			DataDir: t.TempDir(),
			PollAttempts: 5,
			PollInterval: 50 * time.Millisecond,
			RPCTimeout: 2 * time.Second,
		},
		ConnPoolOpts: connpool.ConnectionPoolOpts{ MaxConn: 4 },
	})

	helperPool := connpool.NewConnectionPool(connpool.ConnectionPoolOpts{ MaxConn: 2 })
	t.Cleanup(helperPool.CloseAll)

	dir := directory.NewDirectory(&directory.DirectoryOpts{
		Ports: ports,
		Launcher: cl,
		Helper: directory.NewGRPCRecoveryHelper("127.0.0.1", helperPool),
	})

	cl.AttachDirectory(dir)
	t.Cleanup(cl.ShutdownAll)

	for _, port := range ports {
		launchErr := cl.Launch(port)
		if launchErr != nil { t.Fatalf("launch failed: %s\n", launchErr.Error()) }
	}

	return cl, dir
}

func TestReplicationOverGRPC(t *testing.T) {
	ctx := context.Background()
	ports := freePorts(t, 3)
	cl, _ := startCluster(t, ports)

	first, _ := cl.Service(ports[0])
	last, _ := cl.Service(ports[2])

	created, _ := first.Replica.CreateUser(ctx, &docrpc.CreateUserRequest{ Username: "alice", Password: "pw" })
	expectCode(t, "create user", created, txn.OK)

	login, _ := last.Replica.Login(ctx, &docrpc.LoginRequest{ Username: "alice", Password: "pw" })
	expectCode(t, "login on another replica", login, txn.OK)

	doc, _ := first.Replica.CreateDocument(ctx, &docrpc.CreateDocumentRequest{ Username: "alice", Token: login.Token, DocName: "doc1", SectionCount: 2 })
	expectCode(t, "create document", doc, txn.OK)

	for _, port := range ports {
		svc, _ := cl.Service(port)
		if ! svc.Replica.Documents.Exists("doc1") { t.Errorf("doc1 missing on %d\n", port) }
		if ! svc.Replica.Sessions.Matches("alice", login.Token) { t.Errorf("token missing on %d\n", port) }
	}
}

func TestKillRestartOverGRPC(t *testing.T) {
	ctx := context.Background()
	ports := freePorts(t, 3)
	cl, dir := startCluster(t, ports)

	first, _ := cl.Service(ports[0])
	first.Replica.CreateUser(ctx, &docrpc.CreateUserRequest{ Username: "alice", Password: "pw" })
	login, _ := first.Replica.Login(ctx, &docrpc.LoginRequest{ Username: "alice", Password: "pw" })

	first.Replica.CreateDocument(ctx, &docrpc.CreateDocumentRequest{ Username: "alice", Token: login.Token, DocName: "doc1", SectionCount: 1 })
	first.Replica.Edit(ctx, &docrpc.SectionRequest{ Username: "alice", Token: login.Token, DocName: "doc1", SectionIndex: 0 })
	first.Replica.EditEnd(ctx, &docrpc.EditEndRequest{ Username: "alice", Token: login.Token, DocName: "doc1", SectionIndex: 0, Content: []byte("shipped") })

	target := ports[2]

	killErr := dir.KillPeer(ctx, target)
	if killErr != nil { t.Fatalf("kill failed: %s\n", killErr.Error()) }
	if _, running := cl.Service(target); running { t.Errorf("killed replica still running\n") }

	restartErr := dir.RestartPeer(ctx, target)
	if restartErr != nil { t.Fatalf("restart failed: %s\n", restartErr.Error()) }

	peerStatus, _ := dir.GetStatus(ctx, target)
	t.Logf("actual status: %s, expected: EMPTY\n", peerStatus.String())
	if peerStatus != system.Empty { t.Errorf("restarted status actual(%s), expected(EMPTY)\n", peerStatus.String()) }

	recovered, _ := cl.Service(target)
	if ! recovered.Replica.Sessions.Matches("alice", login.Token) { t.Errorf("session not recovered\n") }

	doc, ok := recovered.Replica.Documents.Get("doc1")
	if ! ok { t.Fatalf("doc1 not recovered\n") }

	content, _ := recovered.Replica.Documents.ReadSection(doc.Sections[0])
	t.Logf("actual content: %s, expected: shipped\n", content)
	if string(content) != "shipped" { t.Errorf("content actual(%s), expected(shipped)\n", content) }
}

func expectCode(t *testing.T, label string, res *txn.Result, expected txn.Code) {
	t.Logf("%s actual: %s (%s), expected: %s\n", label, res.Code, res.Message, expected)
	if res.Code != expected { t.Errorf("%s actual(%s), expected(%s)\n", label, res.Code, expected) }
}
