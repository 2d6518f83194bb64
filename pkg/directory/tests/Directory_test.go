package directorytests

import "context"
import "errors"
import "net"
import "net/http/httptest"
import "reflect"
import "strings"
import "sync"
import "testing"
import "time"

import "github.com/gorilla/websocket"

import "github.com/sirgallo/rdoc/pkg/connpool"
import "github.com/sirgallo/rdoc/pkg/directory"
import "github.com/sirgallo/rdoc/pkg/system"


type fakeLauncher struct {
	mutex sync.Mutex
	launched []int
	stopped []int
}

func (fl *fakeLauncher) Launch(port int) error {
	fl.mutex.Lock()
	defer fl.mutex.Unlock()

	fl.launched = append(fl.launched, port)
	return nil
}

func (fl *fakeLauncher) Shutdown(port int) error {
	fl.mutex.Lock()
	defer fl.mutex.Unlock()

	fl.stopped = append(fl.stopped, port)
	return nil
}

type fakeHelper struct {
	mutex sync.Mutex
	failing map[int]bool
	helpers []int
}

func (fh *fakeHelper) HelpRecoverData(ctx context.Context, helperPort int, targetPort int) error {
	fh.mutex.Lock()
	defer fh.mutex.Unlock()

	fh.helpers = append(fh.helpers, helperPort)
	if fh.failing[helperPort] { return errors.New("helper failed") }

	return nil
}


func TestParsePorts(t *testing.T) {
	ports, parseErr := directory.ParsePorts("1300, 1400,1500")
	expected := []int{ 1300, 1400, 1500 }

	t.Logf("actual: %v, expected: %v\n", ports, expected)
	if parseErr != nil || ! reflect.DeepEqual(ports, expected) { t.Errorf("parse actual(%v, %v), expected(%v)\n", ports, parseErr, expected) }

	for _, bad := range []string{ "", "1300,,1400", "1300,abc", "1300,1300", "70000" } {
		_, badErr := directory.ParsePorts(bad)
		if badErr == nil { t.Errorf("expected %q to be rejected\n", bad) }
	}
}

func TestStatusAndPeers(t *testing.T) {
	ctx := context.Background()
	d := directory.NewDirectory(&directory.DirectoryOpts{ Ports: []int{ 1500, 1300, 1400 }, Seed: 7 })

	if ! reflect.DeepEqual(d.Ports(), []int{ 1300, 1400, 1500 }) { t.Errorf("ports actual(%v), expected sorted\n", d.Ports()) }

	for _, port := range d.Ports() {
		peerStatus, _ := d.GetStatus(ctx, port)
		if peerStatus != system.Empty { t.Errorf("initial status of %d actual(%s), expected(EMPTY)\n", port, peerStatus.String()) }
	}

	_, unknownErr := d.GetStatus(ctx, 9999)
	if ! errors.Is(unknownErr, directory.ErrUnknownPeer) { t.Errorf("unknown status actual(%v), expected(%v)\n", unknownErr, directory.ErrUnknownPeer) }

	setErr := d.SetStatus(ctx, 9999, system.Busy)
	if ! errors.Is(setErr, directory.ErrUnknownPeer) { t.Errorf("unknown set actual(%v), expected(%v)\n", setErr, directory.ErrUnknownPeer) }

	d.SetStatus(ctx, 1400, system.Dead)

	peers, _ := d.GetPeers(ctx, 1300)
	t.Logf("actual peers: %v, expected: [1400 1500]\n", peers)
	if ! reflect.DeepEqual(peers, []int{ 1400, 1500 }) { t.Errorf("peers actual(%v), expected([1400 1500])\n", peers) }

	statuses := d.ListStatuses()
	if statuses[1400] != system.Dead || statuses[1300] != system.Empty { t.Errorf("statuses actual(%v)\n", statuses) }
}

func TestAssignIdlePeer(t *testing.T) {
	ctx := context.Background()
	d := directory.NewDirectory(&directory.DirectoryOpts{ Ports: []int{ 1300, 1400, 1500 }, Seed: 3 })

	d.SetStatus(ctx, 1300, system.Busy)
	d.SetStatus(ctx, 1500, system.Dead)

	for idx := 0; idx < 20; idx++ {
		port, assignErr := d.AssignIdlePeer(ctx)
		if assignErr != nil || port != 1400 { t.Fatalf("assign actual(%d, %v), expected(1400)\n", port, assignErr) }
	}

	d.SetStatus(ctx, 1400, system.Busy)

	_, noneErr := d.AssignIdlePeer(ctx)
	if ! errors.Is(noneErr, directory.ErrNoIdlePeer) { t.Errorf("assign actual(%v), expected(%v)\n", noneErr, directory.ErrNoIdlePeer) }
}

func TestKillAndRestart(t *testing.T) {
	ctx := context.Background()
	launcher := &fakeLauncher{}
	helper := &fakeHelper{ failing: map[int]bool{ 1300: true } }

	d := directory.NewDirectory(&directory.DirectoryOpts{ Ports: []int{ 1300, 1400, 1500 }, Launcher: launcher, Helper: helper })

	notDeadErr := d.RestartPeer(ctx, 1500)
	if ! errors.Is(notDeadErr, directory.ErrNotDead) { t.Errorf("restart live peer actual(%v), expected(%v)\n", notDeadErr, directory.ErrNotDead) }

	killErr := d.KillPeer(ctx, 1500)
	if killErr != nil { t.Fatalf("kill failed: %s\n", killErr.Error()) }

	killed, _ := d.GetStatus(ctx, 1500)
	if killed != system.Dead { t.Errorf("killed status actual(%s), expected(DEAD)\n", killed.String()) }

	restartErr := d.RestartPeer(ctx, 1500)
	if restartErr != nil { t.Fatalf("restart failed: %s\n", restartErr.Error()) }

	restarted, _ := d.GetStatus(ctx, 1500)
	if restarted != system.Empty { t.Errorf("restarted status actual(%s), expected(EMPTY)\n", restarted.String()) }

	t.Logf("actual helpers tried: %v, expected: [1300 1400]\n", helper.helpers)
	if ! reflect.DeepEqual(helper.helpers, []int{ 1300, 1400 }) { t.Errorf("helpers actual(%v), expected([1300 1400])\n", helper.helpers) }
	if ! reflect.DeepEqual(launcher.launched, []int{ 1500 }) { t.Errorf("launched actual(%v), expected([1500])\n", launcher.launched) }

	unknownErr := d.KillPeer(ctx, 9999)
	if ! errors.Is(unknownErr, directory.ErrUnknownPeer) { t.Errorf("kill unknown actual(%v), expected(%v)\n", unknownErr, directory.ErrUnknownPeer) }
}

func TestEventHub(t *testing.T) {
	ctx := context.Background()
	d := directory.NewDirectory(&directory.DirectoryOpts{ Ports: []int{ 1300, 1400 } })

	sub := d.Events.Subscribe()

	d.SetStatus(ctx, 1300, system.Busy)
	d.SetStatus(ctx, 1300, system.Busy)
	d.Notify(ctx, "Server1400 is down!")

	first := <-sub
	if first.Kind != directory.StatusEvent || first.Port != 1300 || first.Status != "BUSY" { t.Errorf("first event actual(%+v)\n", first) }

	second := <-sub
	if second.Kind != directory.NotifyEvent || second.Message != "Server1400 is down!" { t.Errorf("second event actual(%+v), unchanged status should not publish\n", second) }

	d.Events.Unsubscribe(sub)
	if _, open := <-sub; open { t.Errorf("subscription should be closed after unsubscribe\n") }
}

func TestEventServer(t *testing.T) {
	ctx := context.Background()
	d := directory.NewDirectory(&directory.DirectoryOpts{ Ports: []int{ 1300, 1400 } })

	srv := httptest.NewServer(directory.NewEventServer(d).Router())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, dialErr := websocket.DefaultDialer.Dial(wsURL, nil)
	if dialErr != nil { t.Fatalf("websocket dial failed: %s\n", dialErr.Error()) }
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	var event directory.Event

	for time.Now().Before(deadline) {
		d.Notify(ctx, "hello")

		conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		readErr := conn.ReadJSON(&event)
		if readErr == nil { break }
	}

	t.Logf("actual event: %+v\n", event)
	if event.Message != "hello" { t.Errorf("event message actual(%s), expected(hello)\n", event.Message) }
}

func TestClientAgainstServer(t *testing.T) {
	ctx := context.Background()
	d := directory.NewDirectory(&directory.DirectoryOpts{ Ports: []int{ 1300, 1400, 1500 }, Launcher: &fakeLauncher{}, Helper: &fakeHelper{} })

	listener, listenErr := net.Listen("tcp", "127.0.0.1:0")
	if listenErr != nil { t.Fatalf("listen failed: %s\n", listenErr.Error()) }

	srv, _ := directory.NewDirectoryServer(d).StartServer(listener)
	defer srv.Stop()

	pool := connpool.NewConnectionPool(connpool.ConnectionPoolOpts{ MaxConn: 2 })
	defer pool.CloseAll()

	client := directory.NewClient(listener.Addr().String(), pool)

	setErr := client.SetStatus(ctx, 1400, system.Busy)
	if setErr != nil { t.Fatalf("set status failed: %s\n", setErr.Error()) }

	peerStatus, statusErr := client.GetStatus(ctx, 1400)
	t.Logf("actual status: %s, expected: BUSY\n", peerStatus.String())
	if statusErr != nil || peerStatus != system.Busy { t.Errorf("status actual(%s, %v), expected(BUSY)\n", peerStatus.String(), statusErr) }

	_, unknownErr := client.GetStatus(ctx, 9999)
	if unknownErr == nil { t.Errorf("status of an unknown port should fail\n") }

	peers, _ := client.GetPeers(ctx, 1500)
	if ! reflect.DeepEqual(peers, []int{ 1300, 1400 }) { t.Errorf("peers actual(%v), expected([1300 1400])\n", peers) }

	notifyErr := client.Notify(ctx, "Server1300 is down!")
	if notifyErr != nil { t.Errorf("notify failed: %s\n", notifyErr.Error()) }

	_, killErr := client.KillPeer(ctx, 1300)
	if killErr != nil { t.Fatalf("kill failed: %s\n", killErr.Error()) }

	_, restartErr := client.RestartPeer(ctx, 1300)
	if restartErr != nil { t.Fatalf("restart failed: %s\n", restartErr.Error()) }

	entries, listErr := client.ListStatuses(ctx)
	if listErr != nil || len(entries) != 3 { t.Fatalf("list statuses actual(%v, %v)\n", entries, listErr) }

	for _, entry := range entries {
		expected := system.Empty
		if entry.Port == 1400 { expected = system.Busy }
		if system.PeerStatus(entry.Status) != expected { t.Errorf("status of %d actual(%d), expected(%d)\n", entry.Port, entry.Status, expected) }
	}

	assigned, assignErr := client.AssignIdlePeer(ctx)
	if assignErr != nil || assigned == 1400 { t.Errorf("assign actual(%d, %v), expected an EMPTY peer\n", assigned, assignErr) }
}
