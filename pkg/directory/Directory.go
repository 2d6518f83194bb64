package directory

import "context"
import "fmt"
import "math/rand"
import "sort"
import "time"

import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/system"


//=========================================== Directory Service


/*
	New Directory:
		every configured port starts EMPTY, the peer list never changes afterwards
*/

func NewDirectory(opts *DirectoryOpts) *Directory {
	ports := append([]int{}, opts.Ports...)
	sort.Ints(ports)

	peers := make(map[int]*system.Peer, len(ports))
	for _, port := range ports { peers[port] = system.NewPeer(port, system.Empty) }

	seed := opts.Seed
	if seed == 0 { seed = time.Now().UnixNano() }

	return &Directory{
		ports: ports,
		peers: peers,
		Launcher: opts.Launcher,
		Helper: opts.Helper,
		Events: NewEventHub(opts.Publishers...),
		rand: rand.New(rand.NewSource(seed)),
		Log: *clog.NewCustomLog(NAME),
	}
}

func (d *Directory) Ports() []int {
	return append([]int{}, d.ports...)
}

/*
	Assign Idle Peer:
		1.) pick a random starting index into the peer list
		2.) scan forward, wrapping around, for the first EMPTY peer
		3.) after one full wrap with no EMPTY peer, fail
*/

func (d *Directory) AssignIdlePeer(ctx context.Context) (int, error) {
	if len(d.ports) == 0 { return 0, ErrNoIdlePeer }

	d.randMutex.Lock()
	start := d.rand.Intn(len(d.ports))
	d.randMutex.Unlock()

	for offset := 0; offset < len(d.ports); offset++ {
		port := d.ports[(start + offset) % len(d.ports)]
		if d.peers[port].GetStatus() == system.Empty {
			d.Log.Debug("assigned idle peer", port)
			return port, nil
		}
	}

	return 0, ErrNoIdlePeer
}

func (d *Directory) GetStatus(ctx context.Context, port int) (system.PeerStatus, error) {
	peer, ok := d.peers[port]
	if ! ok { return system.Unknown, fmt.Errorf("%w: %d", ErrUnknownPeer, port) }

	return peer.GetStatus(), nil
}

func (d *Directory) SetStatus(ctx context.Context, port int, status system.PeerStatus) error {
	peer, ok := d.peers[port]
	if ! ok { return fmt.Errorf("%w: %d", ErrUnknownPeer, port) }

	previous := peer.SwapStatus(status)

	if previous != status {
		d.Log.Debug(system.ServerName(port), "status", previous.String(), "-->", status.String())
		d.Events.Publish(ctx, Event{ Kind: StatusEvent, Port: port, Status: status.String() })
	}

	return nil
}

/*
	Get Peers:
		every configured port except the given one, regardless of status, so DEAD peers stay addressable
*/

func (d *Directory) GetPeers(ctx context.Context, excludingPort int) ([]int, error) {
	peers := make([]int, 0, len(d.ports))
	for _, port := range d.ports {
		if port != excludingPort { peers = append(peers, port) }
	}

	return peers, nil
}

/*
	Notify:
		sink for diagnostic messages from any replica, logged and fanned out to event subscribers
*/

func (d *Directory) Notify(ctx context.Context, message string) error {
	d.Log.Warn(message)
	d.Events.Publish(ctx, Event{ Kind: NotifyEvent, Message: message })

	return nil
}

func (d *Directory) ListStatuses() map[int]system.PeerStatus {
	statuses := make(map[int]system.PeerStatus, len(d.ports))
	for _, port := range d.ports { statuses[port] = d.peers[port].GetStatus() }

	return statuses
}
