package system

import "sync"


type PeerStatus int

const (
	Unknown PeerStatus = -1
	Empty PeerStatus = 0
	Busy PeerStatus = 1
	Dead PeerStatus = 2
)

type TxnRole string

const (
	Idle TxnRole = "idle"
	Coordinating TxnRole = "coordinating"
	Participating TxnRole = "participating"
)

type Peer struct {
	Port int

	mutex sync.Mutex
	status PeerStatus
}

/*
	the per replica transaction slot

	a replica is inside at most one transaction at a time, either coordinating it or participating in it
*/

type Participation struct {
	mutex sync.Mutex
	role TxnRole
	txID string
}

const NAME = "System"
