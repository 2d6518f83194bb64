package system

import "github.com/sirgallo/rdoc/pkg/logger"


//=========================================== System


var Log = clog.NewCustomLog(NAME)


func NewPeer(port int, status PeerStatus) *Peer {
	return &Peer{ Port: port, status: status }
}

func (peer *Peer) GetStatus() PeerStatus {
	peer.mutex.Lock()
	defer peer.mutex.Unlock()

	return peer.status
}

/*
	Swap Status:
		set the new status and return the one it replaced, as a single step
*/

func (peer *Peer) SwapStatus(status PeerStatus) PeerStatus {
	peer.mutex.Lock()
	defer peer.mutex.Unlock()

	previous := peer.status
	peer.status = status

	return previous
}

func NewParticipation() *Participation {
	return &Participation{ role: Idle }
}

/*
	Transition To Coordinator / Participant:
		non blocking, only succeeds from Idle
			--> a replica already inside a transaction refuses the new one instead of waiting for it
*/

func (p *Participation) TransitionToCoordinator(txID string) bool {
	return p.transitionFromIdle(Coordinating, txID)
}

func (p *Participation) TransitionToParticipant(txID string) bool {
	return p.transitionFromIdle(Participating, txID)
}

/*
	Transition To Idle:
		release the slot, only if it is held for the given transaction
*/

func (p *Participation) TransitionToIdle(txID string) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.role == Idle || p.txID != txID { return false }

	Log.Debug("transaction", txID, "released from role", string(p.role))
	p.role = Idle
	p.txID = ""

	return true
}

func (p *Participation) Current() (TxnRole, string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.role, p.txID
}

func (p *Participation) transitionFromIdle(role TxnRole, txID string) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.role != Idle { return false }

	p.role = role
	p.txID = txID

	return true
}
