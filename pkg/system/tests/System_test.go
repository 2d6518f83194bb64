package systemtests

import "sync"
import "sync/atomic"
import "testing"

import "github.com/sirgallo/rdoc/pkg/system"


func TestParticipationSingleSlot(t *testing.T) {
	participation := system.NewParticipation()

	if ! participation.TransitionToCoordinator("tx-1") {
		t.Errorf("expected idle replica to accept coordinator role")
	}

	if participation.TransitionToParticipant("tx-2") {
		t.Errorf("replica inside tx-1 accepted a second transaction")
	}

	if participation.TransitionToIdle("tx-2") {
		t.Errorf("release for a transaction not holding the slot succeeded")
	}

	role, txID := participation.Current()
	t.Logf("actual role: %s, actual tx: %s", role, txID)
	if role != system.Coordinating || txID != "tx-1" {
		t.Errorf("actual slot not equal to expected: actual(%s, %s), expected(%s, %s)\n", role, txID, system.Coordinating, "tx-1")
	}

	if ! participation.TransitionToIdle("tx-1") { t.Errorf("release of held slot failed") }
	if ! participation.TransitionToParticipant("tx-2") { t.Errorf("idle replica refused participant role") }
}

func TestParticipationConcurrentClaims(t *testing.T) {
	participation := system.NewParticipation()
	claimed := int64(0)

	var claimWG sync.WaitGroup
	for i := 0; i < 32; i++ {
		claimWG.Add(1)
		go func(i int) {
			defer claimWG.Done()
			if participation.TransitionToParticipant(string(rune('a' + i))) { atomic.AddInt64(&claimed, 1) }
		}(i)
	}

	claimWG.Wait()

	if claimed != 1 {
		t.Errorf("actual claims not equal to expected: actual(%d), expected(%d)\n", claimed, 1)
	}
}

func TestPeerSwapStatus(t *testing.T) {
	peer := system.NewPeer(1300, system.Dead)

	previous := peer.SwapStatus(system.Empty)
	if previous != system.Dead {
		t.Errorf("actual previous status not equal to expected: actual(%s), expected(%s)\n", previous, system.Dead)
	}

	if peer.GetStatus() != system.Empty {
		t.Errorf("actual status not equal to expected: actual(%s), expected(%s)\n", peer.GetStatus(), system.Empty)
	}

	unchanged := peer.SwapStatus(system.Empty)
	if unchanged != system.Empty {
		t.Errorf("actual previous status not equal to expected: actual(%s), expected(%s)\n", unchanged, system.Empty)
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, status := range []system.PeerStatus{ system.Empty, system.Busy, system.Dead, system.Unknown } {
		parsed := system.ParseStatus(status.String())
		if parsed != status {
			t.Errorf("actual parsed status not equal to expected: actual(%s), expected(%s)\n", parsed, status)
		}
	}
}
