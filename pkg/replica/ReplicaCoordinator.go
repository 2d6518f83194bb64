package replica

import "context"
import "fmt"
import "sync"
import "time"

import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/system"
import "github.com/sirgallo/rdoc/pkg/txn"


//=========================================== Transaction Coordinator


/*
	Begin Transaction:
		1.) the caller must already hold the local coordinator slot for this transaction
		2.) prepare across every peer and reach a decision
		3.) deliver the decision, applying locally on commit

	returns whether the transaction committed, and any error applying it locally after commit
*/

func (r *Replica) BeginTransaction(t *txn.Transaction) (bool, error) {
	validErr := t.Validate()
	if validErr != nil { return false, validErr }

	role, heldFor := r.participation.Current()
	if role != system.Coordinating || heldFor != t.ID { return false, fmt.Errorf("%w: %s", ErrSlotNotHeld, t.ID) }

	decision := r.Prepare(t)
	return r.CommitOrAbort(t.ID, decision)
}

/*
	Prepare:
		1.) own status in the directory must be EMPTY, otherwise abort without contacting anyone
		2.) set own status to BUSY and store the transaction as pending
		3.) fetch every peer except self and send receivePrepare to all of them concurrently
		4.) poll the vote map until every peer answered or the poll budget is spent
		5.) peers with no recorded vote are marked DEAD and a down notice is sent to the directory
		6.) commit only if every responding peer voted yes and at least half the peers responded
*/

func (r *Replica) Prepare(t *txn.Transaction) bool {
	ctx, cancel := context.WithTimeout(context.Background(), r.rpcTimeout)
	defer cancel()

	status, statusErr := r.Directory.GetStatus(ctx, r.Port)
	if statusErr != nil {
		r.Log.Error("unable to read own status, aborting:", statusErr.Error())
		return false
	}

	if status != system.Empty {
		r.Log.Warn("own status is", status.String(), "too busy to coordinate", t.String())
		return false
	}

	setErr := r.Directory.SetStatus(ctx, r.Port, system.Busy)
	if setErr != nil {
		r.Log.Error("unable to set own status busy, aborting:", setErr.Error())
		return false
	}

	r.pending.Store(t.ID, t)

	peers, peersErr := r.Directory.GetPeers(ctx, r.Port)
	if peersErr != nil {
		r.Log.Error("unable to fetch peers, aborting:", peersErr.Error())
		return false
	}

	req := &docrpc.PrepareRequest{ TxID: t.ID, CoordinatorPort: r.Port, Txn: *t }

	liveVotes := &sync.Map{}
	r.votes.Store(t.ID, liveVotes)

	r.Log.Info("Prepare: sent", t.String(), "to peers", peers)

	votes := r.broadcast(peers, liveVotes, func(ctx context.Context, port int) (bool, error) {
		res, rpcErr := r.Transport.ReceivePrepare(ctx, port, req)
		if rpcErr != nil { return false, rpcErr }

		return res.Vote, nil
	})

	r.votes.Store(t.ID, votes)
	r.markDead(missingPeers(peers, votes))

	responded, yes := Tally(votes)
	decision := Decide(len(peers), responded, yes)

	r.Log.Info("votes for", t.ID, "peers:", len(peers), "responded:", responded, "yes:", yes, "commit:", decision)
	return decision
}

/*
	Commit Or Abort:
		1.) commit goes to every peer with a recorded vote, abort only to the peers that voted yes
		2.) poll acknowledgements with the same budget, peers that never acknowledge are marked DEAD
		3.) on commit apply the pending transaction locally, on abort discard it
		4.) clear the pending entry, vote map and ack map, then reset own status to EMPTY

	a transaction that never reached the prepared state (no pending entry) is simply dropped
*/

func (r *Replica) CommitOrAbort(txID string, commit bool) (bool, error) {
	stored, prepared := r.pending.Load(txID)
	if ! prepared {
		if commit { panic(fmt.Sprintf("commit requested for %s: %s", ErrUnknownTransaction.Error(), txID)) }

		r.votes.Delete(txID)
		return false, nil
	}

	t := stored.(*txn.Transaction)
	defer r.finish(txID)

	votes := map[int]bool{}
	loaded, ok := r.votes.Load(txID)
	if ok {
		frozen, isFrozen := loaded.(map[int]bool)
		if isFrozen { votes = frozen }
	}

	targets := []int{}
	for port, vote := range votes {
		if commit || vote { targets = append(targets, port) }
	}

	req := &docrpc.DecisionRequest{ TxID: txID, CoordinatorPort: r.Port }
	liveAcks := &sync.Map{}
	r.acks.Store(txID, liveAcks)

	var send func(ctx context.Context, port int) (bool, error)
	if commit {
		r.Log.Info("Commit: sent", t.String(), "to peers", targets)
		send = func(ctx context.Context, port int) (bool, error) {
			res, rpcErr := r.Transport.ReceiveCommit(ctx, port, req)
			if rpcErr != nil { return false, rpcErr }

			return res.Ack, nil
		}
	} else {
		r.Log.Info("Abort: sent", t.String(), "to peers", targets)
		send = func(ctx context.Context, port int) (bool, error) {
			res, rpcErr := r.Transport.ReceiveAbort(ctx, port, req)
			if rpcErr != nil { return false, rpcErr }

			return res.Ack, nil
		}
	}

	acks := r.broadcast(targets, liveAcks, send)
	r.markDead(missingPeers(targets, acks))

	if ! commit { return false, nil }

	applyErr := r.apply(t)
	if applyErr != nil {
		r.Log.Error("error applying committed transaction", t.String(), ":", applyErr.Error())
		return true, applyErr
	}

	return true, nil
}

/*
	broadcast:
		1.) send to every port concurrently, each rpc bounded by the rpc timeout
		2.) record each answer in the live response map
		3.) poll the map up to the poll budget, stopping early once every port answered or every call returned
		4.) return a frozen copy, answers arriving later are ignored
*/

func (r *Replica) broadcast(ports []int, responses *sync.Map, send func(ctx context.Context, port int) (bool, error)) map[int]bool {
	var wg sync.WaitGroup

	for _, port := range ports {
		wg.Add(1)
		go func(port int) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), r.rpcTimeout)
			defer cancel()

			value, sendErr := send(ctx, port)
			if sendErr != nil {
				r.Log.Warn("no response from", system.ServerName(port), ":", sendErr.Error())
				return
			}

			responses.Store(port, value)
		}(port)
	}

	allReturned := make(chan struct{})
	go func() {
		wg.Wait()
		close(allReturned)
	}()

	for attempt := 0; attempt < r.pollAttempts; attempt++ {
		if countEntries(responses) >= len(ports) { break }

		select {
			case <-allReturned:
				attempt = r.pollAttempts
			case <-time.After(r.pollInterval):
		}
	}

	frozen := make(map[int]bool)
	responses.Range(func(key, value interface{}) bool {
		frozen[key.(int)] = value.(bool)
		return true
	})

	return frozen
}

/*
	mark dead:
		record the DEAD status for each unresponsive peer and send the down notice to the directory
*/

func (r *Replica) markDead(ports []int) {
	if len(ports) == 0 { return }

	ctx, cancel := context.WithTimeout(context.Background(), r.rpcTimeout)
	defer cancel()

	for _, port := range ports {
		r.Log.Warn(system.ServerName(port), "did not respond within the retry budget, marking dead")

		setErr := r.Directory.SetStatus(ctx, port, system.Dead)
		if setErr != nil { r.Log.Error("unable to mark", system.ServerName(port), "dead:", setErr.Error()) }

		notifyErr := r.Directory.Notify(ctx, downNotice(port))
		if notifyErr != nil { r.Log.Error("unable to send down notice:", notifyErr.Error()) }
	}
}

func (r *Replica) finish(txID string) {
	r.pending.Delete(txID)
	r.votes.Delete(txID)
	r.acks.Delete(txID)

	ctx, cancel := context.WithTimeout(context.Background(), r.rpcTimeout)
	defer cancel()

	setErr := r.Directory.SetStatus(ctx, r.Port, system.Empty)
	if setErr != nil { r.Log.Error("unable to reset own status:", setErr.Error()) }
}

func countEntries(m *sync.Map) int {
	count := 0
	m.Range(func(key, value interface{}) bool {
		count++
		return true
	})

	return count
}
