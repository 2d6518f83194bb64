package replica

import "context"

import "google.golang.org/grpc/codes"
import "google.golang.org/grpc/status"

import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/system"
import "github.com/sirgallo/rdoc/pkg/txn"


//=========================================== Transaction Participant


/*
	Receive Prepare:
		1.) claim the local transaction slot as participant, if already inside a transaction vote no
		2.) own directory status must be EMPTY, otherwise release the slot and vote no
			--> a replica marked DEAD refuses with an error instead, so it stays out of the vote count until recovered
		3.) vote no if the transaction conflicts with local state (section held by someone else, username taken)
		4.) set own status BUSY, store the transaction under its id and vote yes

	a no vote never leaves state behind, so the coordinator does not need to reach it on abort
*/

func (r *Replica) ReceivePrepare(ctx context.Context, req *docrpc.PrepareRequest) (*docrpc.VoteResponse, error) {
	t := req.Txn
	r.Log.Info("Prepare: received", t.String(), "from", system.ServerName(req.CoordinatorPort))

	no := &docrpc.VoteResponse{ Port: r.Port, Vote: false }

	validErr := t.Validate()
	if validErr != nil || t.ID != req.TxID {
		r.Log.Warn("Abort: sent, malformed transaction", req.TxID)
		return no, nil
	}

	if ! r.participation.TransitionToParticipant(t.ID) {
		r.Log.Info("Abort: sent, busy with another transaction", t.ID)
		return no, nil
	}

	ownStatus, statusErr := r.Directory.GetStatus(ctx, r.Port)
	if statusErr != nil {
		r.participation.TransitionToIdle(t.ID)
		r.Log.Warn("Abort: sent, unable to read own status:", statusErr.Error())
		return no, nil
	}

	if ownStatus == system.Dead {
		r.participation.TransitionToIdle(t.ID)
		r.Log.Warn("marked dead, refusing prepare until recovered")
		return nil, status.Error(codes.Unavailable, "replica is marked dead")
	}

	if ownStatus != system.Empty {
		r.participation.TransitionToIdle(t.ID)
		r.Log.Info("Abort: sent, own status is", ownStatus.String())
		return no, nil
	}

	conflictErr := r.conflicts(&t)
	if conflictErr != nil {
		r.participation.TransitionToIdle(t.ID)
		r.Log.Info("Abort: sent,", conflictErr.Error())
		return no, nil
	}

	setErr := r.Directory.SetStatus(ctx, r.Port, system.Busy)
	if setErr != nil {
		r.participation.TransitionToIdle(t.ID)
		r.Log.Warn("Abort: sent, unable to set status busy:", setErr.Error())
		return no, nil
	}

	r.pending.Store(t.ID, &t)

	r.Log.Info("Agree: sent", t.ID)
	return &docrpc.VoteResponse{ Port: r.Port, Vote: true }, nil
}

/*
	Receive Commit:
		1.) remove the pending transaction, an unknown id is a protocol violation and is refused
		2.) apply it to the local tables
		3.) release the transaction slot and reset own status to EMPTY
*/

func (r *Replica) ReceiveCommit(ctx context.Context, req *docrpc.DecisionRequest) (*docrpc.AckResponse, error) {
	stored, ok := r.pending.LoadAndDelete(req.TxID)
	if ! ok {
		r.Log.Error("commit received for", ErrUnknownTransaction.Error(), req.TxID)
		return nil, status.Errorf(codes.FailedPrecondition, "%s: %s", ErrUnknownTransaction.Error(), req.TxID)
	}

	t := stored.(*txn.Transaction)
	r.Log.Info("Commit: received", t.String())

	applyErr := r.apply(t)
	if applyErr != nil { r.Log.Error("error applying", t.String(), ":", applyErr.Error()) }

	r.release(ctx, t.ID)
	return &docrpc.AckResponse{ Port: r.Port, Ack: true }, nil
}

/*
	Receive Abort:
		discard the pending transaction and reset own status, there is no state to roll back
*/

func (r *Replica) ReceiveAbort(ctx context.Context, req *docrpc.DecisionRequest) (*docrpc.AckResponse, error) {
	r.Log.Info("Abort: received", req.TxID)

	_, ok := r.pending.LoadAndDelete(req.TxID)
	if ok { r.release(ctx, req.TxID) }

	return &docrpc.AckResponse{ Port: r.Port, Ack: true }, nil
}

func (r *Replica) release(ctx context.Context, txID string) {
	r.participation.TransitionToIdle(txID)

	setErr := r.Directory.SetStatus(ctx, r.Port, system.Empty)
	if setErr != nil { r.Log.Error("unable to reset own status:", setErr.Error()) }
}
