package replica

import "context"
import "fmt"
import "io"

import "github.com/google/uuid"
import "google.golang.org/grpc/codes"
import "google.golang.org/grpc/status"

import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/recovery"
import "github.com/sirgallo/rdoc/pkg/system"


//=========================================== Replica Recovery


/*
	Help Recover Data:
		1.) hold the local transaction slot so no commit changes the tables while they are copied
		2.) build the backup with every section path rewritten for the target port
		3.) ship it to the target and report its answer
*/

func (r *Replica) HelpRecoverData(ctx context.Context, req *docrpc.HelpRecoverRequest) (*docrpc.RecoverResponse, error) {
	slot := "recovery-" + uuid.NewString()
	if ! r.participation.TransitionToCoordinator(slot) {
		return nil, status.Error(codes.Unavailable, ErrReplicaBusy.Error())
	}

	defer r.participation.TransitionToIdle(slot)

	r.Log.Info("helping", system.ServerName(req.TargetPort), "recover")

	backup, buildErr := recovery.BuildBackup(r.Tables(), r.Port, req.TargetPort)
	if buildErr != nil {
		r.Log.Error("error building backup:", buildErr.Error())
		return &docrpc.RecoverResponse{ Success: false, Message: buildErr.Error() }, nil
	}

	res, shipErr := r.Transport.RecoverData(ctx, req.TargetPort, backup)
	if shipErr != nil {
		r.Log.Error("error shipping backup to", system.ServerName(req.TargetPort), ":", shipErr.Error())
		return &docrpc.RecoverResponse{ Success: false, Message: shipErr.Error() }, nil
	}

	return res, nil
}

/*
	Recover Data:
		grpc client stream, chunks are assembled into the backup and installed once the stream closes
*/

func (r *Replica) RecoverData(stream docrpc.ReplicaService_RecoverDataServer) error {
	assembler := recovery.NewAssembler()

	for {
		chunk, recvErr := stream.Recv()
		if recvErr == io.EOF { break }
		if recvErr != nil {
			r.Log.Error("error receiving recovery chunk:", recvErr.Error())
			return recvErr
		}

		addErr := assembler.Add(chunk)
		if addErr != nil { return status.Error(codes.InvalidArgument, addErr.Error()) }
	}

	backup, asmErr := assembler.Backup()
	if asmErr != nil { return status.Error(codes.InvalidArgument, asmErr.Error()) }

	res := &docrpc.RecoverResponse{ Success: true, Message: "recovered" }

	installErr := r.InstallBackup(stream.Context(), backup)
	if installErr != nil { res = &docrpc.RecoverResponse{ Success: false, Message: installErr.Error() } }

	return stream.SendAndClose(res)
}

/*
	Install Backup:
		1.) the backup must be addressed to this replica
		2.) wipe the data directory and write every shipped file, a failure leaves the tables and status untouched
		3.) swap every table wholesale
		4.) persist the directories and flip own status to EMPTY
*/

func (r *Replica) InstallBackup(ctx context.Context, backup *recovery.Backup) error {
	if backup.TargetPort != r.Port { return fmt.Errorf("%w: %d", ErrWrongTarget, backup.TargetPort) }

	slot := "recovery-" + uuid.NewString()
	if ! r.participation.TransitionToParticipant(slot) { return ErrReplicaBusy }
	defer r.participation.TransitionToIdle(slot)

	installErr := recovery.Install(backup, r.DataDir)
	if installErr != nil {
		r.Log.Error("recovery aborted:", installErr.Error())
		return installErr
	}

	recovery.RestoreTables(r.Tables(), backup)

	persistErr := r.Persist()
	if persistErr != nil { r.Log.Error("unable to persist recovered state:", persistErr.Error()) }

	setErr := r.Directory.SetStatus(ctx, r.Port, system.Empty)
	if setErr != nil { return setErr }

	r.Log.Info("recovered from", system.ServerName(backup.SourcePort), "with", backup.FileCount, "files")
	return nil
}
