package replica

import "os"

import "github.com/sirgallo/rdoc/pkg/chataddr"
import "github.com/sirgallo/rdoc/pkg/docdb"
import "github.com/sirgallo/rdoc/pkg/logger"
import "github.com/sirgallo/rdoc/pkg/recovery"
import "github.com/sirgallo/rdoc/pkg/store"
import "github.com/sirgallo/rdoc/pkg/system"
import "github.com/sirgallo/rdoc/pkg/userdb"


//=========================================== Replica


/*
	New Replica:
		1.) create the data directory for the port if it does not exist
		2.) load the user and document directories from the store, a missing store starts both empty
		3.) sessions and chat addresses always start empty
*/

func NewReplica(opts *ReplicaOpts) (*Replica, error) {
	mkdirErr := os.MkdirAll(opts.DataDir, 0755)
	if mkdirErr != nil { return nil, mkdirErr }

	pollAttempts := opts.PollAttempts
	if pollAttempts <= 0 { pollAttempts = DefaultPollAttempts }

	pollInterval := opts.PollInterval
	if pollInterval <= 0 { pollInterval = DefaultPollInterval }

	rpcTimeout := opts.RPCTimeout
	if rpcTimeout <= 0 { rpcTimeout = DefaultRPCTimeout }

	r := &Replica{
		Port: opts.Port,
		DataDir: opts.DataDir,
		Directory: opts.Directory,
		Transport: opts.Transport,

		Users: userdb.NewUserDirectory(),
		Sessions: userdb.NewSessionTable(),
		Documents: docdb.NewDocumentDirectory(opts.DataDir),
		Chat: chataddr.NewTable(),
		Store: store.NewStore(opts.DataDir),

		participation: system.NewParticipation(),

		pollAttempts: pollAttempts,
		pollInterval: pollInterval,
		rpcTimeout: rpcTimeout,

		Log: *clog.NewCustomLog(system.ServerName(opts.Port)),
	}

	users, documents, loadErr := r.Store.Load()
	if loadErr != nil { return nil, loadErr }

	r.Users.Restore(users)
	r.Documents.Restore(documents)

	r.Log.Info("replica initialized with data directory", r.DataDir)
	return r, nil
}

func (r *Replica) Tables() recovery.Tables {
	return recovery.Tables{
		Users: r.Users,
		Sessions: r.Sessions,
		Documents: r.Documents,
		Chat: r.Chat,
	}
}

/*
	Persist:
		write the user and document directories to the store, called on shutdown and after recovery
*/

func (r *Replica) Persist() error {
	saveErr := r.Store.Save(r.Users.Snapshot(), r.Documents.Snapshot())
	if saveErr != nil {
		r.Log.Error("error persisting replica state:", saveErr.Error())
		return saveErr
	}

	return nil
}

func (r *Replica) Participation() (system.TxnRole, string) {
	return r.participation.Current()
}
