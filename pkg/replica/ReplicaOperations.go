package replica

import "context"
import "errors"
import "time"

import "github.com/sirgallo/rdoc/pkg/chataddr"
import "github.com/sirgallo/rdoc/pkg/docdb"
import "github.com/sirgallo/rdoc/pkg/docrpc"
import "github.com/sirgallo/rdoc/pkg/txn"
import "github.com/sirgallo/rdoc/pkg/utils"


//=========================================== Client Operations


/*
	every write follows the same shape:
		1.) build the transaction for the op and caller, nothing is mutated yet
		2.) claim the coordinator slot (see run), preconditions are only read while it is held
		3.) validate preconditions against local state, a failure returns a typed result and never starts the protocol
		4.) fill in the transaction, state only changes inside apply once the commit decision is known
*/

func (r *Replica) CreateUser(ctx context.Context, req *docrpc.CreateUserRequest) (*txn.Result, error) {
	t := txn.NewTransaction(txn.CreateUser, req.Username)

	precheck := func() *txn.Result {
		if req.Username == "" || req.Password == "" { return txn.Failure(txn.InvalidRequest, "Username and password are required.") }
		if ! r.Users.IsUsernameAvailable(req.Username) { return txn.Failure(txn.UsernameTaken, txn.MsgUsernameTaken) }

		t.PasswordDigest = utils.DigestPassword(req.Password)
		return nil
	}

	return r.run(t, precheck, func() *txn.Result { return txn.Success("Create user succeed") }), nil
}

func (r *Replica) Login(ctx context.Context, req *docrpc.LoginRequest) (*txn.Result, error) {
	t := txn.NewTransaction(txn.Login, req.Username)

	precheck := func() *txn.Result {
		if r.Sessions.IsLoggedIn(req.Username) { return txn.Failure(txn.AlreadyLoggedIn, txn.MsgAlreadyLoggedIn) }

		digest := utils.DigestPassword(req.Password)
		if ! r.Users.Authenticate(req.Username, digest) { return txn.Failure(txn.InvalidCredentials, txn.MsgInvalidCredentials) }

		t.Token = utils.GenerateSessionToken(digest, time.Now())
		return nil
	}

	return r.run(t, precheck, func() *txn.Result {
		r.Log.Info("New user logged in:", req.Username)
		return &txn.Result{ Code: txn.OK, Message: t.Token, Token: t.Token }
	}), nil
}

func (r *Replica) Logout(ctx context.Context, req *docrpc.UserRequest) (*txn.Result, error) {
	t := txn.NewTransaction(txn.Logout, req.Username)

	precheck := func() *txn.Result {
		return r.checkSession(req.Username, req.Token)
	}

	return r.run(t, precheck, func() *txn.Result {
		r.Log.Info("User logged out:", req.Username)
		return txn.Success("succeed")
	}), nil
}

func (r *Replica) CreateDocument(ctx context.Context, req *docrpc.CreateDocumentRequest) (*txn.Result, error) {
	t := txn.NewTransaction(txn.CreateDocument, req.Username)

	precheck := func() *txn.Result {
		failure := r.checkSession(req.Username, req.Token)
		if failure != nil { return failure }

		nameErr := docdb.ValidateName(req.DocName)
		if nameErr != nil { return txn.Failure(txn.InvalidRequest, nameErr.Error()) }
		if req.SectionCount <= 0 { return txn.Failure(txn.InvalidRequest, "Section count must be positive.") }
		if r.Documents.Exists(req.DocName) { return txn.Failure(txn.DocumentExists, txn.MsgDocumentExists) }

		t.DocName = req.DocName
		t.SectionCount = req.SectionCount
		return nil
	}

	return r.run(t, precheck, func() *txn.Result {
		r.Log.Info("File successfully created:", req.DocName)
		return txn.Success(txn.MsgSucceed)
	}), nil
}

/*
	Edit:
		preconditions --> logged in, token matches, document exists, caller has access, section exists,
		section is free

		the chat address is read from the table (the document's current one, or the lowest free one) and carried
		in the transaction, the section content is returned once the claim is committed
*/

func (r *Replica) Edit(ctx context.Context, req *docrpc.SectionRequest) (*txn.Result, error) {
	t := txn.NewTransaction(txn.Edit, req.Username)

	var section *docdb.Section
	var addr uint32

	precheck := func() *txn.Result {
		failure := r.checkSession(req.Username, req.Token)
		if failure != nil { return failure }

		_, found, failure := r.lookupSection(req.Username, req.DocName, req.SectionIndex)
		if failure != nil { return failure }
		if found.IsOccupied() { return txn.Failure(txn.SectionBusy, txn.MsgSectionBusy) }

		next, addrErr := r.Chat.NextAvailable(req.DocName)
		if addrErr != nil { return txn.Failure(txn.Internal, addrErr.Error()) }

		section, addr = found, next

		t.DocName = req.DocName
		t.SectionIndex = req.SectionIndex
		t.ChatAddress = addr
		return nil
	}

	return r.run(t, precheck, func() *txn.Result {
		content, readErr := r.Documents.ReadSection(section)
		if readErr != nil { return txn.Failure(txn.Internal, "Exception while accessing the section") }

		assigned, ok := r.Chat.Lookup(req.DocName)
		if ! ok { assigned = addr }

		formatted := chataddr.Format(assigned)
		return &txn.Result{ Code: txn.OK, Message: formatted, ChatAddress: formatted, Content: content }
	}), nil
}

/*
	Edit End:
		the caller must be the current occupant of the section, the uploaded content travels in the transaction
*/

func (r *Replica) EditEnd(ctx context.Context, req *docrpc.EditEndRequest) (*txn.Result, error) {
	t := txn.NewTransaction(txn.EditEnd, req.Username)

	precheck := func() *txn.Result {
		failure := r.checkSession(req.Username, req.Token)
		if failure != nil { return failure }

		_, section, failure := r.lookupSection(req.Username, req.DocName, req.SectionIndex)
		if failure != nil { return failure }

		occupant, occupied := section.Occupant()
		if ! occupied || occupant != req.Username { return txn.Failure(txn.NotEditing, txn.MsgNotEditing) }

		t.DocName = req.DocName
		t.SectionIndex = req.SectionIndex
		t.Content = req.Content
		if t.Content == nil { t.Content = []byte{} }
		return nil
	}

	return r.run(t, precheck, func() *txn.Result { return txn.Success(txn.MsgSucceed) }), nil
}

/*
	Share Doc:
		only the creator shares, the target must exist, sharing with someone who already has access succeeds
		without a transaction
*/

func (r *Replica) ShareDoc(ctx context.Context, req *docrpc.ShareRequest) (*txn.Result, error) {
	t := txn.NewTransaction(txn.Share, req.Username)

	precheck := func() *txn.Result {
		failure := r.checkSession(req.Username, req.Token)
		if failure != nil { return failure }

		doc, ok := r.Documents.Get(req.DocName)
		if ! ok { return txn.Failure(txn.DocumentNotFound, txn.MsgDocumentNotFound) }
		if ! doc.IsCreator(req.Username) { return txn.Failure(txn.NoPermission, txn.MsgNoPermission) }
		if r.Users.IsUsernameAvailable(req.TargetUser) { return txn.Failure(txn.TargetNotFound, txn.MsgTargetNotFound) }
		if doc.HasPermit(req.TargetUser) { return txn.Success(txn.MsgAlreadyShared) }

		t.DocName = req.DocName
		t.TargetUser = req.TargetUser
		return nil
	}

	return r.run(t, precheck, func() *txn.Result { return txn.Success(txn.MsgSucceed) }), nil
}

/*
	Get Notifications:
		1.) capture the unread notifications before the transaction
		2.) the transaction removes exactly that many, so anything queued meanwhile stays for the next call
		3.) on abort nothing is returned and nothing is removed
*/

func (r *Replica) GetNotifications(ctx context.Context, req *docrpc.UserRequest) (*txn.Result, error) {
	t := txn.NewTransaction(txn.GetNotifications, req.Username)

	var captured []string

	precheck := func() *txn.Result {
		failure := r.checkSession(req.Username, req.Token)
		if failure != nil { return failure }

		captured = r.Users.Notifications(req.Username)
		if len(captured) == 0 { return &txn.Result{ Code: txn.OK, Message: txn.MsgSucceed, Notifications: []string{} } }

		t.NotificationCount = len(captured)
		return nil
	}

	return r.run(t, precheck, func() *txn.Result {
		return &txn.Result{ Code: txn.OK, Message: txn.MsgSucceed, Notifications: captured }
	}), nil
}

/*
	run:
		1.) take the coordinator mutex so local coordinations run one at a time
		2.) claim the coordinator slot, a replica already inside another transaction aborts the request
			--> while the slot is held no commit from another coordinator applies locally, so preconditions stay
				true until the vote
		3.) run the precheck, a non nil result ends the request without a transaction
		4.) drive the transaction and map the outcome to a result
			aborted --> "Request aborted."
			committed but the local claim was lost --> the matching precondition failure
			committed with any other local apply error --> internal failure
			committed --> the success result built by the caller
*/

func (r *Replica) run(t *txn.Transaction, precheck func() *txn.Result, onCommit func() *txn.Result) *txn.Result {
	r.coordMutex.Lock()
	defer r.coordMutex.Unlock()

	if ! r.participation.TransitionToCoordinator(t.ID) {
		r.Log.Warn("already inside a transaction, refusing to coordinate", t.String())
		return txn.AbortedResult()
	}

	defer r.participation.TransitionToIdle(t.ID)

	failure := precheck()
	if failure != nil { return failure }

	committed, applyErr := r.BeginTransaction(t)
	if ! committed { return txn.AbortedResult() }

	if applyErr != nil { return applyFailure(applyErr) }

	r.Log.Info(string(t.Op) + ": SUCCESS")
	return onCommit()
}

func applyFailure(applyErr error) *txn.Result {
	switch {
		case errors.Is(applyErr, ErrSectionOccupied):
			return txn.Failure(txn.SectionBusy, txn.MsgSectionBusy)
		case errors.Is(applyErr, ErrUsernameTaken):
			return txn.Failure(txn.UsernameTaken, txn.MsgUsernameTaken)
		default:
			return txn.Failure(txn.Internal, applyErr.Error())
	}
}
