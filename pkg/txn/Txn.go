package txn

import "errors"
import "fmt"

import "github.com/google/uuid"


//=========================================== Transaction


var ErrInvalidTransaction = errors.New("invalid transaction")

/*
	New Transaction:
		every transaction is identified by a freshly generated uuid, the remaining fields are set by the coordinator
		while building the intended change
*/

func NewTransaction(op Op, user string) *Transaction {
	return &Transaction{
		ID: uuid.NewString(),
		Op: op,
		User: user,
		SectionIndex: -1,
	}
}

/*
	Validate:
		structural checks only, preconditions against replica state are checked by the coordinator before
		the transaction is built
*/

func (t *Transaction) Validate() error {
	if t.ID == "" { return fmt.Errorf("%w: missing id", ErrInvalidTransaction) }
	if t.User == "" { return fmt.Errorf("%w: missing user", ErrInvalidTransaction) }

	switch t.Op {
		case CreateUser:
			if t.PasswordDigest == "" { return fmt.Errorf("%w: missing password digest", ErrInvalidTransaction) }
		case Login:
			if t.Token == "" { return fmt.Errorf("%w: missing token", ErrInvalidTransaction) }
		case Logout:
		case Edit, EditEnd:
			if t.DocName == "" || t.SectionIndex < 0 { return fmt.Errorf("%w: missing section", ErrInvalidTransaction) }
		case CreateDocument:
			if t.DocName == "" || t.SectionCount <= 0 { return fmt.Errorf("%w: missing document shape", ErrInvalidTransaction) }
		case Share:
			if t.DocName == "" || t.TargetUser == "" { return fmt.Errorf("%w: missing share target", ErrInvalidTransaction) }
		case GetNotifications:
			if t.NotificationCount < 0 { return fmt.Errorf("%w: negative notification count", ErrInvalidTransaction) }
		default:
			return fmt.Errorf("%w: unknown op %s", ErrInvalidTransaction, t.Op)
	}

	return nil
}

func (t *Transaction) String() string {
	if t.DocName == "" { return fmt.Sprintf("%s[%s] user=%s", t.Op, t.ID, t.User) }
	return fmt.Sprintf("%s[%s] user=%s doc=%s section=%d", t.Op, t.ID, t.User, t.DocName, t.SectionIndex)
}


//=========================================== Result


func Success(message string) *Result {
	return &Result{ Code: OK, Message: message }
}

func Failure(code Code, message string) *Result {
	return &Result{ Code: code, Message: message }
}

func AbortedResult() *Result {
	return Failure(Aborted, MsgAborted)
}

func (r *Result) Ok() bool {
	return r != nil && r.Code == OK
}
