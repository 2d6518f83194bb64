package replica

import "fmt"

import "github.com/sirgallo/rdoc/pkg/txn"


//=========================================== Apply


/*
	Apply:
		the one place replica state changes, run identically by the coordinator on commit and by every participant
		on receiveCommit

		CREATE_USER        --> insert the user, fails with ErrUsernameTaken if the name was taken meanwhile
		LOGIN              --> create or replace the session with the carried token
		LOGOUT             --> null the session token
		EDIT               --> occupy the section (ErrSectionOccupied if someone else holds it), record the chat address
		EDIT_END           --> write the content, release the section, drop the chat address once nothing is occupied
		CREATE_DOCUMENT    --> build the document with its empty sections
		SHARE              --> add the author, queue a notification for them
		GET_NOTIFICATIONS  --> drop the notifications that were captured for the caller
*/

func (r *Replica) apply(t *txn.Transaction) error {
	switch t.Op {
		case txn.CreateUser:
			if ! r.Users.Insert(t.User, t.PasswordDigest) { return fmt.Errorf("%w: %s", ErrUsernameTaken, t.User) }
		case txn.Login:
			r.Sessions.Login(t.User, t.Token)
		case txn.Logout:
			r.Sessions.Logout(t.User)
		case txn.Edit:
			return r.applyEdit(t)
		case txn.EditEnd:
			return r.applyEditEnd(t)
		case txn.CreateDocument:
			_, createErr := r.Documents.Create(t.DocName, t.User, t.SectionCount)
			if createErr != nil { return createErr }
		case txn.Share:
			doc, ok := r.Documents.Get(t.DocName)
			if ! ok { return fmt.Errorf("share on missing document %s", t.DocName) }

			doc.AddAuthor(t.TargetUser)
			r.Users.AppendNotification(t.TargetUser, shareNotification(t.User, t.DocName))
		case txn.GetNotifications:
			r.Users.DrainNotifications(t.User, t.NotificationCount)
		default:
			return fmt.Errorf("unknown op %s", t.Op)
	}

	return nil
}

func (r *Replica) applyEdit(t *txn.Transaction) error {
	doc, ok := r.Documents.Get(t.DocName)
	if ! ok { return fmt.Errorf("edit on missing document %s", t.DocName) }

	section, ok := doc.Section(t.SectionIndex)
	if ! ok { return fmt.Errorf("edit on missing section %s/%d", t.DocName, t.SectionIndex) }

	if ! section.Occupy(t.User) {
		occupant, _ := section.Occupant()
		return fmt.Errorf("%w: %s/%d held by %s", ErrSectionOccupied, t.DocName, t.SectionIndex, occupant)
	}

	_, assigned := r.Chat.Lookup(t.DocName)
	if ! assigned { r.Chat.Assign(t.DocName, t.ChatAddress) }

	return nil
}

func (r *Replica) applyEditEnd(t *txn.Transaction) error {
	doc, ok := r.Documents.Get(t.DocName)
	if ! ok { return fmt.Errorf("edit end on missing document %s", t.DocName) }

	section, ok := doc.Section(t.SectionIndex)
	if ! ok { return fmt.Errorf("edit end on missing section %s/%d", t.DocName, t.SectionIndex) }

	writeErr := r.Documents.WriteSection(section, t.Content)

	if ! section.Release(t.User) { r.Log.Warn("section", t.DocName, t.SectionIndex, "was not held by", t.User) }
	if ! doc.HasOccupiedSection() { r.Chat.Release(t.DocName) }

	return writeErr
}

/*
	conflicts:
		the subset of apply failures a participant can see before voting
*/

func (r *Replica) conflicts(t *txn.Transaction) error {
	switch t.Op {
		case txn.CreateUser:
			if ! r.Users.IsUsernameAvailable(t.User) { return fmt.Errorf("%w: %s", ErrUsernameTaken, t.User) }
		case txn.Edit:
			doc, ok := r.Documents.Get(t.DocName)
			if ! ok { return nil }

			section, ok := doc.Section(t.SectionIndex)
			if ! ok { return nil }

			occupant, occupied := section.Occupant()
			if occupied { return fmt.Errorf("%w: %s/%d held by %s", ErrSectionOccupied, t.DocName, t.SectionIndex, occupant) }
	}

	return nil
}
