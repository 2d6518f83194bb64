package userdb

import "sort"


//=========================================== Session Table (alive users)


func NewSessionTable() *SessionTable {
	return &SessionTable{}
}

/*
	Login:
		create or replace the session record, the token is computed by the coordinator and carried in the
		transaction so every replica stores the same value
*/

func (st *SessionTable) Login(username string, token string) {
	st.sessions.Store(username, Session{ Username: username, Token: token })
}

// the record stays in the table with a null token
func (st *SessionTable) Logout(username string) bool {
	_, loaded := st.sessions.Load(username)
	if ! loaded { return false }

	st.sessions.Store(username, Session{ Username: username, Token: "" })
	return true
}

func (st *SessionTable) Get(username string) (Session, bool) {
	session, loaded := st.sessions.Load(username)
	if ! loaded { return Session{}, false }

	return session.(Session), true
}

func (st *SessionTable) IsLoggedIn(username string) bool {
	session, loaded := st.Get(username)
	return loaded && session.Token != ""
}

func (st *SessionTable) Token(username string) string {
	session, _ := st.Get(username)
	return session.Token
}

func (st *SessionTable) Matches(username string, token string) bool {
	session, loaded := st.Get(username)
	return loaded && token != "" && session.Token == token
}

func (st *SessionTable) Snapshot() []Session {
	snapshot := []Session{}
	st.sessions.Range(func(key, value interface{}) bool {
		snapshot = append(snapshot, value.(Session))
		return true
	})

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].Username < snapshot[j].Username })
	return snapshot
}

func (st *SessionTable) Restore(sessions []Session) {
	st.sessions.Range(func(key, value interface{}) bool {
		st.sessions.Delete(key)
		return true
	})

	for _, session := range sessions { st.sessions.Store(session.Username, session) }
}
