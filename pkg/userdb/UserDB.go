package userdb

import "sort"


//=========================================== User Directory


func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		users: make(map[string]*User),
	}
}

func (ud *UserDirectory) IsUsernameAvailable(username string) bool {
	ud.mutex.RLock()
	defer ud.mutex.RUnlock()

	_, exists := ud.users[username]
	return ! exists
}

/*
	Get:
		returns a copy so callers never hold a reference into the directory
*/

func (ud *UserDirectory) Get(username string) (User, bool) {
	ud.mutex.RLock()
	defer ud.mutex.RUnlock()

	user, exists := ud.users[username]
	if ! exists { return User{}, false }

	return copyUser(user), true
}

/*
	Insert:
		1.) only insert if the username is still available at apply time
		2.) return whether the user was inserted
*/

func (ud *UserDirectory) Insert(username string, passwordDigest string) bool {
	ud.mutex.Lock()
	defer ud.mutex.Unlock()

	_, exists := ud.users[username]
	if exists { return false }

	ud.users[username] = &User{
		Username: username,
		PasswordDigest: passwordDigest,
		Notifications: []string{},
	}

	return true
}

func (ud *UserDirectory) Authenticate(username string, passwordDigest string) bool {
	ud.mutex.RLock()
	defer ud.mutex.RUnlock()

	user, exists := ud.users[username]
	return exists && user.PasswordDigest == passwordDigest
}

func (ud *UserDirectory) AppendNotification(username string, notification string) bool {
	ud.mutex.Lock()
	defer ud.mutex.Unlock()

	user, exists := ud.users[username]
	if ! exists { return false }

	user.Notifications = append(user.Notifications, notification)
	return true
}

func (ud *UserDirectory) Notifications(username string) []string {
	ud.mutex.RLock()
	defer ud.mutex.RUnlock()

	user, exists := ud.users[username]
	if ! exists { return []string{} }

	return append([]string{}, user.Notifications...)
}

/*
	Drain Notifications:
		remove exactly the first count notifications, the ones captured for the caller before the transaction
		started, so anything queued after the capture survives for the next drain
*/

func (ud *UserDirectory) DrainNotifications(username string, count int) []string {
	ud.mutex.Lock()
	defer ud.mutex.Unlock()

	user, exists := ud.users[username]
	if ! exists || count <= 0 { return []string{} }
	if count > len(user.Notifications) { count = len(user.Notifications) }

	drained := append([]string{}, user.Notifications[:count]...)
	user.Notifications = append([]string{}, user.Notifications[count:]...)

	return drained
}

func (ud *UserDirectory) Len() int {
	ud.mutex.RLock()
	defer ud.mutex.RUnlock()

	return len(ud.users)
}

/*
	Snapshot:
		users sorted by username, used both for the bbolt store and for recovery payloads
*/

func (ud *UserDirectory) Snapshot() []User {
	ud.mutex.RLock()
	defer ud.mutex.RUnlock()

	snapshot := make([]User, 0, len(ud.users))
	for _, user := range ud.users { snapshot = append(snapshot, copyUser(user)) }

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].Username < snapshot[j].Username })
	return snapshot
}

func (ud *UserDirectory) Restore(users []User) {
	restored := make(map[string]*User, len(users))
	for _, user := range users {
		copied := copyUser(&user)
		restored[user.Username] = &copied
	}

	ud.mutex.Lock()
	defer ud.mutex.Unlock()

	ud.users = restored
}

func copyUser(user *User) User {
	notifications := []string{}
	if user.Notifications != nil { notifications = append(notifications, user.Notifications...) }

	return User{
		Username: user.Username,
		PasswordDigest: user.PasswordDigest,
		Notifications: notifications,
	}
}
