package userdb

import "sync"


type User struct {
	Username string
	PasswordDigest string
	Notifications []string
}

// Token is empty once the user has logged out
type Session struct {
	Username string
	Token string
}

type UserDirectory struct {
	mutex sync.RWMutex
	users map[string]*User
}

type SessionTable struct {
	sessions sync.Map
}

const NAME = "UserDB"
