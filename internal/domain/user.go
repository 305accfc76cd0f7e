package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Principal is the acting identity of a request. The zero value is an
// anonymous caller.
type Principal struct {
	UserID   int64
	Username string
	Email    string
	IsAdmin  bool
}

func (p Principal) Authenticated() bool {
	return p.UserID > 0
}

func Anonymous() Principal {
	return Principal{}
}
