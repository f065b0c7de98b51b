package domain

import "time"

// User is an operator account allowed to use the API.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
}

// AuthToken is the opaque session token issued at login.
type AuthToken struct {
	Key       string
	UserID    int64
	CreatedAt time.Time
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  User
}
