package domain

import "time"

// Session describes an issued bearer token. Tokens are never persisted
// server-side; this is the metadata handed back to the client at login.
type Session struct {
	Token     string
	AdminID   string
	Email     string
	Role      AdminRole
	IssuedAt  time.Time
	ExpiresAt time.Time
}
