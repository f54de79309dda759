package models

import "database/sql"

// Session is a session row. SessionKey is the opaque bearer token a caller
// presents to prove an authenticated session; it is rotated on every
// successful authentication. UserID is null while the session is unbound.
type Session struct {
	ID         string
	SessionKey string
	UserID     sql.NullString
	CreatedAt  string
	UpdatedAt  string
}
