// Package models holds the row types shared by repositories and services.
package models

// User is an account row. PasswordSecret holds the encoded
// "<saltHex>-<hashHex>" credential, never the plaintext. Timestamps are
// stored as "YYYY-MM-DD HH:MM:SS" UTC strings (see timex.StampLayout).
type User struct {
	ID             string
	Username       string
	PasswordSecret string
	CreatedAt      string
	UpdatedAt      string
}
