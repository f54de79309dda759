// Package cryptox derives the secret material used by the auth layer:
// random hex tokens, scrypt password secrets, and a constant-time match
// check for sign-in.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. The derived key is 64 bytes so the hex form is
// 128 characters; changing these invalidates every stored secret.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	secretKeyLen = 64
)

// saltLen is the number of random bytes in a fresh password salt.
const saltLen = 16

// sessionKeyLen is the number of random bytes in a session key.
const sessionKeyLen = 32

// RandHex generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them as a hexadecimal string, so the final string length will be
// twice the size. It returns an error if the random number generator fails.
func RandHex(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// NewSessionKey returns a fresh random session key (32 bytes, hex-encoded).
func NewSessionKey() (string, error) {
	return RandHex(sessionKeyLen)
}

// DeriveSecret runs the password through scrypt with the given salt and
// returns the 64-byte derived key. Deterministic: the same password and salt
// always produce the same output.
func DeriveSecret(password, salt []byte) ([]byte, error) {
	return scrypt.Key(password, salt, scryptN, scryptR, scryptP, secretKeyLen)
}

// HashPassword generates a fresh random salt, derives the secret and returns
// the encoded "<saltHex>-<hashHex>" form for storage.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash, err := DeriveSecret([]byte(password), salt)
	if err != nil {
		return "", err
	}

	return PasswordSecret{Salt: salt, Hash: hash}.Encode(), nil
}

// Match re-derives the secret from the proof and the stored salt and compares
// it to the stored hash in constant time. Unequal lengths are a mismatch;
// ConstantTimeCompare handles that without branching on content.
func Match(proof string, secret PasswordSecret) (bool, error) {
	derived, err := DeriveSecret([]byte(proof), secret.Salt)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(derived, secret.Hash) == 1, nil
}
