package cryptox

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/avolkov/authdb/internal/common"
)

// PasswordSecret is a stored credential: a random salt plus the scrypt hash
// derived from it. The plaintext password is never stored.
type PasswordSecret struct {
	Salt []byte
	Hash []byte
}

// Encode serializes the secret as "<saltHex>-<hashHex>". Hex cannot contain
// '-', so the delimiter is unambiguous.
func (s PasswordSecret) Encode() string {
	return hex.EncodeToString(s.Salt) + "-" + hex.EncodeToString(s.Hash)
}

// ParsePasswordSecret decodes a stored "<saltHex>-<hashHex>" credential.
// Malformed input yields common.ErrCorruptSecret: that indicates a
// storage-layer bug and must not be silently swallowed by callers.
func ParsePasswordSecret(encoded string) (PasswordSecret, error) {
	saltHex, hashHex, ok := strings.Cut(encoded, "-")
	if !ok || saltHex == "" || hashHex == "" {
		return PasswordSecret{}, fmt.Errorf("%w: missing delimiter", common.ErrCorruptSecret)
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return PasswordSecret{}, fmt.Errorf("%w: bad salt encoding", common.ErrCorruptSecret)
	}

	hash, err := hex.DecodeString(hashHex)
	if err != nil {
		return PasswordSecret{}, fmt.Errorf("%w: bad hash encoding", common.ErrCorruptSecret)
	}

	return PasswordSecret{Salt: salt, Hash: hash}, nil
}
