// Package crypto provides cryptographic utilities for password hashing.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Scrypt parameters. N=16384 (2^14), r=8, p=1 are recommended for
// interactive logins.
const (
	scryptN       = 16384
	scryptR       = 8
	scryptP       = 1
	scryptKeyLen  = 32
	scryptSaltLen = 16
)

// HashPassword hashes a password with a fresh random salt.
// Returns "hex(salt)$hex(key)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, scryptSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	dk, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("scrypt key derivation failed: %w", err)
	}

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(dk), nil
}

// VerifyPassword reports whether password matches the stored "salt$key" hash.
// Comparison is constant-time.
func VerifyPassword(password, encoded string) (bool, error) {
	saltHex, keyHex, ok := strings.Cut(encoded, "$")
	if !ok {
		return false, fmt.Errorf("malformed password hash")
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, fmt.Errorf("malformed salt: %w", err)
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, fmt.Errorf("malformed key: %w", err)
	}

	dk, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, len(key))
	if err != nil {
		return false, fmt.Errorf("scrypt key derivation failed: %w", err)
	}

	return subtle.ConstantTimeCompare(dk, key) == 1, nil
}
