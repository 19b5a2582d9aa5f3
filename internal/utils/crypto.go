package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSecureToken returns a URL-safe token from 32 bytes of
// cryptographically strong randomness. Collisions are negligible; the
// unique index on each token column is the last-resort guard.
func GenerateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// MustGenerateSecureToken panics when the system randomness source fails.
func MustGenerateSecureToken() string {
	token, err := GenerateSecureToken()
	if err != nil {
		panic("failed to generate secure token: " + err.Error())
	}
	return token
}
