package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns a 64-char hex token for password resets.
func GenerateResetToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}
