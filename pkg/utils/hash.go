package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString returns the hex SHA-256 of the input
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// HashEmail hashes an address case-insensitively so log lines can be correlated without the raw e-mail
func HashEmail(email string) string {
	return HashString(strings.ToLower(strings.TrimSpace(email)))
}
