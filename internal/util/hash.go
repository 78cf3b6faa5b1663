package util

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// GenerateID creates a short stable identifier from a value and a timestamp
func GenerateID(value string, timestamp int64) string {
	hasher := sha256.New()
	hasher.Write([]byte(value))
	hasher.Write([]byte(time.Unix(0, timestamp).String()))
	return hex.EncodeToString(hasher.Sum(nil))[:16] // Use first 16 chars of the hash
}
