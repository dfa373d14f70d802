package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 digest over data using hashKey and
// returns it hex-encoded. The server uses it to store a keyed hash of the
// client's auth proof instead of the proof itself.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// HashEqual reports whether the keyed hash of data matches expected in
// constant time.
func HashEqual(data, expected, hashKey string) bool {
	return hmac.Equal([]byte(HashString(data, hashKey)), []byte(expected))
}
