package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

var randomRead = rand.Read

// HMACSHA256Hex returns the lower-case hex HMAC-SHA256 of payload under secret
func HMACSHA256Hex(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMACSHA256Hex reports whether signature is the hex HMAC-SHA256 of the
// exact payload bytes. An empty secret never verifies.
func VerifyHMACSHA256Hex(payload []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := HMACSHA256Hex(secret, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// GenerateRandomToken generates a random hex token from length random bytes
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
