package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenTTL is how long a password-reset secret stays valid.
const ResetTokenTTL = 10 * time.Minute

// GenerateResetToken produces a single-use password-reset secret. The
// plaintext is emailed to the user; only the digest and expiry are persisted.
func GenerateResetToken() (plaintext, digest string, expiresAt time.Time, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("generate reset token: %w", err)
	}
	plaintext = hex.EncodeToString(buf)
	return plaintext, DigestResetToken(plaintext), time.Now().Add(ResetTokenTTL), nil
}

// DigestResetToken maps a presented plaintext secret to the digest stored
// server-side. The stored value cannot be reversed into the plaintext.
func DigestResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
