package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	resetTokenBytes      = 32
	DefaultResetTokenTTL = time.Hour
)

// ResetToken is a freshly generated password reset secret. Only Hashed and
// ExpiresAt are ever persisted; Plain goes out by email.
type ResetToken struct {
	Plain     string
	Hashed    string
	ExpiresAt time.Time
}

type ResetTokens struct {
	ttl time.Duration
	now func() time.Time
}

func NewResetTokens(ttl time.Duration, now func() time.Time) *ResetTokens {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ResetTokens{ttl: ttl, now: now}
}

func (r *ResetTokens) Generate() (ResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return ResetToken{}, fmt.Errorf("failed to generate reset token: %w", err)
	}

	plain := hex.EncodeToString(buf)
	return ResetToken{
		Plain:     plain,
		Hashed:    HashResetToken(plain),
		ExpiresAt: r.now().Add(r.ttl),
	}, nil
}

// Now is the clock consumers compare expiry against.
func (r *ResetTokens) Now() time.Time {
	return r.now()
}

func (r *ResetTokens) TTL() time.Duration {
	return r.ttl
}

// HashResetToken is the sha256 hex digest stored in place of the plaintext.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
