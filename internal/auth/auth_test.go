package auth

import (
	"testing"
	"time"

	appErrors "dailypay-backend/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	h := NewHasher(4)

	hashed, err := h.Hash("pw12345")
	require.NoError(t, err)

	assert.NotEqual(t, "pw12345", hashed)
	assert.True(t, h.Verify("pw12345", hashed))
	assert.False(t, h.Verify("pw123456", hashed))
	assert.False(t, h.Verify("pw12345", ""))
	assert.False(t, h.Verify("pw12345", "not-a-bcrypt-hash"))

	again, err := h.Hash("pw12345")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "bcrypt salts every hash")
}

func TestNewHasher_OutOfRangeCostFallsBack(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewHasher(99).cost)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	id := uuid.New()

	token, expiresAt, err := issuer.Issue(id, RoleSeller, 7*24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	identity, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{AccountID: id, Role: RoleSeller}, identity)
}

func TestTokenIssuer_RejectsOtherKey(t *testing.T) {
	token, _, err := NewTokenIssuer("one").Issue(uuid.New(), RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenIssuer("two").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	start := time.Now()
	clock := start
	issuer := NewTokenIssuer("secret", WithClock(func() time.Time { return clock }))

	token, _, err := issuer.Issue(uuid.New(), RoleUser, 30*24*time.Hour)
	require.NoError(t, err)

	clock = start.Add(30*24*time.Hour - time.Minute)
	_, err = issuer.Verify(token)
	require.NoError(t, err)

	clock = start.Add(30*24*time.Hour + time.Minute)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsOtherAlgorithm(t *testing.T) {
	claims := Claims{
		AccountID: uuid.New(),
		Role:      RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("secret").Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RequiresSecret(t *testing.T) {
	_, _, err := NewTokenIssuer("").Issue(uuid.New(), RoleUser, time.Hour)
	assert.Error(t, err)
}

func TestResetTokens_Generate(t *testing.T) {
	now := time.Date(2025, 11, 27, 10, 0, 0, 0, time.UTC)
	tokens := NewResetTokens(0, func() time.Time { return now })

	tok, err := tokens.Generate()
	require.NoError(t, err)

	assert.Len(t, tok.Plain, 64)
	assert.Len(t, tok.Hashed, 64)
	assert.NotEqual(t, tok.Plain, tok.Hashed)
	assert.Equal(t, HashResetToken(tok.Plain), tok.Hashed)
	assert.Equal(t, now.Add(time.Hour), tok.ExpiresAt)

	other, err := tokens.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, tok.Plain, other.Plain)
}

func TestHashResetToken_KnownDigest(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashResetToken(""))
}

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()

	assert.NoError(t, RequireOwner(owner, Identity{AccountID: owner, Role: RoleSeller}))
	assert.ErrorIs(t, RequireOwner(owner, Identity{AccountID: uuid.New(), Role: RoleSeller}), appErrors.ErrForbidden)
	assert.ErrorIs(t, RequireOwner(uuid.Nil, Identity{AccountID: uuid.Nil}), appErrors.ErrForbidden)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
}

func TestCheckStanding(t *testing.T) {
	assert.NoError(t, CheckStanding(false, false))
	assert.ErrorIs(t, CheckStanding(true, true), appErrors.ErrAccountBanned)
	assert.ErrorIs(t, CheckStanding(false, true), appErrors.ErrAccountSuspended)
}
