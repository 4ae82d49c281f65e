package auth

import (
	"errors"
	"fmt"
	"time"

	appErrors "dailypay-backend/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = appErrors.NewAppError(appErrors.CodeUnauthorized, "Not authorized, token failed", nil)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	AccountID uuid.UUID
	Role      Role
}

type Claims struct {
	AccountID uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

type IssuerOption func(*TokenIssuer)

func WithClock(now func() time.Time) IssuerOption {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

func NewTokenIssuer(secret string, opts ...IssuerOption) *TokenIssuer {
	t := &TokenIssuer{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Issue returns a signed token for the account valid for ttl.
func (t *TokenIssuer) Issue(accountID uuid.UUID, role Role, ttl time.Duration) (string, time.Time, error) {
	if len(t.secret) == 0 {
		return "", time.Time{}, errors.New("token signing secret is not configured")
	}

	now := t.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded identity.
func (t *TokenIssuer) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Identity{}, appErrors.NewAppError(ErrInvalidToken.Code, ErrInvalidToken.Message, err)
	}

	if claims.AccountID == uuid.Nil || !claims.Role.Valid() {
		return Identity{}, ErrInvalidToken
	}

	return Identity{AccountID: claims.AccountID, Role: claims.Role}, nil
}
