package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
)

// TokenTTL is the fixed validity window of an issued token.
const TokenTTL = 2 * time.Hour

// Claims is the token payload: {id, iat, exp}.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 tokens with a shared secret.
// It implements ports.TokenIssuer and ports.TokenVerifier.
type JWTManager struct {
	secret []byte
	now    func() time.Time
}

// Option configures a JWTManager.
type Option func(*JWTManager)

// WithClock overrides the time source used for iat/exp and validation.
func WithClock(now func() time.Time) Option {
	return func(m *JWTManager) { m.now = now }
}

func NewJWTManager(secret string, opts ...Option) (*JWTManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt: signing secret is empty")
	}
	m := &JWTManager{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue returns a token for subjectID that expires TokenTTL from now.
func (m *JWTManager) Issue(subjectID string) (string, error) {
	now := m.now()
	claims := Claims{
		ID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the subject id.
// Every failure wraps domain.ErrInvalidToken.
func (m *JWTManager) Verify(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.ID, nil
}
