package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestJWTManager_IssueAndVerify(t *testing.T) {
	m, err := NewJWTManager("secret")
	require.NoError(t, err)

	tok, err := m.Issue("65f0c0ffee0000000000abcd")
	require.NoError(t, err)

	sub, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "65f0c0ffee0000000000abcd", sub)
}

func TestJWTManager_ClaimsLayout(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m, err := NewJWTManager("secret", WithClock(clock.Now))
	require.NoError(t, err)

	tok, err := m.Issue("user-1")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims["id"])
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, clock.t.Unix(), iat.Unix())
	assert.Equal(t, 2*time.Hour, exp.Sub(iat.Time))
}

func TestJWTManager_ExpiresAfterTwoHours(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m, err := NewJWTManager("secret", WithClock(clock.Now))
	require.NoError(t, err)

	tok, err := m.Issue("user-1")
	require.NoError(t, err)

	clock.Advance(TokenTTL - time.Minute)
	_, err = m.Verify(tok)
	require.NoError(t, err, "token must still be valid inside the window")

	clock.Advance(2 * time.Minute)
	_, err = m.Verify(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer, err := NewJWTManager("right-secret")
	require.NoError(t, err)
	verifier, err := NewJWTManager("wrong-secret")
	require.NoError(t, err)

	tok, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken), "got %v", err)
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	m, err := NewJWTManager("secret")
	require.NoError(t, err)

	claims := Claims{
		ID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(hs512)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verify(none)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestJWTManager_RejectsMissingClaims(t *testing.T) {
	m, err := NewJWTManager("secret")
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(noExp)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(noID)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestJWTManager_Malformed(t *testing.T) {
	m, err := NewJWTManager("secret")
	require.NoError(t, err)

	for _, tok := range []string{"", "not.a.jwt", "Bearer abc"} {
		_, err := m.Verify(tok)
		assert.True(t, errors.Is(err, domain.ErrInvalidToken), "token %q: got %v", tok, err)
	}
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	_, err := NewJWTManager("")
	assert.Error(t, err)
	_, err = NewJWTManager("   ")
	assert.Error(t, err)
}
