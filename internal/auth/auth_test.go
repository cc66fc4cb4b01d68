package auth

import (
	"testing"
	"time"

	"synergysphere/internal/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	issuer, err := NewJWT("secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(entities.User{ID: "u1"})
	require.NoError(t, err)

	userID, err := issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "u1", userID)
}

func TestJWTRejects(t *testing.T) {
	issuer, err := NewJWT("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewJWT("other", time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue(entities.User{ID: "u1"})
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	require.ErrorIs(t, err, entities.ErrUnauthorized)

	_, err = issuer.Parse("garbage")
	require.ErrorIs(t, err, entities.ErrUnauthorized)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(none)
	require.ErrorIs(t, err, entities.ErrUnauthorized)

	past := time.Now().Add(-2 * time.Hour)
	issuer.now = func() time.Time { return past }
	expired, err := issuer.Issue(entities.User{ID: "u1"})
	require.NoError(t, err)
	issuer.now = time.Now
	_, err = issuer.Parse(expired)
	require.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestNewJWTRequiresSecret(t *testing.T) {
	_, err := NewJWT("", time.Hour)
	require.Error(t, err)
}

func TestBcrypt(t *testing.T) {
	b := Bcrypt{Cost: bcrypt.MinCost}

	hash, err := b.Hash("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	ok, err := b.Compare(hash, "hunter22")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.Compare(hash, "wrong")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = b.Compare("not-a-hash", "x")
	require.Error(t, err)
}
