package security

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenSubjectRoundTrip(t *testing.T) {
	setupConfig(t, time.Hour)

	tokenString, err := GenerateToken(42, "A")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	id, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	name, err := GetNameFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, "A", name)

	// Each token carries a unique id for log correlation.
	require.NotEmpty(t, claims["jti"])
}

func TestExpiredTokenRejected(t *testing.T) {
	setupConfig(t, -time.Minute)

	tokenString, err := GenerateToken(42, "A")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(TokenAuth, tokenString)
	require.Error(t, err)
}

func TestTamperedSignatureRejected(t *testing.T) {
	setupConfig(t, time.Hour)

	tokenString, err := GenerateToken(42, "A")
	require.NoError(t, err)

	other := jwtauth.New("HS256", []byte("other-secret"), nil)
	_, err = jwtauth.VerifyToken(other, tokenString)
	require.Error(t, err)
}

func TestClaimExtractionErrors(t *testing.T) {
	_, err := GetUserIDFromClaims(jwt.MapClaims{})
	require.Error(t, err)

	_, err = GetUserIDFromClaims(jwt.MapClaims{"sub": "not-a-number"})
	require.Error(t, err)

	_, err = GetNameFromClaims(jwt.MapClaims{"name": 7})
	require.Error(t, err)
}
