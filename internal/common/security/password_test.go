package security

import (
	"testing"
	"time"

	"catalog_service/internal/platform/config"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupConfig(t *testing.T, exp time.Duration) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:     []byte("test-secret"),
		JWTExp:     exp,
		BcryptCost: bcrypt.MinCost,
	}
	InitJWT()
}

func TestPasswordHashRoundTrip(t *testing.T) {
	setupConfig(t, time.Hour)

	for _, password := range []string{"p", "", "пароль-密码-🔑", "correct horse battery staple"} {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		require.NotEqual(t, password, hash)
		require.True(t, CheckPasswordHash(password, hash), "password %q", password)
		require.False(t, CheckPasswordHash(password+"x", hash))
	}
}

func TestHashPasswordSalted(t *testing.T) {
	setupConfig(t, time.Hour)

	h1, err := HashPassword("p")
	require.NoError(t, err)
	h2, err := HashPassword("p")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
