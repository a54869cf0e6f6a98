package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"catalog_service/internal/common"
	"catalog_service/internal/common/security"
	"catalog_service/internal/domain/model"
	"catalog_service/internal/platform/config"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func setupSecurity(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:     []byte(testJWTSecret),
		JWTExp:     time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	security.InitJWT()
}

type fakeUserRepo struct {
	users  map[string]*model.User // keyed by email
	nextID int64

	findErr   error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[u.Email]; ok {
		return fmt.Errorf("duplicate: %w", common.ErrDuplicateEmail)
	}
	f.nextID++
	u.ID = f.nextID
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func parseClaims(t *testing.T, token string) jwtlib.MapClaims {
	t.Helper()
	parsed, err := jwtlib.Parse(token, func(*jwtlib.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	require.True(t, ok)
	return claims
}

func TestSignupHashesPassword(t *testing.T) {
	setupSecurity(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	err := svc.Signup(context.Background(), SignupRequest{Name: "A", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	stored := repo.users["a@x.com"]
	require.NotNil(t, stored)
	require.NotEqual(t, "p", stored.HashedPassword)
	require.True(t, security.CheckPasswordHash("p", stored.HashedPassword))
}

func TestSignupDuplicateEmail(t *testing.T) {
	setupSecurity(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	require.NoError(t, svc.Signup(context.Background(), SignupRequest{Name: "A", Email: "a@x.com", Password: "p"}))

	// Same email always fails, regardless of name or password.
	err := svc.Signup(context.Background(), SignupRequest{Name: "B", Email: "a@x.com", Password: "other"})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestLoginSuccessTokenSubject(t *testing.T) {
	setupSecurity(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	require.NoError(t, svc.Signup(context.Background(), SignupRequest{Name: "A", Email: "a@x.com", Password: "p"}))

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims := parseClaims(t, resp.Token)
	id, err := security.GetUserIDFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, repo.users["a@x.com"].ID, id)

	name, err := security.GetNameFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, "A", name)
}

func TestLoginInvalidCredentials(t *testing.T) {
	setupSecurity(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	require.NoError(t, svc.Signup(context.Background(), SignupRequest{Name: "A", Email: "a@x.com", Password: "p"}))

	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "wrong"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "missing@x.com", Password: "p"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestSignupAcceptsEdgeCasePasswords(t *testing.T) {
	setupSecurity(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	// No minimum-length or charset rules: empty and unicode passwords both
	// round-trip through login.
	passwords := map[string]string{
		"empty@x.com":   "",
		"unicode@x.com": "пароль-密码-🔑",
	}
	for email, password := range passwords {
		require.NoError(t, svc.Signup(context.Background(), SignupRequest{Name: "U", Email: email, Password: password}))
		_, err := svc.Login(context.Background(), LoginRequest{Email: email, Password: password})
		require.NoError(t, err, "password %q should round-trip", password)
	}
}
