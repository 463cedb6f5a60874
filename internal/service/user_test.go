package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/config"
	"storefront-api/internal/dto"
	"storefront-api/internal/repository"
)

func newUserService(t *testing.T) UserService {
	t.Helper()

	db := newTestDB(t)
	authCfg := config.Auth{JWTSecret: "test-secret", TokenTTL: 720 * time.Hour}
	return NewUserService(repository.NewUserRepository(db), authCfg, testLogger())
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, token)

	assert.NotEmpty(t, user.ID)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	parsed, err := jwt.Parse(token, func(_ *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID, claims["sub"])
	assert.Equal(t, false, claims["admin"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	req := &dto.RegisterRequest{Username: "jane", Email: "jane@example.com", Password: "secret123"}

	_, _, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newUserService(t)

	_, _, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newUserService(t)

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	newName := "janet"
	updated, err := svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{Username: &newName})
	require.NoError(t, err)

	assert.Equal(t, "janet", updated.Username)
	assert.Equal(t, "jane@example.com", updated.Email)
}
