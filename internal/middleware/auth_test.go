package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

func authTestSetup(t *testing.T) (config.Auth, repository.UserRepository, *model.User) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     "jane",
		Email:        "jane@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)

	authCfg := config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour, CookieName: "jwt"}
	return authCfg, repository.NewUserRepository(db), user
}

func signTestToken(t *testing.T, secret, sub string, ttl time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runAuthRequest(authCfg config.Auth, userRepo repository.UserRepository, cookie *http.Cookie, admin bool) *httptest.ResponseRecorder {
	e := echo.New()

	handler := func(c echo.Context) error {
		user := CurrentUser(c)
		return c.JSON(http.StatusOK, map[string]string{"id": user.ID})
	}

	mws := []echo.MiddlewareFunc{Authenticate(authCfg, userRepo)}
	if admin {
		mws = append(mws, RequireAdmin())
	}
	e.GET("/protected", handler, mws...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateValidToken(t *testing.T) {
	authCfg, userRepo, user := authTestSetup(t)

	token := signTestToken(t, authCfg.JWTSecret, user.ID, time.Hour)
	rec := runAuthRequest(authCfg, userRepo, &http.Cookie{Name: "jwt", Value: token}, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.ID)
}

func TestAuthenticateMissingCookie(t *testing.T) {
	authCfg, userRepo, _ := authTestSetup(t)

	rec := runAuthRequest(authCfg, userRepo, nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateBadSignature(t *testing.T) {
	authCfg, userRepo, user := authTestSetup(t)

	token := signTestToken(t, "wrong-secret", user.ID, time.Hour)
	rec := runAuthRequest(authCfg, userRepo, &http.Cookie{Name: "jwt", Value: token}, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	authCfg, userRepo, user := authTestSetup(t)

	token := signTestToken(t, authCfg.JWTSecret, user.ID, -time.Hour)
	rec := runAuthRequest(authCfg, userRepo, &http.Cookie{Name: "jwt", Value: token}, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	authCfg, userRepo, _ := authTestSetup(t)

	token := signTestToken(t, authCfg.JWTSecret, "ghost", time.Hour)
	rec := runAuthRequest(authCfg, userRepo, &http.Cookie{Name: "jwt", Value: token}, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminBlocksRegularUser(t *testing.T) {
	authCfg, userRepo, user := authTestSetup(t)

	token := signTestToken(t, authCfg.JWTSecret, user.ID, time.Hour)
	rec := runAuthRequest(authCfg, userRepo, &http.Cookie{Name: "jwt", Value: token}, true)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
