package middleware

import (
	"net/http/httptest"
	"testing"

	"ieltsprep/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityApp(resolver IdentityResolver) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", Identity(resolver), func(c *fiber.Ctx) error {
		userID, _ := UserID(c)
		return c.SendString(userID)
	})
	return app
}

func signToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func TestHeaderResolver(t *testing.T) {
	app := newIdentityApp(HeaderResolver{})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-User-Id", "user-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTResolver(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := newIdentityApp(JWTResolver{})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", jwt.MapClaims{"sub": "user-42"}))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Wrong signing key.
	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", jwt.MapClaims{"sub": "user-42"}))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Valid token without a subject carries no identity.
	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", jwt.MapClaims{"role": "admin"}))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestChainResolverFallsThrough(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := newIdentityApp(ChainResolver{JWTResolver{}, HeaderResolver{}})

	// No bearer token, but the trusted header identifies the caller.
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-User-Id", "user-7")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The bearer token wins when both are present.
	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", jwt.MapClaims{"sub": "user-8"}))
	req.Header.Set("X-User-Id", "user-7")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
