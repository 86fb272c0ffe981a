package middleware

import (
	"fmt"
	"strings"

	"ieltsprep/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// IdentityResolver establishes the caller's user id from a request. The core
// services never see tokens or headers, only the resolved id.
type IdentityResolver interface {
	Resolve(c *fiber.Ctx) (string, error)
}

// Identity returns the middleware enforcing authentication: a request the
// resolver cannot identify is a hard 401.
func Identity(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := resolver.Resolve(c)
		if err != nil || userID == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid credentials", nil)
		}
		c.Locals("userId", userID)
		return c.Next()
	}
}

// UserID reads the resolved caller identity from the request context.
func UserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("userId").(string)
	return userID, ok && userID != ""
}

// JWTResolver reads a Bearer token and returns its subject claim.
type JWTResolver struct{}

func (JWTResolver) Resolve(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("missing bearer token")
	}
	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token payload")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

// HeaderResolver trusts the X-User-Id header. It exists for local development
// and tests only; nothing about it is a security mechanism.
type HeaderResolver struct{}

func (HeaderResolver) Resolve(c *fiber.Ctx) (string, error) {
	userID := c.Get("X-User-Id")
	if userID == "" {
		return "", fmt.Errorf("missing X-User-Id header")
	}
	return userID, nil
}

// ChainResolver tries each resolver in order and takes the first identity.
type ChainResolver []IdentityResolver

func (r ChainResolver) Resolve(c *fiber.Ctx) (string, error) {
	var lastErr error
	for _, resolver := range r {
		userID, err := resolver.Resolve(c)
		if err == nil && userID != "" {
			return userID, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no identity resolvers configured")
	}
	return "", lastErr
}
