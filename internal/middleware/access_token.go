package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const accessTokenKey = "access_token"

// BearerToken lifts a bearer token from the Authorization header into the request locals.
// Requests without one, or with another scheme, pass through untouched.
func BearerToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				c.Locals(accessTokenKey, token)
			}
		}
		return c.Next()
	}
}

// AccessToken returns the token stored by BearerToken, or "".
func AccessToken(c *fiber.Ctx) string {
	token, _ := c.Locals(accessTokenKey).(string)
	return token
}
