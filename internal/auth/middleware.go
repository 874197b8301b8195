package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const localsUserID = "user_id"

// Middleware guards protected routes. It extracts the bearer token, verifies
// it and stores the user ID in the request locals. Token validity is
// self-contained: the credential store is never consulted, so a still-valid
// token keeps working until expiry even if its user has been deleted.
func Middleware(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(localsUserID, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user ID attached by Middleware.
func UserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(localsUserID).(int64)
	return id, ok && id != 0
}
