package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/utils"
)

// JWTFromHeader reads the bearer token from the Authorization header, falling
// back to the session cookie set at login.
func JWTFromHeader(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := ""
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenStr = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
		if tokenStr == "" {
			tokenStr = c.Cookies("sw_token")
		}
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		token, err := jwt.ParseWithClaims(tokenStr, &utils.Claims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			return fiber.ErrUnauthorized
		}

		c.Locals("user", token)
		return c.Next()
	}
}
