package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const RevokedKeyPrefix = "revoked:"

// CheckRevoked rejects tokens whose jti was denylisted at logout. Must run
// after AttachJWTLocals. Redis errors fail open so a cache outage does not
// lock everyone out.
func CheckRevoked(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jti, _ := c.Locals("tokenId").(string)
		if jti == "" {
			return c.Next()
		}

		n, err := rdb.Exists(c.Context(), RevokedKeyPrefix+jti).Result()
		if err == nil && n > 0 {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}
