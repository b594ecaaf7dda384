package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"recipebook-backend/internal/config"
	"recipebook-backend/internal/services"
	"recipebook-backend/internal/types"
)

// AuthRequired validates the Authorization bearer token and stores the
// authenticated user's identity in the request context
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization header not found",
				Type:    "auth",
			}
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization header is not a bearer token",
				Type:    "auth",
			}
		}

		claims, err := services.ValidateToken(cfg, tokenString)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid or expired token",
				Type:    "auth",
			}
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)

		return c.Next()
	}
}
