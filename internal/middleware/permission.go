package middleware

import (
	"context"

	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// PermissionService is the slice of the permission feature the gate needs.
// Defined here so features can depend on middleware without a cycle.
type PermissionService interface {
	// HasPermission re-derives the user's permission set (user -> role ->
	// permissions) on every call; nothing is cached between requests.
	HasPermission(ctx context.Context, userID string, permission string) (bool, error)
}

// RequirePermission checks the "area:action" string against the current
// user's resolved permission set before the handler runs.
func RequirePermission(perms PermissionService, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		allowed, err := perms.HasPermission(c.Context(), claims.UserID, permission)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Insufficient permissions",
			})
		}

		return c.Next()
	}
}
