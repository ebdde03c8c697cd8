package role

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type RoleApi struct {
	controller *RoleController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewRoleApi(controller *RoleController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *RoleApi {
	return &RoleApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all role-related routes
func (h *RoleApi) Setup(app *fiber.App) {
	roles := app.Group("/api/roles", middleware.AuthMiddleware(h.tokens))

	roles.Get("/permissions", middleware.RequirePermission(h.perms, "roles:read"), h.controller.ListPermissions)

	roles.Post("/", middleware.RequirePermission(h.perms, "roles:create"), h.controller.CreateRole)
	roles.Get("/", middleware.RequirePermission(h.perms, "roles:read"), h.controller.ListRoles)
	roles.Get("/:id", middleware.RequirePermission(h.perms, "roles:read"), h.controller.GetRole)
	roles.Put("/:id", middleware.RequirePermission(h.perms, "roles:update"), h.controller.UpdateRole)
	roles.Delete("/:id", middleware.RequirePermission(h.perms, "roles:delete"), h.controller.DeleteRole)
}
