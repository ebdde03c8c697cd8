package user

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewUserApi(controller *UserController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *UserApi {
	return &UserApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all user-related routes
func (h *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/users", middleware.AuthMiddleware(h.tokens))

	users.Post("/", middleware.RequirePermission(h.perms, "users:create"), h.controller.CreateUser)
	users.Get("/", middleware.RequirePermission(h.perms, "users:read"), h.controller.ListUsers)
	users.Get("/:id", middleware.RequirePermission(h.perms, "users:read"), h.controller.GetUser)
	users.Put("/:id", middleware.RequirePermission(h.perms, "users:update"), h.controller.UpdateUser)
	users.Delete("/:id", middleware.RequirePermission(h.perms, "users:delete"), h.controller.DeleteUser)
}
