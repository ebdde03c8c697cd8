package store

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type StoreApi struct {
	controller *StoreController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewStoreApi(controller *StoreController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *StoreApi {
	return &StoreApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all store-related routes
func (h *StoreApi) Setup(app *fiber.App) {
	stores := app.Group("/api/stores", middleware.AuthMiddleware(h.tokens))

	stores.Post("/", middleware.RequirePermission(h.perms, "stores:create"), h.controller.CreateStore)
	stores.Get("/", middleware.RequirePermission(h.perms, "stores:read"), h.controller.ListStores)
	stores.Get("/:id", middleware.RequirePermission(h.perms, "stores:read"), h.controller.GetStore)
	stores.Put("/:id", middleware.RequirePermission(h.perms, "stores:update"), h.controller.UpdateStore)
	stores.Delete("/:id", middleware.RequirePermission(h.perms, "stores:delete"), h.controller.DeleteStore)
}
