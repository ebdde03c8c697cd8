package inventory

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type InventoryApi struct {
	controller *InventoryController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewInventoryApi(controller *InventoryController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *InventoryApi {
	return &InventoryApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all inventory request routes
func (h *InventoryApi) Setup(app *fiber.App) {
	inventory := app.Group("/api/inventory/requests", middleware.AuthMiddleware(h.tokens))

	inventory.Post("/", middleware.RequirePermission(h.perms, "inventory:create"), h.controller.CreateRequest)
	inventory.Get("/", middleware.RequirePermission(h.perms, "inventory:read"), h.controller.ListRequests)
	inventory.Get("/:id", h.controller.GetRequest)
	inventory.Put("/:id", middleware.RequirePermission(h.perms, "inventory:update"), h.controller.UpdateRequest)
	inventory.Post("/:id/fulfill", middleware.RequirePermission(h.perms, "inventory:fulfill"), h.controller.FulfillRequest)
	inventory.Post("/:id/cancel", middleware.RequirePermission(h.perms, "inventory:fulfill"), h.controller.CancelRequest)
	inventory.Delete("/:id", middleware.RequirePermission(h.perms, "inventory:delete"), h.controller.DeleteRequest)
}
