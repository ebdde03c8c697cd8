package employee

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type EmployeeApi struct {
	controller *EmployeeController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewEmployeeApi(controller *EmployeeController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *EmployeeApi {
	return &EmployeeApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all employee-related routes. The single-record GET skips the
// permission gate: the service grants self and store-manager access too.
func (h *EmployeeApi) Setup(app *fiber.App) {
	employees := app.Group("/api/employees", middleware.AuthMiddleware(h.tokens))

	employees.Post("/", middleware.RequirePermission(h.perms, "employees:create"), h.controller.CreateEmployee)
	employees.Get("/", middleware.RequirePermission(h.perms, "employees:read"), h.controller.ListEmployees)
	employees.Get("/:id", h.controller.GetEmployee)
	employees.Put("/:id", middleware.RequirePermission(h.perms, "employees:update"), h.controller.UpdateEmployee)
	employees.Delete("/:id", middleware.RequirePermission(h.perms, "employees:delete"), h.controller.DeleteEmployee)
}
