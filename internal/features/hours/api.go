package hours

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type HoursApi struct {
	controller *HoursController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewHoursApi(controller *HoursController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *HoursApi {
	return &HoursApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all time-tracking routes. Clock and break endpoints act on
// the caller's own employee record, so they only require authentication;
// list and get apply ownership scoping inside the service.
func (h *HoursApi) Setup(app *fiber.App) {
	hours := app.Group("/api/hours", middleware.AuthMiddleware(h.tokens))

	hours.Post("/clock-in", h.controller.ClockIn)
	hours.Post("/clock-out", h.controller.ClockOut)
	hours.Post("/break/start", h.controller.StartBreak)
	hours.Post("/break/end", h.controller.EndBreak)

	hours.Get("/", h.controller.ListHours)
	hours.Get("/:id", h.controller.GetHours)

	hours.Put("/:id", middleware.RequirePermission(h.perms, "hours:update"), h.controller.UpdateHours)
	hours.Post("/:id/approve", middleware.RequirePermission(h.perms, "hours:approve"), h.controller.ApproveHours)
	hours.Post("/:id/reject", middleware.RequirePermission(h.perms, "hours:approve"), h.controller.RejectHours)
	hours.Delete("/:id", middleware.RequirePermission(h.perms, "hours:delete"), h.controller.DeleteHours)
}
