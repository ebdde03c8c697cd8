package schedule

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ScheduleApi struct {
	controller *ScheduleController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewScheduleApi(controller *ScheduleController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *ScheduleApi {
	return &ScheduleApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all schedule-related routes
func (h *ScheduleApi) Setup(app *fiber.App) {
	schedules := app.Group("/api/schedules", middleware.AuthMiddleware(h.tokens))

	schedules.Post("/", middleware.RequirePermission(h.perms, "schedules:create"), h.controller.CreateSchedule)
	schedules.Get("/", middleware.RequirePermission(h.perms, "schedules:read"), h.controller.ListSchedules)
	schedules.Get("/:id", middleware.RequirePermission(h.perms, "schedules:read"), h.controller.GetSchedule)
	schedules.Put("/:id", middleware.RequirePermission(h.perms, "schedules:update"), h.controller.UpdateSchedule)
	schedules.Delete("/:id", middleware.RequirePermission(h.perms, "schedules:delete"), h.controller.DeleteSchedule)

	schedules.Post("/:id/shifts", middleware.RequirePermission(h.perms, "schedules:update"), h.controller.AddShift)
	schedules.Put("/:id/shifts/:shiftId", middleware.RequirePermission(h.perms, "schedules:update"), h.controller.UpdateShift)
	schedules.Delete("/:id/shifts/:shiftId", middleware.RequirePermission(h.perms, "schedules:update"), h.controller.RemoveShift)
}
