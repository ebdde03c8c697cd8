package timesheet

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TimesheetApi struct {
	controller *TimesheetController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewTimesheetApi(controller *TimesheetController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *TimesheetApi {
	return &TimesheetApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all timesheet routes. Create, list, get, update,
// daily-hours and submit apply ownership scoping inside the service so
// employees can manage their own sheets without the broad permissions.
func (h *TimesheetApi) Setup(app *fiber.App) {
	sheets := app.Group("/api/timesheets", middleware.AuthMiddleware(h.tokens))

	sheets.Post("/", h.controller.CreateTimesheet)
	sheets.Get("/", h.controller.ListTimesheets)
	sheets.Get("/:id", h.controller.GetTimesheet)
	sheets.Put("/:id", h.controller.UpdateTimesheet)
	sheets.Put("/:id/daily-hours", h.controller.UpdateDailyHours)
	sheets.Post("/:id/submit", h.controller.SubmitTimesheet)
	sheets.Post("/:id/approve", middleware.RequirePermission(h.perms, "timesheets:approve"), h.controller.ApproveTimesheet)
	sheets.Post("/:id/reject", middleware.RequirePermission(h.perms, "timesheets:approve"), h.controller.RejectTimesheet)
	sheets.Delete("/:id", middleware.RequirePermission(h.perms, "timesheets:delete"), h.controller.DeleteTimesheet)
}
