package report

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	controller *ReportController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewReportApi(controller *ReportController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *ReportApi {
	return &ReportApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all report export routes
func (h *ReportApi) Setup(app *fiber.App) {
	reports := app.Group("/api/reports", middleware.AuthMiddleware(h.tokens))

	reports.Get("/payroll/export", middleware.RequirePermission(h.perms, "reports:export"), h.controller.ExportPayroll)
	reports.Get("/timesheets/export", middleware.RequirePermission(h.perms, "reports:export"), h.controller.ExportTimesheets)
}
