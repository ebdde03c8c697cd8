package payment

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentApi struct {
	controller *PaymentController
	tokens     *utils.TokenIssuer
	perms      middleware.PermissionService
}

func NewPaymentApi(controller *PaymentController, tokens *utils.TokenIssuer, perms middleware.PermissionService) *PaymentApi {
	return &PaymentApi{
		controller: controller,
		tokens:     tokens,
		perms:      perms,
	}
}

// Setup registers all payment routes. List and get apply ownership scoping
// in the service; dispute is open to the payee, so it carries no permission
// gate beyond authentication.
func (h *PaymentApi) Setup(app *fiber.App) {
	payments := app.Group("/api/payments", middleware.AuthMiddleware(h.tokens))

	payments.Get("/", h.controller.ListPayments)
	payments.Get("/:id", h.controller.GetPayment)
	payments.Post("/generate", middleware.RequirePermission(h.perms, "payments:generate"), h.controller.GeneratePayments)
	payments.Put("/:id/status", middleware.RequirePermission(h.perms, "payments:update"), h.controller.UpdateStatus)
	payments.Post("/:id/pay", middleware.RequirePermission(h.perms, "payments:update"), h.controller.MarkPaid)
	payments.Post("/:id/confirm", middleware.RequirePermission(h.perms, "payments:confirm"), h.controller.Confirm)
	payments.Post("/:id/dispute", h.controller.Dispute)
	payments.Post("/:id/cancel", middleware.RequirePermission(h.perms, "payments:update"), h.controller.Cancel)
	payments.Delete("/:id", middleware.RequirePermission(h.perms, "payments:delete"), h.controller.DeletePayment)
}
