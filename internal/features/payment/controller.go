package payment

import (
	"strconv"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentController struct {
	PaymentService PaymentService
}

func NewPaymentController(paymentService PaymentService) *PaymentController {
	return &PaymentController{
		PaymentService: paymentService,
	}
}

type GenerateRequest struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

func callerID(c *fiber.Ctx) (primitive.ObjectID, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return primitive.NilObjectID, apperr.Unauthorized("missing authentication")
	}
	return utils.ParseID(claims.UserID)
}

func (ctrl *PaymentController) ListPayments(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := ListFilter{
		EmployeeID: c.Query("employee_id"),
		Status:     c.Query("status"),
	}
	if from := c.Query("period_start"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.PeriodStart = &t
		}
	}
	if to := c.Query("period_end"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.PeriodEnd = &t
		}
	}

	payments, total, err := ctrl.PaymentService.ListPayments(c.Context(), uid, filter, page, limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (ctrl *PaymentController) GetPayment(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	payment, err := ctrl.PaymentService.GetPayment(c.Context(), uid, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(payment)
}

func (ctrl *PaymentController) GeneratePayments(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	payments, err := ctrl.PaymentService.GeneratePayments(c.Context(), GenerateInput{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payments": payments,
		"count":    len(payments),
	})
}

func (ctrl *PaymentController) UpdateStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	payment, err := ctrl.PaymentService.TransitionPayment(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(payment)
}

func (ctrl *PaymentController) MarkPaid(c *fiber.Ctx) error {
	return ctrl.transition(c, StatusPaid)
}

func (ctrl *PaymentController) Confirm(c *fiber.Ctx) error {
	return ctrl.transition(c, StatusConfirmed)
}

func (ctrl *PaymentController) Dispute(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	_ = c.BodyParser(&req)

	payment, err := ctrl.PaymentService.DisputePayment(c.Context(), uid, c.Params("id"), req.Reason)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(payment)
}

func (ctrl *PaymentController) Cancel(c *fiber.Ctx) error {
	return ctrl.transition(c, StatusCancelled)
}

func (ctrl *PaymentController) transition(c *fiber.Ctx, to string) error {
	payment, err := ctrl.PaymentService.TransitionPayment(c.Context(), c.Params("id"), to)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(payment)
}

func (ctrl *PaymentController) DeletePayment(c *fiber.Ctx) error {
	if err := ctrl.PaymentService.DeletePayment(c.Context(), c.Params("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payment deleted successfully"})
}
