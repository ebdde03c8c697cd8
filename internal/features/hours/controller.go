package hours

import (
	"strconv"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HoursController struct {
	HoursService HoursService
}

func NewHoursController(hoursService HoursService) *HoursController {
	return &HoursController{
		HoursService: hoursService,
	}
}

type ClockRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type RejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

type UpdateHoursRequest struct {
	ClockIn  *time.Time `json:"clock_in,omitempty"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

func callerID(c *fiber.Ctx) (primitive.ObjectID, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return primitive.NilObjectID, apperr.Unauthorized("missing authentication")
	}
	return utils.ParseID(claims.UserID)
}

func (ctrl *HoursController) ListHours(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := ListFilter{
		EmployeeID: c.Query("employee_id"),
		StoreID:    c.Query("store_id"),
		Status:     c.Query("status"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.To = &t
		}
	}

	records, total, err := ctrl.HoursService.ListHours(c.Context(), uid, filter, page, limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"hours": records,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (ctrl *HoursController) GetHours(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	record, err := ctrl.HoursService.GetHours(c.Context(), uid, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(record)
}

func (ctrl *HoursController) ClockIn(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req ClockRequest
	_ = c.BodyParser(&req)

	record, err := ctrl.HoursService.ClockIn(c.Context(), uid, ClockInInput{
		EmployeeID: req.EmployeeID,
		Notes:      req.Notes,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (ctrl *HoursController) ClockOut(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req ClockRequest
	_ = c.BodyParser(&req)

	record, err := ctrl.HoursService.ClockOut(c.Context(), uid, req.EmployeeID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(record)
}

func (ctrl *HoursController) StartBreak(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req ClockRequest
	_ = c.BodyParser(&req)

	record, err := ctrl.HoursService.StartBreak(c.Context(), uid, req.EmployeeID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(record)
}

func (ctrl *HoursController) EndBreak(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req ClockRequest
	_ = c.BodyParser(&req)

	record, err := ctrl.HoursService.EndBreak(c.Context(), uid, req.EmployeeID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(record)
}

func (ctrl *HoursController) UpdateHours(c *fiber.Ctx) error {
	var req UpdateHoursRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	record, err := ctrl.HoursService.UpdateHours(c.Context(), c.Params("id"), UpdateHoursInput{
		ClockIn:  req.ClockIn,
		ClockOut: req.ClockOut,
		Notes:    req.Notes,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(record)
}

func (ctrl *HoursController) ApproveHours(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	record, err := ctrl.HoursService.ApproveHours(c.Context(), uid, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(record)
}

func (ctrl *HoursController) RejectHours(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req RejectRequest
	_ = c.BodyParser(&req)

	record, err := ctrl.HoursService.RejectHours(c.Context(), uid, c.Params("id"), req.Reason)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(record)
}

func (ctrl *HoursController) DeleteHours(c *fiber.Ctx) error {
	if err := ctrl.HoursService.DeleteHours(c.Context(), c.Params("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Hour record deleted successfully"})
}
