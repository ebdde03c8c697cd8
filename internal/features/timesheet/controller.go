package timesheet

import (
	"strconv"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TimesheetController struct {
	TimesheetService TimesheetService
}

func NewTimesheetController(timesheetService TimesheetService) *TimesheetController {
	return &TimesheetController{
		TimesheetService: timesheetService,
	}
}

type CreateTimesheetRequest struct {
	EmployeeID  string             `json:"employee_id,omitempty"`
	PeriodStart time.Time          `json:"period_start"`
	PeriodEnd   time.Time          `json:"period_end"`
	DailyHours  map[string]float64 `json:"daily_hours,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

type UpdateTimesheetRequest struct {
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

type DailyHoursRequest struct {
	DailyHours map[string]float64 `json:"daily_hours"`
}

type RejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

func callerID(c *fiber.Ctx) (primitive.ObjectID, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return primitive.NilObjectID, apperr.Unauthorized("missing authentication")
	}
	return utils.ParseID(claims.UserID)
}

func (ctrl *TimesheetController) ListTimesheets(c *fiber.Ctx) error {
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

	sheets, total, err := ctrl.TimesheetService.ListTimesheets(c.Context(), uid, filter, page, limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"timesheets": sheets,
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}

func (ctrl *TimesheetController) GetTimesheet(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	sheet, err := ctrl.TimesheetService.GetTimesheet(c.Context(), uid, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(sheet)
}

func (ctrl *TimesheetController) CreateTimesheet(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req CreateTimesheetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sheet, err := ctrl.TimesheetService.CreateTimesheet(c.Context(), uid, CreateTimesheetInput{
		EmployeeID:  req.EmployeeID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		DailyHours:  req.DailyHours,
		Notes:       req.Notes,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sheet)
}

func (ctrl *TimesheetController) UpdateTimesheet(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req UpdateTimesheetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sheet, err := ctrl.TimesheetService.UpdateTimesheet(c.Context(), uid, c.Params("id"), UpdateTimesheetInput{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Notes:       req.Notes,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(sheet)
}

func (ctrl *TimesheetController) UpdateDailyHours(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req DailyHoursRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sheet, err := ctrl.TimesheetService.UpdateDailyHours(c.Context(), uid, c.Params("id"), req.DailyHours)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(sheet)
}

func (ctrl *TimesheetController) SubmitTimesheet(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	sheet, err := ctrl.TimesheetService.SubmitTimesheet(c.Context(), uid, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(sheet)
}

func (ctrl *TimesheetController) ApproveTimesheet(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	sheet, err := ctrl.TimesheetService.ApproveTimesheet(c.Context(), uid, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(sheet)
}

func (ctrl *TimesheetController) RejectTimesheet(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req RejectRequest
	_ = c.BodyParser(&req)

	sheet, err := ctrl.TimesheetService.RejectTimesheet(c.Context(), uid, c.Params("id"), req.Reason)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(sheet)
}

func (ctrl *TimesheetController) DeleteTimesheet(c *fiber.Ctx) error {
	if err := ctrl.TimesheetService.DeleteTimesheet(c.Context(), c.Params("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Timesheet deleted successfully"})
}
