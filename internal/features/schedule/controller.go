package schedule

import (
	"strconv"
	"time"

	"go-wfm/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type ScheduleController struct {
	ScheduleService ScheduleService
}

func NewScheduleController(scheduleService ScheduleService) *ScheduleController {
	return &ScheduleController{
		ScheduleService: scheduleService,
	}
}

type ShiftRequest struct {
	EmployeeID string `json:"employee_id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Notes      string `json:"notes,omitempty"`
}

type CreateScheduleRequest struct {
	StoreID       string         `json:"store_id"`
	Title         string         `json:"title"`
	WeekStartDate time.Time      `json:"week_start_date"`
	WeekEndDate   *time.Time     `json:"week_end_date,omitempty"`
	Shifts        []ShiftRequest `json:"shifts,omitempty"`
}

type UpdateScheduleRequest struct {
	Title         *string    `json:"title,omitempty"`
	WeekStartDate *time.Time `json:"week_start_date,omitempty"`
	WeekEndDate   *time.Time `json:"week_end_date,omitempty"`
}

func (ctrl *ScheduleController) ListSchedules(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := ListFilter{StoreID: c.Query("store_id")}
	if from := c.Query("week_start_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.WeekStartFrom = &t
		}
	}
	if to := c.Query("week_start_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.WeekStartTo = &t
		}
	}

	schedules, total, err := ctrl.ScheduleService.ListSchedules(c.Context(), filter, page, limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"schedules": schedules,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

func (ctrl *ScheduleController) GetSchedule(c *fiber.Ctx) error {
	schedule, err := ctrl.ScheduleService.GetSchedule(c.Context(), c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(schedule)
}

func (ctrl *ScheduleController) CreateSchedule(c *fiber.Ctx) error {
	var req CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	input := CreateScheduleInput{
		StoreID:       req.StoreID,
		Title:         req.Title,
		WeekStartDate: req.WeekStartDate,
	}
	if req.WeekEndDate != nil {
		input.WeekEndDate = *req.WeekEndDate
	}
	for _, shift := range req.Shifts {
		input.Shifts = append(input.Shifts, ShiftInput(shift))
	}

	schedule, err := ctrl.ScheduleService.CreateSchedule(c.Context(), input)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func (ctrl *ScheduleController) UpdateSchedule(c *fiber.Ctx) error {
	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	schedule, err := ctrl.ScheduleService.UpdateSchedule(c.Context(), c.Params("id"), UpdateScheduleInput{
		Title:         req.Title,
		WeekStartDate: req.WeekStartDate,
		WeekEndDate:   req.WeekEndDate,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(schedule)
}

func (ctrl *ScheduleController) DeleteSchedule(c *fiber.Ctx) error {
	if err := ctrl.ScheduleService.DeleteSchedule(c.Context(), c.Params("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Schedule deleted successfully"})
}

func (ctrl *ScheduleController) AddShift(c *fiber.Ctx) error {
	var req ShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	schedule, err := ctrl.ScheduleService.AddShift(c.Context(), c.Params("id"), ShiftInput(req))
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func (ctrl *ScheduleController) UpdateShift(c *fiber.Ctx) error {
	var req ShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	schedule, err := ctrl.ScheduleService.UpdateShift(c.Context(), c.Params("id"), c.Params("shiftId"), ShiftInput(req))
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(schedule)
}

func (ctrl *ScheduleController) RemoveShift(c *fiber.Ctx) error {
	schedule, err := ctrl.ScheduleService.RemoveShift(c.Context(), c.Params("id"), c.Params("shiftId"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(schedule)
}
