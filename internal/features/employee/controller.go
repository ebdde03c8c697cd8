package employee

import (
	"strconv"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type EmployeeController struct {
	EmployeeService EmployeeService
}

func NewEmployeeController(employeeService EmployeeService) *EmployeeController {
	return &EmployeeController{
		EmployeeService: employeeService,
	}
}

type NewUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

type CreateEmployeeRequest struct {
	UserID                string          `json:"user_id,omitempty"`
	NewUser               *NewUserRequest `json:"new_user,omitempty"`
	Position              string          `json:"position"`
	HourlyRate            float64         `json:"hourly_rate"`
	EmploymentStatus      string          `json:"employment_status,omitempty"`
	StoreID               string          `json:"store_id,omitempty"`
	HireDate              *time.Time      `json:"hire_date,omitempty"`
	EmergencyContactName  string          `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string          `json:"emergency_contact_phone,omitempty"`
}

type UpdateEmployeeRequest struct {
	UserID                *string    `json:"user_id,omitempty"`
	Position              *string    `json:"position,omitempty"`
	HourlyRate            *float64   `json:"hourly_rate,omitempty"`
	EmploymentStatus      *string    `json:"employment_status,omitempty"`
	StoreID               *string    `json:"store_id,omitempty"`
	HireDate              *time.Time `json:"hire_date,omitempty"`
	EmergencyContactName  *string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone,omitempty"`
}

func (ctrl *EmployeeController) ListEmployees(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := ListFilter{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		StoreID: c.Query("store_id"),
	}

	employees, total, err := ctrl.EmployeeService.ListEmployees(c.Context(), filter, page, limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"employees": employees,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

func (ctrl *EmployeeController) GetEmployee(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	emp, err := ctrl.EmployeeService.GetEmployee(c.Context(), claims.UserID, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(emp)
}

func (ctrl *EmployeeController) CreateEmployee(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	input := CreateEmployeeInput{
		UserID:                req.UserID,
		Position:              req.Position,
		HourlyRate:            req.HourlyRate,
		EmploymentStatus:      req.EmploymentStatus,
		StoreID:               req.StoreID,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}
	if req.HireDate != nil {
		input.HireDate = *req.HireDate
	}
	if req.NewUser != nil {
		input.NewUser = &NewUserInput{
			Email:    req.NewUser.Email,
			Password: req.NewUser.Password,
			FullName: req.NewUser.FullName,
			Phone:    req.NewUser.Phone,
		}
	}

	emp, err := ctrl.EmployeeService.CreateEmployee(c.Context(), input)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(emp)
}

func (ctrl *EmployeeController) UpdateEmployee(c *fiber.Ctx) error {
	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	emp, err := ctrl.EmployeeService.UpdateEmployee(c.Context(), c.Params("id"), UpdateEmployeeInput{
		UserID:                req.UserID,
		Position:              req.Position,
		HourlyRate:            req.HourlyRate,
		EmploymentStatus:      req.EmploymentStatus,
		StoreID:               req.StoreID,
		HireDate:              req.HireDate,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(emp)
}

func (ctrl *EmployeeController) DeleteEmployee(c *fiber.Ctx) error {
	if err := ctrl.EmployeeService.DeleteEmployee(c.Context(), c.Params("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted successfully"})
}
