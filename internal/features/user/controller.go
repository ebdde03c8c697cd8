package user

import (
	"strconv"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	UserService UserService
}

func NewUserController(userService UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	RoleID   string `json:"role_id,omitempty"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	RoleID   *string `json:"role_id,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := ListFilter{
		Search: c.Query("search"),
		RoleID: c.Query("role_id"),
	}
	if active := c.Query("active"); active != "" {
		b := active == "true"
		filter.Active = &b
	}

	users, total, err := ctrl.UserService.ListUsers(c.Context(), filter, page, limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	user, err := ctrl.UserService.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(user)
}

func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := ctrl.UserService.CreateUser(c.Context(), CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := ctrl.UserService.UpdateUser(c.Context(), c.Params("id"), UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
		Active:   req.Active,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(user)
}

func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := ctrl.UserService.DeleteUser(c.Context(), c.Params("id"), claims.UserID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
