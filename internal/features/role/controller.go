package role

import (
	"go-wfm/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type RoleController struct {
	RoleService RoleService
}

func NewRoleController(roleService RoleService) *RoleController {
	return &RoleController{
		RoleService: roleService,
	}
}

type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

func (ctrl *RoleController) ListRoles(c *fiber.Ctx) error {
	roles, err := ctrl.RoleService.ListRoles(c.Context())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"roles": roles})
}

func (ctrl *RoleController) GetRole(c *fiber.Ctx) error {
	role, err := ctrl.RoleService.GetRole(c.Context(), c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(role)
}

func (ctrl *RoleController) CreateRole(c *fiber.Ctx) error {
	var req CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	role, err := ctrl.RoleService.CreateRole(c.Context(), req.Name, req.Description, req.Permissions)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(role)
}

func (ctrl *RoleController) UpdateRole(c *fiber.Ctx) error {
	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	role, err := ctrl.RoleService.UpdateRole(c.Context(), c.Params("id"), RoleUpdate{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(role)
}

func (ctrl *RoleController) DeleteRole(c *fiber.Ctx) error {
	if err := ctrl.RoleService.DeleteRole(c.Context(), c.Params("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Role deleted successfully"})
}

func (ctrl *RoleController) ListPermissions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"permissions": AllPermissions})
}
