package store

import (
	"strconv"

	"go-wfm/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type StoreController struct {
	StoreService StoreService
}

func NewStoreController(storeService StoreService) *StoreController {
	return &StoreController{
		StoreService: storeService,
	}
}

type CreateStoreRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Phone     string `json:"phone,omitempty"`
	ManagerID string `json:"manager_id,omitempty"`
}

type UpdateStoreRequest struct {
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	Zip       *string `json:"zip,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	ManagerID *string `json:"manager_id,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

func (ctrl *StoreController) ListStores(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := ListFilter{
		Search: c.Query("search"),
		City:   c.Query("city"),
	}
	if active := c.Query("active"); active != "" {
		b := active == "true"
		filter.Active = &b
	}

	stores, total, err := ctrl.StoreService.ListStores(c.Context(), filter, page, limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"stores": stores,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func (ctrl *StoreController) GetStore(c *fiber.Ctx) error {
	store, err := ctrl.StoreService.GetStore(c.Context(), c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(store)
}

func (ctrl *StoreController) CreateStore(c *fiber.Ctx) error {
	var req CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	store, err := ctrl.StoreService.CreateStore(c.Context(), CreateStoreInput{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		Phone:     req.Phone,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(store)
}

func (ctrl *StoreController) UpdateStore(c *fiber.Ctx) error {
	var req UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	store, err := ctrl.StoreService.UpdateStore(c.Context(), c.Params("id"), UpdateStoreInput{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		Phone:     req.Phone,
		ManagerID: req.ManagerID,
		Active:    req.Active,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(store)
}

func (ctrl *StoreController) DeleteStore(c *fiber.Ctx) error {
	if err := ctrl.StoreService.DeleteStore(c.Context(), c.Params("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Store deleted successfully"})
}
