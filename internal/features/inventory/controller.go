package inventory

import (
	"strconv"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InventoryController struct {
	InventoryService InventoryService
}

func NewInventoryController(inventoryService InventoryService) *InventoryController {
	return &InventoryController{
		InventoryService: inventoryService,
	}
}

type CreateRequestRequest struct {
	StoreID string        `json:"store_id"`
	Items   []RequestItem `json:"items"`
	Notes   string        `json:"notes,omitempty"`
}

type UpdateRequestRequest struct {
	Items []RequestItem `json:"items,omitempty"`
	Notes *string       `json:"notes,omitempty"`
}

func callerID(c *fiber.Ctx) (primitive.ObjectID, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return primitive.NilObjectID, apperr.Unauthorized("missing authentication")
	}
	return utils.ParseID(claims.UserID)
}

func (ctrl *InventoryController) ListRequests(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := ListFilter{
		StoreID: c.Query("store_id"),
		Status:  c.Query("status"),
	}

	requests, total, err := ctrl.InventoryService.ListRequests(c.Context(), filter, page, limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": requests,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (ctrl *InventoryController) GetRequest(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	request, err := ctrl.InventoryService.GetRequest(c.Context(), uid, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(request)
}

func (ctrl *InventoryController) CreateRequest(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	request, err := ctrl.InventoryService.CreateRequest(c.Context(), uid, CreateRequestInput{
		StoreID: req.StoreID,
		Items:   req.Items,
		Notes:   req.Notes,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

func (ctrl *InventoryController) UpdateRequest(c *fiber.Ctx) error {
	var req UpdateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	request, err := ctrl.InventoryService.UpdateRequest(c.Context(), c.Params("id"), UpdateRequestInput{
		Items: req.Items,
		Notes: req.Notes,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(request)
}

func (ctrl *InventoryController) FulfillRequest(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	request, err := ctrl.InventoryService.FulfillRequest(c.Context(), uid, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(request)
}

func (ctrl *InventoryController) CancelRequest(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	request, err := ctrl.InventoryService.CancelRequest(c.Context(), uid, c.Params("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(request)
}

func (ctrl *InventoryController) DeleteRequest(c *fiber.Ctx) error {
	if err := ctrl.InventoryService.DeleteRequest(c.Context(), c.Params("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Inventory request deleted successfully"})
}
