package inventory

import (
	"context"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/store"
	"go-wfm/internal/features/user"
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListFilter struct {
	StoreID string
	Status  string
}

type CreateRequestInput struct {
	StoreID string
	Items   []RequestItem
	Notes   string
}

type UpdateRequestInput struct {
	Items []RequestItem
	Notes *string
}

type InventoryService interface {
	ListRequests(ctx context.Context, filter ListFilter, page, limit int64) ([]InventoryRequest, int64, error)
	GetRequest(ctx context.Context, callerID primitive.ObjectID, id string) (*InventoryRequest, error)
	CreateRequest(ctx context.Context, requesterID primitive.ObjectID, input CreateRequestInput) (*InventoryRequest, error)
	UpdateRequest(ctx context.Context, id string, input UpdateRequestInput) (*InventoryRequest, error)
	FulfillRequest(ctx context.Context, resolverID primitive.ObjectID, id string) (*InventoryRequest, error)
	CancelRequest(ctx context.Context, resolverID primitive.ObjectID, id string) (*InventoryRequest, error)
	DeleteRequest(ctx context.Context, id string) error
}

type InventoryServiceImpl struct {
	InventoryRepo InventoryRepository
	StoreRepo     store.StoreRepository
	UserRepo      user.UserRepository
	Perms         middleware.PermissionService
}

func NewInventoryService(inventoryRepo InventoryRepository, storeRepo store.StoreRepository, userRepo user.UserRepository, perms middleware.PermissionService) InventoryService {
	return &InventoryServiceImpl{
		InventoryRepo: inventoryRepo,
		StoreRepo:     storeRepo,
		UserRepo:      userRepo,
		Perms:         perms,
	}
}

func (s *InventoryServiceImpl) ListRequests(ctx context.Context, filter ListFilter, page, limit int64) ([]InventoryRequest, int64, error) {
	query := map[string]interface{}{}
	if filter.StoreID != "" {
		oid, err := utils.ParseID(filter.StoreID)
		if err != nil {
			return nil, 0, err
		}
		query["store_id"] = oid
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	offset := (page - 1) * limit
	requests, total, err := s.InventoryRepo.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i := range requests {
		s.enrich(ctx, &requests[i])
	}
	return requests, total, nil
}

// GetRequest returns a single request. Callers without the read permission
// still see requests they filed themselves or requests of a store they manage.
func (s *InventoryServiceImpl) GetRequest(ctx context.Context, callerID primitive.ObjectID, id string) (*InventoryRequest, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	request, err := s.InventoryRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "inventory:read")
	if err != nil {
		return nil, err
	}
	if !allowed && !s.canAccess(ctx, callerID, request) {
		return nil, apperr.Forbidden("not allowed to view this inventory request")
	}

	s.enrich(ctx, request)
	return request, nil
}

// canAccess reports whether the caller filed the request or manages its store.
func (s *InventoryServiceImpl) canAccess(ctx context.Context, callerID primitive.ObjectID, request *InventoryRequest) bool {
	if request.RequestedBy == callerID {
		return true
	}
	st, err := s.StoreRepo.FindByID(ctx, request.StoreID)
	if err != nil || st.ManagerID == nil {
		return false
	}
	return *st.ManagerID == callerID
}

func (s *InventoryServiceImpl) CreateRequest(ctx context.Context, requesterID primitive.ObjectID, input CreateRequestInput) (*InventoryRequest, error) {
	storeID, err := utils.ParseID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if _, err := s.StoreRepo.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	if err := ValidateItems(input.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	request := &InventoryRequest{
		ID:          primitive.NewObjectID(),
		StoreID:     storeID,
		RequestedBy: requesterID,
		Items:       input.Items,
		Status:      StatusPending,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.InventoryRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.enrich(ctx, request)
	return request, nil
}

// UpdateRequest edits a pending request. Fulfilled and cancelled requests
// are read-only.
func (s *InventoryServiceImpl) UpdateRequest(ctx context.Context, id string, input UpdateRequestInput) (*InventoryRequest, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	request, err := s.InventoryRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if request.Status != StatusPending {
		return nil, apperr.Conflict("inventory request in status %q cannot be edited", request.Status)
	}

	if input.Items != nil {
		if err := ValidateItems(input.Items); err != nil {
			return nil, err
		}
		request.Items = input.Items
	}
	if input.Notes != nil {
		request.Notes = *input.Notes
	}

	request.UpdatedAt = time.Now()
	if err := s.InventoryRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.enrich(ctx, request)
	return request, nil
}

func (s *InventoryServiceImpl) FulfillRequest(ctx context.Context, resolverID primitive.ObjectID, id string) (*InventoryRequest, error) {
	return s.resolve(ctx, resolverID, id, StatusFulfilled)
}

func (s *InventoryServiceImpl) CancelRequest(ctx context.Context, resolverID primitive.ObjectID, id string) (*InventoryRequest, error) {
	return s.resolve(ctx, resolverID, id, StatusCancelled)
}

func (s *InventoryServiceImpl) resolve(ctx context.Context, resolverID primitive.ObjectID, id string, to string) (*InventoryRequest, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	request, err := s.InventoryRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if request.Status != StatusPending {
		return nil, apperr.Conflict("inventory request in status %q cannot be resolved", request.Status)
	}

	now := time.Now()
	request.Status = to
	request.ResolvedBy = &resolverID
	request.ResolvedAt = &now
	request.UpdatedAt = now

	if err := s.InventoryRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.enrich(ctx, request)
	return request, nil
}

// DeleteRequest removes a request that was never fulfilled.
func (s *InventoryServiceImpl) DeleteRequest(ctx context.Context, id string) error {
	oid, err := utils.ParseID(id)
	if err != nil {
		return err
	}

	request, err := s.InventoryRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if request.Status == StatusFulfilled {
		return apperr.Conflict("fulfilled inventory requests cannot be deleted")
	}

	return s.InventoryRepo.Delete(ctx, oid)
}

func (s *InventoryServiceImpl) enrich(ctx context.Context, request *InventoryRequest) {
	if st, err := s.StoreRepo.FindByID(ctx, request.StoreID); err == nil {
		request.StoreName = st.Name
	}
	if usr, err := s.UserRepo.FindByID(ctx, request.RequestedBy); err == nil {
		request.RequesterName = usr.FullName
	}
}
