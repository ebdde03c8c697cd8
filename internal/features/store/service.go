package store

import (
	"context"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/role"
	"go-wfm/internal/features/user"
	"go-wfm/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListFilter struct {
	Search string // case-insensitive substring on name
	City   string
	Active *bool
}

type CreateStoreInput struct {
	Name      string
	Address   string
	City      string
	State     string
	Zip       string
	Phone     string
	ManagerID string
}

type UpdateStoreInput struct {
	Name      *string
	Address   *string
	City      *string
	State     *string
	Zip       *string
	Phone     *string
	ManagerID *string
	Active    *bool
}

type StoreService interface {
	ListStores(ctx context.Context, filter ListFilter, page, limit int64) ([]Store, int64, error)
	GetStore(ctx context.Context, id string) (*Store, error)
	CreateStore(ctx context.Context, input CreateStoreInput) (*Store, error)
	UpdateStore(ctx context.Context, id string, input UpdateStoreInput) (*Store, error)
	DeleteStore(ctx context.Context, id string) error
}

type StoreServiceImpl struct {
	StoreRepo StoreRepository
	UserRepo  user.UserRepository
	RoleRepo  role.RoleRepository
}

func NewStoreService(storeRepo StoreRepository, userRepo user.UserRepository, roleRepo role.RoleRepository) StoreService {
	return &StoreServiceImpl{
		StoreRepo: storeRepo,
		UserRepo:  userRepo,
		RoleRepo:  roleRepo,
	}
}

func (s *StoreServiceImpl) ListStores(ctx context.Context, filter ListFilter, page, limit int64) ([]Store, int64, error) {
	query := map[string]interface{}{}
	if filter.Search != "" {
		query["name"] = primitive.Regex{Pattern: filter.Search, Options: "i"}
	}
	if filter.City != "" {
		query["city"] = primitive.Regex{Pattern: filter.City, Options: "i"}
	}
	if filter.Active != nil {
		query["active"] = *filter.Active
	}

	offset := (page - 1) * limit
	stores, total, err := s.StoreRepo.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i := range stores {
		s.enrich(ctx, &stores[i])
	}
	return stores, total, nil
}

func (s *StoreServiceImpl) GetStore(ctx context.Context, id string) (*Store, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	store, err := s.StoreRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, store)
	return store, nil
}

func (s *StoreServiceImpl) CreateStore(ctx context.Context, input CreateStoreInput) (*Store, error) {
	if input.Name == "" {
		return nil, apperr.Validation("store name is required")
	}

	managerID, err := s.validateManager(ctx, input.ManagerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	store := &Store{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Address:   input.Address,
		City:      input.City,
		State:     input.State,
		Zip:       input.Zip,
		Phone:     input.Phone,
		ManagerID: managerID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.StoreRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	s.enrich(ctx, store)
	return store, nil
}

func (s *StoreServiceImpl) UpdateStore(ctx context.Context, id string, input UpdateStoreInput) (*Store, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	store, err := s.StoreRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperr.Validation("store name cannot be empty")
		}
		store.Name = *input.Name
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.City != nil {
		store.City = *input.City
	}
	if input.State != nil {
		store.State = *input.State
	}
	if input.Zip != nil {
		store.Zip = *input.Zip
	}
	if input.Phone != nil {
		store.Phone = *input.Phone
	}
	if input.ManagerID != nil {
		if *input.ManagerID == "" {
			store.ManagerID = nil
		} else {
			managerID, err := s.validateManager(ctx, *input.ManagerID)
			if err != nil {
				return nil, err
			}
			store.ManagerID = managerID
		}
	}
	if input.Active != nil {
		store.Active = *input.Active
	}

	store.UpdatedAt = time.Now()
	if err := s.StoreRepo.Update(ctx, store); err != nil {
		return nil, err
	}

	s.enrich(ctx, store)
	return store, nil
}

func (s *StoreServiceImpl) DeleteStore(ctx context.Context, id string) error {
	oid, err := utils.ParseID(id)
	if err != nil {
		return err
	}

	if _, err := s.StoreRepo.FindByID(ctx, oid); err != nil {
		return err
	}

	return s.StoreRepo.Delete(ctx, oid)
}

// validateManager checks the manager reference exists and carries the Manager
// or Admin role. Fails before any write so a bad manager never reaches the store.
func (s *StoreServiceImpl) validateManager(ctx context.Context, managerID string) (*primitive.ObjectID, error) {
	if managerID == "" {
		return nil, nil
	}

	oid, err := utils.ParseID(managerID)
	if err != nil {
		return nil, err
	}

	manager, err := s.UserRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if manager.RoleID == nil {
		return nil, apperr.Validation("user %s has no role and cannot manage a store", managerID)
	}

	r, err := s.RoleRepo.FindByID(ctx, *manager.RoleID)
	if err != nil {
		return nil, err
	}
	if r.Name != role.RoleManager && r.Name != role.RoleAdmin {
		return nil, apperr.Validation("user %s must have the Manager or Admin role to manage a store", managerID)
	}

	return &oid, nil
}

func (s *StoreServiceImpl) enrich(ctx context.Context, store *Store) {
	if store.ManagerID == nil {
		return
	}
	if manager, err := s.UserRepo.FindByID(ctx, *store.ManagerID); err == nil {
		store.ManagerName = manager.FullName
	}
}
