package role

import (
	"context"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoleService interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id string) (*Role, error)
	CreateRole(ctx context.Context, name, description string, permissions []string) (*Role, error)
	UpdateRole(ctx context.Context, id string, updates RoleUpdate) (*Role, error)
	DeleteRole(ctx context.Context, id string) error
	EnsureDefaultRoles(ctx context.Context) error
}

// RoleUpdate carries the optional patch fields for a role.
type RoleUpdate struct {
	Name        *string
	Description *string
	Permissions []string
}

// UserCounter reports how many users hold a given role. Satisfied by the user
// repository; declared here because the user package imports this one.
type UserCounter interface {
	CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error)
}

type RoleServiceImpl struct {
	RoleRepo RoleRepository
	Users    UserCounter
}

func NewRoleService(roleRepo RoleRepository, users UserCounter) RoleService {
	return &RoleServiceImpl{
		RoleRepo: roleRepo,
		Users:    users,
	}
}

func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]Role, error) {
	return s.RoleRepo.List(ctx)
}

func (s *RoleServiceImpl) GetRole(ctx context.Context, id string) (*Role, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.RoleRepo.FindByID(ctx, oid)
}

func (s *RoleServiceImpl) CreateRole(ctx context.Context, name, description string, permissions []string) (*Role, error) {
	if name == "" {
		return nil, apperr.Validation("role name is required")
	}

	perms, err := validatePermissions(permissions)
	if err != nil {
		return nil, err
	}

	if existing, _ := s.RoleRepo.FindByName(ctx, name); existing != nil {
		return nil, apperr.Conflict("role %q already exists", name)
	}

	now := time.Now()
	role := &Role{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		Permissions: perms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.RoleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleServiceImpl) UpdateRole(ctx context.Context, id string, updates RoleUpdate) (*Role, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	role, err := s.RoleRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil && *updates.Name != role.Name {
		if role.IsDefault {
			return nil, apperr.Conflict("default role %q cannot be renamed", role.Name)
		}
		if *updates.Name == "" {
			return nil, apperr.Validation("role name cannot be empty")
		}
		if existing, _ := s.RoleRepo.FindByName(ctx, *updates.Name); existing != nil {
			return nil, apperr.Conflict("role %q already exists", *updates.Name)
		}
		role.Name = *updates.Name
	}
	if updates.Description != nil {
		role.Description = *updates.Description
	}
	if updates.Permissions != nil {
		perms, err := validatePermissions(updates.Permissions)
		if err != nil {
			return nil, err
		}
		role.Permissions = perms
	}

	role.UpdatedAt = time.Now()
	if err := s.RoleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleServiceImpl) DeleteRole(ctx context.Context, id string) error {
	oid, err := utils.ParseID(id)
	if err != nil {
		return err
	}

	role, err := s.RoleRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if role.IsDefault {
		return apperr.Conflict("default role %q cannot be deleted", role.Name)
	}

	count, err := s.Users.CountByRole(ctx, oid)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("role %q is assigned to %d user(s)", role.Name, count)
	}

	return s.RoleRepo.Delete(ctx, oid)
}

func validatePermissions(permissions []string) ([]string, error) {
	perms := make([]string, 0, len(permissions))
	for _, p := range permissions {
		canonical := NormalizePermission(p)
		if !IsKnownPermission(canonical) {
			return nil, apperr.Validation("unknown permission %q", p)
		}
		perms = append(perms, canonical)
	}
	return perms, nil
}
