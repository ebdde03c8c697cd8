// Package permission resolves a user's effective permission set. Every check
// walks user -> role -> permissions again; nothing is cached, so role edits
// take effect on the next request.
package permission

import (
	"context"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/role"
	"go-wfm/internal/features/user"
	"go-wfm/pkg/utils"
)

type PermissionService interface {
	HasPermission(ctx context.Context, userID string, permission string) (bool, error)
	PermissionsForUser(ctx context.Context, userID string) ([]string, error)
}

type PermissionServiceImpl struct {
	UserRepo user.UserRepository
	RoleRepo role.RoleRepository
}

func NewPermissionService(userRepo user.UserRepository, roleRepo role.RoleRepository) PermissionService {
	return &PermissionServiceImpl{
		UserRepo: userRepo,
		RoleRepo: roleRepo,
	}
}

func (s *PermissionServiceImpl) HasPermission(ctx context.Context, userID string, permission string) (bool, error) {
	perms, err := s.PermissionsForUser(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			// Missing user or role means no access, not a server fault.
			return false, nil
		}
		return false, err
	}

	for _, p := range perms {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
}

func (s *PermissionServiceImpl) PermissionsForUser(ctx context.Context, userID string) ([]string, error) {
	oid, err := utils.ParseID(userID)
	if err != nil {
		return nil, err
	}

	usr, err := s.UserRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !usr.Active {
		return []string{}, nil
	}
	if usr.RoleID == nil {
		return []string{}, nil
	}

	r, err := s.RoleRepo.FindByID(ctx, *usr.RoleID)
	if err != nil {
		return nil, err
	}
	return r.Permissions, nil
}
