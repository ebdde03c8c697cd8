package user

import (
	"context"
	"strings"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/role"
	"go-wfm/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListFilter struct {
	Search string // case-insensitive substring on full_name / email
	RoleID string
	Active *bool
}

type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	RoleID   string
}

type UpdateUserInput struct {
	Email    *string
	Password *string
	FullName *string
	Phone    *string
	RoleID   *string
	Active   *bool
}

type UserService interface {
	ListUsers(ctx context.Context, filter ListFilter, page, limit int64) ([]User, int64, error)
	GetUser(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*User, error)
	DeleteUser(ctx context.Context, id, callerID string) error
}

type UserServiceImpl struct {
	UserRepo UserRepository
	RoleRepo role.RoleRepository
}

func NewUserService(userRepo UserRepository, roleRepo role.RoleRepository) UserService {
	return &UserServiceImpl{
		UserRepo: userRepo,
		RoleRepo: roleRepo,
	}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, filter ListFilter, page, limit int64) ([]User, int64, error) {
	query := map[string]interface{}{}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = []map[string]interface{}{
			{"full_name": regex},
			{"email": regex},
		}
	}
	if filter.RoleID != "" {
		oid, err := utils.ParseID(filter.RoleID)
		if err != nil {
			return nil, 0, err
		}
		query["role_id"] = oid
	}
	if filter.Active != nil {
		query["active"] = *filter.Active
	}

	offset := (page - 1) * limit
	users, total, err := s.UserRepo.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i := range users {
		s.enrich(ctx, &users[i])
	}
	return users, total, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*User, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, user)
	return user, nil
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" || input.FullName == "" {
		return nil, apperr.Validation("email, password and full_name are required")
	}

	if existing, _ := s.UserRepo.FindByEmail(ctx, email); existing != nil {
		return nil, apperr.Conflict("email %q is already registered", email)
	}

	var roleID *primitive.ObjectID
	if input.RoleID != "" {
		oid, err := utils.ParseID(input.RoleID)
		if err != nil {
			return nil, err
		}
		if _, err := s.RoleRepo.FindByID(ctx, oid); err != nil {
			return nil, err
		}
		roleID = &oid
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now()
	user := &User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  hash,
		FullName:  input.FullName,
		Phone:     input.Phone,
		RoleID:    roleID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.enrich(ctx, user)
	return user, nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, apperr.Validation("email cannot be empty")
		}
		if email != user.Email {
			if existing, _ := s.UserRepo.FindByEmail(ctx, email); existing != nil {
				return nil, apperr.Conflict("email %q is already registered", email)
			}
			user.Email = email
		}
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		user.Password = hash
	} else {
		user.Password = "" // leave stored hash untouched
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.RoleID != nil {
		if *input.RoleID == "" {
			user.RoleID = nil
		} else {
			roid, err := utils.ParseID(*input.RoleID)
			if err != nil {
				return nil, err
			}
			if _, err := s.RoleRepo.FindByID(ctx, roid); err != nil {
				return nil, err
			}
			user.RoleID = &roid
		}
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	user.UpdatedAt = time.Now()
	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	updated, err := s.UserRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, updated)
	return updated, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return apperr.Forbidden("you cannot delete your own account")
	}

	oid, err := utils.ParseID(id)
	if err != nil {
		return err
	}

	if _, err := s.UserRepo.FindByID(ctx, oid); err != nil {
		return err
	}

	return s.UserRepo.Delete(ctx, oid)
}

// enrich attaches the denormalized role name. Lookup failures leave the
// field empty rather than failing the read.
func (s *UserServiceImpl) enrich(ctx context.Context, user *User) {
	if user.RoleID == nil {
		return
	}
	if r, err := s.RoleRepo.FindByID(ctx, *user.RoleID); err == nil {
		user.RoleName = r.Name
	}
}
