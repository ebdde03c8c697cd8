package auth

import (
	"context"
	"strings"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/config"
	"go-wfm/internal/features/role"
	"go-wfm/internal/features/user"
	"go-wfm/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, email, password, fullName, phone string) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, *user.User, error)
	CurrentUser(ctx context.Context, userID string) (*user.User, error)
	EnsureAdminUser(ctx context.Context) error
}

type AuthServiceImpl struct {
	UserRepo user.UserRepository
	RoleRepo role.RoleRepository
	Tokens   *utils.TokenIssuer
	Config   *config.Config
	Logger   *zap.Logger
}

func NewAuthService(userRepo user.UserRepository, roleRepo role.RoleRepository, tokens *utils.TokenIssuer, cfg *config.Config, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{
		UserRepo: userRepo,
		RoleRepo: roleRepo,
		Tokens:   tokens,
		Config:   cfg,
		Logger:   logger,
	}
}

// Register creates a user with the default Employee role.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, fullName, phone string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || fullName == "" {
		return nil, apperr.Validation("email, password and full_name are required")
	}
	if len(password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}

	if existing, _ := s.UserRepo.FindByEmail(ctx, email); existing != nil {
		return nil, apperr.Conflict("email %q is already registered", email)
	}

	employeeRole, err := s.RoleRepo.FindByName(ctx, role.RoleEmployee)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  hash,
		FullName:  fullName,
		Phone:     phone,
		RoleID:    &employeeRole.ID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.UserRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	newUser.RoleName = employeeRole.Name
	return newUser, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	usr, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, apperr.Unauthorized("invalid credentials")
	}

	if !utils.CheckPassword(usr.Password, password) {
		return "", nil, apperr.Unauthorized("invalid credentials")
	}

	if !usr.Active {
		return "", nil, apperr.Forbidden("account is disabled")
	}

	roleID := ""
	if usr.RoleID != nil {
		roleID = usr.RoleID.Hex()
		if r, err := s.RoleRepo.FindByID(ctx, *usr.RoleID); err == nil {
			usr.RoleName = r.Name
		}
	}

	token, err := s.Tokens.Generate(usr.ID, roleID)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	now := time.Now()
	usr.LastLogin = &now
	usr.UpdatedAt = now
	usr.Password = "" // keep stored hash
	if err := s.UserRepo.Update(ctx, usr); err != nil {
		s.Logger.Warn("failed to record last login", zap.String("user_id", usr.ID.Hex()), zap.Error(err))
	}

	return token, usr, nil
}

func (s *AuthServiceImpl) CurrentUser(ctx context.Context, userID string) (*user.User, error) {
	oid, err := utils.ParseID(userID)
	if err != nil {
		return nil, err
	}

	usr, err := s.UserRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if usr.RoleID != nil {
		if r, err := s.RoleRepo.FindByID(ctx, *usr.RoleID); err == nil {
			usr.RoleName = r.Name
		}
	}
	return usr, nil
}

// EnsureAdminUser creates the bootstrap admin account if it does not exist.
// Runs after EnsureDefaultRoles during startup.
func (s *AuthServiceImpl) EnsureAdminUser(ctx context.Context) error {
	if existing, _ := s.UserRepo.FindByEmail(ctx, s.Config.AdminEmail); existing != nil {
		return nil
	}

	adminRole, err := s.RoleRepo.FindByName(ctx, role.RoleAdmin)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(s.Config.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &user.User{
		ID:        primitive.NewObjectID(),
		Email:     strings.ToLower(s.Config.AdminEmail),
		Password:  hash,
		FullName:  "Administrator",
		RoleID:    &adminRole.ID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.UserRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.Logger.Info("bootstrap admin user created", zap.String("email", admin.Email))
	return nil
}
