package main

import (
	"context"
	"fmt"
	"time"

	"go-wfm/internal/config"
	"go-wfm/internal/database"
	"go-wfm/internal/features/auth"
	"go-wfm/internal/features/role"
	"go-wfm/internal/features/user"
	"go-wfm/internal/logger"
	"go-wfm/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewTokenIssuer builds the JWT issuer from configuration.
func NewTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
}

// Seed runs the role and admin bootstrap once and shuts the app down.
// The API server also runs these on startup; this entrypoint lets the
// database be prepared without bringing the server up.
func Seed(lc fx.Lifecycle, shutdowner fx.Shutdowner, roleService role.RoleService, authService auth.AuthService, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := roleService.EnsureDefaultRoles(ctx); err != nil {
				return fmt.Errorf("failed to seed default roles: %w", err)
			}
			if err := authService.EnsureAdminUser(ctx); err != nil {
				return fmt.Errorf("failed to seed admin user: %w", err)
			}
			log.Info("seed complete")
			return shutdowner.Shutdown()
		},
	})
}

func main() {
	fx.New(
		fx.Provide(
			config.LoadConfig,
			database.NewDatabase,
			logger.NewLogger,
			NewTokenIssuer,

			user.NewUserRepository,
			role.NewRoleRepository,
			role.NewRoleService,
			auth.NewAuthService,

			func(r user.UserRepository) role.UserCounter { return r },
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	).Run()
}
