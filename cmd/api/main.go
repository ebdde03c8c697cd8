package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-wfm/internal/common/api"
	"go-wfm/internal/config"
	"go-wfm/internal/database"
	"go-wfm/internal/features/auth"
	"go-wfm/internal/features/employee"
	"go-wfm/internal/features/hours"
	"go-wfm/internal/features/inventory"
	"go-wfm/internal/features/payment"
	"go-wfm/internal/features/permission"
	"go-wfm/internal/features/report"
	"go-wfm/internal/features/role"
	"go-wfm/internal/features/schedule"
	"go-wfm/internal/features/store"
	"go-wfm/internal/features/timesheet"
	"go-wfm/internal/features/user"
	"go-wfm/internal/logger"
	"go-wfm/internal/middleware"
	"go-wfm/internal/scheduler"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// NewTokenIssuer builds the JWT issuer from configuration.
func NewTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// Bootstrap seeds the default roles and the admin account on startup.
func Bootstrap(lc fx.Lifecycle, roleService role.RoleService, authService auth.AuthService) {
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
			return nil
		},
	})
}

// StartScheduler wires the background job scheduler into the app lifecycle.
func StartScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sched.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return sched.Stop()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Database
			database.NewDatabase,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Auth tooling
			NewTokenIssuer,

			// Initialize Repository
			user.NewUserRepository,
			role.NewRoleRepository,
			store.NewStoreRepository,
			employee.NewEmployeeRepository,
			schedule.NewScheduleRepository,
			hours.NewHoursRepository,
			timesheet.NewTimesheetRepository,
			payment.NewPaymentRepository,
			inventory.NewInventoryRepository,

			// Initialize Service
			permission.NewPermissionService,
			role.NewRoleService,
			user.NewUserService,
			auth.NewAuthService,
			store.NewStoreService,
			employee.NewEmployeeService,
			schedule.NewScheduleService,
			hours.NewHoursService,
			timesheet.NewTimesheetService,
			payment.NewPaymentService,
			inventory.NewInventoryService,
			report.NewReportService,
			scheduler.NewScheduler,

			// Interface adapters to satisfy Fx
			func(s permission.PermissionService) middleware.PermissionService { return s },
			func(r user.UserRepository) role.UserCounter { return r },

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			role.NewRoleController,
			store.NewStoreController,
			employee.NewEmployeeController,
			schedule.NewScheduleController,
			hours.NewHoursController,
			timesheet.NewTimesheetController,
			payment.NewPaymentController,
			inventory.NewInventoryController,
			report.NewReportController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(role.NewRoleApi),
			AsRoute(store.NewStoreApi),
			AsRoute(employee.NewEmployeeApi),
			AsRoute(schedule.NewScheduleApi),
			AsRoute(hours.NewHoursApi),
			AsRoute(timesheet.NewTimesheetApi),
			AsRoute(payment.NewPaymentApi),
			AsRoute(inventory.NewInventoryApi),
			AsRoute(report.NewReportApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			Bootstrap,
			RegisterAllRoutesWithAnnotation,
			StartServer,
			StartScheduler,
		),
	)

	app.Run()
}
