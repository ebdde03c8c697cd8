package role

import (
	"context"
	"time"

	"go-wfm/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var defaultRoles = []Role{
	{
		Name:        RoleAdmin,
		Description: "Full access to every area",
		Permissions: AllPermissions,
	},
	{
		Name:        RoleManager,
		Description: "Runs stores: schedules, approvals and payroll",
		Permissions: []string{
			"users:read",
			"employees:read", "employees:update",
			"stores:read",
			"schedules:create", "schedules:read", "schedules:update", "schedules:delete",
			"hours:read", "hours:update", "hours:approve",
			"timesheets:read", "timesheets:approve",
			"payments:create", "payments:read", "payments:update",
			"payments:generate", "payments:confirm",
			"inventory:read", "inventory:update", "inventory:fulfill",
			"reports:export",
		},
	},
	// Employees carry no area-wide read or update grants. Access to their
	// own employee, hours, timesheet and payment records comes from the
	// ownership checks inside the services.
	{
		Name:        RoleEmployee,
		Description: "Tracks own time and timesheets",
		Permissions: []string{
			"schedules:read",
			"hours:create",
			"timesheets:create",
			"inventory:create", "inventory:read",
		},
	},
}

// EnsureDefaultRoles creates the three seeded roles if missing. Existing roles
// get their permission strings normalized to the canonical "area:action" form,
// which retires the legacy "PermissionArea.X:PermissionAction.Y" data in place.
func (s *RoleServiceImpl) EnsureDefaultRoles(ctx context.Context) error {
	for _, def := range defaultRoles {
		existing, err := s.RoleRepo.FindByName(ctx, def.Name)
		if err != nil && !apperr.IsNotFound(err) {
			return err
		}

		now := time.Now()
		if existing == nil {
			role := def
			role.ID = primitive.NewObjectID()
			role.IsDefault = true
			role.CreatedAt = now
			role.UpdatedAt = now
			if err := s.RoleRepo.Create(ctx, &role); err != nil {
				return err
			}
			continue
		}

		normalized := make([]string, len(existing.Permissions))
		changed := false
		for i, p := range existing.Permissions {
			normalized[i] = NormalizePermission(p)
			if normalized[i] != p {
				changed = true
			}
		}
		if changed {
			existing.Permissions = normalized
			existing.UpdatedAt = now
			if err := s.RoleRepo.Update(ctx, existing); err != nil {
				return err
			}
		}
	}
	return nil
}
