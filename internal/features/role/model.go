package role

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role groups a named set of "area:action" permission strings.
type Role struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Permissions []string           `json:"permissions" bson:"permissions"`
	IsDefault   bool               `json:"is_default" bson:"is_default"` // seeded roles, protected from rename/delete
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// AllPermissions is the catalogue of known permission strings, exposed on the
// role API so clients can build permission pickers.
var AllPermissions = []string{
	"users:create", "users:read", "users:update", "users:delete",
	"roles:create", "roles:read", "roles:update", "roles:delete",
	"employees:create", "employees:read", "employees:update", "employees:delete",
	"stores:create", "stores:read", "stores:update", "stores:delete",
	"schedules:create", "schedules:read", "schedules:update", "schedules:delete",
	"hours:create", "hours:read", "hours:update", "hours:delete", "hours:approve",
	"timesheets:create", "timesheets:read", "timesheets:update", "timesheets:delete",
	"timesheets:submit", "timesheets:approve",
	"payments:create", "payments:read", "payments:update", "payments:delete",
	"payments:generate", "payments:confirm",
	"inventory:create", "inventory:read", "inventory:update", "inventory:delete",
	"inventory:fulfill",
	"reports:export",
}

// IsKnownPermission reports whether perm is in the catalogue.
func IsKnownPermission(perm string) bool {
	for _, p := range AllPermissions {
		if p == perm {
			return true
		}
	}
	return false
}

// NormalizePermission converts the legacy stored form
// "PermissionArea.HOURS:PermissionAction.APPROVE" into the canonical
// lower-case "hours:approve". Canonical input passes through unchanged.
// Applied once when seeding/importing role data; nothing at request time
// parses the legacy form.
func NormalizePermission(perm string) string {
	area, action, ok := strings.Cut(perm, ":")
	if !ok {
		return strings.ToLower(strings.TrimSpace(perm))
	}
	area = strings.TrimPrefix(strings.TrimSpace(area), "PermissionArea.")
	action = strings.TrimPrefix(strings.TrimSpace(action), "PermissionAction.")
	return strings.ToLower(area) + ":" + strings.ToLower(action)
}
