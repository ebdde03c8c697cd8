package role

import "testing"

func TestNormalizePermission(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canonical passes through", "hours:approve", "hours:approve"},
		{"legacy enum form", "PermissionArea.HOURS:PermissionAction.APPROVE", "hours:approve"},
		{"mixed case", "Users:Create", "users:create"},
		{"surrounding whitespace", " stores : read", "stores:read"},
		{"no separator", "ADMIN", "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePermission(tt.in); got != tt.want {
				t.Errorf("NormalizePermission(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsKnownPermission(t *testing.T) {
	for _, perm := range []string{"users:create", "hours:approve", "payments:generate", "reports:export"} {
		if !IsKnownPermission(perm) {
			t.Errorf("IsKnownPermission(%q) = false, want true", perm)
		}
	}
	for _, perm := range []string{"users:fly", "unknown:read", ""} {
		if IsKnownPermission(perm) {
			t.Errorf("IsKnownPermission(%q) = true, want false", perm)
		}
	}
}

// Every permission granted to a seeded role must exist in the catalogue, or
// the permission picker and the enforcement middleware drift apart.
func TestSeededRolePermissionsAreKnown(t *testing.T) {
	for _, seeded := range defaultRoles {
		for _, perm := range seeded.Permissions {
			if !IsKnownPermission(NormalizePermission(perm)) {
				t.Errorf("role %s grants unknown permission %q", seeded.Name, perm)
			}
		}
	}
}
