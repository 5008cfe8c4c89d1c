package auth

import "strings"

// Role is a principal's role in the admin dashboard.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "user":
		return RoleUser, true
	default:
		return "", false
	}
}

// Permission names an action guarded by Authorize.
type Permission string

const (
	PermViewDashboard  Permission = "dashboard:view"
	PermManageCatalog  Permission = "catalog:manage"
	PermManageOffers   Permission = "offers:manage"
	PermManageBookings Permission = "bookings:manage"
	PermViewUsers      Permission = "users:view"
	PermManageUsers    Permission = "users:manage"
)

var allPermissions = []Permission{
	PermViewDashboard,
	PermManageCatalog,
	PermManageOffers,
	PermManageBookings,
	PermViewUsers,
	PermManageUsers,
}

// Authorize reports whether role may perform p. Every signed-in role can
// work with the catalog, offers and bookings; provisioning and deleting
// accounts is reserved for admins.
func Authorize(role Role, p Permission) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleUser:
		return p != PermManageUsers
	default:
		return false
	}
}

// Permissions lists everything role may do, for UI decisions.
func Permissions(role Role) []Permission {
	out := make([]Permission, 0, len(allPermissions))
	for _, p := range allPermissions {
		if Authorize(role, p) {
			out = append(out, p)
		}
	}
	return out
}
