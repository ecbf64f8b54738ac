package rbac

import (
	"errors"
	"strings"

	"github.com/kmorten/usage_dashboard/backend/internal/auth"
)

// Role is a named capability asserted by a credential.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DataAPIRoles is the permitted set for the user-facing data endpoints.
var DataAPIRoles = []Role{RoleUser, RoleAdmin}

// DashboardRoles is the permitted set for operational dashboard endpoints.
var DashboardRoles = []Role{RoleAdmin}

var ErrForbidden = errors.New("forbidden")

// ParseRole converts a case-insensitive string to a Role.
func ParseRole(value string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "user":
		return RoleUser, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Authorize is a pure predicate: it passes when the identity holds at least
// one permitted role and returns ErrForbidden otherwise. No data access.
func Authorize(identity auth.Identity, permitted []Role) error {
	if HasAny(identity, permitted) {
		return nil
	}
	return ErrForbidden
}

// HasAny reports whether the identity's role set intersects permitted.
// Comparison is case-insensitive; unrecognized role strings never match.
func HasAny(identity auth.Identity, permitted []Role) bool {
	for _, raw := range identity.Roles {
		role, ok := ParseRole(raw)
		if !ok {
			continue
		}
		for _, allow := range permitted {
			if role == allow {
				return true
			}
		}
	}
	return false
}
