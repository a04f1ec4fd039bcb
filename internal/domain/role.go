package domain

import "strings"

// Role is an access-level tag used for command protection and display
type Role string

const (
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleManager Role = "ROLE_MANAGER"
	RoleStaff   Role = "ROLE_STAFF"
	RoleDoctor  Role = "ROLE_DOCTOR"
	RolePatient Role = "ROLE_PATIENT"
)

// Roles lists the fixed role set
var Roles = []Role{RoleAdmin, RoleManager, RoleStaff, RoleDoctor, RolePatient}

// StaffRoles are the roles allowed on laboratory back-office commands
var StaffRoles = []Role{RoleAdmin, RoleManager, RoleStaff}

// ParseRole normalizes a role code; the comparison ignores case and surrounding spaces
func ParseRole(code string) (Role, bool) {
	candidate := Role(strings.ToUpper(strings.TrimSpace(code)))
	for _, r := range Roles {
		if r == candidate {
			return r, true
		}
	}
	return "", false
}

// Valid reports whether r belongs to the role set
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}
