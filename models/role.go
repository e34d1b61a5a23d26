package models

// Role is the ordered set of permission levels a principal can hold on an
// agency. Permission checks are "role >= required role", so the declaration
// order matters.
type Role int

const (
	NO_ROLE Role = iota
	VIEWER
	EDITOR
	AGENCY_ADMIN
	// SUPER_ADMIN is agency-independent: it is implicitly granted for every
	// agency.
	SUPER_ADMIN
)

func (r Role) String() string {
	switch r {
	case VIEWER:
		return "viewer"
	case EDITOR:
		return "editor"
	case AGENCY_ADMIN:
		return "agency_admin"
	case SUPER_ADMIN:
		return "super_admin"
	default:
		return "no_role"
	}
}

func RoleFromString(s string) Role {
	switch s {
	case "viewer":
		return VIEWER
	case "editor":
		return EDITOR
	case "agency_admin":
		return AGENCY_ADMIN
	case "super_admin":
		return SUPER_ADMIN
	}
	return NO_ROLE
}
