package auth

import "fmt"

// Role is the closed set of account tiers. The tag is fixed at account
// creation by the store the account lives in and never changes.
type Role string

const (
	RoleHR       Role = "hr"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole accepts only the three known role tags.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleHR:
		return RoleHR, nil
	case RoleManager:
		return RoleManager, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// ParseRegisterRole maps a registration path segment to a role. The admin
// segment is an alias for the hr tier.
func ParseRegisterRole(segment string) (Role, error) {
	if segment == "admin" {
		return RoleHR, nil
	}
	return ParseRole(segment)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// HomePath is the root of the role-scoped page tree cross-role navigation
// is redirected to.
func (r Role) HomePath() string {
	switch r {
	case RoleHR:
		return "/hr"
	case RoleManager:
		return "/manager"
	default:
		return "/employee"
	}
}

// CanApproveLeave reports whether the role may resolve leave requests.
func (r Role) CanApproveLeave() bool {
	return r == RoleHR || r == RoleManager
}
