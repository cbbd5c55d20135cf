package directory

import "strings"

// Role is an account capability granted by the backend.
type Role string

const (
	RoleUser         Role = "USER"
	RoleProfessional Role = "PROFESSIONAL"
	RoleAdmin        Role = "ADMIN"
)

// ParseRole normalizes a backend role string. "ROLE_ADMIN" and "admin" both
// map to RoleAdmin; unknown roles are kept upper-cased.
func ParseRole(s string) Role {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	return Role(s)
}

// ParseRoles normalizes a list of role strings, dropping blanks and duplicates.
func ParseRoles(values []string) []Role {
	out := make([]Role, 0, len(values))
	seen := make(map[Role]struct{}, len(values))
	for _, v := range values {
		r := ParseRole(v)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// HasRole reports whether roles contains r.
func HasRole(roles []Role, r Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether roles contains at least one of want.
func HasAnyRole(roles []Role, want ...Role) bool {
	for _, r := range want {
		if HasRole(roles, r) {
			return true
		}
	}
	return false
}

// Strings converts roles back to plain strings for serialization.
func Strings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
