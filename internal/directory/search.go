package directory

import "strings"

// SearchProfessionals matches term case-insensitively against specialty or
// display name. A blank term returns the input unchanged.
func SearchProfessionals(pros []Professional, term string) []Professional {
	term = normalizeTerm(term)
	if term == "" {
		return pros
	}
	out := make([]Professional, 0, len(pros))
	for _, p := range pros {
		if contains(p.Specialty, term) || contains(p.Name, term) {
			out = append(out, p)
		}
	}
	return out
}

// SearchServices matches term against name or description.
func SearchServices(services []Service, term string) []Service {
	term = normalizeTerm(term)
	if term == "" {
		return services
	}
	out := make([]Service, 0, len(services))
	for _, s := range services {
		if contains(s.Name, term) || contains(s.Description, term) {
			out = append(out, s)
		}
	}
	return out
}

// SearchUsers matches term against name or email.
func SearchUsers(users []User, term string) []User {
	term = normalizeTerm(term)
	if term == "" {
		return users
	}
	out := make([]User, 0, len(users))
	for _, u := range users {
		if contains(u.Name, term) || contains(u.Email, term) {
			out = append(out, u)
		}
	}
	return out
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func contains(field, term string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), term)
}
