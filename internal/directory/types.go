// Package directory holds the people and catalog records the portal renders:
// users, professionals and services. All of them are owned by the scheduling
// backend; the portal only keeps request-scoped copies.
package directory

import (
	"strings"
	"time"
)

// User is an account holder. A user may hold several roles at once.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Roles        []Role
	RegisteredAt time.Time
}

// HasRole reports whether the user holds role r.
func (u *User) HasRole(r Role) bool {
	if u == nil {
		return false
	}
	return HasRole(u.Roles, r)
}

// Professional is a service-providing account. Availability is free text,
// not a parsed schedule.
type Professional struct {
	ID           int64
	UserID       int64
	Name         string
	Specialty    string
	Availability string
}

// Service is a bookable offering. Duration is free text ("60 minutos").
// A service with neither a ProfessionalID nor a ProfessionalName is global
// and offered by every professional.
type Service struct {
	ID               int64
	Name             string
	Description      string
	Duration         string
	Price            float64
	ProfessionalID   *int64
	ProfessionalName string
}

// IsGlobal reports whether the service has no owning professional. Some
// backend payloads carry only the owner's name, so a non-blank name also
// marks the service as owned.
func (s *Service) IsGlobal() bool {
	return s == nil || (s.ProfessionalID == nil && strings.TrimSpace(s.ProfessionalName) == "")
}

// ProfessionalIndex builds an id lookup. Later duplicates win.
func ProfessionalIndex(pros []Professional) map[int64]*Professional {
	idx := make(map[int64]*Professional, len(pros))
	for i := range pros {
		idx[pros[i].ID] = &pros[i]
	}
	return idx
}

// ServiceIndex builds an id lookup. Later duplicates win.
func ServiceIndex(services []Service) map[int64]*Service {
	idx := make(map[int64]*Service, len(services))
	for i := range services {
		idx[services[i].ID] = &services[i]
	}
	return idx
}

// UserIndex builds an id lookup. Later duplicates win.
func UserIndex(users []User) map[int64]*User {
	idx := make(map[int64]*User, len(users))
	for i := range users {
		idx[users[i].ID] = &users[i]
	}
	return idx
}
