package display

import (
	"github.com/wolfman30/wellness-portal/internal/appointments"
	"github.com/wolfman30/wellness-portal/internal/directory"
)

// ServiceRow is a catalog line.
type ServiceRow struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Price       float64 `json:"price"`
	Global      bool    `json:"global"`
	OwnerLabel  string  `json:"owner_label"`
}

// ProfessionalRow is a directory line.
type ProfessionalRow struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Name         string `json:"name"`
	Specialty    string `json:"specialty"`
	Availability string `json:"availability"`
}

// UserRow is an admin user-table line.
type UserRow struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	Roles []string `json:"roles"`
}

// Resolver looks up references by id and falls back to the snapshot the
// backend embedded in each appointment.
type Resolver struct {
	professionals map[int64]*directory.Professional
	services      map[int64]*directory.Service
	users         map[int64]*directory.User
}

// NewResolver indexes the given lists. Any of them may be empty.
func NewResolver(pros []directory.Professional, services []directory.Service, users []directory.User) *Resolver {
	return &Resolver{
		professionals: directory.ProfessionalIndex(pros),
		services:      directory.ServiceIndex(services),
		users:         directory.UserIndex(users),
	}
}

// Refs resolves a's references.
func (r *Resolver) Refs(a appointments.Appointment) Refs {
	var refs Refs
	if r != nil {
		refs.Professional = r.professionals[a.ProfessionalID]
		refs.Service = r.services[a.ServiceID]
		refs.User = r.users[a.UserID]
	}
	snap := a.Snapshot
	if refs.Professional == nil && snap.ProfessionalName != "" {
		refs.Professional = &directory.Professional{ID: a.ProfessionalID, Name: snap.ProfessionalName, Specialty: snap.ProfessionalSpecialty}
	}
	if refs.Service == nil && snap.ServiceName != "" {
		refs.Service = &directory.Service{ID: a.ServiceID, Name: snap.ServiceName, Duration: snap.ServiceDuration, Price: snap.ServicePrice}
	}
	if refs.User == nil && snap.UserName != "" {
		refs.User = &directory.User{ID: a.UserID, Name: snap.UserName}
	}
	return refs
}

// Professional returns the indexed professional or nil.
func (r *Resolver) Professional(id int64) *directory.Professional {
	if r == nil {
		return nil
	}
	return r.professionals[id]
}

// ServiceRows projects services with their owner labels.
func ServiceRows(services []directory.Service, r *Resolver) []ServiceRow {
	rows := make([]ServiceRow, 0, len(services))
	for _, s := range services {
		var owner *directory.Professional
		if s.ProfessionalID != nil {
			owner = r.Professional(*s.ProfessionalID)
		}
		rows = append(rows, ServiceRow{
			ID:          s.ID,
			Name:        orFallback(s.Name, Fallback),
			Description: orFallback(s.Description, NoDescription),
			Duration:    orFallback(s.Duration, Unspecified),
			Price:       s.Price,
			Global:      s.IsGlobal(),
			OwnerLabel:  ServiceOwnerLabel(s, owner),
		})
	}
	return rows
}

// ProfessionalRows projects professionals with fallbacks for blank fields.
func ProfessionalRows(pros []directory.Professional) []ProfessionalRow {
	rows := make([]ProfessionalRow, 0, len(pros))
	for _, p := range pros {
		rows = append(rows, ProfessionalRow{
			ID:           p.ID,
			UserID:       p.UserID,
			Name:         orFallback(p.Name, Fallback),
			Specialty:    orFallback(p.Specialty, Unspecified),
			Availability: orFallback(p.Availability, Unspecified),
		})
	}
	return rows
}

// UserRows projects users for the admin table.
func UserRows(users []directory.User) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:    u.ID,
			Name:  orFallback(u.Name, Fallback),
			Email: u.Email,
			Phone: orFallback(u.Phone, Fallback),
			Roles: directory.Strings(u.Roles),
		})
	}
	return rows
}
