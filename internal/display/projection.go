// Package display turns appointments and directory records into
// display-ready rows. Missing references are data, not errors: every
// function here substitutes a fallback label instead of failing.
package display

import (
	"strings"
	"time"

	"github.com/wolfman30/wellness-portal/internal/appointments"
	"github.com/wolfman30/wellness-portal/internal/directory"
)

const (
	// Fallback replaces a name that cannot be resolved.
	Fallback = "N/A"
	// Unspecified replaces blank free-text attributes.
	Unspecified = "No especificado"
	// GlobalLabel marks a service offered by every professional.
	GlobalLabel = "Global"
	// NoDescription replaces a blank service description.
	NoDescription = "Sin descripción"
)

// Refs are the records an appointment points at. Any of them may be nil.
type Refs struct {
	Professional *directory.Professional
	Service      *directory.Service
	User         *directory.User
}

// AppointmentView is the display projection of one appointment.
type AppointmentView struct {
	ID                    int64                   `json:"id"`
	ScheduledAt           time.Time               `json:"scheduled_at"`
	Notes                 string                  `json:"notes,omitempty"`
	Status                appointments.Status     `json:"status"`
	StatusLabel           string                  `json:"status_label"`
	Badge                 appointments.BadgeStyle `json:"badge"`
	ProfessionalName      string                  `json:"professional_name"`
	ProfessionalSpecialty string                  `json:"professional_specialty"`
	ServiceName           string                  `json:"service_name"`
	ServiceDuration       string                  `json:"service_duration"`
	ServicePrice          float64                 `json:"service_price"`
	UserName              string                  `json:"user_name"`
	Actions               []appointments.Action   `json:"actions"`
}

// ProjectForDisplay combines a with the names of its references.
func ProjectForDisplay(a appointments.Appointment, refs Refs) AppointmentView {
	v := AppointmentView{
		ID:                    a.ID,
		ScheduledAt:           a.ScheduledAt,
		Notes:                 a.Notes,
		Status:                a.Status,
		StatusLabel:           appointments.StatusLabel(a.Status),
		Badge:                 appointments.StatusBadgeStyle(a.Status),
		ProfessionalName:      Fallback,
		ProfessionalSpecialty: Unspecified,
		ServiceName:           Fallback,
		ServiceDuration:       Unspecified,
		UserName:              Fallback,
		Actions:               []appointments.Action{},
	}
	if p := refs.Professional; p != nil {
		v.ProfessionalName = orFallback(p.Name, Fallback)
		v.ProfessionalSpecialty = orFallback(p.Specialty, Unspecified)
	}
	if s := refs.Service; s != nil {
		v.ServiceName = orFallback(s.Name, Fallback)
		v.ServiceDuration = orFallback(s.Duration, Unspecified)
		v.ServicePrice = s.Price
	}
	if u := refs.User; u != nil {
		v.UserName = orFallback(u.Name, Fallback)
	}
	return v
}

// ServiceOwnerLabel is "Global" for a service without owner, otherwise the
// owning professional's resolved name. owner may be nil when the reference
// is dangling; the name embedded in the service is then used.
func ServiceOwnerLabel(s directory.Service, owner *directory.Professional) string {
	if s.IsGlobal() {
		return GlobalLabel
	}
	if owner != nil && strings.TrimSpace(owner.Name) != "" {
		return owner.Name
	}
	return orFallback(s.ProfessionalName, Fallback)
}

func orFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
