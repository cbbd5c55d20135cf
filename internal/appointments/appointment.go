package appointments

import "time"

// Appointment is a request-scoped copy of a booking owned by the backend.
// The snapshot fields carry the names the backend embeds in its response;
// they are used only when the referenced record cannot be resolved.
type Appointment struct {
	ID             int64
	ScheduledAt    time.Time
	Notes          string
	Status         Status
	UserID         int64
	ProfessionalID int64
	ServiceID      int64

	Snapshot Snapshot
}

// Snapshot holds denormalized display data returned with an appointment.
type Snapshot struct {
	UserName              string
	ProfessionalName      string
	ProfessionalSpecialty string
	ServiceName           string
	ServiceDuration       string
	ServicePrice          float64
}

// IsUpcoming reports whether the appointment is scheduled strictly after now.
func (a Appointment) IsUpcoming(now time.Time) bool {
	return a.ScheduledAt.After(now)
}
