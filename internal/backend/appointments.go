package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wolfman30/wellness-portal/internal/appointments"
)

var errEmptyAppointment = errors.New("backend: response carried no appointment")

// NewAppointment is a booking request.
type NewAppointment struct {
	UserID         int64
	ProfessionalID int64
	ServiceID      int64
	ScheduledAt    time.Time
	Notes          string
}

// AppointmentUpdate replaces the mutable fields of a booking.
type AppointmentUpdate struct {
	ScheduledAt time.Time
	Status      appointments.Status
}

// ListAppointments returns every appointment visible to token.
func (c *Client) ListAppointments(ctx context.Context, token string) ([]appointments.Appointment, error) {
	return c.listAppointments(ctx, "list_appointments", token, "/api/citas")
}

// ListAppointmentsByUser returns the appointments requested by userID.
func (c *Client) ListAppointmentsByUser(ctx context.Context, token string, userID int64) ([]appointments.Appointment, error) {
	return c.listAppointments(ctx, "list_appointments_by_user", token, fmt.Sprintf("/api/citas/usuario/%d", userID))
}

// ListAppointmentsByProfessional returns the appointments assigned to professionalID.
func (c *Client) ListAppointmentsByProfessional(ctx context.Context, token string, professionalID int64) ([]appointments.Appointment, error) {
	return c.listAppointments(ctx, "list_appointments_by_professional", token, fmt.Sprintf("/api/citas/profesional/%d", professionalID))
}

// ListAppointmentsByStatus returns appointments in status.
func (c *Client) ListAppointmentsByStatus(ctx context.Context, token string, status appointments.Status) ([]appointments.Appointment, error) {
	path := "/api/citas/estado/" + url.PathEscape(status.BackendValue())
	return c.listAppointments(ctx, "list_appointments_by_status", token, path)
}

func (c *Client) listAppointments(ctx context.Context, op, token, path string) ([]appointments.Appointment, error) {
	var dtos []appointmentDTO
	if err := c.do(ctx, call{op: op, token: token, method: http.MethodGet, path: path, out: &dtos}); err != nil {
		return nil, err
	}
	out := make([]appointments.Appointment, 0, len(dtos))
	for _, d := range dtos {
		a, err := d.toDomain(c.loc)
		if err != nil {
			c.logger.Warn("skipping malformed appointment", "operation", op, "appointment_id", d.ID, "error", err)
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// GetAppointment fetches one appointment.
func (c *Client) GetAppointment(ctx context.Context, token string, id int64) (*appointments.Appointment, error) {
	var d appointmentDTO
	err := c.do(ctx, call{op: "get_appointment", token: token, method: http.MethodGet, path: fmt.Sprintf("/api/citas/%d", id), out: &d})
	if err != nil {
		return nil, err
	}
	return c.appointment(d)
}

// CreateAppointment books an appointment.
func (c *Client) CreateAppointment(ctx context.Context, token string, req NewAppointment) (*appointments.Appointment, error) {
	body := map[string]any{
		"usuarioId":     req.UserID,
		"profesionalId": req.ProfessionalID,
		"servicioId":    req.ServiceID,
		"fechaHora":     formatLocalDateTime(req.ScheduledAt, c.loc),
		"notas":         req.Notes,
	}
	var d appointmentDTO
	if err := c.do(ctx, call{op: "create_appointment", token: token, method: http.MethodPost, path: "/api/citas", body: body, out: &d}); err != nil {
		return nil, err
	}
	return c.appointment(d)
}

// UpdateAppointment replaces date-time and status of an appointment.
func (c *Client) UpdateAppointment(ctx context.Context, token string, id int64, req AppointmentUpdate) (*appointments.Appointment, error) {
	body := map[string]any{
		"fechaHora": formatLocalDateTime(req.ScheduledAt, c.loc),
		"estado":    req.Status.BackendValue(),
	}
	var d appointmentDTO
	err := c.do(ctx, call{op: "update_appointment", token: token, method: http.MethodPut, path: fmt.Sprintf("/api/citas/%d", id), body: body, out: &d})
	if err != nil {
		return nil, err
	}
	return c.appointmentOrRefetch(ctx, token, id, d)
}

// ConfirmAppointment requests PENDING -> CONFIRMED.
func (c *Client) ConfirmAppointment(ctx context.Context, token string, id int64) (*appointments.Appointment, error) {
	return c.patchStatus(ctx, "confirm_appointment", token, id, "confirmar")
}

// CancelAppointment requests a cancellation.
func (c *Client) CancelAppointment(ctx context.Context, token string, id int64) (*appointments.Appointment, error) {
	return c.patchStatus(ctx, "cancel_appointment", token, id, "cancelar")
}

// CompleteAppointment marks an appointment as attended.
func (c *Client) CompleteAppointment(ctx context.Context, token string, id int64) (*appointments.Appointment, error) {
	return c.patchStatus(ctx, "complete_appointment", token, id, "completar")
}

// DeleteAppointment removes an appointment. Administrative.
func (c *Client) DeleteAppointment(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{op: "delete_appointment", token: token, method: http.MethodDelete, path: fmt.Sprintf("/api/citas/%d", id)})
}

// ApplyAction dispatches a status-changing action. Delete returns a nil
// appointment on success.
func (c *Client) ApplyAction(ctx context.Context, token string, id int64, action appointments.Action) (*appointments.Appointment, error) {
	switch action {
	case appointments.ActionConfirm:
		return c.ConfirmAppointment(ctx, token, id)
	case appointments.ActionCancel:
		return c.CancelAppointment(ctx, token, id)
	case appointments.ActionComplete:
		return c.CompleteAppointment(ctx, token, id)
	case appointments.ActionDelete:
		return nil, c.DeleteAppointment(ctx, token, id)
	}
	return nil, fmt.Errorf("unsupported action %q", action)
}

func (c *Client) patchStatus(ctx context.Context, op, token string, id int64, verb string) (*appointments.Appointment, error) {
	var d appointmentDTO
	err := c.do(ctx, call{op: op, token: token, method: http.MethodPatch, path: fmt.Sprintf("/api/citas/%d/%s", id, verb), out: &d})
	if err != nil {
		return nil, err
	}
	return c.appointmentOrRefetch(ctx, token, id, d)
}

// appointmentOrRefetch reads the appointment back when a successful write
// answered without one.
func (c *Client) appointmentOrRefetch(ctx context.Context, token string, id int64, d appointmentDTO) (*appointments.Appointment, error) {
	if d.ID == 0 {
		return c.GetAppointment(ctx, token, id)
	}
	return c.appointment(d)
}

func (c *Client) appointment(d appointmentDTO) (*appointments.Appointment, error) {
	if d.ID == 0 {
		return nil, errEmptyAppointment
	}
	a, err := d.toDomain(c.loc)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
