package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/wellness-portal/internal/appointments"
	"github.com/wolfman30/wellness-portal/internal/backend"
	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/display"
	"github.com/wolfman30/wellness-portal/internal/session"
	"github.com/wolfman30/wellness-portal/internal/validation"
	"github.com/wolfman30/wellness-portal/internal/views"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

// ViewLoader builds the read models behind each screen.
type ViewLoader interface {
	Dashboard(ctx context.Context, s *session.Session) (*views.Dashboard, error)
	MyAppointments(ctx context.Context, s *session.Session, filter string) (*views.AppointmentList, error)
	ProfessionalAgenda(ctx context.Context, s *session.Session) (*views.Agenda, error)
	AdminAppointments(ctx context.Context, s *session.Session, status string) (*views.AppointmentList, error)
	Services(ctx context.Context, s *session.Session, q string) ([]display.ServiceRow, error)
	Professionals(ctx context.Context, s *session.Session, q string) ([]display.ProfessionalRow, error)
	ProfessionalsBySpecialty(ctx context.Context, s *session.Session, specialty string) ([]display.ProfessionalRow, error)
	Users(ctx context.Context, s *session.Session, q string) ([]display.UserRow, error)
}

// AppointmentBackend is the write side for appointments.
type AppointmentBackend interface {
	CreateAppointment(ctx context.Context, token string, req backend.NewAppointment) (*appointments.Appointment, error)
	GetAppointment(ctx context.Context, token string, id int64) (*appointments.Appointment, error)
	ApplyAction(ctx context.Context, token string, id int64, action appointments.Action) (*appointments.Appointment, error)
}

// AppointmentsHandler serves the appointment list, agenda, booking and
// status actions.
type AppointmentsHandler struct {
	views     ViewLoader
	backend   AppointmentBackend
	validator *validation.Validator
	respond   *Responder
	logger    *logging.Logger
	now       func() time.Time
}

func NewAppointmentsHandler(v ViewLoader, b AppointmentBackend, val *validation.Validator, respond *Responder, logger *logging.Logger) *AppointmentsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentsHandler{views: v, backend: b, validator: val, respond: respond, logger: logger, now: time.Now}
}

// List GET /api/appointments?filter=
func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	list, err := h.views.MyAppointments(r.Context(), s, r.URL.Query().Get("filter"))
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Agenda GET /api/appointments/agenda
func (h *AppointmentsHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	agenda, err := h.views.ProfessionalAgenda(r.Context(), s)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agenda)
}

// Create POST /api/appointments
func (h *AppointmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	var in validation.AppointmentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	now := h.now()
	if err := h.validator.Appointment(in, now); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	created, err := h.backend.CreateAppointment(r.Context(), s.Token, backend.NewAppointment{
		UserID:         s.User.ID,
		ProfessionalID: in.ProfessionalID,
		ServiceID:      in.ServiceID,
		ScheduledAt:    in.ScheduledAt,
		Notes:          strings.TrimSpace(in.Notes),
	})
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.logger.Info("appointment booked", "appointment_id", created.ID, "user_id", s.User.ID)
	writeJSON(w, http.StatusCreated, h.project(*created, s, now))
}

// Act PATCH /api/appointments/{id}/{action}
func (h *AppointmentsHandler) Act(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	action, ok := appointments.ParseAction(chi.URLParam(r, "action"))
	if !ok || action == appointments.ActionDelete {
		jsonError(w, "unknown action", http.StatusBadRequest)
		return
	}
	if action != appointments.ActionCancel && !directory.HasAnyRole(s.Roles(), directory.RoleProfessional, directory.RoleAdmin) {
		jsonError(w, "not permitted", http.StatusForbidden)
		return
	}

	current, err := h.backend.GetAppointment(r.Context(), s.Token, id)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	now := h.now()
	if err := checkTransition(*current, action, now); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	updated, err := h.backend.ApplyAction(r.Context(), s.Token, id, action)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.logger.Info("appointment status changed",
		"appointment_id", id,
		"action", action,
		"from", current.Status,
		"status", updated.Status,
	)
	writeJSON(w, http.StatusOK, h.project(*updated, s, now))
}

// Delete DELETE /api/appointments/{id}
func (h *AppointmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.backend.ApplyAction(r.Context(), s.Token, id, appointments.ActionDelete); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.logger.Info("appointment deleted", "appointment_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// checkTransition refuses requests the backend would reject anyway: a status
// the action cannot leave from, or cancelling what is no longer cancelable.
func checkTransition(a appointments.Appointment, action appointments.Action, now time.Time) error {
	if !appointments.CanApply(action, a.Status) {
		return fmt.Errorf("%w: cannot %s an appointment that is %s", errTransition, action, a.Status)
	}
	if action == appointments.ActionCancel && !appointments.IsCancelable(a, now) {
		return fmt.Errorf("%w: appointment already took place", errTransition)
	}
	return nil
}

func (h *AppointmentsHandler) project(a appointments.Appointment, s *session.Session, now time.Time) display.AppointmentView {
	r := display.NewResolver(nil, nil, []directory.User{s.User})
	v := display.ProjectForDisplay(a, r.Refs(a))
	if actions := appointments.AvailableActions(a, now, s.Roles()); actions != nil {
		v.Actions = actions
	}
	return v
}
