package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/wolfman30/wellness-portal/internal/backend"
	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/display"
	"github.com/wolfman30/wellness-portal/internal/validation"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

// DirectoryBackend is the administrative write side for the directory.
type DirectoryBackend interface {
	CreateService(ctx context.Context, token string, w backend.ServiceWrite) (*directory.Service, error)
	UpdateService(ctx context.Context, token string, id int64, w backend.ServiceWrite) (*directory.Service, error)
	DeleteService(ctx context.Context, token string, id int64) error
	CreateProfessional(ctx context.Context, token string, w backend.ProfessionalWrite) (*directory.Professional, error)
	UpdateProfessional(ctx context.Context, token string, id int64, w backend.ProfessionalWrite) (*directory.Professional, error)
	DeleteProfessional(ctx context.Context, token string, id int64) error
	CreateUser(ctx context.Context, token string, w backend.UserWrite) (*directory.User, error)
	UpdateUser(ctx context.Context, token string, id int64, w backend.UserWrite) (*directory.User, error)
	DeleteUser(ctx context.Context, token string, id int64) error
}

// AdminHandler serves the ADMIN screens: all appointments, users, and the
// directory CRUD.
type AdminHandler struct {
	views     ViewLoader
	backend   DirectoryBackend
	validator *validation.Validator
	respond   *Responder
	logger    *logging.Logger
}

func NewAdminHandler(v ViewLoader, b DirectoryBackend, val *validation.Validator, respond *Responder, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{views: v, backend: b, validator: val, respond: respond, logger: logger}
}

// Appointments GET /api/admin/appointments?status=
func (h *AdminHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	list, err := h.views.AdminAppointments(r.Context(), s, r.URL.Query().Get("status"))
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Users GET /api/admin/users?q=
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	rows, err := h.views.Users(r.Context(), s, r.URL.Query().Get("q"))
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func serviceWrite(in validation.ServiceInput) backend.ServiceWrite {
	return backend.ServiceWrite{
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Duration:       strings.TrimSpace(in.Duration),
		Price:          in.Price,
		ProfessionalID: in.ProfessionalID,
	}
}

// CreateService POST /api/admin/services
func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	h.saveService(w, r, false)
}

// UpdateService PUT /api/admin/services/{id}
func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	h.saveService(w, r, true)
}

func (h *AdminHandler) saveService(w http.ResponseWriter, r *http.Request, update bool) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	var id int64
	if update {
		if id, ok = pathID(w, r, "id"); !ok {
			return
		}
	}
	var in validation.ServiceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.validator.Service(in); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	var (
		svc *directory.Service
		err error
	)
	status := http.StatusCreated
	if update {
		svc, err = h.backend.UpdateService(r.Context(), s.Token, id, serviceWrite(in))
		status = http.StatusOK
	} else {
		svc, err = h.backend.CreateService(r.Context(), s.Token, serviceWrite(in))
	}
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.logger.Info("service saved", "service_id", svc.ID, "global", svc.IsGlobal())
	writeJSON(w, status, display.ServiceRows([]directory.Service{*svc}, nil)[0])
}

// DeleteService DELETE /api/admin/services/{id}
func (h *AdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "service", h.backend.DeleteService)
}

// CreateProfessional POST /api/admin/professionals
func (h *AdminHandler) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	h.saveProfessional(w, r, false)
}

// UpdateProfessional PUT /api/admin/professionals/{id}
func (h *AdminHandler) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	h.saveProfessional(w, r, true)
}

func (h *AdminHandler) saveProfessional(w http.ResponseWriter, r *http.Request, update bool) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	var id int64
	if update {
		if id, ok = pathID(w, r, "id"); !ok {
			return
		}
	}
	var in validation.ProfessionalInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.validator.Professional(in); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	pw := backend.ProfessionalWrite{
		UserID:       in.UserID,
		Specialty:    strings.TrimSpace(in.Specialty),
		Availability: strings.TrimSpace(in.Availability),
	}
	var (
		pro *directory.Professional
		err error
	)
	status := http.StatusCreated
	if update {
		pro, err = h.backend.UpdateProfessional(r.Context(), s.Token, id, pw)
		status = http.StatusOK
	} else {
		pro, err = h.backend.CreateProfessional(r.Context(), s.Token, pw)
	}
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.logger.Info("professional saved", "professional_id", pro.ID)
	writeJSON(w, status, display.ProfessionalRows([]directory.Professional{*pro})[0])
}

// DeleteProfessional DELETE /api/admin/professionals/{id}
func (h *AdminHandler) DeleteProfessional(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "professional", h.backend.DeleteProfessional)
}

// CreateUser POST /api/admin/users
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	h.saveUser(w, r, false)
}

// UpdateUser PUT /api/admin/users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	h.saveUser(w, r, true)
}

func (h *AdminHandler) saveUser(w http.ResponseWriter, r *http.Request, update bool) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	var id int64
	if update {
		if id, ok = pathID(w, r, "id"); !ok {
			return
		}
	}
	var in validation.UserInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.validator.User(in, !update); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	uw := backend.UserWrite{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Password: in.Password,
		Roles:    directory.ParseRoles(in.Roles),
	}
	var (
		u   *directory.User
		err error
	)
	status := http.StatusCreated
	if update {
		u, err = h.backend.UpdateUser(r.Context(), s.Token, id, uw)
		status = http.StatusOK
	} else {
		u, err = h.backend.CreateUser(r.Context(), s.Token, uw)
	}
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.logger.Info("user saved", "user_id", u.ID)
	writeJSON(w, status, display.UserRows([]directory.User{*u})[0])
}

// DeleteUser DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "user", h.backend.DeleteUser)
}

func (h *AdminHandler) remove(w http.ResponseWriter, r *http.Request, kind string, del func(context.Context, string, int64) error) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := del(r.Context(), s.Token, id); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.logger.Info(kind+" deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
