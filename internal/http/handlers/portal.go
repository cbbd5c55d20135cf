package handlers

import (
	"net/http"
	"strings"

	"github.com/wolfman30/wellness-portal/pkg/logging"
)

// PortalHandler serves the dashboard and the read-only catalog.
type PortalHandler struct {
	views   ViewLoader
	respond *Responder
	logger  *logging.Logger
}

func NewPortalHandler(v ViewLoader, respond *Responder, logger *logging.Logger) *PortalHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &PortalHandler{views: v, respond: respond, logger: logger}
}

// Dashboard GET /api/dashboard
func (h *PortalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	d, err := h.views.Dashboard(r.Context(), s)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Services GET /api/services?q=
func (h *PortalHandler) Services(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	rows, err := h.views.Services(r.Context(), s, r.URL.Query().Get("q"))
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Professionals GET /api/professionals?q=
func (h *PortalHandler) Professionals(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	rows, err := h.views.Professionals(r.Context(), s, r.URL.Query().Get("q"))
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// SearchProfessionals GET /api/professionals/search?specialty=
func (h *PortalHandler) SearchProfessionals(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	specialty := strings.TrimSpace(r.URL.Query().Get("specialty"))
	if specialty == "" {
		jsonError(w, "specialty is required", http.StatusBadRequest)
		return
	}
	rows, err := h.views.ProfessionalsBySpecialty(r.Context(), s, specialty)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Health GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
