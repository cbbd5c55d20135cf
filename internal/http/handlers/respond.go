// Package handlers implements the portal's HTTP surface. Handlers decode
// input, run local validation, call the backend with the session's token
// and return view models as JSON.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/wellness-portal/internal/backend"
	"github.com/wolfman30/wellness-portal/internal/session"
	"github.com/wolfman30/wellness-portal/internal/validation"
	"github.com/wolfman30/wellness-portal/internal/views"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

const maxBodyBytes = 1 << 20

// errTransition is returned when an action cannot apply to the current status.
var errTransition = errors.New("transition not allowed")

type errorResponse struct {
	Error    string              `json:"error"`
	Fields   map[string][]string `json:"fields,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// SessionInvalidator drops a session the backend no longer accepts.
type SessionInvalidator interface {
	Invalidate(ctx context.Context, id string)
}

// Responder turns errors into HTTP responses. A backend "not authenticated"
// ends the session and points the client at the login page; "not permitted"
// leaves the session alone.
type Responder struct {
	sessions  SessionInvalidator
	cookie    session.Cookie
	loginPath string
	logger    *logging.Logger
}

func NewResponder(sessions SessionInvalidator, cookie session.Cookie, loginPath string, logger *logging.Logger) *Responder {
	if logger == nil {
		logger = logging.Default()
	}
	if loginPath == "" {
		loginPath = "/login"
	}
	return &Responder{sessions: sessions, cookie: cookie, loginPath: loginPath, logger: logger}
}

// Error writes the response for err.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	if fields, ok := validation.AsErrors(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fields})
		return
	}

	var apiErr *backend.APIError
	errors.As(err, &apiErr)

	switch {
	case errors.Is(err, context.Canceled):
		rs.logger.Debug("request canceled by client", "path", r.URL.Path)
	case errors.Is(err, backend.ErrUnauthenticated):
		if s, ok := session.FromContext(r.Context()); ok && rs.sessions != nil {
			rs.sessions.Invalidate(r.Context(), s.ID)
		}
		rs.cookie.Clear(w)
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "session expired", Redirect: rs.loginPath})
	case errors.Is(err, backend.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not permitted"})
	case errors.Is(err, backend.ErrNotFound):
		jsonError(w, "not found", http.StatusNotFound)
	case errors.Is(err, errTransition):
		jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, backend.ErrConflict):
		resp := errorResponse{Error: "request rejected"}
		if apiErr != nil {
			if apiErr.Message != "" {
				resp.Error = apiErr.Message
			}
			resp.Fields = fieldErrors(apiErr.FieldErrors)
		}
		writeJSON(w, http.StatusConflict, resp)
	case errors.Is(err, views.ErrInvalidFilter):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		rs.logger.Error("request failed", "path", r.URL.Path, "error", err)
		jsonError(w, "backend unavailable, try again", http.StatusBadGateway)
	}
}

func fieldErrors(in map[string]string) map[string][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = []string{v}
	}
	return out
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// pathID parses a positive integer URL parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		jsonError(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// currentSession returns the session placed in context by the auth middleware.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		jsonError(w, "authentication required", http.StatusUnauthorized)
		return nil, false
	}
	return s, true
}
