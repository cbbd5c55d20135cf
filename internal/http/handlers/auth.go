package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/wellness-portal/internal/backend"
	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/session"
	"github.com/wolfman30/wellness-portal/internal/validation"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

// SessionManager starts and ends sessions.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Logout(ctx context.Context, id string) error
}

// Registrar creates self-service accounts.
type Registrar interface {
	Register(ctx context.Context, r backend.Registration) (*directory.User, error)
}

// AuthHandler serves login, logout, registration and the current account.
type AuthHandler struct {
	sessions  SessionManager
	registrar Registrar
	validator *validation.Validator
	cookie    session.Cookie
	respond   *Responder
	logger    *logging.Logger
}

func NewAuthHandler(sessions SessionManager, registrar Registrar, v *validation.Validator, cookie session.Cookie, respond *Responder, logger *logging.Logger) *AuthHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthHandler{
		sessions:  sessions,
		registrar: registrar,
		validator: v,
		cookie:    cookie,
		respond:   respond,
		logger:    logger,
	}
}

// MeResponse describes the signed-in account.
type MeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expires_at"`
}

func meFromSession(s *session.Session) MeResponse {
	return MeResponse{
		ID:        s.User.ID,
		Name:      s.User.Name,
		Email:     s.User.Email,
		Phone:     s.User.Phone,
		Roles:     directory.Strings(s.User.Roles),
		ExpiresAt: s.ExpiresAt,
	}
}

// Login POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in validation.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if err := h.validator.Login(in); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	s, err := h.sessions.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthenticated) {
			jsonError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.respond.Error(w, r, err)
		return
	}
	h.cookie.Set(w, s)
	writeJSON(w, http.StatusOK, meFromSession(s))
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context(), h.cookie.Read(r)); err != nil {
		h.logger.Warn("logout failed", "error", err)
	}
	h.cookie.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// Register POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in validation.RegistrationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.validator.Registration(in); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	u, err := h.registrar.Register(r.Context(), backend.Registration{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		Phone:    strings.TrimSpace(in.Phone),
	})
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.logger.Info("account registered", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, MeResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Roles: directory.Strings(u.Roles),
	})
}

// Me GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, meFromSession(s))
}
