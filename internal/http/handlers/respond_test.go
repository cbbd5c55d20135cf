package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/wellness-portal/internal/backend"
	"github.com/wolfman30/wellness-portal/internal/session"
	"github.com/wolfman30/wellness-portal/internal/validation"
	"github.com/wolfman30/wellness-portal/internal/views"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

type recordingInvalidator struct {
	ids []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, id string) {
	r.ids = append(r.ids, id)
}

func TestResponderMapping(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantInvalid bool
	}{
		{"validation", validation.Errors{"email": {"es requerido"}}, http.StatusUnprocessableEntity, false},
		{"unauthenticated", &backend.APIError{Operation: "list_users", StatusCode: 401}, http.StatusUnauthorized, true},
		{"forbidden", &backend.APIError{Operation: "list_users", StatusCode: 403}, http.StatusForbidden, false},
		{"not found", fmt.Errorf("views: %w", backend.ErrNotFound), http.StatusNotFound, false},
		{"conflict", &backend.APIError{Operation: "create_appointment", StatusCode: 400, Message: "Horario ocupado"}, http.StatusConflict, false},
		{"transition", fmt.Errorf("%w: nope", errTransition), http.StatusConflict, false},
		{"bad filter", fmt.Errorf("%w: x", views.ErrInvalidFilter), http.StatusBadRequest, false},
		{"unavailable", fmt.Errorf("list: %w", backend.ErrUnavailable), http.StatusBadGateway, false},
		{"unknown", errors.New("boom"), http.StatusBadGateway, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &recordingInvalidator{}
			rs := NewResponder(inv, session.Cookie{Name: "sid"}, "/login", logging.Discard())
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			req = req.WithContext(session.WithSession(req.Context(), &session.Session{ID: "s-1"}))
			rec := httptest.NewRecorder()

			rs.Error(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantInvalid {
				assert.Equal(t, []string{"s-1"}, inv.ids)
				assert.Contains(t, rec.Header().Get("Set-Cookie"), "sid=")
			} else {
				assert.Empty(t, inv.ids)
				assert.Empty(t, rec.Header().Get("Set-Cookie"))
			}
		})
	}
}

func TestResponderConflictCarriesBackendMessage(t *testing.T) {
	rs := NewResponder(nil, session.Cookie{}, "", logging.Discard())
	rec := httptest.NewRecorder()
	err := &backend.APIError{StatusCode: 400, Message: "Horario ocupado", FieldErrors: map[string]string{"fechaHora": "ocupada"}}

	rs.Error(rec, httptest.NewRequest(http.MethodPost, "/api/appointments", nil), err)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Horario ocupado", body.Error)
	assert.Equal(t, []string{"ocupada"}, body.Fields["fechaHora"])
}

func TestResponderCanceledWritesNothing(t *testing.T) {
	rs := NewResponder(nil, session.Cookie{}, "", logging.Discard())
	rec := httptest.NewRecorder()
	rs.Error(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil), context.Canceled)
	assert.Equal(t, 0, rec.Body.Len())
}

func TestJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	jsonError(rec, "oops", http.StatusTeapot)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"oops"}`, rec.Body.String())
}
