// Package views loads the data behind each portal screen. Independent
// backend reads run in parallel and are joined before the pure derivation
// runs; the first failure cancels the remaining reads.
package views

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wolfman30/wellness-portal/internal/appointments"
	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/display"
	"github.com/wolfman30/wellness-portal/internal/session"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

// Backend is the read side of the scheduling backend used by the views.
type Backend interface {
	ListAppointments(ctx context.Context, token string) ([]appointments.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, token string, userID int64) ([]appointments.Appointment, error)
	ListAppointmentsByProfessional(ctx context.Context, token string, professionalID int64) ([]appointments.Appointment, error)
	ListAppointmentsByStatus(ctx context.Context, token string, status appointments.Status) ([]appointments.Appointment, error)
	GetProfessionalByUser(ctx context.Context, token string, userID int64) (*directory.Professional, error)
	ListProfessionals(ctx context.Context, token string) ([]directory.Professional, error)
	ListServices(ctx context.Context, token string) ([]directory.Service, error)
	ListUsers(ctx context.Context, token string) ([]directory.User, error)
}

// Loader builds view models for a signed-in session.
type Loader struct {
	backend Backend
	loc     *time.Location
	logger  *logging.Logger
	now     func() time.Time
}

func NewLoader(backend Backend, loc *time.Location, logger *logging.Logger) *Loader {
	if backend == nil {
		panic("views: backend required")
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{backend: backend, loc: loc, logger: logger, now: time.Now}
}

// project converts appts into display rows, attaching the actions the
// session may take on each.
func (l *Loader) project(appts []appointments.Appointment, r *display.Resolver, s *session.Session, now time.Time) []display.AppointmentView {
	out := make([]display.AppointmentView, 0, len(appts))
	for _, a := range appts {
		v := display.ProjectForDisplay(a, r.Refs(a))
		if actions := appointments.AvailableActions(a, now, s.Roles()); actions != nil {
			v.Actions = actions
		}
		out = append(out, v)
	}
	return out
}

// professionalFor resolves the professional profile linked to the session user.
func (l *Loader) professionalFor(ctx context.Context, s *session.Session) (*directory.Professional, error) {
	p, err := l.backend.GetProfessionalByUser(ctx, s.Token, s.User.ID)
	if err != nil {
		return nil, fmt.Errorf("views: professional profile for user %d: %w", s.User.ID, err)
	}
	return p, nil
}

// fetch runs each fn concurrently and waits for all of them.
func fetch(ctx context.Context, fns ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error { return fn(gctx) })
	}
	return g.Wait()
}
