package views

import (
	"context"

	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/display"
	"github.com/wolfman30/wellness-portal/internal/session"
)

// Services lists the catalog matching q with each service's owner label.
func (l *Loader) Services(ctx context.Context, s *session.Session, q string) ([]display.ServiceRow, error) {
	var (
		services []directory.Service
		pros     []directory.Professional
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) {
			services, err = l.backend.ListServices(ctx, s.Token)
			return err
		},
		func(ctx context.Context) (err error) {
			pros, err = l.backend.ListProfessionals(ctx, s.Token)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	r := display.NewResolver(pros, nil, nil)
	return display.ServiceRows(directory.SearchServices(services, q), r), nil
}

// Professionals lists professionals whose specialty or name contains q.
func (l *Loader) Professionals(ctx context.Context, s *session.Session, q string) ([]display.ProfessionalRow, error) {
	pros, err := l.backend.ListProfessionals(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	return display.ProfessionalRows(directory.SearchProfessionals(pros, q)), nil
}

// ProfessionalsBySpecialty serves the specialty search. It shares the
// matching rule of Professionals (specialty OR name) instead of the backend's
// specialty-only /buscar endpoint, so both search paths return the same rows.
func (l *Loader) ProfessionalsBySpecialty(ctx context.Context, s *session.Session, specialty string) ([]display.ProfessionalRow, error) {
	return l.Professionals(ctx, s, specialty)
}

// Users lists accounts whose name or email contains q.
func (l *Loader) Users(ctx context.Context, s *session.Session, q string) ([]display.UserRow, error) {
	users, err := l.backend.ListUsers(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	return display.UserRows(directory.SearchUsers(users, q)), nil
}
