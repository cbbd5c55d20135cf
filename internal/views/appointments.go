package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wolfman30/wellness-portal/internal/appointments"
	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/display"
	"github.com/wolfman30/wellness-portal/internal/session"
)

// ErrInvalidFilter means a filter value names nothing the views know.
var ErrInvalidFilter = errors.New("views: invalid filter")

// AppointmentList is a filtered, ordered list of appointments.
type AppointmentList struct {
	Filter       string                    `json:"filter"`
	Total        int                       `json:"total"`
	Appointments []display.AppointmentView `json:"appointments"`
}

// Agenda is a professional's schedule, soonest first.
type Agenda struct {
	Professional display.ProfessionalRow   `json:"professional"`
	Stats        appointments.AgendaStats  `json:"stats"`
	Appointments []display.AppointmentView `json:"appointments"`
}

// MyAppointments lists the session user's bookings, most recent first,
// narrowed by the named filter.
func (l *Loader) MyAppointments(ctx context.Context, s *session.Session, filter string) (*AppointmentList, error) {
	var (
		appts    []appointments.Appointment
		pros     []directory.Professional
		services []directory.Service
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) {
			appts, err = l.backend.ListAppointmentsByUser(ctx, s.Token, s.User.ID)
			return err
		},
		func(ctx context.Context) (err error) {
			pros, err = l.backend.ListProfessionals(ctx, s.Token)
			return err
		},
		func(ctx context.Context) (err error) {
			services, err = l.backend.ListServices(ctx, s.Token)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	now := l.now()
	f := appointments.ParseViewFilter(filter)
	selected := appointments.History(appointments.ApplyViewFilter(appts, f, now))
	r := display.NewResolver(pros, services, []directory.User{s.User})
	return &AppointmentList{
		Filter:       string(f),
		Total:        len(appts),
		Appointments: l.project(selected, r, s, now),
	}, nil
}

// ProfessionalAgenda lists every appointment assigned to the session's
// professional profile, soonest first, with today/week/total counts.
func (l *Loader) ProfessionalAgenda(ctx context.Context, s *session.Session) (*Agenda, error) {
	pro, err := l.professionalFor(ctx, s)
	if err != nil {
		return nil, err
	}

	var (
		appts    []appointments.Appointment
		services []directory.Service
	)
	err = fetch(ctx,
		func(ctx context.Context) (err error) {
			appts, err = l.backend.ListAppointmentsByProfessional(ctx, s.Token, pro.ID)
			return err
		},
		func(ctx context.Context) (err error) {
			services, err = l.backend.ListServices(ctx, s.Token)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	now := l.now()
	r := display.NewResolver([]directory.Professional{*pro}, services, nil)
	return &Agenda{
		Professional: display.ProfessionalRows([]directory.Professional{*pro})[0],
		Stats:        appointments.ComputeAgendaStats(appts, now, l.loc),
		Appointments: l.project(appointments.Agenda(appts), r, s, now),
	}, nil
}

// AdminAppointments lists all appointments, or those in one status, most
// recent first.
func (l *Loader) AdminAppointments(ctx context.Context, s *session.Session, status string) (*AppointmentList, error) {
	st := appointments.ParseStatus(status)
	if strings.TrimSpace(status) == "" {
		st = appointments.StatusAll
	}
	if st != appointments.StatusAll && !st.Known() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, status)
	}

	var (
		appts    []appointments.Appointment
		pros     []directory.Professional
		services []directory.Service
		users    []directory.User
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) {
			if st == appointments.StatusAll {
				appts, err = l.backend.ListAppointments(ctx, s.Token)
			} else {
				appts, err = l.backend.ListAppointmentsByStatus(ctx, s.Token, st)
			}
			return err
		},
		func(ctx context.Context) (err error) {
			pros, err = l.backend.ListProfessionals(ctx, s.Token)
			return err
		},
		func(ctx context.Context) (err error) {
			services, err = l.backend.ListServices(ctx, s.Token)
			return err
		},
		func(ctx context.Context) (err error) {
			users, err = l.backend.ListUsers(ctx, s.Token)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	now := l.now()
	r := display.NewResolver(pros, services, users)
	return &AppointmentList{
		Filter:       string(st),
		Total:        len(appts),
		Appointments: l.project(appointments.History(appts), r, s, now),
	}, nil
}
