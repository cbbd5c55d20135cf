package views

import (
	"context"

	"github.com/wolfman30/wellness-portal/internal/appointments"
	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/display"
	"github.com/wolfman30/wellness-portal/internal/session"
)

const recentAppointments = 5

// ClientDashboard is the landing screen of a USER.
type ClientDashboard struct {
	UpcomingCount     int                       `json:"upcoming_count"`
	CompletedCount    int                       `json:"completed_count"`
	ProfessionalCount int                       `json:"professional_count"`
	Upcoming          []display.AppointmentView `json:"upcoming"`
}

// AdminDashboard is the landing screen of an ADMIN.
type AdminDashboard struct {
	Users         int                         `json:"users"`
	Professionals int                         `json:"professionals"`
	Appointments  int                         `json:"appointments"`
	ThisMonth     int                         `json:"this_month"`
	ByStatus      map[appointments.Status]int `json:"by_status"`
	Recent        []display.AppointmentView   `json:"recent"`
}

// Dashboard is the role-appropriate landing screen. Exactly one of the
// role sections is set.
type Dashboard struct {
	Role         directory.Role   `json:"role"`
	Client       *ClientDashboard `json:"client,omitempty"`
	Professional *Agenda          `json:"professional,omitempty"`
	Admin        *AdminDashboard  `json:"admin,omitempty"`
}

// Dashboard picks the highest role of the session: ADMIN, then
// PROFESSIONAL, then USER.
func (l *Loader) Dashboard(ctx context.Context, s *session.Session) (*Dashboard, error) {
	switch {
	case s.HasRole(directory.RoleAdmin):
		d, err := l.AdminDashboard(ctx, s)
		if err != nil {
			return nil, err
		}
		return &Dashboard{Role: directory.RoleAdmin, Admin: d}, nil
	case s.HasRole(directory.RoleProfessional):
		d, err := l.ProfessionalAgenda(ctx, s)
		if err != nil {
			return nil, err
		}
		return &Dashboard{Role: directory.RoleProfessional, Professional: d}, nil
	default:
		d, err := l.ClientDashboard(ctx, s)
		if err != nil {
			return nil, err
		}
		return &Dashboard{Role: directory.RoleUser, Client: d}, nil
	}
}

// ClientDashboard counts the user's upcoming and completed appointments and
// lists the upcoming ones soonest first.
func (l *Loader) ClientDashboard(ctx context.Context, s *session.Session) (*ClientDashboard, error) {
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
	upcoming := appointments.Agenda(appointments.UpcomingActionable(appts, now))
	r := display.NewResolver(pros, services, []directory.User{s.User})
	return &ClientDashboard{
		UpcomingCount:     len(upcoming),
		CompletedCount:    len(appointments.FilterByStatus(appts, appointments.StatusCompleted)),
		ProfessionalCount: len(pros),
		Upcoming:          l.project(upcoming, r, s, now),
	}, nil
}

// AdminDashboard totals users, professionals and appointments.
func (l *Loader) AdminDashboard(ctx context.Context, s *session.Session) (*AdminDashboard, error) {
	var (
		appts    []appointments.Appointment
		pros     []directory.Professional
		services []directory.Service
		users    []directory.User
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) {
			appts, err = l.backend.ListAppointments(ctx, s.Token)
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
	recent := appointments.History(appts)
	if len(recent) > recentAppointments {
		recent = recent[:recentAppointments]
	}
	r := display.NewResolver(pros, services, users)
	return &AdminDashboard{
		Users:         len(users),
		Professionals: len(pros),
		Appointments:  len(appts),
		ThisMonth:     appointments.CountInMonth(appts, now, l.loc),
		ByStatus:      appointments.CountByStatus(appts),
		Recent:        l.project(recent, r, s, now),
	}, nil
}
