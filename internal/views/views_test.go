package views

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/wellness-portal/internal/appointments"
	"github.com/wolfman30/wellness-portal/internal/backend"
	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/display"
	"github.com/wolfman30/wellness-portal/internal/session"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func int64Ptr(v int64) *int64 { return &v }

type fakeBackend struct {
	appts      []appointments.Appointment
	pros       []directory.Professional
	services   []directory.Service
	users      []directory.User
	failUsers  error
	statusSeen appointments.Status
	searchSeen string
	calls      atomic.Int32
}

func (f *fakeBackend) ListAppointments(ctx context.Context, token string) ([]appointments.Appointment, error) {
	f.calls.Add(1)
	return f.appts, nil
}

func (f *fakeBackend) ListAppointmentsByUser(ctx context.Context, token string, userID int64) ([]appointments.Appointment, error) {
	f.calls.Add(1)
	var out []appointments.Appointment
	for _, a := range f.appts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeBackend) ListAppointmentsByProfessional(ctx context.Context, token string, professionalID int64) ([]appointments.Appointment, error) {
	f.calls.Add(1)
	var out []appointments.Appointment
	for _, a := range f.appts {
		if a.ProfessionalID == professionalID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeBackend) ListAppointmentsByStatus(ctx context.Context, token string, status appointments.Status) ([]appointments.Appointment, error) {
	f.calls.Add(1)
	f.statusSeen = status
	return appointments.FilterByStatus(f.appts, status), nil
}

func (f *fakeBackend) GetProfessionalByUser(ctx context.Context, token string, userID int64) (*directory.Professional, error) {
	f.calls.Add(1)
	for _, p := range f.pros {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, &backend.APIError{Operation: "get_professional_by_user", StatusCode: 404}
}

func (f *fakeBackend) ListProfessionals(ctx context.Context, token string) ([]directory.Professional, error) {
	f.calls.Add(1)
	return f.pros, nil
}

func (f *fakeBackend) SearchProfessionalsBySpecialty(ctx context.Context, token, specialty string) ([]directory.Professional, error) {
	f.calls.Add(1)
	f.searchSeen = specialty
	var out []directory.Professional
	for _, p := range f.pros {
		if strings.Contains(strings.ToLower(p.Specialty), strings.ToLower(specialty)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) ListServices(ctx context.Context, token string) ([]directory.Service, error) {
	f.calls.Add(1)
	return f.services, nil
}

func (f *fakeBackend) ListUsers(ctx context.Context, token string) ([]directory.User, error) {
	f.calls.Add(1)
	if f.failUsers != nil {
		return nil, f.failUsers
	}
	return f.users, nil
}

func newFixture() *fakeBackend {
	return &fakeBackend{
		appts: []appointments.Appointment{
			{ID: 1, ScheduledAt: testNow.Add(time.Hour), Status: appointments.StatusPending, UserID: 7, ProfessionalID: 2, ServiceID: 3},
			{ID: 2, ScheduledAt: testNow.Add(-time.Hour), Status: appointments.StatusCompleted, UserID: 7, ProfessionalID: 2, ServiceID: 3},
			{ID: 3, ScheduledAt: testNow.Add(2 * time.Hour), Status: appointments.StatusConfirmed, UserID: 7, ProfessionalID: 99, ServiceID: 4},
			{ID: 4, ScheduledAt: testNow.Add(3 * time.Hour), Status: appointments.StatusPending, UserID: 8, ProfessionalID: 2, ServiceID: 3},
		},
		pros: []directory.Professional{
			{ID: 2, UserID: 20, Name: "Luis", Specialty: "Fisioterapia"},
			{ID: 5, UserID: 50, Name: "Marta", Specialty: "Nutrición"},
		},
		services: []directory.Service{
			{ID: 3, Name: "Masaje", Duration: "60 minutos", Price: 40, ProfessionalID: int64Ptr(2)},
			{ID: 4, Name: "Yoga", Duration: "45 minutos", Price: 15},
		},
		users: []directory.User{
			{ID: 7, Name: "Ana", Email: "ana@example.com", Roles: []directory.Role{directory.RoleUser}},
			{ID: 8, Name: "Bea", Email: "bea@example.com", Roles: []directory.Role{directory.RoleUser}},
		},
	}
}

func newTestLoader(b Backend) *Loader {
	l := NewLoader(b, time.UTC, logging.Discard())
	l.now = func() time.Time { return testNow }
	return l
}

func userSession(id int64, name string, roles ...directory.Role) *session.Session {
	return &session.Session{
		ID:    "sess",
		Token: "tok",
		User:  directory.User{ID: id, Name: name, Roles: roles},
	}
}

func viewIDs(views []display.AppointmentView) []int64 {
	out := make([]int64, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestMyAppointmentsHistoryOrderAndFilter(t *testing.T) {
	l := newTestLoader(newFixture())
	s := userSession(7, "Ana", directory.RoleUser)

	all, err := l.MyAppointments(context.Background(), s, "")
	require.NoError(t, err)
	assert.Equal(t, "all", all.Filter)
	assert.Equal(t, []int64{3, 1, 2}, viewIDs(all.Appointments))
	assert.Equal(t, "Ana", all.Appointments[0].UserName)
	// Professional 99 is not in the directory.
	assert.Equal(t, display.Fallback, all.Appointments[0].ProfessionalName)

	upcoming, err := l.MyAppointments(context.Background(), s, "proximas")
	require.NoError(t, err)
	assert.Equal(t, "upcoming", upcoming.Filter)
	assert.Equal(t, []int64{3, 1}, viewIDs(upcoming.Appointments))
	assert.Equal(t, []appointments.Action{appointments.ActionCancel}, upcoming.Appointments[0].Actions)

	past, err := l.MyAppointments(context.Background(), s, "past")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, viewIDs(past.Appointments))
	assert.Empty(t, past.Appointments[0].Actions)
}

func TestClientDashboard(t *testing.T) {
	l := newTestLoader(newFixture())
	d, err := l.Dashboard(context.Background(), userSession(7, "Ana", directory.RoleUser))
	require.NoError(t, err)
	require.NotNil(t, d.Client)
	assert.Equal(t, directory.RoleUser, d.Role)
	assert.Equal(t, 2, d.Client.UpcomingCount)
	assert.Equal(t, 1, d.Client.CompletedCount)
	assert.Equal(t, 2, d.Client.ProfessionalCount)
	assert.Equal(t, []int64{1, 3}, viewIDs(d.Client.Upcoming))
}

func TestProfessionalDashboard(t *testing.T) {
	l := newTestLoader(newFixture())
	d, err := l.Dashboard(context.Background(), userSession(20, "Luis", directory.RoleUser, directory.RoleProfessional))
	require.NoError(t, err)
	require.NotNil(t, d.Professional)
	assert.Equal(t, directory.RoleProfessional, d.Role)
	assert.Equal(t, "Luis", d.Professional.Professional.Name)
	assert.Equal(t, []int64{2, 1, 4}, viewIDs(d.Professional.Appointments))
	assert.Equal(t, appointments.AgendaStats{Today: 3, Week: 2, Total: 3}, d.Professional.Stats)
	assert.Equal(t, "Masaje", d.Professional.Appointments[0].ServiceName)
	assert.Contains(t, d.Professional.Appointments[1].Actions, appointments.ActionConfirm)
}

func TestProfessionalAgendaWithoutProfile(t *testing.T) {
	l := newTestLoader(newFixture())
	_, err := l.ProfessionalAgenda(context.Background(), userSession(7, "Ana", directory.RoleProfessional))
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrNotFound))
}

func TestAdminDashboard(t *testing.T) {
	l := newTestLoader(newFixture())
	d, err := l.Dashboard(context.Background(), userSession(1, "Root", directory.RoleAdmin, directory.RoleProfessional))
	require.NoError(t, err)
	require.NotNil(t, d.Admin)
	assert.Equal(t, directory.RoleAdmin, d.Role)
	assert.Equal(t, 2, d.Admin.Users)
	assert.Equal(t, 2, d.Admin.Professionals)
	assert.Equal(t, 4, d.Admin.Appointments)
	assert.Equal(t, 4, d.Admin.ThisMonth)
	assert.Equal(t, 2, d.Admin.ByStatus[appointments.StatusPending])
	assert.Equal(t, 0, d.Admin.ByStatus[appointments.StatusCanceled])
	assert.Equal(t, []int64{4, 3, 1, 2}, viewIDs(d.Admin.Recent))
	assert.Equal(t, "Bea", d.Admin.Recent[0].UserName)
	assert.Contains(t, d.Admin.Recent[0].Actions, appointments.ActionDelete)
}

func TestAdminDashboardFailureCancelsSiblings(t *testing.T) {
	b := newFixture()
	b.failUsers = backend.ErrForbidden
	l := newTestLoader(b)

	_, err := l.AdminDashboard(context.Background(), userSession(1, "Root", directory.RoleAdmin))
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrForbidden))
}

func TestAdminAppointmentsByStatus(t *testing.T) {
	b := newFixture()
	l := newTestLoader(b)
	s := userSession(1, "Root", directory.RoleAdmin)

	list, err := l.AdminAppointments(context.Background(), s, "pendiente")
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusPending, b.statusSeen)
	assert.Equal(t, "PENDING", list.Filter)
	assert.Equal(t, []int64{4, 1}, viewIDs(list.Appointments))

	list, err = l.AdminAppointments(context.Background(), s, "")
	require.NoError(t, err)
	assert.Equal(t, "ALL", list.Filter)
	assert.Len(t, list.Appointments, 4)

	_, err = l.AdminAppointments(context.Background(), s, "ARCHIVED")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestCatalogViews(t *testing.T) {
	b := newFixture()
	l := newTestLoader(b)
	s := userSession(7, "Ana", directory.RoleUser)

	services, err := l.Services(context.Background(), s, "")
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Luis", services[0].OwnerLabel)
	assert.Equal(t, display.GlobalLabel, services[1].OwnerLabel)
	assert.Equal(t, display.NoDescription, services[1].Description)

	pros, err := l.Professionals(context.Background(), s, "nutri")
	require.NoError(t, err)
	require.Len(t, pros, 1)
	assert.Equal(t, "Marta", pros[0].Name)

	bySpecialty, err := l.ProfessionalsBySpecialty(context.Background(), s, "fisio")
	require.NoError(t, err)
	require.Len(t, bySpecialty, 1)
	assert.Equal(t, "Luis", bySpecialty[0].Name)

	users, err := l.Users(context.Background(), s, "BEA@")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(8), users[0].ID)
}

func TestCanceledRequestStopsLoading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := newTestLoader(&ctxBackend{fakeBackend: newFixture()})

	_, err := l.MyAppointments(ctx, userSession(7, "Ana"), "")
	assert.ErrorIs(t, err, context.Canceled)
}

// ctxBackend fails any call whose context is already done.
type ctxBackend struct {
	*fakeBackend
}

func (c *ctxBackend) ListAppointmentsByUser(ctx context.Context, token string, userID int64) ([]appointments.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.fakeBackend.ListAppointmentsByUser(ctx, token, userID)
}

func TestProfessionalSearchPathsAgree(t *testing.T) {
	b := newFixture()
	l := newTestLoader(b)
	s := userSession(7, "Ana", directory.RoleUser)

	for _, term := range []string{"luis", "FISIO", "nutri", "marta", "", "nadie"} {
		t.Run(term, func(t *testing.T) {
			general, err := l.Professionals(context.Background(), s, term)
			require.NoError(t, err)
			bySpecialty, err := l.ProfessionalsBySpecialty(context.Background(), s, term)
			require.NoError(t, err)
			assert.Equal(t, general, bySpecialty)
		})
	}

	byName, err := l.ProfessionalsBySpecialty(context.Background(), s, "luis")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Fisioterapia", byName[0].Specialty)
	assert.Empty(t, b.searchSeen, "specialty search must not narrow through the backend's specialty-only endpoint")
}
