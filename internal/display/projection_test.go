package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/wellness-portal/internal/appointments"
	"github.com/wolfman30/wellness-portal/internal/directory"
)

func sampleAppointment() appointments.Appointment {
	return appointments.Appointment{
		ID:             10,
		ScheduledAt:    time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
		Status:         appointments.StatusPending,
		UserID:         1,
		ProfessionalID: 2,
		ServiceID:      3,
	}
}

func TestProjectForDisplayResolved(t *testing.T) {
	view := ProjectForDisplay(sampleAppointment(), Refs{
		Professional: &directory.Professional{ID: 2, Name: "Ana Ruiz", Specialty: "Yoga"},
		Service:      &directory.Service{ID: 3, Name: "Clase privada", Duration: "60 minutos", Price: 35},
		User:         &directory.User{ID: 1, Name: "Eva"},
	})

	assert.Equal(t, "Ana Ruiz", view.ProfessionalName)
	assert.Equal(t, "Yoga", view.ProfessionalSpecialty)
	assert.Equal(t, "Clase privada", view.ServiceName)
	assert.Equal(t, "60 minutos", view.ServiceDuration)
	assert.Equal(t, 35.0, view.ServicePrice)
	assert.Equal(t, "Eva", view.UserName)
	assert.Equal(t, "Pendiente", view.StatusLabel)
	assert.Equal(t, appointments.BadgeWarning, view.Badge)
}

func TestProjectForDisplayMissingProfessional(t *testing.T) {
	var view AppointmentView
	require.NotPanics(t, func() {
		view = ProjectForDisplay(sampleAppointment(), Refs{Professional: nil})
	})
	assert.Equal(t, Fallback, view.ProfessionalName)
	assert.Equal(t, Unspecified, view.ProfessionalSpecialty)
	assert.Equal(t, Fallback, view.ServiceName)
	assert.Equal(t, Fallback, view.UserName)
}

func TestProjectForDisplayBlankNames(t *testing.T) {
	view := ProjectForDisplay(sampleAppointment(), Refs{
		Professional: &directory.Professional{ID: 2, Name: "   "},
		Service:      &directory.Service{ID: 3, Name: ""},
		User:         &directory.User{ID: 1},
	})
	assert.Equal(t, Fallback, view.ProfessionalName)
	assert.Equal(t, Fallback, view.ServiceName)
	assert.Equal(t, Fallback, view.UserName)
}

func TestProjectForDisplayUnknownStatus(t *testing.T) {
	appt := sampleAppointment()
	appt.Status = appointments.Status("EN_ESPERA")
	view := ProjectForDisplay(appt, Refs{})
	assert.Equal(t, "EN_ESPERA", view.StatusLabel)
}

func TestServiceOwnerLabel(t *testing.T) {
	owner := int64(2)
	global := directory.Service{ID: 1, Name: "Meditación"}
	owned := directory.Service{ID: 2, Name: "Reiki", ProfessionalID: &owner, ProfessionalName: "Nombre viejo"}

	assert.Equal(t, GlobalLabel, ServiceOwnerLabel(global, nil))
	assert.Equal(t, "Ana Ruiz", ServiceOwnerLabel(owned, &directory.Professional{ID: 2, Name: "Ana Ruiz"}))
	assert.Equal(t, "Nombre viejo", ServiceOwnerLabel(owned, nil))

	owned.ProfessionalName = ""
	assert.Equal(t, Fallback, ServiceOwnerLabel(owned, nil))

	nameOnly := directory.Service{ID: 3, Name: "Shiatsu", ProfessionalName: "Luis Gómez"}
	assert.Equal(t, "Luis Gómez", ServiceOwnerLabel(nameOnly, nil))
}

func TestResolverFallsBackToSnapshot(t *testing.T) {
	appt := sampleAppointment()
	appt.Snapshot = appointments.Snapshot{ProfessionalName: "Luis", ServiceName: "Masaje", ServicePrice: 40}

	r := NewResolver(nil, nil, []directory.User{{ID: 1, Name: "Eva"}})
	view := ProjectForDisplay(appt, r.Refs(appt))

	assert.Equal(t, "Luis", view.ProfessionalName)
	assert.Equal(t, "Masaje", view.ServiceName)
	assert.Equal(t, 40.0, view.ServicePrice)
	assert.Equal(t, "Eva", view.UserName)

	var nilResolver *Resolver
	assert.Nil(t, nilResolver.Refs(sampleAppointment()).User)
}

func TestServiceRows(t *testing.T) {
	owner := int64(5)
	r := NewResolver([]directory.Professional{{ID: 5, Name: "Marta"}}, nil, nil)
	rows := ServiceRows([]directory.Service{
		{ID: 1, Name: "Meditación", Duration: "30 minutos", Price: 10},
		{ID: 2, Name: "Pilates", Description: "Suelo", ProfessionalID: &owner},
		{ID: 3, Name: "Shiatsu", ProfessionalName: "Luis Gómez"},
	}, r)

	require.Len(t, rows, 3)
	assert.True(t, rows[0].Global)
	assert.Equal(t, GlobalLabel, rows[0].OwnerLabel)
	assert.Equal(t, NoDescription, rows[0].Description)
	assert.False(t, rows[1].Global)
	assert.Equal(t, "Marta", rows[1].OwnerLabel)
	assert.Equal(t, Unspecified, rows[1].Duration)
	assert.False(t, rows[2].Global)
	assert.Equal(t, "Luis Gómez", rows[2].OwnerLabel)
}

func TestProfessionalAndUserRows(t *testing.T) {
	pros := ProfessionalRows([]directory.Professional{{ID: 1, Name: "Ana", Specialty: "Yoga"}})
	require.Len(t, pros, 1)
	assert.Equal(t, Unspecified, pros[0].Availability)

	users := UserRows([]directory.User{{ID: 1, Name: "Eva", Email: "eva@example.com", Roles: []directory.Role{directory.RoleUser}}})
	require.Len(t, users, 1)
	assert.Equal(t, Fallback, users[0].Phone)
	assert.Equal(t, []string{"USER"}, users[0].Roles)

	assert.Empty(t, ServiceRows(nil, nil))
	assert.Empty(t, ProfessionalRows(nil))
	assert.Empty(t, UserRows(nil))
}
