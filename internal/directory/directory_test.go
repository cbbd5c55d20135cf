package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoles(t *testing.T) {
	roles := ParseRoles([]string{"ROLE_ADMIN", "user", " ", "USER", "Professional"})
	assert.Equal(t, []Role{RoleAdmin, RoleUser, RoleProfessional}, roles)
	assert.True(t, HasAnyRole(roles, RoleProfessional))
	assert.False(t, HasAnyRole([]Role{RoleUser}, RoleAdmin, RoleProfessional))
	assert.Equal(t, []string{"ADMIN", "USER", "PROFESSIONAL"}, Strings(roles))
}

func TestUserHasRoleNilSafe(t *testing.T) {
	var u *User
	assert.False(t, u.HasRole(RoleAdmin))

	u = &User{Roles: []Role{RoleUser, RoleAdmin}}
	assert.True(t, u.HasRole(RoleAdmin))
}

func TestServiceIsGlobal(t *testing.T) {
	owner := int64(7)
	assert.True(t, (&Service{ID: 1}).IsGlobal())
	assert.False(t, (&Service{ID: 2, ProfessionalID: &owner}).IsGlobal())
	assert.False(t, (&Service{ID: 3, ProfessionalName: "Ana Ruiz"}).IsGlobal())
	assert.True(t, (&Service{ID: 4, ProfessionalName: "  "}).IsGlobal())
}

func TestSearchProfessionals(t *testing.T) {
	pros := []Professional{
		{ID: 1, Name: "Ana Ruiz", Specialty: "Masaje terapéutico"},
		{ID: 2, Name: "Luis Masaje", Specialty: "Nutrición"},
		{ID: 3, Name: "Marta Gil", Specialty: "Yoga"},
	}

	got := SearchProfessionals(pros, "  MASAJE ")
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	assert.Len(t, SearchProfessionals(pros, ""), 3)
	assert.Empty(t, SearchProfessionals(pros, "pilates"))
	assert.Empty(t, SearchProfessionals(nil, "yoga"))
}

func TestSearchServicesAndUsers(t *testing.T) {
	services := []Service{
		{ID: 1, Name: "Facial", Description: "Limpieza profunda"},
		{ID: 2, Name: "Masaje", Description: ""},
	}
	got := SearchServices(services, "limpieza")
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	users := []User{
		{ID: 1, Name: "Ana", Email: "ana@example.com"},
		{ID: 2, Name: "Beto", Email: "beto@clinic.io"},
	}
	gotUsers := SearchUsers(users, "CLINIC")
	require.Len(t, gotUsers, 1)
	assert.Equal(t, int64(2), gotUsers[0].ID)
}

func TestIndexes(t *testing.T) {
	pros := ProfessionalIndex([]Professional{{ID: 4, Name: "Ana"}})
	require.Contains(t, pros, int64(4))
	assert.Equal(t, "Ana", pros[4].Name)

	services := ServiceIndex([]Service{{ID: 9, Name: "Reiki"}})
	assert.Equal(t, "Reiki", services[9].Name)

	users := UserIndex([]User{{ID: 3, Name: "Eva"}, {ID: 3, Name: "Eva B"}})
	assert.Equal(t, "Eva B", users[3].Name)
}
