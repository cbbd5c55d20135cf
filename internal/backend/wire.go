package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/wellness-portal/internal/appointments"
	"github.com/wolfman30/wellness-portal/internal/directory"
)

// The backend speaks LocalDateTime without a zone; values are interpreted in
// the client's display location.
const localDateTimeLayout = "2006-01-02T15:04:05"

var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	localDateTimeLayout,
	"2006-01-02T15:04",
}

func parseLocalDateTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range acceptedLayouts {
		if layout == time.RFC3339Nano {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date-time %q", raw)
}

func formatLocalDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(localDateTimeLayout)
}

// nameRef is the nested form some backend versions return, e.g.
// {"usuario": {"id": 3, "nombre": "Eva"}}, instead of flat "usuarioNombre".
type nameRef struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type optionalNameRef struct {
	ref *nameRef
}

func (o *optionalNameRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var r nameRef
	// Anything that is not an object carries no name; ignore it.
	if err := json.Unmarshal(b, &r); err != nil {
		return nil
	}
	o.ref = &r
	return nil
}

func (o optionalNameRef) name() string {
	if o.ref == nil {
		return ""
	}
	return o.ref.Nombre
}

func (o optionalNameRef) id() int64 {
	if o.ref == nil {
		return 0
	}
	return o.ref.ID
}

type appointmentDTO struct {
	ID                      int64           `json:"id"`
	FechaHora               string          `json:"fechaHora"`
	Estado                  string          `json:"estado"`
	Notas                   string          `json:"notas"`
	UsuarioID               int64           `json:"usuarioId"`
	UsuarioNombre           string          `json:"usuarioNombre"`
	ServicioID              int64           `json:"servicioId"`
	ServicioNombre          string          `json:"servicioNombre"`
	ServicioDuracion        string          `json:"servicioDuracion"`
	ServicioPrecio          *float64        `json:"servicioPrecio"`
	ProfesionalID           int64           `json:"profesionalId"`
	ProfesionalNombre       string          `json:"profesionalNombre"`
	ProfesionalEspecialidad string          `json:"profesionalEspecialidad"`
	Usuario                 optionalNameRef `json:"usuario"`
	Servicio                optionalNameRef `json:"servicio"`
	Profesional             optionalNameRef `json:"profesional"`
}

func (d appointmentDTO) toDomain(loc *time.Location) (appointments.Appointment, error) {
	at, err := parseLocalDateTime(d.FechaHora, loc)
	if err != nil {
		return appointments.Appointment{}, fmt.Errorf("appointment %d: %w", d.ID, err)
	}
	a := appointments.Appointment{
		ID:             d.ID,
		ScheduledAt:    at,
		Notes:          d.Notas,
		Status:         appointments.ParseStatus(d.Estado),
		UserID:         firstNonZero(d.UsuarioID, d.Usuario.id()),
		ProfessionalID: firstNonZero(d.ProfesionalID, d.Profesional.id()),
		ServiceID:      firstNonZero(d.ServicioID, d.Servicio.id()),
		Snapshot: appointments.Snapshot{
			UserName:              firstNonBlank(d.UsuarioNombre, d.Usuario.name()),
			ProfessionalName:      firstNonBlank(d.ProfesionalNombre, d.Profesional.name()),
			ProfessionalSpecialty: d.ProfesionalEspecialidad,
			ServiceName:           firstNonBlank(d.ServicioNombre, d.Servicio.name()),
			ServiceDuration:       d.ServicioDuracion,
		},
	}
	if d.ServicioPrecio != nil {
		a.Snapshot.ServicePrice = *d.ServicioPrecio
	}
	return a, nil
}

type professionalDTO struct {
	ID                int64           `json:"id"`
	Especialidad      string          `json:"especialidad"`
	HorarioDisponible string          `json:"horarioDisponible"`
	UsuarioID         int64           `json:"usuarioId"`
	UsuarioNombre     string          `json:"usuarioNombre"`
	Usuario           optionalNameRef `json:"usuario"`
}

func (d professionalDTO) toDomain() directory.Professional {
	return directory.Professional{
		ID:           d.ID,
		UserID:       firstNonZero(d.UsuarioID, d.Usuario.id()),
		Name:         firstNonBlank(d.UsuarioNombre, d.Usuario.name()),
		Specialty:    d.Especialidad,
		Availability: d.HorarioDisponible,
	}
}

type serviceDTO struct {
	ID                int64    `json:"id"`
	Nombre            string   `json:"nombre"`
	Descripcion       string   `json:"descripcion"`
	Duracion          string   `json:"duracion"`
	Precio            *float64 `json:"precio"`
	ProfesionalID     *int64   `json:"profesionalId"`
	ProfesionalNombre string   `json:"profesionalNombre"`
}

func (d serviceDTO) toDomain() directory.Service {
	s := directory.Service{
		ID:               d.ID,
		Name:             d.Nombre,
		Description:      d.Descripcion,
		Duration:         d.Duracion,
		ProfessionalID:   d.ProfesionalID,
		ProfessionalName: d.ProfesionalNombre,
	}
	if d.Precio != nil {
		s.Price = *d.Precio
	}
	return s
}

type userDTO struct {
	ID            int64    `json:"id"`
	Nombre        string   `json:"nombre"`
	Email         string   `json:"email"`
	Telefono      string   `json:"telefono"`
	FechaRegistro string   `json:"fechaRegistro"`
	Roles         []string `json:"roles"`
}

func (d userDTO) toDomain(loc *time.Location) directory.User {
	u := directory.User{
		ID:    d.ID,
		Name:  d.Nombre,
		Email: d.Email,
		Phone: d.Telefono,
		Roles: directory.ParseRoles(d.Roles),
	}
	// Registration date is informational; a malformed value is dropped.
	if at, err := parseLocalDateTime(d.FechaRegistro, loc); err == nil {
		u.RegisteredAt = at
	}
	return u
}

type servicePage struct {
	Content    []serviceDTO `json:"content"`
	Last       *bool        `json:"last"`
	TotalPages int          `json:"totalPages"`
	Number     int          `json:"number"`
}

type apiErrorBody struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func firstNonZero(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
