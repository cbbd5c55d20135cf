package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wolfman30/wellness-portal/internal/directory"
)

const servicePageSize = 100

// ListProfessionals returns all professionals.
func (c *Client) ListProfessionals(ctx context.Context, token string) ([]directory.Professional, error) {
	return c.listProfessionals(ctx, "list_professionals", token, "/api/profesionales")
}

// SearchProfessionalsBySpecialty asks the backend for professionals whose
// specialty matches.
func (c *Client) SearchProfessionalsBySpecialty(ctx context.Context, token, specialty string) ([]directory.Professional, error) {
	q := url.Values{}
	q.Set("especialidad", specialty)
	return c.listProfessionals(ctx, "search_professionals", token, "/api/profesionales/buscar?"+q.Encode())
}

func (c *Client) listProfessionals(ctx context.Context, op, token, path string) ([]directory.Professional, error) {
	var dtos []professionalDTO
	if err := c.do(ctx, call{op: op, token: token, method: http.MethodGet, path: path, out: &dtos}); err != nil {
		return nil, err
	}
	out := make([]directory.Professional, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// GetProfessional fetches one professional.
func (c *Client) GetProfessional(ctx context.Context, token string, id int64) (*directory.Professional, error) {
	return c.getProfessional(ctx, "get_professional", token, fmt.Sprintf("/api/profesionales/%d", id))
}

// GetProfessionalByUser fetches the professional profile linked to userID.
func (c *Client) GetProfessionalByUser(ctx context.Context, token string, userID int64) (*directory.Professional, error) {
	return c.getProfessional(ctx, "get_professional_by_user", token, fmt.Sprintf("/api/profesionales/usuario/%d", userID))
}

func (c *Client) getProfessional(ctx context.Context, op, token, path string) (*directory.Professional, error) {
	var d professionalDTO
	if err := c.do(ctx, call{op: op, token: token, method: http.MethodGet, path: path, out: &d}); err != nil {
		return nil, err
	}
	p := d.toDomain()
	return &p, nil
}

// ProfessionalWrite is the body for creating or updating a professional.
// UserID is ignored on update.
type ProfessionalWrite struct {
	UserID       int64
	Specialty    string
	Availability string
}

// CreateProfessional links a user to a new professional profile.
func (c *Client) CreateProfessional(ctx context.Context, token string, w ProfessionalWrite) (*directory.Professional, error) {
	body := map[string]any{
		"usuarioId":         w.UserID,
		"especialidad":      w.Specialty,
		"horarioDisponible": w.Availability,
	}
	var d professionalDTO
	if err := c.do(ctx, call{op: "create_professional", token: token, method: http.MethodPost, path: "/api/profesionales", body: body, out: &d}); err != nil {
		return nil, err
	}
	p := d.toDomain()
	return &p, nil
}

// UpdateProfessional replaces specialty and availability.
func (c *Client) UpdateProfessional(ctx context.Context, token string, id int64, w ProfessionalWrite) (*directory.Professional, error) {
	body := map[string]any{
		"especialidad":      w.Specialty,
		"horarioDisponible": w.Availability,
	}
	var d professionalDTO
	err := c.do(ctx, call{op: "update_professional", token: token, method: http.MethodPut, path: fmt.Sprintf("/api/profesionales/%d", id), body: body, out: &d})
	if err != nil {
		return nil, err
	}
	p := d.toDomain()
	return &p, nil
}

// DeleteProfessional removes a professional profile.
func (c *Client) DeleteProfessional(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{op: "delete_professional", token: token, method: http.MethodDelete, path: fmt.Sprintf("/api/profesionales/%d", id)})
}

// ListServices walks every page of the service catalog.
func (c *Client) ListServices(ctx context.Context, token string) ([]directory.Service, error) {
	var out []directory.Service
	for page := 0; ; page++ {
		q := url.Values{}
		q.Set("page", fmt.Sprint(page))
		q.Set("size", fmt.Sprint(servicePageSize))

		var p servicePage
		if err := c.do(ctx, call{op: "list_services", token: token, method: http.MethodGet, path: "/api/servicios?" + q.Encode(), out: &p}); err != nil {
			return nil, err
		}
		for _, d := range p.Content {
			out = append(out, d.toDomain())
		}
		if len(p.Content) == 0 || (p.Last != nil && *p.Last) || page+1 >= p.TotalPages {
			break
		}
	}
	if out == nil {
		out = []directory.Service{}
	}
	return out, nil
}

// GetService fetches one service.
func (c *Client) GetService(ctx context.Context, token string, id int64) (*directory.Service, error) {
	var d serviceDTO
	if err := c.do(ctx, call{op: "get_service", token: token, method: http.MethodGet, path: fmt.Sprintf("/api/servicios/%d", id), out: &d}); err != nil {
		return nil, err
	}
	s := d.toDomain()
	return &s, nil
}

// ServiceWrite is the body for creating or updating a service. A nil
// ProfessionalID makes the service global.
type ServiceWrite struct {
	Name           string
	Description    string
	Duration       string
	Price          float64
	ProfessionalID *int64
}

func (w ServiceWrite) body() map[string]any {
	return map[string]any{
		"nombre":        w.Name,
		"descripcion":   w.Description,
		"duracion":      w.Duration,
		"precio":        w.Price,
		"profesionalId": w.ProfessionalID,
	}
}

// CreateService adds a service to the catalog.
func (c *Client) CreateService(ctx context.Context, token string, w ServiceWrite) (*directory.Service, error) {
	var d serviceDTO
	if err := c.do(ctx, call{op: "create_service", token: token, method: http.MethodPost, path: "/api/servicios", body: w.body(), out: &d}); err != nil {
		return nil, err
	}
	s := d.toDomain()
	return &s, nil
}

// UpdateService replaces a service.
func (c *Client) UpdateService(ctx context.Context, token string, id int64, w ServiceWrite) (*directory.Service, error) {
	var d serviceDTO
	err := c.do(ctx, call{op: "update_service", token: token, method: http.MethodPut, path: fmt.Sprintf("/api/servicios/%d", id), body: w.body(), out: &d})
	if err != nil {
		return nil, err
	}
	s := d.toDomain()
	return &s, nil
}

// DeleteService removes a service.
func (c *Client) DeleteService(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{op: "delete_service", token: token, method: http.MethodDelete, path: fmt.Sprintf("/api/servicios/%d", id)})
}

// ListUsers returns every user account.
func (c *Client) ListUsers(ctx context.Context, token string) ([]directory.User, error) {
	var dtos []userDTO
	if err := c.do(ctx, call{op: "list_users", token: token, method: http.MethodGet, path: "/api/usuarios", out: &dtos}); err != nil {
		return nil, err
	}
	out := make([]directory.User, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain(c.loc))
	}
	return out, nil
}

// GetUser fetches one user.
func (c *Client) GetUser(ctx context.Context, token string, id int64) (*directory.User, error) {
	var d userDTO
	if err := c.do(ctx, call{op: "get_user", token: token, method: http.MethodGet, path: fmt.Sprintf("/api/usuarios/%d", id), out: &d}); err != nil {
		return nil, err
	}
	u := d.toDomain(c.loc)
	return &u, nil
}

// UserWrite is the admin body for a user. An empty Password keeps the
// current one on update.
type UserWrite struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Roles    []directory.Role
}

func (w UserWrite) body() map[string]any {
	b := map[string]any{
		"nombre":   w.Name,
		"email":    w.Email,
		"telefono": w.Phone,
	}
	if w.Password != "" {
		b["password"] = w.Password
	}
	if len(w.Roles) > 0 {
		b["roles"] = directory.Strings(w.Roles)
	}
	return b
}

// CreateUser adds a user account.
func (c *Client) CreateUser(ctx context.Context, token string, w UserWrite) (*directory.User, error) {
	var d userDTO
	if err := c.do(ctx, call{op: "create_user", token: token, method: http.MethodPost, path: "/api/usuarios", body: w.body(), out: &d}); err != nil {
		return nil, err
	}
	u := d.toDomain(c.loc)
	return &u, nil
}

// UpdateUser replaces a user account.
func (c *Client) UpdateUser(ctx context.Context, token string, id int64, w UserWrite) (*directory.User, error) {
	var d userDTO
	err := c.do(ctx, call{op: "update_user", token: token, method: http.MethodPut, path: fmt.Sprintf("/api/usuarios/%d", id), body: w.body(), out: &d})
	if err != nil {
		return nil, err
	}
	u := d.toDomain(c.loc)
	return &u, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{op: "delete_user", token: token, method: http.MethodDelete, path: fmt.Sprintf("/api/usuarios/%d", id)})
}
