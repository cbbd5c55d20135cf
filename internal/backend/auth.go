package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/wolfman30/wellness-portal/internal/directory"
)

// LoginResult is what a successful login yields: the bearer token and the
// account it belongs to.
type LoginResult struct {
	Token string
	User  directory.User
}

type loginResponse struct {
	userDTO
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login: response carried no token")
	}
	return &LoginResult{Token: resp.Token, User: resp.userDTO.toDomain(c.loc)}, nil
}

// Registration is a self-service sign-up.
type Registration struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates a USER account. It needs no token.
func (c *Client) Register(ctx context.Context, r Registration) (*directory.User, error) {
	var resp userDTO
	err := c.do(ctx, call{
		op:     "register",
		method: http.MethodPost,
		path:   "/auth/register",
		body: map[string]string{
			"nombre":   r.Name,
			"email":    r.Email,
			"password": r.Password,
			"telefono": r.Phone,
		},
		out: &resp,
	})
	if err != nil {
		return nil, err
	}
	u := resp.toDomain(c.loc)
	return &u, nil
}
