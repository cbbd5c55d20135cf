package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wolfman30/wellness-portal/internal/directory"
)

// TokenClaims is what the portal reads out of a backend token. The signature
// is not checked here; the backend verifies the token on every call.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
	Roles     []directory.Role
}

// ParseToken decodes the claims of a backend JWT without verifying it.
func ParseToken(raw string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenClaims{}, fmt.Errorf("session: parse token: %w", err)
	}

	var out TokenClaims
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	for _, key := range []string{"roles", "authorities", "role"} {
		if roles := roleClaim(claims[key]); len(roles) > 0 {
			out.Roles = directory.ParseRoles(roles)
			break
		}
	}
	return out, nil
}

func roleClaim(v any) []string {
	switch t := v.(type) {
	case string:
		return strings.Split(t, ",")
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch r := item.(type) {
			case string:
				out = append(out, r)
			case map[string]any:
				// Spring serializes GrantedAuthority as {"authority": "ROLE_X"}.
				if a, ok := r["authority"].(string); ok {
					out = append(out, a)
				}
			}
		}
		return out
	}
	return nil
}
