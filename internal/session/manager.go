package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/wellness-portal/internal/backend"
	"github.com/wolfman30/wellness-portal/internal/observability/metrics"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

const defaultTTL = 12 * time.Hour

// Authenticator exchanges credentials for a backend token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
}

// ManagerConfig tunes a Manager.
type ManagerConfig struct {
	TTL     time.Duration
	Metrics *metrics.PortalMetrics
}

// Manager creates, resolves and ends sessions.
type Manager struct {
	store   Store
	auth    Authenticator
	ttl     time.Duration
	metrics *metrics.PortalMetrics
	logger  *logging.Logger
	now     func() time.Time
}

func NewManager(store Store, auth Authenticator, cfg ManagerConfig, logger *logging.Logger) *Manager {
	if store == nil {
		panic("session: store required")
	}
	if auth == nil {
		panic("session: authenticator required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		store:   store,
		auth:    auth,
		ttl:     cfg.TTL,
		metrics: cfg.Metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Login authenticates against the backend and stores a new session. The
// session lives until the token expires or the TTL elapses, whichever is first.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	res, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.metrics.ObserveSession("login_failed")
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		User:      res.User,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims, err := ParseToken(res.Token)
	if err != nil {
		m.logger.Debug("backend token is not a readable JWT", "error", err)
	} else {
		if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(s.ExpiresAt) {
			s.ExpiresAt = claims.ExpiresAt
		}
		if len(s.User.Roles) == 0 {
			s.User.Roles = claims.Roles
		}
	}
	if s.Expired(now) {
		return nil, fmt.Errorf("%w: token already expired", backend.ErrUnauthenticated)
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	m.metrics.ObserveSession("created")
	m.logger.Info("session created", "session_id", s.ID, "user_id", s.User.ID, "expires_at", s.ExpiresAt)
	return s, nil
}

// Resolve loads a live session by id.
func (m *Manager) Resolve(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	s, err := m.store.Get(ctx, id)
	if err == nil && s.Expired(m.now()) {
		err = ErrExpired
	}
	if errors.Is(err, ErrExpired) {
		_ = m.store.Delete(ctx, id)
		m.metrics.ObserveSession("expired")
		return nil, ErrExpired
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Logout ends a session. Unknown ids are not an error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	m.metrics.ObserveSession("destroyed")
	return nil
}

// Invalidate ends a session whose token the backend rejected.
func (m *Manager) Invalidate(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		m.logger.Warn("failed to drop rejected session", "session_id", id, "error", err)
		return
	}
	m.metrics.ObserveSession("invalidated")
	m.logger.Info("session invalidated by backend", "session_id", id)
}
