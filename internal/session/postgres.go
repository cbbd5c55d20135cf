package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wolfman30/wellness-portal/internal/directory"
)

type rowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in the portal_sessions table.
type PostgresStore struct {
	db  rowQuerier
	now func() time.Time
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("session: pgx pool required")
	}
	return &PostgresStore{db: pool, now: time.Now}
}

func newPostgresStoreWithExec(exec rowQuerier) *PostgresStore {
	if exec == nil {
		panic("session: exec required")
	}
	return &PostgresStore{db: exec, now: time.Now}
}

func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("session: marshal user: %w", err)
	}
	query := `
		INSERT INTO portal_sessions (id, token, user_data, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET token = EXCLUDED.token, user_data = EXCLUDED.user_data, expires_at = EXCLUDED.expires_at
	`
	if _, err := p.db.Exec(ctx, query, s.ID, s.Token, user, s.CreatedAt, s.ExpiresAt); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	query := `SELECT token, user_data, created_at, expires_at FROM portal_sessions WHERE id = $1`
	s := Session{ID: id}
	var user []byte
	err := p.db.QueryRow(ctx, query, id).Scan(&s.Token, &user, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: load: %w", err)
	}
	if s.Expired(p.now()) {
		return nil, ErrExpired
	}
	var u directory.User
	if err := json.Unmarshal(user, &u); err != nil {
		return nil, fmt.Errorf("session: decode user: %w", err)
	}
	s.User = u
	return &s, nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM portal_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows.
func (p *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	ct, err := p.db.Exec(ctx, `DELETE FROM portal_sessions WHERE expires_at <= $1`, p.now())
	if err != nil {
		return 0, fmt.Errorf("session: purge: %w", err)
	}
	return ct.RowsAffected(), nil
}
