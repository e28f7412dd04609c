// Package store persists chat transcripts to Postgres. Persistence is a
// best-effort collaborator: failures are logged by callers and never abort
// the conversation.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Saver is the persistence boundary consumed by the REPL and HTTP surfaces.
type Saver interface {
	Save(ctx context.Context, role, content string) error
}

// Noop drops every message. Used when no database is configured.
type Noop struct{}

func (Noop) Save(context.Context, string, string) error { return nil }

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id              BIGSERIAL PRIMARY KEY,
	conversation_id TEXT        NOT NULL,
	role            TEXT        NOT NULL,
	content         TEXT        NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres stores messages through a pgx pool. Each Postgres instance tags
// its rows with a fresh conversation id, so one process run reads back as
// one transcript.
type Postgres struct {
	pool           *pgxpool.Pool
	conversationID string
}

// Connect opens a pool, verifies the connection and ensures the schema.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Postgres{
		pool:           pool,
		conversationID: uuid.New().String(),
	}, nil
}

func (s *Postgres) Save(ctx context.Context, role, content string) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO messages (conversation_id, role, content) VALUES (@conversationId, @role, @content)",
		pgx.NamedArgs{
			"conversationId": s.conversationID,
			"role":           role,
			"content":        content,
		})
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// ConversationID identifies this session's transcript rows.
func (s *Postgres) ConversationID() string { return s.conversationID }

func (s *Postgres) Close() { s.pool.Close() }
