package docstore

import (
	"context"
	_ "embed"
	"encoding/json"

	"meetroom/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schemaSQL string

// Pool is the subset of *pgxpool.Pool the store needs.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// PostgresStore keeps every document as a JSONB row keyed by (collection, key).
type PostgresStore struct {
	pool Pool
}

func NewPostgresStore(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return unavailable(err, "failed to apply document schema")
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return unavailable(err, "ping failed")
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, collection string, q *Query) (Snapshot, error) {
	if err := validCollection(collection); err != nil {
		return nil, err
	}

	sql := `SELECT key, body FROM documents WHERE collection = $1 ORDER BY key`
	args := []any{collection}
	if q != nil && q.OrderBy != "" {
		if q.EqualTo != nil {
			want, err := json.Marshal(q.EqualTo)
			if err != nil {
				return nil, errs.Wrap(err, "failed to encode query value")
			}
			sql = `SELECT key, body FROM documents
				WHERE collection = $1 AND body -> $2 = $3::jsonb
				ORDER BY key`
			args = append(args, q.OrderBy, string(want))
		} else {
			sql = `SELECT key, body FROM documents
				WHERE collection = $1
				ORDER BY body -> $2 NULLS FIRST, key`
			args = append(args, q.OrderBy)
		}
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, unavailable(err, "failed to query documents")
	}
	defer rows.Close()

	var snap Snapshot
	for rows.Next() {
		var (
			key  string
			body []byte
		)
		if err := rows.Scan(&key, &body); err != nil {
			return nil, errs.Wrap(err, "failed to scan document")
		}
		snap = append(snap, Document{Key: key, Value: body})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err, "failed to read documents")
	}
	return snap, nil
}

func (s *PostgresStore) Set(ctx context.Context, docPath string, value any) error {
	collection, key, err := splitDocPath(docPath)
	if err != nil {
		return err
	}
	body, err := json.Marshal(value)
	if err != nil {
		return errs.Wrap(err, "failed to encode document")
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO documents (collection, key, body) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, key) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
		collection, key, string(body))
	if err != nil {
		return unavailable(err, "failed to set document")
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, docPath string, fields map[string]any) error {
	collection, key, err := splitDocPath(docPath)
	if err != nil {
		return err
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return errs.Wrap(err, "failed to encode update")
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE documents SET body = body || $3::jsonb, updated_at = now()
		WHERE collection = $1 AND key = $2`,
		collection, key, string(patch))
	if err != nil {
		return unavailable(err, "failed to update document")
	}
	if tag.RowsAffected() == 0 {
		return errs.Wrapf(ErrNotFound, "%s", docPath)
	}
	return nil
}

func (s *PostgresStore) Push(ctx context.Context, collection string, value any) (string, error) {
	if err := validCollection(collection); err != nil {
		return "", err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", errs.Wrap(err, "failed to generate document key")
	}
	key := id.String()
	if err := s.Set(ctx, Join(collection, key), value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *PostgresStore) Remove(ctx context.Context, docPath string) error {
	collection, key, err := splitDocPath(docPath)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND key = $2`, collection, key); err != nil {
		return unavailable(err, "failed to remove document")
	}
	return nil
}

func unavailable(err error, msg string) error {
	return errs.Mark(errs.Wrap(err, msg), ErrUnavailable)
}
