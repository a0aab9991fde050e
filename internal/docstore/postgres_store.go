package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
`

// PostgresStore implements Store on a single JSONB documents table.
type PostgresStore struct {
	db *sql.DB
}

// ConnectPostgres opens a PostgreSQL connection and ensures the documents
// table exists.
func ConnectPostgres(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(postgresSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, key string, dest any) (bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, unavailable(err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode document %s/%s: %w", collection, key, err)
	}
	return true, nil
}

func (s *PostgresStore) Set(ctx context.Context, collection, key string, record any, merge bool) error {
	doc, err := toDoc(record)
	if err != nil {
		return fmt.Errorf("encode document %s/%s: %w", collection, key, err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	// JSONB || overlays top-level fields, which is exactly the merge
	// contract; plain replace otherwise.
	query := `INSERT INTO documents (collection, id, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (collection, id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if merge {
		query = `INSERT INTO documents (collection, id, data, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (collection, id)
			DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = now()`
	}

	if _, err := s.db.ExecContext(ctx, query, collection, key, data); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, key,
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *PostgresStore) ListAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 ORDER BY id`,
		collection,
	)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, unavailable(err)
		}
		docs = append(docs, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return docs, nil
}

// Close closes the underlying database.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
