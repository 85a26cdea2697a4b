package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/deckhaven/deckhaven/internal/deck"
)

// PostgresRepository stores decks in a Postgres table, one jsonb
// payload per deck.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresRepository connects to the database and ensures the decks
// table exists.
func NewPostgresRepository(ctx context.Context, url string, logger *zap.Logger) (*PostgresRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &PostgresRepository{pool: pool, logger: logger}
	if err := repo.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	stats := pool.Stat()
	logger.Info("deck database connection pool initialized",
		zap.Int32("total_conns", stats.TotalConns()),
		zap.Int32("idle_conns", stats.IdleConns()),
	)

	return repo, nil
}

func (r *PostgresRepository) ensureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS decks (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			author     TEXT NOT NULL DEFAULT '',
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create decks table: %w", err)
	}
	return nil
}

// Save implements Repository.
func (r *PostgresRepository) Save(ctx context.Context, d *deck.Deck) error {
	prepareForSave(d)

	payload, err := json.Marshal(toStored(d))
	if err != nil {
		return fmt.Errorf("failed to marshal deck: %w", err)
	}

	const query = `
		INSERT INTO decks (id, name, author, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    author = EXCLUDED.author,
		    payload = EXCLUDED.payload,
		    updated_at = EXCLUDED.updated_at`
	_, err = r.pool.Exec(ctx, query,
		d.Metadata.ID,
		d.Metadata.Name,
		d.Metadata.Author,
		payload,
		d.Metadata.CreatedAt,
		d.Metadata.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save deck %s: %w", d.Metadata.ID, err)
	}

	r.logger.Debug("deck saved",
		zap.String("deck_id", d.Metadata.ID),
		zap.String("name", d.Metadata.Name),
	)
	return nil
}

// Load implements Repository.
func (r *PostgresRepository) Load(ctx context.Context, id string) (*deck.Deck, error) {
	const query = `SELECT payload FROM decks WHERE id = $1`

	var payload []byte
	if err := r.pool.QueryRow(ctx, query, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to load deck %s: %w", id, err)
	}

	var stored storedDeck
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deck %s: %w", id, err)
	}
	return fromStored(stored), nil
}

// Delete implements Repository.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM decks WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	return nil
}

// List implements Repository.
func (r *PostgresRepository) List(ctx context.Context) (map[string]*deck.Deck, error) {
	const query = `SELECT payload FROM decks ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	decks := make(map[string]*deck.Deck)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		var stored storedDeck
		if err := json.Unmarshal(payload, &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deck row: %w", err)
		}
		decks[stored.ID] = fromStored(stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deck rows: %w", err)
	}

	return decks, nil
}

// Close implements Repository.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
