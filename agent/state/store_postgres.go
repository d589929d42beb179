package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type PostgresConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// resourceDocument is the bun row model: one JSONB document per resource.
type resourceDocument struct {
	bun.BaseModel `bun:"table:resource_states"`

	ResourceID string          `bun:"resource_id,pk"`
	Document   json.RawMessage `bun:"document,type:jsonb"`
	UpdatedAt  time.Time       `bun:"updated_at,notnull"`
}

// PostgresStore persists working-memory documents in Postgres through bun.
// Commit runs the read-merge-write cycle inside one transaction with the row
// locked, so sibling keys written by other components are never lost.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	dsn := cfg.DSN
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &PostgresStore{db: db}, nil
}

// EnsureSchema creates the backing table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*resourceDocument)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create resource_states table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, resourceID string) (*ResourceState, error) {
	if resourceID == "" {
		return nil, ErrInvalidResource
	}

	row := new(resourceDocument)
	err := s.db.NewSelect().
		Model(row).
		Where("resource_id = ?", resourceID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select resource state: %w", err)
	}
	return DecodeDocument(row.Document)
}

func (s *PostgresStore) Commit(ctx context.Context, resourceID string, update CommitUpdate) error {
	if resourceID == "" {
		return ErrInvalidResource
	}

	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		row := new(resourceDocument)
		err := tx.NewSelect().
			Model(row).
			Where("resource_id = ?", resourceID).
			For("UPDATE").
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("select resource state for update: %w", err)
		}

		merged, err := MergeDocument(row.Document, update)
		if err != nil {
			return err
		}

		next := &resourceDocument{
			ResourceID: resourceID,
			Document:   merged,
			UpdatedAt:  time.Now().UTC(),
		}
		_, err = tx.NewInsert().
			Model(next).
			On("CONFLICT (resource_id) DO UPDATE").
			Set("document = EXCLUDED.document").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("upsert resource state: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
