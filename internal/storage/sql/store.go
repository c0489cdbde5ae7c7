package sql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/storage"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite3/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

const recordColumns = `id, domain, api_key, is_primary, primary_domain_id, created_at, updated_at`

// Store implements the storage.DomainStore interface using SQL.
type Store struct {
	db *sqlx.DB
}

// Ensure Store implements DomainStore.
var _ storage.DomainStore = (*Store)(nil)

// New connects to the database and runs the migrations for the driver.
// Supported drivers are "sqlite3" and "postgres".
func New(driver, dsn string) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations/"+driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an already migrated connection.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) FindByDomain(ctx context.Context, name string) (*domain.DomainRecord, error) {
	var rec domain.DomainRecord
	err := s.db.GetContext(ctx, &rec,
		`SELECT `+recordColumns+` FROM domains WHERE domain = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding domain %q: %w", name, err)
	}
	return &rec, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (*domain.DomainRecord, error) {
	var rec domain.DomainRecord
	err := s.db.GetContext(ctx, &rec,
		`SELECT `+recordColumns+` FROM domains WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding domain id %d: %w", id, err)
	}
	return &rec, nil
}

func (s *Store) Upsert(ctx context.Context, rec *domain.DomainRecord) error {
	now := time.Now().UTC()
	var id int64
	err := s.db.GetContext(ctx, &id,
		`INSERT INTO domains (domain, api_key, is_primary, primary_domain_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 ON CONFLICT (domain) DO UPDATE SET
		     api_key = excluded.api_key,
		     is_primary = excluded.is_primary,
		     primary_domain_id = excluded.primary_domain_id,
		     updated_at = excluded.updated_at
		 RETURNING id`,
		rec.Domain, rec.APIKey, rec.IsPrimary, rec.PrimaryDomainID, now)
	if err != nil {
		return fmt.Errorf("upserting domain %q: %w", rec.Domain, err)
	}
	rec.ID = id
	rec.UpdatedAt = now
	return nil
}

func (s *Store) UpdateAPIKey(ctx context.Context, name, apiKey string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE domains SET api_key = $1, updated_at = $2 WHERE domain = $3`,
		apiKey, time.Now().UTC(), name)
	if err != nil {
		return fmt.Errorf("updating api key for %q: %w", name, err)
	}
	return nil
}

func (s *Store) DeleteByDomain(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM domains WHERE domain = $1`, name); err != nil {
		return fmt.Errorf("deleting domain %q: %w", name, err)
	}
	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]*domain.DomainRecord, error) {
	var recs []*domain.DomainRecord
	err := s.db.SelectContext(ctx, &recs,
		`SELECT `+recordColumns+` FROM domains ORDER BY domain`)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}
	return recs, nil
}
