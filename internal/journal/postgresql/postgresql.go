package postgresql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/manifest-network/ledgerdash/internal/models"
)

//go:embed migrations/*
var migrationsFS embed.FS

type PostgresJournal struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

func NewPostgresJournal(ctx context.Context, connString string) (*PostgresJournal, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	j := &PostgresJournal{
		pool: pool,
		db:   stdlib.OpenDBFromPool(pool),
	}

	// Run migrations. This is idempotent.
	if err = j.runMigrations(); err != nil {
		j.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return j, nil
}

// DB exposes the journal through database/sql for the metrics collectors.
func (j *PostgresJournal) DB() *sql.DB {
	return j.db
}

func (j *PostgresJournal) Record(ctx context.Context, t *models.Transfer) error {
	_, err := j.pool.Exec(ctx, `
		INSERT INTO transfers (id, from_peer, payee, amount, url, status, ok, response, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING;
	`, t.ID.String(), t.From, t.Payee, t.Amount, t.URL, t.Status, t.OK, t.Response, t.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to write transfer: %w", err)
	}
	return nil
}

func (j *PostgresJournal) Recent(ctx context.Context, limit int) ([]models.Transfer, error) {
	rows, err := j.pool.Query(ctx, `
		SELECT id, from_peer, payee, amount, url, status, ok, response, submitted_at
		FROM transfers
		ORDER BY submitted_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var out []models.Transfer
	for rows.Next() {
		var t models.Transfer
		var id string
		if err := rows.Scan(&id, &t.From, &t.Payee, &t.Amount, &t.URL, &t.Status, &t.OK, &t.Response, &t.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid transfer id %q: %w", id, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transfers: %w", err)
	}

	return out, nil
}

func (j *PostgresJournal) runMigrations() error {
	slog.Info("Running PostgreSQL migrations...")

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	// The migration instance owns and closes this handle.
	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(j.pool), &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (j *PostgresJournal) Close() error {
	slog.Info("Closing PostgreSQL connection pool")
	err := j.db.Close()
	j.pool.Close()
	slog.Info("PostgreSQL connection pool closed")
	return err
}
