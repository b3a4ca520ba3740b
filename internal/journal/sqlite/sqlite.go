package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/manifest-network/ledgerdash/internal/models"
)

//go:embed migrations/*
var migrationsFS embed.FS

// timeLayout sorts lexically in submission order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	if err := migrateDatabase(path); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// modernc connections do not share in-memory state or write locks.
	db.SetMaxOpenConns(1)

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) DB() *sql.DB {
	return j.db
}

func (j *SQLiteJournal) Record(ctx context.Context, t *models.Transfer) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO transfers (id, from_peer, payee, amount, url, status, ok, response, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING;
	`, t.ID.String(), t.From, t.Payee, t.Amount, t.URL, t.Status, t.OK, t.Response, t.SubmittedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to write transfer: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) Recent(ctx context.Context, limit int) ([]models.Transfer, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, from_peer, payee, amount, url, status, ok, response, submitted_at
		FROM transfers
		ORDER BY submitted_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var out []models.Transfer
	for rows.Next() {
		var t models.Transfer
		var id, submittedAt string
		if err := rows.Scan(&id, &t.From, &t.Payee, &t.Amount, &t.URL, &t.Status, &t.OK, &t.Response, &submittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid transfer id %q: %w", id, err)
		}
		if t.SubmittedAt, err = time.Parse(timeLayout, submittedAt); err != nil {
			return nil, fmt.Errorf("invalid submission time %q: %w", submittedAt, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transfers: %w", err)
	}

	return out, nil
}

func migrateDatabase(path string) error {
	slog.Info("Running SQLite migrations...", "path", path)

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// The migration instance owns and closes db.
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
