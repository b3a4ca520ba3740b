package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/manifest-network/ledgerdash/internal/config"
	"github.com/manifest-network/ledgerdash/internal/journal/postgresql"
	"github.com/manifest-network/ledgerdash/internal/journal/sqlite"
	"github.com/manifest-network/ledgerdash/internal/models"
)

// DefaultRecentLimit bounds listings when the caller does not pick a limit.
const DefaultRecentLimit = 50

// Store persists submitted transfers.
type Store interface {
	Record(ctx context.Context, t *models.Transfer) error
	Recent(ctx context.Context, limit int) ([]models.Transfer, error)
	DB() *sql.DB
	Close() error
}

// Open returns the store selected by the DSN scheme.
func Open(ctx context.Context, cfg config.JournalConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return nil, fmt.Errorf("journal is not configured")
	}

	switch cfg.Driver() {
	case config.JournalPostgres:
		return postgresql.NewPostgresJournal(ctx, cfg.DSN)
	case config.JournalSQLite:
		return sqlite.NewSQLiteJournal(cfg.SQLitePath())
	default:
		return nil, fmt.Errorf("unsupported journal driver %q", cfg.Driver())
	}
}
