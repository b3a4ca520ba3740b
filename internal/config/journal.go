package config

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
)

const (
	JournalPostgres = "postgres"
	JournalSQLite   = "sqlite"
)

type JournalConfig struct {
	DSN string
}

// Enabled reports whether transfers are journaled at all.
func (c JournalConfig) Enabled() bool {
	return c.DSN != ""
}

// Driver returns the journal backend selected by the DSN scheme.
func (c JournalConfig) Driver() string {
	switch {
	case strings.HasPrefix(c.DSN, "postgres://"), strings.HasPrefix(c.DSN, "postgresql://"):
		return JournalPostgres
	case strings.HasPrefix(c.DSN, "sqlite://"):
		return JournalSQLite
	default:
		return ""
	}
}

// SQLitePath returns the database path of a sqlite:// DSN.
func (c JournalConfig) SQLitePath() string {
	return strings.TrimPrefix(c.DSN, "sqlite://")
}

func (c JournalConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}

	switch c.Driver() {
	case JournalPostgres:
		if _, err := pgxpool.ParseConfig(c.DSN); err != nil {
			return fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
		}
	case JournalSQLite:
		if c.SQLitePath() == "" {
			return fmt.Errorf("missing SQLite database path")
		}
	default:
		return fmt.Errorf("unsupported journal DSN %q: expected postgres://, postgresql:// or sqlite://", c.DSN)
	}
	return nil
}

func LoadJournalConfigFromCLI() JournalConfig {
	return JournalConfig{
		DSN: viper.GetString("journal"),
	}
}
