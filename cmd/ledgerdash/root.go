package ledgerdash

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/ledgerdash/internal/client"
	"github.com/manifest-network/ledgerdash/internal/config"
	"github.com/manifest-network/ledgerdash/internal/dashboard"
	"github.com/manifest-network/ledgerdash/internal/journal"
)

var (
	validLogLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	validLogLevelsStr = strings.Join(slices.Sorted(maps.Keys(validLogLevels)), "|")
)

var RootCmd = &cobra.Command{
	Use:   "ledgerdash",
	Short: "Observe and operate ledger nodes",
	Long:  `ledgerdash polls a set of ledger nodes for their chain, balance and address, and submits transfers between them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := viper.GetString("logLevel")
		if err := setLogLevel(logLevel); err != nil {
			return err
		}
		slog.Debug("Application started", "version", Version)
		return nil
	},
}

// setLogLevel sets the log level
func setLogLevel(logLevel string) error {
	level, exists := validLogLevels[logLevel]
	if !exists {
		return fmt.Errorf("invalid log level: %s. Valid log levels are: %s", logLevel, validLogLevelsStr)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func init() {
	RootCmd.PersistentFlags().StringP("logLevel", "l", "info", fmt.Sprintf("set log level (%s)", validLogLevelsStr))
	RootCmd.PersistentFlags().String("title", dashboard.DefaultTitle, "Dashboard page title")
	RootCmd.PersistentFlags().String("host", "localhost", "Host of the ledger nodes")
	RootCmd.PersistentFlags().IntP("base-port", "p", 8080, "Port of the first ledger node; node i listens on base-port+i")
	RootCmd.PersistentFlags().IntP("peers", "n", 2, "Number of ledger nodes")
	RootCmd.PersistentFlags().StringSlice("peer-url", nil, "Explicit ledger node base URLs, overriding host, base-port and peers")
	RootCmd.PersistentFlags().Duration("fetch-timeout", 0, "Per-request timeout for ledger node reads and transfers (0 = none)")
	RootCmd.PersistentFlags().UintP("max-concurrency", "c", dashboard.DefaultMaxConcurrency, "Maximum concurrent ledger node requests")
	RootCmd.PersistentFlags().String("journal", "", "Transfer journal DSN (postgres://..., postgresql://... or sqlite://path)")
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind rootCmd flags", "error", err)
	}

	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.ledgerdash")
	viper.AddConfigPath("/etc/ledgerdash")

	viper.SetEnvPrefix("ledgerdash")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	RootCmd.AddCommand(ServeCmd)
	RootCmd.AddCommand(refreshCmd)
	RootCmd.AddCommand(transferCmd)
	RootCmd.AddCommand(journalCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := viper.ReadInConfig(); err == nil {
		slog.Info("Using config file", "file", viper.ConfigFileUsed())
	} else {
		slog.Info("No config file found")
	}

	if err := RootCmd.Execute(); err != nil {
		slog.Error("An error occurred", "error", err)
		os.Exit(1)
	}
}

// newDashboard builds a dashboard from the persistent flags. The journal is
// opened when configured and must be closed by the caller.
func newDashboard(ctx context.Context, opts ...dashboard.Option) (*dashboard.Dashboard, journal.Store, error) {
	dashConfig := config.LoadDashboardConfigFromCLI()
	if err := dashConfig.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid Dashboard configuration: %w", err)
	}
	journalConfig := config.LoadJournalConfigFromCLI()
	if err := journalConfig.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid Journal configuration: %w", err)
	}
	slog.Debug("Command-line arguments", "dashboardConfig", dashConfig)

	reg, err := dashConfig.Registry()
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed to build peer registry")
	}

	var store journal.Store
	if journalConfig.Enabled() {
		store, err = journal.Open(ctx, journalConfig)
		if err != nil {
			return nil, nil, errors.WithMessage(err, "failed to open transfer journal")
		}
		opts = append(opts, dashboard.WithJournal(store))
	}

	opts = append(opts, dashboard.WithMaxConcurrency(int(dashConfig.MaxConcurrency)))
	if dashConfig.Title != "" {
		opts = append(opts, dashboard.WithTitle(dashConfig.Title))
	}

	d, err := dashboard.New(reg, client.NewHTTPClient(dashConfig.FetchTimeout), opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}
	return d, store, nil
}

// handleInterrupt handles interrupt signals for graceful shutdown.
func handleInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()
}
