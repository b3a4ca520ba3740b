package ledgerdash

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/ledgerdash/internal/config"
	"github.com/manifest-network/ledgerdash/internal/dashboard"
	"github.com/manifest-network/ledgerdash/internal/metrics"
	"github.com/manifest-network/ledgerdash/internal/metrics/collectors"
	"github.com/manifest-network/ledgerdash/internal/web"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard page",
	Long:  `Serve the dashboard page, refreshing the ledger nodes and submitting transfers on operator request.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serveConfig := config.LoadServeConfigFromCLI()
		if err := serveConfig.Validate(); err != nil {
			return fmt.Errorf("invalid Serve configuration: %w", err)
		}
		slog.Debug("Command-line arguments", "serveConfig", serveConfig)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		handleInterrupt(cancel)

		return serve(ctx, serveConfig)
	},
}

func init() {
	ServeCmd.Flags().String("listen", ":3000", "Address of the dashboard HTTP server")
	ServeCmd.Flags().Duration("refresh-wait", web.DefaultRefreshWait, "How long a refresh request waits for the cycle before redirecting")
	ServeCmd.Flags().Bool("refresh-on-start", false, "Run a refresh cycle when the server starts")
	ServeCmd.Flags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	ServeCmd.Flags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")

	if err := viper.BindPFlags(ServeCmd.Flags()); err != nil {
		slog.Error("Failed to bind ServeCmd flags", "error", err)
	}
}

func serve(ctx context.Context, serveConfig config.ServeConfig) error {
	var opts []dashboard.Option
	var dashCollector *metrics.DashboardCollector
	if serveConfig.EnablePrometheus {
		dashCollector = metrics.NewDashboardCollector()
		opts = append(opts, dashboard.WithObserver(dashCollector))
	}

	d, store, err := newDashboard(ctx, opts...)
	if err != nil {
		return err
	}
	defer d.Close()
	if store != nil {
		defer store.Close()
	}

	if serveConfig.EnablePrometheus {
		cs := []prometheus.Collector{dashCollector}
		if store != nil {
			journalCollectors, err := collectors.DefaultRegistry.CreateCollectors(store.DB())
			if err != nil {
				return errors.WithMessage(err, "failed to create journal collectors")
			}
			cs = append(cs, journalCollectors...)
		}

		metricsServer, err := metrics.CreateMetricsServer(serveConfig.PrometheusAddr, cs...)
		if err != nil {
			return errors.WithMessage(err, "failed to start metrics server")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("Failed to stop metrics server", "error", err)
			}
		}()
	}

	if serveConfig.RefreshOnStart {
		go func() {
			if err := <-d.Refresh(ctx); err != nil {
				slog.Error("Initial refresh failed", "error", err)
			}
		}()
	}

	webOpts := []web.Option{web.WithRefreshWait(serveConfig.RefreshWait)}
	if store != nil {
		webOpts = append(webOpts, web.WithTransferLister(store))
	}
	return web.NewServer(ctx, d, webOpts...).Run(ctx, serveConfig.Listen)
}
