package ledgerdash

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/manifest-network/ledgerdash/internal/client"
	"github.com/manifest-network/ledgerdash/internal/dashboard"
	"github.com/manifest-network/ledgerdash/internal/dom"
	"github.com/manifest-network/ledgerdash/internal/peers"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one refresh cycle and print every node",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		handleInterrupt(cancel)

		var bar *progressbar.ProgressBar
		d, store, err := newDashboard(ctx, dashboard.WithObserver(dashboard.ObserverFuncs{
			OnFetchCompleted: func(peers.Peer, dashboard.FetchKind, client.Result, bool) {
				_ = bar.Add(1)
			},
		}))
		if err != nil {
			return err
		}
		defer d.Close()
		if store != nil {
			defer store.Close()
		}

		bar = newRefreshBar(d.Registry().Len() * len(dashboard.FetchKinds))
		if err := bar.RenderBlank(); err != nil {
			return fmt.Errorf("failed to render progress bar: %w", err)
		}

		if err := d.RefreshAll(ctx); err != nil {
			return fmt.Errorf("failed to refresh nodes: %w", err)
		}
		if err := bar.Finish(); err != nil {
			return fmt.Errorf("failed to finish progress bar: %w", err)
		}

		return printNodes(ctx, d, os.Stdout)
	},
}

// newRefreshBar tracks fetch completions, stale ones included.
func newRefreshBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("Refreshing nodes..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// printNodes writes the plain-text view of every node section.
func printNodes(ctx context.Context, d *dashboard.Dashboard, w io.Writer) error {
	return d.Inspect(ctx, func(doc *dom.Document) {
		for _, p := range d.Registry().Peers() {
			fmt.Fprintf(w, "== %s (%s)\n", p.Name(), p.BaseURL)
			fmt.Fprintf(w, "Address: %s\n", dom.InnerText(doc.MustGetElementByID(p.AddressID())))
			for _, id := range []string{p.BalanceID(), p.TransferID(), p.BlocksID()} {
				for _, line := range dom.Lines(doc.MustGetElementByID(id)) {
					fmt.Fprintln(w, line)
				}
			}
		}
		slog.Debug("Printed nodes", "count", d.Registry().Len())
	})
}
