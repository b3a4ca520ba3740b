package ledgerdash

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/manifest-network/ledgerdash/internal/config"
	"github.com/manifest-network/ledgerdash/internal/journal"
	"github.com/manifest-network/ledgerdash/internal/output"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List the most recent journaled transfers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		journalConfig := config.LoadJournalConfigFromCLI()
		if !journalConfig.Enabled() {
			return fmt.Errorf("no journal configured, set --journal")
		}

		store, err := journal.Open(cmd.Context(), journalConfig)
		if err != nil {
			return errors.WithMessage(err, "failed to open transfer journal")
		}
		defer store.Close()

		limit := viper.GetInt("limit")
		if limit <= 0 {
			return fmt.Errorf("limit must be greater than 0")
		}
		transfers, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return errors.WithMessage(err, "failed to list transfers")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSUBMITTED\tFROM\tPAYEE\tAMOUNT\tSTATUS\tOK")
		for _, t := range transfers {
			fmt.Fprintf(w, "%s\t%s\tNode%d\t%s\t%s\t%d\t%t\n",
				t.ID, t.SubmittedAt.Format(time.RFC3339), t.From+1, t.Payee, t.Amount, t.Status, t.OK)
		}
		return w.Flush()
	},
}

var journalExportCmd = &cobra.Command{
	Use:   "export [tsv|json] [out-dir]",
	Short: "Export the most recent journaled transfers to files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		journalConfig := config.LoadJournalConfigFromCLI()
		if !journalConfig.Enabled() {
			return fmt.Errorf("no journal configured, set --journal")
		}

		outputHandler, err := output.NewOutputHandler(args[0], args[1])
		if err != nil {
			return errors.WithMessage(err, "failed to create output handler")
		}

		store, err := journal.Open(cmd.Context(), journalConfig)
		if err != nil {
			outputHandler.Close()
			return errors.WithMessage(err, "failed to open transfer journal")
		}
		defer store.Close()

		transfers, err := store.Recent(cmd.Context(), viper.GetInt("limit"))
		if err != nil {
			outputHandler.Close()
			return errors.WithMessage(err, "failed to list transfers")
		}
		for i := range transfers {
			if err := outputHandler.WriteTransfer(cmd.Context(), &transfers[i]); err != nil {
				outputHandler.Close()
				return errors.WithMessage(err, "failed to export transfer")
			}
		}
		if err := outputHandler.Close(); err != nil {
			return errors.WithMessage(err, "failed to finish export")
		}

		slog.Info("Exported transfers", "count", len(transfers), "format", args[0], "out", args[1])
		return nil
	},
}

func init() {
	journalCmd.PersistentFlags().Int("limit", journal.DefaultRecentLimit, "Maximum number of transfers to list or export")
	if err := viper.BindPFlags(journalCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind journalCmd flags", "error", err)
	}

	journalCmd.AddCommand(journalExportCmd)
}
