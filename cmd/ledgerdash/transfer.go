package ledgerdash

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer [from-index] [payee] [amount]",
	Short: "Submit a transfer from one node to a payee",
	Long: `Refresh the nodes, select the payee on the sending node's form and submit the transfer.
The payee is either an address or a node label such as Node2.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid node index %q: %w", args[0], err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		handleInterrupt(cancel)

		d, store, err := newDashboard(ctx)
		if err != nil {
			return err
		}
		defer d.Close()
		if store != nil {
			defer store.Close()
		}

		// Payee options only exist once the addresses are known.
		if err := d.RefreshAll(ctx); err != nil {
			return fmt.Errorf("failed to refresh nodes: %w", err)
		}
		if err := d.SetForm(ctx, index, args[1], args[2]); err != nil {
			return errors.WithMessage(err, "failed to fill transfer form")
		}

		t, err := d.Transfer(ctx, index)
		if err != nil {
			return errors.WithMessage(err, "failed to submit transfer")
		}

		fmt.Fprintf(os.Stdout, "%s %s\n", t.ID, t.Response)
		if !t.OK {
			return fmt.Errorf("transfer failed with status %d", t.Status)
		}
		return nil
	},
}
