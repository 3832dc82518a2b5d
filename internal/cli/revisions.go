package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradeledger/export"
	"github.com/rustyeddy/tradeledger/storage"
)

func newRevisionsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "revisions [key]",
		Short: "Show the write history kept by the sqlite store",
		Long: `Show past values of the stored keys, newest first.

Only the sqlite store keeps history.

Examples:
  tradeledger --store sqlite revisions
  tradeledger --store sqlite revisions starting-capital -n 5`,
		Args: cobra.MaximumNArgs(1),
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		db, ok := a.kv.(*storage.SQLite)
		if !ok {
			return fmt.Errorf("revisions need the sqlite store (current: %s)", a.cfg.Storage.Type)
		}

		key := ""
		if len(args) == 1 {
			key = args[0]
		}

		revs, err := db.Revisions(key, limit)
		if err != nil {
			return err
		}
		if len(revs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no revisions")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "REVISION\tWRITTEN\tKEY\tBYTES")
		for _, r := range revs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.Rev, export.Timestamp(r.WrittenAt), r.Key, len(r.Value))
		}
		return tw.Flush()
	})

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum revisions to show (0 for all)")
	return cmd
}
