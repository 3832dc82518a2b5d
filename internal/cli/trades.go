package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradeledger/export"
	"github.com/rustyeddy/tradeledger/ledger"
)

func newAddCmd(a *app) *cobra.Command {
	var tp, sl float64

	cmd := &cobra.Command{
		Use:   "add <win|loss>",
		Short: "Record a closed trade",
		Long: `Record the outcome of a closed trade.

A win adds the take-profit amount to the balance, a loss subtracts the
stop-loss amount. Both amounts are required and must be positive.

Examples:
  tradeledger add win --tp 50 --sl 20
  tradeledger add loss --tp 40 --sl 20`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		d, err := ledger.ParseDecision(args[0])
		if err != nil {
			return err
		}

		rec, err := a.store.Append(d, tp, sl)
		if err := persisted(cmd, err); err != nil {
			return err
		}
		a.audit.LogTradeRecorded(rec.ID, rec.Decision.String(), rec.TakeProfit, rec.StopLoss, rec.Result(), rec.CreatedAt)

		fmt.Fprintln(cmd.OutOrStdout(), export.FormatTradeOrg(rec))
		return nil
	})

	cmd.Flags().Float64Var(&tp, "tp", 0, "take-profit amount")
	cmd.Flags().Float64Var(&sl, "sl", 0, "stop-loss amount")
	_ = cmd.MarkFlagRequired("tp")
	_ = cmd.MarkFlagRequired("sl")
	return cmd
}

func newUndoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Remove the most recent trade",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		recs := a.store.Records()
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "ledger is empty")
			return nil
		}
		last := recs[len(recs)-1]

		state, err := a.store.RemoveLast()
		if err := persisted(cmd, err); err != nil {
			return err
		}
		a.audit.LogTradeRemoved(last.ID, len(state.Records))

		fmt.Fprintf(cmd.OutOrStdout(), "removed trade %d (%d remaining)\n", last.ID, len(state.Records))
		return nil
	})
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every trade, keeping the starting capital",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		n := a.store.Len()
		if !yes {
			return fmt.Errorf("refusing to clear %d trades without --yes", n)
		}

		_, err := a.store.Clear()
		if err := persisted(cmd, err); err != nil {
			return err
		}
		a.audit.LogLedgerCleared(n)

		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d trades\n", n)
		return nil
	})

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm removing all trades")
	return cmd
}

func newCapitalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capital [amount]",
		Short: "Show or set the starting capital",
		Args:  cobra.MaximumNArgs(1),
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), export.Number(a.store.StartingCapital()))
			return nil
		}

		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("%w: capital %q is not a number", ledger.ErrInvalidInput, args[0])
		}

		old := a.store.StartingCapital()
		state, err := a.store.SetStartingCapital(v)
		if err := persisted(cmd, err); err != nil {
			return err
		}
		a.audit.LogCapitalChanged(old, state.StartingCapital)

		fmt.Fprintln(cmd.OutOrStdout(), export.Number(state.StartingCapital))
		return nil
	})
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var org bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded trades, oldest first",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		recs := a.store.Records()
		if org {
			fmt.Fprintln(cmd.OutOrStdout(), export.FormatTradesOrg(recs))
			return nil
		}
		return printRecords(cmd.OutOrStdout(), recs)
	})

	cmd.Flags().BoolVar(&org, "org", false, "print Org-mode journal entries")
	return cmd
}

func printRecords(w io.Writer, recs []ledger.TradeRecord) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "no trades recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tTIME\tDECISION\tTP\tSL\tRESULT")
	for i, r := range recs {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			r.ID,
			export.Timestamp(r.CreatedAt),
			r.Decision,
			export.Number(r.TakeProfit),
			export.Number(r.StopLoss),
			export.Number(r.Result()),
		)
	}
	return tw.Flush()
}
