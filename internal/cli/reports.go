package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradeledger/analytics"
	"github.com/rustyeddy/tradeledger/export"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (a *app) report() analytics.Report {
	return analytics.Build(a.store.State(), a.cfg.Ledger.Location(), a.now())
}

func newStatsCmd(a *app) *cobra.Command {
	var asJSON, asOrg bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the performance summary",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		r := a.report()
		out := cmd.OutOrStdout()

		switch {
		case asJSON:
			b, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Fprintln(out, string(b))
			return nil
		case asOrg:
			return export.WriteSummaryOrg(out, r)
		}

		export.PrintSummary(out, r)
		return nil
	})

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().BoolVar(&asOrg, "org", false, "print an Org-mode report")
	cmd.MarkFlagsMutuallyExclusive("json", "org")
	return cmd
}

func newEquityCmd(a *app) *cobra.Command {
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the equity curve and drawdown after each trade",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		state := a.store.State()
		equity := analytics.EquityCurve(state)
		drawdown, maxDD := analytics.DrawdownCurve(state)

		if asCSV {
			return export.WriteEquityCSV(cmd.OutOrStdout(), equity, drawdown)
		}
		return printEquity(cmd.OutOrStdout(), state.StartingCapital, equity, drawdown, maxDD)
	})

	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV for charting")
	return cmd
}

func printEquity(w io.Writer, capital float64, equity []analytics.EquityPoint, drawdown []analytics.DrawdownPoint, maxDD float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TRADE\tRESULT\tBALANCE\tDRAWDOWN\t")
	fmt.Fprintf(tw, "0\t\t%.2f\t\t\n", capital)
	for i, p := range equity {
		fmt.Fprintf(tw, "%d\t%+.2f\t%.2f\t%.2f%%\t\n", p.TradeIndex, p.Result, p.Balance, drawdown[i].DrawdownPct)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Max drawdown: %.2f%%\n", maxDD)
	return err
}

func newMonthlyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show net profit per calendar month",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		months := analytics.MonthlyPerformance(a.store.State(), a.cfg.Ledger.Location())
		out := cmd.OutOrStdout()
		if len(months) == 0 {
			fmt.Fprintln(out, "no trades recorded")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MONTH\tTRADES\tPROFIT")
		for _, m := range months {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", m.Label, m.Trades, m.TotalProfit)
		}
		return tw.Flush()
	})
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every trade as CSV",
		Long: `Export every trade as CSV with the columns
timestamp,decision,tp,sl,result.

Examples:
  tradeledger export
  tradeledger export -o trades.csv`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = a.withLedger(func(cmd *cobra.Command, args []string) error {
		recs := a.store.Records()
		if output == "" || output == "-" {
			return export.WriteCSV(cmd.OutOrStdout(), recs)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		if err := export.WriteCSV(f, recs); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", output, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}

		a.log.WithField("path", output).Info("exported trades")
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d trades to %s\n", len(recs), output)
		return nil
	})

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
