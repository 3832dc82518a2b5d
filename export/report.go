package export

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradeledger/analytics"
)

var reportOrgFuncs = template.FuncMap{
	"money": func(x float64) string { return fmt.Sprintf("%.2f", x) },
	"pct":   pct,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var reportOrg = template.Must(template.New("report").Funcs(reportOrgFuncs).Parse(ReportOrgTemplate))

// WriteSummaryOrg renders the report as an Org-mode document.
func WriteSummaryOrg(w io.Writer, r analytics.Report) error {
	if err := reportOrg.Execute(w, r); err != nil {
		return fmt.Errorf("render org report: %w", err)
	}
	return nil
}

const ReportOrgTemplate = `* TRADE LEDGER REPORT
:PROPERTIES:
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:START_BAL:   {{money .Summary.StartingCapital}}
:END_BAL:     {{money .Summary.EndingBalance}}
:NET_PL:      {{money .Summary.TotalNet}}
:RETURN_PCT:  {{.Summary.ReturnPct.Format 2}}
:MAX_DD_PCT:  {{printf "%.2f" .Summary.MaxDrawdownPct}}
:TRADES:      {{.Summary.TotalTrades}}
:WINS:        {{.Summary.Wins}}
:LOSSES:      {{.Summary.Losses}}
:WIN_RATE:    {{.Summary.WinRate.Format 1}}
:PROFIT_FAC:  {{.Summary.ProfitFactor.Format 2}}
:END:

** Performance Summary
- Net P/L:          *{{money .Summary.TotalNet}}*
- Return:           *{{pct .Summary.ReturnPct 2}}*
- Max Drawdown:     *{{printf "%.2f" .Summary.MaxDrawdownPct}}%*
- Win Rate:         *{{pct .Summary.WinRate 1}}*
- Average Net:      *{{.Summary.AverageNet.Format 2}}*
- Average Win:      *{{money .Summary.AverageWin}}*
- Average Loss:     *{{money .Summary.AverageLoss}}*
- Best Win:         *{{money .Summary.BestWin}}*
- Worst Loss:       *{{money .Summary.WorstLoss}}*
- Profit Factor:    *{{.Summary.ProfitFactor.Format 2}}*
- Risk/Reward:      *{{.Summary.RiskReward.Format 2}}*

** Trade Distribution
| Outcome | Count | Amount |
|---------+-------+--------|
| Wins    | {{.Distribution.Wins.Count}} | {{money .Distribution.Wins.TotalAmount}} |
| Losses  | {{.Distribution.Losses.Count}} | {{money .Distribution.Losses.TotalAmount}} |
| Total   | {{.Summary.TotalTrades}} | {{money .Summary.TotalNet}} |
{{- if .Monthly }}

** Monthly Performance
| Month | Trades | Profit |
|-------+--------+--------|
{{- range .Monthly }}
| {{.Label}} | {{.Trades}} | {{money .TotalProfit}} |
{{- end }}
{{- end }}
`

// PrintSummary writes a plain-text report.
func PrintSummary(w io.Writer, r analytics.Report) {
	s := r.Summary

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Trade Ledger")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %s\n", pct(s.WinRate, 1))
	fmt.Fprintf(w, "Average Net:   %s\n", s.AverageNet.Format(2))
	fmt.Fprintf(w, "Average Win:   %.2f\n", s.AverageWin)
	fmt.Fprintf(w, "Average Loss:  %.2f\n", s.AverageLoss)
	fmt.Fprintf(w, "Best Win:      %.2f\n", s.BestWin)
	fmt.Fprintf(w, "Worst Loss:    %.2f\n", s.WorstLoss)
	fmt.Fprintf(w, "Profit Factor: %s\n", s.ProfitFactor.Format(2))
	fmt.Fprintf(w, "Risk/Reward:   %s\n", s.RiskReward.Format(2))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Balance: %.2f\n", s.StartingCapital)
	fmt.Fprintf(w, "End Balance:   %.2f\n", s.EndingBalance)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", s.TotalNet)
	fmt.Fprintf(w, "Return:        %s\n", pct(s.ReturnPct, 2))
	if s.MaxDrawdownPct > 0 {
		fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", s.MaxDrawdownPct)
	}

	if len(r.Monthly) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Monthly Performance")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, m := range r.Monthly {
			fmt.Fprintf(w, "%-14s %10.2f  (%d trades)\n", m.Label+":", m.TotalProfit, m.Trades)
		}
	}

	fmt.Fprintln(w)
}

// pct appends a percent sign to defined, finite metrics only.
func pct(m analytics.Metric, prec int) string {
	if !m.Valid || m.IsInf() {
		return m.Format(prec)
	}
	return m.Format(prec) + "%"
}
