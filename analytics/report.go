package analytics

import (
	"time"

	"github.com/rustyeddy/tradeledger/ledger"
)

// Report bundles every derived view of one snapshot, as consumed by the
// exporters and the JSON output of the CLI.
type Report struct {
	Created      time.Time       `json:"created"`
	Summary      Summary         `json:"summary"`
	Distribution Distribution    `json:"distribution"`
	Equity       []EquityPoint   `json:"equity"`
	Drawdown     []DrawdownPoint `json:"drawdown"`
	Monthly      []MonthlyProfit `json:"monthly"`
}

// Build computes a Report. Nothing is cached between calls.
func Build(state ledger.State, loc *time.Location, now time.Time) Report {
	dd, _ := DrawdownCurve(state)
	return Report{
		Created:      now,
		Summary:      Summarize(state),
		Distribution: WinLossDistribution(state),
		Equity:       EquityCurve(state),
		Drawdown:     dd,
		Monthly:      MonthlyPerformance(state, loc),
	}
}
