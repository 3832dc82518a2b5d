package analytics

import (
	"time"

	"github.com/rustyeddy/tradeledger/ledger"
	"github.com/shopspring/decimal"
)

// EquityPoint is the account balance after one trade.
type EquityPoint struct {
	TradeIndex int       `json:"trade_index"`
	Balance    float64   `json:"balance"`
	Result     float64   `json:"result"`
	Date       time.Time `json:"date"`
}

// DrawdownPoint is the percentage drop from the running peak after one trade.
type DrawdownPoint struct {
	TradeIndex  int     `json:"trade_index"`
	DrawdownPct float64 `json:"drawdown_pct"`
	Balance     float64 `json:"balance"`
}

// balances returns the running balance after each record, starting from
// the starting capital. Sums are exact decimal.
func balances(state ledger.State) []decimal.Decimal {
	out := make([]decimal.Decimal, len(state.Records))
	bal := decimal.NewFromFloat(state.StartingCapital)
	for i, r := range state.Records {
		bal = bal.Add(decimal.NewFromFloat(r.Result()))
		out[i] = bal
	}
	return out
}

// EquityCurve runs a prefix sum of signed results over the records in
// chronological order. Trade indexes are 1-based.
func EquityCurve(state ledger.State) []EquityPoint {
	bals := balances(state)
	out := make([]EquityPoint, len(state.Records))
	for i, r := range state.Records {
		out[i] = EquityPoint{
			TradeIndex: i + 1,
			Balance:    bals[i].InexactFloat64(),
			Result:     r.Result(),
			Date:       r.CreatedAt,
		}
	}
	return out
}

// DrawdownCurve walks the same prefix sum tracking the running peak, which
// starts at the starting capital. A non-positive peak yields 0% drawdown.
func DrawdownCurve(state ledger.State) ([]DrawdownPoint, float64) {
	hundred := decimal.NewFromInt(100)
	peak := decimal.NewFromFloat(state.StartingCapital)

	out := make([]DrawdownPoint, len(state.Records))
	maxDD := 0.0
	for i, bal := range balances(state) {
		if bal.GreaterThan(peak) {
			peak = bal
		}

		dd := 0.0
		if peak.IsPositive() {
			dd = peak.Sub(bal).Div(peak).Mul(hundred).InexactFloat64()
		}
		if dd > maxDD {
			maxDD = dd
		}

		out[i] = DrawdownPoint{
			TradeIndex:  i + 1,
			DrawdownPct: dd,
			Balance:     bal.InexactFloat64(),
		}
	}
	return out, maxDD
}

// MaxDrawdown is the largest drawdown percentage over the ledger.
func MaxDrawdown(state ledger.State) float64 {
	_, dd := DrawdownCurve(state)
	return dd
}
