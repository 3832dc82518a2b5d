package analytics

import (
	"time"

	"github.com/rustyeddy/tradeledger/ledger"
	"github.com/shopspring/decimal"
)

// MonthlyProfit is the net result of all trades created in one calendar
// month. Key is "2006-01"; Label is "Jan 2006".
type MonthlyProfit struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Trades      int     `json:"trades"`
	TotalProfit float64 `json:"total_profit"`
}

// MonthlyPerformance groups records by the year and month of CreatedAt in
// loc (time.Local when nil). Months are listed in the order they first
// appear in the ledger, not sorted by date.
func MonthlyPerformance(state ledger.State, loc *time.Location) []MonthlyProfit {
	if loc == nil {
		loc = time.Local
	}

	index := map[string]int{}
	totals := []decimal.Decimal{}
	out := []MonthlyProfit{}
	for _, r := range state.Records {
		t := r.CreatedAt.In(loc)
		key := t.Format("2006-01")

		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, MonthlyProfit{Key: key, Label: t.Format("Jan 2006")})
			totals = append(totals, decimal.Zero)
		}
		out[i].Trades++
		totals[i] = totals[i].Add(decimal.NewFromFloat(r.Result()))
	}

	for i := range out {
		out[i].TotalProfit = totals[i].InexactFloat64()
	}
	return out
}
