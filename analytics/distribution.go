package analytics

import (
	"github.com/rustyeddy/tradeledger/ledger"
	"github.com/shopspring/decimal"
)

type Bucket struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// Distribution partitions the ledger by decision. Wins total the
// take-profits of winning trades, losses total the stop-losses of losing
// trades (as a positive magnitude).
type Distribution struct {
	Wins   Bucket `json:"wins"`
	Losses Bucket `json:"losses"`
}

func WinLossDistribution(state ledger.State) Distribution {
	var d Distribution
	wins, losses := decimal.Zero, decimal.Zero
	for _, r := range state.Records {
		switch r.Decision {
		case ledger.Win:
			d.Wins.Count++
			wins = wins.Add(decimal.NewFromFloat(r.TakeProfit))
		case ledger.Loss:
			d.Losses.Count++
			losses = losses.Add(decimal.NewFromFloat(r.StopLoss))
		}
	}
	d.Wins.TotalAmount = wins.InexactFloat64()
	d.Losses.TotalAmount = losses.InexactFloat64()
	return d
}
