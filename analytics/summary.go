package analytics

import (
	"math"

	"github.com/rustyeddy/tradeledger/ledger"
	"github.com/shopspring/decimal"
)

// Summary holds the scalar statistics of a ledger. Ratios that can divide
// by zero are Metrics so callers can tell "undefined" from 0.
type Summary struct {
	TotalTrades int `json:"total_trades"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`

	TotalNet     float64 `json:"total_net"`
	WinsAmount   float64 `json:"wins_amount"`
	LossesAmount float64 `json:"losses_amount"`

	WinRate      Metric  `json:"win_rate"`
	AverageNet   Metric  `json:"average_net"`
	AverageWin   float64 `json:"average_win"`
	AverageLoss  float64 `json:"average_loss"`
	ProfitFactor Metric  `json:"profit_factor"`
	RiskReward   Metric  `json:"risk_reward"`
	BestWin      float64 `json:"best_win"`
	WorstLoss    float64 `json:"worst_loss"`

	StartingCapital float64 `json:"starting_capital"`
	EndingBalance   float64 `json:"ending_balance"`
	ReturnPct       Metric  `json:"return_pct"`
	MaxDrawdownPct  float64 `json:"max_drawdown_pct"`
}

// Summarize computes every scalar from the records directly rather than
// from the curves.
func Summarize(state ledger.State) Summary {
	s := Summary{
		TotalTrades:     len(state.Records),
		StartingCapital: state.StartingCapital,
	}

	net, wins, losses := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range state.Records {
		net = net.Add(decimal.NewFromFloat(r.Result()))
		switch r.Decision {
		case ledger.Win:
			s.Wins++
			wins = wins.Add(decimal.NewFromFloat(r.TakeProfit))
			s.BestWin = math.Max(s.BestWin, r.TakeProfit)
		case ledger.Loss:
			s.Losses++
			losses = losses.Add(decimal.NewFromFloat(r.StopLoss))
			s.WorstLoss = math.Max(s.WorstLoss, r.StopLoss)
		}
	}

	s.TotalNet = net.InexactFloat64()
	s.WinsAmount = wins.InexactFloat64()
	s.LossesAmount = losses.InexactFloat64()
	s.EndingBalance = decimal.NewFromFloat(state.StartingCapital).Add(net).InexactFloat64()

	total := float64(s.TotalTrades)
	s.WinRate = ratio(float64(s.Wins)*100, total)
	s.AverageNet = ratio(s.TotalNet, total)

	if s.Wins > 0 {
		s.AverageWin = s.WinsAmount / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AverageLoss = s.LossesAmount / float64(s.Losses)
	}

	s.ProfitFactor = profitFactor(s.WinsAmount, s.LossesAmount)
	if s.Wins > 0 && s.Losses > 0 {
		s.RiskReward = ratio(s.AverageWin, s.AverageLoss)
	}
	s.ReturnPct = ratio(s.TotalNet*100, state.StartingCapital)
	s.MaxDrawdownPct = MaxDrawdown(state)

	return s
}

// profitFactor is unbounded when there are wins but no losses, and
// undefined when there is neither.
func profitFactor(wins, losses float64) Metric {
	if losses == 0 {
		if wins > 0 {
			return defined(math.Inf(1))
		}
		return undefined
	}
	return defined(wins / losses)
}
