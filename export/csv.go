package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/tradeledger/analytics"
	"github.com/rustyeddy/tradeledger/ledger"
)

// ISO8601 is the instant format of the CSV export: UTC with milliseconds.
const ISO8601 = "2006-01-02T15:04:05.000Z"

var (
	recordsHeader = []string{"timestamp", "decision", "tp", "sl", "result"}
	equityHeader  = []string{"timestamp", "trade", "balance", "result", "drawdown_pct"}
)

// WriteCSV writes the records table: one row per record in ledger order.
func WriteCSV(w io.Writer, records []ledger.TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		err := cw.Write([]string{
			Timestamp(r.CreatedAt),
			r.Decision.String(),
			Number(r.TakeProfit),
			Number(r.StopLoss),
			Number(r.Result()),
		})
		if err != nil {
			return fmt.Errorf("write record %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteEquityCSV writes the equity and drawdown series side by side, for
// charting tools.
func WriteEquityCSV(w io.Writer, equity []analytics.EquityPoint, drawdown []analytics.DrawdownPoint) error {
	if len(equity) != len(drawdown) {
		return fmt.Errorf("equity has %d points, drawdown has %d", len(equity), len(drawdown))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(equityHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, p := range equity {
		err := cw.Write([]string{
			Timestamp(p.Date),
			strconv.Itoa(p.TradeIndex),
			Number(p.Balance),
			Number(p.Result),
			strconv.FormatFloat(drawdown[i].DrawdownPct, 'f', 4, 64),
		})
		if err != nil {
			return fmt.Errorf("write point %d: %w", p.TradeIndex, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func Timestamp(t time.Time) string {
	return t.UTC().Format(ISO8601)
}

// Number renders x in its shortest plain form: 50, -20, 12.5.
func Number(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
