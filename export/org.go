package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradeledger/ledger"
)

// FormatTradeOrg renders a record as an Org-mode block suitable for pasting
// into a journal. Structured facts go in the PROPERTIES drawer; the Review
// heading is left for notes.
func FormatTradeOrg(r ledger.TradeRecord) string {
	outcome := "WIN"
	if r.Decision == ledger.Loss {
		outcome = "LOSS"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "** Trade %d: %s %s\n", r.ID, outcome, signed(r.Result()))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %d\n", r.ID)
	fmt.Fprintf(&b, ":DECISION: %s\n", r.Decision)
	fmt.Fprintf(&b, ":TAKE_PROFIT: %.2f\n", r.TakeProfit)
	fmt.Fprintf(&b, ":STOP_LOSS: %.2f\n", r.StopLoss)
	fmt.Fprintf(&b, ":RESULT: %.2f\n", r.Result())
	fmt.Fprintf(&b, ":CREATED: %s\n", r.CreatedAt.UTC().Format(time.RFC3339))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple records separated by blank lines.
func FormatTradesOrg(records []ledger.TradeRecord) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(r))
	}
	return b.String()
}

func signed(x float64) string {
	if x > 0 {
		return "+" + Number(x)
	}
	return Number(x)
}
