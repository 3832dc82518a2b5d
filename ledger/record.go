package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Decision is the outcome of a logged trade: the take-profit was hit (Win)
// or the stop-loss was hit (Loss).
type Decision int

const (
	Win Decision = iota + 1
	Loss
)

// Wire literals used by the persisted records and the CSV export.
const (
	winLiteral  = "Yes"
	lossLiteral = "No"
)

func (d Decision) String() string {
	switch d {
	case Win:
		return winLiteral
	case Loss:
		return lossLiteral
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

func (d Decision) Valid() bool {
	return d == Win || d == Loss
}

// ParseDecision accepts the wire literals plus the friendlier spellings a
// user types on the command line.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "win", "w", "tp":
		return Win, nil
	case "no", "n", "loss", "l", "sl":
		return Loss, nil
	}
	return 0, fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, s)
}

func (d Decision) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid decision %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText only accepts the exact wire literals.
func (d *Decision) UnmarshalText(b []byte) error {
	switch string(b) {
	case winLiteral:
		*d = Win
	case lossLiteral:
		*d = Loss
	default:
		return fmt.Errorf("unknown decision literal %q", string(b))
	}
	return nil
}

// TradeRecord is one logged trade decision. Records are never modified
// after creation.
type TradeRecord struct {
	ID         int64
	Decision   Decision
	TakeProfit float64
	StopLoss   float64
	CreatedAt  time.Time
}

// Result is the signed outcome of the trade: the take-profit for a win,
// the negated stop-loss for a loss.
func (r TradeRecord) Result() float64 {
	if r.Decision == Win {
		return r.TakeProfit
	}
	return -r.StopLoss
}

// State is a snapshot of the ledger. Records are in insertion order, which
// is also chronological order.
type State struct {
	Records         []TradeRecord
	StartingCapital float64
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	out := State{StartingCapital: s.StartingCapital}
	if s.Records != nil {
		out.Records = make([]TradeRecord, len(s.Records))
		copy(out.Records, s.Records)
	}
	return out
}
