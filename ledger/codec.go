package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Keys of the two independent entries in the key-value store.
const (
	RecordsKey     = "trade-tracker-records"
	CapitalKey     = "starting-capital"
	DefaultCapital = 10000.0
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// storedRecord is the persisted shape of a TradeRecord. Timestamp is in
// Unix milliseconds.
type storedRecord struct {
	ID        int64    `json:"id"`
	Decision  Decision `json:"decision"`
	TP        float64  `json:"tp"`
	SL        float64  `json:"sl"`
	Timestamp int64    `json:"timestamp"`
}

func toStored(r TradeRecord) storedRecord {
	return storedRecord{
		ID:        r.ID,
		Decision:  r.Decision,
		TP:        r.TakeProfit,
		SL:        r.StopLoss,
		Timestamp: r.CreatedAt.UnixMilli(),
	}
}

func (s storedRecord) record() TradeRecord {
	return TradeRecord{
		ID:         s.ID,
		Decision:   s.Decision,
		TakeProfit: s.TP,
		StopLoss:   s.SL,
		CreatedAt:  time.UnixMilli(s.Timestamp),
	}
}

// EncodeRecords serializes records to the persisted JSON array.
func EncodeRecords(records []TradeRecord) (string, error) {
	out := make([]storedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, toStored(r))
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode records: %w", err)
	}
	return string(b), nil
}

// DecodeRecords parses the persisted JSON array. Any malformed element
// fails the whole decode.
func DecodeRecords(s string) ([]TradeRecord, error) {
	var in []storedRecord
	if err := json.Unmarshal([]byte(s), &in); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	out := make([]TradeRecord, 0, len(in))
	for i, sr := range in {
		if !sr.Decision.Valid() {
			return nil, fmt.Errorf("decode records: element %d has no decision", i)
		}
		if !finite(sr.TP) || !finite(sr.SL) {
			return nil, fmt.Errorf("decode records: element %d has a non-finite amount", i)
		}
		out = append(out, sr.record())
	}
	return out, nil
}

// EncodeCapital renders the starting capital as a plain decimal string.
func EncodeCapital(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DecodeCapital parses a string-encoded decimal.
func DecodeCapital(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("decode capital: %w", err)
	}
	if !finite(v) {
		return 0, fmt.Errorf("decode capital: %q is not finite", s)
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
