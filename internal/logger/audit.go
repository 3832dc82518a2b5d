package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger records every change made to the ledger.
type AuditLogger struct {
	*logrus.Entry
}

func NewAuditLogger(base logrus.FieldLogger) *AuditLogger {
	return &AuditLogger{
		Entry: base.WithField("component", "audit"),
	}
}

// LogTradeRecorded logs a newly appended trade.
func (al *AuditLogger) LogTradeRecorded(id int64, decision string, tp, sl, result float64, createdAt time.Time) {
	al.WithFields(logrus.Fields{
		"trade_id":    id,
		"decision":    decision,
		"take_profit": tp,
		"stop_loss":   sl,
		"result":      result,
		"timestamp":   createdAt.UnixMilli(),
	}).Info("Trade recorded")
}

// LogTradeRemoved logs an undo of the most recent trade.
func (al *AuditLogger) LogTradeRemoved(id int64, remaining int) {
	al.WithFields(logrus.Fields{
		"trade_id":  id,
		"remaining": remaining,
	}).Info("Trade removed")
}

func (al *AuditLogger) LogLedgerCleared(removed int) {
	al.WithField("removed", removed).Warn("Ledger cleared")
}

func (al *AuditLogger) LogCapitalChanged(oldValue, newValue float64) {
	al.WithFields(logrus.Fields{
		"old_value": oldValue,
		"new_value": newValue,
	}).Info("Starting capital changed")
}
