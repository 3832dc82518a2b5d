package ledger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// KV is the local key-value store the ledger persists into. Read reports
// ok == false for a key that has never been written.
type KV interface {
	Read(key string) (value string, ok bool, err error)
	Write(key, value string) error
}

type Option func(*Store)

// WithClock replaces time.Now as the source of record timestamps and IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// WithDefaultCapital sets the starting capital used when none is persisted.
func WithDefaultCapital(v float64) Option {
	return func(s *Store) { s.defaultCapital = v }
}

// Store owns the ledger state and writes every mutation through to the
// key-value store before returning.
type Store struct {
	mu             sync.Mutex
	kv             KV
	now            func() time.Time
	log            logrus.FieldLogger
	defaultCapital float64

	state  State
	lastID int64
}

// Load builds a Store from whatever kv holds. Missing or malformed entries
// fall back to the defaults; the problem is logged, never returned.
func Load(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:             kv,
		now:            time.Now,
		log:            discardLogger(),
		defaultCapital: DefaultCapital,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state = State{
		Records:         s.loadRecords(),
		StartingCapital: s.loadCapital(),
	}
	for _, r := range s.state.Records {
		if r.ID > s.lastID {
			s.lastID = r.ID
		}
	}

	s.log.WithFields(logrus.Fields{
		"records": len(s.state.Records),
		"capital": s.state.StartingCapital,
	}).Debug("ledger loaded")
	return s
}

func (s *Store) loadRecords() []TradeRecord {
	raw, ok, err := s.kv.Read(RecordsKey)
	if err != nil {
		s.log.WithError(err).WithField("key", RecordsKey).Warn("read failed, starting with an empty ledger")
		return []TradeRecord{}
	}
	if !ok || raw == "" {
		return []TradeRecord{}
	}

	recs, err := DecodeRecords(raw)
	if err != nil {
		s.log.WithError(err).WithField("key", RecordsKey).Warn("malformed records, starting with an empty ledger")
		return []TradeRecord{}
	}

	seen := make(map[int64]bool, len(recs))
	out := recs[:0]
	for _, r := range recs {
		if seen[r.ID] {
			s.log.WithField("id", r.ID).Warn("dropping record with duplicate id")
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}

func (s *Store) loadCapital() float64 {
	raw, ok, err := s.kv.Read(CapitalKey)
	if err != nil {
		s.log.WithError(err).WithField("key", CapitalKey).Warn("read failed, using default capital")
		return s.defaultCapital
	}
	if !ok {
		return s.defaultCapital
	}
	v, err := DecodeCapital(raw)
	if err != nil {
		s.log.WithError(err).WithField("key", CapitalKey).Warn("malformed capital, using default")
		return s.defaultCapital
	}
	return v
}

// State returns a copy of the current ledger.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Records() []TradeRecord {
	return s.State().Records
}

func (s *Store) StartingCapital() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.StartingCapital
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Records)
}

// Append records a new trade at the end of the ledger. On a persistence
// failure the returned record is still part of the ledger and the error
// wraps ErrPersist.
func (s *Store) Append(d Decision, tp, sl float64) (TradeRecord, error) {
	if err := ValidateTrade(d, tp, sl); err != nil {
		return TradeRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := TradeRecord{
		ID:         s.nextID(now),
		Decision:   d,
		TakeProfit: tp,
		StopLoss:   sl,
		CreatedAt:  time.UnixMilli(now.UnixMilli()),
	}
	s.state.Records = append(s.state.Records, rec)

	s.log.WithFields(logrus.Fields{
		"id":       rec.ID,
		"decision": rec.Decision.String(),
		"result":   rec.Result(),
	}).Debug("trade appended")

	return rec, s.persistRecords()
}

// nextID uses the creation time in milliseconds, bumped past the last
// issued ID so IDs stay unique and increasing.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// RemoveLast drops the most recent record. It is a no-op on an empty ledger.
func (s *Store) RemoveLast() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.state.Records)
	if n == 0 {
		return s.state.Clone(), nil
	}
	removed := s.state.Records[n-1]
	s.state.Records = s.state.Records[:n-1]
	s.log.WithField("id", removed.ID).Debug("trade removed")

	err := s.persistRecords()
	return s.state.Clone(), err
}

// Clear removes every record. The starting capital is kept.
func (s *Store) Clear() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Records = []TradeRecord{}
	s.log.Debug("ledger cleared")

	err := s.persistRecords()
	return s.state.Clone(), err
}

func (s *Store) SetStartingCapital(v float64) (State, error) {
	if err := ValidateCapital(v); err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.StartingCapital = v
	var err error
	if werr := s.kv.Write(CapitalKey, EncodeCapital(v)); werr != nil {
		err = s.persistFailed(CapitalKey, werr)
	}
	return s.state.Clone(), err
}

func (s *Store) persistRecords() error {
	raw, err := EncodeRecords(s.state.Records)
	if err != nil {
		return s.persistFailed(RecordsKey, err)
	}
	if err := s.kv.Write(RecordsKey, raw); err != nil {
		return s.persistFailed(RecordsKey, err)
	}
	return nil
}

func (s *Store) persistFailed(key string, err error) error {
	s.log.WithError(err).WithField("key", key).Warn("write failed, change kept in memory only")
	return fmt.Errorf("%w: write %s: %w", ErrPersist, key, err)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
