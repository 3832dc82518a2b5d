package ledger

import "fmt"

// ValidateTrade enforces the entry policy: a known decision and two finite,
// strictly positive magnitudes.
func ValidateTrade(d Decision, tp, sl float64) error {
	if !d.Valid() {
		return fmt.Errorf("%w: decision must be %s or %s", ErrInvalidInput, Win, Loss)
	}
	if !finite(tp) || tp <= 0 {
		return fmt.Errorf("%w: take profit must be a positive number, got %v", ErrInvalidInput, tp)
	}
	if !finite(sl) || sl <= 0 {
		return fmt.Errorf("%w: stop loss must be a positive number, got %v", ErrInvalidInput, sl)
	}
	return nil
}

// ValidateCapital accepts any finite, non-negative starting capital.
func ValidateCapital(v float64) error {
	if !finite(v) || v < 0 {
		return fmt.Errorf("%w: starting capital must be a non-negative number, got %v", ErrInvalidInput, v)
	}
	return nil
}
