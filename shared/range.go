package shared

import (
	"errors"
	"fmt"
	"time"
)

// Range represents an immutable request range for a symbol's candle data.
type Range struct {
	Symbol   string
	Interval Interval
	Start    time.Time
	End      time.Time
}

// NewRange initializes a new request range.
func NewRange(symbol string, interval Interval, start time.Time, end time.Time) (*Range, error) {
	rng := &Range{
		Symbol:   symbol,
		Interval: interval,
		Start:    start,
		End:      end,
	}

	err := rng.Validate()
	if err != nil {
		return nil, err
	}

	return rng, nil
}

// Validate asserts the range has sane inputs.
func (r *Range) Validate() error {
	var errs error

	if r.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("symbol cannot be an empty string"))
	}
	if !r.Start.Before(r.End) {
		errs = errors.Join(errs, fmt.Errorf("range start (%s) must be before range end (%s)",
			r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339)))
	}

	return errs
}
