package shared

import (
	"fmt"
	"time"
)

// Interval represents the fixed duration covered by a single candle.
type Interval int

const (
	FifteenMinute Interval = iota
	ThirtyMinute
	OneHour
	FourHour
	TwelveHour
	OneDay
	OneWeek
)

// ParseInterval parses the provided resolution string into an interval.
func ParseInterval(resolution string) (Interval, error) {
	switch resolution {
	case "15m":
		return FifteenMinute, nil
	case "30m":
		return ThirtyMinute, nil
	case "1h":
		return OneHour, nil
	case "4h":
		return FourHour, nil
	case "12h":
		return TwelveHour, nil
	case "1d":
		return OneDay, nil
	case "1w":
		return OneWeek, nil
	default:
		return 0, fmt.Errorf("unsupported resolution: %s", resolution)
	}
}

// String stringifies the provided interval.
func (i *Interval) String() string {
	switch *i {
	case FifteenMinute:
		return "15m"
	case ThirtyMinute:
		return "30m"
	case OneHour:
		return "1h"
	case FourHour:
		return "4h"
	case TwelveHour:
		return "12h"
	case OneDay:
		return "1d"
	case OneWeek:
		return "1w"
	default:
		return "unknown"
	}
}

// Duration returns the time covered by one candle of the interval.
func (i *Interval) Duration() time.Duration {
	switch *i {
	case FifteenMinute:
		return time.Minute * 15
	case ThirtyMinute:
		return time.Minute * 30
	case OneHour:
		return time.Hour
	case FourHour:
		return time.Hour * 4
	case TwelveHour:
		return time.Hour * 12
	case OneDay:
		return time.Hour * 24
	case OneWeek:
		return time.Hour * 24 * 7
	default:
		return 0
	}
}

// Milliseconds returns the interval duration in epoch milliseconds.
func (i *Interval) Milliseconds() int64 {
	return i.Duration().Milliseconds()
}
