package shared

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
)

// KlineFetcher defines the requirements for fetching raw kline data.
type KlineFetcher interface {
	// FetchKlines fetches a bounded page of raw kline rows for a symbol.
	FetchKlines(ctx context.Context, symbol string, interval Interval, start time.Time, end time.Time, limit int) ([]gjson.Result, error)
}

// CandleWriter defines the requirements for persisting candle dumps.
type CandleWriter interface {
	// Write persists the provided ordered candles for a symbol/interval pair.
	Write(symbol string, interval Interval, candles []Candle) (string, error)
}
