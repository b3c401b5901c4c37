package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/candledump/shared"
	"github.com/rs/zerolog"
)

const (
	// maxPageSize is the maximum number of klines returned per api call.
	maxPageSize = 1000
)

// FetcherConfig represents the configuration for the fetcher.
type FetcherConfig struct {
	// ExchangeClient represents the market data exchange client.
	ExchangeClient shared.KlineFetcher
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Fetcher paginates through a symbol's historical candle data.
type Fetcher struct {
	cfg *FetcherConfig
}

// NewFetcher initializes a new fetcher.
func NewFetcher(cfg *FetcherConfig) *Fetcher {
	return &Fetcher{
		cfg: cfg,
	}
}

// FetchRange fetches the ordered candle sequence spanning the provided range.
//
// Pages are requested starting at the range start, and the cursor advances to
// the last returned open time plus one interval. Using the exchange's own last
// record rather than a locally computed offset keeps pagination correct when
// the exchange skips intervals for low liquidity pairs. Candles are strictly
// ascending in open time with no duplicates.
func (f *Fetcher) FetchRange(ctx context.Context, rng *shared.Range) ([]shared.Candle, error) {
	err := rng.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating range: %w", err)
	}

	candles := make([]shared.Candle, 0, maxPageSize)
	lastOpenTime := int64(-1)
	cursor := rng.Start

	for !cursor.After(rng.End) {
		rows, err := f.cfg.ExchangeClient.FetchKlines(ctx, rng.Symbol, rng.Interval,
			cursor, rng.End, maxPageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching %s (%s) page starting at %d: %w",
				rng.Symbol, rng.Interval.String(), cursor.UnixMilli(), err)
		}

		if len(rows) == 0 {
			break
		}

		page, err := shared.ParseCandles(rows)
		if err != nil {
			f.cfg.Logger.Error().Msgf("malformed kline page for %s: %s",
				rng.Symbol, spew.Sdump(rows))
			return nil, fmt.Errorf("parsing %s (%s) page starting at %d: %w",
				rng.Symbol, rng.Interval.String(), cursor.UnixMilli(), err)
		}

		var appended int
		for idx := range page {
			// Skip records at or before the last seen open time to keep the
			// sequence strictly ascending with no duplicates.
			if page[idx].OpenTime <= lastOpenTime {
				continue
			}

			candles = append(candles, page[idx])
			lastOpenTime = page[idx].OpenTime
			appended++
		}

		if appended == 0 {
			// A page of entirely already seen records cannot advance the
			// cursor any further.
			break
		}

		f.cfg.Logger.Info().Msgf("fetched %d records for %s", len(rows), rng.Symbol)

		cursor = time.UnixMilli(lastOpenTime + rng.Interval.Milliseconds()).UTC()

		if len(rows) < maxPageSize {
			// A short page marks the end of the available data.
			break
		}
	}

	return candles, nil
}
