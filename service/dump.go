package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dnldd/candledump/fetch"
	"github.com/dnldd/candledump/shared"
	"github.com/dnldd/candledump/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// quoteAsset is the quote asset symbols are paired against.
	quoteAsset = "USDT"
)

// DumpConfig represents the configuration struct for the dump service.
type DumpConfig struct {
	// Symbols represents the symbols to fetch candle data for.
	Symbols []string
	// Interval represents the candle resolution.
	Interval shared.Interval
	// Start is the inclusive start of the requested range.
	Start time.Time
	// End is the inclusive end of the requested range.
	End time.Time
	// OutputDir is the directory candle dumps are written to.
	OutputDir string
	// BaseURL is the binance api endpoint, defaulted when empty.
	BaseURL string
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config sane inputs.
func (cfg *DumpConfig) Validate() error {
	var errs error

	if len(cfg.Symbols) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no symbols provided for dump service"))
	}
	if !cfg.Start.Before(cfg.End) {
		errs = errors.Join(errs, fmt.Errorf("start date must be before end date"))
	}
	if cfg.OutputDir == "" {
		errs = errors.Join(errs, fmt.Errorf("output directory cannot be an empty string"))
	}
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}

	return errs
}

// Dump represents a historical candle data dump service.
type Dump struct {
	cfg     *DumpConfig
	fetcher *fetch.Fetcher
	store   *store.Store
	logger  *zerolog.Logger
}

// NewDump initializes a new dump service.
func NewDump(cfg *DumpConfig) (*Dump, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating dump config: %w", err)
	}

	logger := log.With().Str("service", "dump").
		Str("job", uuid.New().String()).Logger()

	exchangeClient := fetch.NewBinanceClient(&fetch.BinanceConfig{
		BaseURL: cfg.BaseURL,
	})

	fetcherLogger := logger.With().Str("component", "fetcher").Logger()
	fetcher := fetch.NewFetcher(&fetch.FetcherConfig{
		ExchangeClient: exchangeClient,
		Logger:         &fetcherLogger,
	})

	storeLogger := logger.With().Str("component", "store").Logger()
	candleStore, err := store.NewStore(&store.StoreConfig{
		OutputDir: cfg.OutputDir,
		Logger:    &storeLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating candle store: %w", err)
	}

	service := &Dump{
		cfg:     cfg,
		fetcher: fetcher,
		store:   candleStore,
		logger:  &logger,
	}

	return service, nil
}

// pairSymbol returns the tradable pair for the provided symbol, assuming
// pairs trade against the quote asset.
func pairSymbol(symbol string) string {
	if strings.Contains(symbol, quoteAsset) {
		return symbol
	}

	return symbol + quoteAsset
}

// dumpSymbol fetches and persists candle data for the provided symbol.
func (d *Dump) dumpSymbol(ctx context.Context, symbol string) error {
	rng, err := shared.NewRange(pairSymbol(symbol), d.cfg.Interval, d.cfg.Start, d.cfg.End)
	if err != nil {
		return fmt.Errorf("creating range for %s: %w", symbol, err)
	}

	candles, err := d.fetcher.FetchRange(ctx, rng)
	if err != nil {
		return err
	}

	d.logger.Info().Msgf("total fetched %d records for %s", len(candles), symbol)

	_, err = d.store.Write(symbol, d.cfg.Interval, candles)
	if err != nil {
		return err
	}

	return nil
}

// Run handles the lifecycle processes of the dump service.
//
// Symbols are processed sequentially with one request in flight at a time. A
// failing symbol is logged and skipped so the remaining symbols still get
// dumped; the joined per-symbol errors are returned once all symbols are
// processed.
func (d *Dump) Run(ctx context.Context) error {
	defer d.cfg.Cancel()

	var errs error
	for _, symbol := range d.cfg.Symbols {
		select {
		case <-ctx.Done():
			return errors.Join(errs, ctx.Err())
		default:
		}

		d.logger.Info().Msgf("fetching data for %s", symbol)

		err := d.dumpSymbol(ctx, symbol)
		if err != nil {
			d.logger.Error().Msgf("failed to fetch data for %s: %v", symbol, err)
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
