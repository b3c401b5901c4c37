package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dnldd/candledump/shared"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// StoreConfig represents the configuration for the candle store.
type StoreConfig struct {
	// OutputDir is the directory candle dumps are written to.
	OutputDir string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Store persists candle dumps as json files, one per symbol/interval pair.
type Store struct {
	cfg *StoreConfig
}

// Ensure the store implements the CandleWriter interface.
var _ shared.CandleWriter = (*Store)(nil)

// NewStore initializes a new candle store.
func NewStore(cfg *StoreConfig) (*Store, error) {
	err := os.MkdirAll(cfg.OutputDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("creating output directory '%s': %w", cfg.OutputDir, err)
	}

	return &Store{
		cfg: cfg,
	}, nil
}

// FilePath returns the dump file path for the provided symbol/interval pair.
func (s *Store) FilePath(symbol string, interval shared.Interval) string {
	return filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%s_%s.json", symbol, interval.String()))
}

// Write persists the provided ordered candles for a symbol/interval pair.
//
// The dump is written to a temporary file and renamed into place so a failed
// run never leaves a truncated file behind.
func (s *Store) Write(symbol string, interval shared.Interval, candles []shared.Candle) (string, error) {
	data, err := json.MarshalIndent(candles, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshalling %d candles for %s (%s): %w",
			len(candles), symbol, interval.String(), err)
	}

	path := s.FilePath(symbol, interval)
	tmp, err := os.CreateTemp(s.cfg.OutputDir, fmt.Sprintf("%s_%s-*.tmp", symbol, interval.String()))
	if err != nil {
		return "", fmt.Errorf("creating temporary dump file for %s: %w", symbol, err)
	}

	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing dump file for %s (%s): %w", symbol, interval.String(), err)
	}

	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing dump file for %s (%s): %w", symbol, interval.String(), err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("renaming dump file for %s (%s): %w", symbol, interval.String(), err)
	}

	s.cfg.Logger.Info().Msgf("data saved to %s", path)

	return path, nil
}

// Load reads a candle dump back from the provided file path.
func Load(path string) ([]shared.Candle, error) {
	readb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candle dump from file with path '%s': %w", path, err)
	}

	rows := gjson.ParseBytes(readb).Array()
	candles := make([]shared.Candle, 0, len(rows))

	for idx := range rows {
		row := rows[idx]
		candles = append(candles, shared.Candle{
			OpenTime:            row.Get("open_time").Int(),
			Open:                row.Get("open").String(),
			High:                row.Get("high").String(),
			Low:                 row.Get("low").String(),
			Close:               row.Get("close").String(),
			Volume:              row.Get("volume").String(),
			CloseTime:           row.Get("close_time").Int(),
			QuoteAssetVolume:    row.Get("quote_asset_volume").String(),
			NumberOfTrades:      row.Get("number_of_trades").Int(),
			TakerBuyBaseVolume:  row.Get("taker_buy_base_volume").String(),
			TakerBuyQuoteVolume: row.Get("taker_buy_quote_volume").String(),
			Ignore:              row.Get("ignore").String(),
			DayOfMonth:          int(row.Get("day_of_month").Int()),
			HourOfDay:           int(row.Get("hour_of_day").Int()),
			DayOfYear:           int(row.Get("day_of_year").Int()),
		})
	}

	return candles, nil
}
