package store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnldd/candledump/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

func testCandles() []shared.Candle {
	return []shared.Candle{
		{
			OpenTime:            1672531200000,
			Open:                "16541.77000000",
			High:                "16545.70000000",
			Low:                 "16508.39000000",
			Close:               "16529.67000000",
			Volume:              "4364.83570000",
			CloseTime:           1672534799999,
			QuoteAssetVolume:    "72146293.58116430",
			NumberOfTrades:      104906,
			TakerBuyBaseVolume:  "2179.94270000",
			TakerBuyQuoteVolume: "36033266.01620920",
			Ignore:              "0",
			DayOfMonth:          1,
			HourOfDay:           0,
			DayOfYear:           1,
		},
		{
			OpenTime:            1672534800000,
			Open:                "16529.59000000",
			High:                "16556.80000000",
			Low:                 "16525.78000000",
			Close:               "16551.47000000",
			Volume:              "3590.00970000",
			CloseTime:           1672538399999,
			QuoteAssetVolume:    "59394119.83737430",
			NumberOfTrades:      91385,
			TakerBuyBaseVolume:  "1836.72010000",
			TakerBuyQuoteVolume: "30391402.63300210",
			Ignore:              "0",
			DayOfMonth:          1,
			HourOfDay:           1,
			DayOfYear:           1,
		},
	}
}

func setupStore(t *testing.T) *Store {
	logger := zerolog.New(nil)
	store, err := NewStore(&StoreConfig{
		OutputDir: t.TempDir(),
		Logger:    &logger,
	})
	assert.NoError(t, err)

	return store
}

func TestStoreWrite(t *testing.T) {
	store := setupStore(t)
	candles := testCandles()

	// Ensure the dump file is named by symbol and interval.
	path, err := store.Write("BTC", shared.OneHour, candles)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Base(path), "BTC_1h.json")

	_, err = os.Stat(path)
	assert.NoError(t, err)

	// Ensure no temporary files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	assert.NoError(t, err)
	assert.Equal(t, len(entries), 1)
}

func TestStoreRoundTrip(t *testing.T) {
	store := setupStore(t)
	candles := testCandles()

	path, err := store.Write("BTC", shared.OneHour, candles)
	assert.NoError(t, err)

	// Ensure reading the dump back yields field for field equal candles, with
	// decimal strings preserved exactly.
	loaded, err := Load(path)
	assert.NoError(t, err)

	if diff := cmp.Diff(candles, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreFieldOrder(t *testing.T) {
	store := setupStore(t)
	candles := testCandles()[:1]

	path, err := store.Write("BTC", shared.OneHour, candles)
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	// Ensure the serialized keys appear in the documented order.
	keys := []string{
		"open_time", "open", "high", "low", "close", "volume", "close_time",
		"quote_asset_volume", "number_of_trades", "taker_buy_base_volume",
		"taker_buy_quote_volume", "ignore", "day_of_month", "hour_of_day",
		"day_of_year",
	}

	last := -1
	for _, key := range keys {
		idx := bytes.Index(data, []byte(`"`+key+`"`))
		if idx == -1 {
			t.Fatalf("missing key %q in dump", key)
		}
		if idx < last {
			t.Fatalf("key %q out of order", key)
		}
		last = idx
	}
}

func TestNewStoreCreatesOutputDir(t *testing.T) {
	logger := zerolog.New(nil)
	dir := filepath.Join(t.TempDir(), "nested", "crypto_data")

	_, err := NewStore(&StoreConfig{
		OutputDir: dir,
		Logger:    &logger,
	})
	assert.NoError(t, err)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.Equal(t, info.IsDir(), true)
}
