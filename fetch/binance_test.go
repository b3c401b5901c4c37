package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dnldd/candledump/shared"
	"github.com/peterldowns/testy/assert"
)

const klinePage = `[[1672531200000,"16541.77000000","16545.70000000","16508.39000000",` +
	`"16529.67000000","4364.83570000",1672534799999,"72146293.58116430",104906,` +
	`"2179.94270000","36033266.01620920","0"]]`

func TestBinanceClientFormURL(t *testing.T) {
	// Ensure the binance client can be created.
	cfg := &BinanceConfig{
		BaseURL: "http://base",
	}

	bc := NewBinanceClient(cfg)

	// Ensure urls can be formed accurately.
	params := url.Values{}
	params.Add("a", "bbb")
	params.Add("b", "ccc")

	path := "/path"
	formedUrl := bc.formURL(path, params.Encode())
	assert.Equal(t, formedUrl, "http://base/path?a=bbb&b=ccc")

	// Ensure the base url is defaulted when unset.
	bc = NewBinanceClient(&BinanceConfig{})
	formedUrl = bc.formURL(path, params.Encode())
	assert.Equal(t, formedUrl, "https://api.binance.com/path?a=bbb&b=ccc")
}

func TestBinanceClientFetchKlines(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(klinePage))
	}))
	defer server.Close()

	bc := NewBinanceClient(&BinanceConfig{BaseURL: server.URL})

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	// Ensure kline rows can be fetched and the request carries the expected
	// parameters.
	rows, err := bc.FetchKlines(context.Background(), "BTCUSDT", shared.OneHour, start, end, 1000)
	assert.NoError(t, err)
	assert.Equal(t, len(rows), 1)
	assert.Equal(t, gotQuery.Get("symbol"), "BTCUSDT")
	assert.Equal(t, gotQuery.Get("interval"), "1h")
	assert.Equal(t, gotQuery.Get("startTime"), "1672531200000")
	assert.Equal(t, gotQuery.Get("endTime"), "1672617600000")
	assert.Equal(t, gotQuery.Get("limit"), "1000")

	candles, err := shared.ParseCandles(rows)
	assert.NoError(t, err)
	assert.Equal(t, candles[0].Open, "16541.77000000")

	// Ensure the end time parameter is omitted for open ended fetches.
	_, err = bc.FetchKlines(context.Background(), "BTCUSDT", shared.OneHour, start, time.Time{}, 1000)
	assert.NoError(t, err)
	assert.Equal(t, gotQuery.Get("endTime"), "")
}

func TestBinanceClientFetchKlinesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":-1121,"msg":"Invalid symbol."}`, http.StatusBadRequest)
	}))
	defer server.Close()

	bc := NewBinanceClient(&BinanceConfig{BaseURL: server.URL})

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	// Ensure a non-ok status surfaces an error naming the symbol and the
	// failing request's start timestamp.
	_, err := bc.FetchKlines(context.Background(), "NOPEUSDT", shared.OneHour, start, time.Time{}, 1000)
	assert.Error(t, err)
	if !strings.Contains(err.Error(), "NOPEUSDT") {
		t.Errorf("expected error to name the symbol, got %v", err)
	}
	if !strings.Contains(err.Error(), "1672531200000") {
		t.Errorf("expected error to name the page start timestamp, got %v", err)
	}

	// Ensure a transport failure surfaces an error.
	server.Close()
	_, err = bc.FetchKlines(context.Background(), "BTCUSDT", shared.OneHour, start, time.Time{}, 1000)
	assert.Error(t, err)
}
