package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dnldd/candledump/shared"
	"github.com/tidwall/gjson"
)

const (
	// defaultBaseURL is the default binance api endpoint.
	defaultBaseURL = "https://api.binance.com"
	// klinesPath is the spot market kline data path.
	klinesPath = "/api/v3/klines"
)

// BinanceConfig represents the configuration for the binance client.
type BinanceConfig struct {
	// BaseURL is the binance api endpoint.
	BaseURL string
}

// BinanceClient represents the binance market data api client.
type BinanceClient struct {
	cfg   *BinanceConfig
	httpc http.Client
	buf   *bytes.Buffer
}

// Ensure the BinanceClient implements the KlineFetcher interface.
var _ shared.KlineFetcher = (*BinanceClient)(nil)

// NewBinanceClient instantiates a new binance client.
func NewBinanceClient(cfg *BinanceConfig) *BinanceClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return &BinanceClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: time.Second * 15},
		buf:   bytes.NewBuffer(make([]byte, 0, 512)),
	}
}

// formURL creates full urls including parameters for the api.
func (c *BinanceClient) formURL(path string, params string) string {
	c.buf.WriteString(c.cfg.BaseURL)
	c.buf.WriteString(path)
	c.buf.WriteString("?")
	c.buf.WriteString(params)
	url := c.buf.String()
	c.buf.Reset()

	return url
}

// FetchKlines fetches a bounded page of raw kline rows for a symbol.
func (c *BinanceClient) FetchKlines(ctx context.Context, symbol string, interval shared.Interval, start time.Time, end time.Time, limit int) ([]gjson.Result, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("interval", interval.String())
	params.Add("startTime", strconv.FormatInt(start.UnixMilli(), 10))
	if !end.IsZero() {
		params.Add("endTime", strconv.FormatInt(end.UnixMilli(), 10))
	}
	params.Add("limit", strconv.Itoa(limit))

	formedURL := c.formURL(klinesPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, formedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating kline request for %s: %w", symbol, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching klines (%s) for %s starting at %d: %w",
			interval.String(), symbol, start.UnixMilli(), err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching klines (%s) for %s starting at %d: status %d: %s",
			interval.String(), symbol, start.UnixMilli(), resp.StatusCode, string(body))
	}

	data := gjson.ParseBytes(body).Array()

	return data, nil
}
