package shared

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// klineFieldCount is the number of fields in a raw kline row.
	klineFieldCount = 12
)

// Candle represents a unit candle for a symbol. Prices and volumes are kept
// as the exchange's decimal strings to avoid floating point rounding.
type Candle struct {
	OpenTime            int64  `json:"open_time"`
	Open                string `json:"open"`
	High                string `json:"high"`
	Low                 string `json:"low"`
	Close               string `json:"close"`
	Volume              string `json:"volume"`
	CloseTime           int64  `json:"close_time"`
	QuoteAssetVolume    string `json:"quote_asset_volume"`
	NumberOfTrades      int64  `json:"number_of_trades"`
	TakerBuyBaseVolume  string `json:"taker_buy_base_volume"`
	TakerBuyQuoteVolume string `json:"taker_buy_quote_volume"`
	Ignore              string `json:"ignore"`

	// Derived calendar fields, computed from the open time interpreted as UTC.
	DayOfMonth int `json:"day_of_month"`
	HourOfDay  int `json:"hour_of_day"`
	DayOfYear  int `json:"day_of_year"`
}

// deriveCalendarFields sets the candle's calendar fields from its open time.
func (c *Candle) deriveCalendarFields() {
	openTime := time.UnixMilli(c.OpenTime).UTC()
	c.DayOfMonth = openTime.Day()
	c.HourOfDay = openTime.Hour()
	c.DayOfYear = openTime.YearDay()
}

// ParseCandle parses a candle from the provided raw kline row.
func ParseCandle(row gjson.Result) (Candle, error) {
	fields := row.Array()
	if len(fields) < klineFieldCount {
		return Candle{}, fmt.Errorf("malformed kline row: expected %d fields, got %d",
			klineFieldCount, len(fields))
	}

	candle := Candle{
		OpenTime:            fields[0].Int(),
		Open:                fields[1].String(),
		High:                fields[2].String(),
		Low:                 fields[3].String(),
		Close:               fields[4].String(),
		Volume:              fields[5].String(),
		CloseTime:           fields[6].Int(),
		QuoteAssetVolume:    fields[7].String(),
		NumberOfTrades:      fields[8].Int(),
		TakerBuyBaseVolume:  fields[9].String(),
		TakerBuyQuoteVolume: fields[10].String(),
		Ignore:              fields[11].String(),
	}
	candle.deriveCalendarFields()

	return candle, nil
}

// ParseCandles parses candles from the provided raw kline rows.
func ParseCandles(rows []gjson.Result) ([]Candle, error) {
	candles := make([]Candle, 0, len(rows))

	for idx := range rows {
		candle, err := ParseCandle(rows[idx])
		if err != nil {
			return nil, fmt.Errorf("parsing kline row %d: %w", idx, err)
		}

		candles = append(candles, candle)
	}

	return candles, nil
}
