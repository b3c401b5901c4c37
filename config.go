package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dnldd/candledump/shared"
	"github.com/joho/godotenv"
)

// Config is the configuration struct for the tool.
type Config struct {
	// Symbols represents the symbols to fetch candle data for.
	Symbols []string
	// Resolution is the candle resolution (15m, 30m, 1h, 4h, 12h, 1d, 1w).
	Resolution string
	// StartDate is the inclusive start date of the requested range.
	StartDate string
	// EndDate is the inclusive end date of the requested range.
	EndDate string
	// OutputDir is the directory candle dumps are written to.
	OutputDir string
	// BaseURL is the binance api endpoint, defaulted when empty.
	BaseURL string

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if len(cfg.Symbols) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no symbols provided for dump service"))
	}
	if cfg.OutputDir == "" {
		errs = errors.Join(errs, fmt.Errorf("output directory cannot be an empty string"))
	}

	_, err := shared.ParseInterval(cfg.Resolution)
	if err != nil {
		errs = errors.Join(errs, err)
	}
	_, err = shared.ParseDate(cfg.StartDate)
	if err != nil {
		errs = errors.Join(errs, err)
	}
	_, err = shared.ParseDate(cfg.EndDate)
	if err != nil {
		errs = errors.Join(errs, err)
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// setDefaults applies fallback values for options left unset by both the
// environment and command line flags.
func (cfg *Config) setDefaults() {
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = []string{"BTC", "ETH"}
	}
	if cfg.Resolution == "" {
		cfg.Resolution = "1h"
	}
	if cfg.StartDate == "" {
		cfg.StartDate = "2020-01-01"
	}
	if cfg.EndDate == "" {
		cfg.EndDate = time.Now().UTC().Format("2006-01-02")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "crypto_data"
	}
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	err = cfg.registerFlag("symbols", &cfg.Symbols, "the symbols to fetch candle data for")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("resolution", &cfg.Resolution, "the candle resolution")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("startdate", &cfg.StartDate, "the inclusive range start date")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("enddate", &cfg.EndDate, "the inclusive range end date")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("outputdir", &cfg.OutputDir, "the output directory for candle dumps")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("baseurl", &cfg.BaseURL, "the binance api endpoint")
	if err != nil {
		return err
	}

	// Parse command-line flags.
	flag.Parse()

	cfg.setDefaults()

	return cfg.Validate()
}
