package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/dnldd/candledump/service"
	"github.com/dnldd/candledump/shared"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	interval, err := shared.ParseInterval(cfg.Resolution)
	if err != nil {
		log.Printf("parsing resolution: %v", err)
		return
	}

	start, err := shared.ParseDate(cfg.StartDate)
	if err != nil {
		log.Printf("parsing start date: %v", err)
		return
	}

	end, err := shared.ParseDate(cfg.EndDate)
	if err != nil {
		log.Printf("parsing end date: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dumpCfg := service.DumpConfig{
		Symbols:   cfg.Symbols,
		Interval:  interval,
		Start:     start,
		End:       end,
		OutputDir: cfg.OutputDir,
		BaseURL:   cfg.BaseURL,
		Cancel:    cancel,
	}
	dump, err := service.NewDump(&dumpCfg)
	if err != nil {
		log.Printf("creating dump service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	err = dump.Run(ctx)
	if err != nil {
		os.Exit(1)
	}
}
