// Command footprint estimates the energy and carbon footprint of
// generative AI and machine translation usage.
//
// Usage:
//
//	# Estimate a single prompt interactively
//	footprint interactive
//
//	# Estimate a usage dataset and write a CSV report
//	footprint batch --input data/daily-analytics.yaml --output output/footprint_report.csv
//
//	# Recompute whenever the dataset changes
//	footprint batch --watch --json output/footprint_report.json
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ja7ad/genai-footprint/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log, lerr := logging.New(os.Stderr, "error", "console")
		if lerr != nil {
			log = zerolog.New(os.Stderr)
		}
		log.Error().Err(err).Msg("footprint failed")
		os.Exit(1)
	}
}
