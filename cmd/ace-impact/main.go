package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/datastorm-nyc/ace-impact/analysis"
	"github.com/datastorm-nyc/ace-impact/config"
	"github.com/datastorm-nyc/ace-impact/logging"
	"github.com/datastorm-nyc/ace-impact/schema"
)

func main() {
	which := flag.String("analysis", "speeds", "speeds|violators|cbd")
	cfgPath := flag.String("config", "config.yml", "path to config.yml")
	outDir := flag.String("out", "", "results directory (overrides config)")
	download := flag.Bool("download", false, "violators: fetch violations from the open-data API instead of local files")
	flag.Parse()

	cfg, err := config.LoadAppConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Paths.ResultsDir = *outDir
	}
	log := logging.New(cfg.LogLevel)

	switch *which {
	case "speeds":
		result, err := analysis.SpeedTrends(cfg, log)
		if err != nil {
			log.Error().Err(err).Msg("speed trends failed")
			os.Exit(1)
		}
		if err := result.Write(cfg.Paths.ResultsDir); err != nil {
			log.Error().Err(err).Msg("writing results failed")
			os.Exit(1)
		}
	case "violators":
		var records []schema.Record
		source := "local"
		if *download {
			records, err = downloadViolations(context.Background(), cfg, log)
			if err != nil {
				log.Error().Err(err).Msg("download failed")
				os.Exit(1)
			}
			source = cfg.Socrata.Domain + "/" + cfg.Socrata.Dataset
		} else {
			records = analysis.LoadViolatorRecords(cfg, log)
		}
		result, err := analysis.RepeatViolators(cfg, log, records, source)
		if err != nil {
			log.Error().Err(err).Msg("repeat violators failed")
			os.Exit(1)
		}
		if err := result.Write(cfg.Paths.ResultsDir); err != nil {
			log.Error().Err(err).Msg("writing results failed")
			os.Exit(1)
		}
	case "cbd":
		result, err := analysis.CBDImpact(cfg, log)
		if err != nil {
			log.Error().Err(err).Msg("cbd impact failed")
			os.Exit(1)
		}
		if err := result.Write(cfg.Paths.ResultsDir); err != nil {
			log.Error().Err(err).Msg("writing results failed")
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown analysis %q (want speeds, violators or cbd)\n", *which)
		os.Exit(2)
	}

	log.Info().Str("results", cfg.Paths.ResultsDir).Msg("analysis complete")
}
