package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/datastorm-nyc/ace-impact/analysis"
	"github.com/datastorm-nyc/ace-impact/config"
	"github.com/datastorm-nyc/ace-impact/schema"
	"github.com/datastorm-nyc/ace-impact/socrata"
)

// downloadViolations pulls the violations dataset from the open-data API,
// keeps a raw CSV copy next to the other inputs, and normalizes the rows.
// This is CLI-specific ingestion; the analysis core only sees records.
func downloadViolations(ctx context.Context, cfg config.AppConfig, log zerolog.Logger) ([]schema.Record, error) {
	client := socrata.NewClient(cfg.Socrata.Domain, cfg.Socrata.AppToken)
	rows, err := client.Fetch(ctx, cfg.Socrata.Dataset, cfg.Socrata.RowLimit)
	if err != nil {
		return nil, err
	}
	log.Info().Int("rows", len(rows)).Str("dataset", cfg.Socrata.Dataset).Msg("downloaded violation records")

	rawPath := filepath.Join(cfg.Paths.RawDir, "ace_violations_raw.csv")
	if err := writeRawCSV(rawPath, rows); err != nil {
		log.Warn().Err(err).Str("file", rawPath).Msg("could not save raw copy")
	}

	res, err := schema.NormalizeMaps(rows, analysis.ViolatorMapping, cfg.Socrata.Dataset)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

func writeRawCSV(path string, rows []map[string]string) error {
	if len(rows) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}
	header := make([]string, 0, len(seen))
	for k := range seen {
		header = append(header, k)
	}
	sort.Strings(header)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for _, row := range rows {
		for i, k := range header {
			rec[i] = row[k]
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
