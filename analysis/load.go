package analysis

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/datastorm-nyc/ace-impact/geo"
	"github.com/datastorm-nyc/ace-impact/schema"
)

// ErrNoUsableInput terminates a run: every input file was missing or had an
// unresolvable schema.
var ErrNoUsableInput = errors.New("no usable input files")

func resolvePath(dir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// loadAll normalizes each listed file. A file that is absent or whose schema
// cannot be resolved is skipped with a logged reason; the run continues on
// the remaining files.
func loadAll(dir string, files []string, m schema.Mapping, log zerolog.Logger) (records []schema.Record, used, skipped []string, droppedRows int) {
	for _, file := range files {
		path := resolvePath(dir, file)
		res, err := schema.NormalizeCSVFile(path, m)
		if err != nil {
			log.Warn().Str("file", path).Err(err).Msg("skipping input file")
			skipped = append(skipped, file)
			continue
		}
		log.Info().Str("file", file).Int("records", len(res.Records)).
			Int("dropped_rows", res.DroppedRows).Msg("loaded input file")
		records = append(records, res.Records...)
		used = append(used, file)
		droppedRows += res.DroppedRows
	}
	return records, used, skipped, droppedRows
}

// loadCampuses reads the optional campus reference file. A missing file
// turns the proximity feature off rather than failing the run.
func loadCampuses(path string, log zerolog.Logger) []geo.Point {
	if _, err := os.Stat(path); err != nil {
		log.Info().Str("file", path).Msg("campus file absent; proximity tagging off")
		return nil
	}
	res, err := schema.NormalizeCSVFile(path, CampusMapping)
	if err != nil {
		log.Warn().Str("file", path).Err(err).Msg("campus file unusable; proximity tagging off")
		return nil
	}
	var points []geo.Point
	for _, rec := range res.Records {
		if !rec.HasCoord {
			continue
		}
		points = append(points, geo.Point{
			Name:      rec.Key,
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
		})
	}
	return points
}
