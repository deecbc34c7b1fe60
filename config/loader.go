package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/datastorm-nyc/ace-impact/geo"
)

var zeroBox geo.BoundingBox

// LoadAppConfig loads and validates the application configuration. The first
// readable path wins; with no arguments config.yml in the working directory
// is tried. A missing file yields the built-in defaults.
func LoadAppConfig(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}

	var cfg AppConfig
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, err
		}
	}
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Paths.RawDir == "" {
		cfg.Paths.RawDir = "data/raw"
	}
	if cfg.Paths.ResultsDir == "" {
		cfg.Paths.ResultsDir = "results"
	}
	if cfg.CutoffDate == "" {
		// Congestion pricing went live in the Manhattan CBD on this date.
		cfg.CutoffDate = "2025-01-05"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if len(cfg.Speeds.Files) == 0 {
		cfg.Speeds.Files = []string{
			"speeds_05_2024_to_08_2024.csv",
			"speeds_05_2025_to_08_2025.csv",
		}
	}
	if len(cfg.Speeds.ViolationFiles) == 0 {
		cfg.Speeds.ViolationFiles = []string{
			"ace_violations_05_2024_to_08_2024.csv",
			"ace_violations_05_2025_to_08_2025.csv",
		}
	}
	if cfg.Speeds.PreYear == "" {
		cfg.Speeds.PreYear = "2024"
	}
	if cfg.Speeds.PostYear == "" {
		cfg.Speeds.PostYear = "2025"
	}
	if cfg.Speeds.CampusFile == "" {
		cfg.Speeds.CampusFile = "cuny_campuses.csv"
	}
	if cfg.Speeds.CampusRadiusMeters == 0 {
		cfg.Speeds.CampusRadiusMeters = 750
	}

	if len(cfg.Violators.Files) == 0 {
		cfg.Violators.Files = []string{"ace_violations_raw.csv"}
	}
	if len(cfg.Violators.Routes) == 0 {
		cfg.Violators.Routes = []string{
			"M100", "M101", "M4", "M5", "BX19", "M66", "M98", "M102", "M103",
			"Q17", "Q20", "Q25", "Q44", "Q64", "Q88", "QM4", "M1", "M2", "M3",
			"M32", "M15", "S93", "S62",
		}
	}
	if len(cfg.Violators.ExemptKeywords) == 0 {
		cfg.Violators.ExemptKeywords = []string{
			"exempt", "emergency", "official", "police", "fire", "ambulance",
		}
	}
	if cfg.Violators.TopN == 0 {
		cfg.Violators.TopN = 50
	}

	if len(cfg.CBD.Files) == 0 {
		cfg.CBD.Files = []string{"ace_violations_raw.csv"}
	}
	if len(cfg.CBD.Routes) == 0 {
		cfg.CBD.Routes = []string{
			"M14A", "M14D", "M23", "M34A", "M34", "M42", "M57",
			"M15", "M2", "M3", "M4", "M5", "M6", "M7", "M8", "M9",
			"M20", "M21", "M101", "M103",
			"M15+", "M34+", "M23+", "M14+", "M60+", "M79+",
		}
	}
	if cfg.CBD.Zone == (zeroBox) {
		// Approximate Manhattan CBD: Houston St to 61st St, river to river.
		cfg.CBD.Zone.South = 40.7047
		cfg.CBD.Zone.North = 40.7614
		cfg.CBD.Zone.West = -74.0150
		cfg.CBD.Zone.East = -73.9441
	}

	if cfg.Socrata.Domain == "" {
		cfg.Socrata.Domain = "data.ny.gov"
	}
	if cfg.Socrata.Dataset == "" {
		cfg.Socrata.Dataset = "kh8p-hcbm"
	}
	if cfg.Socrata.RowLimit == 0 {
		cfg.Socrata.RowLimit = 100000
	}
}
