package config

import (
	"time"

	"github.com/datastorm-nyc/ace-impact/geo"
)

// PathsConfig locates input and output directories.
type PathsConfig struct {
	RawDir     string `yaml:"rawDir"`
	ResultsDir string `yaml:"resultsDir"`
}

// SocrataConfig describes the open-data source for violation downloads.
type SocrataConfig struct {
	Domain   string `yaml:"domain" validate:"omitempty,hostname"`
	Dataset  string `yaml:"dataset"`
	AppToken string `yaml:"appToken"`
	RowLimit int    `yaml:"rowLimit" validate:"gte=0"`
}

// SpeedsConfig drives the speed-trends analysis.
type SpeedsConfig struct {
	Files []string `yaml:"files"`
	// ViolationFiles supply the per-period ACE route sets for the
	// ACE-vs-non-ACE comparison.
	ViolationFiles []string `yaml:"violationFiles"`
	PreYear        string   `yaml:"preYear" validate:"omitempty,len=4,numeric"`
	PostYear       string   `yaml:"postYear" validate:"omitempty,len=4,numeric"`
	// CampusFile is optional; when absent the proximity tag is simply off.
	CampusFile         string  `yaml:"campusFile"`
	CampusRadiusMeters float64 `yaml:"campusRadiusMeters" validate:"gte=0"`
}

// ViolatorsConfig drives the repeat-violators analysis.
type ViolatorsConfig struct {
	Files          []string `yaml:"files"`
	Routes         []string `yaml:"routes"`
	ExemptKeywords []string `yaml:"exemptKeywords"`
	TopN           int      `yaml:"topN" validate:"gte=0"`
}

// CBDConfig drives the congestion-pricing impact analysis.
type CBDConfig struct {
	Files  []string        `yaml:"files"`
	Routes []string        `yaml:"routes"`
	Zone   geo.BoundingBox `yaml:"zone"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Paths PathsConfig `yaml:"paths"`
	// CutoffDate is the policy cutoff in YYYY-MM-DD; records at or after it
	// fall in the post cohort.
	CutoffDate string          `yaml:"cutoffDate" validate:"omitempty,datetime=2006-01-02"`
	Speeds     SpeedsConfig    `yaml:"speeds"`
	Violators  ViolatorsConfig `yaml:"violators"`
	CBD        CBDConfig       `yaml:"cbd"`
	Socrata    SocrataConfig   `yaml:"socrata"`
	LogLevel   string          `yaml:"logLevel"`
}

// Cutoff parses the configured cutoff date. Load validates the format, so
// this never fails after a successful Load.
func (c AppConfig) Cutoff() time.Time {
	t, _ := time.Parse("2006-01-02", c.CutoffDate)
	return t
}
