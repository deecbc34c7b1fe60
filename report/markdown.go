package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datastorm-nyc/ace-impact/aggregate"
)

// Markdown accumulates a narrative report.
type Markdown struct {
	b strings.Builder
}

// NewMarkdown starts a report with a top-level title.
func NewMarkdown(title string) *Markdown {
	m := &Markdown{}
	m.b.WriteString("# " + title + "\n")
	return m
}

// Section adds a second-level heading.
func (m *Markdown) Section(title string) *Markdown {
	m.b.WriteString("\n## " + title + "\n\n")
	return m
}

// Line adds a paragraph line.
func (m *Markdown) Line(format string, args ...any) *Markdown {
	fmt.Fprintf(&m.b, format, args...)
	m.b.WriteByte('\n')
	return m
}

// Metric adds a labeled value line, rendering absent values explicitly
// rather than as zero.
func (m *Markdown) Metric(label string, v aggregate.NullFloat, unit string) *Markdown {
	if !v.Valid {
		return m.Line("%s: %s", label, NotComputable)
	}
	return m.Line("%s: %.2f %s", label, v.Float64, unit)
}

// ComparisonTable renders a comparison as a Markdown table, keeping only the
// first n rows.
func (m *Markdown) ComparisonTable(keyHeader string, c aggregate.Comparison, n int) *Markdown {
	m.b.WriteString("\n| " + keyHeader + " | Pre | Post | Delta | Change % |\n")
	m.b.WriteString("|---|---|---|---|---|\n")
	for i, row := range c.Rows {
		if n > 0 && i >= n {
			break
		}
		fmt.Fprintf(&m.b, "| %s | %s | %s | %s | %s |\n",
			row.Key,
			row.Pre.Format(2, "N/A"),
			row.Post.Format(2, "N/A"),
			row.Delta.Format(2, NotComputable),
			row.PercentChange.Format(1, NotComputable),
		)
	}
	return m
}

// String returns the rendered document.
func (m *Markdown) String() string {
	return m.b.String()
}

// Write saves the document to disk.
func (m *Markdown) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(m.String()), 0o644)
}
