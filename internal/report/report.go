// Package report renders the finished statistics table into a static HTML
// report file named after the log date.
package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/tinytelemetry/urltop/internal/model"
)

//go:embed template/report.html
var reportTemplate string

const fileMode = 0644

// Path returns the report filename for a log date, e.g.
// reports/report-2022.01.12.html.
func Path(dir string, date time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("report-%s.html", date.Format("2006.01.02")))
}

// Exists reports whether a report file is already present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Write renders rows into the embedded template and writes the result to
// path. The table is substituted as a JSON array the page's script sorts
// and paginates client-side.
func Write(path string, rows []model.URLStat) error {
	tableJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("report: marshal table: %w", err)
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("report: parse template: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("report: create: %w", err)
	}
	if err := tmpl.Execute(f, map[string]any{"TableJSON": string(tableJSON)}); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: render: %w", err)
	}
	return f.Close()
}
