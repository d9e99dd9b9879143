// Package aggregate accumulates per-URL processing times over a single
// pass of the extracted record stream.
package aggregate

import (
	"math"

	"github.com/tinytelemetry/urltop/internal/model"
)

// Table maps each URL to the times observed for it, in input order. It also
// tracks how many records were consumed and how many parsed successfully,
// which feeds the quality gate. URLs keep their first-seen order so later
// ranking can break ties deterministically.
type Table struct {
	times     map[string][]float64
	order     []string
	processed int
	parsed    int
}

// NewTable returns an empty aggregation table.
func NewTable() *Table {
	return &Table{times: make(map[string][]float64)}
}

// Add consumes one extraction result. Every call counts as one processed
// record; only ok records are stored and counted as parsed.
func (t *Table) Add(ext model.Extraction, ok bool) {
	t.processed++
	if !ok {
		return
	}
	t.parsed++
	if _, seen := t.times[ext.URL]; !seen {
		t.order = append(t.order, ext.URL)
	}
	t.times[ext.URL] = append(t.times[ext.URL], ext.Time)
}

// Processed returns the total number of records consumed.
func (t *Table) Processed() int { return t.processed }

// Parsed returns the number of records that matched the extraction pattern.
func (t *Table) Parsed() int { return t.parsed }

// ParsedShare returns parsed/processed rounded to 3 decimal places, or 0
// when nothing was processed.
func (t *Table) ParsedShare() float64 {
	if t.processed == 0 {
		return 0
	}
	return math.Round(float64(t.parsed)/float64(t.processed)*1000) / 1000
}

// URLs returns the distinct URLs in first-seen order.
func (t *Table) URLs() []string { return t.order }

// Times returns the observed times for url, in input order.
func (t *Table) Times(url string) []float64 { return t.times[url] }
