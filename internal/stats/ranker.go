// Package stats ranks aggregated URLs by total processing time and computes
// the per-URL summary statistics that make up the report table.
package stats

import (
	"math"
	"sort"

	"github.com/tinytelemetry/urltop/internal/aggregate"
	"github.com/tinytelemetry/urltop/internal/model"
)

// Rank selects the k URLs with the greatest summed processing time and
// returns one URLStat row per URL, sorted by total time descending. The
// sort is stable over the table's first-seen order, so equal sums keep
// their original encounter order. When the table holds fewer than k URLs,
// all of them are returned.
//
// TimePerc and CountPerc are shares over the selected subset: summed across
// the result they come to 1.0 up to rounding.
func Rank(table *aggregate.Table, k int) []model.URLStat {
	urls := table.URLs()
	if len(urls) == 0 || k <= 0 {
		return nil
	}

	selected := make([]string, len(urls))
	copy(selected, urls)
	sums := make(map[string]float64, len(urls))
	for _, url := range urls {
		sums[url] = sum(table.Times(url))
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return sums[selected[i]] > sums[selected[j]]
	})
	if len(selected) > k {
		selected = selected[:k]
	}

	var totalTime float64
	var totalCount int
	for _, url := range selected {
		totalTime += sums[url]
		totalCount += len(table.Times(url))
	}

	rows := make([]model.URLStat, 0, len(selected))
	for _, url := range selected {
		times := table.Times(url)
		rows = append(rows, model.URLStat{
			URL:       url,
			Count:     len(times),
			TimeSum:   round3(sums[url]),
			TimeAvg:   round3(sums[url] / float64(len(times))),
			TimeMax:   maxTime(times),
			TimeMed:   median(times),
			TimePerc:  round3(sums[url] / totalTime),
			CountPerc: round3(float64(len(times)) / float64(totalCount)),
		})
	}
	return rows
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func maxTime(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// median uses the standard definition: the middle element of the sorted
// values, or the average of the two middle elements for even counts.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
