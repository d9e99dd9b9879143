// Package analyzer wires the full log analysis pipeline: locate the latest
// log, stream its lines, extract (url, time) pairs, aggregate them, check
// data quality and rank the slowest URLs.
package analyzer

import (
	"fmt"

	"github.com/tinytelemetry/urltop/internal/aggregate"
	"github.com/tinytelemetry/urltop/internal/extract"
	"github.com/tinytelemetry/urltop/internal/linestream"
	"github.com/tinytelemetry/urltop/internal/logfiles"
	"github.com/tinytelemetry/urltop/internal/model"
	"github.com/tinytelemetry/urltop/internal/stats"
)

// ProgressFunc observes streaming progress. done is the number of lines
// consumed so far, total the pre-counted line total.
type ProgressFunc func(done, total int)

// Params configures one analysis run. FilePattern and LinePattern fall back
// to the package defaults when empty.
type Params struct {
	LogDir         string
	ReportSize     int     // top-K truncation bound, must be positive
	MinParsedShare float64 // quality threshold in [0, 1]
	FilePattern    string
	LinePattern    string

	// ProgressEvery > 0 with a non-nil Progress enables progress
	// observation; it costs an extra pre-counting pass over the file.
	ProgressEvery int
	Progress      ProgressFunc
}

func (p Params) validate() error {
	if p.ReportSize <= 0 {
		return fmt.Errorf("analyzer: report size must be positive, got %d", p.ReportSize)
	}
	if p.MinParsedShare < 0 || p.MinParsedShare > 1 {
		return fmt.Errorf("analyzer: min parsed share must be in [0, 1], got %g", p.MinParsedShare)
	}
	return nil
}

// Run executes the pipeline once and returns the finished report table.
// ErrNoLogFile and ErrLowQuality are expected nothing-to-report outcomes;
// any other error is fatal.
func Run(params Params) (model.Report, error) {
	if err := params.validate(); err != nil {
		return model.Report{}, err
	}

	filePattern := params.FilePattern
	if filePattern == "" {
		filePattern = logfiles.DefaultPattern
	}
	fileRe, err := logfiles.CompilePattern(filePattern)
	if err != nil {
		return model.Report{}, err
	}

	linePattern := params.LinePattern
	if linePattern == "" {
		linePattern = extract.DefaultPattern
	}
	extractor, err := extract.New(linePattern)
	if err != nil {
		return model.Report{}, err
	}

	logFile, found, err := logfiles.FindLatest(params.LogDir, fileRe)
	if err != nil {
		return model.Report{}, err
	}
	if !found {
		return model.Report{}, ErrNoLogFile
	}

	table, err := consume(logFile.Path, extractor, params)
	if err != nil {
		return model.Report{}, err
	}

	share, err := evaluateQuality(table, params.MinParsedShare)
	if err != nil {
		return model.Report{}, err
	}

	return model.Report{
		Date:        logFile.Date,
		Source:      logFile.Path,
		Processed:   table.Processed(),
		Parsed:      table.Parsed(),
		ParsedShare: share,
		Rows:        stats.Rank(table, params.ReportSize),
	}, nil
}

// Locate returns the latest log file without running the pipeline, so the
// caller can resolve the report date (and skip the run when that report
// already exists) before any parsing starts.
func Locate(logDir, filePattern string) (model.LogFile, error) {
	if filePattern == "" {
		filePattern = logfiles.DefaultPattern
	}
	re, err := logfiles.CompilePattern(filePattern)
	if err != nil {
		return model.LogFile{}, err
	}
	logFile, found, err := logfiles.FindLatest(logDir, re)
	if err != nil {
		return model.LogFile{}, err
	}
	if !found {
		return model.LogFile{}, ErrNoLogFile
	}
	return logFile, nil
}

// consume streams the file once, feeding every line through the extractor
// into a fresh aggregation table.
func consume(path string, extractor *extract.Extractor, params Params) (*aggregate.Table, error) {
	total := 0
	if params.Progress != nil && params.ProgressEvery > 0 {
		n, err := linestream.CountLines(path)
		if err != nil {
			return nil, err
		}
		total = n
	}

	stream, err := linestream.Open(path)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	table := aggregate.NewTable()
	done := 0
	for stream.Scan() {
		ext, ok, err := extractor.Extract(stream.Text())
		if err != nil {
			// The line matched structurally but its time field is
			// broken: the format assumption no longer holds.
			return nil, err
		}
		table.Add(ext, ok)

		done++
		if total > 0 && done%params.ProgressEvery == 0 {
			params.Progress(done, total)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("analyzer: read %s: %w", path, err)
	}
	return table, nil
}
