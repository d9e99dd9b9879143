package analyzer

import (
	"errors"
	"fmt"

	"github.com/tinytelemetry/urltop/internal/aggregate"
)

// Run-terminating outcomes. They stop the run without a report, but they
// are expected conditions, not failures: the CLI logs a diagnostic and
// exits cleanly.
var (
	// ErrNoLogFile means the log directory holds no file matching the
	// rotation pattern.
	ErrNoLogFile = errors.New("no log file to analyze")

	// ErrLowQuality means too few lines parsed successfully to trust the
	// result. Wrapped instances carry the observed share.
	ErrLowQuality = errors.New("parsed share below threshold")

	// ErrReportExists means the report for the resolved date was already
	// generated on a previous run.
	ErrReportExists = errors.New("report already exists")
)

// evaluateQuality checks the parsed share of the table against threshold.
// An empty file aborts too: with zero processed lines there is nothing to
// report. A share exactly equal to the threshold passes.
func evaluateQuality(table *aggregate.Table, threshold float64) (float64, error) {
	if table.Processed() == 0 {
		return 0, fmt.Errorf("%w: no records processed", ErrLowQuality)
	}
	share := table.ParsedShare()
	if share < threshold {
		return share, fmt.Errorf("%w: %.3f < %.3f, check that the log format matches the extraction pattern",
			ErrLowQuality, share, threshold)
	}
	return share, nil
}
