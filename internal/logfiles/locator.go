// Package logfiles discovers rotated access logs in a directory and picks
// the one with the most recent date embedded in its filename.
package logfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/tinytelemetry/urltop/internal/model"
)

// DefaultPattern matches rotated nginx ui access logs, plain or gzipped.
// The date group carries the yyyymmdd rotation date.
const DefaultPattern = `^nginx-access-ui\.log-(?P<date>\d{8})(\.gz)?$`

const dateLayout = "20060102"

// CompilePattern compiles a log filename pattern and verifies it exposes a
// `date` named group.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return nil, fmt.Errorf("logfiles: compile pattern: %w", err)
	}
	if re.SubexpIndex("date") < 0 {
		return nil, fmt.Errorf("logfiles: pattern %q lacks a `date` named group", pattern)
	}
	return re, nil
}

// FindLatest scans dir for filenames matching re and returns the file whose
// embedded date is maximal. found is false when no filename matches. A
// matching filename whose date token does not parse as yyyymmdd is a
// configuration error, not a skip: it means the pattern captured something
// that is not a date.
func FindLatest(dir string, re *regexp.Regexp) (latest model.LogFile, found bool, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return model.LogFile{}, false, fmt.Errorf("logfiles: read dir: %w", err)
	}

	dateIdx := re.SubexpIndex("date")
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		date, err := time.Parse(dateLayout, m[dateIdx])
		if err != nil {
			return model.LogFile{}, false, fmt.Errorf("logfiles: bad date token in %q: %w", entry.Name(), err)
		}
		if !found || date.After(latest.Date) {
			latest = model.LogFile{Path: filepath.Join(dir, entry.Name()), Date: date}
			found = true
		}
	}
	return latest, found, nil
}
