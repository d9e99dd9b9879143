// Package extract pulls the requested URL and the request processing time
// out of a single access-log line.
package extract

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tinytelemetry/urltop/internal/model"
)

// DefaultPattern matches the ui_short nginx log format: the quoted GET
// request token, then the $request_time value at line end with exactly
// three fractional digits.
const DefaultPattern = `"GET (?P<url>.+?) HTTP/1\.1"\s.*?(?P<time>\d+\.\d{3})$`

// Extractor applies a fixed extraction pattern to log lines. The pattern
// must expose `url` and `time` named groups.
type Extractor struct {
	re      *regexp.Regexp
	urlIdx  int
	timeIdx int
}

// New compiles pattern (case-insensitively) and validates its named groups.
func New(pattern string) (*Extractor, error) {
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return nil, fmt.Errorf("extract: compile pattern: %w", err)
	}
	e := &Extractor{
		re:      re,
		urlIdx:  re.SubexpIndex("url"),
		timeIdx: re.SubexpIndex("time"),
	}
	if e.urlIdx < 0 || e.timeIdx < 0 {
		return nil, fmt.Errorf("extract: pattern %q must name `url` and `time` groups", pattern)
	}
	return e, nil
}

// Extract attempts a match against one line. Every line yields exactly one
// result:
//
//   - a structural match with a parseable time returns (extraction, true, nil);
//   - a line that does not match at all returns ok=false with a nil error —
//     the caller counts it and moves on;
//   - a structural match whose time group does not parse is an error: the
//     format assumption is broken and continuing would be misleading.
func (e *Extractor) Extract(line string) (model.Extraction, bool, error) {
	m := e.re.FindStringSubmatch(line)
	if m == nil {
		return model.Extraction{}, false, nil
	}
	t, err := strconv.ParseFloat(m[e.timeIdx], 64)
	if err != nil {
		return model.Extraction{}, false, fmt.Errorf("extract: time field %q: %w", m[e.timeIdx], err)
	}
	if t < 0 {
		return model.Extraction{}, false, fmt.Errorf("extract: negative time field %q", m[e.timeIdx])
	}
	return model.Extraction{URL: m[e.urlIdx], Time: t}, true, nil
}
