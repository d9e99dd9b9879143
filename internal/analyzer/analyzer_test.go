package analyzer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func logLine(url string, seconds float64) string {
	return fmt.Sprintf(`1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET %s HTTP/1.1" 200 927 "-" "Lynx/2.8.8dev.9" "-" "-" "-" %.3f`, url, seconds)
}

func writeLog(t *testing.T, name string, lines []string) string {
	t.Helper()
	dir := t.TempDir()
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return dir
}

func TestRun_FullPipeline(t *testing.T) {
	t.Parallel()
	dir := writeLog(t, "nginx-access-ui.log-20220112", []string{
		logLine("/slow", 22.0),
		logLine("/slow", 10.0),
		logLine("/fast", 0.1),
		logLine("/slow", 11.0),
	})

	report, err := Run(Params{LogDir: dir, ReportSize: 10, MinParsedShare: 0.5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := report.Date.Format("20060102"); got != "20220112" {
		t.Errorf("date = %s, want 20220112", got)
	}
	if report.Processed != 4 || report.Parsed != 4 {
		t.Errorf("processed/parsed = %d/%d, want 4/4", report.Processed, report.Parsed)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(report.Rows))
	}
	if report.Rows[0].URL != "/slow" {
		t.Errorf("first row = %q, want /slow", report.Rows[0].URL)
	}
	if report.Rows[0].TimeSum != 43.0 {
		t.Errorf("time_sum = %v, want 43.0", report.Rows[0].TimeSum)
	}
}

func TestRun_NoLogFile(t *testing.T) {
	t.Parallel()
	_, err := Run(Params{LogDir: t.TempDir(), ReportSize: 10, MinParsedShare: 0.5})
	if !errors.Is(err, ErrNoLogFile) {
		t.Errorf("err = %v, want ErrNoLogFile", err)
	}
}

func TestRun_QualityGateAborts(t *testing.T) {
	t.Parallel()
	dir := writeLog(t, "nginx-access-ui.log-20220112", []string{
		"garbage line one",
		"garbage line two",
		"garbage line three",
	})

	_, err := Run(Params{LogDir: dir, ReportSize: 10, MinParsedShare: 0.1})
	if !errors.Is(err, ErrLowQuality) {
		t.Errorf("err = %v, want ErrLowQuality", err)
	}
}

func TestRun_QualityGateBoundaryPasses(t *testing.T) {
	t.Parallel()
	// 1 of 2 lines parses: share 0.5, exactly equal to the threshold.
	dir := writeLog(t, "nginx-access-ui.log-20220112", []string{
		logLine("/ok", 1.0),
		"garbage",
	})

	report, err := Run(Params{LogDir: dir, ReportSize: 10, MinParsedShare: 0.5})
	if err != nil {
		t.Fatalf("Run: %v (share equal to threshold must pass)", err)
	}
	if report.ParsedShare != 0.5 {
		t.Errorf("parsed share = %v, want 0.5", report.ParsedShare)
	}
}

func TestRun_EmptyLogAborts(t *testing.T) {
	t.Parallel()
	dir := writeLog(t, "nginx-access-ui.log-20220112", nil)
	// writeLog emits a single empty line; strip the file down to nothing.
	if err := os.WriteFile(filepath.Join(dir, "nginx-access-ui.log-20220112"), nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Run(Params{LogDir: dir, ReportSize: 10, MinParsedShare: 0})
	if !errors.Is(err, ErrLowQuality) {
		t.Errorf("err = %v, want ErrLowQuality for empty log", err)
	}
}

func TestRun_BrokenTimeFieldIsFatal(t *testing.T) {
	t.Parallel()
	dir := writeLog(t, "nginx-access-ui.log-20220112", []string{
		logLine("/ok", 1.0),
	})

	_, err := Run(Params{
		LogDir:         dir,
		ReportSize:     10,
		MinParsedShare: 0,
		LinePattern:    `"GET (?P<url>.+?) HTTP/1\.1"\s.*?(?P<time>\S+\.\d{3})$`,
	})
	// The lax pattern still parses this line; craft one it cannot.
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	dir = writeLog(t, "nginx-access-ui.log-20220112", []string{
		`x "GET /a HTTP/1.1" 200 not-a-number`,
	})
	_, err = Run(Params{
		LogDir:         dir,
		ReportSize:     10,
		MinParsedShare: 0,
		LinePattern:    `"GET (?P<url>.+?) HTTP/1\.1"\s.*?(?P<time>\S+)$`,
	})
	if err == nil {
		t.Fatal("expected fatal error for unparseable time field")
	}
	if errors.Is(err, ErrLowQuality) || errors.Is(err, ErrNoLogFile) {
		t.Errorf("err = %v, want a fatal parse error, not a clean outcome", err)
	}
}

func TestRun_ParamValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		params Params
	}{
		{"zero report size", Params{LogDir: ".", ReportSize: 0, MinParsedShare: 0.5}},
		{"negative report size", Params{LogDir: ".", ReportSize: -1, MinParsedShare: 0.5}},
		{"share above one", Params{LogDir: ".", ReportSize: 10, MinParsedShare: 1.5}},
		{"negative share", Params{LogDir: ".", ReportSize: 10, MinParsedShare: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Run(tt.params); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRun_ProgressObserver(t *testing.T) {
	t.Parallel()
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = logLine("/a", 0.1)
	}
	dir := writeLog(t, "nginx-access-ui.log-20220112", lines)

	var calls int
	var lastDone, lastTotal int
	_, err := Run(Params{
		LogDir:         dir,
		ReportSize:     10,
		MinParsedShare: 0.5,
		ProgressEvery:  3,
		Progress: func(done, total int) {
			calls++
			lastDone, lastTotal = done, total
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 3 { // at lines 3, 6, 9
		t.Errorf("progress calls = %d, want 3", calls)
	}
	if lastDone != 9 || lastTotal != 10 {
		t.Errorf("last progress = (%d, %d), want (9, 10)", lastDone, lastTotal)
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()
	dir := writeLog(t, "nginx-access-ui.log-20240301.gz", []string{"x"})

	logFile, err := Locate(dir, "")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got := logFile.Date.Format("20060102"); got != "20240301" {
		t.Errorf("date = %s, want 20240301", got)
	}

	if _, err := Locate(t.TempDir(), ""); !errors.Is(err, ErrNoLogFile) {
		t.Errorf("err = %v, want ErrNoLogFile", err)
	}
}
