package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/tinytelemetry/urltop/internal/analyzer"
	"github.com/tinytelemetry/urltop/internal/report"
)

// runAnalyzer performs one batch analysis: resolve the latest log, skip the
// run when its report already exists, run the pipeline and write the report.
func runAnalyzer(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger(cfg.ScriptLog)
	defer cleanupLogger()

	log.Printf("urltop started (config: %s)", configSource(cfg))

	if err := checkDirs(cfg.LogDir, cfg.ReportDir); err != nil {
		return err
	}

	logFile, err := analyzer.Locate(cfg.LogDir, cfg.FilePattern)
	if err != nil {
		if errors.Is(err, analyzer.ErrNoLogFile) {
			log.Printf("no log file found in %s, nothing to do", cfg.LogDir)
		}
		return err
	}
	log.Printf("found log file to process: %s", logFile.Path)

	reportPath := report.Path(cfg.ReportDir, logFile.Date)
	if report.Exists(reportPath) {
		log.Printf("report for %s already exists: %s, nothing to do",
			logFile.Date.Format("2006-01-02"), reportPath)
		return analyzer.ErrReportExists
	}

	result, err := analyzer.Run(analyzer.Params{
		LogDir:         cfg.LogDir,
		ReportSize:     cfg.ReportSize,
		MinParsedShare: cfg.MinParsedShare,
		FilePattern:    cfg.FilePattern,
		LinePattern:    cfg.LinePattern,
		ProgressEvery:  cfg.ProgressEvery,
		Progress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "Progress: %.0f%%\r", float64(done)/float64(total)*100)
		},
	})
	if err != nil {
		if errors.Is(err, analyzer.ErrLowQuality) {
			log.Printf("%v", err)
		}
		return err
	}

	log.Printf("parsed %d of %d records (share %.3f)", result.Parsed, result.Processed, result.ParsedShare)

	if err := report.Write(reportPath, result.Rows); err != nil {
		return err
	}
	log.Printf("report written: %s (%d rows)", reportPath, len(result.Rows))
	return nil
}

func configSource(cfg appConfig) string {
	if cfg.ConfigPath == "" {
		return "defaults"
	}
	return cfg.ConfigPath
}

func checkDirs(dirs ...string) error {
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("directory %s is not usable: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}
	return nil
}

// configureRuntimeLogger sends runtime logs to the configured script log
// file, falling back to stderr.
func configureRuntimeLogger(path string) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if path == "" {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Printf("cannot open script log %s: %v, logging to stderr", path, err)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		_ = f.Close()
	}
}
