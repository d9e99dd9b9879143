package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinytelemetry/urltop/internal/analyzer"
	"github.com/tinytelemetry/urltop/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var skin string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/urltop/config.yml)")
	flag.StringVar(&skin, "skin", "", "override the configured color skin")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("urltop-tui - Latency Report Viewer\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if skin != "" {
		cfg.Skin = skin
	}

	if err := runTUI(cfg); err != nil {
		if errors.Is(err, analyzer.ErrNoLogFile) || errors.Is(err, analyzer.ErrLowQuality) {
			fmt.Println(err)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI analyzes the latest log in memory and shows the table. Unlike the
// batch binary it does not look at (or write) report files.
func runTUI(cfg cliConfig) error {
	configDir := filepath.Join(os.Getenv("HOME"), ".config", "urltop")
	if err := tui.InitializeSkin(cfg.Skin, configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load skin %q: %v (using default)\n", cfg.Skin, err)
	}

	report, err := analyzer.Run(analyzer.Params{
		LogDir:         cfg.LogDir,
		ReportSize:     cfg.ReportSize,
		MinParsedShare: cfg.MinParsedShare,
		FilePattern:    cfg.FilePattern,
		LinePattern:    cfg.LinePattern,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewDashboard(report), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
