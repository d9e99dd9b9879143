package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinytelemetry/urltop/internal/analyzer"

	"github.com/spf13/viper"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var serve bool
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/urltop/config.yml)")
	flag.BoolVar(&serve, "serve", false, "serve generated reports over HTTP instead of analyzing")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("urltop - Access Log Latency Report\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if serve {
		if err := runServe(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runAnalyzer(cfg); err != nil {
		// Nothing-to-do outcomes end the run cleanly; runAnalyzer has
		// already logged the diagnostic.
		if errors.Is(err, analyzer.ErrNoLogFile) ||
			errors.Is(err, analyzer.ErrReportExists) ||
			errors.Is(err, analyzer.ErrLowQuality) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	v := viper.New()
	v.SetEnvPrefix("URLTOP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("report-size", defaultReportSize)
	v.SetDefault("report-dir", defaultReportDir)
	v.SetDefault("log-dir", defaultLogDir)
	v.SetDefault("min-parsed-share", defaultMinParsedShare)
	v.SetDefault("progress-every", defaultProgressEvery)
	v.SetDefault("serve-addr", defaultServeAddr)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		v.SetConfigFile(filepath.Join(home, ".config", "urltop", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
		// An explicitly requested config file must exist.
		if configPath != "" {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.ReportSize <= 0 {
		return cfg, fmt.Errorf("invalid report-size: %d", cfg.ReportSize)
	}
	if cfg.MinParsedShare < 0 || cfg.MinParsedShare > 1 {
		return cfg, fmt.Errorf("invalid min-parsed-share: %g (must be in [0, 1])", cfg.MinParsedShare)
	}
	return cfg, nil
}
