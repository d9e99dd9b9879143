package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tinytelemetry/urltop/internal/tui"
)

const (
	defaultReportSize     = 1000
	defaultLogDir         = "./log"
	defaultMinParsedShare = 0.333
)

// cliConfig holds only viewer-relevant configuration. It reads the same
// config file as the analyzer binary.
type cliConfig struct {
	ReportSize     int     `mapstructure:"report-size"`
	LogDir         string  `mapstructure:"log-dir"`
	MinParsedShare float64 `mapstructure:"min-parsed-share"`
	FilePattern    string  `mapstructure:"log-file-pattern"`
	LinePattern    string  `mapstructure:"line-pattern"`
	Skin           string  `mapstructure:"skin"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("URLTOP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("report-size", defaultReportSize)
	v.SetDefault("log-dir", defaultLogDir)
	v.SetDefault("min-parsed-share", defaultMinParsedShare)
	v.SetDefault("skin", tui.DefaultSkin)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "urltop", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
