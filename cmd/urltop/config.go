package main

const (
	defaultReportSize     = 1000
	defaultReportDir      = "./reports"
	defaultLogDir         = "./log"
	defaultMinParsedShare = 0.333
	defaultProgressEvery  = 100_000
	defaultServeAddr      = "127.0.0.1:3000"
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	ReportSize     int     `mapstructure:"report-size"`
	ReportDir      string  `mapstructure:"report-dir"`
	LogDir         string  `mapstructure:"log-dir"`
	MinParsedShare float64 `mapstructure:"min-parsed-share"`
	FilePattern    string  `mapstructure:"log-file-pattern"`
	LinePattern    string  `mapstructure:"line-pattern"`
	ProgressEvery  int     `mapstructure:"progress-every"`
	ScriptLog      string  `mapstructure:"script-log"`
	ServeAddr      string  `mapstructure:"serve-addr"`
	ConfigPath     string  `mapstructure:"-"` // not from config file
}
