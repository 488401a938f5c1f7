package config

import "flag"

// flagFields maps global flag names to config fields.
var flagFields = map[string]string{
	"base-url":       "base_url",
	"api-path":       "api_path",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs, parses args and applies the
// flags that were explicitly set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Task service base URL")
	fs.StringVar(&cfg.APIPath, "api-path", cfg.APIPath, "Task collection path on the service")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
