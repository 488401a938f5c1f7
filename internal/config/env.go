package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envVars maps environment variables to config fields.
var envVars = []struct {
	name  string
	field string
}{
	{"TASKLIST_BASE_URL", "base_url"},
	{"TASKLIST_API_PATH", "api_path"},
	{"TASKLIST_LOG_DIR", "log_dir"},
	{"TASKLIST_LOG_LEVEL", "log_level"},
	{"TASKLIST_LOG_FORMAT", "log_format"},
	{"TASKLIST_LOG_TIMESTAMPS", "log_timestamps"},
	{"TASKLIST_LOG_CALLER", "log_caller"},
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. It returns the names it introduced.
// A missing file is not an error.
func loadDotEnv(path string) (map[string]bool, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	introduced := make(map[string]bool)
	for key := range values {
		if _, set := os.LookupEnv(key); !set {
			introduced[key] = true
		}
	}
	if err := godotenv.Load(path); err != nil {
		return nil, err
	}
	return introduced, nil
}

// loadFromEnv overrides config from TASKLIST_* variables. Variables that
// came from the .env file are attributed to SourceDotEnv.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource, fromDotEnv map[string]bool) {
	for _, ev := range envVars {
		v, ok := os.LookupEnv(ev.name)
		if !ok || v == "" {
			continue
		}
		applyField(cfg, ev.field, v)
		if fromDotEnv[ev.name] {
			sources[ev.field] = SourceDotEnv
		} else {
			sources[ev.field] = SourceEnv
		}
	}
}

func applyField(cfg *Config, field, v string) {
	switch field {
	case "base_url":
		cfg.BaseURL = v
	case "api_path":
		cfg.APIPath = v
	case "log_dir":
		cfg.LogDir = v
	case "log_level":
		cfg.LogLevel = v
	case "log_format":
		cfg.LogFormat = v
	case "log_timestamps":
		cfg.LogTimestamps = boolFromString(v)
	case "log_caller":
		cfg.LogCaller = boolFromString(v)
	}
}

// boolFromString accepts 1/true/yes/on in any case.
func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
