package config

import "github.com/nibzard/tasklist-go/internal/appdir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = ".env file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultAPIPath   = "/api/tasklist"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultLogDir is the default log directory before home expansion.
var DefaultLogDir = appdir.DefaultLogDir

// Config holds the full configuration for tasklist.
type Config struct {
	// Service
	BaseURL string `toml:"base_url"`
	APIPath string `toml:"api_path"`

	// Paths
	LogDir string `toml:"log_dir"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return []string{
		"base_url",
		"api_path",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Value returns the string form of a field, or "" for an unknown name.
func (c *Config) Value(field string) string {
	switch field {
	case "base_url":
		return c.BaseURL
	case "api_path":
		return c.APIPath
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return formatBool(c.LogTimestamps)
	case "log_caller":
		return formatBool(c.LogCaller)
	}
	return ""
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
