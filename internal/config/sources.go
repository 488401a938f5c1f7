package config

import (
	"os"
	"runtime"

	"github.com/nibzard/tasklist-go/internal/appdir"
)

// dotEnvFile is read from the working directory.
var dotEnvFile = appdir.EnvFile

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range appdir.ProjectConfigFiles() {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.tasklist/tasklist.toml first, then the OS-specific config dir.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		path := appdir.ConfigPath(home)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		path := appdir.OSConfigPath(cfgDir)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return os.Getenv("APPDATA")
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.BaseURL = DefaultBaseURL
	cfg.APIPath = DefaultAPIPath
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// ConfigFile returns the highest-priority config file that was read.
func (cws *ConfigWithSources) ConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
