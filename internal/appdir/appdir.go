// Package appdir provides names and paths for the .tasklist directory.
package appdir

import "path/filepath"

const (
	// Dir is the name of the per-user tasklist directory.
	Dir = ".tasklist"

	// Name is the application name used under OS config directories.
	Name = "tasklist"

	// ConfigFile is the config file name, both inside Dir and in a project.
	ConfigFile = "tasklist.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".tasklist.toml"

	// LogsDir is the log directory name inside Dir.
	LogsDir = "logs"

	// EnvFile is the dotenv file read from the working directory.
	EnvFile = ".env"
)

// DefaultLogDir is the log directory before home expansion.
var DefaultLogDir = "~/" + Dir + "/" + LogsDir

// DirPath returns the .tasklist directory under root.
func DirPath(root string) string {
	if root == "" || root == "." {
		return Dir
	}
	return filepath.Join(root, Dir)
}

// ConfigPath returns the user config file under root.
func ConfigPath(root string) string {
	return filepath.Join(DirPath(root), ConfigFile)
}

// LogPath returns the log directory under root.
func LogPath(root string) string {
	return filepath.Join(DirPath(root), LogsDir)
}

// OSConfigPath returns the config file inside an OS config directory such
// as $XDG_CONFIG_HOME.
func OSConfigPath(configDir string) string {
	return filepath.Join(configDir, Name, ConfigFile)
}

// ProjectConfigFiles lists project config names in lookup order.
func ProjectConfigFiles() []string {
	return []string{ConfigFile, HiddenConfigFile}
}
