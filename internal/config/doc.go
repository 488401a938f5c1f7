// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tasklist/tasklist.toml or OS-specific config directory)
// 3. Project config file (tasklist.toml or .tasklist.toml in the working directory)
// 4. .env file in the working directory (never overrides variables already set)
// 5. Environment variables (TASKLIST_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tasklist/tasklist.toml (preferred)
// - Windows: %APPDATA%\tasklist\tasklist.toml
// - macOS: ~/Library/Application Support/tasklist/tasklist.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tasklist/tasklist.toml or ~/.config/tasklist/tasklist.toml
package config
