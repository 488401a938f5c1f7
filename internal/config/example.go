package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Task service address and collection path
base_url = "http://localhost:8000"
api_path = "/api/tasklist"

# Log directory (supports ~ and $VAR expansion)
log_dir = "~/.tasklist/logs"

# Logging: level is debug, info, warn or error; format is text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
