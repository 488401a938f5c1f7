// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and XDG_CONFIG_HOME at empty dirs, clears TASKLIST_*
// and moves into an empty working directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, ev := range envVars {
		t.Setenv(ev.name, "")
		os.Unsetenv(ev.name)
	}
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL: got %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.APIPath != "/api/tasklist" {
		t.Errorf("APIPath: got %q", cfg.APIPath)
	}
	if cfg.LogDir != "~/.tasklist/logs" {
		t.Errorf("LogDir: got %q", cfg.LogDir)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if want := filepath.Join(home, ".tasklist", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
	for _, field := range Fields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q", field, cws.Sources[field])
		}
	}
	if cws.ConfigFile() != "" {
		t.Errorf("ConfigFile: got %q", cws.ConfigFile())
	}
}

func TestLoadPriority(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join(home, ".tasklist", "tasklist.toml"), `
base_url = "http://user.example:8000"
log_level = "warn"
log_format = "json"
`)
	writeFile(t, "tasklist.toml", `
base_url = "http://project.example:8000"
api_path = "api/v2/tasks"
`)
	writeFile(t, ".env", "TASKLIST_LOG_CALLER=true\nTASKLIST_LOG_LEVEL=error\n")
	t.Cleanup(func() { os.Unsetenv("TASKLIST_LOG_CALLER") })
	t.Setenv("TASKLIST_LOG_LEVEL", "debug")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"--log-format", "logfmt", "ls", "--search", "go"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field  string
		value  string
		source ConfigSource
	}{
		{"base_url", "http://project.example:8000", SourceProjFile},
		{"api_path", "/api/v2/tasks", SourceProjFile},
		{"log_level", "debug", SourceEnv},
		{"log_format", "logfmt", SourceFlag},
		{"log_caller", "true", SourceDotEnv},
		{"log_timestamps", "false", SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := cfg.Value(tt.field); got != tt.value {
				t.Errorf("value: got %q, want %q", got, tt.value)
			}
			if got := cws.Sources[tt.field]; got != tt.source {
				t.Errorf("source: got %q, want %q", got, tt.source)
			}
		})
	}

	if got := fs.Args(); len(got) != 3 || got[0] != "ls" {
		t.Errorf("remaining args: got %v", got)
	}
	if len(cws.Files) != 2 || cws.ConfigFile() != "tasklist.toml" {
		t.Errorf("Files: got %v", cws.Files)
	}
}

func TestLoadHiddenProjectFile(t *testing.T) {
	isolate(t)
	writeFile(t, ".tasklist.toml", `base_url = "https://hidden.example"`)

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "https://hidden.example" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
}

func TestLoadXDGConfig(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "tasklist", "tasklist.toml"), `log_level = "debug"`)

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cws.Config.LogLevel != "debug" || cws.Sources["log_level"] != SourceUserFile {
		t.Errorf("got %q from %q", cws.Config.LogLevel, cws.Sources["log_level"])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		args    []string
		wantErr string
	}{
		{"bad toml", `base_url = `, nil, "project config file"},
		{"unknown key", `colour = "blue"`, nil, "unknown keys: colour"},
		{"bad scheme", ``, []string{"--base-url", "ftp://x"}, "invalid base_url"},
		{"missing host", ``, []string{"--base-url", "http://"}, "invalid base_url"},
		{"unknown flag", ``, []string{"--nope"}, "parsing flags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.file != "" {
				writeFile(t, "tasklist.toml", tt.file)
			}
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(new(strings.Builder))
			_, err := Load(fs, tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFinalizeConfig(t *testing.T) {
	cfg := &Config{BaseURL: " http://localhost:8000/ ", APIPath: "tasks"}
	if err := finalizeConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.APIPath != "/tasks" {
		t.Errorf("APIPath: got %q", cfg.APIPath)
	}
}

func TestLoadDotEnvMissing(t *testing.T) {
	keys, err := loadDotEnv(filepath.Join(t.TempDir(), ".env"))
	if err != nil || keys != nil {
		t.Errorf("got %v, %v", keys, err)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "TASKLIST_TEST_SET=fromfile\nTASKLIST_TEST_NEW=fromfile\n")
	t.Setenv("TASKLIST_TEST_SET", "fromenv")
	t.Cleanup(func() { os.Unsetenv("TASKLIST_TEST_NEW") })

	keys, err := loadDotEnv(path)
	if err != nil {
		t.Fatal(err)
	}
	if os.Getenv("TASKLIST_TEST_SET") != "fromenv" {
		t.Errorf("existing variable overridden: %q", os.Getenv("TASKLIST_TEST_SET"))
	}
	if os.Getenv("TASKLIST_TEST_NEW") != "fromfile" {
		t.Errorf("new variable not loaded")
	}
	if keys["TASKLIST_TEST_SET"] || !keys["TASKLIST_TEST_NEW"] {
		t.Errorf("introduced keys: got %v", keys)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TASKLIST_TEST_DIR", "/var/tmp")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/logs", filepath.Join(home, "logs")},
		{"$TASKLIST_TEST_DIR/logs", "/var/tmp/logs"},
		{"/abs/path", "/abs/path"},
		{"rel/~/x", "rel/~/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := expandPath(tt.in); got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{" on ", true},
		{"0", false},
		{"false", false},
		{"nope", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := boolFromString(tt.in); got != tt.want {
			t.Errorf("boolFromString(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("example config does not decode: %v", err)
	}
	if len(md.Undecoded()) != 0 {
		t.Errorf("undecoded keys: %v", md.Undecoded())
	}
	for _, field := range Fields() {
		if !md.IsDefined(field) {
			t.Errorf("example config misses %s", field)
		}
	}
	def := &Config{}
	setDefaults(def)
	if *cfg != *def {
		t.Errorf("example differs from defaults:\n got %+v\nwant %+v", cfg, def)
	}
}
