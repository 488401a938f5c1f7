package config

import (
	"flag"
	"fmt"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from every source in priority order.
// Global flags are registered on fs and parsed from args; fs.Args() holds
// the remaining arguments afterwards.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Defaults
	setDefaults(cfg)
	for _, field := range Fields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, cws.Sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
		cws.Files = append(cws.Files, path)
	}

	// 3. Project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, cws.Sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
		cws.Files = append(cws.Files, path)
	}

	// 4. .env file, then the environment
	dotenvKeys, err := loadDotEnv(dotEnvFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dotEnvFile, err)
	}
	loadFromEnv(cfg, cws.Sources, dotenvKeys)

	// 5. CLI flags override everything
	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes a TOML file over cfg. Only keys present in the
// file are attributed to source.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	for _, field := range Fields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig expands paths and validates the service address.
func finalizeConfig(cfg *Config) error {
	cfg.LogDir = expandPath(cfg.LogDir)

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", cfg.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: want http(s)://host[:port]", cfg.BaseURL)
	}

	cfg.APIPath = strings.TrimSpace(cfg.APIPath)
	if cfg.APIPath != "" && !strings.HasPrefix(cfg.APIPath, "/") {
		cfg.APIPath = "/" + cfg.APIPath
	}
	return nil
}
