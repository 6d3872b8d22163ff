// Package config provides configuration management for the filesystem
// access service. Configuration is loaded from (highest to lowest
// priority):
// 1. Command-line flags
// 2. Environment variables (COMPLEMENT_MCP_*)
// 3. Project config (.complement-mcp.yaml in the server root)
// 4. Home config (~/.complement-mcp/config.yaml)
// 5. Defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	// ServerRoot is the directory relative paths resolve under; Load makes
	// it absolute. Defaults to the process's current working directory.
	ServerRoot string `yaml:"server_root" json:"server_root"`

	// MaxReadBytes caps any single read_file window.
	MaxReadBytes int64 `yaml:"max_read_bytes" json:"max_read_bytes"`

	// MaxWalkResults caps list_files/find_files/search_text result counts.
	MaxWalkResults int `yaml:"max_walk_results" json:"max_walk_results"`

	// DefaultContextLines is used by search_text when context_lines is
	// omitted from the request.
	DefaultContextLines int `yaml:"default_context_lines" json:"default_context_lines"`

	// Verbose enables diagnostic logging on stderr.
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Default config values (used in resolution and validation).
const (
	defaultMaxReadBytes   = 1 << 20
	defaultMaxWalkResults = 5000
	defaultContextLines   = 2
	homeConfigRelPath     = ".complement-mcp/config.yaml"
	projectConfigFilename = ".complement-mcp.yaml"
	envPrefix             = "COMPLEMENT_MCP_"
)

// Default returns the default configuration. ServerRoot defaults to the
// process's current working directory.
func Default() *Config {
	cwd, _ := os.Getwd()
	return &Config{
		ServerRoot:          cwd,
		MaxReadBytes:        defaultMaxReadBytes,
		MaxWalkResults:      defaultMaxWalkResults,
		DefaultContextLines: defaultContextLines,
		Verbose:             false,
	}
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults.
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	if homeConfig, _ := loadFromPath(homeConfigPath()); homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	if projectConfig, _ := loadFromPath(projectConfigPath(flagOverrides)); projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	cfg = applyEnv(cfg)

	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	root, err := filepath.Abs(cfg.ServerRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve server root %q: %w", cfg.ServerRoot, err)
	}
	cfg.ServerRoot = root

	return cfg, nil
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, filepath.FromSlash(homeConfigRelPath))
}

// projectConfigPath returns the project config path: COMPLEMENT_MCP_CONFIG
// when set, otherwise the server root (if known from flags) joined with the
// fixed project config filename, or the current directory's if no root
// override is given yet.
func projectConfigPath(flagOverrides *Config) string {
	if override := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG")); override != "" {
		return override
	}
	base := ""
	if flagOverrides != nil && flagOverrides.ServerRoot != "" {
		base = flagOverrides.ServerRoot
	} else if cwd, err := os.Getwd(); err == nil {
		base = cwd
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, projectConfigFilename)
}

// loadFromPath loads config from a YAML file.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv(envPrefix + "SERVER_ROOT"); v != "" {
		cfg.ServerRoot = v
	}
	if v := os.Getenv(envPrefix + "MAX_READ_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxReadBytes = n
		}
	}
	if v := os.Getenv(envPrefix + "MAX_WALK_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxWalkResults = n
		}
	}
	if v := os.Getenv(envPrefix + "DEFAULT_CONTEXT_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultContextLines = n
		}
	}
	if v := os.Getenv(envPrefix + "VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	return cfg
}

// merge merges src into dst, with src values taking precedence. Zero values
// in src are treated as "not set" and do not override dst.
func merge(dst, src *Config) *Config {
	if src.ServerRoot != "" {
		dst.ServerRoot = src.ServerRoot
	}
	if src.MaxReadBytes != 0 {
		dst.MaxReadBytes = src.MaxReadBytes
	}
	if src.MaxWalkResults != 0 {
		dst.MaxWalkResults = src.MaxWalkResults
	}
	if src.DefaultContextLines != 0 {
		dst.DefaultContextLines = src.DefaultContextLines
	}
	if src.Verbose {
		dst.Verbose = true
	}
	return dst
}

// Source represents where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceHome    Source = "~/.complement-mcp/config.yaml"
	SourceProject Source = ".complement-mcp.yaml"
	SourceEnv     Source = "environment"
	SourceFlag    Source = "flag"
)

type resolved struct {
	Value  interface{} `json:"value"`
	Source Source      `json:"source"`
}

// ResolvedConfig shows config values with their sources, for `config show`.
type ResolvedConfig struct {
	ServerRoot          resolved `json:"server_root"`
	MaxReadBytes        resolved `json:"max_read_bytes"`
	MaxWalkResults      resolved `json:"max_walk_results"`
	DefaultContextLines resolved `json:"default_context_lines"`
	Verbose             resolved `json:"verbose"`
}

func getEnvString(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "true" || v == "1" {
		return true, true
	}
	return false, false
}

func resolveStringField(home, project, env, flag, def string) resolved {
	result := resolved{Value: def, Source: SourceDefault}
	if home != "" {
		result = resolved{Value: home, Source: SourceHome}
	}
	if project != "" {
		result = resolved{Value: project, Source: SourceProject}
	}
	if env != "" {
		result = resolved{Value: env, Source: SourceEnv}
	}
	if flag != "" {
		result = resolved{Value: flag, Source: SourceFlag}
	}
	return result
}

// Resolve returns configuration with source tracking, for diagnostic
// display via `fsmcpd config show`.
func Resolve(flagOverrides *Config) *ResolvedConfig {
	homeConfig, _ := loadFromPath(homeConfigPath())
	projectConfig, _ := loadFromPath(projectConfigPath(flagOverrides))

	var homeRoot string
	var homeVerbose bool
	if homeConfig != nil {
		homeRoot = homeConfig.ServerRoot
		homeVerbose = homeConfig.Verbose
	}

	var projectRoot string
	var projectVerbose bool
	if projectConfig != nil {
		projectRoot = projectConfig.ServerRoot
		projectVerbose = projectConfig.Verbose
	}

	envRoot, _ := getEnvString(envPrefix + "SERVER_ROOT")
	envVerbose, envVerboseSet := getEnvBool(envPrefix + "VERBOSE")

	var flagRoot string
	var flagVerbose bool
	if flagOverrides != nil {
		flagRoot = flagOverrides.ServerRoot
		flagVerbose = flagOverrides.Verbose
	}

	cwd, _ := os.Getwd()
	rc := &ResolvedConfig{
		ServerRoot: resolveStringField(homeRoot, projectRoot, envRoot, flagRoot, cwd),
		MaxReadBytes: resolved{
			Value:  defaultMaxReadBytes,
			Source: SourceDefault,
		},
		MaxWalkResults: resolved{
			Value:  defaultMaxWalkResults,
			Source: SourceDefault,
		},
		DefaultContextLines: resolved{
			Value:  defaultContextLines,
			Source: SourceDefault,
		},
		Verbose: resolved{Value: false, Source: SourceDefault},
	}

	if homeVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceHome}
	}
	if projectVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceProject}
	}
	if envVerboseSet && envVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceEnv}
	}
	if flagVerbose {
		rc.Verbose = resolved{Value: true, Source: SourceFlag}
	}

	sources := []Source{SourceHome, SourceProject, SourceEnv, SourceFlag}
	for i, c := range []*Config{homeConfig, projectConfig, applyEnv(&Config{}), flagOverrides} {
		if c == nil {
			continue
		}
		if c.MaxReadBytes != 0 {
			rc.MaxReadBytes = resolved{Value: c.MaxReadBytes, Source: sources[i]}
		}
		if c.MaxWalkResults != 0 {
			rc.MaxWalkResults = resolved{Value: c.MaxWalkResults, Source: sources[i]}
		}
		if c.DefaultContextLines != 0 {
			rc.DefaultContextLines = resolved{Value: c.DefaultContextLines, Source: sources[i]}
		}
	}

	return rc
}
