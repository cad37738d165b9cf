package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vijay-prabhu/smartmatch/internal/logger"
	"github.com/vijay-prabhu/smartmatch/internal/matching"
)

// ErrNotFound is returned by Load when the config file does not exist
var ErrNotFound = errors.New("config file not found")

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run 'smartmatch config init' to create)", ErrNotFound, expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// LoadOrDefault behaves like Load but falls back to the defaults when the
// file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		cfg = Default()
		if err := cfg.expandPaths(); err != nil {
			return nil, fmt.Errorf("failed to expand paths: %w", err)
		}
		return cfg, nil
	}
	return cfg, err
}

// Parse decodes TOML on top of the defaults, expands paths and validates
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Matching validation
	m := c.Matching
	if m.MaxResults < 1 {
		errs = append(errs, errors.New("matching.max_results must be at least 1"))
	}
	if m.MinimumScore < 0 || m.MinimumScore > 100 {
		errs = append(errs, fmt.Errorf("matching.minimum_score must be between 0 and 100, got %d", m.MinimumScore))
	}
	if m.HighMatchScore > m.ExcellentMatchScore {
		errs = append(errs, errors.New("matching.high_match_score must not exceed matching.excellent_match_score"))
	}
	if m.Workers < 0 {
		errs = append(errs, errors.New("matching.workers must not be negative"))
	}
	validMatchers := map[string]bool{"substring": true, "word": true}
	if !validMatchers[m.TextMatcher] {
		errs = append(errs, fmt.Errorf("matching.text_matcher must be 'substring' or 'word', got '%s'", m.TextMatcher))
	}
	for _, f := range matching.Factors {
		if w := m.Weights.Get(f); w < 0 || math.IsNaN(w) {
			errs = append(errs, fmt.Errorf("matching.weights.%s must not be negative", f))
		}
	}

	// Geo validation
	if len(c.Geo.Regions) == 0 && (len(c.Geo.Adjacency) > 0 || len(c.Geo.Zones) > 0) {
		errs = append(errs, errors.New("geo.regions is required when geo.adjacency or geo.zones is set"))
	}

	// Cache validation
	if c.Cache.Enabled {
		if c.Cache.Addr == "" {
			errs = append(errs, errors.New("cache.addr is required when the cache is enabled"))
		}
		if c.Cache.TTLMinutes < 1 {
			errs = append(errs, errors.New("cache.ttl_minutes must be at least 1"))
		}
	}

	// Log validation
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be 'console' or 'json', got '%s'", c.Log.Format))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates necessary directories for the database
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
