package config

import (
	"time"

	"github.com/vijay-prabhu/smartmatch/internal/matching"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Matching MatchingConfig `toml:"matching"`
	Geo      GeoConfig      `toml:"geo"`
	Cache    CacheConfig    `toml:"cache"`
	Log      LogConfig      `toml:"log"`
	MCP      MCPConfig      `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// MatchingConfig contains scoring settings
type MatchingConfig struct {
	MaxResults              int              `toml:"max_results"`
	MinimumScore            int              `toml:"minimum_score"`
	HighMatchScore          int              `toml:"high_match_score"`
	ExcellentMatchScore     int              `toml:"excellent_match_score"`
	EnableLocationBoost     bool             `toml:"enable_location_boost"`
	EnableVerificationBoost bool             `toml:"enable_verification_boost"`
	TextMatcher             string           `toml:"text_matcher"`
	Workers                 int              `toml:"workers"`
	Weights                 matching.Weights `toml:"weights"`

	// Categories replaces the built-in category keyword table when set
	Categories map[string][]string `toml:"categories"`
}

// GeoConfig replaces the built-in region table. Every field is optional;
// an empty Regions list keeps the built-in data.
type GeoConfig struct {
	Regions       []string            `toml:"regions"`
	RemoteMarkers []string            `toml:"remote_markers"`
	Adjacency     map[string][]string `toml:"adjacency"`
	Zones         map[string][]string `toml:"zones"`
}

// CacheConfig contains match result cache settings
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// TTL returns the cache lifetime as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	m := matching.DefaultConfig()

	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/smartmatch/smartmatch.db",
		},
		Matching: MatchingConfig{
			MaxResults:              m.MaxResults,
			MinimumScore:            m.Thresholds.Minimum,
			HighMatchScore:          m.Thresholds.High,
			ExcellentMatchScore:     m.Thresholds.Excellent,
			EnableLocationBoost:     m.EnableLocationBoost,
			EnableVerificationBoost: m.EnableVerificationBoost,
			TextMatcher:             "substring",
			Workers:                 0,
			Weights:                 m.Weights,
		},
		Cache: CacheConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			DB:         0,
			TTLMinutes: 15,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}

// MatchOverrides returns the [matching] section as engine overrides
func (c *Config) MatchOverrides() *matching.Overrides {
	m := c.Matching
	w := m.Weights

	return &matching.Overrides{
		Weights: &matching.WeightOverrides{
			SkillMatch:        &w.SkillMatch,
			BudgetMatch:       &w.BudgetMatch,
			LocationMatch:     &w.LocationMatch,
			ExperienceMatch:   &w.ExperienceMatch,
			ResponseTime:      &w.ResponseTime,
			SuccessRate:       &w.SuccessRate,
			VerificationBonus: &w.VerificationBonus,
		},
		MinimumScore:            &m.MinimumScore,
		HighMatchScore:          &m.HighMatchScore,
		ExcellentMatchScore:     &m.ExcellentMatchScore,
		MaxResults:              &m.MaxResults,
		EnableLocationBoost:     &m.EnableLocationBoost,
		EnableVerificationBoost: &m.EnableVerificationBoost,
	}
}

// RegionTable returns the configured region data, or the built-in table
// when [geo] lists no regions
func (c *Config) RegionTable() matching.RegionTable {
	if len(c.Geo.Regions) == 0 {
		return matching.DefaultRegionTable()
	}

	t := matching.RegionTable{
		Regions:       c.Geo.Regions,
		Adjacency:     c.Geo.Adjacency,
		Zones:         c.Geo.Zones,
		RemoteMarkers: c.Geo.RemoteMarkers,
	}
	if len(t.RemoteMarkers) == 0 {
		t.RemoteMarkers = matching.DefaultRegionTable().RemoteMarkers
	}
	return t
}

// CategoryKeywords returns the configured category table, or the built-in one
func (c *Config) CategoryKeywords() map[string][]string {
	if len(c.Matching.Categories) == 0 {
		return matching.DefaultCategoryKeywords()
	}
	return c.Matching.Categories
}

// EngineOptions returns the engine options implied by the configuration
func (c *Config) EngineOptions() []matching.Option {
	return []matching.Option{
		matching.WithTextMatcher(matching.NewTextMatcher(c.Matching.TextMatcher)),
		matching.WithRegionTable(c.RegionTable()),
		matching.WithCategoryKeywords(c.CategoryKeywords()),
		matching.WithWorkers(c.Matching.Workers),
	}
}
