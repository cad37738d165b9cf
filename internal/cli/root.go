package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/smartmatch/internal/cache"
	"github.com/vijay-prabhu/smartmatch/internal/config"
	"github.com/vijay-prabhu/smartmatch/internal/database"
	"github.com/vijay-prabhu/smartmatch/internal/logger"
	"github.com/vijay-prabhu/smartmatch/internal/matching"
	"github.com/vijay-prabhu/smartmatch/internal/service"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	logLevel   string
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "smartmatch",
	Short: "Score and rank sellers against buyer enquiries",
	Long: `smartmatch ranks sellers for a buyer enquiry.

Each seller is scored on seven weighted factors (skills, budget, location,
experience, response time, success rate and verification), filtered by a
minimum score and returned with plain-language reasons.

It provides:
  - A local SQLite store of enquiries and sellers
  - Configurable weights, thresholds and region adjacency data
  - An optional Redis cache for repeated match requests
  - MCP server for AI assistant integration`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/smartmatch/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"override the configured log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(home, ".config", "smartmatch", "config.toml")
	}
}

// env bundles what most commands need
type env struct {
	cfg *config.Config
	log logger.Logger
	db  *database.DB
}

// openEnv loads the configuration, builds the logger and opens the database.
// A missing config file falls back to the defaults.
func openEnv() (*env, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	log := logger.NewStructured(level, cfg.Log.Format)

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

// engine builds a matching engine from the configuration
func (e *env) engine() *matching.Engine {
	opts := append(e.cfg.EngineOptions(), matching.WithLogger(e.log))
	return matching.NewEngine(opts...)
}

// service builds the match service, attaching the Redis cache when enabled.
// An unreachable cache is logged and skipped. The returned func releases
// the cache connection.
func (e *env) service(ctx context.Context) (*service.Service, func(), error) {
	engine := e.engine()
	opts := []service.Option{service.WithLogger(e.log)}
	closeFn := func() {}

	if e.cfg.Cache.Enabled {
		fp, err := cache.Fingerprint(e.cfg.Matching.TextMatcher, engine.RegionTable(), e.cfg.CategoryKeywords())
		if err != nil {
			return nil, nil, err
		}

		rc := cache.NewRedis(e.cfg.Cache)
		if err := rc.Ping(ctx); err != nil {
			e.log.WithError(err).Warn("match cache unavailable, continuing without it", map[string]interface{}{
				"addr": e.cfg.Cache.Addr,
			})
			rc.Close()
		} else {
			opts = append(opts, service.WithCache(rc, fp))
			closeFn = func() { rc.Close() }
		}
	}

	return service.New(e.db, engine, e.cfg.MatchOverrides(), opts...), closeFn, nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("smartmatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
