package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/smartmatch/internal/cache"
	"github.com/vijay-prabhu/smartmatch/internal/database"
	"github.com/vijay-prabhu/smartmatch/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store and cache status",
	Long: `Display how many enquiries and sellers are stored, and whether the
database and the match cache are reachable.

Examples:
  smartmatch stats
  smartmatch stats -o json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// Stats summarises the local store
type Stats struct {
	Database       string `json:"database"`
	Enquiries      int    `json:"enquiries"`
	OpenEnquiries  int    `json:"open_enquiries"`
	Sellers        int    `json:"sellers"`
	Regions        int    `json:"regions"`
	RegionIssues   int    `json:"region_issues"`
	CacheEnabled   bool   `json:"cache_enabled"`
	CacheReachable bool   `json:"cache_reachable"`
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.db.Health(ctx); err != nil {
		return fmt.Errorf("database unhealthy: %w", err)
	}

	stats := Stats{Database: e.cfg.Database.Path}
	stats.Enquiries, stats.Sellers, err = e.db.Counts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	open := database.EnquiryOpen
	openEnquiries, err := e.db.ListEnquiries(ctx, database.ListOptions{Status: &open})
	if err != nil {
		return fmt.Errorf("failed to list enquiries: %w", err)
	}
	stats.OpenEnquiries = len(openEnquiries)

	table := e.cfg.RegionTable()
	stats.Regions = len(table.Regions)
	stats.RegionIssues = len(table.Asymmetries())

	if e.cfg.Cache.Enabled {
		stats.CacheEnabled = true
		rc := cache.NewRedis(e.cfg.Cache)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		stats.CacheReachable = rc.Ping(pingCtx) == nil
		cancel()
		rc.Close()
	}

	if outputFmt == "json" {
		return output.Output(outputFmt, stats)
	}

	fmt.Printf("Database:       %s\n", stats.Database)
	fmt.Printf("Enquiries:      %d (%d open)\n", stats.Enquiries, stats.OpenEnquiries)
	fmt.Printf("Sellers:        %d\n", stats.Sellers)
	fmt.Printf("Regions:        %d (%d data issue(s))\n", stats.Regions, stats.RegionIssues)
	switch {
	case !stats.CacheEnabled:
		fmt.Println("Match cache:    disabled")
	case stats.CacheReachable:
		fmt.Printf("Match cache:    %s (reachable)\n", e.cfg.Cache.Addr)
	default:
		fmt.Printf("Match cache:    %s (unreachable)\n", e.cfg.Cache.Addr)
	}
	return nil
}
