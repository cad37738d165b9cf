package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/smartmatch/internal/config"
	"github.com/vijay-prabhu/smartmatch/internal/output"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Inspect region adjacency data",
}

var regionsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report one-way or dangling adjacency entries",
	Long: `Check the configured region table for data defects: adjacency edges
listed in one direction only, edges to unknown regions, and regions that
belong to more than one zone.

Matching treats every edge as two-way, so these are reported for cleanup
rather than affecting scores.`,
	RunE: runRegionsCheck,
}

func init() {
	rootCmd.AddCommand(regionsCmd)
	regionsCmd.AddCommand(regionsCheckCmd)
}

func runRegionsCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, cfg.RegionTable().Asymmetries())
}
