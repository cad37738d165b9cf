package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/smartmatch/internal/output"
	"github.com/vijay-prabhu/smartmatch/internal/service"
)

var matchCmd = &cobra.Command{
	Use:   "match <enquiry-id>",
	Short: "Rank sellers for an enquiry",
	Long: `Score every stored seller against an enquiry and print the ranked matches.

Interrupting a long run prints the matches scored so far.

Examples:
  smartmatch match enq-1                  # Top matches with the configured limits
  smartmatch match enq-1 --max 3          # Only the best three
  smartmatch match enq-1 --min-score 0    # Include weak matches
  smartmatch match enq-1 --explain        # Factor breakdown and reasons
  smartmatch match enq-1 -o json          # Output as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

var (
	matchMax      int
	matchMinScore int
	matchExplain  bool
	matchNoCache  bool
)

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().IntVar(&matchMax, "max", 0, "Maximum number of matches (default from config)")
	matchCmd.Flags().IntVar(&matchMinScore, "min-score", 0, "Minimum composite score 0-100 (default from config)")
	matchCmd.Flags().BoolVar(&matchExplain, "explain", false, "Show the factor breakdown for each match")
	matchCmd.Flags().BoolVar(&matchNoCache, "no-cache", false, "Bypass the match cache")
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	svc, closeCache, err := e.service(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	opts := service.MatchOptions{NoCache: matchNoCache}
	if cmd.Flags().Changed("max") {
		opts.MaxResults = &matchMax
	}
	if cmd.Flags().Changed("min-score") {
		if matchMinScore < 0 || matchMinScore > 100 {
			return fmt.Errorf("--min-score must be between 0 and 100")
		}
		opts.MinimumScore = &matchMinScore
	}

	report, err := svc.MatchEnquiry(ctx, args[0], opts)
	if err != nil {
		return err
	}
	if report.Partial {
		fmt.Fprintln(os.Stderr, "Interrupted: showing partial results")
	}

	if outputFmt == "json" {
		return output.Output(outputFmt, report)
	}
	if matchExplain {
		return output.Output(outputFmt, output.Explained(report.Results))
	}
	return output.Output(outputFmt, report)
}

