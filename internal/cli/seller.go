package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/smartmatch/internal/database"
	"github.com/vijay-prabhu/smartmatch/internal/matching"
	"github.com/vijay-prabhu/smartmatch/internal/output"
)

var sellerCmd = &cobra.Command{
	Use:     "seller",
	Aliases: []string{"sellers"},
	Short:   "Manage seller profiles",
}

var sellerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a seller",
	Long: `Add a seller profile. Metrics that are not given are stored as unknown
and scored neutrally.

Examples:
  smartmatch seller add --name "Asha Web Studio" --location Mumbai \
      --skill web-development --skill react --budget-min 30000 --budget-max 60000`,
	RunE: runSellerAdd,
}

var sellerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sellers",
	RunE:  runSellerList,
}

var (
	addSeller       database.Seller
	addVerification string
	addBudgetMin    float64
	addBudgetMax    float64
	addRating       float64
	addResponseTime float64
	addSuccessRate  float64
	sellerLocation  string
	sellerLimit     int
)

func init() {
	rootCmd.AddCommand(sellerCmd)
	sellerCmd.AddCommand(sellerAddCmd, sellerListCmd)

	f := sellerAddCmd.Flags()
	f.StringVar(&addSeller.ID, "id", "", "Seller ID (generated when empty)")
	f.StringVar(&addSeller.Name, "name", "", "Display name")
	f.StringVar(&addSeller.Location, "location", "", "Location")
	f.StringSliceVar(&addSeller.Skills, "skill", nil, "Skill (repeatable)")
	f.Float64Var(&addBudgetMin, "budget-min", 0, "Lowest budget the seller accepts")
	f.Float64Var(&addBudgetMax, "budget-max", 0, "Highest budget the seller accepts")
	f.Float64Var(&addRating, "rating", 0, "Average rating (0-5)")
	f.Float64Var(&addResponseTime, "response-minutes", 0, "Average response time in minutes")
	f.Float64Var(&addSuccessRate, "success-rate", 0, "Success rate percentage (0-100)")
	f.StringVar(&addVerification, "verification", "unverified", "Verification status (verified, pending, unverified)")
	_ = sellerAddCmd.MarkFlagRequired("name")

	sellerListCmd.Flags().StringVar(&sellerLocation, "location", "", "Filter by location")
	sellerListCmd.Flags().IntVar(&sellerLimit, "limit", 0, "Maximum number of results")
}

func runSellerAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	switch v := matching.VerificationStatus(addVerification); v {
	case matching.VerificationVerified, matching.VerificationPending, matching.VerificationUnverified:
		addSeller.Verification = v
	default:
		return fmt.Errorf("invalid verification status: %s", addVerification)
	}

	flags := cmd.Flags()
	if flags.Changed("budget-min") != flags.Changed("budget-max") {
		return fmt.Errorf("--budget-min and --budget-max must be given together")
	}
	if flags.Changed("budget-min") {
		if addBudgetMin > addBudgetMax {
			return fmt.Errorf("--budget-min must not exceed --budget-max")
		}
		addSeller.BudgetMin = &addBudgetMin
		addSeller.BudgetMax = &addBudgetMax
	}
	if flags.Changed("rating") {
		addSeller.Rating = &addRating
	}
	if flags.Changed("response-minutes") {
		addSeller.ResponseTimeMinutes = &addResponseTime
	}
	if flags.Changed("success-rate") {
		addSeller.SuccessRatePercent = &addSuccessRate
	}

	if err := e.db.CreateSeller(cmd.Context(), &addSeller); err != nil {
		return err
	}

	fmt.Printf("Created seller %s\n", addSeller.ID)
	return nil
}

func runSellerList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	opts := database.ListOptions{Limit: sellerLimit}
	if sellerLocation != "" {
		opts.Location = &sellerLocation
	}

	sellers, err := e.db.ListSellers(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list sellers: %w", err)
	}

	return output.Output(outputFmt, sellers)
}
