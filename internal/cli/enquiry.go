package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/smartmatch/internal/database"
	"github.com/vijay-prabhu/smartmatch/internal/matching"
	"github.com/vijay-prabhu/smartmatch/internal/output"
)

var enquiryCmd = &cobra.Command{
	Use:     "enquiry",
	Aliases: []string{"enquiries"},
	Short:   "Manage buyer enquiries",
}

var enquiryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an enquiry",
	Long: `Add a buyer enquiry.

Examples:
  smartmatch enquiry add --title "Need a web developer" --budget 50000 \
      --location Mumbai --owner buyer-1 --tag web-development --tag react`,
	RunE: runEnquiryAdd,
}

var enquiryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List enquiries",
	Long: `List enquiries, newest first.

Examples:
  smartmatch enquiry list                  # List all enquiries
  smartmatch enquiry list --status=open    # Only open enquiries
  smartmatch enquiry list -o json          # Output as JSON`,
	RunE: runEnquiryList,
}

var enquiryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show enquiry details",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnquiryShow,
}

var enquiryCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close an enquiry so it is no longer matched",
	Args:  cobra.ExactArgs(1),
	RunE:  setEnquiryStatus(database.EnquiryClosed),
}

var enquiryReopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Reopen a closed enquiry",
	Args:  cobra.ExactArgs(1),
	RunE:  setEnquiryStatus(database.EnquiryOpen),
}

var (
	addEnquiry   database.Enquiry
	addUrgency   string
	addTimeline  string
	listStatus   string
	listCategory string
	listLocation string
	listLimit    int
)

func init() {
	rootCmd.AddCommand(enquiryCmd)
	enquiryCmd.AddCommand(enquiryAddCmd, enquiryListCmd, enquiryShowCmd, enquiryCloseCmd, enquiryReopenCmd)

	f := enquiryAddCmd.Flags()
	f.StringVar(&addEnquiry.ID, "id", "", "Enquiry ID (generated when empty)")
	f.StringVar(&addEnquiry.Title, "title", "", "Title")
	f.StringVar(&addEnquiry.Description, "description", "", "Description")
	f.StringVar(&addEnquiry.Category, "category", "", "Category (e.g. services, products)")
	f.Float64Var(&addEnquiry.Budget, "budget", 0, "Budget amount")
	f.StringVar(&addEnquiry.Location, "location", "", "Location")
	f.StringVar(&addEnquiry.OwnerID, "owner", "", "ID of the buyer who owns the enquiry")
	f.StringVar(&addUrgency, "urgency", "normal", "Urgency (low, normal, high, emergency)")
	f.StringVar(&addTimeline, "timeline", "", "Free-form timeline")
	f.StringSliceVar(&addEnquiry.Tags, "tag", nil, "Tag (repeatable)")
	f.StringSliceVar(&addEnquiry.Requirements, "requirement", nil, "Requirement (repeatable)")
	_ = enquiryAddCmd.MarkFlagRequired("title")
	_ = enquiryAddCmd.MarkFlagRequired("owner")

	lf := enquiryListCmd.Flags()
	lf.StringVar(&listStatus, "status", "", "Filter by status (open, closed)")
	lf.StringVar(&listCategory, "category", "", "Filter by category")
	lf.StringVar(&listLocation, "location", "", "Filter by location")
	lf.IntVar(&listLimit, "limit", 0, "Maximum number of results")
}

func runEnquiryAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	switch u := matching.Urgency(addUrgency); u {
	case matching.UrgencyLow, matching.UrgencyNormal, matching.UrgencyHigh, matching.UrgencyEmergency:
		addEnquiry.Urgency = u
	default:
		return fmt.Errorf("invalid urgency: %s", addUrgency)
	}
	if addTimeline != "" {
		addEnquiry.Timeline = &addTimeline
	}

	if err := e.db.CreateEnquiry(cmd.Context(), &addEnquiry); err != nil {
		return err
	}

	fmt.Printf("Created enquiry %s\n", addEnquiry.ID)
	return nil
}

func runEnquiryList(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	opts := database.ListOptions{Limit: listLimit}
	if listStatus != "" {
		status := database.EnquiryStatus(listStatus)
		if status != database.EnquiryOpen && status != database.EnquiryClosed {
			return fmt.Errorf("invalid status: %s (use open or closed)", listStatus)
		}
		opts.Status = &status
	}
	if listCategory != "" {
		opts.Category = &listCategory
	}
	if listLocation != "" {
		opts.Location = &listLocation
	}

	enquiries, err := e.db.ListEnquiries(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list enquiries: %w", err)
	}

	return output.Output(outputFmt, enquiries)
}

func runEnquiryShow(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	enq, err := e.db.GetEnquiry(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return output.Output(outputFmt, enq)
}

func setEnquiryStatus(status database.EnquiryStatus) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.db.UpdateEnquiryStatus(cmd.Context(), args[0], status); err != nil {
			return err
		}

		fmt.Printf("Enquiry %s is now %s\n", args[0], status)
		return nil
	}
}
