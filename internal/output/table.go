package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/smartmatch/internal/database"
	"github.com/vijay-prabhu/smartmatch/internal/matching"
	"github.com/vijay-prabhu/smartmatch/internal/service"
)

// Explained marks match results that should be printed with their factor
// breakdown, reasons and recommendations
type Explained []matching.MatchResult

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *service.Report:
		return reportTable(w, v)
	case []matching.MatchResult:
		return matchesTable(w, v)
	case Explained:
		return explainedMatches(w, v)
	case []database.Enquiry:
		return enquiriesTable(w, v)
	case *database.Enquiry:
		return enquiryDetail(w, v)
	case []database.Seller:
		return sellersTable(w, v)
	case []matching.AdjacencyIssue:
		return issuesTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func reportTable(w io.Writer, r *service.Report) error {
	source := "computed"
	if r.Cached {
		source = "cached"
	}
	if r.Partial {
		source = "partial, interrupted"
	}
	fmt.Fprintf(w, "Enquiry:     %s (%s)\n", r.Enquiry.Title, r.Enquiry.ID)
	fmt.Fprintf(w, "Candidates:  %d\n", r.CandidateCount)
	fmt.Fprintf(w, "Matches:     %d (%s)\n\n", len(r.Results), source)

	return matchesTable(w, r.Results)
}

func matchesTable(w io.Writer, results []matching.MatchResult) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Seller", "Score", "Quality", "Top Reason")

	for i, r := range results {
		reason := "-"
		if len(r.Reasons) > 0 {
			reason = r.Reasons[0]
		}
		if err := table.Append([]string{
			strconv.Itoa(i + 1),
			truncate(sellerLabel(r), 30),
			strconv.Itoa(r.Score),
			r.Quality.Label(),
			truncate(reason, 50),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func explainedMatches(w io.Writer, results Explained) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return nil
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, strings.Repeat("=", 60))
		fmt.Fprintf(w, "#%d %s  %d/100  %s\n", i+1, sellerLabel(r), r.Score, r.Quality.Label())
		fmt.Fprintf(w, "   %s\n", r.Quality.Description())
		fmt.Fprintln(w, strings.Repeat("=", 60))

		table := tablewriter.NewWriter(w)
		table.Header("Factor", "Score")
		for _, f := range matching.Factors {
			if err := table.Append([]string{string(f), fmt.Sprintf("%.2f", r.Factors.Get(f))}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}

		printList(w, "Why this match", r.Reasons)
		printList(w, "Worth discussing", r.Recommendations)
	}

	return nil
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func enquiriesTable(w io.Writer, enquiries []database.Enquiry) error {
	if len(enquiries) == 0 {
		fmt.Fprintln(w, "No enquiries found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Category", "Budget", "Location", "Status")

	for _, e := range enquiries {
		if err := table.Append([]string{
			e.ID,
			truncate(e.Title, 30),
			e.Category,
			formatMoney(e.Budget),
			truncate(e.Location, 25),
			string(e.Status),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func enquiryDetail(w io.Writer, e *database.Enquiry) error {
	fmt.Fprintf(w, "ID:           %s\n", e.ID)
	fmt.Fprintf(w, "Title:        %s\n", e.Title)
	if e.Description != "" {
		fmt.Fprintf(w, "Description:  %s\n", e.Description)
	}
	fmt.Fprintf(w, "Category:     %s\n", e.Category)
	fmt.Fprintf(w, "Budget:       %s\n", formatMoney(e.Budget))
	fmt.Fprintf(w, "Location:     %s\n", e.Location)
	fmt.Fprintf(w, "Urgency:      %s\n", e.Urgency)
	fmt.Fprintf(w, "Owner:        %s\n", e.OwnerID)
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags:         %s\n", strings.Join(e.Tags, ", "))
	}
	if len(e.Requirements) > 0 {
		fmt.Fprintf(w, "Requirements: %s\n", strings.Join(e.Requirements, ", "))
	}
	if e.Timeline != nil && *e.Timeline != "" {
		fmt.Fprintf(w, "Timeline:     %s\n", *e.Timeline)
	}
	fmt.Fprintf(w, "Status:       %s\n", e.Status)
	fmt.Fprintf(w, "Created:      %s\n", e.CreatedAt.Format("Jan 02, 2006"))

	return nil
}

func sellersTable(w io.Writer, sellers []database.Seller) error {
	if len(sellers) == 0 {
		fmt.Fprintln(w, "No sellers found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Location", "Skills", "Budget", "Verified")

	for _, s := range sellers {
		budget := "-"
		if s.BudgetMin != nil && s.BudgetMax != nil {
			budget = formatMoney(*s.BudgetMin) + " - " + formatMoney(*s.BudgetMax)
		}
		if err := table.Append([]string{
			s.ID,
			truncate(s.Name, 25),
			truncate(s.Location, 25),
			truncate(strings.Join(s.Skills, ", "), 30),
			budget,
			string(s.Verification),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func issuesTable(w io.Writer, issues []matching.AdjacencyIssue) error {
	if len(issues) == 0 {
		fmt.Fprintln(w, "Region table is consistent.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Kind", "Region", "Detail")

	for _, issue := range issues {
		if err := table.Append([]string{string(issue.Kind), issue.From, issue.String()}); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d issue(s). Edges are matched in both directions regardless.\n", len(issues))
	return nil
}

func sellerLabel(r matching.MatchResult) string {
	if r.CandidateName != "" {
		return r.CandidateName
	}
	return r.CandidateID
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
