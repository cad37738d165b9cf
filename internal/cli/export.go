package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/smartmatch/internal/database"
	"github.com/vijay-prabhu/smartmatch/internal/matching"
	"github.com/vijay-prabhu/smartmatch/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export [enquiry-id]",
	Short: "Export the last match run or the whole dataset",
	Long: `Export the most recent match run of an enquiry, or with --dataset every
stored enquiry and seller in the format accepted by 'smartmatch import'.

Supported formats:
  - csv: Comma-separated values, one row per match (match runs only)
  - json: JSON document

Examples:
  smartmatch export enq-1 --format=csv > matches.csv
  smartmatch export enq-1 --format=json > matches.json
  smartmatch export --dataset > backup.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var (
	exportFormat  string
	exportDataset bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().BoolVar(&exportDataset, "dataset", false, "Export all enquiries and sellers as JSON")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if exportDataset == (len(args) == 1) {
		return fmt.Errorf("give either an enquiry ID or --dataset")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if exportDataset {
		enquiries, err := e.db.ListEnquiries(ctx, database.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list enquiries: %w", err)
		}
		sellers, err := e.db.ListSellers(ctx, database.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list sellers: %w", err)
		}
		return output.JSONTo(os.Stdout, database.Dataset{Enquiries: enquiries, Sellers: sellers})
	}

	run, err := e.db.LatestMatchRun(ctx, args[0])
	if err != nil {
		return fmt.Errorf("no match run for %s: %w", args[0], err)
	}

	switch exportFormat {
	case "csv":
		return exportCSV(os.Stdout, run)
	case "json":
		return output.JSONTo(os.Stdout, run)
	default:
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}
}

func exportCSV(out io.Writer, run *database.MatchRun) error {
	w := csv.NewWriter(out)

	header := []string{"rank", "seller_id", "seller_name", "score", "quality"}
	for _, f := range matching.Factors {
		header = append(header, string(f))
	}
	header = append(header, "run_id", "run_at")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, r := range run.Results {
		record := []string{
			strconv.Itoa(i + 1),
			r.CandidateID,
			r.CandidateName,
			strconv.Itoa(r.Score),
			string(r.Quality),
		}
		for _, f := range matching.Factors {
			record = append(record, strconv.FormatFloat(r.Factors.Get(f), 'f', 4, 64))
		}
		record = append(record, run.ID, run.CreatedAt.Format(time.RFC3339))
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
