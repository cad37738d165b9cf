package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/smartmatch/internal/database"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import enquiries and sellers from a JSON file",
	Long: `Import enquiries and sellers from a JSON document of the form

  {"enquiries": [...], "sellers": [...]}

Existing records with the same ID are updated. The import is all or nothing.
Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var ds database.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.db.Import(cmd.Context(), &ds); err != nil {
		return err
	}

	e.log.Info("import complete", map[string]interface{}{
		"file":      args[0],
		"enquiries": len(ds.Enquiries),
		"sellers":   len(ds.Sellers),
	})
	fmt.Printf("Imported %d enquiries and %d sellers\n", len(ds.Enquiries), len(ds.Sellers))
	return nil
}
