package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/smartmatch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This allows AI assistants to list enquiries and sellers and request ranked
matches. Logs are written to stderr.

Example client configuration:

{
  "mcpServers": {
    "smartmatch": {
      "command": "/path/to/smartmatch",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	// Check if MCP is enabled
	if !e.cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	svc, closeCache, err := e.service(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	server := mcp.New(e.db, svc, e.cfg.RegionTable(),
		mcp.WithLogger(e.log.WithFields(map[string]interface{}{"component": "mcp"})),
		mcp.WithVersion(version),
	)

	err = server.Start(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
