package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/HerbHall/terroir/internal/mcp"
)

func newMCPCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol server for AI assistant integration.

By default the server speaks JSON-RPC over stdio. Logs go to stderr.
Use --port to serve streamable HTTP instead.

Tools: simulate, list_regions, get_region, list_grapes, get_grape

Examples:
  terroir mcp
  terroir mcp --port 8181`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMCP(cmd)
		},
	}
	cmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	return cmd
}

func (a *app) runMCP(cmd *cobra.Command) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	srv, err := mcp.NewServer(a.engine, nil, a.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if port > 0 {
		return srv.RunHTTP(ctx, fmt.Sprintf(":%d", port))
	}
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

