package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation assistant over MCP",
	Long: `Expose the documentation assistant to AI clients over the Model
Context Protocol: an 'ask' tool for grounded answers, an 'index_stats'
tool, and resources listing the indexed files and the feedback log.

Without flags the server speaks JSON-RPC over stdio, which is what
Claude Desktop and most MCP clients expect:

  {
    "mcpServers": {
      "lifta": {
        "command": "/path/to/lifta",
        "args": ["mcp", "serve"]
      }
    }
  }

With --port it listens on HTTP instead, handy for the MCP Inspector or
for access from another machine:

  lifta mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve over HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	services, err := buildApp(cmd)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Query:    services.Query,
		Index:    services.Index,
		Feedback: feedbackService,
	})
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
