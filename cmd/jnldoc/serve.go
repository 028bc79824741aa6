package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	jnldocmcp "github.com/gorewood/jnldoc/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run jnldoc as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "jnldoc": {
        "command": "jnldoc",
        "args": ["--dir", "/path/to/journals", "serve"]
      }
    }
  }

Available tools: render_journal, docs_status, sync_docs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadAppEnv(cmd)
			if err != nil {
				newPrinter(cmd).Error(err)
				return err
			}
			defer func() { _ = env.log.Sync() }()

			server := jnldocmcp.NewServer(buildVersion(), jnldocmcp.Env{
				Workspace: env.ws,
				Marker:    env.cfg.Marker,
				Logger:    env.log,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
