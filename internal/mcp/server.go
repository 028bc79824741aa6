// Package mcp serves jnldoc over the Model Context Protocol so agents can
// render journals and keep documentation current without shelling out.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/gorewood/jnldoc/internal/workspace"
)

// Env is what the tools operate on.
type Env struct {
	Workspace *workspace.Workspace
	Marker    string
	Logger    *zap.Logger
}

// NewServer creates an MCP server with all jnldoc tools registered.
func NewServer(version string, env Env) *mcp.Server {
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "jnldoc",
		Version: version,
	}, nil)
	registerTools(server, env)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations marks tools that rewrite only the generated part of a
// file, so repeating them is harmless.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, env Env) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_journal",
		Description: "Render one journal file (dir/name.jnl, relative to the working directory) to its description and pseudo-code.",
		Annotations: readOnlyAnnotations(),
	}, handleRenderJournal(env))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "docs_status",
		Description: "Report, per journal directory, whether its generated documentation is current, without writing anything.",
		Annotations: readOnlyAnnotations(),
	}, handleDocsStatus(env))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_docs",
		Description: "Regenerate the documentation block of every journal directory, or of one directory. Hand-written text above the marker is kept.",
		Annotations: writeAnnotations(),
	}, handleSyncDocs(env))
}
