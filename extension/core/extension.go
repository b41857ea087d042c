// Package core provides the core extension for quilter.
// It registers commands: init, config, serve, mcp, guide, version.
package core

import (
	"github.com/jpl-au/quilter/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Commands returns the workspace, server and help commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newMCPCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil; the MCP server registers the core tools itself.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve and mcp open the store themselves so they can start without one.
// version needs no store at all.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "mcp", "version"}
}
