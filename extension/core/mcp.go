// mcp.go implements "quilter mcp", the MCP server over stdio.
//
// It opens its own service instead of the shared one from cmd so the
// server can start (and offer quilter_init) before a workspace exists.

package core

import (
	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --db to serve a specific database:
  quilter mcp --db lab    # serve quilter-lab.db`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			strict, _ := c.Flags().GetBool(extension.FlagStrict)
			return mcp.Serve(cmd.DB(), cmd.Dir(), strict)
		},
	}
	c.Flags().Bool(extension.FlagStrict, false, "Report duplicate component ids")
	return c
}
