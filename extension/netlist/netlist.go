// Package netlist provides the netlist extension.
// Registers commands: validate, upload, ls, cat, rm, diff, export.
//
// Each command lives in its own file so flag handling and output
// formatting stay next to the command that owns them.

package netlist

import (
	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/config"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the netlist extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "netlist".
func (e *Extension) Name() string { return "netlist" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the netlist commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newValidateCmd(),
		e.newUploadCmd(),
		e.newLsCmd(),
		e.newCatCmd(),
		e.newRmCmd(),
		e.newDiffCmd(),
		e.newExportCmd(),
	}
}

// MCPTools returns tools the MCP server does not register itself.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{diffTool()}
}

// NoStoreCommands returns "validate", which checks files without a workspace.
func (e *Extension) NoStoreCommands() []string {
	return []string{"validate"}
}

// strictSetter is implemented by document.Service.
type strictSetter interface {
	SetStrict(bool)
}
