// Package extension is how quilter assembles its command surface. Each
// extension contributes cobra commands and MCP tools and registers itself at
// init time; cmd wires whatever is registered.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for quilter extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the Context once the netlist service is
// open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't need the netlist store. Commands named by NoStoreCommands do not
// open a service in PersistentPreRunE: bootstrap commands such as init,
// pure validation, and servers that open their own service.
type Storeless interface {
	NoStoreCommands() []string
}
