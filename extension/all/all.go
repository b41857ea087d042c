// Package all imports the built-in quilter extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each extension registers itself via init()
	_ "github.com/jpl-au/quilter/extension/core"
	_ "github.com/jpl-au/quilter/extension/netlist"
)
