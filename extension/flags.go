// flags.go defines constants for CLI flag names shared by several commands.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "invalid-only" -> FlagInvalidOnly).

package extension

const (
	// Boolean flags

	FlagAll         = "all"          // Every user's netlists
	FlagErrors      = "errors"       // Show diagnostics instead of content
	FlagHidden      = "hidden"       // Include hidden files/directories
	FlagInvalidOnly = "invalid-only" // Only netlists that failed validation
	FlagLocal       = "local"        // Use local scope
	FlagLong        = "long"         // Long format output
	FlagPretty      = "pretty"       // Re-indent JSON output
	FlagReverse     = "reverse"      // Reverse sort order
	FlagStrict      = "strict"       // Report duplicate component ids

	// String flags

	FlagAddr   = "addr"   // Listen address
	FlagFile   = "file"   // Local file to compare against
	FlagName   = "name"   // Store a single file under this name
	FlagOrigin = "origin" // Allowed CORS origin
	FlagSort   = "sort"   // Sort field
	FlagStatic = "static" // Directory of the built web application
)
