/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than
// touching cobra directly.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/quilter/internal/config"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output string
	user   string
	force  bool
	db     string
	dir    string
)

// out is the output writer for commands. Tests can replace it.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// User returns the resolved netlist owner.
// Priority: --user flag > QUILTER_USER env var > user.email config.
func User() string { return user }

// Force returns the force flag value.
func Force() bool { return force }

// DB returns the resolved database name.
// Priority: --db flag > QUILTER_DB env var > empty (default).
func DB() string {
	if db != "" {
		return db
	}
	return os.Getenv("QUILTER_DB")
}

// Dir returns the explicit workspace directory if set.
// Priority: --dir flag > QUILTER_DIR env var > empty (use discovery).
func Dir() string {
	if dir != "" {
		return dir
	}
	return os.Getenv("QUILTER_DIR")
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if the error was printed (suppressing Cobra's copy), or the
// original error otherwise.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// detectUser resolves the default owner when --user is not given.
func detectUser() string {
	if u := os.Getenv("QUILTER_USER"); u != "" {
		return u
	}
	if cfg, err := config.Load(); err == nil {
		return cfg.User.Email
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&user, "user", "u", "", "Netlist owner (email)")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Skip confirmations")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Database name (e.g., lab for quilter-lab.db)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Workspace directory (skip discovery, use explicit path)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
