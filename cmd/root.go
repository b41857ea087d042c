/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: PersistentPreRunE opens the netlist service lazily. Only commands
// that need stored netlists trigger extension init, so validate, guide and
// config work without a workspace.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/quilter/internal/log"
	"github.com/spf13/cobra"
)

// ErrInvalid is returned by commands whose input failed validation. The
// diagnostics have already been printed, so Execute only sets the exit code.
var ErrInvalid = errors.New("netlist invalid")

var rootCmd = &cobra.Command{
	Use:   "quilter",
	Short: "Validate and store circuit netlists",
	Long: `Validates JSON circuit netlists (components and the nets joining their pins),
stores them per user, and serves them to the web client over HTTP or to LLMs over MCP.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if user == "" {
			user = detectUser()
		}

		cmdName := topLevelCmdName(cmd)
		if userRequiredCommands[cmdName] && user == "" {
			return fmt.Errorf("user not configured (checked --user, $QUILTER_USER, .quilter/config.yaml and ~/.quilter/config.yaml)\n\nRun: quilter config user.email you@example.com")
		}

		if !noStoreCommands[cmdName] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the direct child of root that cmd
// belongs to.
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Exit code 1 means an error, 2 means a netlist failed validation.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	registerExtensions()
	err := rootCmd.Execute()

	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}
	log.Close()

	switch {
	case errors.Is(err, ErrInvalid):
		os.Exit(2)
	case err != nil:
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
