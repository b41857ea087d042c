// validate.go implements the "quilter validate" command.
//
// Design: validate never touches the store, so it works outside a workspace
// and in CI. Exit code 2 means at least one input had diagnostics.

package netlist

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/check"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newValidateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate netlist files",
		Long: `Validate one or more netlist files without storing them.
Reads stdin when no file is given or a file is "-".

Exits 2 when any input has problems.

Examples:
  quilter validate divider.json
  quilter validate boards/*.json --strict
  cat divider.json | quilter validate`,
		RunE: e.runValidate,
	}
	c.Flags().Bool(extension.FlagStrict, false, "Also report duplicate component ids")
	return c
}

func (e *Extension) runValidate(c *cobra.Command, args []string) error {
	strict, _ := c.Flags().GetBool(extension.FlagStrict)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := check.Run(w, os.Stdin, args, check.Options{Strict: strict})

	for _, f := range result.Files {
		log.Event("netlist:validate", "validate").
			Author(cmd.User()).
			Netlist("", f.Filename).
			Outcome(f.Valid, len(f.Errors)).
			Detail("strict", strict).
			Write(nil)
	}

	if err != nil {
		log.Event("netlist:validate", "validate").Author(cmd.User()).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("validate: %w", err))
	}

	if err := cmd.PrintJSON(result.Files); err != nil {
		return err
	}
	if result.Invalid() > 0 {
		c.SilenceErrors = true
		return cmd.ErrInvalid
	}
	return nil
}
