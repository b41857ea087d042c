// cat.go implements the "quilter cat" command.

package netlist

import (
	"fmt"
	"io"

	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/cat"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newCatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "cat <filename>",
		Short: "Print a stored netlist",
		Long: `Print a stored netlist exactly as uploaded.

Examples:
  quilter cat divider.json
  quilter cat divider.json --pretty
  quilter cat divider.json --errors`,
		Args: cobra.ExactArgs(1),
		RunE: e.runCat,
	}
	c.Flags().Bool(extension.FlagPretty, false, "Re-indent the document")
	c.Flags().Bool(extension.FlagErrors, false, "Print the stored diagnostics instead")
	return c
}

func (e *Extension) runCat(c *cobra.Command, args []string) error {
	filename := args[0]
	var opts cat.Options
	opts.Pretty, _ = c.Flags().GetBool(extension.FlagPretty)
	opts.Errors, _ = c.Flags().GetBool(extension.FlagErrors)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := cat.Run(c.Context(), w, e.svc, cmd.User(), filename, opts)

	ev := log.Event("netlist:cat", "read").
		Author(cmd.User()).
		Netlist(cmd.User(), filename)
	if result.Netlist != nil {
		ev = ev.Outcome(result.Netlist.Valid, len(result.Netlist.Errors))
	}
	ev.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", filename, err))
	}
	return cmd.PrintJSON(result.Netlist.ToJSON())
}
