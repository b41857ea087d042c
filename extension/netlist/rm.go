// rm.go implements the "quilter rm" command.

package netlist

import (
	"fmt"
	"io"

	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/jpl-au/quilter/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <filename...>",
		Short: "Delete stored netlists",
		Long: `Permanently delete the current user's netlists by filename.
Other users' files of the same name are not affected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := rm.Run(c.Context(), w, e.svc, cmd.User(), args)

	for _, f := range result.Deleted {
		log.Event("netlist:rm", "delete").
			Author(cmd.User()).
			Netlist(cmd.User(), f).
			Write(nil)
	}

	if err != nil {
		failed := args[len(result.Deleted)]
		log.Event("netlist:rm", "delete").
			Author(cmd.User()).
			Netlist(cmd.User(), failed).
			Write(err)
		return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", failed, err))
	}
	return cmd.PrintJSON(result)
}
