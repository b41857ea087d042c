// ls.go implements the "quilter ls" command.

package netlist

import (
	"fmt"
	"io"

	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/jpl-au/quilter/internal/ls"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List stored netlists",
		Long:  `List the current user's netlists, or every user's with --all.`,
		Args:  cobra.NoArgs,
		RunE:  e.runLs,
	}
	c.Flags().BoolP(extension.FlagAll, "a", false, "List every user's netlists")
	c.Flags().Bool(extension.FlagInvalidOnly, false, "Only netlists that failed validation")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with diagnostics, size and upload time")
	c.Flags().StringP(extension.FlagSort, "s", "", "Sort by: name, time")
	c.Flags().BoolP(extension.FlagReverse, "R", false, "Reverse sort order")
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	opts := ls.Options{User: cmd.User()}
	opts.AllUsers, _ = c.Flags().GetBool(extension.FlagAll)
	opts.InvalidOnly, _ = c.Flags().GetBool(extension.FlagInvalidOnly)
	opts.Long, _ = c.Flags().GetBool(extension.FlagLong)
	opts.Reverse, _ = c.Flags().GetBool(extension.FlagReverse)

	sortBy, _ := c.Flags().GetString(extension.FlagSort)
	if sortBy != "" && sortBy != "name" && sortBy != "time" {
		return cmd.PrintJSONError(fmt.Errorf("invalid sort field %q: must be 'name' or 'time'", sortBy))
	}
	opts.Sort = ls.SortField(sortBy)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := ls.Run(c.Context(), w, e.svc, opts)

	log.Event("netlist:ls", "list").
		Author(cmd.User()).
		Netlist(opts.User, "").
		Detail("all", opts.AllUsers).
		Detail("count", result.Count()).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
	}
	return cmd.PrintJSON(result.ToJSON())
}
