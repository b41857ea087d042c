// export.go implements the "quilter export" command.

package netlist

import (
	"fmt"
	"io"

	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/internal/exporter"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir> [filename...]",
		Short: "Write stored netlists to a directory",
		Long: `Write the current user's netlists into a directory, exactly as uploaded.
Existing files are kept unless --force is given.

Examples:
  quilter export ./backup
  quilter export ./backup divider.json --force`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runExport,
	}
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := args[0]
	opts := exporter.Options{
		Filenames: args[1:],
		Force:     cmd.Force(),
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := exporter.Run(c.Context(), w, e.svc, cmd.User(), dst, opts)

	log.Event("netlist:export", "export").
		Author(cmd.User()).
		Netlist(cmd.User(), "").
		Detail("dest", dst).
		Detail("count", result.Exported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export to %q: %w", dst, err))
	}
	return cmd.PrintJSON(map[string]any{
		"exported": result.Exported,
		"paths":    result.Paths,
	})
}
