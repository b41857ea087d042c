// upload.go implements the "quilter upload" command.
//
// Design: a file is uploaded under its base name (or --name); a directory
// uploads every *.json beneath it. Rejected files do not stop the run.

package netlist

import (
	"fmt"
	"io"

	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/jpl-au/quilter/internal/upload"
	"github.com/spf13/cobra"
)

func (e *Extension) newUploadCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "upload <file|dir>",
		Short: "Validate and store netlists",
		Long: `Validate netlists and store them for the current user.

Netlists with problems are stored and marked invalid. Files that are not
JSON, or whose name the user already holds, are rejected.

Exits 2 when any file was invalid or rejected.

Examples:
  quilter upload divider.json
  quilter upload ./export/divider-v2.json --name divider.json
  quilter upload ./boards`,
		Args: cobra.ExactArgs(1),
		RunE: e.runUpload,
	}
	c.Flags().String(extension.FlagName, "", "Store a single file under this name")
	c.Flags().Bool(extension.FlagHidden, false, "Include hidden files and directories")
	c.Flags().Bool(extension.FlagStrict, false, "Also report duplicate component ids")
	return c
}

func (e *Extension) runUpload(c *cobra.Command, args []string) error {
	src := args[0]
	var opts upload.Options
	opts.Name, _ = c.Flags().GetString(extension.FlagName)
	opts.Hidden, _ = c.Flags().GetBool(extension.FlagHidden)

	if strict, _ := c.Flags().GetBool(extension.FlagStrict); strict {
		if s, ok := e.svc.(strictSetter); ok {
			s.SetStrict(true)
		}
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := upload.Run(c.Context(), w, e.svc, cmd.User(), src, opts)

	for _, u := range result.Uploads {
		log.Event("netlist:upload", "upload").
			Author(cmd.User()).
			Netlist(cmd.User(), u.Filename).
			Outcome(u.Valid, len(u.Errors)).
			Detail("message", u.Message).
			Write(nil)
	}

	if err != nil {
		log.Event("netlist:upload", "upload").
			Author(cmd.User()).
			Detail("source", src).
			Write(err)
		return cmd.PrintJSONError(fmt.Errorf("upload %q: %w", src, err))
	}

	if !cmd.JSON() && len(result.Uploads) > 1 {
		fmt.Fprintf(w, "Stored %d (%d invalid), rejected %d\n", result.Stored, result.Invalid, result.Rejected)
	}
	if err := cmd.PrintJSON(result.Uploads); err != nil {
		return err
	}
	if result.Failed() {
		c.SilenceErrors = true
		return cmd.ErrInvalid
	}
	return nil
}
