// diff.go implements the "quilter diff" command and the quilter_diff MCP
// tool.
//
// Design: both sides are compared re-indented, so only structural changes
// show up. A stored netlist is compared with another of the user's
// netlists, or with a local file via --file.

package netlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/diff"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <filename> [other]",
		Short: "Compare stored netlists",
		Long: `Compare a stored netlist with another of your netlists or with a local file.

Examples:
  quilter diff divider.json divider-v2.json
  quilter diff divider.json --file ./divider.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runDiff,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Compare against a local file")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	filename := args[0]
	file, _ := c.Flags().GetString(extension.FlagFile)

	var opts diff.Options
	switch {
	case len(args) == 2 && file != "":
		return cmd.PrintJSONError(fmt.Errorf("give either a second filename or --file, not both"))
	case len(args) == 2:
		opts.Other = args[1]
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading file %s: %w", file, err))
		}
		opts.FileContent = string(b)
		opts.FileLabel = file
	default:
		return cmd.PrintJSONError(fmt.Errorf("nothing to compare: give a second filename or --file"))
	}

	w := cmd.Out()
	colour := false
	if cmd.JSON() {
		w = io.Discard
	} else if f, ok := w.(*os.File); ok {
		colour = term.IsTerminal(int(f.Fd()))
	}

	r, err := diff.Run(c.Context(), w, e.svc, cmd.User(), filename, opts, colour)

	log.Event("netlist:diff", "diff").
		Author(cmd.User()).
		Netlist(cmd.User(), filename).
		Detail("other", opts.Other).
		Detail("file", opts.FileLabel).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff %q: %w", filename, err))
	}
	return cmd.PrintJSON(map[string]any{
		"old":     r.Old,
		"new":     r.New,
		"diff":    r.Format(false),
		"changed": r.Changed(),
	})
}

func diffTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("quilter_diff",
			mcp.WithDescription("Compare a stored netlist with another of the same user's netlists, or with netlist content you supply. Both sides are compared re-indented."),
			mcp.WithString("email", mcp.Required(), mcp.Description("Owner of the netlists")),
			mcp.WithString("filename", mcp.Required(), mcp.Description("Stored netlist to compare")),
			mcp.WithString("other", mcp.Description("Second stored filename")),
			mcp.WithString("content", mcp.Description("Netlist JSON to compare against instead of a stored file")),
		),
		Handler: handleDiff,
	}
}

func handleDiff(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email := req.GetString("email", "")
	filename := req.GetString("filename", "")
	if email == "" || filename == "" {
		return mcp.NewToolResultError("email and filename are required"), nil
	}

	opts := diff.Options{
		Other:       req.GetString("other", ""),
		FileContent: req.GetString("content", ""),
		FileLabel:   "supplied",
	}
	if opts.Other == "" && opts.FileContent == "" {
		return mcp.NewToolResultError("other or content is required"), nil
	}

	r, err := extCtx.Service().Diff(ctx, email, filename, opts)

	log.Event("mcp:diff", "diff").
		Author(email).
		Netlist(email, filename).
		Detail("other", opts.Other).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := json.Marshal(map[string]any{
		"diff":    r.Format(false),
		"changed": r.Changed(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal diff: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
