// init.go implements "quilter init".
//
// Init runs before a store exists and creates the SQLite workspace. It does
// not write config; "quilter config" manages that. With store.backend set
// to mongo there is nothing to create.

package core

import (
	"errors"
	"fmt"

	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/document"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/jpl-au/quilter/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a quilter workspace",
		Long: `Creates .quilter/quilter.db in the current directory.

Use --db to create additional databases:
  quilter init --db lab    # creates .quilter/quilter-lab.db

Use --dir to create in a different directory:
  quilter init --dir /srv/netlists

Use --local to keep the database out of git:
  quilter init --local`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .gitignore, which is meaningless for a
	// workspace created elsewhere.
	if local && dir != "" {
		return cmd.PrintJSONError(errors.New("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	err := document.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.User()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := repo.Dir + "/" + repo.DBFileName(db)
	if dir != "" {
		loc = dir + "/" + loc
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"database": loc})
	}
	fmt.Fprintf(cmd.Out(), "Initialised quilter workspace in %s\n", loc)
	return nil
}
