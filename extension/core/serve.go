// serve.go implements "quilter serve", the HTTP server for the web client.
//
// Like mcp, serve opens its own service. If no SQLite workspace exists the
// server still starts so /validate and the web client work; storage routes
// answer 503 until one is created.

package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpl-au/quilter/cmd"
	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/config"
	"github.com/jpl-au/quilter/internal/document"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/jpl-au/quilter/internal/repo"
	"github.com/jpl-au/quilter/internal/server"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serve the netlist HTTP API and the built web client.

  quilter serve
  quilter serve --addr 127.0.0.1:9000
  quilter serve --origin https://netlists.example --static ./frontend/dist

Flags override server.addr, server.frontend_origin and server.static_dir
(and $QUILTER_ADDR, $FRONTEND_ORIGIN).`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	c.Flags().String(extension.FlagAddr, "", "Listen address (default :8000)")
	c.Flags().String(extension.FlagOrigin, "", "Allowed CORS origin (default *)")
	c.Flags().String(extension.FlagStatic, "", "Directory of the built web client (default frontend/dist)")
	c.Flags().Bool(extension.FlagStrict, false, "Report duplicate component ids")
	return c
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	strict, _ := c.Flags().GetBool(extension.FlagStrict)

	opts := server.Options{
		Addr:           flagOr(c, extension.FlagAddr, cfg.Addr()),
		FrontendOrigin: flagOr(c, extension.FlagOrigin, cfg.FrontendOrigin()),
		StaticDir:      flagOr(c, extension.FlagStatic, cfg.StaticDir()),
		MaxUpload:      cfg.MaxContent(),
		Strict:         strict,
		Logger:         logger,
	}

	var svc service.Service
	doc, err := document.New(cmd.DB(), cmd.Dir())
	switch {
	case errors.Is(err, repo.ErrNotInitialised):
		logger.Warn("no workspace found, serving without storage - run 'quilter init'")
	case err != nil:
		return fmt.Errorf("opening store: %w", err)
	default:
		doc.SetStrict(strict)
		doc.SetExtensionContext(extension.NewContext(doc, cfg))
		log.SetProject(doc.Location())
		defer doc.Close()
		svc = doc
		logger.Info("store opened", "backend", doc.Backend(), "location", doc.Location())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.New(svc, opts).ListenAndServe(ctx)
	log.Event("core:serve", "serve").Author(cmd.User()).Detail("addr", opts.Addr).Write(err)
	return err
}

// flagOr returns the flag value when it was given, otherwise def.
func flagOr(c *cobra.Command, name, def string) string {
	if c.Flags().Changed(name) {
		v, _ := c.Flags().GetString(name)
		return v
	}
	return def
}
