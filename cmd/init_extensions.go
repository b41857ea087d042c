/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. The service is created once and shared across all
// extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/config"
	"github.com/jpl-au/quilter/internal/document"
	"github.com/jpl-au/quilter/internal/log"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// userRequiredCommands lists commands that act on one user's netlists.
var userRequiredCommands = map[string]bool{
	"upload": true,
	"ls":     true,
	"cat":    true,
	"rm":     true,
	"diff":   true,
	"export": true,
}

// buildNoStoreCommands creates the set of commands that skip store
// initialisation: bootstrap commands that must work before "quilter init",
// plus whatever extensions declare through extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

var (
	extContext extension.Context
	extService *document.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the netlist service and injects it into extensions.
// Runs at most once per process.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := document.New(DB(), Dir())
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		log.SetProject(svc.Location())

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, cfg)
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		noStoreCommands = buildNoStoreCommands()
	})
}

// Service returns the shared netlist service, or nil before initialisation.
func Service() *document.Service {
	return extService
}
