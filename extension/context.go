// context.go defines the Context interface for extension access to quilter
// internals.
//
// Design: Extensions receive Context during Init, after registration, so the
// service can be opened lazily and only for commands that need it.

package extension

import (
	"github.com/jpl-au/quilter/internal/config"
	"github.com/jpl-au/quilter/internal/service"
)

// Context provides extensions controlled access to quilter internals.
type Context interface {
	// Service returns the netlist service.
	Service() service.Service

	// Config returns user configuration.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config) Context {
	return &extContext{
		svc: svc,
		cfg: cfg,
	}
}

func (c *extContext) Service() service.Service {
	return c.svc
}

func (c *extContext) Config() *config.Config {
	return c.cfg
}
