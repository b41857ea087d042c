// Package document implements the netlist service on top of a store
// backend. It owns the upload flow (decode, duplicate check, validate,
// persist) and fires extension events after changes are committed.
package document

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jpl-au/quilter/extension"
	"github.com/jpl-au/quilter/internal/config"
	"github.com/jpl-au/quilter/internal/log"
	"github.com/jpl-au/quilter/internal/netlist"
	"github.com/jpl-au/quilter/internal/repo"
	"github.com/jpl-au/quilter/internal/service"
	"github.com/jpl-au/quilter/internal/store"
	"github.com/jpl-au/quilter/internal/validate"
)

// Service provides netlist operations backed by a Store.
type Service struct {
	store      store.Store
	backend    string
	location   string
	maxName    int
	maxContent int64
	validation netlist.Options
	extCtx     extension.Context
}

var _ service.Service = (*Service)(nil)

// New opens the configured backend. For SQLite the database is found in
// dir/.quilter, or discovered by walking up from the working directory when
// dir is empty; db selects a named database (empty for the default). For
// MongoDB db and dir are ignored and store.mongo_url (or $MONGO_URL) is
// dialled.
func New(db, dir string) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}

	switch cfg.Backend() {
	case config.BackendMongo:
		m, err := store.OpenMongo(cfg.MongoURL(), "")
		if err != nil {
			return nil, err
		}
		svc := NewWithStore(m, cfg)
		svc.location = "mongo:" + store.MongoDatabase
		return svc, nil
	default:
		dbPath, err := repo.Locate(db, dir)
		if err != nil {
			return nil, err
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return nil, err
		}
		svc := NewWithStore(s, cfg)
		svc.location = filepath.Dir(dbPath)
		return svc, nil
	}
}

// NewWithStore wraps an already opened store. The service takes ownership
// and closes it on Close. A nil cfg uses defaults.
func NewWithStore(st store.Store, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	backend := config.BackendSQLite
	if _, ok := st.(*store.MongoStore); ok {
		backend = config.BackendMongo
	}
	return &Service{
		store:      st,
		backend:    backend,
		maxName:    cfg.MaxName(),
		maxContent: cfg.MaxContent(),
	}
}

// Init initialises a new SQLite workspace. See repo.Init.
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

// Close checkpoints the WAL (SQLite only) and closes the backend.
func (s *Service) Close() error {
	if sq, ok := s.store.(*store.SQLiteStore); ok {
		if err := sq.Checkpoint(context.Background()); err != nil {
			log.Event("service:close", "checkpoint").
				Detail("error", err.Error()).
				Write(err)
		}
	}
	return s.store.Close()
}

// Backend names the active store backend.
func (s *Service) Backend() string {
	return s.backend
}

// Location identifies where netlists are kept: the .quilter directory for
// SQLite, or "mongo:<database>". Used as the audit log project.
func (s *Service) Location() string {
	return s.location
}

// SetStrict enables duplicate component id reporting on upload.
func (s *Service) SetStrict(strict bool) {
	s.validation.Strict = strict
}

// SetExtensionContext sets the extension context for firing events.
// Called from cmd/root.go after creating the context.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// key validates and normalises a (user, filename) pair. The store checks
// again; this catches bad keys before any backend round trip.
func (s *Service) key(user, filename string) (string, string, error) {
	u, err := validate.User(user, s.maxName)
	if err != nil {
		return "", "", err
	}
	f, err := validate.Filename(filename, s.maxName)
	if err != nil {
		return "", "", err
	}
	return u, f, nil
}

// fireEvent notifies all registered extension event handlers. Handler
// errors are logged, not returned.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, ext := range extension.All() {
		if h, ok := ext.(extension.EventHandler); ok {
			if err := h.HandleEvent(s.extCtx, e); err != nil {
				log.Event("event:error", "error").
					Netlist(e.EventOwner(), e.EventFilename()).
					Detail("ext", ext.Name()).
					Detail("event", string(e.EventType())).
					Write(fmt.Errorf("handle event: %w", err))
			}
		}
	}
}
