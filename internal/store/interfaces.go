// interfaces.go defines the storage abstraction for netlist persistence.
//
// Separated from the backend implementations so the service layer can run
// against SQLite or MongoDB without change. The interfaces are granular
// (Reader, Writer) so consumers only depend on the capabilities they need.
//
// Design: Records are addressed by their natural key (user, filename). The
// store enforces uniqueness of that pair itself, so two racing uploads of the
// same file cannot both succeed even if the caller's pre-check passed for both.

package store

import "context"

// Reader defines read-only operations for retrieving netlists.
type Reader interface {
	// Get returns the netlist stored under (user, filename), or ErrNotFound.
	Get(ctx context.Context, user, filename string) (*Netlist, error)

	// Exists checks presence without loading content, used to reject
	// duplicate uploads before validation runs.
	Exists(ctx context.Context, user, filename string) (bool, error)

	// ListByUser returns every netlist a user uploaded, ordered by filename.
	ListByUser(ctx context.Context, user string) ([]Netlist, error)

	// Users returns the distinct owners that hold at least one netlist.
	Users(ctx context.Context) ([]string, error)

	// Count returns how many netlists a user holds. Empty user counts all.
	Count(ctx context.Context, user string) (int64, error)
}

// Writer defines operations that modify stored netlists.
type Writer interface {
	// Insert stores a new netlist. Returns ErrAlreadyExists when the user
	// already holds a file with the same name. Key and CreatedAt are filled
	// in when empty.
	Insert(ctx context.Context, n *Netlist, opts InsertOptions) error

	// Delete permanently removes the netlist stored under exactly
	// (user, filename). Returns ErrNotFound when nothing matched.
	Delete(ctx context.Context, user, filename string) error
}

// Store defines the persistence interface for netlists.
type Store interface {
	Reader
	Writer

	// Close releases the underlying connection.
	Close() error
}
