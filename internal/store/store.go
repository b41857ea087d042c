// Package store defines netlist persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Netlist is a single uploaded netlist file together with the outcome of
// validating it. Records are keyed by (User, Filename); a user can hold at
// most one file of a given name.
type Netlist struct {
	ID        int64    // Database primary key (internal)
	Key       string   // Unique 8-char identifier
	User      string   // Owner identifier (email address)
	Filename  string   // Name the file was uploaded under
	Content   string   // Uploaded document text
	Valid     bool     // True when validation produced no diagnostics
	Errors    []string // Validation diagnostics in discovery order
	CreatedAt int64    // Unix timestamp of upload
}

// NetlistJSON is the API representation of a Netlist. The document is
// embedded as parsed JSON rather than a string, and the owner is exposed as
// "email" to stay compatible with existing web clients.
type NetlistJSON struct {
	Key       string          `json:"key"`
	Email     string          `json:"email"`
	Filename  string          `json:"filename"`
	Netlist   json.RawMessage `json:"netlist"`
	Valid     bool            `json:"valid"`
	Errors    []string        `json:"errors"`
	CreatedAt string          `json:"created_at"`
}

// ToJSON converts a Netlist to its API representation with an RFC3339
// timestamp. Content that is not valid JSON is embedded as a string.
func (n *Netlist) ToJSON() NetlistJSON {
	doc := json.RawMessage(n.Content)
	if !json.Valid(doc) {
		b, _ := json.Marshal(n.Content)
		doc = b
	}
	errs := n.Errors
	if errs == nil {
		errs = []string{}
	}
	return NetlistJSON{
		Key:       n.Key,
		Email:     n.User,
		Filename:  n.Filename,
		Netlist:   doc,
		Valid:     n.Valid,
		Errors:    errs,
		CreatedAt: time.Unix(n.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// InsertOptions configures an insert operation.
type InsertOptions struct {
	MaxName    int   // 0 means no limit
	MaxContent int64 // 0 means no limit
}
