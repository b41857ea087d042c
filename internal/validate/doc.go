// Package validate provides input validation for quilter's storage keys.
//
// This package enforces integrity rules at the boundary between user input
// and the storage layer: the user identifier and filename that key every
// stored netlist, and the size of uploaded content. It does not look inside
// the netlist itself; that is package netlist's job.
//
// All validation errors wrap one of the sentinel errors defined in errors.go.
// Use errors.Is() for type-safe error checking:
//
//	if errors.Is(err, validate.ErrInvalidName) {
//	    // handle invalid name
//	}
package validate
