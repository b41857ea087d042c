// Package netlist validates the structure of circuit netlist documents.
//
// A netlist is a JSON object with two lists: components, each declaring the
// net every one of its pins is wired to, and nets, each listing the
// component pins ("V1.positive") that belong to it. The validator checks that
// both views agree. Every node a net lists must name an existing component,
// an existing pin on that component, and that pin must map back to the net.
//
// Validation never fails with an error. Defects are returned as an ordered
// list of human-readable diagnostics; an empty list means the document is
// structurally valid. The diagnostic wording is stable because uploaded
// histories store it and clients parse it.
//
// # Usage
//
//	diags := netlist.Validate(string(data))
//	if len(diags) > 0 {
//	    // invalid; diags explains why
//	}
//
// Callers that already decoded the document use ValidateValue. Values must
// come from encoding/json (map[string]any, []any, string, json.Number or
// float64, bool, nil).
//
// The functions in this package hold no state and are safe for concurrent use.
package netlist
