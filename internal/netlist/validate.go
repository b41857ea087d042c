// validate.go implements the structural checks over a decoded netlist.
//
// Design: Two linear passes. The component pass builds a lookup of well-formed
// components keyed by id; the net pass resolves every node reference against
// it. Malformed entries are reported and skipped so one bad component does not
// hide defects elsewhere in the document. Only a parse failure or a non-object
// top level stops validation early.

package netlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// requiredComponentFields lists the keys every component must declare, in the
// order they are reported when missing.
var requiredComponentFields = []string{"id", "type", "value", "pins"}

// Options tunes validation.
type Options struct {
	// Strict reports components that reuse an id already declared earlier in
	// the document. Without it the later component silently replaces the
	// earlier one for net resolution.
	Strict bool
}

// Report is the outcome of validating a single document.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Check validates raw JSON text and wraps the diagnostics in a Report.
// Errors is never nil so it encodes as an empty JSON list.
func Check(raw string, opts Options) Report {
	diags := ValidateWith(raw, opts)
	if diags == nil {
		diags = []string{}
	}
	return Report{Valid: len(diags) == 0, Errors: diags}
}

// Validate parses raw as JSON and validates it with default options.
func Validate(raw string) []string {
	return ValidateWith(raw, Options{})
}

// ValidateWith parses raw as JSON and validates it. A parse failure yields a
// single "Invalid JSON" diagnostic.
func ValidateWith(raw string, opts Options) []string {
	v, err := Decode(raw)
	if err != nil {
		return []string{"Invalid JSON: " + err.Error()}
	}
	return ValidateValueWith(v, opts)
}

// ValidateValue validates an already decoded JSON value with default options.
func ValidateValue(v any) []string {
	return ValidateValueWith(v, Options{})
}

// ValidateValueWith validates an already decoded JSON value.
func ValidateValueWith(v any, opts Options) []string {
	doc, ok := v.(map[string]any)
	if !ok {
		return []string{"Top-level JSON must be an object"}
	}

	var d diagnostics

	components, ok := doc["components"].([]any)
	if !ok {
		d.add("'components' must be a list")
	}
	nets, ok := doc["nets"].([]any)
	if !ok {
		d.add("'nets' must be a list")
	}

	lookup := checkComponents(&d, components, opts)
	checkNets(&d, nets, lookup)

	return d.list
}

// Decode parses raw as a single JSON value. Numbers are kept as json.Number
// so diagnostics quote them as written. Trailing data after the value is an
// error.
func Decode(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected end of JSON input")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("extra data after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

// component is the part of a well-formed component the net pass needs.
type component struct {
	pins map[string]any
}

// checkComponents reports malformed components and returns the lookup of
// well-formed ones keyed by id.
func checkComponents(d *diagnostics, components []any, opts Options) map[string]component {
	lookup := make(map[string]component, len(components))

	for idx, raw := range components {
		comp, ok := raw.(map[string]any)
		if !ok {
			d.addf("Component at index %d is not an object", idx)
			continue
		}

		var missing []string
		for _, field := range requiredComponentFields {
			if _, ok := comp[field]; !ok {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			d.addf("Component at index %d is missing fields: %s", idx, reprStrings(missing))
			continue
		}

		pins, ok := comp["pins"].(map[string]any)
		if !ok {
			id := "unknown"
			if v, ok := comp["id"]; ok {
				id = str(v)
			}
			d.addf("Component '%s' has 'pins' that is not a dict", id)
			continue
		}

		// Node references are text, so only string ids can ever be resolved.
		id, ok := comp["id"].(string)
		if !ok {
			continue
		}
		if _, dup := lookup[id]; dup && opts.Strict {
			d.addf("Component '%s' is defined more than once", id)
		}
		lookup[id] = component{pins: pins}
	}
	return lookup
}

// checkNets resolves every node reference of every well-formed net.
func checkNets(d *diagnostics, nets []any, lookup map[string]component) {
	for idx, raw := range nets {
		net, ok := raw.(map[string]any)
		if !ok {
			d.addf("Net at index %d is not an object", idx)
			continue
		}

		netID, hasID := net["id"]
		rawNodes, hasNodes := net["nodes"]
		if !hasID || !hasNodes {
			d.addf("Net at index %d missing 'id' or 'nodes'", idx)
			continue
		}

		nodes, ok := rawNodes.([]any)
		if !ok {
			d.addf("Net '%s' has 'nodes' that is not a list", str(netID))
			continue
		}

		for _, node := range nodes {
			checkNode(d, node, netID, lookup)
		}
	}
}

// checkNode validates a single node reference of the net identified by netID.
func checkNode(d *diagnostics, node, netID any, lookup map[string]component) {
	ref, ok := node.(string)
	compID, pin, found := strings.Cut(ref, ".")
	if !ok || !found {
		d.addf("Net '%s' contains malformed node '%s' (must be like 'V1.positive')", str(netID), str(node))
		return
	}

	comp, ok := lookup[compID]
	if !ok {
		d.addf("Net '%s' references unknown component '%s'", str(netID), compID)
		return
	}

	target, ok := comp.pins[pin]
	if !ok {
		d.addf("Net '%s' references unknown pin '%s' on component '%s'", str(netID), pin, compID)
		return
	}

	if !equal(target, netID) {
		d.addf("Node '%s' in net '%s' does not match component '%s' pin mapping').", ref, str(netID), compID)
	}
}

// diagnostics accumulates messages in discovery order.
type diagnostics struct {
	list []string
}

func (d *diagnostics) add(msg string) {
	d.list = append(d.list, msg)
}

func (d *diagnostics) addf(format string, args ...any) {
	d.list = append(d.list, fmt.Sprintf(format, args...))
}
