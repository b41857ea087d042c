// repr.go renders decoded JSON values for diagnostics.
//
// Stored histories contain diagnostics produced by earlier releases, which
// printed values with Python conventions: None, True/False, single-quoted
// strings inside lists, floats in shortest round-trip form with a trailing
// ".0". Rendering the same way keeps old and new diagnostics comparable.
// Objects are the exception: decoded maps do not keep document order, so
// their keys are printed sorted.

package netlist

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// str renders v as it appears when interpolated into a message. Strings are
// printed verbatim; everything else uses repr.
func str(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return repr(v)
}

// repr renders v as a literal. Object keys are sorted since decoded maps do
// not keep document order.
func repr(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return quote(t)
	case json.Number:
		return reprNumber(t.String())
	case float64:
		return reprFloat(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = repr(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = quote(k) + ": " + repr(t[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "?"
		}
		return string(b)
	}
}

// reprNumber renders a JSON number literal. Integers keep their digits;
// anything with a fraction or exponent is a float.
func reprNumber(lit string) string {
	if !strings.ContainsAny(lit, ".eE") {
		if i, ok := new(big.Int).SetString(lit, 10); ok {
			return i.String()
		}
		return lit
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !math.IsInf(f, 0) {
		return lit
	}
	return reprFloat(f)
}

// reprFloat renders f as the shortest string that round-trips, switching to
// exponent form below 1e-4 and from 1e16: 100000.0, 1.5, 1e-05, 1e+16.
func reprFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(sci, "e")
	e, _ := strconv.Atoi(exp)
	if e < -4 || e >= 16 {
		sign := "+"
		if e < 0 {
			sign, e = "-", -e
		}
		return fmt.Sprintf("%se%s%02d", mant, sign, e)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// reprStrings renders a list of names, e.g. ['id', 'pins'].
func reprStrings(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = quote(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// quote wraps s in single quotes, switching to double quotes when s contains
// a single quote and no double quote.
func quote(s string) string {
	q := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = `"`
	}
	var b strings.Builder
	b.WriteString(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case string(r) == q:
			b.WriteString(`\` + q)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(q)
	return b.String()
}

// equal reports whether two decoded JSON values are equal. Numbers compare
// by value, so 1 and 1.0 are the same net id, and booleans count as 1 and 0
// against numbers, so a pin mapped to true belongs to net 1.
func equal(a, b any) bool {
	switch x := a.(type) {
	case json.Number, float64, bool:
		xf, ok := number(x)
		if !ok {
			return false
		}
		yf, ok := number(b)
		return ok && xf.Cmp(yf) == 0
	case string:
		y, ok := b.(string)
		return ok && x == y
	case nil:
		return b == nil
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !equal(xv, yv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// number converts a JSON number to an exact big.Float. Booleans are 1 and 0.
func number(v any) (*big.Float, bool) {
	switch n := v.(type) {
	case bool:
		if n {
			return big.NewFloat(1), true
		}
		return big.NewFloat(0), true
	case json.Number:
		f, _, err := big.ParseFloat(n.String(), 10, 256, big.ToNearestEven)
		if err != nil {
			return nil, false
		}
		return f, true
	case float64:
		return big.NewFloat(n), true
	default:
		return nil, false
	}
}
