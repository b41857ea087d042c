// mongo_doc.go converts between netlist text and the embedded "netlist"
// document that older deployments stored instead of the uploaded text.
//
// Records written by the earlier service hold only email, filename,
// netlist, valid and errors. New records carry the text in "content" and
// the parsed document in "netlist", so both generations read the same way.

package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/juju/mgo/v3/bson"
)

// newMongoNetlist builds the stored document for n.
func newMongoNetlist(n *Netlist) mongoNetlist {
	doc := mongoNetlist{
		Key:       n.Key,
		Email:     n.User,
		Filename:  n.Filename,
		Content:   n.Content,
		Valid:     n.Valid,
		Errors:    n.Errors,
		CreatedAt: n.CreatedAt,
	}
	// Content that does not parse as an object is still stored as text.
	if v, err := jsonToBSON(n.Content); err == nil {
		if d, ok := v.(bson.D); ok {
			doc.Netlist = d
		}
	}
	return doc
}

func (d mongoNetlist) netlist() Netlist {
	errs := d.Errors
	if errs == nil {
		errs = []string{}
	}
	n := Netlist{
		Key:       d.Key,
		User:      d.Email,
		Filename:  d.Filename,
		Content:   d.Content,
		Valid:     d.Valid,
		Errors:    errs,
		CreatedAt: d.CreatedAt,
	}
	if n.Content == "" && len(d.Netlist) > 0 {
		if b, err := bsonToJSON(d.Netlist); err == nil {
			n.Content = string(b)
		}
	}
	if d.ID.Valid() {
		if n.CreatedAt == 0 {
			n.CreatedAt = d.ID.Time().Unix()
		}
		if n.Key == "" {
			h := d.ID.Hex()
			n.Key = h[len(h)-8:]
		}
	}
	return n
}

// jsonToBSON decodes raw into values mgo encodes faithfully: objects become
// bson.D so key order survives, integers int64, other numbers float64.
func jsonToBSON(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after netlist document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			doc := bson.D{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				doc = append(doc, bson.DocElem{Name: kt.(string), Value: v})
			}
			_, err := dec.Token()
			return doc, err
		case '[':
			list := []any{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			_, err := dec.Token()
			return list, err
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		return t, nil
	}
}

// bsonToJSON renders a decoded netlist document as compact JSON, keeping
// the stored key order.
func bsonToJSON(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := writeJSON(&b, v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func writeJSON(b *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case bson.D:
		b.WriteByte('{')
		for i, e := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			k, _ := json.Marshal(e.Name)
			b.Write(k)
			b.WriteByte(':')
			if err := writeJSON(b, e.Value); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		out, err := json.Marshal(t)
		if err != nil {
			return err
		}
		b.Write(out)
	}
	return nil
}
