package strategy

import (
	"bytes"
	"errors"
	"io"
	"sort"

	"github.com/goccy/go-json"

	"github.com/weiihann/modelbench/fixture"
)

// numberLiteral matches the json.Number produced by a decoder in UseNumber mode.
type numberLiteral interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

// Document is a string-keyed JSON object whose accessors check the kind of
// each entry at call time.
type Document struct {
	fields map[string]any
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{fields: make(map[string]any)}
}

// ParseDocument decodes a JSON object into a Document. Numbers keep their
// literal form until read.
func ParseDocument(data []byte) (*Document, error) {
	r := bytes.NewReader(data)
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, formatError(err)
	}

	rest, err := io.ReadAll(io.MultiReader(dec.Buffered(), r))
	if err != nil {
		return nil, formatError(err)
	}

	if len(bytes.TrimSpace(rest)) > 0 {
		return nil, formatError(errors.New("unexpected data after top-level object"))
	}

	if fields == nil {
		return nil, formatError(errors.New("top-level value is not an object"))
	}

	return &Document{fields: fields}, nil
}

// Len returns the number of entries.
func (d *Document) Len() int { return len(d.fields) }

// Has reports whether key is present, including keys holding null.
func (d *Document) Has(key string) bool {
	_, ok := d.fields[key]

	return ok
}

// Keys returns the entry names in sorted order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.fields))
	for k := range d.fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Get returns the scalar stored under key. Objects and arrays fail with
// ErrType.
func (d *Document) Get(key string) (Scalar, error) {
	raw, ok := d.fields[key]
	if !ok {
		return Scalar{}, missingField(key)
	}

	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int64:
		return Int(v), nil
	case float64:
		return Float(v), nil
	case numberLiteral:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}

		f, err := v.Float64()
		if err != nil {
			return Scalar{}, typeMismatch(key, "number", "unparsable number")
		}

		return Float(f), nil
	case map[string]any:
		return Scalar{}, typeMismatch(key, "scalar", "object")
	case []any:
		return Scalar{}, typeMismatch(key, "scalar", "array")
	default:
		return Scalar{}, typeMismatch(key, "scalar", "unknown")
	}
}

// GetString returns the string stored under key.
func (d *Document) GetString(key string) (string, error) {
	s, err := d.Get(key)
	if err != nil {
		return "", err
	}

	str, ok := s.AsString()
	if !ok {
		return "", typeMismatch(key, "string", s.Kind().String())
	}

	return str, nil
}

// Put stores s under key, replacing any previous entry.
func (d *Document) Put(key string, s Scalar) {
	d.fields[key] = s.Interface()
}

// Dynamic holds the fixture in a Document.
type Dynamic struct{}

func (Dynamic) Name() string { return "document" }

func (Dynamic) Deserialize(f fixture.Fixture) (Value, error) {
	return ParseDocument(f.Bytes())
}

func (dy Dynamic) ReadField(v Value, key string) (Scalar, error) {
	d, ok := v.(*Document)
	if !ok {
		return Scalar{}, wrongValue(dy.Name(), v)
	}

	return d.Get(key)
}

func (dy Dynamic) WriteField(v Value, key string, s Scalar) (Value, error) {
	d, ok := v.(*Document)
	if !ok {
		return nil, wrongValue(dy.Name(), v)
	}

	d.Put(key, s)

	return d, nil
}
