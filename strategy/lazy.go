package strategy

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/tidwall/gjson"

	"github.com/weiihann/modelbench/fixture"
)

// Raw is a private copy of the fixture bytes that is only parsed on access.
type Raw struct {
	data []byte
}

// Bytes returns the current document text.
func (r *Raw) Bytes() []byte { return r.data }

// Lazy keeps the fixture as text: reads scan it with gjson and writes
// splice it with jsonparser.
type Lazy struct{}

func (Lazy) Name() string { return "lazy" }

func (Lazy) Deserialize(f fixture.Fixture) (Value, error) {
	data := f.Bytes()
	if !gjson.ValidBytes(data) {
		return nil, formatError(errors.New("invalid JSON"))
	}

	if !gjson.ParseBytes(data).IsObject() {
		return nil, formatError(errors.New("top-level value is not an object"))
	}

	return &Raw{data: dropShadowedKeys(bytes.Clone(data))}, nil
}

// dropShadowedKeys deletes every top-level member that a later member of
// the same name overrides, so lookups and splices see the last value only.
func dropShadowedKeys(data []byte) []byte {
	var counts map[string]int

	dup := false

	gjson.ParseBytes(data).ForEach(func(key, _ gjson.Result) bool {
		if counts == nil {
			counts = make(map[string]int)
		}

		counts[key.Str]++
		if counts[key.Str] > 1 {
			dup = true
		}

		return true
	})

	if !dup {
		return data
	}

	for key, n := range counts {
		for ; n > 1; n-- {
			data = jsonparser.Delete(data, key)
		}
	}

	return data
}

func (l Lazy) ReadField(v Value, key string) (Scalar, error) {
	r, ok := v.(*Raw)
	if !ok {
		return Scalar{}, wrongValue(l.Name(), v)
	}

	res := gjson.GetBytes(r.data, escapePathKey(key))
	if !res.Exists() {
		return Scalar{}, missingField(key)
	}

	switch res.Type {
	case gjson.Null:
		return Null(), nil
	case gjson.True:
		return Bool(true), nil
	case gjson.False:
		return Bool(false), nil
	case gjson.String:
		return String(res.Str), nil
	case gjson.Number:
		if !strings.ContainsAny(res.Raw, ".eE") {
			if i, err := strconv.ParseInt(res.Raw, 10, 64); err == nil {
				return Int(i), nil
			}
		}

		return Float(res.Num), nil
	default:
		if res.IsArray() {
			return Scalar{}, typeMismatch(key, "scalar", "array")
		}

		return Scalar{}, typeMismatch(key, "scalar", "object")
	}
}

func (l Lazy) WriteField(v Value, key string, s Scalar) (Value, error) {
	r, ok := v.(*Raw)
	if !ok {
		return nil, wrongValue(l.Name(), v)
	}

	literal, err := s.AppendJSON(nil)
	if err != nil {
		return nil, &FieldError{Key: key, Err: err}
	}

	data, err := jsonparser.Set(r.data, literal, key)
	if err != nil {
		return nil, formatError(err)
	}

	r.data = data

	return r, nil
}

// escapePathKey escapes the characters gjson treats as path syntax so key
// is matched literally against a top-level member name.
func escapePathKey(key string) string {
	if !strings.ContainsAny(key, `.*?|#@\!=<>%`) {
		return key
	}

	var b strings.Builder

	b.Grow(len(key) * 2)

	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}

		b.WriteByte(key[i])
	}

	return b.String()
}
