package strategy

import (
	"bytes"
	"fmt"

	"github.com/buger/jsonparser"
)

// Model is the statically shaped form of the fixture.
type Model struct {
	Field1 int64   `json:"field1"`
	Field2 string  `json:"field2"`
	Field3 bool    `json:"field3"`
	Field4 float64 `json:"field4"`
	Field5 string  `json:"field5"`
	Field6 string  `json:"field6"`
}

// Get returns the named field. Unknown names fail with ErrMissingField.
func (m *Model) Get(key string) (Scalar, error) {
	switch key {
	case "field1":
		return Int(m.Field1), nil
	case "field2":
		return String(m.Field2), nil
	case "field3":
		return Bool(m.Field3), nil
	case "field4":
		return Float(m.Field4), nil
	case "field5":
		return String(m.Field5), nil
	case "field6":
		return String(m.Field6), nil
	default:
		return Scalar{}, missingField(key)
	}
}

// Set assigns s to the named field. The float field also accepts integers.
func (m *Model) Set(key string, s Scalar) error {
	switch key {
	case "field1":
		i, ok := s.AsInt()
		if !ok {
			return typeMismatch(key, "int", s.Kind().String())
		}
		m.Field1 = i
	case "field2":
		return setString(&m.Field2, key, s)
	case "field3":
		b, ok := s.AsBool()
		if !ok {
			return typeMismatch(key, "bool", s.Kind().String())
		}
		m.Field3 = b
	case "field4":
		f, ok := s.AsFloat()
		if !ok {
			return typeMismatch(key, "float", s.Kind().String())
		}
		m.Field4 = f
	case "field5":
		return setString(&m.Field5, key, s)
	case "field6":
		return setString(&m.Field6, key, s)
	default:
		return missingField(key)
	}

	return nil
}

func setString(dst *string, key string, s Scalar) error {
	str, ok := s.AsString()
	if !ok {
		return typeMismatch(key, "string", s.Kind().String())
	}

	*dst = str

	return nil
}

// DecodeModel fills a Model from a JSON object without reflection. Unknown
// keys are skipped, absent and null fields keep their zero value.
func DecodeModel(data []byte) (*Model, error) {
	if err := checkObject(data); err != nil {
		return nil, formatError(err)
	}

	m := new(Model)

	err := jsonparser.ObjectEach(data, func(key, value []byte, typ jsonparser.ValueType, _ int) error {
		if bytes.IndexByte(key, '\\') >= 0 {
			unescaped, err := jsonparser.Unescape(key, nil)
			if err != nil {
				return err
			}
			key = unescaped
		}

		if typ == jsonparser.Null {
			return nil
		}

		return m.decodeField(string(key), value, typ)
	})
	if err != nil {
		return nil, formatError(err)
	}

	return m, nil
}

func (m *Model) decodeField(key string, value []byte, typ jsonparser.ValueType) error {
	var err error

	switch key {
	case "field1":
		if err = expect(key, typ, jsonparser.Number); err == nil {
			m.Field1, err = jsonparser.ParseInt(value)
		}
	case "field2":
		err = decodeString(&m.Field2, key, value, typ)
	case "field3":
		if err = expect(key, typ, jsonparser.Boolean); err == nil {
			m.Field3, err = jsonparser.ParseBoolean(value)
		}
	case "field4":
		if err = expect(key, typ, jsonparser.Number); err == nil {
			m.Field4, err = jsonparser.ParseFloat(value)
		}
	case "field5":
		err = decodeString(&m.Field5, key, value, typ)
	case "field6":
		err = decodeString(&m.Field6, key, value, typ)
	}

	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	return nil
}

func decodeString(dst *string, key string, value []byte, typ jsonparser.ValueType) error {
	if err := expect(key, typ, jsonparser.String); err != nil {
		return err
	}

	s, err := jsonparser.ParseString(value)
	if err != nil {
		return err
	}

	*dst = s

	return nil
}

func expect(key string, got, want jsonparser.ValueType) error {
	if got != want {
		return typeMismatch(key, want.String(), got.String())
	}

	return nil
}
