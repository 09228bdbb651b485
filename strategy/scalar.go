package strategy

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Kind identifies the variant held by a Scalar.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Scalar is a tagged union over the JSON scalar kinds. The zero value is null.
type Scalar struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Constructors for each Scalar variant.
func Null() Scalar           { return Scalar{} }
func Bool(b bool) Scalar     { return Scalar{kind: KindBool, b: b} }
func Int(i int64) Scalar     { return Scalar{kind: KindInt, i: i} }
func Float(f float64) Scalar { return Scalar{kind: KindFloat, f: f} }
func String(s string) Scalar { return Scalar{kind: KindString, s: s} }

// Kind reports which variant s holds.
func (s Scalar) Kind() Kind { return s.kind }

// IsNull reports whether s is the null scalar.
func (s Scalar) IsNull() bool { return s.kind == KindNull }

// AsBool returns the boolean held by s.
func (s Scalar) AsBool() (bool, bool) {
	return s.b, s.kind == KindBool
}

// AsInt returns the integer held by s.
func (s Scalar) AsInt() (int64, bool) {
	return s.i, s.kind == KindInt
}

// AsFloat returns the number held by s, widening integers.
func (s Scalar) AsFloat() (float64, bool) {
	switch s.kind {
	case KindFloat:
		return s.f, true
	case KindInt:
		return float64(s.i), true
	default:
		return 0, false
	}
}

// AsString returns the string held by s.
func (s Scalar) AsString() (string, bool) {
	return s.s, s.kind == KindString
}

// Interface returns s as one of nil, bool, int64, float64 or string.
func (s Scalar) Interface() any {
	switch s.kind {
	case KindBool:
		return s.b
	case KindInt:
		return s.i
	case KindFloat:
		return s.f
	case KindString:
		return s.s
	default:
		return nil
	}
}

func (s Scalar) String() string {
	switch s.kind {
	case KindBool:
		return strconv.FormatBool(s.b)
	case KindInt:
		return strconv.FormatInt(s.i, 10)
	case KindFloat:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	case KindString:
		return s.s
	default:
		return "null"
	}
}

// AppendJSON appends the JSON literal for s to dst. Non-finite floats have
// no JSON representation and fail with ErrType.
func (s Scalar) AppendJSON(dst []byte) ([]byte, error) {
	switch s.kind {
	case KindBool:
		return strconv.AppendBool(dst, s.b), nil
	case KindInt:
		return strconv.AppendInt(dst, s.i, 10), nil
	case KindFloat:
		if math.IsNaN(s.f) || math.IsInf(s.f, 0) {
			return dst, fmt.Errorf("%w: %v is not representable in JSON", ErrType, s.f)
		}

		return strconv.AppendFloat(dst, s.f, 'g', -1, 64), nil
	case KindString:
		quoted, err := json.Marshal(s.s)
		if err != nil {
			return dst, fmt.Errorf("encode string: %w", err)
		}

		return append(dst, quoted...), nil
	default:
		return append(dst, "null"...), nil
	}
}

// ParseScalar interprets text as a JSON scalar literal. Text that is not a
// valid literal is taken as a plain string, so both `some string` and
// `"some string"` yield the same string scalar.
func ParseScalar(text string) Scalar {
	switch text {
	case "null":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i)
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Float(f)
	}

	if len(text) >= 2 && text[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err == nil {
			return String(s)
		}
	}

	return String(text)
}
