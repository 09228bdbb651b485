// Package harness times strategy operations and collects the per-call
// averages into results.
package harness

import "fmt"

// Operation is one of the timed operation kinds.
type Operation int

const (
	Deserialize Operation = iota
	ReadField
	WriteField
)

// Operations returns every operation kind in reporting order.
func Operations() []Operation {
	return []Operation{Deserialize, ReadField, WriteField}
}

func (o Operation) String() string {
	switch o {
	case Deserialize:
		return "Deserialize"
	case ReadField:
		return "ReadField"
	case WriteField:
		return "WriteField"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// MarshalText encodes the operation by name.
func (o Operation) MarshalText() ([]byte, error) {
	switch o {
	case Deserialize, ReadField, WriteField:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("unknown operation %d", int(o))
	}
}

// UnmarshalText decodes an operation name.
func (o *Operation) UnmarshalText(text []byte) error {
	for _, op := range Operations() {
		if op.String() == string(text) {
			*o = op

			return nil
		}
	}

	return fmt.Errorf("unknown operation %q", text)
}

// Result holds the mean per-call latency of one strategy operation.
type Result struct {
	Strategy   string    `json:"strategy"`
	Operation  Operation `json:"operation"`
	NsPerOp    int64     `json:"ns_per_op"`
	Iterations int       `json:"iterations"`
}

// Label returns "<strategy>.<operation>".
func (r Result) Label() string {
	return r.Strategy + "." + r.Operation.String()
}
