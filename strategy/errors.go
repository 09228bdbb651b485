package strategy

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat means the fixture cannot be interpreted by a strategy.
	ErrFormat = errors.New("malformed fixture")
	// ErrMissingField means the requested key is absent.
	ErrMissingField = errors.New("missing field")
	// ErrType means a field holds, or would receive, a value of the wrong kind.
	ErrType = errors.New("type mismatch")
)

// FieldError reports a failed field access.
type FieldError struct {
	Key    string
	Detail string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("field %q: %v", e.Key, e.Err)
	}

	return fmt.Sprintf("field %q: %v: %s", e.Key, e.Err, e.Detail)
}

func (e *FieldError) Unwrap() error { return e.Err }

func missingField(key string) error {
	return &FieldError{Key: key, Err: ErrMissingField}
}

func typeMismatch(key string, want, got string) error {
	return &FieldError{
		Key:    key,
		Err:    ErrType,
		Detail: fmt.Sprintf("want %s, got %s", want, got),
	}
}

func formatError(err error) error {
	return fmt.Errorf("%w: %w", ErrFormat, err)
}
