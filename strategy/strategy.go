// Package strategy defines the competing ways of holding a JSON fixture in
// memory and the three operations the harness times on each of them.
package strategy

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/weiihann/modelbench/fixture"
)

// Value is the in-memory form produced by a strategy's Deserialize. Only
// the strategy that produced a Value may interpret it.
type Value any

// Strategy is one competing implementation under test.
//
// Deserialize must allocate a fresh Value on every call and must not modify
// the fixture. ReadField must not modify the Value. WriteField may mutate
// the Value in place or return a new one; callers use the returned Value.
type Strategy interface {
	Name() string
	Deserialize(f fixture.Fixture) (Value, error)
	ReadField(v Value, key string) (Scalar, error)
	WriteField(v Value, key string, s Scalar) (Value, error)
}

// Builtin returns the bundled strategies in their canonical order.
func Builtin() []Strategy {
	return []Strategy{
		Typed{},
		Reflect{},
		Dynamic{},
		Lazy{},
	}
}

// Names returns the names of the bundled strategies.
func Names() []string {
	builtin := Builtin()

	names := make([]string, 0, len(builtin))
	for _, s := range builtin {
		names = append(names, s.Name())
	}

	return names
}

// Lookup resolves bundled strategies by name, preserving the requested
// order. An empty list selects every bundled strategy.
func Lookup(names []string) ([]Strategy, error) {
	if len(names) == 0 {
		return Builtin(), nil
	}

	byName := make(map[string]Strategy)
	for _, s := range Builtin() {
		byName[s.Name()] = s
	}

	selected := make([]Strategy, 0, len(names))

	for _, name := range names {
		s, ok := byName[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf(
				"unknown strategy %q (known: %s)",
				name, strings.Join(Names(), ", "),
			)
		}

		selected = append(selected, s)
	}

	return selected, nil
}

func wrongValue(strategy string, v Value) error {
	return fmt.Errorf("strategy %s cannot operate on %T", strategy, v)
}

// isObject reports whether data starts with a JSON object.
func isObject(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")

	return len(trimmed) > 0 && trimmed[0] == '{'
}

// checkObject requires data to hold exactly one JSON object. jsonparser
// scans lazily, so bytes after the closing brace and a comma directly
// before it are rejected here.
func checkObject(data []byte) error {
	obj, typ, end, err := jsonparser.Get(data)
	if err != nil {
		return err
	}

	if typ != jsonparser.Object {
		return errors.New("top-level value is not an object")
	}

	if len(bytes.TrimSpace(data[end:])) > 0 {
		return errors.New("unexpected data after top-level object")
	}

	body := bytes.TrimRight(obj[:len(obj)-1], " \t\r\n")
	if len(body) > 0 && body[len(body)-1] == ',' {
		return errors.New("trailing comma in object")
	}

	return nil
}
