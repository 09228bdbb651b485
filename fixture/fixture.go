// Package fixture loads the immutable input blob shared by every strategy
// in a benchmark run.
package fixture

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// EmbedPrefix selects a fixture bundled into the binary instead of a file.
const EmbedPrefix = "embed:"

// Default is the fixture used when none is configured.
const Default = EmbedPrefix + "simple.json"

//go:embed fixtures/*.json
var bundled embed.FS

var (
	// ErrUnreadable is returned when the fixture source cannot be read.
	ErrUnreadable = errors.New("fixture unreadable")
	// ErrEmpty is returned when the fixture source holds no data.
	ErrEmpty = errors.New("fixture empty")
)

// Fixture is a named, read-only input blob. The bytes returned by Bytes
// are shared with every caller and must never be modified.
type Fixture struct {
	name string
	data []byte
}

// New copies data into a Fixture.
func New(name string, data []byte) Fixture {
	return Fixture{name: name, data: bytes.Clone(data)}
}

// Name returns the source the fixture was loaded from.
func (f Fixture) Name() string { return f.name }

// Bytes returns the fixture contents.
func (f Fixture) Bytes() []byte { return f.data }

// Len returns the fixture size in bytes.
func (f Fixture) Len() int { return len(f.data) }

// Load reads a fixture from source. Source is either "-" for standard
// input, EmbedPrefix followed by a bundled file name, or a file path.
func Load(source string) (Fixture, error) {
	switch {
	case source == "-":
		return Read("stdin", os.Stdin)

	case strings.HasPrefix(source, EmbedPrefix):
		name := strings.TrimPrefix(source, EmbedPrefix)

		data, err := bundled.ReadFile("fixtures/" + name)
		if err != nil {
			return Fixture{}, fmt.Errorf("%w: %s: %w", ErrUnreadable, source, err)
		}

		return build(source, data)

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return Fixture{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
		}

		return build(source, data)
	}
}

// Read loads a fixture from r, naming it name.
func Read(name string, r io.Reader) (Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Fixture{}, fmt.Errorf("%w: %s: %w", ErrUnreadable, name, err)
	}

	return build(name, data)
}

// Bundled lists the fixtures embedded in the binary, usable with EmbedPrefix.
func Bundled() []string {
	entries, err := fs.ReadDir(bundled, "fixtures")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	sort.Strings(names)

	return names
}

func build(name string, data []byte) (Fixture, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Fixture{}, fmt.Errorf("%w: %s", ErrEmpty, name)
	}

	return Fixture{name: name, data: data}, nil
}
