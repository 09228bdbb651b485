package fixture

import (
	"encoding/hex"
	"fmt"
	"io"
	mrand "math/rand"
	"strconv"

	"github.com/goccy/go-json"
)

// Field kinds emitted by the generator.
const (
	KindString = "string"
	KindInt    = "int"
	KindFloat  = "float"
	KindBool   = "bool"
)

// The first six fields keep a fixed kind so that every generated fixture
// decodes into the typed model.
var modelKinds = [...]string{KindInt, KindString, KindBool, KindFloat, KindString, KindString}

var randomKinds = [...]string{KindString, KindInt, KindFloat, KindBool}

// GenConfig controls synthetic fixture generation.
type GenConfig struct {
	Fields    int
	Seed      int64
	StringLen int
}

// Summary counts the fields written per kind.
type Summary struct {
	Fields  int
	Strings int
	Ints    int
	Floats  int
	Bools   int
}

// Generator produces deterministic flat JSON objects from a GenConfig.
type Generator struct {
	cfg GenConfig
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given GenConfig.
func NewGenerator(cfg GenConfig) *Generator {
	if cfg.Fields < 0 {
		cfg.Fields = 0
	}

	if cfg.StringLen <= 0 {
		cfg.StringLen = 16
	}

	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Generate writes a single JSON object with fields field1..fieldN to w.
func (g *Generator) Generate(w io.Writer) (Summary, error) {
	var summary Summary

	buf := make([]byte, 0, 64*g.cfg.Fields+2)
	buf = append(buf, '{')

	for i := 1; i <= g.cfg.Fields; i++ {
		if i > 1 {
			buf = append(buf, ',')
		}

		buf = strconv.AppendQuote(buf, "field"+strconv.Itoa(i))
		buf = append(buf, ':')

		kind := g.kindFor(i)

		value, err := g.randomValue(kind)
		if err != nil {
			return summary, fmt.Errorf("encode field%d: %w", i, err)
		}

		buf = append(buf, value...)

		summary.Fields++

		switch kind {
		case KindString:
			summary.Strings++
		case KindInt:
			summary.Ints++
		case KindFloat:
			summary.Floats++
		case KindBool:
			summary.Bools++
		}
	}

	buf = append(buf, '}', '\n')

	if _, err := w.Write(buf); err != nil {
		return summary, fmt.Errorf("write fixture: %w", err)
	}

	return summary, nil
}

func (g *Generator) kindFor(i int) string {
	if i <= len(modelKinds) {
		return modelKinds[i-1]
	}

	return randomKinds[g.rng.Intn(len(randomKinds))]
}

func (g *Generator) randomValue(kind string) ([]byte, error) {
	switch kind {
	case KindInt:
		return json.Marshal(g.rng.Int63n(1_000_000))
	case KindFloat:
		// Keep a fractional part so the literal never reads back as an int.
		return json.Marshal(float64(g.rng.Intn(1_000_000)) + 0.25)
	case KindBool:
		return json.Marshal(g.rng.Intn(2) == 1)
	default:
		return json.Marshal(g.randomString())
	}
}

func (g *Generator) randomString() string {
	buf := make([]byte, (g.cfg.StringLen+1)/2)
	g.rng.Read(buf)

	return hex.EncodeToString(buf)[:g.cfg.StringLen]
}
