package fixture

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := GenConfig{Fields: 40, Seed: 42, StringLen: 8}

	var buf1, buf2 bytes.Buffer

	sum1, err := NewGenerator(cfg).Generate(&buf1)
	require.NoError(t, err)

	sum2, err := NewGenerator(cfg).Generate(&buf2)
	require.NoError(t, err)

	assert.Equal(t, buf1.String(), buf2.String(), "same seed must give same fixture")
	assert.Equal(t, sum1, sum2)
}

func TestGenerateCounts(t *testing.T) {
	tests := []struct {
		name   string
		fields int
	}{
		{"single", 1},
		{"model sized", 6},
		{"wide", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			sum, err := NewGenerator(GenConfig{Fields: tt.fields, Seed: 1}).Generate(&buf)
			require.NoError(t, err)

			assert.Equal(t, tt.fields, sum.Fields)
			assert.Equal(t, tt.fields, sum.Strings+sum.Ints+sum.Floats+sum.Bools)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
			assert.Len(t, decoded, tt.fields)
		})
	}
}

func TestGenerateNonPositiveFields(t *testing.T) {
	for _, fields := range []int{0, -1, -100} {
		var buf bytes.Buffer

		sum, err := NewGenerator(GenConfig{Fields: fields, Seed: 1}).Generate(&buf)
		require.NoError(t, err)

		assert.Equal(t, Summary{}, sum)
		assert.JSONEq(t, `{}`, buf.String())
	}
}

func TestGenerateModelFields(t *testing.T) {
	var buf bytes.Buffer

	_, err := NewGenerator(GenConfig{Fields: 12, Seed: 7, StringLen: 10}).Generate(&buf)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.IsType(t, float64(0), decoded["field1"])
	assert.IsType(t, "", decoded["field2"])
	assert.IsType(t, true, decoded["field3"])
	assert.IsType(t, float64(0), decoded["field4"])
	assert.IsType(t, "", decoded["field5"])

	field6, ok := decoded["field6"].(string)
	require.True(t, ok, "field6 must be a string")
	assert.Len(t, field6, 10)
}
