package harness

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/modelbench/fixture"
	"github.com/weiihann/modelbench/strategy"
)

// countingStrategy records how often each operation ran.
type countingStrategy struct {
	name   string
	counts map[Operation]int
	fail   Operation
	err    error
}

func newCounting(name string) *countingStrategy {
	return &countingStrategy{name: name, counts: make(map[Operation]int), fail: -1}
}

func (c *countingStrategy) Name() string { return c.name }

func (c *countingStrategy) Deserialize(fixture.Fixture) (strategy.Value, error) {
	c.counts[Deserialize]++
	if c.fail == Deserialize {
		return nil, c.err
	}

	return c.name, nil
}

func (c *countingStrategy) ReadField(v strategy.Value, _ string) (strategy.Scalar, error) {
	c.counts[ReadField]++
	if c.fail == ReadField {
		return strategy.Scalar{}, c.err
	}

	return strategy.String(v.(string)), nil
}

func (c *countingStrategy) WriteField(v strategy.Value, _ string, _ strategy.Scalar) (strategy.Value, error) {
	c.counts[WriteField]++
	if c.fail == WriteField {
		return nil, c.err
	}

	return v, nil
}

func runConfig(n int) RunConfig {
	return RunConfig{Iterations: n, Field: "field6", Value: strategy.String("X")}
}

func TestMeasureInvalidIterations(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Measure(func() error { return nil }, n)
		assert.ErrorIs(t, err, ErrInvalidArgument, "iterations %d", n)
	}
}

func TestMeasureCallsExactly(t *testing.T) {
	calls := 0

	ns, err := Measure(func() error {
		calls++

		return nil
	}, 1234)
	require.NoError(t, err)

	assert.Equal(t, 1234, calls)
	assert.GreaterOrEqual(t, ns, int64(0))
}

func TestMeasureStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0

	_, err := Measure(func() error {
		calls++
		if calls == 3 {
			return boom
		}

		return nil
	}, 10)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestRunOrderAndCount(t *testing.T) {
	names := []string{"a", "b", "c"}

	runner := NewRunner(nil)
	for _, name := range names {
		require.NoError(t, runner.Register(newCounting(name)))
	}

	results, err := runner.Run(fixture.New("x", []byte("{}")), runConfig(10))
	require.NoError(t, err)
	require.Len(t, results, 3*len(names))

	i := 0
	for _, name := range names {
		for _, op := range Operations() {
			assert.Equal(t, name, results[i].Strategy)
			assert.Equal(t, op, results[i].Operation)
			assert.Equal(t, 10, results[i].Iterations)
			assert.GreaterOrEqual(t, results[i].NsPerOp, int64(0))
			i++
		}
	}
}

func TestRunDeserializesOnceForFieldOps(t *testing.T) {
	s := newCounting("only")

	runner := NewRunner(nil)
	require.NoError(t, runner.Register(s))

	_, err := runner.Run(fixture.New("x", []byte("{}")), runConfig(50))
	require.NoError(t, err)

	// 50 timed calls plus one untimed setup call per field operation.
	assert.Equal(t, 52, s.counts[Deserialize])
	assert.Equal(t, 50, s.counts[ReadField])
	assert.Equal(t, 50, s.counts[WriteField])
}

func TestRunBuiltinScenario(t *testing.T) {
	runner := NewRunner(nil)
	require.NoError(t, runner.Register(strategy.Typed{}))
	require.NoError(t, runner.Register(strategy.Dynamic{}))

	fx := fixture.New("scenario", []byte(`{"field6":"some string"}`))

	results, err := runner.Run(fx, runConfig(1000))
	require.NoError(t, err)
	require.Len(t, results, 6)

	label := regexp.MustCompile(`^(typed|document)\.(Deserialize|ReadField|WriteField)$`)
	for _, r := range results {
		assert.Regexp(t, label, r.Label())
		assert.GreaterOrEqual(t, r.NsPerOp, int64(0))
	}
}

func TestRunMissingFieldAborts(t *testing.T) {
	after := newCounting("after")

	runner := NewRunner(nil)
	require.NoError(t, runner.Register(strategy.Dynamic{}))
	require.NoError(t, runner.Register(after))

	fx := fixture.New("partial", []byte(`{"field1":1}`))

	results, err := runner.Run(fx, runConfig(100))
	assert.Nil(t, results)
	require.ErrorIs(t, err, strategy.ErrMissingField)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "document", failure.Strategy)
	assert.Equal(t, ReadField, failure.Operation)
	assert.Contains(t, err.Error(), "document.ReadField")

	assert.Empty(t, after.counts, "strategies after the failure must not run")
}

func TestRunFailureNamesOperation(t *testing.T) {
	for _, op := range Operations() {
		t.Run(op.String(), func(t *testing.T) {
			s := newCounting("flaky")
			s.fail = op
			s.err = errors.New("injected")

			runner := NewRunner(nil)
			require.NoError(t, runner.Register(s))

			_, err := runner.Run(fixture.New("x", []byte("{}")), runConfig(5))

			var failure *Failure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, op, failure.Operation)
			assert.ErrorIs(t, err, s.err)
		})
	}
}

func TestRunInvalidConfig(t *testing.T) {
	runner := NewRunner(nil)

	_, err := runner.Run(fixture.New("x", []byte("{}")), runConfig(10))
	assert.ErrorIs(t, err, ErrInvalidArgument, "no strategies")

	require.NoError(t, runner.Register(newCounting("a")))

	_, err = runner.Run(fixture.New("x", []byte("{}")), runConfig(0))
	assert.ErrorIs(t, err, ErrInvalidArgument, "zero iterations")
}

func TestRegister(t *testing.T) {
	runner := NewRunner(nil)

	require.NoError(t, runner.Register(newCounting("a")))
	assert.ErrorIs(t, runner.Register(newCounting("a")), ErrInvalidArgument)
	assert.ErrorIs(t, runner.Register(newCounting("")), ErrInvalidArgument)
	assert.ErrorIs(t, runner.Register(newCounting("has space")), ErrInvalidArgument)

	assert.Len(t, runner.Strategies(), 1)
}

func TestOperationText(t *testing.T) {
	for _, op := range Operations() {
		text, err := op.MarshalText()
		require.NoError(t, err)

		var back Operation
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, op, back)
	}

	var op Operation
	assert.Error(t, op.UnmarshalText([]byte("Nope")))

	_, err := Operation(9).MarshalText()
	assert.Error(t, err)
}
