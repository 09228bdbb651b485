package harness

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/weiihann/modelbench/fixture"
	"github.com/weiihann/modelbench/strategy"
)

// RunConfig holds the parameters shared by every timed operation of a run.
type RunConfig struct {
	Iterations int
	// Field is the key read and written by the field-access operations.
	Field string
	// Value is the scalar stored by WriteField.
	Value strategy.Scalar
}

// Failure names the strategy and operation that aborted a run.
type Failure struct {
	Strategy  string
	Operation Operation
	Err       error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("benchmark %s.%s: %v", f.Strategy, f.Operation, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Runner times every registered strategy, one after another.
type Runner struct {
	strategies []strategy.Strategy
	names      map[string]struct{}
	Logger     *slog.Logger
}

// NewRunner creates a Runner with no strategies registered. A nil logger
// discards all output.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Runner{
		names:  make(map[string]struct{}),
		Logger: logger,
	}
}

// Register appends s to the run order. Names must be unique and free of
// whitespace so that result labels stay single tokens.
func (r *Runner) Register(s strategy.Strategy) error {
	name := s.Name()

	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: strategy name %q", ErrInvalidArgument, name)
	}

	if _, dup := r.names[name]; dup {
		return fmt.Errorf("%w: strategy %q registered twice", ErrInvalidArgument, name)
	}

	r.names[name] = struct{}{}
	r.strategies = append(r.strategies, s)

	return nil
}

// Strategies returns the registered strategies in run order.
func (r *Runner) Strategies() []strategy.Strategy {
	return append([]strategy.Strategy(nil), r.strategies...)
}

// Run measures every registered strategy against fx. Results are ordered by
// registration, then by Operations. Any failure aborts the run and no
// results are returned.
func (r *Runner) Run(fx fixture.Fixture, cfg RunConfig) ([]Result, error) {
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf(
			"%w: iterations must be positive, got %d",
			ErrInvalidArgument, cfg.Iterations,
		)
	}

	if len(r.strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategies registered", ErrInvalidArgument)
	}

	results := make([]Result, 0, len(r.strategies)*len(Operations()))

	for _, s := range r.strategies {
		r.Logger.Info("benchmarking strategy",
			slog.String("strategy", s.Name()),
			slog.Int("iterations", cfg.Iterations),
		)

		for _, op := range Operations() {
			call, err := prepare(s, op, fx, cfg)
			if err != nil {
				return nil, &Failure{Strategy: s.Name(), Operation: op, Err: err}
			}

			ns, err := Measure(call, cfg.Iterations)
			if err != nil {
				return nil, &Failure{Strategy: s.Name(), Operation: op, Err: err}
			}

			res := Result{
				Strategy:   s.Name(),
				Operation:  op,
				NsPerOp:    ns,
				Iterations: cfg.Iterations,
			}

			r.Logger.Debug("operation measured",
				slog.String("label", res.Label()),
				slog.Int64("ns_per_op", ns),
			)

			results = append(results, res)
		}
	}

	return results, nil
}

// prepare builds the closure timed for op. Field operations work on one
// Value deserialized up front, outside the timed loop.
func prepare(
	s strategy.Strategy,
	op Operation,
	fx fixture.Fixture,
	cfg RunConfig,
) (func() error, error) {
	if op == Deserialize {
		return func() error {
			_, err := s.Deserialize(fx)

			return err
		}, nil
	}

	value, err := s.Deserialize(fx)
	if err != nil {
		return nil, fmt.Errorf("deserialize: %w", err)
	}

	switch op {
	case ReadField:
		return func() error {
			_, err := s.ReadField(value, cfg.Field)

			return err
		}, nil

	case WriteField:
		return func() error {
			var err error

			value, err = s.WriteField(value, cfg.Field, cfg.Value)

			return err
		}, nil

	default:
		return nil, fmt.Errorf("%w: operation %v", ErrInvalidArgument, op)
	}
}
