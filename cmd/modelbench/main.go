// Package main provides the CLI entry point for modelbench, a micro-benchmark
// comparing statically typed and dynamic in-memory forms of a JSON document.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/weiihann/modelbench/config"
	"github.com/weiihann/modelbench/fixture"
	"github.com/weiihann/modelbench/harness"
	"github.com/weiihann/modelbench/history"
	"github.com/weiihann/modelbench/report"
	"github.com/weiihann/modelbench/strategy"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level)
	if err := root.Execute(); err != nil {
		logger.Error("modelbench failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	root := &cobra.Command{
		Use:   "modelbench",
		Short: "Typed versus dynamic JSON model micro-benchmark",
		Long: `Modelbench loads one JSON fixture and measures, for each strategy,
the mean cost of deserializing it, reading a field and writing a field.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(logger, level),
		newListCmd(),
		newGenCmd(logger),
		newCompareCmd(),
	)

	return root
}

func newRunCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark and print one line per strategy operation",
		Long: `Run every selected strategy against the fixture. Each of Deserialize,
ReadField and WriteField is called --iterations times and reported as the
truncated mean nanoseconds per call. Any failure aborts the whole run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			if cfg.Verbose {
				level.Set(slog.LevelDebug)
			}

			return runBenchmark(cmd.Context(), logger, cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "",
		"Config file (default: ./modelbench.{yaml,toml,json} if present)")
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.Config,
	out io.Writer,
) error {
	fx, err := fixture.Load(cfg.Fixture)
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}

	strategies, err := strategy.Lookup(cfg.Strategies)
	if err != nil {
		return err
	}

	runner := harness.NewRunner(logger)
	for _, s := range strategies {
		if err := runner.Register(s); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.String("fixture", fx.Name()),
		slog.Int("fixture_bytes", fx.Len()),
		slog.Int("iterations", cfg.Iterations),
		slog.Any("strategies", strategyNames(strategies)),
	)

	started := time.Now()

	results, err := runner.Run(fx, harness.RunConfig{
		Iterations: cfg.Iterations,
		Field:      cfg.Field,
		Value:      strategy.ParseScalar(cfg.Value),
	})
	if err != nil {
		return err
	}

	// Side outputs go first so a failed write never follows a printed report.
	if cfg.Textfile != "" {
		if err := report.WriteTextfile(cfg.Textfile, results); err != nil {
			return err
		}
	}

	if cfg.History != "" {
		store, err := history.NewFileStore(cfg.History)
		if err != nil {
			return err
		}

		if err := store.Save(history.Run{
			Timestamp:  started.UTC(),
			Fixture:    fx.Name(),
			Iterations: cfg.Iterations,
			Results:    results,
		}); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}

	switch cfg.Format {
	case config.FormatJSON:
		err = report.GenerateJSON(out, results)
	case config.FormatTable:
		err = report.GenerateTable(out, results)
	default:
		err = report.Generate(out, results)
	}

	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.Duration("wall_time", time.Since(started)),
	)

	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in strategies and bundled fixtures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "strategies:")
			for _, name := range strategy.Names() {
				fmt.Fprintf(out, "  %s\n", name)
			}

			fmt.Fprintln(out, "fixtures:")
			for _, name := range fixture.Bundled() {
				fmt.Fprintf(out, "  %s%s\n", fixture.EmbedPrefix, name)
			}

			return nil
		},
	}
}

func newGenCmd(logger *slog.Logger) *cobra.Command {
	var (
		fields    int
		seed      int64
		stringLen int
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic flat JSON fixture on stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fields < 1 {
				return fmt.Errorf("fields must be positive, got %d", fields)
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			gen := fixture.NewGenerator(fixture.GenConfig{
				Fields:    fields,
				Seed:      seed,
				StringLen: stringLen,
			})

			summary, err := gen.Generate(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			logger.InfoContext(cmd.Context(), "fixture generated",
				slog.Int64("seed", seed),
				slog.Int("fields", summary.Fields),
				slog.Int("strings", summary.Strings),
				slog.Int("ints", summary.Ints),
				slog.Int("floats", summary.Floats),
				slog.Int("bools", summary.Bools),
			)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&fields, "fields", 6,
		"Number of top-level fields")
	flags.Int64Var(&seed, "seed", 0,
		"Random seed (0 = use current time)")
	flags.IntVar(&stringLen, "string-len", 16,
		"Length of generated string values")

	return cmd
}

func newCompareCmd() *cobra.Command {
	var historyPath string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the two most recent runs in a history file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if historyPath == "" {
				return errors.New("--history is required")
			}

			store, err := history.NewFileStore(historyPath)
			if err != nil {
				return err
			}

			runs, err := history.Last(store, 2)
			if err != nil {
				return err
			}

			return history.WriteComparisons(
				cmd.OutOrStdout(), history.Compare(runs[0], runs[1]),
			)
		},
	}

	cmd.Flags().StringVar(&historyPath, "history", "",
		"History file written by run --history")

	return cmd
}

func strategyNames(strategies []strategy.Strategy) []string {
	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		names = append(names, s.Name())
	}

	return names
}
