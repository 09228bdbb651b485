// Package config resolves run settings from defaults, an optional config
// file, MODELBENCH_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/weiihann/modelbench/fixture"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MODELBENCH"

// Defaults.
const (
	DefaultIterations = 10_000_000
	DefaultField      = "field6"
	DefaultValue      = "some string"
	DefaultFormat     = FormatText
)

// Report formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds the settings of a benchmark run.
type Config struct {
	Fixture    string   `mapstructure:"fixture"`
	Iterations int      `mapstructure:"iterations"`
	Strategies []string `mapstructure:"strategies"`
	Field      string   `mapstructure:"field"`
	Value      string   `mapstructure:"value"`
	Format     string   `mapstructure:"format"`
	History    string   `mapstructure:"history"`
	Textfile   string   `mapstructure:"textfile"`
	Verbose    bool     `mapstructure:"verbose"`
}

// RegisterFlags adds one flag per setting to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("fixture", fixture.Default,
		"Fixture source: file path, - for stdin, or embed:<name>")
	flags.Int("iterations", DefaultIterations,
		"Calls per timed operation")
	flags.StringSlice("strategies", nil,
		"Strategies to run, in order (default: all)")
	flags.String("field", DefaultField,
		"Field read and written by the field-access operations")
	flags.String("value", DefaultValue,
		"Value written by WriteField, parsed as a JSON scalar when possible")
	flags.String("format", DefaultFormat,
		"Report format: text, table, json")
	flags.String("history", "",
		"Append the run to this history file")
	flags.String("textfile", "",
		"Also write results as a Prometheus textfile to this path")
	flags.BoolP("verbose", "v", false,
		"Log every measured operation")
}

// Load resolves the configuration. cfgFile may be empty, in which case
// ./modelbench.{yaml,toml,json} is used when present. A .env file in the
// working directory is loaded into the environment first.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("fixture", fixture.Default)
	v.SetDefault("iterations", DefaultIterations)
	v.SetDefault("strategies", []string{})
	v.SetDefault("field", DefaultField)
	v.SetDefault("value", DefaultValue)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("history", "")
	v.SetDefault("textfile", "")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("modelbench")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Strategies = splitList(cfg.Strategies)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}

	if c.Field == "" {
		return errors.New("field must not be empty")
	}

	if c.Fixture == "" {
		return errors.New("fixture must not be empty")
	}

	switch c.Format {
	case FormatText, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want text, table or json)", c.Format)
	}

	return nil
}

// splitList flattens comma separated entries, which is how list values
// arrive from environment variables.
func splitList(items []string) []string {
	var out []string

	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
