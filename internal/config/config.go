// Package config loads longconv.toml and the LONGCONV_* environment overlay.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	envstruct "code.cloudfoundry.org/go-envstruct"

	"longconv/internal/codec"
	"longconv/internal/convert"
	"longconv/internal/trace"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "longconv.toml"

// Config holds every setting that can come from the file or the environment.
type Config struct {
	Convert ConvertConfig `toml:"convert"`
	Batch   BatchConfig   `toml:"batch"`
	Trace   TraceConfig   `toml:"trace"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type ConvertConfig struct {
	Input   string `toml:"input" env:"LONGCONV_INPUT"`
	Output  string `toml:"output" env:"LONGCONV_OUTPUT"`
	Format  string `toml:"format" env:"LONGCONV_FORMAT"`
	OnError string `toml:"on_error" env:"LONGCONV_ON_ERROR"`
	Strict  bool   `toml:"strict" env:"LONGCONV_STRICT"`
}

type BatchConfig struct {
	Jobs   int    `toml:"jobs" env:"LONGCONV_JOBS"`
	Suffix string `toml:"suffix" env:"LONGCONV_SUFFIX"`
	OutDir string `toml:"out_dir" env:"LONGCONV_OUT_DIR"`
}

type TraceConfig struct {
	Level  string `toml:"level" env:"LONGCONV_TRACE_LEVEL"`
	Output string `toml:"output" env:"LONGCONV_TRACE_OUTPUT"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Convert: ConvertConfig{
			Input:   "random-bytes",
			Output:  "random-longs",
			Format:  string(codec.FormatText),
			OnError: convert.PolicyFail.String(),
		},
		Batch: BatchConfig{Suffix: ".longs"},
		Trace: TraceConfig{Level: trace.LevelOff.String()},
	}
}

// Find walks up from startDir looking for longconv.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load builds the effective config: defaults, then the file at path (or the
// one found from startDir when path is empty), then the environment.
func Load(path, startDir string) (Config, error) {
	cfg := Default()
	if path == "" {
		found, ok, err := Find(startDir)
		if err != nil {
			return Config{}, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
		cfg.Path = path
	}
	if err := envstruct.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("convert", "input") && strings.TrimSpace(cfg.Convert.Input) == "" {
		return fmt.Errorf("%s: [convert].input must not be empty", path)
	}
	if meta.IsDefined("convert", "output") && strings.TrimSpace(cfg.Convert.Output) == "" {
		return fmt.Errorf("%s: [convert].output must not be empty", path)
	}
	return nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := codec.ParseFormat(c.Convert.Format); err != nil {
		return fmt.Errorf("convert.format: %w", err)
	}
	if _, err := convert.ParsePolicy(c.Convert.OnError); err != nil {
		return fmt.Errorf("convert.on_error: %w", err)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("batch.jobs: must be >= 0, got %d", c.Batch.Jobs)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("trace.level: %w", err)
	}
	return nil
}
