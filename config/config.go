// SPDX-License-Identifier: MIT

// Package config loads construction defaults from YAML and environment
// variables and turns them into construct and storage options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ndarray/construct"
	"github.com/katalvlaran/ndarray/dtype"
	"github.com/katalvlaran/ndarray/storage"
)

// ErrInvalidConfig wraps every decoding and validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variables applied over the file values by Load.
const (
	EnvDefaultType   = "NDARRAY_DEFAULT_TYPE"
	EnvLogLevel      = "NDARRAY_LOG_LEVEL"
	EnvMaxAllocBytes = "NDARRAY_MAX_ALLOC_BYTES"
)

// Config holds the library-wide construction defaults.
type Config struct {
	// DefaultType is the element type of empty sequences, in dtype.Parse notation.
	DefaultType string `yaml:"default_type" validate:"required,dtype"`
	// MinDepth and MaxDepth bound the dimension count; 0 disables a bound.
	MinDepth int `yaml:"min_depth" validate:"gte=0,lte=32"`
	MaxDepth int `yaml:"max_depth" validate:"omitempty,lte=32,gtefield=MinDepth"`
	// AllowScalarConversion builds 0-d arrays from scalars.
	AllowScalarConversion bool `yaml:"allow_scalar_conversion"`
	// FortranOrder lays out new arrays column-major.
	FortranOrder bool `yaml:"fortran_order"`
	// NativeByteOrder requires results in host byte order.
	NativeByteOrder bool `yaml:"native_byte_order"`
	// MaxAllocBytes caps a single allocation.
	MaxAllocBytes int64 `yaml:"max_alloc_bytes" validate:"gt=0"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("dtype", validateDType); err != nil {
		panic(fmt.Sprintf("config: register dtype validation: %v", err))
	}
}

// validateDType accepts strings that dtype.Parse understands.
func validateDType(fl validator.FieldLevel) bool {
	_, err := dtype.Parse(fl.Field().String())
	return err == nil
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		DefaultType:   dtype.DefaultKind.String(),
		MaxAllocBytes: storage.DefaultMaxAllocBytes,
		LogLevel:      "info",
	}
}

// Load reads path over the defaults, applies the environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes YAML over the defaults and validates it. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDefaultType); v != "" {
		cfg.DefaultType = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvMaxAllocBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvMaxAllocBytes, err)
		}
		cfg.MaxAllocBytes = n
	}
	return nil
}

// Validate checks the struct tags and the default type.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ElementType returns the parsed default type.
func (c Config) ElementType() dtype.DType {
	dt, err := dtype.Parse(c.DefaultType)
	if err != nil {
		return dtype.New(dtype.DefaultKind)
	}
	return dt
}

// Level returns the slog level named by LogLevel (info when unknown).
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// BuilderOptions translates the construction defaults into construct options.
func (c Config) BuilderOptions() []construct.Option {
	opts := []construct.Option{construct.WithDefaultType(c.ElementType())}
	if c.AllowScalarConversion {
		opts = append(opts, construct.WithScalarConversion())
	}
	if c.FortranOrder {
		opts = append(opts, construct.WithFortranOrder())
	}
	if c.NativeByteOrder {
		opts = append(opts, construct.WithNativeByteOrder())
	}
	return opts
}

// EngineOptions translates the allocation limit into storage options.
func (c Config) EngineOptions() []storage.Option {
	if c.MaxAllocBytes <= 0 {
		return nil
	}
	return []storage.Option{storage.WithMaxAllocBytes(c.MaxAllocBytes)}
}
