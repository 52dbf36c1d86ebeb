// Package config holds runtime configuration: defaults, CLI flag parsing,
// optional config-file/environment loading, and validation.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// --- Enum types for validated string fields ---

// ScalePreset is a named down-scaling factor. Each preset maps to an
// integer divisor used to build the ffmpeg scale filter; both output
// dimensions are floored to the nearest even integer as required by
// chroma-subsampled pixel formats.
type ScalePreset string

const (
	ScaleNone    ScalePreset = ""        // No down-scaling preset.
	ScaleHalf    ScalePreset = "half"    // Divisor 4.
	ScaleThird   ScalePreset = "third"   // Divisor 6.
	ScaleQuarter ScalePreset = "quarter" // Divisor 8.
	ScaleFifth   ScalePreset = "fifth"   // Divisor 10.
)

// Divisor returns the scale divisor for the preset, or 0 for ScaleNone.
func (s ScalePreset) Divisor() int {
	switch s {
	case ScaleHalf:
		return 4
	case ScaleThird:
		return 6
	case ScaleQuarter:
		return 8
	case ScaleFifth:
		return 10
	}
	return 0
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadExternal] (config file and environment), and
// finally mutated by [ParseFlags] before being passed (by pointer) to the
// packages that need it.
//
// Precedence, lowest to highest: defaults, config file, environment, flags.
type Config struct {
	// Paths.
	Input  string `yaml:"data" env:"VIDPRESS_DATA"`
	Output string `yaml:"out" env:"VIDPRESS_OUT"` // Defaults to Input when empty.

	// Traversal policy.
	MinSize   int64 `yaml:"minsize" env:"VIDPRESS_MINSIZE" validate:"min=0"` // Files at or below this size are copied, not transcoded.
	Recursive bool  `yaml:"recursive" env:"VIDPRESS_RECURSIVE"`              // Descend into subdirectories instead of deep-copying them.

	// Encoder settings, passed through to ffmpeg.
	Codec     string      `yaml:"vcodec" env:"VIDPRESS_VCODEC" validate:"required"` // Default: "libx265".
	CRF       string      `yaml:"crf" env:"VIDPRESS_CRF" validate:"required"`       // Default: "24".
	Scale     ScalePreset `yaml:"scale" env:"VIDPRESS_SCALE" validate:"omitempty,oneof=half third quarter fifth"`
	RawFilter string      `yaml:"vf" env:"VIDPRESS_VF"` // Raw -vf expression; ignored when Scale is set.

	// Display and logging.
	Verbose   bool      `yaml:"verbose" env:"VIDPRESS_VERBOSE"`
	ColorMode ColorMode `yaml:"color" env:"VIDPRESS_COLOR" validate:"oneof=auto always never"`
	LogFile   string    `yaml:"log" env:"VIDPRESS_LOG"` // Optional log file path.

	// Utility modes (flags only, never read from file/env).
	CheckOnly  bool   `yaml:"-"`
	ConfigFile string `yaml:"-"`
}

// DefaultConfig returns a Config with the built-in defaults: libx265 at
// CRF 24, no scaling, zero minimum size, non-recursive, auto colors.
func DefaultConfig() Config {
	return Config{
		MinSize:   0,
		Recursive: false,
		Codec:     "libx265",
		CRF:       "24",
		Scale:     ScaleNone,
		Verbose:   false,
		ColorMode: ColorAuto,
	}
}

var validate = validator.New()

// Validate checks field constraints and, outside CheckOnly mode, requires an
// input path. An empty Output is defaulted to Input here so that everything
// downstream can rely on both being set.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}

	if c.CheckOnly {
		return nil
	}
	if c.Input == "" {
		return errors.New("input path required (use --data)")
	}
	if c.Output == "" {
		c.Output = c.Input
	}
	return nil
}

// fieldError converts the first validator failure into a user-facing message.
func fieldError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "MinSize":
		return errors.New("minimum size must not be negative")
	case "Scale":
		return fmt.Errorf("invalid scale %q (use 'half', 'third', 'quarter' or 'fifth')", fe.Value())
	case "ColorMode":
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", fe.Value())
	case "Codec":
		return errors.New("video codec must not be empty")
	case "CRF":
		return errors.New("CRF must not be empty")
	}
	return fmt.Errorf("invalid value for %s", fe.StructField())
}
