// Package encode resolves user settings into an ordered ffmpeg flag table,
// builds the argument vector, and runs the encoder subprocess.
package encode

import (
	"fmt"

	"github.com/backmassage/vidpress/internal/config"
)

// Option is a single encoder flag/value pair.
type Option struct {
	Flag  string
	Value string
}

// Options is the ordered flag table passed to every transcode call. It is
// built once per run by [Resolve] and never mutated afterwards. Order is
// fixed (-vcodec, -crf, -vf) because ffmpeg is order-sensitive for
// interacting flags.
type Options []Option

// Resolve turns the configured codec, quality, and scaling settings into
// the flag table.
//
// When a scale preset is set its synthesized filter wins and any raw --vf
// value is discarded; the trunc(…/D)*2 expression floors each output
// dimension to an even integer, which most encoders require for
// chroma-subsampled formats.
func Resolve(cfg *config.Config) Options {
	filter := cfg.RawFilter
	if d := cfg.Scale.Divisor(); d > 0 {
		filter = fmt.Sprintf("scale=trunc(iw/%d)*2:trunc(ih/%d)*2", d, d)
	}

	return Options{
		{Flag: "-vcodec", Value: cfg.Codec},
		{Flag: "-crf", Value: cfg.CRF},
		{Flag: "-vf", Value: filter},
	}
}

// Get returns the value for flag, or "" when absent.
func (o Options) Get(flag string) string {
	for _, opt := range o {
		if opt.Flag == flag {
			return opt.Value
		}
	}
	return ""
}
