package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/vidpress/internal/config"
)

func TestResolve_RawFilter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RawFilter = "scale=1280:-2"

	opts := Resolve(&cfg)
	require.Len(t, opts, 3)
	assert.Equal(t, Option{"-vcodec", "libx265"}, opts[0])
	assert.Equal(t, Option{"-crf", "24"}, opts[1])
	assert.Equal(t, Option{"-vf", "scale=1280:-2"}, opts[2])
}

func TestResolve_ScalePresets(t *testing.T) {
	tests := []struct {
		preset config.ScalePreset
		want   string
	}{
		{config.ScaleHalf, "scale=trunc(iw/4)*2:trunc(ih/4)*2"},
		{config.ScaleThird, "scale=trunc(iw/6)*2:trunc(ih/6)*2"},
		{config.ScaleQuarter, "scale=trunc(iw/8)*2:trunc(ih/8)*2"},
		{config.ScaleFifth, "scale=trunc(iw/10)*2:trunc(ih/10)*2"},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Scale = tt.preset

			opts := Resolve(&cfg)
			assert.Equal(t, tt.want, opts.Get("-vf"))
		})
	}
}

func TestResolve_PresetOverridesRawFilter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scale = config.ScaleQuarter
	cfg.RawFilter = "scale=640:480"

	opts := Resolve(&cfg)
	vf := opts.Get("-vf")
	assert.Equal(t, "scale=trunc(iw/8)*2:trunc(ih/8)*2", vf)
	assert.NotContains(t, vf, "640", "raw filter must never survive a preset")
}

func TestResolve_EmptyFilterKeepsEntry(t *testing.T) {
	cfg := config.DefaultConfig()

	opts := Resolve(&cfg)
	require.Len(t, opts, 3, "the -vf entry stays in the table even when empty")
	assert.Equal(t, "-vf", opts[2].Flag)
	assert.Empty(t, opts[2].Value)
}

func TestResolve_StableOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scale = config.ScaleHalf

	opts := Resolve(&cfg)
	flags := []string{opts[0].Flag, opts[1].Flag, opts[2].Flag}
	assert.Equal(t, []string{"-vcodec", "-crf", "-vf"}, flags)
}

func TestOptions_Get(t *testing.T) {
	opts := Options{{"-vcodec", "libx265"}, {"-crf", "24"}}
	assert.Equal(t, "libx265", opts.Get("-vcodec"))
	assert.Empty(t, opts.Get("-preset"))
}

// The spec scenario: quarter preset on a 1920x1080 source. The filter only
// encodes the arithmetic, so verify the expression produces the expected
// dimensions when evaluated: trunc(1920/8)*2 = 480, trunc(1080/8)*2 = 270.
func TestResolve_QuarterDimensionMath(t *testing.T) {
	d := config.ScaleQuarter.Divisor()
	assert.Equal(t, 480, (1920/d)*2)
	assert.Equal(t, 270, (1080/d)*2)
}
