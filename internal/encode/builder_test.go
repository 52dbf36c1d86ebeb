package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FullCommand(t *testing.T) {
	opts := Options{
		{"-vcodec", "libx265"},
		{"-crf", "24"},
		{"-vf", "scale=trunc(iw/4)*2:trunc(ih/4)*2"},
	}

	args := Build("/in/a.mp4", "/out/a.mp4", opts, false)
	assert.Equal(t, []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-i", "/in/a.mp4",
		"-vcodec", "libx265",
		"-crf", "24",
		"-vf", "scale=trunc(iw/4)*2:trunc(ih/4)*2",
		"/out/a.mp4",
	}, args)
}

func TestBuild_SkipsEmptyValues(t *testing.T) {
	opts := Options{
		{"-vcodec", "libx265"},
		{"-crf", "24"},
		{"-vf", ""},
	}

	args := Build("in.mp4", "out.mp4", opts, false)
	assert.NotContains(t, args, "-vf")
	assert.NotContains(t, args, "")
}

func TestBuild_VerboseLoglevel(t *testing.T) {
	args := Build("in.mp4", "out.mp4", Options{}, true)
	assert.Contains(t, args, "info")
	assert.Contains(t, args, "-stats")

	args = Build("in.mp4", "out.mp4", Options{}, false)
	assert.Contains(t, args, "error")
	assert.NotContains(t, args, "-stats")
}

func TestBuild_InputBeforeFlagsBeforeOutput(t *testing.T) {
	opts := Options{{"-vcodec", "libx265"}}
	args := Build("in.mp4", "out.mp4", opts, false)

	require.Equal(t, "out.mp4", args[len(args)-1], "output path must be last")

	inIdx := indexOf(args, "in.mp4")
	codecIdx := indexOf(args, "-vcodec")
	require.GreaterOrEqual(t, inIdx, 0)
	require.GreaterOrEqual(t, codecIdx, 0)
	assert.Less(t, inIdx, codecIdx, "flag table must follow the input")
}

func TestLastStderrLine(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"empty", "", ""},
		{"single line", "Error opening output file.\n", "Error opening output file."},
		{"multi line", "frame=1\nframe=2\nConversion failed!\n", "Conversion failed!"},
		{"trailing blanks", "Conversion failed!\n\n  \n", "Conversion failed!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastStderrLine(tt.stderr))
		})
	}
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
