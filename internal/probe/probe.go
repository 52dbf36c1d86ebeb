// Package probe provides ffprobe-based media inspection. A single JSON
// call per file answers the one question the traversal needs: does this
// file contain a real video stream? File size comes from the filesystem.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// MediaInfo is the classification result for a single file.
type MediaInfo struct {
	HasVideo bool  // True when the file contains a non-cover-art video stream.
	Size     int64 // File size in bytes.
}

// Prober inspects files by shelling out to ffprobe.
type Prober struct{}

// Inspect stats path and classifies it with one ffprobe JSON call.
//
// A stat failure is returned as an error (the file cannot be processed at
// all). An ffprobe failure is not: ffprobe exits non-zero for any file it
// cannot parse, which for this tool simply means "not a video" and the file
// takes the copy path.
func (Prober) Inspect(ctx context.Context, path string) (MediaInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return MediaInfo{}, fmt.Errorf("stat %q: %w", path, err)
	}
	info := MediaInfo{Size: fi.Size()}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return info, nil
	}

	hasVideo, err := ParseJSON(out)
	if err != nil {
		return info, nil
	}
	info.HasVideo = hasVideo
	return info, nil
}

// ParseJSON reports whether raw ffprobe JSON output describes a file with a
// video stream. Attached pictures (cover art) do not count: an MP3 with
// embedded artwork carries a video stream in ffprobe terms but is not a
// video. Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (bool, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return false, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType == "video" && s.Disposition["attached_pic"] != 1 {
			return true, nil
		}
	}
	return false, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Index       int            `json:"index"`
	CodecName   string         `json:"codec_name"`
	CodecType   string         `json:"codec_type"`
	Disposition map[string]int `json:"disposition"`
}
