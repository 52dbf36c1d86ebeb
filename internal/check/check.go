// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation for ffmpeg, ffprobe, and the selected video codec.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/vidpress/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrCodecNotFound   = errors.New("selected video codec not available in this ffmpeg build")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// CheckDeps fails fast before a run when ffmpeg or ffprobe is missing from
// PATH, or when the configured codec is not among ffmpeg's encoders.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if !encoderAvailable(cfg.Codec) {
		return fmt.Errorf("%w: %s", ErrCodecNotFound, cfg.Codec)
	}
	return nil
}

// RunCheck runs the interactive --check flow: prints availability of
// ffmpeg, ffprobe, and the configured encoder. Informational only; returns
// false when a required piece is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := true
	ok = checkTool(log, "ffmpeg") && ok
	ok = checkTool(log, "ffprobe") && ok
	ok = checkEncoder(cfg, log) && ok
	return ok
}

// checkTool verifies the tool is on PATH and logs its version line.
func checkTool(log Logger, name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return false
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
	return true
}

// checkEncoder verifies the configured codec appears in ffmpeg's encoder list.
func checkEncoder(cfg *config.Config, log Logger) bool {
	if encoderAvailable(cfg.Codec) {
		log.Success("encoder available: %s", cfg.Codec)
		return true
	}
	log.Error("encoder not available: %s", cfg.Codec)
	return false
}

// encoderAvailable scans `ffmpeg -encoders` output for the codec name as a
// whole word. ffmpeg lists one encoder per line as " V..... name  description".
func encoderAvailable(codec string) bool {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").Output()
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == codec {
			return true
		}
	}
	return false
}
