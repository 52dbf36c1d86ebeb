// Command vidpress is the CLI entrypoint for the vidpress batch video
// compressor.
//
// It parses flags (layered over an optional config file and environment),
// validates configuration, and either runs system diagnostics (--check) or
// walks the input tree, compressing video files above the size threshold
// and copying everything else unchanged.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/backmassage/vidpress/internal/check"
	"github.com/backmassage/vidpress/internal/config"
	"github.com/backmassage/vidpress/internal/display"
	"github.com/backmassage/vidpress/internal/encode"
	"github.com/backmassage/vidpress/internal/logging"
	"github.com/backmassage/vidpress/internal/probe"
	"github.com/backmassage/vidpress/internal/walker"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	start := time.Now()

	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger.
	cfg := config.DefaultConfig()
	args := os.Args[1:]

	if err := config.LoadExternal(&cfg, config.ConfigFilePath(args)); err != nil {
		fmt.Fprintf(os.Stderr, "vidpress: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version, args); err != nil {
		fmt.Fprintf(os.Stderr, "vidpress: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "vidpress: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vidpress: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== vidpress v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.Input)
	log.Info("Out: %s", cfg.Output)
	if cfg.ConfigFile != "" {
		log.Debug(cfg.Verbose, "Config file: %s", cfg.ConfigFile)
	}

	// Fail fast if ffmpeg/ffprobe or the chosen codec are unavailable.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// walk stops and any in-flight ffmpeg process is killed.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	// Phase 4: Resolve the encoder flag table once, then walk.
	opts := encode.Resolve(&cfg)
	if cfg.Scale != config.ScaleNone && cfg.RawFilter != "" {
		log.Debug(cfg.Verbose, "--scale %s overrides --vf %q", cfg.Scale, cfg.RawFilter)
	}
	log.Info("Codec: %s, CRF: %s", cfg.Codec, cfg.CRF)
	if vf := opts.Get("-vf"); vf != "" {
		log.Info("Filter: %s", vf)
	}

	w := walker.New(&cfg, opts, log, probe.Prober{}, &encode.Runner{Verbose: cfg.Verbose})
	if err := w.Run(ctx, cfg.Input, cfg.Output); err != nil {
		log.Error("%v", err)
		return 1
	}

	logSummary(log, &w.Stats, cfg.Input, cfg.Output)
	log.Info("Finished in %.1f secs", time.Since(start).Seconds())

	if w.Stats.EncodeFailed > 0 {
		return 1
	}
	return 0
}

func logSummary(log *logging.Logger, stats *walker.RunStats, input, output string) {
	log.Success("Successfully compressed: %s into %s", input, output)
	log.Info("  Transcoded: %d, copied: %d, subtrees copied: %d, encode failures: %d",
		stats.Transcoded, stats.Copied, stats.TreeCopied, stats.EncodeFailed)

	if stats.Transcoded == 0 {
		return
	}
	saved := stats.SpaceSaved()
	if saved >= 0 {
		log.Success("  Space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	} else {
		log.Warn("  Space saved: %s (output is larger)",
			display.FormatBytesWithSign(-saved))
	}
}
