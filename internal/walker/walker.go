// Package walker implements the traversal and dispatch policy: for each
// filesystem entry decide whether to transcode, copy, recurse, or deep-copy,
// and carry out that action.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/vidpress/internal/config"
	"github.com/backmassage/vidpress/internal/encode"
	"github.com/backmassage/vidpress/internal/fscopy"
	"github.com/backmassage/vidpress/internal/probe"
)

// Inspector classifies a file: video or not, and how many bytes.
type Inspector interface {
	Inspect(ctx context.Context, path string) (probe.MediaInfo, error)
}

// Encoder transcodes a single file using the resolved flag table.
type Encoder interface {
	Encode(ctx context.Context, input, output string, opts encode.Options) error
}

// Logger is the minimal logging interface the walker needs. Defined here
// (rather than importing the logging package) so the walker is testable
// with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Walker walks an input tree and mirrors it to the output path, applying
// the per-file compress-or-copy policy. It is single-threaded: each entry
// is visited exactly once along one control path, and a directory's output
// location always exists before anything is written beneath it.
type Walker struct {
	minSize   int64
	recursive bool
	verbose   bool
	opts      encode.Options

	log       Logger
	inspector Inspector
	encoder   Encoder

	Stats RunStats
}

// New builds a Walker from cfg and its collaborators. opts is the flag
// table resolved once for the whole run.
func New(cfg *config.Config, opts encode.Options, log Logger, inspector Inspector, encoder Encoder) *Walker {
	return &Walker{
		minSize:   cfg.MinSize,
		recursive: cfg.Recursive,
		verbose:   cfg.Verbose,
		opts:      opts,
		log:       log,
		inspector: inspector,
		encoder:   encoder,
	}
}

// Run processes input into output. Input may be a single file or a
// directory; filesystem errors abort the run, encoder failures do not
// (they are logged per file and counted in Stats).
func (w *Walker) Run(ctx context.Context, input, output string) error {
	fi, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat %q: %w", input, err)
	}
	if fi.IsDir() {
		return w.processDir(ctx, input, output)
	}
	return w.processFile(ctx, input, output)
}

// processFile applies the per-file policy: non-videos and videos at or
// below the size threshold are copied with metadata preserved; everything
// else is handed to the encoder.
func (w *Walker) processFile(ctx context.Context, input, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := w.inspector.Inspect(ctx, input)
	if err != nil {
		return err
	}

	if !info.HasVideo {
		w.log.Debug(w.verbose, "Skipping %s: not a video file", input)
		if err := fscopy.CopyFile(input, output); err != nil {
			return err
		}
		w.Stats.Copied++
		return nil
	}

	if info.Size <= w.minSize {
		w.log.Debug(w.verbose, "Skipping %s: size %d not above minsize %d", input, info.Size, w.minSize)
		if err := fscopy.CopyFile(input, output); err != nil {
			return err
		}
		w.Stats.Copied++
		return nil
	}

	w.log.Debug(w.verbose, "Compressing %s into %s", input, output)
	if err := w.encoder.Encode(ctx, input, output, w.opts); err != nil {
		// Deliberately not fatal: the rest of the tree is still processed.
		w.log.Warn("Encode failed for %s: %v", input, err)
		w.Stats.EncodeFailed++
		return nil
	}

	w.Stats.Transcoded++
	w.Stats.TotalInputBytes += info.Size
	if outInfo, err := os.Stat(output); err == nil {
		w.Stats.TotalOutputBytes += outInfo.Size()
	}
	return nil
}

// processDir mirrors one directory level. The output directory is created
// first (already existing is fine), then entries are visited in lexical
// order: files take the per-file policy, subdirectories either recurse or
// are deep-copied as opaque trees depending on the recursive flag.
func (w *Walker) processDir(ctx context.Context, input, output string) error {
	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", output, err)
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return fmt.Errorf("read directory %q: %w", input, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		inPath := filepath.Join(input, entry.Name())
		outPath := filepath.Join(output, entry.Name())

		st, err := os.Stat(inPath)
		if err != nil {
			// A dangling symlink stats to nothing; carry the link across.
			if entry.Type()&fs.ModeSymlink != 0 {
				if err := copyDanglingLink(inPath, outPath); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("stat %q: %w", inPath, err)
		}

		if !st.IsDir() {
			if err := w.processFile(ctx, inPath, outPath); err != nil {
				return err
			}
			continue
		}

		if w.recursive {
			if err := w.processDir(ctx, inPath, outPath); err != nil {
				return err
			}
			continue
		}

		if err := fscopy.CopyTree(inPath, outPath); err != nil {
			return err
		}
		w.Stats.TreeCopied++
	}

	w.log.Debug(w.verbose, "Compressed directory %s into %s", input, output)
	return nil
}

func copyDanglingLink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("readlink %q: %w", src, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("symlink %q: %w", dst, err)
	}
	return nil
}
