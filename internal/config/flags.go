package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into paths, traversal, encoding, display, and utility.
// Both long and short spellings are registered for the flags the original
// tool aliased (-d/--data, -o/--out, -m/--minsize, -rec, -s, -v).

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag or malformed value).
//
// The config file and environment have already been applied to cfg by
// [LoadExternal], so any flag the user passes here wins over them.
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("vidpress", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var util utilityFlags

	definePathFlags(fs, cfg)
	defineTraversalFlags(fs, cfg)
	defineEncodingFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &util)
	defineUtilityFlags(fs, cfg, &util)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyUtilityFlags(cfg, &util)

	if util.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if util.showVersion {
		fmt.Fprintln(os.Stdout, "vidpress v"+version)
		os.Exit(0)
	}

	if narg := fs.NArg(); narg != 0 {
		return fmt.Errorf("unexpected argument %q (paths are given via --data/--out)", fs.Arg(0))
	}
	return nil
}

// utilityFlags holds boolean flags that are applied after Parse, either to
// invert a resolved value (--no-color) or to trigger exit (help, version).
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePathFlags registers -d/--data and -o/--out.
func definePathFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Input, "data", cfg.Input, "Input file or directory")
	fs.StringVar(&cfg.Input, "d", cfg.Input, "Same as --data")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "Output file or directory (default: same as --data)")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Same as --out")
}

// defineTraversalFlags registers -m/--minsize and -rec/--recursive.
func defineTraversalFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Int64Var(&cfg.MinSize, "minsize", cfg.MinSize, "Minimum size in bytes for a video to be compressed")
	fs.Int64Var(&cfg.MinSize, "m", cfg.MinSize, "Same as --minsize")
	fs.BoolVar(&cfg.Recursive, "recursive", cfg.Recursive, "Recurse into subdirectories instead of copying them")
	fs.BoolVar(&cfg.Recursive, "rec", cfg.Recursive, "Same as --recursive")
}

// defineEncodingFlags registers --vcodec, --crf, -s/--scale, --vf.
func defineEncodingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Codec, "vcodec", cfg.Codec, "Video codec, passed through to ffmpeg")
	fs.StringVar(&cfg.CRF, "crf", cfg.CRF, "Constant Rate Factor (lower = higher quality)")
	fs.Var(&scaleValue{&cfg.Scale}, "scale", "Down-scaling preset: half | third | quarter | fifth")
	fs.Var(&scaleValue{&cfg.Scale}, "s", "Same as --scale")
	fs.StringVar(&cfg.RawFilter, "vf", cfg.RawFilter, "Raw ffmpeg filter expression (ignored when --scale is set)")
}

// defineDisplayFlags registers verbose, color, and log flags.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --check, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Path to YAML config file")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// applyUtilityFlags copies post-parse overrides into cfg.
func applyUtilityFlags(cfg *Config, u *utilityFlags) {
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// ConfigFilePath pre-scans args for a --config value so the file can be
// loaded before flag parsing (flags must override file values). Returns ""
// when the flag is absent.
func ConfigFilePath(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := strings.TrimLeft(arg, "-")
		if !strings.HasPrefix(name, "config") || len(arg) == len(name) {
			continue
		}
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			if name[:eq] == "config" {
				return name[eq+1:]
			}
			continue
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "vidpress v" + version + " — batch video compressor (ffmpeg wrapper)"},
		{"", ""},
		{"  vidpress [OPTIONS] --data <path>", ""},
		{"", ""},
		{"Paths", ""},
		{"  -d, --data <path>", "Input file or directory (required)"},
		{"  -o, --out <path>", "Output file or directory (default: same as input)"},
		{"", ""},
		{"Traversal", ""},
		{"  -m, --minsize <bytes>", "Minimum video size to compress (default: 0)"},
		{"  -rec, --recursive", "Recurse into subdirectories instead of copying them"},
		{"", ""},
		{"Encoding", ""},
		{"  --vcodec <name>", "Video codec passed to ffmpeg (default: libx265)"},
		{"  --crf <value>", "Constant Rate Factor (default: 24)"},
		{"  -s, --scale <preset>", "half | third | quarter | fifth (overrides --vf)"},
		{"  --vf <expr>", "Raw ffmpeg filter expression"},
		{"", ""},
		{"Display", ""},
		{"  -v, --verbose", "Verbose output"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML config file (default: ~/.config/vidpress/config.yaml)"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, codec)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so ScalePreset can be used with flag.Var.

type scaleValue struct{ p *ScalePreset }

func (s *scaleValue) String() string {
	if s.p == nil {
		return ""
	}
	return string(*s.p)
}

func (s *scaleValue) Set(v string) error {
	switch strings.ToLower(v) {
	case "half":
		*s.p = ScaleHalf
	case "third":
		*s.p = ScaleThird
	case "quarter":
		*s.p = ScaleQuarter
	case "fifth":
		*s.p = ScaleFifth
	default:
		return fmt.Errorf("invalid scale %q (use 'half', 'third', 'quarter' or 'fifth')", v)
	}
	return nil
}
