package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into paths, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// ErrVersionRequested is returned by ParseFlags after printing the version.
// Callers treat it (and pflag.ErrHelp) as a successful early exit.
var ErrVersionRequested = errors.New("version requested")

// ParseFlags parses args (without the program name) into cfg. When --config
// names a YAML file, the file is loaded onto a fresh default Config and the
// flags are parsed again on top of it, so explicit flags always win.
func ParseFlags(cfg *Config, args []string, version string) error {
	if err := parseInto(cfg, args, version, io.Discard); err != nil {
		return err
	}
	if cfg.ConfigFile == "" {
		return nil
	}

	base := DefaultConfig()
	if err := LoadFile(&base, cfg.ConfigFile); err != nil {
		return err
	}
	if err := parseInto(&base, args, version, os.Stderr); err != nil {
		return err
	}
	*cfg = base
	return nil
}

// parseInto runs one flag pass. Usage output goes to out so the first pass
// of a --config run stays quiet.
func parseInto(cfg *Config, args []string, version string, out io.Writer) error {
	fs := pflag.NewFlagSet("longexposure", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(out)
	fs.Usage = func() { printUsage(os.Stderr, version) }

	var negated negatedFlags

	definePathFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "longexposure v"+version)
		return ErrVersionRequested
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
}

// definePathFlags registers --exposures, --processed, --config.
func definePathFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.ExposuresDir, "exposures", "e", cfg.ExposuresDir, "Output directory for still images")
	fs.StringVarP(&cfg.ProcessedDir, "processed", "P", cfg.ProcessedDir, "Directory processed videos are moved into")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML config file (flags override it)")
}

// defineBehaviorFlags registers --ext, --dry-run, --analyze, --motion-profile.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringSliceVar(&cfg.Extensions, "ext", cfg.Extensions, "Recognized video extensions")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", cfg.DryRun, "Open and report videos; write and move nothing")
	fs.BoolVarP(&cfg.Analyze, "analyze", "a", cfg.Analyze, "Print an inventory of candidate videos and exit")
	fs.BoolVar(&cfg.MotionProfile, "motion-profile", cfg.MotionProfile, "Also chart per-frame motion")
}

// defineDisplayFlags registers --color, --no-color, --verbose, --progress-every, --check, --log.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
	fs.IntVar(&cfg.ProgressEvery, "progress-every", cfg.ProgressEvery, "Frames per progress line when not on a TTY")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Run system diagnostics and exit")
	fs.StringVarP(&cfg.LogFile, "log", "l", cfg.LogFile, "Append logs to file")
}

// defineUtilityFlags registers --version. --help is provided by pflag.
func defineUtilityFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVarP(&n.showVersion, "version", "V", false, "Print version and exit")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir from the optional positional arg.
func parsePositionalArgs(fs *pflag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		cfg.InputDir = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("expected at most one input directory, got %d", len(args))
	}
}

// printUsage writes the help text to w. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "longexposure v" + version + " - long-exposure stills from video"},
		{"", ""},
		{"  longexposure [OPTIONS] [input_dir]", ""},
		{"", ""},
		{"Paths", ""},
		{"  -e, --exposures <dir>", "Still image output (default: <input>/exposures)"},
		{"  -P, --processed <dir>", "Processed videos (default: <input>/processed)"},
		{"  --config <file>", "YAML config file; flags override it"},
		{"", ""},
		{"Behavior", ""},
		{"  --ext <.mp4,.mov,...>", "Recognized extensions (default: " + strings.Join(DefaultExtensions, ",") + ")"},
		{"  -d, --dry-run", "Open and report videos; write and move nothing"},
		{"  -a, --analyze", "Inventory of candidate videos, then exit"},
		{"  --motion-profile", "Also chart per-frame motion"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  --progress-every <n>", "Frames per progress line off-TTY (default: 50)"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
