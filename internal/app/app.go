package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	log "github.com/sirupsen/logrus"

	"github.com/five82/logpipe/internal/config"
	"github.com/five82/logpipe/internal/enrich"
	"github.com/five82/logpipe/internal/filter"
	"github.com/five82/logpipe/internal/logger"
	"github.com/five82/logpipe/internal/record"
	"github.com/five82/logpipe/internal/render"
	"github.com/five82/logpipe/internal/stream"
)

// Command names a logpipe subcommand.
type Command string

const (
	CommandAugment Command = "augment"
	CommandPretty  Command = "pretty-print"
)

// Options configure a logpipe run.
type Options struct {
	ConfigPath string
	// Overrides is applied after the config file and environment, so flags
	// set on the command line win.
	Overrides func(*config.Config)

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Identity supplies hostname and instance ID; nil uses the system.
	Identity *enrich.Identity
}

// Run executes cmd until its input is exhausted or ctx is cancelled.
func Run(ctx context.Context, cmd Command, opts Options) error {
	opts = withDefaults(opts)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Overrides != nil {
		opts.Overrides(&cfg)
	}

	logs := logger.Setup(cfg.LogLevel, opts.Stderr)
	logs.WithField("command", string(cmd)).Debug("starting")

	transformer, err := build(cmd, cfg, opts)
	if err != nil {
		return err
	}

	driver := stream.NewDriver(transformer, logs)
	stats, err := driver.Run(ctx, opts.Stdin, opts.Stdout)
	if err != nil {
		reportFailure(logs, cmd, err)
		return err
	}
	logs.WithFields(log.Fields{"lines": stats.Lines, "emitted": stats.Emitted}).Debug("done")
	return nil
}

func withDefaults(opts Options) Options {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Identity == nil {
		opts.Identity = enrich.NewIdentity(nil, nil)
	}
	return opts
}

func build(cmd Command, cfg config.Config, opts Options) (stream.Transformer, error) {
	switch cmd {
	case CommandAugment:
		return newAugmenter(cfg.Augment, opts.Identity), nil
	case CommandPretty:
		return newPrettyPrinter(cfg.Pretty, isTerminal(opts.Stdout))
	default:
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
}

func newAugmenter(cfg config.AugmentConfig, identity *enrich.Identity) *enrich.Augmenter {
	return enrich.NewAugmenter(enrich.Config{
		AppendHostname:   cfg.AppendHostname,
		AppendInstanceID: cfg.AppendInstanceID,
		ExcludeOrphans:   cfg.ExcludeOrphans,
	}, identity)
}

func newPrettyPrinter(cfg config.PrettyConfig, terminal bool) (stream.Transformer, error) {
	format, err := render.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	mode, err := render.ParseColorMode(cfg.UseColors)
	if err != nil {
		return nil, err
	}
	formatter := render.NewFormatter(render.Config{
		Format:  format,
		Palette: render.NewPalette(mode.Enabled(terminal, termenv.EnvNoColor()), termenv.ANSI),
	})
	if cfg.Filter == "" {
		return formatter, nil
	}
	f, err := filter.New(filter.Config{Expression: cfg.Filter, Head: cfg.Head, Lag: cfg.Lag}, formatter)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}
	return f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// reportFailure adds debug detail for a failed run. The error itself is
// returned to the caller, which prints it once.
func reportFailure(logs log.FieldLogger, cmd Command, err error) {
	var lineErr *stream.LineError
	var parseErr *record.ParseError
	var writeErr *stream.WriteError
	switch {
	case errors.As(err, &parseErr) && errors.As(err, &lineErr):
		logs.WithFields(log.Fields{
			"command": string(cmd),
			"line":    lineErr.Line,
			"error":   parseErr.Err,
		}).Debug("malformed structured record, aborting")
	case errors.As(err, &writeErr):
		logs.WithError(writeErr.Err).Debug("output closed")
	case errors.Is(err, context.Canceled):
		logs.Debug("interrupted")
	}
}
