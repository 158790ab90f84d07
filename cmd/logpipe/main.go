package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/logpipe/internal/app"
	"github.com/five82/logpipe/internal/config"
)

var buildVersion = "dev"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	var cmd app.Command
	switch args[0] {
	case "augment":
		cmd = app.CommandAugment
	case "pretty-print", "pretty":
		cmd = app.CommandPretty
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "logpipe %s\n", buildVersion)
		return exitOK
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		printUsage(stderr)
		return exitUsage
	}

	opts, err := parseFlags(cmd, args[1:], stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, cmd, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			return exitError
		}
		fmt.Fprintf(stderr, "logpipe: %v\n", err)
		return exitError
	}
	return exitOK
}

func parseFlags(cmd app.Command, args []string, stderr io.Writer) (app.Options, error) {
	fs := flag.NewFlagSet(string(cmd), flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "config file path (default ~/.config/logpipe/config.toml)")
	logLevel := fs.String("log-level", "", "diagnostic log level on stderr (debug, info, warn, error)")

	var apply []func(*config.Config)
	switch cmd {
	case app.CommandAugment:
		hostname := fs.Bool("append-hostname", false, "Includes a hostname.")
		instanceID := fs.Bool("append-instance-id", false, "Generates and includes a unique instance ID.")
		orphans := fs.Bool("exclude-orphans", false, "Excludes messages that cannot be recognized as structured log records.")
		apply = append(apply, func(c *config.Config) {
			setIfVisited(fs, "append-hostname", func() { c.Augment.AppendHostname = *hostname })
			setIfVisited(fs, "append-instance-id", func() { c.Augment.AppendInstanceID = *instanceID })
			setIfVisited(fs, "exclude-orphans", func() { c.Augment.ExcludeOrphans = *orphans })
		})
	case app.CommandPretty:
		format := fs.String("output-format", "pretty", "output format: pretty or json")
		colors := fs.String("use-colors", "auto", "colorize output: auto, always or never")
		filterExpr := fs.String("filter", "", "only show records matching the expression")
		head := fs.Int("head", 0, "records to show before each match")
		lag := fs.Int("lag", 0, "records to show after each match")
		apply = append(apply, func(c *config.Config) {
			setIfVisited(fs, "output-format", func() { c.Pretty.OutputFormat = *format })
			setIfVisited(fs, "use-colors", func() { c.Pretty.UseColors = *colors })
			setIfVisited(fs, "filter", func() { c.Pretty.Filter = *filterExpr })
			setIfVisited(fs, "head", func() { c.Pretty.Head = *head })
			setIfVisited(fs, "lag", func() { c.Pretty.Lag = *lag })
		})
	}

	if err := fs.Parse(args); err != nil {
		return app.Options{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return app.Options{}, fmt.Errorf("unexpected arguments")
	}
	if v := intFlag(fs, "head"); v < 0 {
		fmt.Fprintln(stderr, "--head must not be negative")
		return app.Options{}, fmt.Errorf("negative head")
	}
	if v := intFlag(fs, "lag"); v < 0 {
		fmt.Fprintln(stderr, "--lag must not be negative")
		return app.Options{}, fmt.Errorf("negative lag")
	}

	return app.Options{
		ConfigPath: *configPath,
		Overrides: func(c *config.Config) {
			setIfVisited(fs, "log-level", func() { c.LogLevel = *logLevel })
			for _, fn := range apply {
				fn(c)
			}
		},
	}, nil
}

// setIfVisited runs set only when the flag was given on the command line, so
// defaults never mask config file or environment values.
func setIfVisited(fs *flag.FlagSet, name string, set func()) {
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set()
		}
	})
}

func intFlag(fs *flag.FlagSet, name string) int {
	f := fs.Lookup(name)
	if f == nil {
		return 0
	}
	getter, ok := f.Value.(flag.Getter)
	if !ok {
		return 0
	}
	v, _ := getter.Get().(int)
	return v
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `logpipe - structured log stream filter

Usage:
  logpipe augment [--append-hostname] [--append-instance-id] [--exclude-orphans]
  logpipe pretty-print [--output-format pretty|json] [--use-colors auto|always|never]
                       [--filter EXPR] [--head N] [--lag N]
  logpipe version

Common flags:
  --config PATH      config file (default ~/.config/logpipe/config.toml)
  --log-level LEVEL  diagnostic logging on stderr

Input is read from stdin and written to stdout, one line at a time.
`)
}
