package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/observability"
	"git.home.luguber.info/inful/blogbuilder/internal/version"
	"git.home.luguber.info/inful/blogbuilder/internal/watch"
)

// CLI is the flag set of the blogbuilder command.
type CLI struct {
	Watch     bool             `help:"Rebuild when Markdown sources change"`
	Root      string           `help:"Site root (default: $BLOGBUILDER_ROOT or the working directory)"`
	Config    string           `short:"c" help:"Configuration file (default: {root}/blogbuilder.yaml when present)"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format: text or json (overrides logging.format)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("blogbuilder"),
		kong.Description("Build the bilingual blog from Markdown sources."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logger, err := cli.run(ctx, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, logger).HandleError(err)
	}
}

// run loads the configuration and builds once, or keeps rebuilding in watch
// mode until ctx is done. The returned logger is the one errors should go to.
func (c *CLI) run(ctx context.Context, stdout, stderr io.Writer) (*slog.Logger, error) {
	logger := c.newLogger(stderr, nil)

	cfg, err := config.Load(config.LoadOptions{Root: c.Root, ConfigPath: c.Config})
	if err != nil {
		return logger, err
	}
	logger = c.newLogger(stderr, cfg)
	slog.SetDefault(logger)

	if described, derr := cfg.Describe(); derr == nil {
		logger.Debug("Resolved configuration", slog.String("config", described))
	}

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)

	builder, err := build.New(cfg,
		build.WithLogger(logger),
		build.WithRecorder(recorder),
		build.WithGatherer(reg),
		build.WithStdout(stdout),
	)
	if err != nil {
		return logger, err
	}

	if !c.Watch {
		_, err = builder.BuildAll(ctx)
		return logger, err
	}

	w := watch.New(cfg.MarkdownDir(), builder,
		watch.WithDebounce(cfg.Watch.Debounce),
		watch.WithLogger(logger),
		watch.WithRecorder(recorder),
		watch.WithStdout(stdout),
	)
	return logger, w.Run(ctx)
}

// newLogger applies flag overrides on top of the logging section. A nil cfg
// yields the bootstrap logger used while the configuration loads.
func (c *CLI) newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	format := config.LogFormatText
	if cfg != nil {
		level = cfg.Logging.Level.SlogLevel()
		format = cfg.Logging.Format
	}
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	return observability.NewLogger(w, level, format == config.LogFormatJSON)
}
