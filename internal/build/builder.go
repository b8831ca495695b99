package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogbuilder/internal/assets"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/i18n"
	"git.home.luguber.info/inful/blogbuilder/internal/index"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/observability"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Stage names used in logs and metrics.
const (
	StageDiscover = "discover"
	StageRender   = "render"
	StageIndex    = "index"
	StageAssets   = "assets"
)

// Builder runs full builds for one configuration.
type Builder struct {
	cfg       *config.Config
	processor *post.Processor
	logger    *slog.Logger
	recorder  metrics.Recorder
	gatherer  prom.Gatherer
	stdout    io.Writer
	newID     func() string
	code      markdown.CodeFormatter
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithGatherer sets the registry exported to metrics.textfile after each build.
func WithGatherer(g prom.Gatherer) Option {
	return func(b *Builder) { b.gatherer = g }
}

// WithStdout sets where progress lines are printed.
func WithStdout(w io.Writer) Option {
	return func(b *Builder) {
		if w != nil {
			b.stdout = w
		}
	}
}

// WithBuildIDFunc overrides build ID generation.
func WithBuildIDFunc(f func() string) Option {
	return func(b *Builder) {
		if f != nil {
			b.newID = f
		}
	}
}

// WithCodeFormatter replaces the code block strategy selected by markdown.code_highlight.
func WithCodeFormatter(f markdown.CodeFormatter) Option {
	return func(b *Builder) { b.code = f }
}

// New creates a Builder. The post processor shares the builder's logger,
// recorder and output writer.
func New(cfg *config.Config, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, ferrors.ConfigError("config required").Build()
	}
	b := &Builder{
		cfg:      cfg,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		stdout:   io.Discard,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	popts := []post.Option{
		post.WithLogger(b.logger),
		post.WithRecorder(b.recorder),
		post.WithStdout(b.stdout),
	}
	if b.code != nil {
		popts = append(popts, post.WithCodeFormatter(b.code))
	}
	p, err := post.New(cfg, popts...)
	if err != nil {
		return nil, err
	}
	b.processor = p
	return b, nil
}

// BuildAll renders every post and rewrites the index. The first failing post
// aborts the build: pages written before it remain and the index is left as it was.
func (b *Builder) BuildAll(ctx context.Context) (*Report, error) {
	report := newReport(b.newID(), b.cfg.Snapshot(), time.Now())
	ctx = observability.WithBuildID(ctx, report.BuildID)

	_, _ = fmt.Fprint(b.stdout, "🔨 Building posts...\n\n")
	b.logger.InfoContext(ctx, "Build started", slog.String("root", b.cfg.Root))

	err := b.run(ctx, report)
	b.finish(ctx, report, err)
	if err != nil {
		return report, err
	}

	_, _ = fmt.Fprintf(b.stdout, "\n✓ Updated: %s\n", report.IndexPath)
	_, _ = fmt.Fprintf(b.stdout, "\n✨ Build complete! Generated %d posts.\n", report.Total())
	return report, nil
}

func (b *Builder) run(ctx context.Context, report *Report) error {
	var records []index.Record

	for _, lang := range i18n.All {
		files, err := b.discover(ctx, lang)
		if err != nil {
			return err
		}

		stageStart := time.Now()
		stageCtx := observability.WithStage(ctx, StageRender)
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				b.recorder.IncStageResult(StageRender, metrics.ResultCanceled)
				return ferrors.BuildError("build canceled").WithCause(err).Build()
			}
			res, err := b.processor.ProcessFile(stageCtx, path, lang)
			if err != nil {
				b.recorder.IncStageResult(StageRender, metrics.ResultFatal)
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return ferrors.BuildError("build canceled").WithCause(err).Build()
				}
				return err
			}
			report.Results = append(report.Results, res)
			report.PostsByLang[lang]++
			records = append(records, res.Record)
		}
		b.recorder.ObserveStageDuration(StageRender, time.Since(stageStart))
		b.recorder.IncStageResult(StageRender, metrics.ResultSuccess)
		b.logger.InfoContext(stageCtx, "Rendered posts",
			logfields.Lang(lang.String()), logfields.Posts(report.PostsByLang[lang]), logfields.Elapsed(stageStart))
	}

	if err := b.writeIndex(ctx, report, records); err != nil {
		return err
	}
	return b.emitScripts(ctx, report)
}

func (b *Builder) discover(ctx context.Context, lang i18n.Lang) ([]string, error) {
	stageStart := time.Now()
	dir := b.cfg.SourceDir(lang)

	files, err := Discover(dir)
	b.recorder.ObserveStageDuration(StageDiscover, time.Since(stageStart))
	if err != nil {
		b.recorder.IncStageResult(StageDiscover, metrics.ResultFatal)
		return nil, ferrors.FileSystemError("list post sources").WithCause(err).
			WithContext("path", dir).
			WithContext("lang", lang.String()).Build()
	}
	b.recorder.IncStageResult(StageDiscover, metrics.ResultSuccess)
	b.logger.DebugContext(observability.WithStage(ctx, StageDiscover), "Discovered post sources",
		logfields.Lang(lang.String()), logfields.Path(dir), logfields.Posts(len(files)))
	return files, nil
}

func (b *Builder) writeIndex(ctx context.Context, report *Report, records []index.Record) error {
	stageStart := time.Now()
	ctx = observability.WithStage(ctx, StageIndex)

	if err := index.CheckUnique(records); err != nil {
		b.recorder.IncStageResult(StageIndex, metrics.ResultFatal)
		var dup *index.DuplicateURLError
		url := ""
		if errors.As(err, &dup) {
			url = dup.URL
		}
		return ferrors.ValidationError("duplicate post url").WithCause(err).
			WithContext("url", url).Build()
	}

	index.Sort(records)
	report.IndexPath = b.cfg.IndexPath()
	if err := index.Write(report.IndexPath, records); err != nil {
		b.recorder.IncStageResult(StageIndex, metrics.ResultFatal)
		return ferrors.FileSystemError("write post index").WithCause(err).
			WithContext("path", report.IndexPath).Build()
	}

	b.recorder.SetIndexedPosts(len(records))
	b.recorder.ObserveStageDuration(StageIndex, time.Since(stageStart))
	b.recorder.IncStageResult(StageIndex, metrics.ResultSuccess)
	b.logger.InfoContext(ctx, "Wrote post index",
		logfields.Output(report.IndexPath), logfields.Posts(len(records)), logfields.Elapsed(stageStart))
	return nil
}

func (b *Builder) emitScripts(ctx context.Context, report *Report) error {
	if !b.cfg.Assets.EmitScripts {
		return nil
	}
	stageStart := time.Now()

	written, err := assets.WriteScripts(b.cfg.ScriptsDir())
	report.Scripts = written
	b.recorder.ObserveStageDuration(StageAssets, time.Since(stageStart))
	if err != nil {
		b.recorder.IncStageResult(StageAssets, metrics.ResultFatal)
		return ferrors.FileSystemError("write client scripts").WithCause(err).
			WithContext("path", b.cfg.ScriptsDir()).Build()
	}
	b.recorder.IncStageResult(StageAssets, metrics.ResultSuccess)
	b.logger.DebugContext(observability.WithStage(ctx, StageAssets), "Wrote client scripts",
		logfields.Output(b.cfg.ScriptsDir()), slog.Int("scripts", len(written)))
	return nil
}

func (b *Builder) finish(ctx context.Context, report *Report, err error) {
	switch {
	case err == nil:
		report.finish(StatusSuccess)
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		b.logger.InfoContext(ctx, "Build complete",
			logfields.Posts(report.Total()), slog.Int("warnings", report.Warnings()),
			logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		report.finish(StatusCanceled)
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		b.logger.WarnContext(ctx, "Build canceled", logfields.Posts(report.Total()))
	default:
		report.finish(StatusFailed)
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		b.logger.ErrorContext(ctx, "Build failed", logfields.Error(err))
	}
	b.recorder.ObserveBuildDuration(report.Duration)

	if path := b.cfg.MetricsTextfile(); path != "" && b.gatherer != nil {
		if werr := metrics.WriteTextfile(path, b.gatherer); werr != nil {
			b.logger.WarnContext(ctx, "Could not export metrics", logfields.Path(path), logfields.Error(werr))
		}
	}
}
