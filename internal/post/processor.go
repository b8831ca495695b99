// Package post turns one Markdown source file into one HTML page and the index
// record describing it.
package post

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/htmlcheck"
	"git.home.luguber.info/inful/blogbuilder/internal/i18n"
	"git.home.luguber.info/inful/blogbuilder/internal/index"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/output"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// Warning kinds reported to the metrics recorder.
const (
	WarningMissingField  = "missing_field"
	WarningHTMLStructure = "html_structure"
)

// Result describes one processed post.
type Result struct {
	Record      index.Record
	SourcePath  string
	OutputPath  string
	Slug        string
	Fingerprint string
	Warnings    []string
}

// Processor renders posts with a fixed configuration.
type Processor struct {
	cfg      *config.Config
	renderer *markdown.Renderer
	code     markdown.CodeFormatter
	site     *site.Engine
	logger   *slog.Logger
	recorder metrics.Recorder
	stdout   io.Writer
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Processor) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithStdout sets where progress lines are printed.
func WithStdout(w io.Writer) Option {
	return func(p *Processor) {
		if w != nil {
			p.stdout = w
		}
	}
}

// WithCodeFormatter overrides the code block strategy selected by configuration.
func WithCodeFormatter(f markdown.CodeFormatter) Option {
	return func(p *Processor) { p.code = f }
}

// New builds a processor for cfg.
func New(cfg *config.Config, opts ...Option) (*Processor, error) {
	engine, err := site.New(SiteInfo(cfg))
	if err != nil {
		return nil, ferrors.InternalError("load page templates").WithCause(err).Build()
	}

	p := &Processor{
		cfg:      cfg,
		renderer: markdown.NewRenderer(markdown.DefaultOptions()),
		code:     CodeFormatterFor(cfg),
		site:     engine,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		stdout:   io.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SiteInfo maps the site section of cfg onto the template identity.
func SiteInfo(cfg *config.Config) site.Info {
	return site.Info{
		Author:        cfg.Site.Author,
		GitHub:        cfg.Site.GitHub,
		LinkedIn:      cfg.Site.LinkedIn,
		CopyrightYear: cfg.Site.CopyrightYear,
		BaseURL:       strings.TrimSuffix(cfg.Site.BaseURL, "/"),
	}
}

// CodeFormatterFor selects the code block strategy configured in cfg.
func CodeFormatterFor(cfg *config.Config) markdown.CodeFormatter {
	if cfg.Markdown.CodeHighlight == config.CodeHighlightServer {
		return markdown.ChromaFormatter{Style: cfg.Markdown.ChromaStyle}
	}
	return markdown.EscapedFormatter{}
}

// Process renders sourcePath as a lang page and returns its index record.
func (p *Processor) Process(ctx context.Context, sourcePath string, lang i18n.Lang) (index.Record, error) {
	res, err := p.ProcessFile(ctx, sourcePath, lang)
	if err != nil {
		return index.Record{}, err
	}
	return res.Record, nil
}

// ProcessFile is Process with the full result.
func (p *Processor) ProcessFile(ctx context.Context, sourcePath string, lang i18n.Lang) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slug := strings.TrimSuffix(filepath.Base(sourcePath), ".md")
	log := p.logger.With(logfields.Path(sourcePath), logfields.Lang(lang.String()), logfields.Slug(slug))
	log.Debug("Processing post")
	_, _ = fmt.Fprintf(p.stdout, "Processing: %s (%s)\n", sourcePath, lang)

	// #nosec G304 -- sourcePath comes from the configured Markdown tree.
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, ferrors.FileSystemError("read post source").WithCause(err).
			WithContext("path", sourcePath).Build()
	}

	fields, body, err := frontmatter.Read(content)
	if err != nil {
		return nil, ferrors.ParseError("parse front matter").WithCause(err).
			WithContext("path", sourcePath).Build()
	}

	res := &Result{SourcePath: sourcePath, Slug: slug}
	meta := ParseMeta(fields, p.cfg.Build.DefaultReadingTime)
	for _, key := range meta.Missing {
		log.Warn("Post is missing a required front matter key", logfields.Field(key))
		p.recorder.IncPostWarnings(WarningMissingField)
		res.Warnings = append(res.Warnings, "missing "+key)
	}

	url := i18n.PostURL(slug, lang)
	page, err := p.renderPage(meta, body, url, i18n.PostURL(slug, lang.Other()), lang)
	if err != nil {
		return nil, ferrors.RenderError("render post").WithCause(err).
			WithContext("path", sourcePath).Build()
	}

	if p.cfg.Build.CheckHTML {
		for _, problem := range htmlcheck.CheckBytes(page) {
			log.Warn("Rendered page is not well-formed", slog.String("problem", problem.String()))
			p.recorder.IncPostWarnings(WarningHTMLStructure)
			res.Warnings = append(res.Warnings, problem.String())
		}
	}

	outDir := p.cfg.OutputDir(lang)
	res.OutputPath, err = output.WriteUnder(outDir, slug+".html", page)
	if err != nil {
		return nil, ferrors.FileSystemError("write post page").WithCause(err).
			WithContext("path", sourcePath).
			WithContext("output", filepath.Join(outDir, slug+".html")).Build()
	}
	_, _ = fmt.Fprintf(p.stdout, "✓ Generated: %s\n", res.OutputPath)
	log.Debug("Wrote post page", logfields.Output(res.OutputPath), logfields.URL(url))

	if fp, err := frontmatter.Fingerprint(fields, body); err == nil {
		res.Fingerprint = fp
	} else {
		log.Warn("Could not fingerprint post", logfields.Error(err))
	}

	p.recorder.IncPostsRendered(lang.String())
	res.Record = index.Record{
		Title:       meta.Title,
		URL:         url,
		Date:        meta.Date,
		Tags:        meta.Tags,
		Excerpt:     meta.Excerpt,
		ReadingTime: meta.ReadingTime,
		Lang:        lang,
	}
	return res, nil
}

func (p *Processor) renderPage(meta Meta, body []byte, url, alternateURL string, lang i18n.Lang) ([]byte, error) {
	content, err := p.renderer.Render(body, p.code)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.site.RenderHeader(&buf, site.HeaderData{
		Title:        meta.Title,
		Description:  meta.Excerpt,
		CanonicalURL: url,
		AlternateURL: alternateURL,
		Lang:         lang,
	}); err != nil {
		return nil, err
	}
	if err := p.site.RenderPostHeader(&buf, meta.Title, meta.Date, meta.ReadingTime, meta.Tags, lang); err != nil {
		return nil, err
	}
	buf.Write(content)
	if err := p.site.RenderFooter(&buf, meta.PrevPost, meta.NextPost, lang); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
