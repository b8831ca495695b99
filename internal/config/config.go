// Package config holds blogbuilder's configuration: site layout, page identity,
// rendering switches and the ambient logging/metrics settings.
//
// Zero configuration reproduces the blog's own layout. An optional YAML file,
// .env files and BLOGBUILDER_* environment variables adjust it.
package config

import (
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/i18n"
)

// DefaultFileName is looked up in the site root when no config path is given.
const DefaultFileName = "blogbuilder.yaml"

// IndexFileName is the name of the post index inside the data directory.
const IndexFileName = "posts.json"

// Config represents the application configuration.
type Config struct {
	// Root is the site root every relative path resolves against. Set by Load.
	Root string `yaml:"-"`

	Paths    PathsConfig    `yaml:"paths"`
	Site     SiteConfig     `yaml:"site"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Build    BuildConfig    `yaml:"build"`
	Assets   AssetsConfig   `yaml:"assets"`
	Watch    WatchConfig    `yaml:"watch"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PathsConfig locates the source tree and the generated outputs.
type PathsConfig struct {
	MarkdownDir string `yaml:"markdown_dir" validate:"required"`
	PostsDir    string `yaml:"posts_dir" validate:"required"`
	ESPostsDir  string `yaml:"es_posts_dir" validate:"required"`
	DataDir     string `yaml:"data_dir" validate:"required"`
	ScriptsDir  string `yaml:"scripts_dir" validate:"required"`
}

// SiteConfig is the identity rendered into every page.
type SiteConfig struct {
	Author        string `yaml:"author" validate:"required"`
	GitHub        string `yaml:"github" validate:"omitempty,url"`
	LinkedIn      string `yaml:"linkedin" validate:"omitempty,url"`
	CopyrightYear int    `yaml:"copyright_year" validate:"gte=0"`
	BaseURL       string `yaml:"base_url" validate:"omitempty,url"`
}

// CodeHighlight selects where code blocks are colorized.
type CodeHighlight string

const (
	// CodeHighlightClient leaves colorization to highlight.js in the browser.
	CodeHighlightClient CodeHighlight = "client"
	// CodeHighlightServer colorizes with chroma at build time.
	CodeHighlightServer CodeHighlight = "server"
)

// MarkdownConfig controls the Markdown renderer.
type MarkdownConfig struct {
	CodeHighlight CodeHighlight `yaml:"code_highlight" validate:"oneof=client server"`
	ChromaStyle   string        `yaml:"chroma_style"`
}

// BuildConfig controls per-post processing.
type BuildConfig struct {
	CheckHTML          bool   `yaml:"check_html"`
	DefaultReadingTime string `yaml:"default_reading_time" validate:"required"`
}

// AssetsConfig controls the embedded client scripts.
type AssetsConfig struct {
	EmitScripts bool `yaml:"emit_scripts"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// MetricsConfig controls the Prometheus textfile export. An empty Textfile disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level" validate:"oneof=debug info warn error"`
	Format LogFormat `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration that reproduces the blog's original layout.
func Default() *Config {
	return &Config{
		Root: ".",
		Paths: PathsConfig{
			MarkdownDir: "posts-markdown",
			PostsDir:    "posts",
			ESPostsDir:  filepath.Join("es", "posts"),
			DataDir:     "data",
			ScriptsDir:  "js",
		},
		Site: SiteConfig{
			Author:        "Steffany Bahamon",
			GitHub:        "https://github.com/sbahamon",
			LinkedIn:      "https://linkedin.com/in/sbahamon",
			CopyrightYear: 2025,
		},
		Markdown: MarkdownConfig{
			CodeHighlight: CodeHighlightClient,
			ChromaStyle:   "github",
		},
		Build: BuildConfig{
			CheckHTML:          true,
			DefaultReadingTime: "5 min read",
		},
		Assets:  AssetsConfig{EmitScripts: true},
		Watch:   WatchConfig{Debounce: 300 * time.Millisecond},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// SourceDir is the Markdown directory of one language.
func (c *Config) SourceDir(lang i18n.Lang) string {
	return filepath.Join(c.resolve(c.Paths.MarkdownDir), lang.String())
}

// MarkdownDir is the root of the Markdown source tree.
func (c *Config) MarkdownDir() string {
	return c.resolve(c.Paths.MarkdownDir)
}

// OutputDir is the directory rendered pages of lang are written to.
func (c *Config) OutputDir(lang i18n.Lang) string {
	if lang == i18n.Spanish {
		return c.resolve(c.Paths.ESPostsDir)
	}
	return c.resolve(c.Paths.PostsDir)
}

// IndexPath is the location of posts.json.
func (c *Config) IndexPath() string {
	return filepath.Join(c.resolve(c.Paths.DataDir), IndexFileName)
}

// ScriptsDir is where the client scripts are emitted.
func (c *Config) ScriptsDir() string {
	return c.resolve(c.Paths.ScriptsDir)
}

// MetricsTextfile is the resolved metrics export path, empty when disabled.
func (c *Config) MetricsTextfile() string {
	if c.Metrics.Textfile == "" {
		return ""
	}
	return c.resolve(c.Metrics.Textfile)
}
