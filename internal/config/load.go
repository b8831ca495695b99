package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// Environment variables recognized by Load.
const (
	EnvRoot            = "BLOGBUILDER_ROOT"
	EnvMarkdownDir     = "BLOGBUILDER_MARKDOWN_DIR"
	EnvDataDir         = "BLOGBUILDER_DATA_DIR"
	EnvLogLevel        = "BLOGBUILDER_LOG_LEVEL"
	EnvLogFormat       = "BLOGBUILDER_LOG_FORMAT"
	EnvMetricsTextfile = "BLOGBUILDER_METRICS_TEXTFILE"
)

// LoadOptions selects the site root and an explicit config file.
type LoadOptions struct {
	// Root defaults to $BLOGBUILDER_ROOT, then the working directory.
	Root string
	// ConfigPath must exist when set. When empty, {root}/blogbuilder.yaml is used if present.
	ConfigPath string
}

// Load resolves the configuration: defaults, then the YAML file, then environment
// overrides. The result is normalized and validated.
func Load(opts LoadOptions) (*Config, error) {
	root := opts.Root
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "resolve site root").
			WithContext("root", root).Build()
	}

	if err := loadEnvFiles(absRoot); err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.Root = absRoot

	path, explicit := opts.ConfigPath, opts.ConfigPath != ""
	if !explicit {
		path = filepath.Join(absRoot, DefaultFileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(absRoot, path)
	}
	if err := decodeFile(cfg, path, explicit); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Normalize(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles reads .env.local then .env from the root. Variables already in the
// process environment win, and .env.local wins over .env.
func loadEnvFiles(root string) error {
	for _, name := range []string{".env.local", ".env"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "load env file").
				WithContext("path", p).Build()
		}
	}
	return nil
}

func decodeFile(cfg *Config, path string, required bool) error {
	// #nosec G304 -- path is the operator-selected configuration file.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return ferrors.WrapError(err, ferrors.CategoryConfig, "read config file").
			WithContext("path", path).Build()
	}

	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "parse config file").
			WithContext("path", path).Build()
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvMarkdownDir); v != "" {
		cfg.Paths.MarkdownDir = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Paths.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = LogFormat(v)
	}
	if v := os.Getenv(EnvMetricsTextfile); v != "" {
		cfg.Metrics.Textfile = v
	}
}

// Normalize canonicalizes enum fields. Unknown values are config errors.
func Normalize(cfg *Config) error {
	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid logging.level").Build()
	}
	cfg.Logging.Level = level

	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid logging.format").Build()
	}
	cfg.Logging.Format = format

	mode, err := codeHighlightNormalizer.NormalizeWithError(string(cfg.Markdown.CodeHighlight))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid markdown.code_highlight").Build()
	}
	cfg.Markdown.CodeHighlight = mode

	if cfg.Markdown.ChromaStyle == "" {
		cfg.Markdown.ChromaStyle = "github"
	}
	return nil
}

// Describe renders the effective configuration as YAML.
func (c *Config) Describe() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(out), nil
}
