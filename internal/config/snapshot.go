package config

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Snapshot computes a stable hash of the fields that affect generated output.
// Logging, metrics and watch settings are excluded.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }

	w("paths.markdown_dir", c.Paths.MarkdownDir)
	w("paths.posts_dir", c.Paths.PostsDir)
	w("paths.es_posts_dir", c.Paths.ESPostsDir)
	w("paths.data_dir", c.Paths.DataDir)
	w("paths.scripts_dir", c.Paths.ScriptsDir)
	w("site.author", c.Site.Author)
	w("site.github", c.Site.GitHub)
	w("site.linkedin", c.Site.LinkedIn)
	w("site.copyright_year", strconv.Itoa(c.Site.CopyrightYear))
	w("site.base_url", c.Site.BaseURL)
	w("markdown.code_highlight", string(c.Markdown.CodeHighlight))
	w("markdown.chroma_style", c.Markdown.ChromaStyle)
	w("build.default_reading_time", c.Build.DefaultReadingTime)
	w("assets.emit_scripts", strconv.FormatBool(c.Assets.EmitScripts))
	return hex.EncodeToString(h.Sum(nil))
}
