// Package site renders the page chrome shared by every post: the document head
// and navigation, the post header, and the footer. The three fragments written in
// order around a rendered Markdown body form one complete HTML document.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"git.home.luguber.info/inful/blogbuilder/internal/clientstate"
	"git.home.luguber.info/inful/blogbuilder/internal/i18n"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Info identifies the site owner in titles, the footer and social links.
type Info struct {
	Author        string
	GitHub        string
	LinkedIn      string
	CopyrightYear int
	// BaseURL is prepended to page paths for the canonical link; empty emits a
	// site-relative canonical URL.
	BaseURL string
}

// DefaultInfo returns the blog's own identity.
func DefaultInfo() Info {
	return Info{
		Author:        "Steffany Bahamon",
		GitHub:        "https://github.com/sbahamon",
		LinkedIn:      "https://linkedin.com/in/sbahamon",
		CopyrightYear: 2025,
	}
}

// HeaderData is the per-page input of RenderHeader.
type HeaderData struct {
	Title        string
	Description  string
	CanonicalURL string
	AlternateURL string
	Lang         i18n.Lang
}

// Engine holds the parsed page templates.
type Engine struct {
	info       Info
	header     *template.Template
	postHeader *template.Template
	footer     *template.Template
}

// New parses the embedded templates.
func New(info Info) (*Engine, error) {
	e := &Engine{info: info}
	for name, dst := range map[string]**template.Template{
		"header.html.tmpl":      &e.header,
		"post_header.html.tmpl": &e.postHeader,
		"footer.html.tmpl":      &e.footer,
	} {
		tpl, err := template.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		*dst = tpl
	}
	return e, nil
}

// Info returns the site identity the engine renders with.
func (e *Engine) Info() Info { return e.info }

type headerView struct {
	HeaderData
	Site       Info
	Labels     i18n.Labels
	Prefix     string
	ThemeLabel string
}

// RenderHeader writes the doctype, head and site navigation and opens the
// article element.
func (e *Engine) RenderHeader(w io.Writer, d HeaderData) error {
	view := headerView{
		HeaderData: d,
		Site:       e.info,
		Labels:     d.Lang.Labels(),
		Prefix:     d.Lang.Prefix(),
		// Pages are served light; theme.js swaps the label once it applies a stored theme.
		ThemeLabel: clientstate.ThemeLight.ToggleLabel(d.Lang),
	}
	if view.CanonicalURL != "" {
		view.CanonicalURL = e.info.BaseURL + view.CanonicalURL
	}
	if err := e.header.Execute(w, view); err != nil {
		return fmt.Errorf("render header: %w", err)
	}
	return nil
}

type postHeaderView struct {
	Title       string
	Date        string
	DisplayDate string
	ReadingTime string
	Tags        []string
}

// RenderPostHeader writes the title, localized date, reading time and tag badges.
func (e *Engine) RenderPostHeader(w io.Writer, title, date, readingTime string, tags []string, lang i18n.Lang) error {
	view := postHeaderView{
		Title:       title,
		Date:        date,
		DisplayDate: i18n.FormatDate(date, lang),
		ReadingTime: readingTime,
		Tags:        tags,
	}
	if err := e.postHeader.Execute(w, view); err != nil {
		return fmt.Errorf("render post header: %w", err)
	}
	return nil
}

type footerView struct {
	Site        Info
	Labels      i18n.Labels
	PrevURL     string
	NextURL     string
	AllPostsURL string
}

// RenderFooter writes the post navigation, closes the article and appends the site
// footer and scripts. A missing next post links to the language's post listing.
func (e *Engine) RenderFooter(w io.Writer, prevURL, nextURL string, lang i18n.Lang) error {
	view := footerView{
		Site:        e.info,
		Labels:      lang.Labels(),
		PrevURL:     prevURL,
		NextURL:     nextURL,
		AllPostsURL: i18n.PostIndexURL(lang),
	}
	if err := e.footer.Execute(w, view); err != nil {
		return fmt.Errorf("render footer: %w", err)
	}
	return nil
}
