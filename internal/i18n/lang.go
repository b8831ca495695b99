// Package i18n holds the fixed English/Spanish vocabulary of the site: the language
// enum, navigation labels, localized dates and the URL prefixing rules that pair a
// page with its translation.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lang identifies one of the two site languages.
type Lang string

const (
	English Lang = "en"
	Spanish Lang = "es"
)

// All lists the site languages in build order.
var All = []Lang{English, Spanish}

var upper = cases.Upper(language.Und)

// Parse reads a BCP 47 language tag ("es", "es-ES", "en-US") and maps it to a site language.
func Parse(raw string) (Lang, error) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", raw, err)
	}
	base, _ := tag.Base()
	switch Lang(base.String()) {
	case English:
		return English, nil
	case Spanish:
		return Spanish, nil
	default:
		return "", fmt.Errorf("unsupported language %q (expected en or es)", raw)
	}
}

func (l Lang) String() string { return string(l) }

// Other returns the translation counterpart language.
func (l Lang) Other() Lang {
	if l == Spanish {
		return English
	}
	return Spanish
}

// Prefix is the URL path prefix of the language: "/es" for Spanish, "" for English.
func (l Lang) Prefix() string {
	if l == Spanish {
		return "/es"
	}
	return ""
}

// Code renders the language as the short label used on the language toggle ("EN", "ES").
func (l Lang) Code() string {
	return upper.String(string(l))
}

// Labels returns the navigation and footer vocabulary of the language.
func (l Lang) Labels() Labels {
	if l == Spanish {
		return spanishLabels
	}
	return englishLabels
}
