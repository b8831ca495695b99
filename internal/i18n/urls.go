package i18n

import "strings"

// PostURL is the absolute site path of a post page: /posts/{slug}.html or /es/posts/{slug}.html.
func PostURL(slug string, lang Lang) string {
	return lang.Prefix() + "/posts/" + slug + ".html"
}

// PostIndexURL is the language's post listing page.
func PostIndexURL(lang Lang) string {
	return lang.Prefix() + "/posts/index.html"
}

// LangFromPath reports the language of a site path: "/es" and "/es/..." are Spanish.
func LangFromPath(path string) Lang {
	if path == "/es" || strings.HasPrefix(path, "/es/") {
		return Spanish
	}
	return English
}

// StripPrefix removes the language prefix from a site path.
func StripPrefix(path string) string {
	if LangFromPath(path) == Spanish {
		return strings.TrimPrefix(path, "/es")
	}
	return path
}

// AlternatePath maps a site path to the same page in the other language.
// Home pages map to the other language's index.html.
func AlternatePath(path string) string {
	if LangFromPath(path) == English {
		if path == "/" || path == "/index.html" || path == "" {
			return "/es/index.html"
		}
		return "/es" + path
	}
	stripped := StripPrefix(path)
	if stripped == "" || stripped == "/" {
		return "/index.html"
	}
	return stripped
}
