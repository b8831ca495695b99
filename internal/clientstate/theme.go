package clientstate

import "git.home.luguber.info/inful/blogbuilder/internal/i18n"

// Theme is the page color scheme.
type Theme string

const (
	// ThemeLight is the "Miami Summer" scheme and the default.
	ThemeLight Theme = "light"
	// ThemeDark is the "Chicago Winter" scheme.
	ThemeDark Theme = "dark"
)

func parseTheme(v string) Theme {
	if v == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// Other returns the theme a toggle switches to.
func (t Theme) Other() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ToggleLabel is the text of the theme button while t is active: it names the
// theme the button switches to.
func (t Theme) ToggleLabel(lang i18n.Lang) string {
	labels := lang.Labels()
	if t == ThemeDark {
		return "☀️ " + labels.ThemeSummer
	}
	return "❄️ " + labels.ThemeWinter
}

// ThemeState tracks the active theme of one page view.
type ThemeState struct {
	storage Storage
	current Theme
}

// NewThemeState resolves the initial theme: the stored preference, else the system
// preference, else light.
func NewThemeState(storage Storage, prefersDark bool) *ThemeState {
	s := &ThemeState{storage: storage, current: ThemeLight}
	if saved, ok := storage.Get(ThemeKey); ok && saved != "" {
		s.current = parseTheme(saved)
	} else if prefersDark {
		s.current = ThemeDark
	}
	return s
}

// Current is the theme applied to the page.
func (s *ThemeState) Current() Theme { return s.current }

// Toggle switches to the other theme and persists the choice.
func (s *ThemeState) Toggle() Theme {
	s.current = s.current.Other()
	s.storage.Set(ThemeKey, string(s.current))
	return s.current
}

// SystemPreferenceChanged follows the operating system scheme unless the user has
// picked a theme explicitly.
func (s *ThemeState) SystemPreferenceChanged(prefersDark bool) Theme {
	if saved, ok := s.storage.Get(ThemeKey); ok && saved != "" {
		return s.current
	}
	if prefersDark {
		s.current = ThemeDark
	} else {
		s.current = ThemeLight
	}
	return s.current
}
