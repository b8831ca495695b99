package clientstate

import "git.home.luguber.info/inful/blogbuilder/internal/i18n"

// LanguageState is the language handling of one page view at path.
type LanguageState struct {
	storage Storage
	path    string
}

// NewLanguageState binds the language rules to the page at path (a URL path).
func NewLanguageState(storage Storage, path string) *LanguageState {
	return &LanguageState{storage: storage, path: path}
}

// Current is the language of the page, derived from its path.
func (s *LanguageState) Current() i18n.Lang {
	return i18n.LangFromPath(s.path)
}

// Target is the language the toggle switches to.
func (s *LanguageState) Target() i18n.Lang {
	return s.Current().Other()
}

// Saved returns the persisted language preference, if any.
func (s *LanguageState) Saved() (i18n.Lang, bool) {
	v, ok := s.storage.Get(LanguageKey)
	if !ok {
		return "", false
	}
	lang, err := i18n.Parse(v)
	if err != nil {
		return "", false
	}
	return lang, true
}

// Init records the page language as the current preference.
func (s *LanguageState) Init() {
	s.storage.Set(LanguageKey, s.Current().String())
}

// AlternateURL is the address of the same page in the other language, keeping
// the fragment.
func (s *LanguageState) AlternateURL(hash string) string {
	return i18n.AlternatePath(s.path) + hash
}

// Toggle persists the target language and returns where the toggle navigates.
func (s *LanguageState) Toggle(hash string) (i18n.Lang, string) {
	target := s.Target()
	s.storage.Set(LanguageKey, target.String())
	return target, s.AlternateURL(hash)
}
