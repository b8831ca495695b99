package i18n

// Labels is one column of the bilingual lookup table used by the page templates.
type Labels struct {
	SkipToContent  string
	ToggleMenu     string
	About          string
	Now            string
	Posts          string
	Projects       string
	ToggleTheme    string
	ThemeWinter    string
	ThemeSummer    string
	SwitchLanguage string
	ConnectWithMe  string
	Or             string
	PreviousPost   string
	NextPost       string
	AllPosts       string
	Tagline        string
	Copied         string
	Copy           string
}

var englishLabels = Labels{
	SkipToContent:  "Skip to content",
	ToggleMenu:     "Toggle menu",
	About:          "About",
	Now:            "Now",
	Posts:          "Posts",
	Projects:       "Projects",
	ToggleTheme:    "Toggle theme",
	ThemeWinter:    "Chicago Winter",
	ThemeSummer:    "Miami Summer",
	SwitchLanguage: "Cambiar a español",
	ConnectWithMe:  "Connect with me on",
	Or:             "or",
	PreviousPost:   "Previous Post",
	NextPost:       "Next Post",
	AllPosts:       "All Posts",
	Tagline:        "Connecting Lake Michigan to the Atlantic Ocean.",
	Copied:         "Copied!",
	Copy:           "Copy",
}

var spanishLabels = Labels{
	SkipToContent:  "Saltar al contenido",
	ToggleMenu:     "Alternar menú",
	About:          "Sobre Mí",
	Now:            "Ahora",
	Posts:          "Publicaciones",
	Projects:       "Proyectos",
	ToggleTheme:    "Cambiar tema",
	ThemeWinter:    "Invierno de Chicago",
	ThemeSummer:    "Verano de Miami",
	SwitchLanguage: "Switch to English",
	ConnectWithMe:  "Conéctate conmigo en",
	Or:             "o",
	PreviousPost:   "Anterior",
	NextPost:       "Siguiente",
	AllPosts:       "Todas las Publicaciones",
	Tagline:        "Conectando el Lago Michigan con el Océano Atlántico.",
	Copied:         "Copiado!",
	Copy:           "Copiar",
}
