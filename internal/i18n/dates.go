package i18n

import (
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var monthNames = map[Lang][12]string{
	English: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	Spanish: {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

// ParseDate reads an ISO date (or date-time) from front matter.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders raw in the long form of the language:
// "March 15, 2025" (en-US) or "15 de marzo de 2025" (es-ES).
//
// The calendar date is taken as written, without time zone conversion.
// Unparseable input is returned unchanged.
func FormatDate(raw string, lang Lang) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	month := monthNames[lang][t.Month()-1]
	day := strconv.Itoa(t.Day())
	year := strconv.Itoa(t.Year())
	if lang == Spanish {
		return day + " de " + month + " de " + year
	}
	return month + " " + day + ", " + year
}
