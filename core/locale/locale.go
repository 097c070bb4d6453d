// ABOUTME: Locale supplies display labels, day names and month names
// ABOUTME: Spanish is the default; English is available for the CLI

package locale

import (
	"fmt"
	"strings"
	"time"

	"content-planner-api/core/domain"
)

// Locale holds the strings views render. Lookups fall back to the raw value.
type Locale struct {
	Name      string
	statuses  map[domain.Status]string
	platforms map[domain.Platform]string
	types     map[string]string
	weekdays  [7]string // Sunday first
	months    [12]string
}

var spanish = Locale{
	Name: "es",
	statuses: map[domain.Status]string{
		domain.StatusIdea:      "Idea",
		domain.StatusScripting: "Guion",
		domain.StatusRecording: "Grabación",
		domain.StatusEditing:   "Edición",
		domain.StatusScheduled: "Programado",
		domain.StatusPublished: "Publicado",
	},
	types: map[string]string{
		"Video":   "Video",
		"Post":    "Post",
		"Thread":  "Hilo",
		"Article": "Artículo",
	},
	weekdays: [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	months: [12]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	},
}

var english = Locale{
	Name:     "en",
	weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// Spanish returns the default locale
func Spanish() Locale { return spanish }

// English returns the English locale
func English() Locale { return english }

// ByName resolves "es" or "en"; an empty name means Spanish
func ByName(name string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "es":
		return spanish, nil
	case "en":
		return english, nil
	default:
		return Locale{}, fmt.Errorf("unsupported locale %q", name)
	}
}

// Status returns the display label of s
func (l Locale) Status(s domain.Status) string {
	if label, ok := l.statuses[s]; ok {
		return label
	}
	return string(s)
}

// Platform returns the display label of p
func (l Locale) Platform(p domain.Platform) string {
	if label, ok := l.platforms[p]; ok {
		return label
	}
	return string(p)
}

// Type returns the display label of a content type
func (l Locale) Type(t string) string {
	if label, ok := l.types[t]; ok {
		return label
	}
	return t
}

// Weekdays returns abbreviated day names starting on Sunday
func (l Locale) Weekdays() []string {
	return append([]string(nil), l.weekdays[:]...)
}

// Month returns the name of m
func (l Locale) Month(m time.Month) string {
	return l.months[m-1]
}

// MonthYear renders t as "<month> <year>"
func (l Locale) MonthYear(t time.Time) string {
	return l.Month(t.Month()) + " " + fmt.Sprint(t.Year())
}

// Clock supplies the current time
type Clock func() time.Time

// SystemClock is the wall clock
func SystemClock() time.Time { return time.Now() }
