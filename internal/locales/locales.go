// Package locales is the string-table service: given a namespaced key it
// returns a display string for a locale, falling back to English and then to
// the key itself when a translation is missing.
package locales

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed locales.json
var localesJSON []byte

const fallbackLocale = "en"

// Table holds the translation strings for every supported locale.
type Table struct {
	strings map[string]map[string]string
}

// Load parses the embedded locale tables.
func Load() (*Table, error) {
	var strings map[string]map[string]string
	if err := json.Unmarshal(localesJSON, &strings); err != nil {
		return nil, fmt.Errorf("parse locales: %w", err)
	}
	if _, ok := strings[fallbackLocale]; !ok {
		return nil, fmt.Errorf("locale table missing fallback locale %q", fallbackLocale)
	}
	return &Table{strings: strings}, nil
}

// Supported reports whether locale has a table of its own.
func (t *Table) Supported(locale string) bool {
	_, ok := t.strings[locale]
	return ok
}

// T resolves key in the given locale. A missing key falls back to English;
// a key missing there too is returned verbatim so callers never render an
// empty string.
func (t *Table) T(locale, key string) string {
	if table, ok := t.strings[locale]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := t.strings[fallbackLocale][key]; ok {
		return s
	}
	return key
}

// Translator binds T to one locale.
func (t *Table) Translator(locale string) func(string) string {
	return func(key string) string {
		return t.T(locale, key)
	}
}
