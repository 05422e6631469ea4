// Package i18n holds the message catalog for user-facing text. Messages are
// keyed by their English text; English needs no entries.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the languages with a translation, English first.
var Supported = []language.Tag{language.English, language.Spanish}

var (
	matcher = language.NewMatcher(Supported)
	cat     = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range spanish {
		if err := b.SetString(language.Spanish, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}

// Match resolves a language preference such as "es", "es-CO" or an
// Accept-Language header value to a supported tag. Unknown input yields English.
func Match(pref string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// NewPrinter returns a printer for the best supported match of pref.
func NewPrinter(pref string) *message.Printer {
	return message.NewPrinter(Match(pref), message.Catalog(cat))
}

// English returns a printer that emits the catalog keys unchanged.
func English() *message.Printer {
	return message.NewPrinter(language.English, message.Catalog(cat))
}
