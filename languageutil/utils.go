package languageutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers are stateful, so each call builds its own.
func titleCaser() cases.Caser { return cases.Title(language.Italian) }

func lowerCaser() cases.Caser { return cases.Lower(language.Italian) }

// NormalizeLabel collapses whitespace and lower-cases a user supplied label
// such as a product category.
func NormalizeLabel(value string) string {
	return lowerCaser().String(strings.Join(strings.Fields(value), " "))
}

// DisplayBrand collapses whitespace and title-cases a brand for prompts.
// Brands that already mix cases (e.g. "MCM", "McQueen") are kept as typed.
func DisplayBrand(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return ""
	}
	if value != strings.ToLower(value) {
		return value
	}
	return titleCaser().String(value)
}
