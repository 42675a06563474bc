package helpers

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
// A Caser keeps state, so each call gets its own.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// VariantTitle turns an image key such as "fixed_height_small" into
// "Fixed Height Small".
func VariantTitle(key string) string {
	return TitleCase(strings.Join(strings.Split(key, "_"), " "))
}
