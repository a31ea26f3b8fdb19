package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name builds the lookup key for a player name: case-folded with collapsed
// whitespace, so "Big Lebowski" and " big  LEBOWSKI " are the same player.
// Casers are stateful, so each call gets its own.
func Name(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// Display prettifies a raw name for presentation.
func Display(name string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(name), " "))
}
