package util

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortNames orders display names the way a person would read them, so
// "Évora" sorts next to "Evora" rather than after "Zurich".
func SortNames(names []string) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(names, func(i, j int) bool {
		return c.CompareString(names[i], names[j]) < 0
	})
}
