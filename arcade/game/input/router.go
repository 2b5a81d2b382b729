// Package input maps key identifiers to headings.
package input

import (
	"sort"

	"shadowsnake/arcade/game/grid"
)

// Key identifiers follow the browser KeyboardEvent.key names; letters are
// case-sensitive.
var bindings = map[string]grid.Heading{
	"ArrowUp":    grid.Up,
	"ArrowDown":  grid.Down,
	"ArrowLeft":  grid.Left,
	"ArrowRight": grid.Right,
	"w":          grid.Up,
	"s":          grid.Down,
	"a":          grid.Left,
	"d":          grid.Right,
}

// Route returns the heading bound to key. Unknown keys report false and must
// be ignored by the caller. Reversing onto the body is not filtered here.
func Route(key string) (grid.Heading, bool) {
	h, ok := bindings[key]
	return h, ok
}

// Keys returns every routed identifier in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
