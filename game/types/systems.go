package types

import (
	"fmt"
	"strings"
)

// Systems selects which collectibles take part in a session.
type Systems struct {
	Food       bool
	Boosters   bool
	WordPuzzle bool
}

func (s Systems) Validate() error {
	if s.Food && s.WordPuzzle {
		return ErrConflictingSystems
	}
	return nil
}

func (s Systems) String() string {
	var parts []string
	if s.Food {
		parts = append(parts, "food")
	}
	if s.Boosters {
		parts = append(parts, "boosters")
	}
	if s.WordPuzzle {
		parts = append(parts, "words")
	}
	if len(parts) == 0 {
		return "plain"
	}
	return strings.Join(parts, "+")
}

// Variant presets, one per historical version of the game.
var variants = map[string]Systems{
	"plain":    {},
	"food":     {Food: true},
	"boosters": {Food: true, Boosters: true},
	"words":    {WordPuzzle: true, Boosters: true},
}

// ParseVariant resolves a preset name.
func ParseVariant(name string) (Systems, error) {
	s, ok := variants[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Systems{}, fmt.Errorf("unknown variant %q (want plain, food, boosters or words)", name)
	}
	return s, nil
}
