package manager

import (
	"strings"
	"unicode"

	"snake-hess/game/entity"
	"snake-hess/game/types"
)

// DefaultWords is the word list used when none is configured.
var DefaultWords = []string{"ccu", "snake", "raylib", "grid", "hess", "booster", "golang"}

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Guess is the outcome of eating a letter.
type Guess struct {
	Char     rune
	Revealed int  // positions uncovered, 0 for a decoy
	Solved   bool // the word is complete
}

// Correct reports whether the letter uncovered anything.
func (g Guess) Correct() bool {
	return g.Revealed > 0
}

// WordManager runs the word guessing variant: one target word and two
// letters on the grid, one of which belongs to the word.
type WordManager struct {
	grid    types.Grid
	rng     types.Rand
	words   []string
	puzzle  *entity.WordPuzzle
	letters []entity.Letter
}

// NewWordManager falls back to DefaultWords when words has no usable entry.
func NewWordManager(grid types.Grid, rng types.Rand, words []string) *WordManager {
	wm := &WordManager{
		grid:  grid,
		rng:   rng,
		words: NormalizeWords(words),
	}
	if len(wm.words) == 0 {
		wm.words = DefaultWords
	}
	wm.PickWord()
	return wm
}

// NormalizeWords lowercases the list and drops entries that are empty, contain
// non a-z letters, or leave no letter of the alphabet free for a decoy.
func NormalizeWords(words []string) []string {
	var out []string
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || !isAlpha(w) || distinct(w) >= len(alphabet) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isAlpha(w string) bool {
	for _, r := range w {
		if r > unicode.MaxASCII || !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func distinct(w string) int {
	seen := make(map[rune]bool)
	for _, r := range w {
		seen[r] = true
	}
	return len(seen)
}

// PickWord selects a new target uniformly, hides it entirely and offers fresh letters.
func (wm *WordManager) PickWord() {
	wm.puzzle = entity.NewWordPuzzle(wm.words[wm.rng.Intn(len(wm.words))])
	wm.OfferChoices()
}

// OfferChoices places one hidden letter of the word and one decoy, in random
// order, on random interior cells. A solved puzzle gets no letters.
func (wm *WordManager) OfferChoices() {
	wm.letters = wm.letters[:0]
	hidden := wm.puzzle.HiddenIndexes()
	if len(hidden) == 0 {
		return
	}
	correct := wm.puzzle.Word[hidden[wm.rng.Intn(len(hidden))]]

	var decoys []rune
	for _, r := range alphabet {
		if !wm.puzzle.Contains(r) {
			decoys = append(decoys, r)
		}
	}
	decoy := decoys[wm.rng.Intn(len(decoys))]

	pair := [2]rune{correct, decoy}
	if wm.rng.Intn(2) == 1 {
		pair[0], pair[1] = pair[1], pair[0]
	}
	for _, c := range pair {
		wm.letters = append(wm.letters, entity.Letter{
			Position: wm.grid.RandomInterior(wm.rng),
			Char:     c,
		})
	}
}

// Resolve applies an eaten letter to the puzzle and regenerates the choices.
// Life and growth effects are left to the caller.
func (wm *WordManager) Resolve(c rune) Guess {
	g := Guess{Char: c, Revealed: wm.puzzle.Reveal(c)}
	g.Solved = wm.puzzle.Solved()
	wm.OfferChoices()
	return g
}

func (wm *WordManager) Puzzle() *entity.WordPuzzle {
	return wm.puzzle
}

// Letters returns a copy of the letters on the grid.
func (wm *WordManager) Letters() []entity.Letter {
	letters := make([]entity.Letter, len(wm.letters))
	copy(letters, wm.letters)
	return letters
}

func (wm *WordManager) Words() []string {
	return wm.words
}
