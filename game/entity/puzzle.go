package entity

// Hidden marks an unrevealed position of the mask.
const Hidden = '_'

// WordPuzzle holds the target word and what has been revealed of it.
type WordPuzzle struct {
	Word []rune
	Mask []rune
}

func NewWordPuzzle(word string) *WordPuzzle {
	p := &WordPuzzle{Word: []rune(word)}
	p.Mask = make([]rune, len(p.Word))
	for i := range p.Mask {
		p.Mask[i] = Hidden
	}
	return p
}

// Reveal uncovers every hidden position holding c and returns how many it uncovered.
func (p *WordPuzzle) Reveal(c rune) int {
	n := 0
	for i, w := range p.Word {
		if w == c && p.Mask[i] == Hidden {
			p.Mask[i] = w
			n++
		}
	}
	return n
}

// HiddenIndexes returns the positions still unrevealed.
func (p *WordPuzzle) HiddenIndexes() []int {
	var idx []int
	for i, m := range p.Mask {
		if m == Hidden {
			idx = append(idx, i)
		}
	}
	return idx
}

// Contains reports whether c appears anywhere in the word.
func (p *WordPuzzle) Contains(c rune) bool {
	for _, w := range p.Word {
		if w == c {
			return true
		}
	}
	return false
}

func (p *WordPuzzle) Revealed() int {
	return len(p.Word) - len(p.HiddenIndexes())
}

func (p *WordPuzzle) Solved() bool {
	return string(p.Mask) == string(p.Word)
}

func (p *WordPuzzle) String() string {
	return string(p.Mask)
}
