package entity

import (
	"snake-hess/game/types"
)

// Snake is an ordered run of cells, head first.
type Snake struct {
	body      []types.Point
	Direction types.Point
}

func NewSnake(center types.Point) *Snake {
	s := &Snake{}
	s.ResetTo(center)
	return s
}

// ResetTo truncates the snake to a single cell at center, moving right.
func (s *Snake) ResetTo(center types.Point) {
	s.body = make([]types.Point, types.InitialLength)
	for i := range s.body {
		s.body[i] = center
	}
	s.Direction = types.Right
}

// Move shifts every segment onto its predecessor, tail first, then advances the head.
func (s *Snake) Move() {
	for i := len(s.body) - 1; i > 0; i-- {
		s.body[i] = s.body[i-1]
	}
	s.body[0] = s.body[0].Add(s.Direction)
}

// Grow appends n segments on the tail cell.
func (s *Snake) Grow(n int) {
	if n <= 0 {
		return
	}
	tail := s.body[len(s.body)-1]
	for i := 0; i < n; i++ {
		s.body = append(s.body, tail)
	}
}

// Shrink drops up to n tail segments, never below one.
func (s *Snake) Shrink(n int) {
	keep := len(s.body) - n
	if keep < 1 {
		keep = 1
	}
	if keep >= len(s.body) {
		return
	}
	body := make([]types.Point, keep)
	copy(body, s.body)
	s.body = body
}

// SetDirection accepts any unit vector, a reversal into the neck included.
func (s *Snake) SetDirection(dir types.Point) {
	if !dir.IsDirection() {
		return
	}
	s.Direction = dir
}

func (s *Snake) Head() types.Point {
	return s.body[0]
}

func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []types.Point {
	body := make([]types.Point, len(s.body))
	copy(body, s.body)
	return body
}

// Segment returns the i-th cell, 0 being the head.
func (s *Snake) Segment(i int) types.Point {
	return s.body[i]
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.body {
		if part == p {
			return true
		}
	}
	return false
}
