package entity

import "snake-hess/game/types"

type Food struct {
	Position types.Point
}

// BoosterType selects a booster's effect.
type BoosterType int

const (
	BoosterSpeed BoosterType = iota
	BoosterShrink
	BoosterExtraLife
)

// BoosterTypes is every type a fresh session may start with.
var BoosterTypes = []BoosterType{BoosterSpeed, BoosterShrink, BoosterExtraLife}

// RespawnTypes is what boosters come back as after one was eaten.
var RespawnTypes = []BoosterType{BoosterSpeed, BoosterShrink}

func (t BoosterType) String() string {
	switch t {
	case BoosterSpeed:
		return "speed"
	case BoosterShrink:
		return "shrink"
	case BoosterExtraLife:
		return "extra life"
	default:
		return "unknown"
	}
}

type Booster struct {
	Position types.Point
	Active   bool
	Type     BoosterType
}

// Letter is one of the two on-grid choices of the word puzzle.
type Letter struct {
	Position types.Point
	Char     rune
}
