package manager

import (
	"snake-hess/game/entity"
	"snake-hess/game/types"
)

// FoodManager owns the single food item of a session.
type FoodManager struct {
	grid  types.Grid
	rng   types.Rand
	food  entity.Food
	eaten int
}

func NewFoodManager(grid types.Grid, rng types.Rand) *FoodManager {
	fm := &FoodManager{
		grid: grid,
		rng:  rng,
	}
	fm.Reset()
	return fm
}

// Reset places fresh food and zeroes the eaten counter.
func (fm *FoodManager) Reset() {
	fm.eaten = 0
	fm.GenerateFood()
}

// GenerateFood moves the food to a random interior cell.
// The snake body is not checked: food may land under it.
func (fm *FoodManager) GenerateFood() entity.Food {
	fm.food = entity.Food{Position: fm.grid.RandomInterior(fm.rng)}
	return fm.food
}

// Eat counts the food and respawns it, returning the new total.
func (fm *FoodManager) Eat() int {
	fm.eaten++
	fm.GenerateFood()
	return fm.eaten
}

func (fm *FoodManager) Food() entity.Food {
	return fm.food
}

func (fm *FoodManager) Eaten() int {
	return fm.eaten
}
