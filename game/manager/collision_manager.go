package manager

import (
	"snake-hess/game/entity"
	"snake-hess/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Fatal reports a wall or self collision of the head.
func (cm *CollisionManager) Fatal(snake *entity.Snake) bool {
	return cm.HitsWall(snake) || cm.HitsSelf(snake)
}

// HitsWall checks whether the head left the interior
func (cm *CollisionManager) HitsWall(snake *entity.Snake) bool {
	head := snake.Head()
	return head.X < 1 || head.X >= cm.grid.Width-1 || head.Y < 1 || head.Y >= cm.grid.Height-1
}

// HitsSelf checks whether the head overlaps any other segment
func (cm *CollisionManager) HitsSelf(snake *entity.Snake) bool {
	head := snake.Head()
	for i := 1; i < snake.Len(); i++ {
		if snake.Segment(i) == head {
			return true
		}
	}
	return false
}

func (cm *CollisionManager) HitsFood(snake *entity.Snake, food entity.Food) bool {
	return snake.Head() == food.Position
}

// HitsBooster only fires for an active booster.
func (cm *CollisionManager) HitsBooster(snake *entity.Snake, booster entity.Booster) bool {
	return booster.Active && snake.Head() == booster.Position
}

// HitsLetter returns the index of the letter under the head, or -1.
func (cm *CollisionManager) HitsLetter(snake *entity.Snake, letters []entity.Letter) int {
	head := snake.Head()
	for i, l := range letters {
		if l.Position == head {
			return i
		}
	}
	return -1
}
