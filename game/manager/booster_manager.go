package manager

import (
	"time"

	"snake-hess/game/entity"
	"snake-hess/game/types"
)

// BoosterManager keeps at most one booster on the grid and respawns it
// BoosterRespawn after it was picked up.
type BoosterManager struct {
	grid     types.Grid
	rng      types.Rand
	booster  entity.Booster
	cooldown time.Duration
}

func NewBoosterManager(grid types.Grid, rng types.Rand) *BoosterManager {
	bm := &BoosterManager{
		grid: grid,
		rng:  rng,
	}
	bm.Reset()
	return bm
}

// Reset spawns a booster of any type and clears the cooldown.
func (bm *BoosterManager) Reset() {
	bm.cooldown = 0
	bm.Spawn(entity.BoosterTypes)
}

// Spawn activates a booster at a random interior cell with a type drawn from kinds.
func (bm *BoosterManager) Spawn(kinds []entity.BoosterType) entity.Booster {
	bm.booster = entity.Booster{
		Position: bm.grid.RandomInterior(bm.rng),
		Active:   true,
		Type:     kinds[bm.rng.Intn(len(kinds))],
	}
	return bm.booster
}

// Pickup deactivates the booster and restarts the cooldown.
func (bm *BoosterManager) Pickup() entity.BoosterType {
	bm.booster.Active = false
	bm.cooldown = 0
	return bm.booster.Type
}

// Tick advances the cooldown and reports whether a new booster appeared.
func (bm *BoosterManager) Tick(dt time.Duration) bool {
	bm.cooldown += dt
	if bm.booster.Active || bm.cooldown < types.BoosterRespawn {
		return false
	}
	bm.Spawn(entity.RespawnTypes)
	bm.cooldown = 0
	return true
}

func (bm *BoosterManager) Booster() entity.Booster {
	return bm.booster
}

func (bm *BoosterManager) Cooldown() time.Duration {
	return bm.cooldown
}
