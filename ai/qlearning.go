package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"snake-hess/game"
	"snake-hess/game/types"
)

// State is what the agent sees of the board around the head.
type State struct {
	RelativeGoalDir [2]int  // sign of the goal offset from the head (x, y)
	GoalDistance    int     // Manhattan distance to the goal
	DangerDirs      [4]bool // fatal to move up, right, down, left
	Heading         Action
}

type Action int

const (
	Up Action = iota
	Right
	Down
	Left
)

func (a Action) Point() types.Point {
	return types.Directions[a]
}

func actionOf(p types.Point) Action {
	for i, d := range types.Directions {
		if d == p {
			return Action(i)
		}
	}
	return Right
}

// Rewards
const (
	RewardCloser  = 0.5
	RewardFarther = -0.3
	RewardGoal    = 1.0
	RewardDeath   = -1.0
)

type QTable map[string][4]float64

// QLearning is a tabular epsilon-greedy agent. It implements game.Pilot.
type QLearning struct {
	QTable       QTable
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64
	GamesPlayed  int

	rng        types.Rand
	mutex      sync.RWMutex
	lastState  State
	lastAction Action
	pending    bool
}

func NewQLearning(rng types.Rand) *QLearning {
	return &QLearning{
		QTable:       make(QTable),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		rng:          rng,
	}
}

// Sense builds the agent's view of g.
func Sense(g *game.Game) State {
	head := g.Snake().Head()
	s := State{Heading: actionOf(g.Snake().Direction)}

	if goal, ok := g.Goal(); ok {
		s.RelativeGoalDir = [2]int{sign(goal.X - head.X), sign(goal.Y - head.Y)}
		s.GoalDistance = abs(goal.X-head.X) + abs(goal.Y-head.Y)
	}
	for i, d := range types.Directions {
		s.DangerDirs[i] = g.Blocked(head.Add(d))
	}
	return s
}

func (s State) key() string {
	return fmt.Sprintf("%d,%d|%t,%t,%t,%t|%d",
		s.RelativeGoalDir[0], s.RelativeGoalDir[1],
		s.DangerDirs[0], s.DangerDirs[1], s.DangerDirs[2], s.DangerDirs[3],
		s.Heading)
}

// Steer picks the next direction and remembers it for the following Observe.
func (q *QLearning) Steer(g *game.Game) types.Point {
	state := Sense(g)
	action := q.GetAction(state)
	q.lastState = state
	q.lastAction = action
	q.pending = true
	return action.Point()
}

// Observe learns from the move just made.
func (q *QLearning) Observe(g *game.Game, events []game.Event) {
	if !q.pending {
		return
	}
	q.pending = false

	var reward float64
	next := Sense(g)
	switch {
	case game.HasEvent(events, game.EventLost) || game.HasEvent(events, game.EventLifeLost):
		reward = RewardDeath
	case game.HasEvent(events, game.EventAte) || game.HasEvent(events, game.EventGuessed):
		reward = RewardGoal
	case next.GoalDistance < q.lastState.GoalDistance:
		reward = RewardCloser
	case next.GoalDistance > q.lastState.GoalDistance:
		reward = RewardFarther
	}
	terminal := g.Phase() != game.PhaseRunning
	q.Update(q.lastState, q.lastAction, reward, next, terminal)
	if terminal {
		q.GamesPlayed++
	}
}

func (q *QLearning) GetAction(state State) Action {
	// Exploration: random action
	if q.rng.Float64() < q.Epsilon {
		return Action(q.rng.Intn(len(types.Directions)))
	}
	return q.BestAction(state)
}

// BestAction returns the highest valued action. Fatal moves are penalised and
// ties go to the current heading, then clockwise.
func (q *QLearning) BestAction(state State) Action {
	q.mutex.RLock()
	values := q.QTable[state.key()]
	q.mutex.RUnlock()

	best := state.Heading
	bestValue := math.Inf(-1)
	for i := 0; i < len(types.Directions); i++ {
		a := (state.Heading + Action(i)) % Action(len(types.Directions))
		v := values[a]
		if state.DangerDirs[a] {
			v += RewardDeath
		}
		if v > bestValue {
			bestValue = v
			best = a
		}
	}
	return best
}

// Update applies the Q-learning rule for one transition.
func (q *QLearning) Update(state State, action Action, reward float64, next State, terminal bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	key := state.key()
	values := q.QTable[key]

	var maxNext float64
	if !terminal {
		maxNext = math.Inf(-1)
		for _, v := range q.QTable[next.key()] {
			maxNext = math.Max(maxNext, v)
		}
	}
	values[action] += q.LearningRate * (reward + q.Discount*maxNext - values[action])
	q.QTable[key] = values
	q.TotalReward += reward
}

// SaveQTable writes the table as JSON, creating the directory if needed.
func (q *QLearning) SaveQTable(filename string) error {
	q.mutex.RLock()
	defer q.mutex.RUnlock()

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(q.QTable, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling QTable: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("error writing QTable to file: %w", err)
	}
	return nil
}

// LoadQTable reads a table saved by SaveQTable. A missing file leaves the table empty.
func (q *QLearning) LoadQTable(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading QTable file: %w", err)
	}

	table := make(QTable)
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("error unmarshaling QTable: %w", err)
	}

	q.mutex.Lock()
	q.QTable = table
	q.mutex.Unlock()
	return nil
}

func sign(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
