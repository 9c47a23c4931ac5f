package ai

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/rand"

	"snake-hess/game"
	"snake-hess/game/types"
)

// seqRand replays fixed Intn results; Float64 is always 0.
type seqRand struct {
	ints []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.i%len(r.ints)] % n
	r.i++
	return v
}

func (r *seqRand) Float64() float64 { return 0 }

func startGame(t *testing.T, cfg game.Config, w, h int) *game.Game {
	t.Helper()
	g, err := game.NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	if err := g.Start(w, h); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return g
}

func TestSenseGoal(t *testing.T) {
	// food at (6,4), two cells right of the head
	g := startGame(t, game.Config{
		Systems: types.Systems{Food: true},
		Rand:    &seqRand{ints: []int{5, 3}},
	}, 7, 7)

	s := Sense(g)
	if s.RelativeGoalDir != [2]int{1, 0} || s.GoalDistance != 2 {
		t.Errorf("goal dir %v distance %d", s.RelativeGoalDir, s.GoalDistance)
	}
	if s.Heading != Right {
		t.Errorf("Heading = %v, want Right", s.Heading)
	}
	if s.DangerDirs != [4]bool{} {
		t.Errorf("DangerDirs = %v at the center", s.DangerDirs)
	}
}

func TestSenseDanger(t *testing.T) {
	g := startGame(t, game.Config{}, 5, 5)
	g.Update(game.Input{}, types.NormalSpeed)
	g.Update(game.Input{}, types.NormalSpeed)
	// head at (5,3), the right wall is next

	s := Sense(g)
	want := [4]bool{false, true, false, false}
	if s.DangerDirs != want {
		t.Errorf("DangerDirs = %v, want %v", s.DangerDirs, want)
	}
	if s.RelativeGoalDir != [2]int{} || s.GoalDistance != 0 {
		t.Errorf("plain variant has a goal: %+v", s)
	}
}

func TestBestActionAvoidsDanger(t *testing.T) {
	q := NewQLearning(&seqRand{})
	q.Epsilon = 0

	s := State{Heading: Right, DangerDirs: [4]bool{false, true, false, false}}
	if got := q.GetAction(s); got != Down {
		t.Errorf("GetAction() = %v, want Down", got)
	}

	s.DangerDirs = [4]bool{}
	if got := q.BestAction(s); got != Right {
		t.Errorf("ties should keep the heading, got %v", got)
	}

	q.QTable[s.key()] = [4]float64{0.5, 0, 0, 0}
	if got := q.BestAction(s); got != Up {
		t.Errorf("BestAction() = %v, want Up", got)
	}
}

func TestGetActionExplores(t *testing.T) {
	q := NewQLearning(&seqRand{ints: []int{3}})
	q.Epsilon = 1
	if got := q.GetAction(State{Heading: Up}); got != Left {
		t.Errorf("GetAction() = %v, want Left", got)
	}
}

func TestUpdate(t *testing.T) {
	q := NewQLearning(&seqRand{})
	s := State{RelativeGoalDir: [2]int{1, 0}, GoalDistance: 3}
	next := State{RelativeGoalDir: [2]int{1, 0}, GoalDistance: 2, Heading: Down}

	q.Update(s, Right, RewardCloser, next, false)
	got := q.QTable[s.key()][Right]
	if math.Abs(got-0.05) > 1e-9 {
		t.Errorf("Q = %v, want 0.05", got)
	}

	q.QTable[next.key()] = [4]float64{0, 1, 0, 0}
	q.Update(s, Right, 0, next, false)
	got = q.QTable[s.key()][Right]
	want := 0.05 + 0.1*(0.9*1-0.05)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Q = %v, want %v", got, want)
	}

	before := q.QTable[s.key()][Down]
	q.Update(s, Down, RewardDeath, next, true)
	got = q.QTable[s.key()][Down]
	if math.Abs(got-(before+0.1*(RewardDeath-before))) > 1e-9 {
		t.Errorf("terminal Q = %v", got)
	}
}

func TestPilotLearnsFromDeath(t *testing.T) {
	// always explores, always right
	q := NewQLearning(&seqRand{ints: []int{int(Right)}})
	q.Epsilon = 1
	g := startGame(t, game.Config{Pilot: q}, 5, 5)

	for i := 0; i < 3; i++ {
		g.Update(game.Input{}, types.NormalSpeed)
	}
	if g.Outcome() != game.OutcomeLost {
		t.Fatalf("Outcome() = %v, want lost", g.Outcome())
	}
	if q.GamesPlayed != 1 || q.TotalReward != RewardDeath {
		t.Errorf("GamesPlayed %d TotalReward %v", q.GamesPlayed, q.TotalReward)
	}

	edge := State{Heading: Right, DangerDirs: [4]bool{false, true, false, false}}
	if v := q.QTable[edge.key()][Right]; v >= 0 {
		t.Errorf("Q(edge, Right) = %v, want negative", v)
	}
}

func TestSaveLoadQTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "qtable.json")

	q := NewQLearning(&seqRand{})
	if err := q.LoadQTable(path); err != nil {
		t.Fatalf("LoadQTable() on a missing file error = %v", err)
	}

	s := State{Heading: Down, DangerDirs: [4]bool{true, false, false, true}}
	q.QTable[s.key()] = [4]float64{-1, 0.25, 0.5, 0}
	if err := q.SaveQTable(path); err != nil {
		t.Fatalf("SaveQTable() error = %v", err)
	}

	loaded := NewQLearning(&seqRand{})
	if err := loaded.LoadQTable(path); err != nil {
		t.Fatalf("LoadQTable() error = %v", err)
	}
	if loaded.QTable[s.key()] != q.QTable[s.key()] {
		t.Errorf("loaded %v, want %v", loaded.QTable[s.key()], q.QTable[s.key()])
	}

	if err := os.WriteFile(path, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := loaded.LoadQTable(path); err == nil {
		t.Error("expected an error for a corrupt table")
	}
}

func TestTrainer(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	agent := NewQLearning(rng)
	g, err := game.NewGame(game.Config{Systems: types.Systems{Food: true}, Rand: rng, Pilot: agent})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "qtable.json")
	trainer := NewTrainer(g, agent)
	trainer.MaxMoves = 300
	trainer.SaveEvery = 10
	trainer.QTablePath = path

	stats, err := trainer.Run(20)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Episodes != 20 {
		t.Errorf("Episodes = %d", stats.Episodes)
	}
	if agent.GamesPlayed+stats.Truncated != 20 {
		t.Errorf("GamesPlayed %d + Truncated %d != 20", agent.GamesPlayed, stats.Truncated)
	}
	if stats.BestScore > 0 && stats.AverageScore() == 0 {
		t.Errorf("stats = %+v", stats)
	}
	if len(agent.QTable) == 0 {
		t.Error("empty Q-table after training")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Q-table not saved: %v", err)
	}
	if g.Phase() != game.PhaseRunning {
		t.Errorf("game left in %v", g.Phase())
	}
}
