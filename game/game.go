package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"snake-hess/game/entity"
	"snake-hess/game/manager"
	"snake-hess/game/types"
)

// Input is what the presentation layer saw pressed during one frame.
// Zero points mean no key.
type Input struct {
	Arrow   types.Point // map size menu
	Steer   types.Point // snake direction
	Confirm bool
	Restart bool
	Quit    bool
}

// Pilot steers the snake in place of the player.
type Pilot interface {
	// Steer is asked for a direction right before each move.
	Steer(g *Game) types.Point
	// Observe receives the events of every frame in which the snake moved.
	Observe(g *Game, events []Event)
}

type Config struct {
	Systems types.Systems
	Width   int // initial menu width, MinSize when zero
	Height  int // initial menu height, MinSize when zero
	Words   []string
	Rand    types.Rand // seeded from the clock when nil
	Pilot   Pilot
}

// Game is one play session together with the map size menu that precedes it.
type Game struct {
	cfg     Config
	rng     types.Rand
	phase   Phase
	outcome Outcome
	done    bool

	menuWidth  int
	menuHeight int

	grid      types.Grid
	snake     *entity.Snake
	collision *manager.CollisionManager
	food      *manager.FoodManager
	boosters  *manager.BoosterManager
	words     *manager.WordManager

	Speed        time.Duration // current movement interval
	BoostLeft    time.Duration // remaining speed booster time
	ExtraLives   int
	WinCondition int
	Progress     int

	sinceMove time.Duration
	elapsed   time.Duration
	sessionID string
	events    []Event
}

func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Systems.Validate(); err != nil {
		return nil, err
	}
	if cfg.Width == 0 {
		cfg.Width = types.MinSize
	}
	if cfg.Height == 0 {
		cfg.Height = types.MinSize
	}
	if _, err := types.NewGrid(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	return &Game{
		cfg:        cfg,
		rng:        rng,
		phase:      PhaseConfiguring,
		menuWidth:  cfg.Width,
		menuHeight: cfg.Height,
		Speed:      types.NormalSpeed,
	}, nil
}

// Update advances the game by one frame of length dt and returns what happened.
func (g *Game) Update(in Input, dt time.Duration) []Event {
	g.events = nil
	if g.done {
		return nil
	}
	if in.Quit {
		g.done = true
		g.emit(Event{Type: EventQuit})
		return g.events
	}

	switch g.phase {
	case PhaseConfiguring:
		g.configure(in)
	case PhaseRunning:
		g.step(in, dt)
	case PhaseEnded:
		if in.Restart {
			g.Restart()
		}
	}
	return g.events
}

func (g *Game) configure(in Input) {
	switch in.Arrow {
	case types.Up:
		g.menuHeight = min(g.menuHeight+1, types.MaxSize)
	case types.Down:
		g.menuHeight = max(g.menuHeight-1, types.MinSize)
	case types.Right:
		g.menuWidth = min(g.menuWidth+1, types.MaxSize)
	case types.Left:
		g.menuWidth = max(g.menuWidth-1, types.MinSize)
	}
	if in.Confirm {
		// menu values are clamped to a valid size
		_ = g.Start(g.menuWidth, g.menuHeight)
	}
}

// Start commits a map size, skipping the menu, and begins a session.
func (g *Game) Start(width, height int) error {
	grid, err := types.NewGrid(width, height)
	if err != nil {
		return err
	}
	g.menuWidth, g.menuHeight = width, height
	g.grid = grid
	g.collision = manager.NewCollisionManager(grid)
	g.snake = entity.NewSnake(grid.Center())
	g.reset()
	g.emit(Event{Type: EventStarted})
	return nil
}

// Restart throws the session away and begins a new one on the same grid.
func (g *Game) Restart() {
	if g.phase == PhaseConfiguring {
		return
	}
	g.reset()
	g.emit(Event{Type: EventRestarted})
}

func (g *Game) reset() {
	g.snake.ResetTo(g.grid.Center())
	g.food, g.boosters, g.words = nil, nil, nil
	g.WinCondition = 0

	sys := g.cfg.Systems
	if sys.Food {
		g.food = manager.NewFoodManager(g.grid, g.rng)
		g.WinCondition = g.grid.InteriorCells() / types.WinDivisor
	}
	if sys.WordPuzzle {
		g.words = manager.NewWordManager(g.grid, g.rng, g.cfg.Words)
		g.WinCondition = len(g.words.Puzzle().Word)
	}
	if sys.Boosters {
		g.boosters = manager.NewBoosterManager(g.grid, g.rng)
	}

	g.Speed = types.NormalSpeed
	g.BoostLeft = 0
	g.ExtraLives = 0
	g.Progress = 0
	g.sinceMove = 0
	g.elapsed = 0
	g.outcome = OutcomeNone
	g.phase = PhaseRunning
	g.sessionID = uuid.NewString()
}

func (g *Game) step(in Input, dt time.Duration) {
	g.elapsed += dt
	if in.Steer != (types.Point{}) {
		g.snake.SetDirection(in.Steer)
	}

	g.sinceMove += dt
	if g.sinceMove >= g.Speed {
		if g.cfg.Pilot != nil {
			g.snake.SetDirection(g.cfg.Pilot.Steer(g))
		}
		g.snake.Move()
		g.sinceMove = 0
		g.emit(Event{Type: EventMoved})
		g.resolveMove()
		if g.cfg.Pilot != nil {
			g.cfg.Pilot.Observe(g, g.events)
		}
		if g.phase != PhaseRunning {
			return
		}
	}

	if g.boosters == nil {
		return
	}
	if g.BoostLeft > 0 {
		g.BoostLeft -= dt
		if g.BoostLeft <= 0 {
			g.BoostLeft = 0
			g.Speed = types.NormalSpeed
			g.emit(Event{Type: EventBoostExpired})
		}
	}
	if g.boosters.Tick(dt) {
		g.emit(Event{Type: EventBoosterSpawned, Booster: g.boosters.Booster().Type})
	}
}

// resolveMove applies the collisions of the freshly moved head:
// walls and body first, then food or letters, then the booster.
func (g *Game) resolveMove() {
	if g.collision.Fatal(g.snake) {
		if g.ExtraLives == 0 {
			g.end(OutcomeLost)
			return
		}
		g.ExtraLives--
		g.snake.ResetTo(g.grid.Center())
		g.emit(Event{Type: EventLifeLost})
	}

	if g.food != nil && g.collision.HitsFood(g.snake, g.food.Food()) {
		g.snake.Grow(1)
		g.Progress = g.food.Eat()
		g.emit(Event{Type: EventAte})
		if g.Progress >= g.WinCondition {
			g.end(OutcomeWon)
			return
		}
	}

	if g.words != nil {
		if i := g.collision.HitsLetter(g.snake, g.words.Letters()); i >= 0 {
			g.ResolveChoice(g.words.Letters()[i].Char)
			if g.phase != PhaseRunning {
				return
			}
		}
	}

	if g.boosters != nil && g.collision.HitsBooster(g.snake, g.boosters.Booster()) {
		g.applyBooster(g.boosters.Pickup())
	}
}

// ResolveChoice applies an eaten letter: a correct one grows the snake, a
// decoy costs an extra life if there is one. Both choices are regenerated.
func (g *Game) ResolveChoice(c rune) manager.Guess {
	if g.words == nil {
		return manager.Guess{Char: c}
	}
	guess := g.words.Resolve(c)
	if guess.Correct() {
		g.snake.Grow(1)
		g.Progress = g.words.Puzzle().Revealed()
		g.emit(Event{Type: EventGuessed, Char: c})
	} else {
		g.ExtraLives = max(g.ExtraLives-1, 0)
		g.emit(Event{Type: EventMissed, Char: c})
	}
	if guess.Solved {
		g.end(OutcomeWon)
	}
	return guess
}

func (g *Game) applyBooster(t entity.BoosterType) {
	switch t {
	case entity.BoosterSpeed:
		g.BoostLeft = types.SpeedDuration
		g.Speed = types.BoostedSpeed
	case entity.BoosterShrink:
		g.snake.Shrink(types.ShrinkAmount)
	case entity.BoosterExtraLife:
		g.ExtraLives++
	}
	g.emit(Event{Type: EventBoosterPicked, Booster: t})
}

func (g *Game) end(o Outcome) {
	g.phase = PhaseEnded
	g.outcome = o
	if o == OutcomeWon {
		g.emit(Event{Type: EventWon})
	} else {
		g.emit(Event{Type: EventLost})
	}
}

func (g *Game) emit(ev Event) {
	g.events = append(g.events, ev)
}

func (g *Game) Phase() Phase           { return g.phase }
func (g *Game) Outcome() Outcome       { return g.outcome }
func (g *Game) Done() bool             { return g.done }
func (g *Game) Grid() types.Grid       { return g.grid }
func (g *Game) Snake() *entity.Snake   { return g.snake }
func (g *Game) Systems() types.Systems { return g.cfg.Systems }
func (g *Game) SessionID() string      { return g.sessionID }

// Elapsed is the play time of the current session.
func (g *Game) Elapsed() time.Duration { return g.elapsed }

// MenuSize is the map size currently chosen in the menu, walls excluded.
func (g *Game) MenuSize() (width, height int) {
	return g.menuWidth, g.menuHeight
}

func (g *Game) Food() (entity.Food, bool) {
	if g.food == nil {
		return entity.Food{}, false
	}
	return g.food.Food(), true
}

func (g *Game) Booster() (entity.Booster, bool) {
	if g.boosters == nil {
		return entity.Booster{}, false
	}
	b := g.boosters.Booster()
	return b, b.Active
}

func (g *Game) Letters() []entity.Letter {
	if g.words == nil {
		return nil
	}
	return g.words.Letters()
}

func (g *Game) Puzzle() *entity.WordPuzzle {
	if g.words == nil {
		return nil
	}
	return g.words.Puzzle()
}

// Goal is the cell worth heading for: the food, or the letter that belongs to the word.
func (g *Game) Goal() (types.Point, bool) {
	if g.food != nil {
		return g.food.Food().Position, true
	}
	if g.words != nil {
		p := g.words.Puzzle()
		for _, l := range g.words.Letters() {
			if p.Contains(l.Char) {
				return l.Position, true
			}
		}
	}
	return types.Point{}, false
}

// Blocked reports whether moving the head onto p would be fatal.
func (g *Game) Blocked(p types.Point) bool {
	if !g.grid.Interior(p) {
		return true
	}
	// the tail moves away on the same step
	for i := 1; i < g.snake.Len()-1; i++ {
		if g.snake.Segment(i) == p {
			return true
		}
	}
	return false
}

func (g *Game) String() string {
	return fmt.Sprintf("%s %s %dx%d len=%d progress=%d/%d lives=%d",
		g.cfg.Systems, g.phase, g.grid.Width, g.grid.Height, g.snakeLen(), g.Progress, g.WinCondition, g.ExtraLives)
}

func (g *Game) snakeLen() int {
	if g.snake == nil {
		return 0
	}
	return g.snake.Len()
}
