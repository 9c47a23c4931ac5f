package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-hess/game"
	"snake-hess/game/entity"
	"snake-hess/game/manager"
	"snake-hess/game/types"
)

// FrameInterval is the terminal refresh period.
const FrameInterval = 16 * time.Millisecond

// Board cells are two columns wide so the grid looks square.
const (
	cellColumns = 2
	hudRows     = 3
)

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSnake  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleFood   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleLetter = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleLives  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleBoost  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleWon    = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleLost   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFaint  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Terminal is the tcell implementation of game.Platform.
type Terminal struct {
	screen  tcell.Screen
	records *manager.RecordManager
	events  chan tcell.Event
	ticker  *time.Ticker
	now     func() time.Time
	last    time.Time
	delta   time.Duration
	closed  bool
}

// New opens the terminal screen. records may be nil.
func New(records *manager.RecordManager) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	return NewWithScreen(screen, records), nil
}

// NewWithScreen drives an already initialized screen.
func NewWithScreen(screen tcell.Screen, records *manager.RecordManager) *Terminal {
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen:  screen,
		records: records,
		events:  make(chan tcell.Event, 100),
		ticker:  time.NewTicker(FrameInterval),
		now:     time.Now,
	}
	t.last = t.now()

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			t.events <- ev
		}
	}()
	return t
}

func (t *Terminal) ShouldClose() bool {
	return t.closed
}

// Poll drains the pending terminal events into one Input.
func (t *Terminal) Poll() game.Input {
	var in game.Input
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.closed = true
				return in
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				translate(ev, &in)
			case *tcell.EventResize:
				t.screen.Sync()
			}
		default:
			return in
		}
	}
}

// translate maps a key onto the frame input. Arrows drive both the menu and
// the snake, WASD only the snake.
func translate(ev *tcell.EventKey, in *game.Input) {
	switch ev.Key() {
	case tcell.KeyUp:
		in.Arrow, in.Steer = types.Up, types.Up
	case tcell.KeyDown:
		in.Arrow, in.Steer = types.Down, types.Down
	case tcell.KeyLeft:
		in.Arrow, in.Steer = types.Left, types.Left
	case tcell.KeyRight:
		in.Arrow, in.Steer = types.Right, types.Right
	case tcell.KeyEnter:
		in.Confirm = true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.Quit = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			in.Steer = types.Up
		case 's', 'S':
			in.Steer = types.Down
		case 'a', 'A':
			in.Steer = types.Left
		case 'd', 'D':
			in.Steer = types.Right
		case 'r', 'R':
			in.Restart = true
		case 'q', 'Q':
			in.Quit = true
		}
	}
}

func (t *Terminal) FrameDelta() time.Duration {
	now := t.now()
	t.delta = now.Sub(t.last)
	t.last = now
	return t.delta
}

// Present draws the game and blocks until the next frame tick.
func (t *Terminal) Present(g *game.Game) {
	t.draw(g)
	t.screen.Show()
	<-t.ticker.C
}

func (t *Terminal) Close() {
	t.ticker.Stop()
	t.screen.Fini()
}

func (t *Terminal) draw(g *game.Game) {
	t.screen.Clear()
	switch g.Phase() {
	case game.PhaseConfiguring:
		t.drawMenu(g)
	case game.PhaseRunning:
		t.drawHUD(g)
		t.drawBoard(g)
	case game.PhaseEnded:
		t.drawEnd(g)
	}
}

func (t *Terminal) drawMenu(g *game.Game) {
	width, height := g.MenuSize()
	t.text(0, 0, "SNAKE DE LA HESS", styleTitle)
	t.text(0, 2, "Use arrow keys to change the map size.", styleText)
	t.text(0, 3, fmt.Sprintf("Width: %d", width), styleText)
	t.text(0, 4, fmt.Sprintf("Height: %d", height), styleText)
	t.text(0, 5, "Press ENTER to confirm.", styleText)
	if t.records != nil && t.records.GamesPlayed() > 0 {
		t.text(0, 7, fmt.Sprintf("High score: %d  Games: %d  Avg: %.1f",
			t.records.HighScore(), t.records.GamesPlayed(), t.records.AverageScore()), styleFaint)
	}
}

func (t *Terminal) drawHUD(g *game.Game) {
	sys := g.Systems()
	switch {
	case sys.WordPuzzle:
		t.text(0, 0, "Word: "+g.Puzzle().String(), styleText)
	case sys.Food:
		t.text(0, 0, fmt.Sprintf("Food Eaten: %d/%d", g.Progress, g.WinCondition), styleText)
	default:
		t.text(0, 0, fmt.Sprintf("Length: %d", g.Snake().Len()), styleText)
	}
	t.text(0, 1, fmt.Sprintf("Lives: %d", g.ExtraLives+1), styleLives)
	if g.BoostLeft > 0 {
		t.text(0, 2, fmt.Sprintf("SPEED BOOST!!! %.2f", g.BoostLeft.Seconds()), styleBoost)
	}
}

func (t *Terminal) drawBoard(g *game.Game) {
	grid := g.Grid()
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			if p := (types.Point{X: x, Y: y}); grid.IsWall(p) {
				t.cell(p, '█', styleWall)
			}
		}
	}

	if food, ok := g.Food(); ok {
		t.cell(food.Position, '●', styleFood)
	}
	if booster, ok := g.Booster(); ok {
		t.cell(booster.Position, boosterRune(booster.Type), boosterStyle(booster.Type))
	}
	for _, l := range g.Letters() {
		t.cell(l.Position, l.Char, styleLetter)
	}

	body := g.Snake().Body()
	for i := len(body) - 1; i > 0; i-- {
		t.cell(body[i], '█', styleSnake)
	}
	t.cell(body[0], headRune(g.Snake().Direction), styleHead)
}

func (t *Terminal) drawEnd(g *game.Game) {
	y := 0
	if g.Outcome() == game.OutcomeWon {
		t.text(0, y, "YOU WON!", styleWon)
		y++
		if p := g.Puzzle(); p != nil {
			t.text(0, y, fmt.Sprintf("The word was %q", p.String()), styleWon)
		} else {
			t.text(0, y, fmt.Sprintf("Food eaten: %d", g.Progress), styleWon)
		}
	} else {
		t.text(0, y, "YOU LOST...", styleLost)
	}
	y++
	t.text(0, y, "Press R to restart or ESC to exit.", styleText)
	if t.records != nil {
		t.text(0, y+1, fmt.Sprintf("High score: %d", t.records.HighScore()), styleFaint)
	}
}

// cell paints a board cell; the rune goes in the left column.
func (t *Terminal) cell(p types.Point, r rune, style tcell.Style) {
	x := p.X * cellColumns
	y := p.Y + hudRows
	t.screen.SetContent(x, y, r, nil, style)
	fill := ' '
	if r == '█' {
		fill = '█'
	}
	for i := 1; i < cellColumns; i++ {
		t.screen.SetContent(x+i, y, fill, nil, style)
	}
}

func (t *Terminal) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func headRune(dir types.Point) rune {
	switch dir {
	case types.Up:
		return '▲'
	case types.Down:
		return '▼'
	case types.Left:
		return '◀'
	default:
		return '▶'
	}
}

func boosterRune(b entity.BoosterType) rune {
	switch b {
	case entity.BoosterSpeed:
		return '»'
	case entity.BoosterShrink:
		return '-'
	default:
		return '+'
	}
}

func boosterStyle(b entity.BoosterType) tcell.Style {
	switch b {
	case entity.BoosterSpeed:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case entity.BoosterShrink:
		return tcell.StyleDefault.Foreground(tcell.ColorPurple)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	}
}
