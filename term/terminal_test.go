package term

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-hess/game"
	"snake-hess/game/types"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(80, 30)
	term := NewWithScreen(screen, nil)
	t.Cleanup(term.Close)
	return term, screen
}

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.Input
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.Input{Arrow: types.Up, Steer: types.Up}},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.Input{Arrow: types.Left, Steer: types.Left}},
		{"w steers only", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), game.Input{Steer: types.Up}},
		{"d steers only", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), game.Input{Steer: types.Right}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.Input{Confirm: true}},
		{"restart", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), game.Input{Restart: true}},
		{"quit rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), game.Input{Quit: true}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.Input{Quit: true}},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), game.Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in game.Input
			translate(tt.ev, &in)
			if in != tt.want {
				t.Errorf("translate() = %+v, want %+v", in, tt.want)
			}
		})
	}
}

func TestFrameDelta(t *testing.T) {
	term, _ := newTestTerminal(t)

	base := time.Unix(0, 0)
	now := base
	term.now = func() time.Time { return now }
	term.last = base

	now = base.Add(40 * time.Millisecond)
	if got := term.FrameDelta(); got != 40*time.Millisecond {
		t.Errorf("FrameDelta() = %v, want 40ms", got)
	}
	now = now.Add(16 * time.Millisecond)
	if got := term.FrameDelta(); got != 16*time.Millisecond {
		t.Errorf("FrameDelta() = %v, want 16ms", got)
	}
}

func TestDrawMenu(t *testing.T) {
	term, screen := newTestTerminal(t)
	g, err := game.NewGame(game.Config{Width: 7, Height: 9})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}

	term.draw(g)

	if got := rowText(screen, 0, 16); got != "SNAKE DE LA HESS" {
		t.Errorf("title row = %q", got)
	}
	if got := rowText(screen, 3, 8); got != "Width: 7" {
		t.Errorf("width row = %q", got)
	}
	if got := rowText(screen, 4, 9); got != "Height: 9" {
		t.Errorf("height row = %q", got)
	}
}

func TestDrawBoard(t *testing.T) {
	term, screen := newTestTerminal(t)
	g, err := game.NewGame(game.Config{})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	if err := g.Start(5, 5); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	term.draw(g)

	if got := rowText(screen, 0, 9); got != "Length: 1" {
		t.Errorf("HUD row = %q", got)
	}

	// corner wall
	if r, _, _, _ := screen.GetContent(0, hudRows); r != '█' {
		t.Errorf("wall cell = %q, want block", r)
	}

	head := g.Snake().Head()
	if r, _, _, _ := screen.GetContent(head.X*cellColumns, head.Y+hudRows); r != '▶' {
		t.Errorf("head cell = %q, want right arrow", r)
	}

	inner := types.Point{X: 1, Y: 1}
	if r, _, _, _ := screen.GetContent(inner.X*cellColumns, inner.Y+hudRows); r != ' ' {
		t.Errorf("empty interior cell = %q", r)
	}
}

func TestDrawEnd(t *testing.T) {
	term, screen := newTestTerminal(t)
	g, err := game.NewGame(game.Config{})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	if err := g.Start(5, 5); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for g.Phase() == game.PhaseRunning {
		g.Update(game.Input{}, types.NormalSpeed)
	}

	term.draw(g)

	if got := rowText(screen, 0, 11); got != "YOU LOST..." {
		t.Errorf("end row = %q", got)
	}
}

func TestToneGenerator(t *testing.T) {
	gen := NewToneGenerator(sampleRate, 440)
	samples := make([][2]float64, 512)

	n, ok := gen.Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, want silent attack start", samples[0][0])
	}
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("sample %d out of range or not mono: %v", i, s)
		}
	}
	if gen.Err() != nil {
		t.Errorf("Err() = %v", gen.Err())
	}
}

func TestSoundSilentWhenUninitialized(t *testing.T) {
	s := NewSound()
	// must not touch the speaker
	s.Notify(nil, game.Event{Type: game.EventAte})
	s.Cleanup()
}
