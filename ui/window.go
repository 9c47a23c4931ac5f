package ui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-hess/game"
	"snake-hess/game/types"
)

const (
	WindowWidth  = 800
	WindowHeight = 600
	TargetFPS    = 60
	Title        = "Snake de la Hess"
)

// Window is the raylib implementation of game.Platform.
type Window struct {
	renderer *Renderer
	audio    *Audio
}

// NewWindow opens the window. Call Close when done.
func NewWindow(renderer *Renderer) *Window {
	rl.InitWindow(WindowWidth, WindowHeight, Title)
	rl.SetTargetFPS(TargetFPS)
	return &Window{renderer: renderer}
}

// AttachAudio lets the window feed the music stream every frame.
func (w *Window) AttachAudio(a *Audio) {
	w.audio = a
}

func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Poll maps arrows to the menu, WASD to steering, Enter, R and Q.
func (w *Window) Poll() game.Input {
	var in game.Input

	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		in.Arrow = types.Up
	case rl.IsKeyPressed(rl.KeyDown):
		in.Arrow = types.Down
	case rl.IsKeyPressed(rl.KeyRight):
		in.Arrow = types.Right
	case rl.IsKeyPressed(rl.KeyLeft):
		in.Arrow = types.Left
	}

	switch {
	case rl.IsKeyPressed(rl.KeyW):
		in.Steer = types.Up
	case rl.IsKeyPressed(rl.KeyA):
		in.Steer = types.Left
	case rl.IsKeyPressed(rl.KeyS):
		in.Steer = types.Down
	case rl.IsKeyPressed(rl.KeyD):
		in.Steer = types.Right
	}

	in.Confirm = rl.IsKeyPressed(rl.KeyEnter)
	in.Restart = rl.IsKeyPressed(rl.KeyR)
	in.Quit = rl.IsKeyPressed(rl.KeyQ)
	return in
}

func (w *Window) FrameDelta() time.Duration {
	return time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
}

func (w *Window) Present(g *game.Game) {
	if w.audio != nil {
		w.audio.Update()
	}
	rl.BeginDrawing()
	w.renderer.Draw(g)
	rl.EndDrawing()
}

func (w *Window) Close() {
	rl.CloseWindow()
}
