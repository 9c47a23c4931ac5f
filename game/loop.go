package game

import "time"

// Platform is the presentation layer: a window or a terminal that polls
// keys, measures frames and draws the game.
type Platform interface {
	ShouldClose() bool
	Poll() Input
	// FrameDelta is the duration of the last frame.
	FrameDelta() time.Duration
	// Present draws one frame and waits for the next one.
	Present(g *Game)
}

// Listener is told about every event, in order. Audio and records hang off it.
type Listener interface {
	Notify(g *Game, ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(g *Game, ev Event)

func (f ListenerFunc) Notify(g *Game, ev Event) { f(g, ev) }

// Run drives the game one Update per frame until the platform closes or the player quits.
func Run(p Platform, g *Game, listeners ...Listener) {
	for !p.ShouldClose() && !g.Done() {
		events := g.Update(p.Poll(), p.FrameDelta())
		for _, ev := range events {
			for _, l := range listeners {
				l.Notify(g, ev)
			}
		}
		p.Present(g)
	}
}
