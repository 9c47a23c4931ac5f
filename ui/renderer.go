package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-hess/game"
	"snake-hess/game/entity"
	"snake-hess/game/manager"
	"snake-hess/game/types"
)

const (
	fontSize   = 20
	titleSize  = 30
	lineHeight = 30
	textX      = 10
)

type Renderer struct {
	records *manager.RecordManager
}

// NewRenderer draws games; records may be nil.
func NewRenderer(records *manager.RecordManager) *Renderer {
	return &Renderer{records: records}
}

func (r *Renderer) Draw(g *game.Game) {
	rl.ClearBackground(rl.Black)

	switch g.Phase() {
	case game.PhaseConfiguring:
		r.drawMenu(g)
	case game.PhaseRunning:
		r.drawBoard(g)
		r.drawHUD(g)
	case game.PhaseEnded:
		r.drawEnd(g)
	}
}

func (r *Renderer) drawMenu(g *game.Game) {
	width, height := g.MenuSize()
	rl.DrawText("SNAKE DE LA HESS", textX, textX, titleSize, rl.Green)
	rl.DrawText("Use arrow keys to change the map size.", textX, 140, fontSize, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("Width: %d", width), textX, 170, fontSize, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("Height: %d", height), textX, 200, fontSize, rl.RayWhite)
	rl.DrawText("Press ENTER to confirm.", textX, 230, fontSize, rl.RayWhite)
	if r.records != nil && r.records.GamesPlayed() > 0 {
		rl.DrawText(fmt.Sprintf("High score: %d  Games: %d  Avg: %.1f",
			r.records.HighScore(), r.records.GamesPlayed(), r.records.AverageScore()),
			textX, 290, fontSize, rl.Gray)
	}
}

func (r *Renderer) drawBoard(g *game.Game) {
	grid := g.Grid()

	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			if p := (types.Point{X: x, Y: y}); grid.IsWall(p) {
				fillCell(grid, p, rl.RayWhite)
			}
		}
	}

	if food, ok := g.Food(); ok {
		fillCell(grid, food.Position, rl.Red)
	}

	if booster, ok := g.Booster(); ok {
		fillCell(grid, booster.Position, boosterColor(booster.Type))
	}

	for _, l := range g.Letters() {
		rect := grid.CellToRect(l.Position)
		fillCell(grid, l.Position, rl.DarkBlue)
		letter := string(l.Char)
		w := rl.MeasureText(letter, fontSize)
		rl.DrawText(letter, int32(rect.X)+(int32(rect.W)-w)/2, int32(rect.Y), fontSize, rl.RayWhite)
	}

	body := g.Snake().Body()
	for i := len(body) - 1; i >= 0; i-- {
		color := rl.Green
		if i == 0 {
			color = rl.Lime
		}
		fillCell(grid, body[i], color)
	}
	drawHeading(grid, body[0], g.Snake().Direction)
}

func (r *Renderer) drawHUD(g *game.Game) {
	sys := g.Systems()
	switch {
	case sys.WordPuzzle:
		rl.DrawText(fmt.Sprintf("Word: %s", spaced(g.Puzzle().String())), textX, textX, fontSize, rl.RayWhite)
	case sys.Food:
		rl.DrawText(fmt.Sprintf("Food Eaten: %d/%d", g.Progress, g.WinCondition), textX, textX, fontSize, rl.RayWhite)
	default:
		rl.DrawText(fmt.Sprintf("Length: %d", g.Snake().Len()), textX, textX, fontSize, rl.RayWhite)
	}
	rl.DrawText(fmt.Sprintf("Lives: %d", g.ExtraLives+1), textX, textX+lineHeight, fontSize, rl.Blue)

	if g.BoostLeft > 0 {
		rl.DrawText(fmt.Sprintf("SPEED BOOST!!! %.2f", g.BoostLeft.Seconds()), textX, textX+2*lineHeight, fontSize, rl.Yellow)
	}
}

func (r *Renderer) drawEnd(g *game.Game) {
	y := int32(textX)
	if g.Outcome() == game.OutcomeWon {
		rl.DrawText("YOU WON!", textX, y, titleSize, rl.Blue)
		y += lineHeight
		if p := g.Puzzle(); p != nil {
			rl.DrawText(fmt.Sprintf("The word was %q", p.String()), textX, y, titleSize, rl.Blue)
		} else {
			rl.DrawText(fmt.Sprintf("Food eaten: %d", g.Progress), textX, y, titleSize, rl.Blue)
		}
	} else {
		rl.DrawText("YOU LOST...", textX, y, titleSize, rl.Red)
	}
	y += lineHeight
	rl.DrawText("Press R to restart or ESC to exit.", textX, y, fontSize, rl.RayWhite)

	if r.records != nil {
		y += lineHeight
		rl.DrawText(fmt.Sprintf("High score: %d", r.records.HighScore()), textX, y, fontSize, rl.Gray)
	}
}

func fillCell(grid types.Grid, p types.Point, color rl.Color) {
	rect := grid.CellToRect(p)
	rl.DrawRectangle(int32(rect.X), int32(rect.Y), int32(rect.W), int32(rect.H), color)
}

// drawHeading marks the head with a triangle pointing where the snake goes.
func drawHeading(grid types.Grid, head, dir types.Point) {
	rect := grid.CellToRect(head)
	x, y := float32(rect.X), float32(rect.Y)
	size := float32(rect.W)
	half := size / 2

	var v1, v2, v3 rl.Vector2
	switch dir {
	case types.Right:
		v1, v2, v3 = rl.Vector2{X: x + size, Y: y + half}, rl.Vector2{X: x + half, Y: y}, rl.Vector2{X: x + half, Y: y + size}
	case types.Left:
		v1, v2, v3 = rl.Vector2{X: x, Y: y + half}, rl.Vector2{X: x + half, Y: y}, rl.Vector2{X: x + half, Y: y + size}
	case types.Down:
		v1, v2, v3 = rl.Vector2{X: x + half, Y: y + size}, rl.Vector2{X: x, Y: y + half}, rl.Vector2{X: x + size, Y: y + half}
	default:
		v1, v2, v3 = rl.Vector2{X: x + half, Y: y}, rl.Vector2{X: x, Y: y + half}, rl.Vector2{X: x + size, Y: y + half}
	}
	rl.DrawTriangle(v1, v2, v3, rl.Yellow)
}

func boosterColor(t entity.BoosterType) rl.Color {
	switch t {
	case entity.BoosterSpeed:
		return rl.Yellow
	case entity.BoosterShrink:
		return rl.Purple
	default:
		return rl.Blue
	}
}

func spaced(s string) string {
	out := make([]rune, 0, 2*len(s))
	for i, r := range s {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, r)
	}
	return string(out)
}
