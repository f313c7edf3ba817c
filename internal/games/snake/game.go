// Package snake implements the classic snake game.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

func init() {
	registry.Register("snake", func() registry.Game { return New() })
}

const (
	initialLength = 4
	foodPoints    = 10
	tickRate      = 10
)

// Point is a grid cell position.
type Point struct {
	X, Y int
}

// Direction is a unit step on the grid.
type Direction Point

var (
	DirUp    = Direction{0, -1}
	DirDown  = Direction{0, 1}
	DirLeft  = Direction{-1, 0}
	DirRight = Direction{1, 0}
)

// Game is the snake game state. The playfield is the screen interior,
// one cell inside the border box.
type Game struct {
	cfg     core.RuntimeConfig
	rng     *rand.Rand
	machine *engine.Machine

	gridW, gridH int
	snake        []Point // head is the last element
	dir          Direction
	nextDir      Direction
	growth       int
	food         Point
	score        int
}

// New creates an uninitialized game. Reset must be called before Step.
func New() *Game {
	return &Game{machine: engine.NewMachine()}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "snake" }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// TickRate returns the grid pace: ten moves per second.
func (g *Game) TickRate() int { return tickRate }

// Reset initializes the game to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.machine.Reset()

	g.gridW = cfg.ScreenW - 2
	g.gridH = cfg.ScreenH - 3 // border plus the score line
	if g.gridW < 8 {
		g.gridW = 8
	}
	if g.gridH < 6 {
		g.gridH = 6
	}
	g.snake = nil
	g.score = 0
}

// begin places the snake and the first food.
func (g *Game) begin() {
	startX := g.gridW / 4
	startY := g.gridH / 2

	g.snake = g.snake[:0]
	for i := initialLength - 1; i >= 0; i-- {
		g.snake = append(g.snake, Point{startX - i, startY})
	}
	g.dir = DirRight
	g.nextDir = DirRight
	g.growth = 0
	g.score = 0
	g.spawnFood()
	g.machine.Begin()
}

// head returns the snake's head cell.
func (g *Game) head() Point {
	return g.snake[len(g.snake)-1]
}

// SetDirection buffers a direction change, rejecting immediate reversal.
func (g *Game) SetDirection(d Direction) {
	if len(g.snake) > 1 && d.X == -g.dir.X && d.Y == -g.dir.Y {
		return
	}
	g.nextDir = d
}

// spawnFood picks a uniformly random empty cell.
func (g *Game) spawnFood() {
	occupied := make(map[Point]bool, len(g.snake))
	for _, p := range g.snake {
		occupied[p] = true
	}

	empty := make([]Point, 0, g.gridW*g.gridH-len(g.snake))
	for y := 0; y < g.gridH; y++ {
		for x := 0; x < g.gridW; x++ {
			if !occupied[Point{x, y}] {
				empty = append(empty, Point{x, y})
			}
		}
	}
	if len(empty) == 0 {
		return
	}
	g.food = empty[g.rng.Intn(len(empty))]
}

// Step advances the simulation by one tick (one grid move while playing).
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.machine.Phase() {
	case engine.PhaseStart:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.begin()
		}
	case engine.PhasePlaying:
		g.readDirection(in)
		g.advance()
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) readDirection(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.SetDirection(DirUp)
	case in.Has(core.ActionDown):
		g.SetDirection(DirDown)
	case in.Has(core.ActionLeft):
		g.SetDirection(DirLeft)
	case in.Has(core.ActionRight):
		g.SetDirection(DirRight)
	}
}

// advance moves the snake one cell and resolves collisions.
func (g *Game) advance() {
	g.dir = g.nextDir
	h := g.head()
	next := Point{h.X + g.dir.X, h.Y + g.dir.Y}

	// Wall collision
	if next.X < 0 || next.X >= g.gridW || next.Y < 0 || next.Y >= g.gridH {
		g.machine.End()
		return
	}

	// Self collision. The tail cell is about to vacate unless growing.
	for i, p := range g.snake {
		if i == 0 && g.growth == 0 {
			continue
		}
		if p == next {
			g.machine.End()
			return
		}
	}

	g.snake = append(g.snake, next)
	if g.growth > 0 {
		g.growth--
	} else {
		g.snake = g.snake[1:]
	}

	if next == g.food {
		g.growth++
		g.score += foodPoints
		g.spawnFood()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.machine.Over(),
		Paused:   g.machine.Paused(),
	}
}

// Snapshot captures the deterministic state for tests.
type Snapshot struct {
	Head  Point
	Len   int
	Food  Point
	Score int
	Phase engine.Phase
}

// Snapshot returns the current deterministic state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{Food: g.food, Score: g.score, Phase: g.machine.Phase(), Len: len(g.snake)}
	if len(g.snake) > 0 {
		s.Head = g.head()
	}
	return s
}

// Render draws the arena into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	h := dst.Height()

	if g.machine.Phase() == engine.PhaseStart {
		dst.DrawTextCentered(h/2-3, "SNAKE")
		dst.DrawTextCentered(h/2-1, "Arrow keys / WASD to move")
		dst.DrawTextCentered(h/2, "Eat food, avoid walls and yourself")
		dst.DrawTextCentered(h/2+2, "Press SPACE to start")
		return
	}

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawBox(core.NewRect(0, 1, g.gridW+2, g.gridH+2))

	// Grid cell (x, y) maps to screen (x+1, y+2).
	dst.SetColor(g.food.X+1, g.food.Y+2, '◆', core.ColorBrightRed)
	for i, p := range g.snake {
		r := '█'
		c := core.ColorBrightGreen
		if i == len(g.snake)-1 {
			c = core.ColorBrightWhite
		}
		dst.SetColor(p.X+1, p.Y+2, r, c)
	}

	if g.machine.Over() {
		renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	}
}

// renderOverlay draws a centered message box over the arena.
func renderOverlay(dst *core.Screen, lines ...string) {
	w, h := dst.Width(), dst.Height()
	boxW := 0
	for _, l := range lines {
		if len(l)+4 > boxW {
			boxW = len(l) + 4
		}
	}
	boxH := len(lines) + 2
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l)
	}
}
