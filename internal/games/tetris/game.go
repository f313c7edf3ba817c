// Package tetris implements tetris in a 10x20 well.
package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

func init() {
	registry.Register("tetris", func() registry.Game { return New() })
}

const (
	WellW = 10
	WellH = 20

	linesPerLevel = 10
	// Gravity interval in ticks at 60/s: one second at level 1, three
	// ticks faster per level, floored so the game stays playable.
	baseDropTicks = 60
	dropTicksStep = 3
	minDropTicks  = 6
)

// Game is the tetris game state. board holds settled cells as kind+1,
// 0 meaning empty.
type Game struct {
	cfg     core.RuntimeConfig
	rng     *rand.Rand
	machine *engine.Machine

	board   [WellH][WellW]int8
	current Piece
	next    Piece
	ticks   int
	lines   int
	level   int
	score   int
}

// New creates an uninitialized game. Reset must be called before Step.
func New() *Game {
	return &Game{machine: engine.NewMachine()}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "tetris" }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// Reset initializes the game to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.machine.Reset()
	g.board = [WellH][WellW]int8{}
	g.ticks = 0
	g.lines = 0
	g.level = 1
	g.score = 0
}

func (g *Game) begin() {
	g.board = [WellH][WellW]int8{}
	g.lines = 0
	g.level = 1
	g.score = 0
	g.ticks = 0
	g.next = g.randomPiece()
	g.spawn()
	g.machine.Begin()
}

func (g *Game) randomPiece() Piece {
	kind := g.rng.Intn(len(tetrominoes))
	shape := tetrominoes[kind].Clone()
	return Piece{
		Kind:  kind,
		Shape: shape,
		X:     (WellW - len(shape)) / 2,
		Y:     0,
	}
}

// spawn promotes the next piece. A spawn that immediately collides tops
// out the well and ends the game.
func (g *Game) spawn() {
	g.current = g.next
	g.next = g.randomPiece()
	if g.collides(g.current) {
		g.machine.End()
	}
}

// collides tests a piece against the walls, the floor, and settled cells.
func (g *Game) collides(p Piece) bool {
	hit := false
	p.Cells(func(x, y int) {
		if x < 0 || x >= WellW || y < 0 || y >= WellH {
			hit = true
			return
		}
		if g.board[y][x] != 0 {
			hit = true
		}
	})
	return hit
}

// tryMove attempts a horizontal or vertical shift. The piece is only
// updated when the target position is free; a blocked move leaves it
// exactly as it was.
func (g *Game) tryMove(dx, dy int) bool {
	moved := g.current
	moved.X += dx
	moved.Y += dy
	if g.collides(moved) {
		return false
	}
	g.current = moved
	return true
}

// tryRotate rotates a clone and commits it only if the rotated piece fits.
// A blocked rotation leaves the current piece untouched.
func (g *Game) tryRotate() bool {
	rotated := g.current.Clone()
	rotated.Shape = rotated.Shape.Rotated()
	if g.collides(rotated) {
		return false
	}
	g.current = rotated
	return true
}

// dropInterval returns the gravity period in ticks for the current level.
func (g *Game) dropInterval() int {
	interval := baseDropTicks - (g.level-1)*dropTicksStep
	if interval < minDropTicks {
		interval = minDropTicks
	}
	return interval
}

// lock settles the current piece into the board, clears completed lines,
// and spawns the next piece.
func (g *Game) lock() {
	g.current.Cells(func(x, y int) {
		if y >= 0 && y < WellH && x >= 0 && x < WellW {
			g.board[y][x] = int8(g.current.Kind + 1)
		}
	})

	cleared := g.clearLines()
	if cleared > 0 {
		g.score += cleared * 100 * g.level
		g.lines += cleared
		g.level = g.lines/linesPerLevel + 1
	}
	g.spawn()
}

// clearLines removes full rows, shifting everything above down.
func (g *Game) clearLines() int {
	cleared := 0
	for y := WellH - 1; y >= 0; y-- {
		full := true
		for x := 0; x < WellW; x++ {
			if g.board[y][x] == 0 {
				full = false
				break
			}
		}
		if !full {
			continue
		}
		cleared++
		for yy := y; yy > 0; yy-- {
			g.board[yy] = g.board[yy-1]
		}
		g.board[0] = [WellW]int8{}
		y++ // re-check the row that dropped into this slot
	}
	return cleared
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.machine.Phase() {
	case engine.PhaseStart:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.begin()
		}
	case engine.PhasePlaying:
		g.stepPlaying(in)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepPlaying(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.tryMove(-1, 0)
	}
	if in.Has(core.ActionRight) {
		g.tryMove(1, 0)
	}
	if in.Has(core.ActionUp) {
		g.tryRotate()
	}

	g.ticks++
	gravity := g.ticks%g.dropInterval() == 0
	if in.Has(core.ActionDown) {
		gravity = true
	}
	if !gravity {
		return
	}

	if !g.tryMove(0, 1) {
		g.lock()
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
	Board [WellH][WellW]int8
	X, Y  int
	Kind  int
	Lines int
	Level int
	Score int
	Phase engine.Phase
}

// Snapshot returns the current deterministic state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board: g.board,
		X:     g.current.X,
		Y:     g.current.Y,
		Kind:  g.current.Kind,
		Lines: g.lines,
		Level: g.level,
		Score: g.score,
		Phase: g.machine.Phase(),
	}
}

var pieceColors = []core.Color{
	core.ColorBrightCyan,
	core.ColorBrightYellow,
	core.ColorBrightMagenta,
	core.ColorBrightGreen,
	core.ColorBrightRed,
	core.ColorBrightBlue,
	core.ColorOrange,
}

// Render draws the well into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()

	if g.machine.Phase() == engine.PhaseStart {
		dst.DrawTextCentered(h/2-3, "TETRIS")
		dst.DrawTextCentered(h/2-1, "A/D move, W rotate, S soft drop")
		dst.DrawTextCentered(h/2+1, "Press SPACE to start")
		return
	}

	// Each well cell renders two columns wide so blocks look square.
	wellPixW := WellW*2 + 2
	ox := (w - wellPixW) / 2
	oy := h - WellH - 2
	if oy < 0 {
		oy = 0
	}

	dst.DrawBox(core.NewRect(ox, oy, wellPixW, WellH+2))

	draw := func(x, y int, kind int) {
		if y < 0 {
			return
		}
		c := pieceColors[kind%len(pieceColors)]
		dst.SetColor(ox+1+x*2, oy+1+y, '█', c)
		dst.SetColor(ox+2+x*2, oy+1+y, '█', c)
	}

	for y := 0; y < WellH; y++ {
		for x := 0; x < WellW; x++ {
			if g.board[y][x] != 0 {
				draw(x, y, int(g.board[y][x]-1))
			}
		}
	}
	g.current.Cells(func(x, y int) {
		draw(x, y, g.current.Kind)
	})

	infoX := ox + wellPixW + 2
	dst.DrawText(infoX, oy+1, fmt.Sprintf("Score: %d", g.score))
	dst.DrawText(infoX, oy+2, fmt.Sprintf("Level: %d", g.level))
	dst.DrawText(infoX, oy+3, fmt.Sprintf("Lines: %d", g.lines))

	if g.machine.Over() {
		renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	}
}

// renderOverlay draws a centered message box over the well.
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
