// Package t2048 implements the 2048 sliding-tile game.
package t2048

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

func init() {
	registry.Register("2048", func() registry.Game { return New() })
}

// spawn4Prob is the chance a spawned tile is a 4 instead of a 2.
const spawn4Prob = 0.10

// Game is the 2048 game state.
type Game struct {
	cfg     core.RuntimeConfig
	rng     *rand.Rand
	machine *engine.Machine

	board Board
	score int
}

// New creates an uninitialized game. Reset must be called before Step.
func New() *Game {
	return &Game{machine: engine.NewMachine()}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "2048" }

// Title returns the display name.
func (g *Game) Title() string { return "2048" }

// Reset initializes the game to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.machine.Reset()
	g.board = Board{}
	g.score = 0
}

// begin starts a fresh board with two spawned tiles.
func (g *Game) begin() {
	g.board = Board{}
	g.score = 0
	g.spawnTile()
	g.spawnTile()
	g.machine.Begin()
}

// spawnTile places a 2 (90%) or 4 (10%) on a random empty cell.
func (g *Game) spawnTile() {
	empty := g.board.EmptyCells()
	if len(empty) == 0 {
		return
	}
	cell := empty[g.rng.Intn(len(empty))]
	value := 2
	if g.rng.Float64() < spawn4Prob {
		value = 4
	}
	g.board[cell[0]][cell[1]] = value
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
	var (
		next   Board
		points int
		moved  bool
	)

	switch {
	case in.Has(core.ActionLeft):
		next, points, moved = g.board.SlideLeft()
	case in.Has(core.ActionRight):
		next, points, moved = g.board.SlideRight()
	case in.Has(core.ActionUp):
		next, points, moved = g.board.SlideUp()
	case in.Has(core.ActionDown):
		next, points, moved = g.board.SlideDown()
	default:
		return
	}

	// A slide that changes nothing spawns nothing.
	if !moved {
		return
	}

	g.board = next
	g.score += points
	g.spawnTile()

	if !g.board.HasMove() {
		g.machine.End()
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

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

// Snapshot captures the full deterministic state for tests.
type Snapshot struct {
	Board Board
	Score int
	Phase engine.Phase
}

// Snapshot returns the current deterministic state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{Board: g.board, Score: g.score, Phase: g.machine.Phase()}
}

func tileColor(v int) core.Color {
	switch {
	case v >= 2048:
		return core.ColorBrightYellow
	case v >= 512:
		return core.ColorOrange
	case v >= 128:
		return core.ColorBrightMagenta
	case v >= 32:
		return core.ColorBrightCyan
	case v >= 8:
		return core.ColorBrightGreen
	default:
		return core.ColorWhite
	}
}

// Render draws the board into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()

	if g.machine.Phase() == engine.PhaseStart {
		dst.DrawTextCentered(h/2-3, "2048")
		dst.DrawTextCentered(h/2-1, "Arrow keys / WASD to slide tiles")
		dst.DrawTextCentered(h/2, "Merge equal tiles to reach 2048")
		dst.DrawTextCentered(h/2+2, "Press SPACE to start")
		return
	}

	const cellW, cellH = 7, 2
	boardW := Size*cellW + 1
	boardH := Size*cellH + 1
	ox := (w - boardW) / 2
	oy := (h - boardH) / 2
	if oy < 1 {
		oy = 1
	}

	dst.DrawText(ox, oy-1, fmt.Sprintf("Score: %d", g.score))
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH))

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := g.board[r][c]
			if v == 0 {
				continue
			}
			text := fmt.Sprintf("%5d", v)
			x := ox + 1 + c*cellW
			y := oy + 1 + r*cellH
			dst.DrawTextColor(x, y, text, tileColor(v))
		}
	}

	if g.machine.Over() {
		renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	}
}

// renderOverlay draws a centered message box over the board.
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
