// Package memory implements the memory match card game. There is no losing
// state: clearing a board levels up into a bigger one, and the session only
// ends when the player quits.
package memory

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

func init() {
	registry.Register("memory", func() registry.Game { return New() })
}

const (
	matchPoints = 100
	levelBonus  = 500
	revealTicks = 48 // 800ms at the 60/s default tick rate
)

// levelGrids lists the board size per level as {rows, cols}; levels past
// the end reuse the largest grid.
var levelGrids = [][2]int{
	{4, 4},
	{4, 5},
	{4, 6},
	{5, 6},
}

// cardFaces are the symbols printed on matched and revealed cards.
var cardFaces = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ★☺♠♥♦♣")

// Card is one face-down tile.
type Card struct {
	Face    int
	Matched bool
}

// Game is the memory match game state.
type Game struct {
	cfg     core.RuntimeConfig
	rng     *rand.Rand
	machine *engine.Machine

	level      int
	rows, cols int
	cards      []Card
	cursor     int
	flipped    []int // indices of currently revealed, unmatched cards
	revealLeft int   // ticks until a mismatched pair hides again
	moves      int
	score      int
}

// New creates an uninitialized game. Reset must be called before Step.
func New() *Game {
	return &Game{machine: engine.NewMachine()}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "memory" }

// Title returns the display name.
func (g *Game) Title() string { return "Memory Match" }

// Reset initializes the game to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.machine.Reset()
	g.level = 1
	g.score = 0
	g.moves = 0
}

func (g *Game) begin() {
	g.level = 1
	g.score = 0
	g.moves = 0
	g.deal()
	g.machine.Begin()
}

// deal shuffles a fresh deck for the current level.
func (g *Game) deal() {
	grid := levelGrids[len(levelGrids)-1]
	if g.level-1 < len(levelGrids) {
		grid = levelGrids[g.level-1]
	}
	g.rows, g.cols = grid[0], grid[1]

	pairs := g.rows * g.cols / 2
	g.cards = g.cards[:0]
	for i := 0; i < pairs; i++ {
		g.cards = append(g.cards, Card{Face: i}, Card{Face: i})
	}
	g.rng.Shuffle(len(g.cards), func(i, j int) {
		g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	})

	g.cursor = 0
	g.flipped = g.flipped[:0]
	g.revealLeft = 0
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
	// While a mismatched pair is revealed, input waits for the flip-back.
	if g.revealLeft > 0 {
		g.revealLeft--
		if g.revealLeft == 0 {
			g.flipped = g.flipped[:0]
		}
		return
	}

	g.moveCursor(in)

	if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
		g.flip(g.cursor)
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	row, col := g.cursor/g.cols, g.cursor%g.cols
	switch {
	case in.Has(core.ActionUp) && row > 0:
		row--
	case in.Has(core.ActionDown) && row < g.rows-1:
		row++
	case in.Has(core.ActionLeft) && col > 0:
		col--
	case in.Has(core.ActionRight) && col < g.cols-1:
		col++
	}
	g.cursor = row*g.cols + col
}

// flip reveals the card under the cursor and resolves a second reveal.
func (g *Game) flip(idx int) {
	if g.cards[idx].Matched || g.isFlipped(idx) {
		return
	}
	if len(g.flipped) >= 2 {
		return
	}

	g.flipped = append(g.flipped, idx)
	if len(g.flipped) < 2 {
		return
	}

	g.moves++
	a, b := g.flipped[0], g.flipped[1]
	if g.cards[a].Face == g.cards[b].Face {
		g.cards[a].Matched = true
		g.cards[b].Matched = true
		g.score += matchPoints
		g.flipped = g.flipped[:0]

		if g.allMatched() {
			// Level up and keep playing on a bigger board.
			g.score += levelBonus
			g.level++
			g.deal()
		}
		return
	}

	// Mismatch: leave both face up for a moment.
	g.revealLeft = revealTicks
}

func (g *Game) isFlipped(idx int) bool {
	for _, f := range g.flipped {
		if f == idx {
			return true
		}
	}
	return false
}

func (g *Game) allMatched() bool {
	for _, c := range g.cards {
		if !c.Matched {
			return false
		}
	}
	return true
}

// State returns the current game state. GameOver is never set: the session
// ends only when the player quits.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.machine.Over(),
		Paused:   g.machine.Paused(),
	}
}

// Snapshot captures the deterministic state for tests.
type Snapshot struct {
	Level   int
	Rows    int
	Cols    int
	Cursor  int
	Matched int
	Moves   int
	Score   int
	Phase   engine.Phase
}

// Snapshot returns the current deterministic state.
func (g *Game) Snapshot() Snapshot {
	matched := 0
	for _, c := range g.cards {
		if c.Matched {
			matched++
		}
	}
	return Snapshot{
		Level:   g.level,
		Rows:    g.rows,
		Cols:    g.cols,
		Cursor:  g.cursor,
		Matched: matched,
		Moves:   g.moves,
		Score:   g.score,
		Phase:   g.machine.Phase(),
	}
}

// Render draws the card grid into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()

	if g.machine.Phase() == engine.PhaseStart {
		dst.DrawTextCentered(h/2-3, "MEMORY MATCH")
		dst.DrawTextCentered(h/2-1, "Arrows to move, SPACE to flip")
		dst.DrawTextCentered(h/2, "Match all pairs to level up")
		dst.DrawTextCentered(h/2+2, "Press SPACE to start")
		return
	}

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawText(w/2-4, 0, fmt.Sprintf("Level %d", g.level))
	dst.DrawText(w-12, 0, fmt.Sprintf("Moves: %d", g.moves))

	const cellW, cellH = 5, 3
	ox := (w - g.cols*cellW) / 2
	oy := (h - g.rows*cellH) / 2
	if oy < 1 {
		oy = 1
	}

	for i, c := range g.cards {
		row, col := i/g.cols, i%g.cols
		x := ox + col*cellW
		y := oy + row*cellH
		box := core.NewRect(x, y, cellW-1, cellH-1)
		dst.DrawBox(box)

		face := '?'
		color := core.ColorGray
		switch {
		case c.Matched:
			face = cardFaces[c.Face%len(cardFaces)]
			color = core.ColorBrightGreen
		case g.isFlipped(i):
			face = cardFaces[c.Face%len(cardFaces)]
			color = core.ColorBrightYellow
		}
		dst.SetColor(x+cellW/2-1, y+cellH/2-1, face, color)

		if i == g.cursor {
			dst.SetColor(x, y, '┏', core.ColorBrightCyan)
			dst.SetColor(x+cellW-2, y+cellH-2, '┛', core.ColorBrightCyan)
		}
	}
}
