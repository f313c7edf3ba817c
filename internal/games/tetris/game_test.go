package tetris

import (
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
)

func newStarted(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(in)
	if g.Snapshot().Phase != engine.PhasePlaying {
		t.Fatal("game did not start")
	}
	return g
}

func TestRotationIsSpeculative(t *testing.T) {
	g := newStarted(t, 1)

	// An I piece lying flat cannot rotate upright when a settled cell
	// sits in the column the rotation would occupy.
	g.board = [WellH][WellW]int8{}
	g.current = Piece{Kind: 0, Shape: tetrominoes[0].Clone(), X: 0, Y: 10}
	g.board[13][2] = 1

	before := g.current.Clone()
	if g.tryRotate() {
		t.Fatal("rotation into occupied cells should be rejected")
	}

	if g.current.X != before.X || g.current.Y != before.Y {
		t.Errorf("blocked rotation moved the piece: (%d,%d) -> (%d,%d)",
			before.X, before.Y, g.current.X, g.current.Y)
	}
	if !g.current.Shape.Equal(before.Shape) {
		t.Error("blocked rotation altered the shape")
	}
}

func TestValidRotationCommits(t *testing.T) {
	g := newStarted(t, 1)
	g.board = [WellH][WellW]int8{}
	g.current = Piece{Kind: 2, Shape: tetrominoes[2].Clone(), X: 4, Y: 5}

	before := g.current.Clone()
	if !g.tryRotate() {
		t.Fatal("rotation in open space should succeed")
	}
	if g.current.Shape.Equal(before.Shape) {
		t.Error("successful rotation left the shape unchanged")
	}
}

func TestWallMoveRejected(t *testing.T) {
	g := newStarted(t, 1)
	g.board = [WellH][WellW]int8{}
	g.current = Piece{Kind: 1, Shape: tetrominoes[1].Clone(), X: 0, Y: 5}

	before := g.current.Clone()
	if g.tryMove(-1, 0) {
		t.Fatal("move through the left wall should be rejected")
	}
	if g.current.X != before.X || g.current.Y != before.Y {
		t.Errorf("rejected move changed position: (%d,%d) -> (%d,%d)",
			before.X, before.Y, g.current.X, g.current.Y)
	}
	if !g.current.Shape.Equal(before.Shape) {
		t.Error("rejected move altered the shape")
	}
}

func TestLineClearScoring(t *testing.T) {
	g := newStarted(t, 1)
	g.board = [WellH][WellW]int8{}
	g.score = 0
	g.lines = 0
	g.level = 1

	// Fill the bottom row except where the O piece will land.
	for x := 0; x < WellW; x++ {
		if x == 4 || x == 5 {
			continue
		}
		g.board[WellH-1][x] = 1
		g.board[WellH-2][x] = 1
	}
	g.current = Piece{Kind: 1, Shape: tetrominoes[1].Clone(), X: 4, Y: WellH - 2}

	g.lock()

	if g.lines != 2 {
		t.Errorf("lines = %d, want 2", g.lines)
	}
	if g.score != 2*100*1 {
		t.Errorf("score = %d, want 200", g.score)
	}
	// Cleared rows collapse; the bottom row is now empty.
	for x := 0; x < WellW; x++ {
		if g.board[WellH-1][x] != 0 {
			t.Fatalf("bottom row cell %d not cleared", x)
		}
	}
}

func TestLevelProgression(t *testing.T) {
	g := newStarted(t, 1)
	g.lines = linesPerLevel - 1
	g.level = 1
	g.board = [WellH][WellW]int8{}

	for x := 0; x < WellW; x++ {
		if x == 4 || x == 5 {
			continue
		}
		g.board[WellH-1][x] = 1
	}
	// O piece fills the gap in the bottom row only.
	g.current = Piece{Kind: 1, Shape: tetrominoes[1].Clone(), X: 4, Y: WellH - 2}
	g.lock()

	if g.level != 2 {
		t.Errorf("level = %d, want 2 after %d lines", g.level, linesPerLevel)
	}
	if g.dropInterval() != baseDropTicks-dropTicksStep {
		t.Errorf("drop interval = %d, want %d", g.dropInterval(), baseDropTicks-dropTicksStep)
	}
}

func TestDropIntervalFloor(t *testing.T) {
	g := newStarted(t, 1)
	g.level = 100
	if g.dropInterval() != minDropTicks {
		t.Errorf("drop interval = %d, want floor %d", g.dropInterval(), minDropTicks)
	}
}

func TestTopOutEndsGame(t *testing.T) {
	g := newStarted(t, 1)

	// Fill the spawn rows; the next spawn must collide.
	for y := 0; y < 4; y++ {
		for x := 0; x < WellW; x++ {
			g.board[y][x] = 1
		}
	}
	g.spawn()

	if !g.machine.Over() {
		t.Error("spawn into occupied cells should end the game")
	}
}

func TestSoftDropDescends(t *testing.T) {
	g := newStarted(t, 1)
	y0 := g.current.Y

	in := core.NewInputFrame()
	in.Set(core.ActionDown)
	g.Step(in)

	if g.current.Y != y0+1 {
		t.Errorf("piece y = %d, want %d after soft drop", g.current.Y, y0+1)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 77})
		in := core.NewInputFrame()
		in.Set(core.ActionJump)
		g.Step(in)
		for i := 0; i < 500; i++ {
			frame := core.NewInputFrame()
			switch i % 7 {
			case 0:
				frame.Set(core.ActionLeft)
			case 3:
				frame.Set(core.ActionUp)
			case 5:
				frame.Set(core.ActionDown)
			}
			g.Step(frame)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed and inputs produced different states:\n%+v\n%+v", a, b)
	}
}
