package t2048

import (
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
)

func TestSlideRowMerge(t *testing.T) {
	tests := []struct {
		name       string
		row        [Size]int
		want       [Size]int
		wantPoints int
	}{
		{"empty", [Size]int{0, 0, 0, 0}, [Size]int{0, 0, 0, 0}, 0},
		{"compact only", [Size]int{0, 2, 0, 4}, [Size]int{2, 4, 0, 0}, 0},
		{"simple merge", [Size]int{2, 2, 0, 0}, [Size]int{4, 0, 0, 0}, 4},
		{"merge across gap", [Size]int{2, 0, 0, 2}, [Size]int{4, 0, 0, 0}, 4},
		{"merged tile is locked", [Size]int{2, 2, 4, 0}, [Size]int{4, 4, 0, 0}, 4},
		{"two pairs", [Size]int{4, 4, 4, 4}, [Size]int{8, 8, 0, 0}, 16},
		{"one merge per tile", [Size]int{2, 2, 2, 0}, [Size]int{4, 2, 0, 0}, 4},
		{"no merge", [Size]int{2, 4, 2, 4}, [Size]int{2, 4, 2, 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, points := slideRow(tt.row)
			if got != tt.want {
				t.Errorf("slideRow(%v) = %v, want %v", tt.row, got, tt.want)
			}
			if points != tt.wantPoints {
				t.Errorf("slideRow(%v) points = %d, want %d", tt.row, points, tt.wantPoints)
			}
		})
	}
}

func TestSlideDirections(t *testing.T) {
	b := Board{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{4, 0, 4, 0},
		{0, 0, 0, 2},
	}

	left, points, moved := b.SlideLeft()
	if !moved || points != 12 {
		t.Errorf("SlideLeft moved=%v points=%d, want true 12", moved, points)
	}
	wantLeft := Board{
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{8, 0, 0, 0},
		{2, 0, 0, 0},
	}
	if left != wantLeft {
		t.Errorf("SlideLeft = %v, want %v", left, wantLeft)
	}

	right, _, _ := b.SlideRight()
	wantRight := Board{
		{0, 0, 0, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 8},
		{0, 0, 0, 2},
	}
	if right != wantRight {
		t.Errorf("SlideRight = %v, want %v", right, wantRight)
	}

	up, _, _ := b.SlideUp()
	wantUp := Board{
		{2, 2, 4, 2},
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if up != wantUp {
		t.Errorf("SlideUp = %v, want %v", up, wantUp)
	}

	down, _, _ := b.SlideDown()
	wantDown := Board{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 0, 0, 0},
		{4, 2, 4, 2},
	}
	if down != wantDown {
		t.Errorf("SlideDown = %v, want %v", down, wantDown)
	}
}

func TestSlideConservesSum(t *testing.T) {
	b := Board{
		{2, 2, 4, 8},
		{0, 16, 16, 2},
		{4, 4, 4, 4},
		{2, 0, 0, 2},
	}
	sum := b.Sum()

	slides := []struct {
		name string
		fn   func(Board) (Board, int, bool)
	}{
		{"left", Board.SlideLeft},
		{"right", Board.SlideRight},
		{"up", Board.SlideUp},
		{"down", Board.SlideDown},
	}
	for _, tt := range slides {
		got, _, _ := tt.fn(b)
		if got.Sum() != sum {
			t.Errorf("slide %s changed tile sum: %d -> %d", tt.name, sum, got.Sum())
		}
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	start(t, g)

	// Force a board where sliding left changes nothing.
	g.board = Board{
		{2, 0, 0, 0},
		{4, 0, 0, 0},
		{2, 0, 0, 0},
		{4, 0, 0, 0},
	}
	before := g.board

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)

	if g.board != before {
		t.Errorf("rejected move changed the board: %v -> %v", before, g.board)
	}
	if g.score != 0 {
		t.Errorf("rejected move changed score: %d", g.score)
	}
}

func TestGameOverWhenStuck(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	start(t, g)

	// One move left: merging the top-left pair fills the last gap.
	g.board = Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 8},
	}
	g.board[0][1] = 2 // top row: 2,2,... merge available

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	res := g.Step(in)

	// Game over exactly when the post-spawn board has no legal move.
	if g.board.HasMove() == res.State.GameOver {
		t.Errorf("GameOver=%v but HasMove=%v", res.State.GameOver, g.board.HasMove())
	}
}

func TestDeterministicSpawn(t *testing.T) {
	run := func() Snapshot {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345})
		start(t, g)
		for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
			in := core.NewInputFrame()
			in.Set(a)
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed and inputs produced different states:\n%+v\n%+v", a, b)
	}
}

func TestStartScreenIgnoresSlides(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)

	if g.Snapshot().Phase != engine.PhaseStart {
		t.Errorf("phase = %v, want PhaseStart before space is pressed", g.Snapshot().Phase)
	}

	start(t, g)
	if g.Snapshot().Phase != engine.PhasePlaying {
		t.Errorf("phase = %v, want PhasePlaying after start", g.Snapshot().Phase)
	}
	if len(g.board.EmptyCells()) != Size*Size-2 {
		t.Errorf("start board has %d empty cells, want %d", len(g.board.EmptyCells()), Size*Size-2)
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	start(t, g)

	s := core.NewScreen(80, 24)
	g.Render(s)
	if !containsString(s, "Score:") {
		t.Error("render output missing score line")
	}
}

// start presses space to leave the start screen.
func start(t *testing.T, g *Game) {
	t.Helper()
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(in)
}

func containsString(s *core.Screen, sub string) bool {
	for y := 0; y < s.Height(); y++ {
		row := s.Row(y)
		for i := 0; i+len(sub) <= len(row); i++ {
			if row[i:i+len(sub)] == sub {
				return true
			}
		}
	}
	return false
}
