package flappy

import (
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Pipe is one vertical obstacle pair with a passable gap.
type Pipe struct {
	X         float64 // left edge
	GapY      int     // top of the gap
	GapHeight int
	Passed    bool
}

// TopRect returns the collision bounds of the upper pipe segment.
func (p Pipe) TopRect(pipeWidth int) core.Rect {
	return core.NewRect(int(p.X), 0, pipeWidth, p.GapY)
}

// BottomRect returns the collision bounds of the lower pipe segment.
func (p Pipe) BottomRect(pipeWidth, screenH int) core.Rect {
	bottom := p.GapY + p.GapHeight
	return core.NewRect(int(p.X), bottom, pipeWidth, screenH-bottom)
}

// pipeField spawns, scrolls, and retires pipes.
type pipeField struct {
	pipes      []Pipe
	rng        *rand.Rand
	screenW    int
	screenH    int
	cfg        *config.FlappyConfig
	difficulty *config.DifficultyManager
}

func newPipeField(seed int64, screenW, screenH int, cfg *config.FlappyConfig, diff *config.DifficultyManager) *pipeField {
	return &pipeField{
		pipes:      make([]Pipe, 0, 8),
		rng:        rand.New(rand.NewSource(seed)),
		screenW:    screenW,
		screenH:    screenH,
		cfg:        cfg,
		difficulty: diff,
	}
}

// update scrolls pipes left and spawns replacements.
// Returns how many pipes the player passed this tick.
func (f *pipeField) update(playerX, score, ticks int) int {
	speed := f.difficulty.Speed(f.cfg.Physics.BaseSpeed, score, ticks)
	for i := range f.pipes {
		f.pipes[i].X -= speed
	}

	pipeW := f.cfg.Obstacles.PipeWidth
	passed := 0
	for i := range f.pipes {
		if !f.pipes[i].Passed && int(f.pipes[i].X)+pipeW < playerX {
			f.pipes[i].Passed = true
			passed++
		}
	}

	live := f.pipes[:0]
	for _, p := range f.pipes {
		if int(p.X)+pipeW > 0 {
			live = append(live, p)
		}
	}
	f.pipes = live

	spacing := f.difficulty.Spacing(f.cfg.Obstacles.PipeSpacing, score, ticks)
	if len(f.pipes) == 0 || f.pipes[len(f.pipes)-1].X < float64(f.screenW-spacing) {
		f.spawn(score, ticks)
	}
	return passed
}

// spawn appends a pipe at the right edge with a randomized gap.
func (f *pipeField) spawn(score, ticks int) {
	minGap := f.cfg.Obstacles.MinGapSize
	gap := f.difficulty.GapSize(f.cfg.Obstacles.MaxGapSize, score, ticks)
	if gap < minGap {
		gap = minGap
	}
	if gap > minGap {
		gap = minGap + f.rng.Intn(gap-minGap+1)
	}

	minY := f.cfg.Obstacles.TopMargin
	maxY := f.screenH - f.cfg.Obstacles.BottomMargin - gap
	if maxY < minY {
		maxY = minY
	}
	gapY := minY
	if maxY > minY {
		gapY = minY + f.rng.Intn(maxY-minY+1)
	}

	f.pipes = append(f.pipes, Pipe{X: float64(f.screenW), GapY: gapY, GapHeight: gap})
}

// collides tests the player bounds against every pipe segment.
func (f *pipeField) collides(player core.Rect) bool {
	pipeW := f.cfg.Obstacles.PipeWidth
	for _, p := range f.pipes {
		if player.Intersects(p.TopRect(pipeW)) || player.Intersects(p.BottomRect(pipeW, f.screenH)) {
			return true
		}
	}
	return false
}
