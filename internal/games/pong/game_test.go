package pong

import (
	"math"
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

func TestCenterHitHasNoSpin(t *testing.T) {
	g := newStarted(t, 1)

	// Ball dead center on the player paddle.
	g.playerY = 8
	g.ballY = g.playerY + paddleH/2.0
	g.ballVX = -ballSpeedX
	g.ballVY = 0.7

	g.deflect(g.playerY)

	if g.ballVY != 0 {
		t.Errorf("center hit vertical velocity = %v, want 0", g.ballVY)
	}
	if g.ballVX <= 0 {
		t.Errorf("horizontal velocity = %v, want reflected to positive", g.ballVX)
	}
}

func TestEdgeHitDeflects(t *testing.T) {
	g := newStarted(t, 1)

	g.playerY = 8
	g.ballY = g.playerY // top edge, hitPos = 0
	g.ballVX = -ballSpeedX

	g.deflect(g.playerY)

	if g.ballVY >= 0 {
		t.Errorf("top edge hit vertical velocity = %v, want negative (upward)", g.ballVY)
	}
}

func TestSpeedClamped(t *testing.T) {
	g := newStarted(t, 1)
	g.playerY = 8
	g.ballY = g.playerY + paddleH/2.0

	// Bounce repeatedly: speed grows but never exceeds the clamp.
	g.ballVX = -ballSpeedX
	for i := 0; i < 50; i++ {
		g.deflect(g.playerY)
		if math.Abs(g.ballVX) > maxSpeedX {
			t.Fatalf("bounce %d: |vx| = %v exceeds max %v", i, math.Abs(g.ballVX), maxSpeedX)
		}
		g.ballVX = -math.Abs(g.ballVX)
	}
	if math.Abs(g.ballVX) != maxSpeedX {
		t.Errorf("repeated bounces |vx| = %v, want saturated at %v", math.Abs(g.ballVX), maxSpeedX)
	}
}

func TestMissedBallScoresCPU(t *testing.T) {
	g := newStarted(t, 1)

	// Put the ball about to exit on the player's side, paddle far away.
	g.playerY = 0
	g.ballX = 0.2
	g.ballY = g.fieldH - 2
	g.ballVX = -maxSpeedX
	g.ballVY = 0

	g.Step(core.NewInputFrame())

	if g.cpuScore != 1 {
		t.Errorf("cpu score = %d, want 1 after a miss", g.cpuScore)
	}
	// Serve resets the ball to center.
	if g.ballX != g.fieldW/2 {
		t.Errorf("ball not re-served: x = %v", g.ballX)
	}
}

func TestWinEndsGame(t *testing.T) {
	g := newStarted(t, 1)

	g.playerScore = winScore - 1
	g.afterGoal(1)
	if g.machine.Over() {
		t.Fatal("game ended before the win score was reached")
	}

	g.playerScore = winScore
	g.afterGoal(1)
	if !g.machine.Over() {
		t.Error("reaching the win score should end the game")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
		in := core.NewInputFrame()
		in.Set(core.ActionJump)
		g.Step(in)
		for i := 0; i < 300; i++ {
			frame := core.NewInputFrame()
			if i%3 == 0 {
				frame.Set(core.ActionUp)
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

func TestRenderShowsScore(t *testing.T) {
	g := newStarted(t, 1)
	s := core.NewScreen(80, 24)
	g.Render(s)

	found := false
	row := s.Row(0)
	for i := 0; i+1 < len(row); i++ {
		if row[i] == ':' {
			found = true
		}
	}
	if !found {
		t.Error("render output missing score line")
	}
}
