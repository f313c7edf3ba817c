package invaders

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

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestFleetSize(t *testing.T) {
	g := newStarted(t, 1)
	if len(g.aliens) != alienRows*alienCols {
		t.Errorf("fleet size = %d, want %d", len(g.aliens), alienRows*alienCols)
	}
	if g.aliveAliens() != alienRows*alienCols {
		t.Errorf("alive = %d, want all", g.aliveAliens())
	}
}

func TestFireCooldown(t *testing.T) {
	g := newStarted(t, 1)

	step(g, core.ActionJump)
	if len(g.bullets) != 1 {
		t.Fatalf("bullets = %d, want 1 after firing", len(g.bullets))
	}

	// Held fire during the cooldown adds nothing.
	step(g, core.ActionJump)
	step(g, core.ActionJump)
	if g.cooldown == 0 {
		t.Error("cooldown expired too early")
	}

	// After the cooldown lapses a new shot works.
	for g.cooldown > 0 {
		step(g)
	}
	before := len(g.bullets)
	step(g, core.ActionJump)
	if len(g.bullets) != before+1 {
		t.Error("fire after cooldown should spawn a bullet")
	}
}

func TestBulletKillsAlien(t *testing.T) {
	g := newStarted(t, 1)

	target := &g.aliens[0]
	r := g.alienRect(*target)
	g.bullets = append(g.bullets, Bullet{X: r.X + 1, Y: r.Y, Dir: -1})

	g.resolveHits()

	if target.Alive {
		t.Error("alien hit by a bullet should die")
	}
	if g.score != alienPoints {
		t.Errorf("score = %d, want %d", g.score, alienPoints)
	}
	if len(g.bullets) != 0 {
		t.Error("bullet should be consumed by the hit")
	}
}

func TestWallBounceDropsFleet(t *testing.T) {
	g := newStarted(t, 1)
	y0 := g.fleetY
	dir0 := g.fleetDir

	// March until the fleet touches a wall and reverses.
	for i := 0; i < 2000; i++ {
		g.marchFleet()
		if g.fleetDir != dir0 {
			break
		}
	}
	if g.fleetDir == dir0 {
		t.Fatal("fleet never bounced off a wall")
	}
	if g.fleetY != y0+dropRows {
		t.Errorf("fleet y = %d, want %d after the bounce", g.fleetY, y0+dropRows)
	}
}

func TestAlienHitCostsLife(t *testing.T) {
	g := newStarted(t, 1)
	lives := g.lives

	g.alienBullets = append(g.alienBullets, Bullet{X: g.playerX, Y: g.fieldH - 1, Dir: 1})
	g.resolveHits()

	if g.lives != lives-1 {
		t.Errorf("lives = %d, want %d", g.lives, lives-1)
	}
	if g.machine.Over() {
		t.Error("game should continue while lives remain")
	}
}

func TestZeroLivesEndsGame(t *testing.T) {
	g := newStarted(t, 1)
	g.lives = 1

	g.alienBullets = append(g.alienBullets, Bullet{X: g.playerX, Y: g.fieldH - 1, Dir: 1})
	g.resolveHits()

	if !g.machine.Over() {
		t.Error("losing the last life should end the game")
	}
}

func TestWaveClearAdvancesLevel(t *testing.T) {
	g := newStarted(t, 1)
	interval := g.marchInterval()

	for i := range g.aliens {
		g.aliens[i].Alive = false
	}
	step(g)

	if g.level != 2 {
		t.Errorf("level = %d, want 2 after clearing the wave", g.level)
	}
	if g.aliveAliens() != alienRows*alienCols {
		t.Error("next wave should respawn the full fleet")
	}
	if g.marchInterval() >= interval {
		t.Errorf("march interval = %d, want faster than %d", g.marchInterval(), interval)
	}
}

func TestPauseFreezesFleet(t *testing.T) {
	g := newStarted(t, 1)

	step(g, core.ActionPause)
	if !g.machine.Paused() {
		t.Fatal("pause action should pause the game")
	}

	before := g.Snapshot()
	step(g)
	if g.Snapshot() != before {
		t.Error("state changed while paused")
	}

	step(g, core.ActionPause)
	if !g.machine.Playing() {
		t.Error("second pause action should resume")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 13})
		in := core.NewInputFrame()
		in.Set(core.ActionJump)
		g.Step(in)
		for i := 0; i < 600; i++ {
			frame := core.NewInputFrame()
			if i%4 == 0 {
				frame.Set(core.ActionLeft)
			}
			if i%30 == 0 {
				frame.Set(core.ActionJump)
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
