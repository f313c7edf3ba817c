// Package invaders implements the space invaders arcade shooter.
package invaders

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

func init() {
	registry.Register("invaders", func() registry.Game { return New() })
}

const (
	alienRows = 4
	alienCols = 8
	alienW    = 3
	alienGap  = 2

	startLives     = 3
	alienPoints    = 10
	fireCooldown   = 20
	alienFireProb  = 0.02
	baseMarchTicks = 12 // ticks between alien steps at level 1
	dropRows       = 1  // rows the fleet descends at each wall bounce

	playerBulletEvery = 1 // cells per tick
	alienBulletEvery  = 3 // ticks per cell
)

// Alien is one fleet member at a grid offset from the fleet origin.
type Alien struct {
	Col, Row int
	Alive    bool
}

// Bullet is a single-cell projectile. Dir is -1 for player shots moving up,
// +1 for alien shots moving down.
type Bullet struct {
	X, Y int
	Dir  int
}

// Game is the space invaders game state.
type Game struct {
	cfg     core.RuntimeConfig
	rng     *rand.Rand
	machine *engine.Machine

	fieldW, fieldH int
	playerX        int
	aliens         []Alien
	fleetX, fleetY int // fleet origin
	fleetDir       int
	marchTick      int
	bullets        []Bullet
	alienBullets   []Bullet
	alienTick      int
	cooldown       int
	lives          int
	level          int
	score          int
}

// New creates an uninitialized game. Reset must be called before Step.
func New() *Game {
	return &Game{machine: engine.NewMachine()}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "invaders" }

// Title returns the display name.
func (g *Game) Title() string { return "Space Invaders" }

// Reset initializes the game to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.machine.Reset()

	g.fieldW = cfg.ScreenW
	g.fieldH = cfg.ScreenH - 1
	g.score = 0
	g.lives = startLives
	g.level = 1
}

func (g *Game) begin() {
	g.score = 0
	g.lives = startLives
	g.level = 1
	g.playerX = g.fieldW / 2
	g.startWave()
	g.machine.Begin()
}

// startWave rebuilds the fleet and clears all projectiles.
func (g *Game) startWave() {
	g.aliens = g.aliens[:0]
	for row := 0; row < alienRows; row++ {
		for col := 0; col < alienCols; col++ {
			g.aliens = append(g.aliens, Alien{Col: col, Row: row, Alive: true})
		}
	}
	fleetW := alienCols*(alienW+alienGap) - alienGap
	g.fleetX = (g.fieldW - fleetW) / 2
	g.fleetY = 2
	g.fleetDir = 1
	g.marchTick = 0
	g.bullets = g.bullets[:0]
	g.alienBullets = g.alienBullets[:0]
	g.alienTick = 0
	g.cooldown = 0
}

// marchInterval shrinks as levels advance: the fleet speeds up.
func (g *Game) marchInterval() int {
	interval := baseMarchTicks - (g.level - 1)
	if interval < 2 {
		interval = 2
	}
	return interval
}

// alienRect returns an alien's bounds in field cells.
func (g *Game) alienRect(a Alien) core.Rect {
	return core.NewRect(
		g.fleetX+a.Col*(alienW+alienGap),
		g.fleetY+a.Row*2,
		alienW, 1,
	)
}

func (g *Game) playerRect() core.Rect {
	return core.NewRect(g.playerX-1, g.fieldH-1, 3, 1)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.machine.Phase() {
	case engine.PhaseStart:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.begin()
		}
	case engine.PhasePlaying:
		if in.Has(core.ActionPause) {
			g.machine.TogglePause()
			break
		}
		g.stepPlaying(in)
	case engine.PhasePaused:
		if in.Has(core.ActionPause) {
			g.machine.TogglePause()
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepPlaying(in core.InputFrame) {
	// Player movement and fire
	if in.Has(core.ActionLeft) && g.playerX > 1 {
		g.playerX--
	}
	if in.Has(core.ActionRight) && g.playerX < g.fieldW-2 {
		g.playerX++
	}
	if g.cooldown > 0 {
		g.cooldown--
	}
	if in.Has(core.ActionJump) && g.cooldown == 0 {
		g.bullets = append(g.bullets, Bullet{X: g.playerX, Y: g.fieldH - 2, Dir: -1})
		g.cooldown = fireCooldown
	}

	g.moveBullets()
	g.marchFleet()
	g.alienFire()
	g.resolveHits()

	if g.aliveAliens() == 0 {
		g.nextWave()
	}
}

func (g *Game) moveBullets() {
	live := g.bullets[:0]
	for _, b := range g.bullets {
		b.Y -= playerBulletEvery
		if b.Y >= 0 {
			live = append(live, b)
		}
	}
	g.bullets = live

	g.alienTick++
	if g.alienTick%alienBulletEvery == 0 {
		liveA := g.alienBullets[:0]
		for _, b := range g.alienBullets {
			b.Y++
			if b.Y <= g.fieldH {
				liveA = append(liveA, b)
			}
		}
		g.alienBullets = liveA
	}
}

// marchFleet steps the fleet sideways on its cadence, dropping a row and
// reversing when any alien touches a wall. Aliens reaching the player row
// end the game.
func (g *Game) marchFleet() {
	g.marchTick++
	if g.marchTick%g.marchInterval() != 0 {
		return
	}

	g.fleetX += g.fleetDir

	bounce := false
	for _, a := range g.aliens {
		if !a.Alive {
			continue
		}
		r := g.alienRect(a)
		if r.X <= 0 || r.Right() >= g.fieldW {
			bounce = true
			break
		}
	}
	if bounce {
		g.fleetDir = -g.fleetDir
		g.fleetY += dropRows
		for _, a := range g.aliens {
			if a.Alive && g.alienRect(a).Bottom() >= g.fieldH-1 {
				g.machine.End()
				return
			}
		}
	}
}

// alienFire lets a random living alien shoot with a fixed per-tick chance.
func (g *Game) alienFire() {
	if g.rng.Float64() >= alienFireProb {
		return
	}
	living := make([]Alien, 0, len(g.aliens))
	for _, a := range g.aliens {
		if a.Alive {
			living = append(living, a)
		}
	}
	if len(living) == 0 {
		return
	}
	shooter := living[g.rng.Intn(len(living))]
	r := g.alienRect(shooter)
	g.alienBullets = append(g.alienBullets, Bullet{X: r.X + alienW/2, Y: r.Y + 1, Dir: 1})
}

// resolveHits applies bullet/alien and bullet/player collisions.
func (g *Game) resolveHits() {
	// Player bullets vs aliens
	liveBullets := g.bullets[:0]
	for _, b := range g.bullets {
		hit := false
		for i := range g.aliens {
			if !g.aliens[i].Alive {
				continue
			}
			if g.alienRect(g.aliens[i]).Contains(b.X, b.Y) {
				g.aliens[i].Alive = false
				g.score += alienPoints
				hit = true
				break
			}
		}
		if !hit {
			liveBullets = append(liveBullets, b)
		}
	}
	g.bullets = liveBullets

	// Alien bullets vs player
	liveAlien := g.alienBullets[:0]
	for _, b := range g.alienBullets {
		if g.playerRect().Contains(b.X, b.Y) {
			g.lives--
			if g.lives <= 0 {
				g.machine.End()
				return
			}
			continue
		}
		liveAlien = append(liveAlien, b)
	}
	g.alienBullets = liveAlien
}

func (g *Game) aliveAliens() int {
	n := 0
	for _, a := range g.aliens {
		if a.Alive {
			n++
		}
	}
	return n
}

// nextWave advances the level with a faster fleet.
func (g *Game) nextWave() {
	g.level++
	g.startWave()
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
	PlayerX  int
	FleetX   int
	FleetY   int
	FleetDir int
	Alive    int
	Lives    int
	Level    int
	Score    int
	Phase    engine.Phase
}

// Snapshot returns the current deterministic state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		PlayerX:  g.playerX,
		FleetX:   g.fleetX,
		FleetY:   g.fleetY,
		FleetDir: g.fleetDir,
		Alive:    g.aliveAliens(),
		Lives:    g.lives,
		Level:    g.level,
		Score:    g.score,
		Phase:    g.machine.Phase(),
	}
}

var rowColors = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightYellow,
}

// Render draws the battlefield into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	h := dst.Height()

	if g.machine.Phase() == engine.PhaseStart {
		dst.DrawTextCentered(h/2-3, "SPACE INVADERS")
		dst.DrawTextCentered(h/2-1, "A/D to move, SPACE to shoot, P to pause")
		dst.DrawTextCentered(h/2+1, "Press SPACE to start")
		return
	}

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawText(g.fieldW/2-4, 0, fmt.Sprintf("Lives: %d", g.lives))
	dst.DrawText(g.fieldW-10, 0, fmt.Sprintf("Level: %d", g.level))

	for _, a := range g.aliens {
		if !a.Alive {
			continue
		}
		r := g.alienRect(a)
		c := rowColors[a.Row%len(rowColors)]
		for x := 0; x < r.W; x++ {
			dst.SetColor(r.X+x, r.Y+1, '▙', c)
		}
	}

	for _, b := range g.bullets {
		dst.SetColor(b.X, b.Y+1, '|', core.ColorBrightWhite)
	}
	for _, b := range g.alienBullets {
		dst.SetColor(b.X, b.Y+1, '!', core.ColorBrightRed)
	}

	pr := g.playerRect()
	for x := 0; x < pr.W; x++ {
		dst.SetColor(pr.X+x, pr.Y+1, '▲', core.ColorBrightGreen)
	}

	if g.machine.Paused() {
		renderOverlay(dst, "PAUSED", "Press P to resume")
	} else if g.machine.Over() {
		renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	}
}

// renderOverlay draws a centered message box over the battlefield.
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
