// Package flappy implements the flappy bird game.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

func init() {
	registry.Register("flappy", func() registry.Game { return New() })
}

var (
	configPath string
	preset     string
)

// SetConfigPath overrides the config file location for the next Reset.
func SetConfigPath(p string) { configPath = p }

// SetDifficultyPreset selects a named difficulty preset for the next Reset.
func SetDifficultyPreset(name string) { preset = name }

// playerX is the fixed column the bird flies in.
const playerX = 12

// Game is the flappy bird game state.
type Game struct {
	cfg     core.RuntimeConfig
	gameCfg *config.FlappyConfig
	machine *engine.Machine

	playerY  float64
	velocity float64
	pipes    *pipeField
	ticks    int
	score    int
}

// New creates an uninitialized game. Reset must be called before Step.
func New() *Game {
	return &Game{machine: engine.NewMachine()}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "flappy" }

// Title returns the display name.
func (g *Game) Title() string { return "Flappy Bird" }

// Reset initializes the game to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.gameCfg = config.LoadFlappyConfig(configPath)
	if preset != "" {
		config.ApplyFlappyPreset(g.gameCfg, config.DifficultyPreset(preset))
	}
	g.machine.Reset()

	diff := config.NewDifficultyManager(g.gameCfg.Difficulty)
	g.pipes = newPipeField(cfg.Seed, cfg.ScreenW, cfg.ScreenH-1, g.gameCfg, diff)
	g.playerY = float64(cfg.ScreenH) / 2
	g.velocity = 0
	g.ticks = 0
	g.score = 0
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.machine.Phase() {
	case engine.PhaseStart:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.machine.Begin()
			g.velocity = g.gameCfg.Physics.JumpImpulse
		}
	case engine.PhasePlaying:
		g.stepPlaying(in)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepPlaying(in core.InputFrame) {
	g.ticks++

	if in.Has(core.ActionJump) {
		g.velocity = g.gameCfg.Physics.JumpImpulse
	}
	g.velocity += g.gameCfg.Physics.Gravity
	if g.velocity > g.gameCfg.Physics.MaxFallSpeed {
		g.velocity = g.gameCfg.Physics.MaxFallSpeed
	}
	g.playerY += g.velocity

	// Ceiling is soft; the ground is deadly.
	if g.playerY < 0 {
		g.playerY = 0
		g.velocity = 0
	}
	fieldH := g.cfg.ScreenH - 1
	if g.playerY >= float64(fieldH) {
		g.machine.End()
		return
	}

	g.score += g.pipes.update(playerX, g.score, g.ticks)

	if g.pipes.collides(g.playerRect()) {
		g.machine.End()
	}
}

func (g *Game) playerRect() core.Rect {
	return core.NewRect(playerX, int(g.playerY), 1, 1)
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
	PlayerY  float64
	Velocity float64
	Pipes    int
	Score    int
	Ticks    int
	Phase    engine.Phase
}

// Snapshot returns the current deterministic state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		PlayerY:  g.playerY,
		Velocity: g.velocity,
		Pipes:    len(g.pipes.pipes),
		Score:    g.score,
		Ticks:    g.ticks,
		Phase:    g.machine.Phase(),
	}
}

// Render draws the sky into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()

	if g.machine.Phase() == engine.PhaseStart {
		dst.DrawTextCentered(h/2-3, "FLAPPY BIRD")
		dst.DrawTextCentered(h/2-1, "SPACE to flap, squeeze through the pipes")
		dst.DrawTextCentered(h/2+1, "Press SPACE to start")
		return
	}

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))

	pipeW := g.gameCfg.Obstacles.PipeWidth
	fieldH := g.cfg.ScreenH - 1
	for _, p := range g.pipes.pipes {
		for x := 0; x < pipeW; x++ {
			col := int(p.X) + x
			if col < 0 || col >= w {
				continue
			}
			for y := 0; y < p.GapY; y++ {
				dst.SetColor(col, y+1, '█', core.ColorBrightGreen)
			}
			for y := p.GapY + p.GapHeight; y < fieldH; y++ {
				dst.SetColor(col, y+1, '█', core.ColorBrightGreen)
			}
		}
	}

	dst.SetColor(playerX, int(g.playerY)+1, '▶', core.ColorBrightYellow)

	if g.machine.Over() {
		renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	}
}

// renderOverlay draws a centered message box over the field.
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
