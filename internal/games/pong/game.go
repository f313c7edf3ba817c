// Package pong implements pong against a CPU paddle.
package pong

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

func init() {
	registry.Register("pong", func() registry.Game { return New() })
}

const (
	winScore    = 5
	paddleH     = 5
	paddleSpeed = 1.0
	ballSpeedX  = 0.5
	maxSpeedX   = 1.0
	speedupHit  = 1.05
	// spinFactor maps the hit offset (-0.5..0.5) to vertical velocity.
	// A center hit yields zero vertical deflection.
	spinFactor = 1.2
	cpuDeadzone = 1.0
	cpuSpeed    = 0.45
)

// Game is the pong game state. Positions and velocities are float64 cells;
// rendering rounds to the grid.
type Game struct {
	cfg     core.RuntimeConfig
	rng     *rand.Rand
	machine *engine.Machine

	fieldW, fieldH float64
	playerY        float64 // left paddle top
	cpuY           float64 // right paddle top
	ballX, ballY   float64
	ballVX, ballVY float64
	playerScore    int
	cpuScore       int
}

// New creates an uninitialized game. Reset must be called before Step.
func New() *Game {
	return &Game{machine: engine.NewMachine()}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "pong" }

// Title returns the display name.
func (g *Game) Title() string { return "Pong" }

// Reset initializes the game to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.machine.Reset()

	g.fieldW = float64(cfg.ScreenW)
	g.fieldH = float64(cfg.ScreenH - 2) // score line plus border
	g.playerScore = 0
	g.cpuScore = 0
	g.centerPaddles()
	g.serve(1)
}

func (g *Game) centerPaddles() {
	g.playerY = (g.fieldH - paddleH) / 2
	g.cpuY = (g.fieldH - paddleH) / 2
}

// serve places the ball at center moving toward dir (+1 right, -1 left).
func (g *Game) serve(dir float64) {
	g.ballX = g.fieldW / 2
	g.ballY = g.fieldH / 2
	g.ballVX = ballSpeedX * dir
	g.ballVY = spinFactor * 0.4
	if g.rng.Intn(2) == 0 {
		g.ballVY = -g.ballVY
	}
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.machine.Phase() {
	case engine.PhaseStart:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.machine.Begin()
		}
	case engine.PhasePlaying:
		g.stepPlaying(in)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepPlaying(in core.InputFrame) {
	// Player paddle
	if in.Has(core.ActionUp) {
		g.playerY -= paddleSpeed
	}
	if in.Has(core.ActionDown) {
		g.playerY += paddleSpeed
	}
	g.playerY = core.ClampF(g.playerY, 0, g.fieldH-paddleH)

	// CPU paddle follows the ball with a deadzone.
	cpuCenter := g.cpuY + paddleH/2.0
	if cpuCenter < g.ballY-cpuDeadzone {
		g.cpuY += cpuSpeed
	} else if cpuCenter > g.ballY+cpuDeadzone {
		g.cpuY -= cpuSpeed
	}
	g.cpuY = core.ClampF(g.cpuY, 0, g.fieldH-paddleH)

	// Ball
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	// Top and bottom walls
	if g.ballY <= 0 {
		g.ballY = 0
		g.ballVY = -g.ballVY
	} else if g.ballY >= g.fieldH-1 {
		g.ballY = g.fieldH - 1
		g.ballVY = -g.ballVY
	}

	// Paddles
	if g.ballVX < 0 && g.ballX <= 1 && g.ballX >= 0 {
		g.deflect(g.playerY)
	} else if g.ballVX > 0 && g.ballX >= g.fieldW-2 && g.ballX <= g.fieldW-1 {
		g.deflect(g.cpuY)
	}

	// Goals
	if g.ballX < 0 {
		g.cpuScore++
		g.afterGoal(-1)
	} else if g.ballX > g.fieldW-1 {
		g.playerScore++
		g.afterGoal(1)
	}
}

// deflect bounces the ball off a paddle if it overlaps, applying spin from
// the hit offset and a clamped speedup.
func (g *Game) deflect(paddleY float64) {
	if g.ballY < paddleY || g.ballY > paddleY+paddleH {
		return
	}
	hitPos := (g.ballY - paddleY) / paddleH
	g.ballVY = (hitPos - 0.5) * 2 * spinFactor

	g.ballVX = -g.ballVX * speedupHit
	g.ballVX = core.ClampF(g.ballVX, -maxSpeedX, maxSpeedX)
}

// afterGoal ends the match at the win score or serves toward the scorer's
// opponent.
func (g *Game) afterGoal(dir float64) {
	if g.playerScore >= winScore || g.cpuScore >= winScore {
		g.machine.End()
		return
	}
	g.serve(-dir)
}

// State returns the current game state. Score is the player's points.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.playerScore,
		GameOver: g.machine.Over(),
		Paused:   g.machine.Paused(),
	}
}

// Snapshot captures the deterministic state for tests.
type Snapshot struct {
	BallX, BallY   float64
	BallVX, BallVY float64
	PlayerY, CPUY  float64
	PlayerScore    int
	CPUScore       int
	Phase          engine.Phase
}

// Snapshot returns the current deterministic state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		BallX: g.ballX, BallY: g.ballY,
		BallVX: g.ballVX, BallVY: g.ballVY,
		PlayerY: g.playerY, CPUY: g.cpuY,
		PlayerScore: g.playerScore, CPUScore: g.cpuScore,
		Phase: g.machine.Phase(),
	}
}

// Render draws the court into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()

	if g.machine.Phase() == engine.PhaseStart {
		dst.DrawTextCentered(h/2-3, "PONG")
		dst.DrawTextCentered(h/2-1, "W/S or arrows to move, first to 5 wins")
		dst.DrawTextCentered(h/2+1, "Press SPACE to start")
		return
	}

	dst.DrawTextCentered(0, fmt.Sprintf("%d : %d", g.playerScore, g.cpuScore))

	// Dashed center line
	for y := 1; y < h; y += 2 {
		dst.SetColor(w/2, y, '┊', core.ColorGray)
	}

	py := int(g.playerY) + 1
	cy := int(g.cpuY) + 1
	for i := 0; i < paddleH; i++ {
		dst.SetColor(0, py+i, '█', core.ColorBrightGreen)
		dst.SetColor(w-1, cy+i, '█', core.ColorBrightMagenta)
	}
	dst.SetColor(int(g.ballX), int(g.ballY)+1, '●', core.ColorBrightCyan)

	if g.machine.Over() {
		result := "YOU WIN!"
		if g.cpuScore > g.playerScore {
			result = "CPU WINS"
		}
		renderOverlay(dst, result,
			fmt.Sprintf("Final: %d - %d", g.playerScore, g.cpuScore),
			"Press R to restart")
	}
}

// renderOverlay draws a centered message box over the court.
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
