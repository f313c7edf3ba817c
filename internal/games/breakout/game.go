// Package breakout implements the brick-breaking game.
package breakout

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

func init() {
	registry.Register("breakout", func() registry.Game { return New() })
}

var (
	configPath string
	preset     string
)

// SetConfigPath overrides the config file location for the next Reset.
func SetConfigPath(p string) { configPath = p }

// SetDifficultyPreset selects a named difficulty preset for the next Reset.
func SetDifficultyPreset(name string) { preset = name }

// paddleSpeed is the paddle movement per tick while a key is held.
const paddleSpeed = Fixed(1 * Scale)

// Game is the breakout game state.
type Game struct {
	cfg     core.RuntimeConfig
	gameCfg *config.BreakoutConfig
	rng     *rand.Rand
	machine *engine.Machine

	fieldW, fieldH int
	paddle         Paddle
	ball           Ball
	bricks         []Brick
	lives          int
	score          int
	won            bool
}

// New creates an uninitialized game. Reset must be called before Step.
func New() *Game {
	return &Game{machine: engine.NewMachine()}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "breakout" }

// Title returns the display name.
func (g *Game) Title() string { return "Breakout" }

// Reset initializes the game to the start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.gameCfg = config.LoadBreakoutConfig(configPath)
	if preset != "" {
		config.ApplyBreakoutPreset(g.gameCfg, config.DifficultyPreset(preset))
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.machine.Reset()

	g.fieldW = cfg.ScreenW
	g.fieldH = cfg.ScreenH - 1 // top row is the status line
	g.score = 0
	g.won = false
	g.lives = g.gameCfg.Lives
	g.layoutBricks()
	g.resetBallAndPaddle()
}

// layoutBricks builds the brick wall from the configured grid. Brick width
// adapts to the screen; point values grow toward the top row.
func (g *Game) layoutBricks() {
	rows := g.gameCfg.Bricks.Rows
	cols := g.gameCfg.Bricks.Cols
	brickW := (g.fieldW - 2) / cols
	offsetX := (g.fieldW - brickW*cols) / 2
	offsetY := 2

	g.bricks = g.bricks[:0]
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.bricks = append(g.bricks, Brick{
				X:      offsetX + col*brickW,
				Y:      offsetY + row,
				W:      brickW - 1, // one-cell gap between bricks
				Points: (rows - row) * 10,
				Alive:  true,
			})
		}
	}
}

// resetBallAndPaddle centers the paddle and serves the ball upward.
func (g *Game) resetBallAndPaddle() {
	g.paddle = Paddle{
		X:     ToFixed((g.fieldW - g.gameCfg.Paddle.Width) / 2),
		Y:     g.fieldH - 2,
		Width: g.gameCfg.Paddle.Width,
	}
	dir := Fixed(1)
	if g.rng.Intn(2) == 0 {
		dir = -1
	}
	g.ball = Ball{
		X:  ToFixed(g.fieldW / 2),
		Y:  ToFixed(g.fieldH - 4),
		VX: Fixed(g.gameCfg.Ball.SpeedX) * dir,
		VY: -Fixed(g.gameCfg.Ball.SpeedY),
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
	if in.Has(core.ActionLeft) {
		g.paddle.X -= paddleSpeed
	}
	if in.Has(core.ActionRight) {
		g.paddle.X += paddleSpeed
	}
	g.paddle.X = ClampFixed(g.paddle.X, 0, ToFixed(g.fieldW-g.paddle.Width))

	g.ball.Move()
	g.ball.BounceWalls(g.fieldW, g.fieldH)
	DeflectOffPaddle(&g.ball, g.paddle, Fixed(g.gameCfg.Ball.MaxBias))

	for i := range g.bricks {
		if CollideBrick(&g.ball, &g.bricks[i]) {
			g.score += g.bricks[i].Points
			break
		}
	}

	if g.aliveBricks() == 0 {
		g.won = true
		g.machine.End()
		return
	}

	// Ball below the paddle row: lose a life.
	if g.ball.Y.Cell() >= g.fieldH {
		g.lives--
		if g.lives <= 0 {
			g.machine.End()
			return
		}
		g.resetBallAndPaddle()
	}
}

func (g *Game) aliveBricks() int {
	n := 0
	for _, br := range g.bricks {
		if br.Alive {
			n++
		}
	}
	return n
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
	Ball   Ball
	Paddle Fixed
	Alive  int
	Lives  int
	Score  int
	Phase  engine.Phase
	Won    bool
}

// Snapshot returns the current deterministic state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Ball:   g.ball,
		Paddle: g.paddle.X,
		Alive:  g.aliveBricks(),
		Lives:  g.lives,
		Score:  g.score,
		Phase:  g.machine.Phase(),
		Won:    g.won,
	}
}

func brickColor(points int) core.Color {
	switch {
	case points >= 50:
		return core.ColorBrightRed
	case points >= 40:
		return core.ColorOrange
	case points >= 30:
		return core.ColorBrightYellow
	case points >= 20:
		return core.ColorBrightGreen
	default:
		return core.ColorBrightCyan
	}
}

// Render draws the field into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	h := dst.Height()

	if g.machine.Phase() == engine.PhaseStart {
		dst.DrawTextCentered(h/2-3, "BREAKOUT")
		dst.DrawTextCentered(h/2-1, "A/D or arrows to move, P to pause")
		dst.DrawTextCentered(h/2, "Break all the bricks to win!")
		dst.DrawTextCentered(h/2+2, "Press SPACE to start")
		return
	}

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawText(g.fieldW-10, 0, fmt.Sprintf("Lives: %d", g.lives))

	for _, br := range g.bricks {
		if !br.Alive {
			continue
		}
		for x := 0; x < br.W; x++ {
			dst.SetColor(br.X+x, br.Y+1, '▄', brickColor(br.Points))
		}
	}

	for x := 0; x < g.paddle.Width; x++ {
		dst.SetColor(g.paddle.X.Cell()+x, g.paddle.Y+1, '▀', core.ColorBrightGreen)
	}
	dst.SetColor(g.ball.X.Cell(), g.ball.Y.Cell()+1, '●', core.ColorBrightCyan)

	if g.machine.Paused() {
		renderOverlay(dst, "PAUSED", "Press P to resume")
	} else if g.machine.Over() {
		title := "GAME OVER"
		if g.won {
			title = "YOU WIN!"
		}
		renderOverlay(dst, title, fmt.Sprintf("Score: %d", g.score), "Press R to restart")
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
