package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      0.08,
			JumpImpulse:  -0.6,
			MaxFallSpeed: 0.8,
			BaseSpeed:    0.4,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:    3,
			PipeSpacing:  28,
			MinGapSize:   5,
			MaxGapSize:   8,
			TopMargin:    2,
			BottomMargin: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.8,
				GapReduction:     2,
				SpacingReduction: 8,
			},
		},
	}
}

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Lives: 3,
		Paddle: BreakoutPaddle{
			Width: 10,
		},
		Ball: BreakoutBall{
			SpeedX:  400,
			SpeedY:  250,
			MaxBias: 800,
		},
		Bricks: BreakoutBricks{
			Rows: 5,
			Cols: 8,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy":
		return defaultFlappyYAML
	case "breakout":
		return defaultBreakoutYAML
	default:
		return nil
	}
}
