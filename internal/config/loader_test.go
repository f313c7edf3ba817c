package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBreakoutEmbeddedDefault(t *testing.T) {
	cfg := LoadBreakoutConfig("")
	want := DefaultBreakoutConfig()

	if cfg.Lives != want.Lives {
		t.Errorf("lives = %d, want %d", cfg.Lives, want.Lives)
	}
	if cfg.Bricks.Rows != want.Bricks.Rows || cfg.Bricks.Cols != want.Bricks.Cols {
		t.Errorf("bricks = %dx%d, want %dx%d",
			cfg.Bricks.Rows, cfg.Bricks.Cols, want.Bricks.Rows, want.Bricks.Cols)
	}
	if cfg.Ball.SpeedX != want.Ball.SpeedX || cfg.Ball.MaxBias != want.Ball.MaxBias {
		t.Errorf("ball = %+v, want %+v", cfg.Ball, want.Ball)
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	yaml := "physics:\n  gravity: 0.5\n  jump_impulse: -2.0\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadFlappyConfig(path)
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, want 0.5", cfg.Physics.Gravity)
	}
	if cfg.Physics.JumpImpulse != -2.0 {
		t.Errorf("jump impulse = %v, want -2.0", cfg.Physics.JumpImpulse)
	}
}

func TestLoadFlappyMissingCustomPathFallsBack(t *testing.T) {
	cfg := LoadFlappyConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	want := DefaultFlappyConfig()
	if cfg.Obstacles.PipeWidth != want.Obstacles.PipeWidth {
		t.Errorf("pipe width = %d, want default %d",
			cfg.Obstacles.PipeWidth, want.Obstacles.PipeWidth)
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()

	ApplyFlappyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled {
		t.Error("hard preset should keep progression enabled")
	}
	if cfg.Difficulty.InitialLevel != InitialLevelForPreset(DifficultyHard) {
		t.Errorf("initial level = %v, want %v",
			cfg.Difficulty.InitialLevel, InitialLevelForPreset(DifficultyHard))
	}

	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestDifficultyManagerProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, GapReduction: 2, SpacingReduction: 8},
	})

	if lvl := d.Level(0, 0); lvl != 0.0 {
		t.Errorf("level at score 0 = %v, want 0", lvl)
	}
	if lvl := d.Level(100, 0); lvl != 1.0 {
		t.Errorf("level at max score = %v, want 1", lvl)
	}
	if lvl := d.Level(500, 0); lvl != 1.0 {
		t.Errorf("level past max = %v, want clamped to 1", lvl)
	}

	base := d.Speed(0.4, 0, 0)
	max := d.Speed(0.4, 100, 0)
	if max <= base {
		t.Errorf("speed at max difficulty (%v) should exceed base (%v)", max, base)
	}
}
