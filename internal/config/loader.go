package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlappyConfig loads Flappy Bird configuration.
// Search order: customPath -> ~/.arcade/configs/flappy.yaml ->
// ./configs/flappy.yaml -> embedded default. Unreadable or malformed
// files fall through to the next candidate.
func LoadFlappyConfig(customPath string) *FlappyConfig {
	var cfg FlappyConfig
	if loadYAML(&cfg, customPath, "flappy.yaml") {
		return &cfg
	}
	if err := yaml.Unmarshal(defaultFlappyYAML, &cfg); err != nil {
		cfg = DefaultFlappyConfig()
	}
	return &cfg
}

// LoadBreakoutConfig loads Breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.yaml ->
// ./configs/breakout.yaml -> embedded default.
func LoadBreakoutConfig(customPath string) *BreakoutConfig {
	var cfg BreakoutConfig
	if loadYAML(&cfg, customPath, "breakout.yaml") {
		return &cfg
	}
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		cfg = DefaultBreakoutConfig()
	}
	return &cfg
}

// loadYAML fills out from the first readable, parseable config file among
// the custom path, the user config directory, and the local configs
// directory. Returns false if none matched.
func loadYAML(out any, customPath, filename string) bool {
	candidates := []string{}
	if customPath != "" {
		candidates = append(candidates, customPath)
	}
	if userPath := userConfigPath(filename); userPath != "" {
		candidates = append(candidates, userPath)
	}
	candidates = append(candidates, filepath.Join("configs", filename))

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			continue
		}
		return true
	}
	return false
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Lives = 5
		cfg.Paddle.Width = 12
	case DifficultyHard:
		cfg.Lives = 2
		cfg.Paddle.Width = 7
		cfg.Ball.SpeedX = 500
		cfg.Ball.SpeedY = 320
	}
}
