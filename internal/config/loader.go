package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConnect4 loads Connect Four configuration.
// Search order: customPath -> ~/.arcade/configs/connect4.yaml -> ./configs/connect4.yaml -> embedded default
func LoadConnect4(customPath string) (Connect4Config, error) {
	cfg, err := load("connect4.yaml", customPath, defaultConnect4YAML, DefaultConnect4Config)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadMaze loads maze configuration.
// Search order: customPath -> ~/.arcade/configs/maze.yaml -> ./configs/maze.yaml -> embedded default
func LoadMaze(customPath string) (MazeConfig, error) {
	cfg, err := load("maze.yaml", customPath, defaultMazeYAML, DefaultMazeConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadPlatformer loads side-scroller configuration.
// Search order: customPath -> ~/.arcade/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	cfg, err := load("platformer.yaml", customPath, defaultPlatformerYAML, DefaultPlatformerConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// load decodes the first config found on the search path on top of the
// hard-coded defaults, so a file only needs the keys it overrides.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Custom path errors are reported; the user asked for that file.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := defaults()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	candidate := defaults()
	if err := yaml.Unmarshal(embedded, &candidate); err != nil {
		return cfg, nil
	}
	return candidate, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyConnect4Preset maps a difficulty preset onto the CPU opponent.
func ApplyConnect4Preset(cfg *Connect4Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.CPU.Difficulty = "easy"
		cfg.CPU.Depth = 0
	case DifficultyNormal:
		cfg.CPU.Difficulty = "normal"
		cfg.CPU.Depth = 3
	case DifficultyHard:
		cfg.CPU.Difficulty = "hard"
		cfg.CPU.Depth = 6
	}
}

// ApplyMazePreset modifies the config based on a difficulty preset.
func ApplyMazePreset(cfg *MazeConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Pursuer.GraceTicks *= 2
	case DifficultyHard:
		cfg.Pursuer.GraceTicks /= 2
		cfg.Pursuer.MinStepTicks = max(1, cfg.Pursuer.MinStepTicks*2/3)
	}
}

// ApplyPlatformerPreset scales how often obstacles fall on their own.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.StepTicks *= 2
		cfg.Obstacles.MinStepTicks *= 2
	case DifficultyHard:
		cfg.Obstacles.StepTicks /= 2
		cfg.Obstacles.MinStepTicks = max(1, cfg.Obstacles.MinStepTicks*2/3)
	}
}
