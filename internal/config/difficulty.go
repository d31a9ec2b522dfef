package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalid, name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *OrbfallConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.HP += cfg.Player.HP / 2
		cfg.Player.ExtraLives++
		cfg.Drag.TimeoutMs += 5000
	case DifficultyHard:
		cfg.Player.HP -= cfg.Player.HP / 4
		cfg.Drag.TimeoutMs = max(3000, cfg.Drag.TimeoutMs-5000)
		cfg.Board.Refill = "random"
	}
}
