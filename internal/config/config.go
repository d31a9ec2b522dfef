// Package config provides YAML-based game configuration loading and
// environment overrides for orbfall.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// OrbfallConfig contains all tunable game settings.
type OrbfallConfig struct {
	Board          BoardConfig    `yaml:"board"`
	Symbols        []SymbolConfig `yaml:"symbols"`
	RecoverySymbol int            `yaml:"recovery_symbol"`
	Combat         CombatConfig   `yaml:"combat"`
	Player         PlayerConfig   `yaml:"player"`
	Drag           DragConfig     `yaml:"drag"`
	Timing         TimingConfig   `yaml:"timing"`
	Catalog        string         `yaml:"catalog"` // Battle-mode catalog path, empty = built-in
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Rows   int    `yaml:"rows"`
	Cols   int    `yaml:"cols"`
	MinRun int    `yaml:"min_run"`
	Refill string `yaml:"refill"` // "safe" or "random"
}

// SymbolConfig describes one orb type. Its position in the list is its id.
type SymbolConfig struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// CombatConfig holds the damage formula factors.
type CombatConfig struct {
	SizeBonus  float64 `yaml:"size_bonus"`  // Per orb beyond min_run
	ComboScale float64 `yaml:"combo_scale"` // Per combo beyond the first
}

// PlayerConfig holds the starting stats for battle mode.
type PlayerConfig struct {
	HP         int `yaml:"hp"`
	Atk        int `yaml:"atk"`
	Def        int `yaml:"def"`
	Rcv        int `yaml:"rcv"`
	ExtraLives int `yaml:"extra_lives"`
}

// DragConfig limits how long an orb can be held.
type DragConfig struct {
	TimeoutMs int `yaml:"timeout_ms"`
}

// TimingConfig paces the cascade animation.
type TimingConfig struct {
	MatchTicks int `yaml:"match_ticks"` // Ticks matched orbs stay highlighted
	FallTicks  int `yaml:"fall_ticks"`  // Ticks between gravity and the next scan
}

// Validate checks that the configuration can drive a board.
func (c OrbfallConfig) Validate() error {
	var errs []error
	if c.Board.Rows < 1 || c.Board.Cols < 1 {
		errs = append(errs, fmt.Errorf("board is %dx%d", c.Board.Rows, c.Board.Cols))
	}
	// Population only avoids runs of three.
	if c.Board.MinRun < 3 {
		errs = append(errs, fmt.Errorf("min_run %d is below 3", c.Board.MinRun))
	}
	switch c.Board.Refill {
	case "", "safe", "random":
	default:
		errs = append(errs, fmt.Errorf("unknown refill rule %q", c.Board.Refill))
	}
	if len(c.Symbols) < 3 {
		errs = append(errs, fmt.Errorf("need at least 3 symbols, have %d", len(c.Symbols)))
	}
	if c.RecoverySymbol < 0 || c.RecoverySymbol >= len(c.Symbols) {
		errs = append(errs, fmt.Errorf("recovery_symbol %d is not a symbol id", c.RecoverySymbol))
	}
	if c.Combat.SizeBonus < 0 || c.Combat.ComboScale < 0 {
		errs = append(errs, errors.New("combat factors must not be negative"))
	}
	if c.Player.HP < 1 {
		errs = append(errs, fmt.Errorf("player hp %d is below 1", c.Player.HP))
	}
	if c.Drag.TimeoutMs < 1 {
		errs = append(errs, fmt.Errorf("drag timeout %dms is below 1", c.Drag.TimeoutMs))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// SymbolNames returns the palette names in id order.
func (c OrbfallConfig) SymbolNames() []string {
	names := make([]string, len(c.Symbols))
	for i, s := range c.Symbols {
		names[i] = s.Name
	}
	return names
}
