package config

import (
	_ "embed"
)

//go:embed defaults/orbfall.yaml
var defaultOrbfallYAML []byte

// DefaultOrbfallConfig returns the built-in configuration, used when the
// embedded YAML cannot be parsed.
func DefaultOrbfallConfig() OrbfallConfig {
	return OrbfallConfig{
		Board: BoardConfig{
			Rows:   5,
			Cols:   6,
			MinRun: 3,
			Refill: "safe",
		},
		Symbols: []SymbolConfig{
			{Name: "Fire", Glyph: "●", Color: "red"},
			{Name: "Water", Glyph: "●", Color: "blue"},
			{Name: "Wood", Glyph: "●", Color: "green"},
			{Name: "Light", Glyph: "●", Color: "yellow"},
			{Name: "Dark", Glyph: "●", Color: "magenta"},
			{Name: "Heart", Glyph: "♥", Color: "pink"},
		},
		RecoverySymbol: 5,
		Combat: CombatConfig{
			SizeBonus:  0.25,
			ComboScale: 0.25,
		},
		Player: PlayerConfig{
			HP:  100,
			Atk: 10,
			Def: 2,
			Rcv: 5,
		},
		Drag: DragConfig{
			TimeoutMs: 15000,
		},
		Timing: TimingConfig{
			MatchTicks: 8,
			FallTicks:  5,
		},
	}
}
