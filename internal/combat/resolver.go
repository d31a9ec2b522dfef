// Package combat turns resolved match groups into damage and recovery.
//
// Everything here is plain arithmetic over Actor stats. The Resolver is
// stateless apart from its immutable Config, so one value can be shared
// by every battle.
package combat

import (
	"math"

	"github.com/vovakirdan/orbfall/internal/match3"
)

// Config holds the tuning factors for damage and recovery.
type Config struct {
	// SizeBonus is the extra fraction of the stat per orb beyond BaseSize.
	SizeBonus float64
	// ComboScale is the extra fraction of damage per combo beyond the first.
	ComboScale float64
	// RecoverySymbol is the orb type that heals instead of attacking.
	RecoverySymbol match3.Symbol
	// BaseSize is the group size that earns no size bonus.
	BaseSize int
}

// DefaultConfig returns the standard tuning: +25% per extra orb, +25% per
// extra combo, Heart (symbol 5) heals.
func DefaultConfig() Config {
	return Config{
		SizeBonus:      0.25,
		ComboScale:     0.25,
		RecoverySymbol: 5,
		BaseSize:       match3.DefaultMinRun,
	}
}

// Resolver computes combat outcomes.
type Resolver struct {
	cfg Config
}

// NewResolver creates a resolver. A zero BaseSize falls back to the
// default minimum run.
func NewResolver(cfg Config) *Resolver {
	if cfg.BaseSize <= 0 {
		cfg.BaseSize = match3.DefaultMinRun
	}
	return &Resolver{cfg: cfg}
}

// Config returns the resolver's tuning.
func (r *Resolver) Config() Config { return r.cfg }

// Classified splits a turn's groups by role.
type Classified struct {
	Attack   []match3.MatchGroup
	Recovery []match3.MatchGroup
}

// ClassifyGroups separates recovery groups from attack groups, keeping
// their relative order.
func (r *Resolver) ClassifyGroups(groups []match3.ResolvedGroup) Classified {
	var out Classified
	for _, g := range groups {
		if g.Symbol == r.cfg.RecoverySymbol {
			out.Recovery = append(out.Recovery, g.MatchGroup)
		} else {
			out.Attack = append(out.Attack, g.MatchGroup)
		}
	}
	return out
}

// Base returns the unfloored contribution of one group for a stat.
func (r *Resolver) Base(group match3.MatchGroup, stat int) float64 {
	return float64(stat) * (1 + r.cfg.SizeBonus*float64(group.Size()-r.cfg.BaseSize))
}

// ComboMultiplier returns the damage multiplier for a combo count.
func (r *Resolver) ComboMultiplier(combos int) float64 {
	return 1 + r.cfg.ComboScale*float64(combos-1)
}

// AttackResult is the outcome of a player attack.
type AttackResult struct {
	Final           int
	Raw             int
	ComboMultiplier float64
}

// AttackDamage totals the attack groups of a turn, scales by the whole
// turn's combo count and subtracts the target's defence. No attack groups
// means no damage at all, not the one-point minimum.
func (r *Resolver) AttackDamage(attacker, target *Actor, attack []match3.MatchGroup, totalCombos int) AttackResult {
	if len(attack) == 0 {
		return AttackResult{ComboMultiplier: 1}
	}
	var base float64
	for _, g := range attack {
		base += r.Base(g, attacker.Atk)
	}
	mult := r.ComboMultiplier(totalCombos)
	raw := int(math.Floor(base * mult))
	return AttackResult{
		Final:           max(1, raw-target.Def),
		Raw:             raw,
		ComboMultiplier: mult,
	}
}

// RecoveryResult is the outcome of a heal.
type RecoveryResult struct {
	Total           int
	ComboMultiplier float64
}

// Recovery totals the recovery groups. The combo multiplier counts only
// recovery groups, not the whole turn.
func (r *Resolver) Recovery(healer *Actor, recovery []match3.MatchGroup) RecoveryResult {
	if len(recovery) == 0 {
		return RecoveryResult{ComboMultiplier: 1}
	}
	var base float64
	for _, g := range recovery {
		base += r.Base(g, healer.Rcv)
	}
	mult := r.ComboMultiplier(len(recovery))
	return RecoveryResult{
		Total:           int(math.Floor(base * mult)),
		ComboMultiplier: mult,
	}
}

// GroupDamage is the damage of a single group resolved at the given combo
// level, for presentations that apply hits one group at a time.
func (r *Resolver) GroupDamage(attacker, target *Actor, group match3.MatchGroup, combo int) int {
	raw := int(math.Floor(r.Base(group, attacker.Atk) * r.ComboMultiplier(combo)))
	return max(1, raw-target.Def)
}

// GroupRecovery is the heal of a single group resolved at the given combo level.
func (r *Resolver) GroupRecovery(healer *Actor, group match3.MatchGroup, combo int) int {
	return int(math.Floor(r.Base(group, healer.Rcv) * r.ComboMultiplier(combo)))
}

// MonsterDamage is the mitigated damage a monster deals to the player.
func (r *Resolver) MonsterDamage(monster, player *Actor) int {
	return max(1, monster.Atk-player.Def)
}
