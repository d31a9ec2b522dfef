package combat

import "fmt"

// Stat names a mutable actor attribute.
type Stat string

const (
	StatMaxHP      Stat = "maxHp"
	StatAtk        Stat = "atk"
	StatDef        Stat = "def"
	StatRcv        Stat = "rcv"
	StatExtraLives Stat = "revives"
)

// Valid reports whether AddStat accepts s.
func (s Stat) Valid() bool {
	switch s {
	case StatMaxHP, StatAtk, StatDef, StatRcv, StatExtraLives:
		return true
	}
	return false
}

// Actor is a combatant. HP stays within [0, MaxHP].
type Actor struct {
	Name       string
	HP         int
	MaxHP      int
	Atk        int
	Def        int
	Rcv        int
	ExtraLives int
}

// NewActor creates an actor at full health.
func NewActor(name string, maxHP, atk, def, rcv int) *Actor {
	return &Actor{Name: name, HP: maxHP, MaxHP: maxHP, Atk: atk, Def: def, Rcv: rcv}
}

// TakeDamage mitigates raw damage by Def (never below one point) and
// returns the amount actually lost.
func (a *Actor) TakeDamage(raw int) int {
	actual := max(1, raw-a.Def)
	a.HP = max(0, a.HP-actual)
	return actual
}

// Lose removes already-mitigated damage.
func (a *Actor) Lose(amount int) {
	a.HP = max(0, a.HP-amount)
}

// Heal restores HP up to MaxHP.
func (a *Actor) Heal(amount int) {
	a.HP = min(a.MaxHP, a.HP+amount)
}

// IsDead reports whether HP has run out.
func (a *Actor) IsDead() bool {
	return a.HP <= 0
}

// TryRevive spends an extra life to restore full HP.
func (a *Actor) TryRevive() bool {
	if a.ExtraLives <= 0 {
		return false
	}
	a.ExtraLives--
	a.HP = a.MaxHP
	return true
}

// AddStat raises a stat by delta. Raising MaxHP raises HP by the same amount.
func (a *Actor) AddStat(stat Stat, delta int) error {
	switch stat {
	case StatMaxHP:
		a.MaxHP += delta
		a.HP = min(a.MaxHP, a.HP+delta)
	case StatAtk:
		a.Atk += delta
	case StatDef:
		a.Def += delta
	case StatRcv:
		a.Rcv += delta
	case StatExtraLives:
		a.ExtraLives += delta
	default:
		return fmt.Errorf("combat: unknown stat %q", stat)
	}
	return nil
}

// HPFraction returns HP as a fraction of MaxHP for health bars.
func (a *Actor) HPFraction() float64 {
	if a.MaxHP <= 0 {
		return 0
	}
	return float64(a.HP) / float64(a.MaxHP)
}
