package roguelike

import (
	"github.com/vovakirdan/orbfall/internal/combat"
	"github.com/vovakirdan/orbfall/internal/match3"
)

// Battle is the fight against the run's current monster.
type Battle struct {
	run      *Run
	resolver *combat.Resolver

	Template  Monster
	Monster   *combat.Actor
	TurnsLeft int
}

// NewBattle spawns the run's current monster.
func NewBattle(run *Run, resolver *combat.Resolver) (*Battle, error) {
	b := &Battle{run: run, resolver: resolver}
	if err := b.spawn(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Battle) spawn() error {
	m, err := b.run.Monster()
	if err != nil {
		return err
	}
	b.Template = m
	b.Monster = m.Spawn()
	b.TurnsLeft = m.TurnCount
	return nil
}

// Run returns the run the battle belongs to.
func (b *Battle) Run() *Run { return b.run }

// TurnReport describes everything that happened in one player turn.
type TurnReport struct {
	Combo           int
	Healed          int
	Attack          combat.AttackResult
	MonsterDefeated bool
	GoldEarned      int
	MonsterAttacked bool
	DamageTaken     int
	Revived         bool
	PlayerDefeated  bool
}

// ResolveTurn applies a finished cascade: recovery first, then the
// attack. A surviving monster counts down and strikes when its counter
// reaches zero. A turn with no matches still counts down.
func (b *Battle) ResolveTurn(res match3.ResolutionResult) TurnReport {
	player := b.run.Player
	rep := TurnReport{Combo: res.TotalCombo}

	groups := b.resolver.ClassifyGroups(res.Groups)

	if rec := b.resolver.Recovery(player, groups.Recovery); rec.Total > 0 {
		before := player.HP
		player.Heal(rec.Total)
		rep.Healed = player.HP - before
	}

	rep.Attack = b.resolver.AttackDamage(player, b.Monster, groups.Attack, res.TotalCombo)
	if rep.Attack.Final > 0 {
		b.Monster.Lose(rep.Attack.Final)
	}

	if b.Monster.IsDead() {
		rep.MonsterDefeated = true
		rep.GoldEarned = b.Template.Gold
		b.run.Gold += b.Template.Gold
		return rep
	}

	b.TurnsLeft--
	if b.TurnsLeft > 0 {
		return rep
	}

	rep.MonsterAttacked = true
	rep.DamageTaken = b.resolver.MonsterDamage(b.Monster, player)
	player.Lose(rep.DamageTaken)
	b.TurnsLeft = b.Template.TurnCount

	if player.IsDead() {
		if player.TryRevive() {
			rep.Revived = true
		} else {
			rep.PlayerDefeated = true
		}
	}
	return rep
}

// Advance moves the run past a defeated monster and spawns the next one
// unless the run is won.
func (b *Battle) Advance() (Progress, error) {
	p := b.run.Advance()
	if p == ProgressVictory {
		return p, nil
	}
	return p, b.spawn()
}
