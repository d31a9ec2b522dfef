package roguelike

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/orbfall/internal/combat"
)

var (
	// ErrMaxLevel is returned when an upgrade is already at its level cap.
	ErrMaxLevel = errors.New("roguelike: upgrade at max level")
	// ErrNotEnoughGold is returned when the run cannot afford an upgrade.
	ErrNotEnoughGold = errors.New("roguelike: not enough gold")
)

// Progress describes where a run stands after a monster falls.
type Progress int

const (
	// ProgressNextMonster means the stage continues with another monster.
	ProgressNextMonster Progress = iota
	// ProgressStageClear means the stage is done; the shop opens.
	ProgressStageClear
	// ProgressWorldClear means the world is done; the shop opens.
	ProgressWorldClear
	// ProgressVictory means every world is done.
	ProgressVictory
)

// String returns a readable progress name.
func (p Progress) String() string {
	switch p {
	case ProgressNextMonster:
		return "next monster"
	case ProgressStageClear:
		return "stage clear"
	case ProgressWorldClear:
		return "world clear"
	case ProgressVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Run is the state of one battle-mode attempt.
type Run struct {
	catalog *Catalog

	Player      *combat.Actor
	Gold        int
	BonusDragMs int

	WorldIdx   int
	StageIdx   int
	MonsterIdx int
	Defeated   int

	levels map[string]int
}

// NewRun starts a run at the first monster of the first world.
func NewRun(cat *Catalog, player *combat.Actor) *Run {
	return &Run{
		catalog: cat,
		Player:  player,
		levels:  make(map[string]int),
	}
}

// Catalog returns the definitions the run draws from.
func (r *Run) Catalog() *Catalog { return r.catalog }

// Level returns how many times an upgrade was bought.
func (r *Run) Level(id string) int { return r.levels[id] }

// UpgradeCost returns the price of the next level of u.
func (r *Run) UpgradeCost(u Upgrade) int {
	return int(math.Floor(float64(u.BaseCost) * math.Pow(u.CostScale, float64(r.levels[u.ID]))))
}

// CanPurchase reports whether u is below its cap and affordable.
func (r *Run) CanPurchase(u Upgrade) bool {
	return r.purchaseError(u) == nil
}

func (r *Run) purchaseError(u Upgrade) error {
	if u.MaxLevel != -1 && r.levels[u.ID] >= u.MaxLevel {
		return fmt.Errorf("%w: %s", ErrMaxLevel, u.ID)
	}
	if cost := r.UpgradeCost(u); r.Gold < cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrNotEnoughGold, u.ID, cost, r.Gold)
	}
	return nil
}

// Purchase buys one level of the upgrade with the given ID.
func (r *Run) Purchase(id string) error {
	u, err := r.catalog.Upgrade(id)
	if err != nil {
		return err
	}
	if err := r.purchaseError(u); err != nil {
		return err
	}

	if u.Apply == ApplyStatAdd {
		if u.Stat == StatBonusDrag {
			r.BonusDragMs += u.Value
		} else if err := r.Player.AddStat(combat.Stat(u.Stat), u.Value); err != nil {
			return fmt.Errorf("roguelike: apply %s: %w", u.ID, err)
		}
	}
	r.Gold -= r.UpgradeCost(u)
	r.levels[u.ID]++
	return nil
}

// DragTimeoutMs returns the drag time limit including upgrades.
func (r *Run) DragTimeoutMs(baseMs int) int {
	return baseMs + r.BonusDragMs
}

// Finished reports whether every world has been cleared.
func (r *Run) Finished() bool {
	return r.WorldIdx >= len(r.catalog.Worlds)
}

// World returns the current world. Only valid while the run is not finished.
func (r *Run) World() World {
	return r.catalog.Worlds[r.WorldIdx]
}

// Stage returns the current stage. Only valid while the run is not finished.
func (r *Run) Stage() Stage {
	return r.World().Stages[r.StageIdx]
}

// Monster returns the template of the monster currently faced.
func (r *Run) Monster() (Monster, error) {
	if r.Finished() {
		return Monster{}, fmt.Errorf("%w: run is finished", ErrUnknownMonster)
	}
	return r.catalog.Monster(r.Stage().Monsters[r.MonsterIdx])
}

// Advance moves past the current monster.
func (r *Run) Advance() Progress {
	r.Defeated++
	r.MonsterIdx++
	if r.MonsterIdx < len(r.Stage().Monsters) {
		return ProgressNextMonster
	}

	r.MonsterIdx = 0
	r.StageIdx++
	if r.StageIdx < len(r.World().Stages) {
		return ProgressStageClear
	}

	r.StageIdx = 0
	r.WorldIdx++
	if r.WorldIdx < len(r.catalog.Worlds) {
		return ProgressWorldClear
	}
	return ProgressVictory
}
