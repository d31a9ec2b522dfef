package roguelike

import (
	"errors"
	"testing"

	"github.com/vovakirdan/orbfall/internal/combat"
	"github.com/vovakirdan/orbfall/internal/match3"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() failed: %v", err)
	}
	return cat
}

func newTestRun(t *testing.T) *Run {
	t.Helper()
	return NewRun(mustCatalog(t), combat.NewActor("hero", 100, 10, 2, 5))
}

// turn builds a resolution with one group per symbol, each of the given size.
func turn(size int, symbols ...match3.Symbol) match3.ResolutionResult {
	var res match3.ResolutionResult
	for _, s := range symbols {
		res.TotalCombo++
		g := match3.MatchGroup{Symbol: s}
		for c := 0; c < size; c++ {
			g.Cells = append(g.Cells, match3.Coord{Row: 0, Col: c})
		}
		res.Groups = append(res.Groups, match3.ResolvedGroup{MatchGroup: g, Combo: res.TotalCombo})
	}
	return res
}

func TestDefaultCatalog(t *testing.T) {
	cat := mustCatalog(t)

	if len(cat.Monsters) != 6 || len(cat.Worlds) != 2 || len(cat.Upgrades) != 6 {
		t.Errorf("catalog has %d monsters, %d worlds, %d upgrades", len(cat.Monsters), len(cat.Worlds), len(cat.Upgrades))
	}

	golem, err := cat.Monster("golem")
	if err != nil {
		t.Fatal(err)
	}
	if golem.HP != 300 || golem.Atk != 25 || golem.Def != 8 || golem.TurnCount != 3 || golem.Gold != 35 {
		t.Errorf("golem = %+v", golem)
	}

	if _, err := cat.Monster("lich"); !errors.Is(err, ErrUnknownMonster) {
		t.Errorf("Monster(lich) error = %v, expected ErrUnknownMonster", err)
	}
	if _, err := cat.Upgrade("wings"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Errorf("Upgrade(wings) error = %v, expected ErrUnknownUpgrade", err)
	}
}

func TestParseCatalogRejectsBadReferences(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected error
	}{
		{
			name: "unknown monster in stage",
			yaml: `
monsters:
  - {id: slime, name: Slime, hp: 10, atk: 1, turn_count: 1}
worlds:
  - id: w
    stages:
      - {name: s, monsters: [ghost]}
`,
			expected: ErrUnknownMonster,
		},
		{
			name:     "no worlds",
			yaml:     "monsters: []\n",
			expected: ErrInvalidCatalog,
		},
		{
			name: "bad apply kind",
			yaml: `
monsters:
  - {id: slime, name: Slime, hp: 10, atk: 1, turn_count: 1}
worlds:
  - id: w
    stages:
      - {name: s, monsters: [slime]}
upgrades:
  - {id: x, apply: multiply}
`,
			expected: ErrInvalidCatalog,
		},
		{
			name: "misspelled stat",
			yaml: `
monsters:
  - {id: slime, name: Slime, hp: 10, atk: 1, turn_count: 1}
worlds:
  - id: w
    stages:
      - {name: s, monsters: [slime]}
upgrades:
  - {id: x, apply: stat_add, stat: attack, value: 1}
`,
			expected: ErrInvalidCatalog,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tc.yaml)); !errors.Is(err, tc.expected) {
				t.Errorf("ParseCatalog() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestUpgradeCost(t *testing.T) {
	r := newTestRun(t)
	r.Gold = 10000

	tests := []struct {
		id    string
		costs []int
	}{
		{"hp_up", []int{30, 45, 67}},
		{"revive", []int{100, 200, 400}},
		{"def_up", []int{35, 49, 68}},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			u, err := r.Catalog().Upgrade(tc.id)
			if err != nil {
				t.Fatal(err)
			}
			for level, want := range tc.costs {
				if got := r.UpgradeCost(u); got != want {
					t.Errorf("level %d cost = %d, expected %d", level, got, want)
				}
				if err := r.Purchase(tc.id); err != nil {
					t.Fatalf("Purchase(%s) failed: %v", tc.id, err)
				}
			}
		})
	}
}

func TestPurchaseAppliesStats(t *testing.T) {
	r := newTestRun(t)
	r.Gold = 1000
	r.Player.Lose(30)

	for _, id := range []string{"hp_up", "atk_up", "def_up", "rcv_up", "revive", "timeout_up"} {
		if err := r.Purchase(id); err != nil {
			t.Fatalf("Purchase(%s) failed: %v", id, err)
		}
	}

	p := r.Player
	if p.MaxHP != 120 || p.HP != 90 {
		t.Errorf("hp = %d/%d, expected 90/120", p.HP, p.MaxHP)
	}
	if p.Atk != 13 || p.Def != 4 || p.Rcv != 7 || p.ExtraLives != 1 {
		t.Errorf("player = %+v", p)
	}
	if r.DragTimeoutMs(15000) != 17000 {
		t.Errorf("DragTimeoutMs() = %d, expected 17000", r.DragTimeoutMs(15000))
	}
	if spent := 30 + 40 + 35 + 30 + 100 + 50; r.Gold != 1000-spent {
		t.Errorf("Gold = %d, expected %d", r.Gold, 1000-spent)
	}
	if r.Level("hp_up") != 1 {
		t.Errorf("Level(hp_up) = %d, expected 1", r.Level("hp_up"))
	}
}

func TestPurchaseLimits(t *testing.T) {
	r := newTestRun(t)

	if err := r.Purchase("atk_up"); !errors.Is(err, ErrNotEnoughGold) {
		t.Errorf("broke purchase error = %v, expected ErrNotEnoughGold", err)
	}
	if r.Level("atk_up") != 0 || r.Player.Atk != 10 {
		t.Error("failed purchase changed the run")
	}

	r.Gold = 100000
	for i := 0; i < 3; i++ {
		if err := r.Purchase("revive"); err != nil {
			t.Fatal(err)
		}
	}
	u, _ := r.Catalog().Upgrade("revive")
	if r.CanPurchase(u) {
		t.Error("CanPurchase() should be false at max level")
	}
	if err := r.Purchase("revive"); !errors.Is(err, ErrMaxLevel) {
		t.Errorf("fourth revive error = %v, expected ErrMaxLevel", err)
	}
	if err := r.Purchase("nope"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Errorf("unknown upgrade error = %v, expected ErrUnknownUpgrade", err)
	}
}

func TestRunProgression(t *testing.T) {
	r := newTestRun(t)

	expected := []Progress{
		ProgressNextMonster, ProgressStageClear,
		ProgressNextMonster, ProgressNextMonster, ProgressStageClear,
		ProgressNextMonster, ProgressNextMonster, ProgressWorldClear,
		ProgressNextMonster, ProgressNextMonster, ProgressStageClear,
		ProgressNextMonster, ProgressNextMonster, ProgressStageClear,
		ProgressNextMonster, ProgressVictory,
	}

	for i, want := range expected {
		if got := r.Advance(); got != want {
			t.Fatalf("Advance() #%d = %v, expected %v", i+1, got, want)
		}
	}
	if !r.Finished() || r.Defeated != 16 {
		t.Errorf("Finished() = %v, Defeated = %d", r.Finished(), r.Defeated)
	}
	if _, err := r.Monster(); err == nil {
		t.Error("Monster() after victory should fail")
	}
}

func TestBattleTurns(t *testing.T) {
	r := newTestRun(t)
	b, err := NewBattle(r, combat.NewResolver(combat.DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if b.Template.ID != "slime_green" || b.Monster.HP != 80 || b.TurnsLeft != 2 {
		t.Fatalf("first battle = %+v, monster %+v", b.Template, b.Monster)
	}

	rep := b.ResolveTurn(turn(3, 0))
	if rep.Attack.Final != 10 || b.Monster.HP != 70 {
		t.Errorf("attack = %+v, monster hp %d", rep.Attack, b.Monster.HP)
	}
	if rep.MonsterAttacked || b.TurnsLeft != 1 {
		t.Errorf("monster should wait: attacked=%v turnsLeft=%d", rep.MonsterAttacked, b.TurnsLeft)
	}

	rep = b.ResolveTurn(match3.ResolutionResult{})
	if !rep.MonsterAttacked || rep.DamageTaken != 6 || r.Player.HP != 94 {
		t.Errorf("monster attack = %+v, player hp %d", rep, r.Player.HP)
	}
	if b.TurnsLeft != 2 {
		t.Errorf("TurnsLeft = %d after attack, expected reset to 2", b.TurnsLeft)
	}

	rep = b.ResolveTurn(turn(3, 5))
	if rep.Healed != 5 || r.Player.HP != 99 {
		t.Errorf("heal = %d, player hp %d", rep.Healed, r.Player.HP)
	}
	if rep.Attack.Final != 0 {
		t.Errorf("heart-only turn dealt %d damage", rep.Attack.Final)
	}
}

func TestBattleMonsterDefeated(t *testing.T) {
	r := newTestRun(t)
	b, err := NewBattle(r, combat.NewResolver(combat.DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	b.Monster.HP = 5
	b.TurnsLeft = 1

	rep := b.ResolveTurn(turn(3, 1))
	if !rep.MonsterDefeated || rep.GoldEarned != 10 || r.Gold != 10 {
		t.Errorf("report = %+v, gold %d", rep, r.Gold)
	}
	if rep.MonsterAttacked {
		t.Error("a defeated monster should not attack")
	}

	p, err := b.Advance()
	if err != nil || p != ProgressNextMonster {
		t.Fatalf("Advance() = %v, %v", p, err)
	}
	if b.Monster.HP != 80 || b.TurnsLeft != 2 {
		t.Errorf("next monster = %+v turnsLeft %d", b.Monster, b.TurnsLeft)
	}
}

func TestBattlePlayerDeath(t *testing.T) {
	tests := []struct {
		name     string
		lives    int
		revived  bool
		defeated bool
	}{
		{"revives with extra life", 1, true, false},
		{"game over without lives", 0, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRun(t)
			r.Player.HP = 1
			r.Player.ExtraLives = tc.lives
			b, err := NewBattle(r, combat.NewResolver(combat.DefaultConfig()))
			if err != nil {
				t.Fatal(err)
			}
			b.TurnsLeft = 1

			rep := b.ResolveTurn(match3.ResolutionResult{})
			if rep.Revived != tc.revived || rep.PlayerDefeated != tc.defeated {
				t.Errorf("report = %+v", rep)
			}
			if tc.revived && r.Player.HP != r.Player.MaxHP {
				t.Errorf("revived hp = %d", r.Player.HP)
			}
			if tc.defeated && r.Player.HP != 0 {
				t.Errorf("defeated hp = %d, expected 0", r.Player.HP)
			}
		})
	}
}
