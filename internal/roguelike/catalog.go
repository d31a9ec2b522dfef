// Package roguelike implements battle mode: a run through worlds of
// monsters, paid for with gold spent on stat upgrades between stages.
// Board resolution results come in from match3 and are scored by combat.
package roguelike

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/orbfall/internal/combat"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

var (
	// ErrUnknownMonster is returned when a stage names a monster that is not defined.
	ErrUnknownMonster = errors.New("roguelike: unknown monster")
	// ErrUnknownUpgrade is returned for upgrade IDs missing from the catalog.
	ErrUnknownUpgrade = errors.New("roguelike: unknown upgrade")
	// ErrInvalidCatalog is returned when catalog data is structurally wrong.
	ErrInvalidCatalog = errors.New("roguelike: invalid catalog")
)

// Monster is a monster template.
type Monster struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Element   string `yaml:"element"`
	HP        int    `yaml:"hp"`
	Atk       int    `yaml:"atk"`
	Def       int    `yaml:"def"`
	TurnCount int    `yaml:"turn_count"` // Player turns between attacks
	Gold      int    `yaml:"gold"`
}

// Spawn creates a fresh combat actor from the template.
func (m Monster) Spawn() *combat.Actor {
	return combat.NewActor(m.Name, m.HP, m.Atk, m.Def, 0)
}

// Stage is an ordered list of monsters fought back to back.
type Stage struct {
	Name     string   `yaml:"name"`
	Monsters []string `yaml:"monsters"`
}

// World is an ordered list of stages.
type World struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Stages []Stage `yaml:"stages"`
}

// Upgrade application kinds.
const (
	ApplyStatAdd = "stat_add"
	ApplyCustom  = "custom"
)

// StatBonusDrag is the upgrade stat that extends the drag timer instead of an actor stat.
const StatBonusDrag = "bonusTimeoutMs"

// Upgrade is a purchasable shop item.
type Upgrade struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Desc      string  `yaml:"desc"`
	Category  string  `yaml:"category"`
	Stat      string  `yaml:"stat"`
	Value     int     `yaml:"value"`
	BaseCost  int     `yaml:"base_cost"`
	CostScale float64 `yaml:"cost_scale"`
	MaxLevel  int     `yaml:"max_level"` // -1 = unlimited
	Apply     string  `yaml:"apply"`
}

// Catalog holds every monster, world and upgrade definition.
type Catalog struct {
	Monsters []Monster `yaml:"monsters"`
	Worlds   []World   `yaml:"worlds"`
	Upgrades []Upgrade `yaml:"upgrades"`

	monsterByID map[string]Monster
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("roguelike: parse catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog reads a catalog file, or the embedded catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roguelike: read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// index builds lookups and checks references.
func (c *Catalog) index() error {
	c.monsterByID = make(map[string]Monster, len(c.Monsters))
	for _, m := range c.Monsters {
		if m.ID == "" {
			return fmt.Errorf("%w: monster without id", ErrInvalidCatalog)
		}
		if m.HP <= 0 || m.TurnCount <= 0 {
			return fmt.Errorf("%w: monster %q needs positive hp and turn_count", ErrInvalidCatalog, m.ID)
		}
		c.monsterByID[m.ID] = m
	}

	if len(c.Worlds) == 0 {
		return fmt.Errorf("%w: no worlds", ErrInvalidCatalog)
	}
	for _, w := range c.Worlds {
		if len(w.Stages) == 0 {
			return fmt.Errorf("%w: world %q has no stages", ErrInvalidCatalog, w.ID)
		}
		for _, s := range w.Stages {
			if len(s.Monsters) == 0 {
				return fmt.Errorf("%w: stage %q has no monsters", ErrInvalidCatalog, s.Name)
			}
			for _, id := range s.Monsters {
				if _, ok := c.monsterByID[id]; !ok {
					return fmt.Errorf("%w: %q in stage %q", ErrUnknownMonster, id, s.Name)
				}
			}
		}
	}

	seen := make(map[string]bool, len(c.Upgrades))
	for _, u := range c.Upgrades {
		if seen[u.ID] {
			return fmt.Errorf("%w: duplicate upgrade %q", ErrInvalidCatalog, u.ID)
		}
		seen[u.ID] = true
		if u.Apply != ApplyStatAdd && u.Apply != ApplyCustom {
			return fmt.Errorf("%w: upgrade %q has apply %q", ErrInvalidCatalog, u.ID, u.Apply)
		}
		if u.Apply == ApplyStatAdd && u.Stat != StatBonusDrag && !combat.Stat(u.Stat).Valid() {
			return fmt.Errorf("%w: upgrade %q has stat %q", ErrInvalidCatalog, u.ID, u.Stat)
		}
	}
	return nil
}

// Monster looks up a monster template by ID.
func (c *Catalog) Monster(id string) (Monster, error) {
	m, ok := c.monsterByID[id]
	if !ok {
		return Monster{}, fmt.Errorf("%w: %q", ErrUnknownMonster, id)
	}
	return m, nil
}

// Upgrade looks up an upgrade by ID.
func (c *Catalog) Upgrade(id string) (Upgrade, error) {
	for _, u := range c.Upgrades {
		if u.ID == id {
			return u, nil
		}
	}
	return Upgrade{}, fmt.Errorf("%w: %q", ErrUnknownUpgrade, id)
}
