// Package orbs is the playable orb board: pick an orb up, drag it around
// the grid swapping as it goes, then watch the cascade resolve. Three
// modes share the board: endless scoring, clear-the-board puzzles and a
// roguelike battle against a sequence of monsters.
package orbs

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/orbfall/internal/combat"
	"github.com/vovakirdan/orbfall/internal/config"
	"github.com/vovakirdan/orbfall/internal/core"
	"github.com/vovakirdan/orbfall/internal/match3"
	"github.com/vovakirdan/orbfall/internal/registry"
	"github.com/vovakirdan/orbfall/internal/roguelike"
)

// Mode selects the rules layered over the board.
type Mode string

const (
	ModeEndless Mode = "orbs"
	ModeClear   Mode = "orbs_clear"
	ModeBattle  Mode = "orbs_battle"
)

// clearBonus is awarded for emptying the board in clear mode.
const clearBonus = 100

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall
// back to normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

func init() {
	registry.Register(string(ModeEndless), func() registry.Game { return New(ModeEndless) })
	registry.Register(string(ModeClear), func() registry.Game { return New(ModeClear) })
	registry.Register(string(ModeBattle), func() registry.Game { return New(ModeBattle) })
}

// phase is the board's input state.
type phase int

const (
	phaseIdle     phase = iota // cursor moves freely
	phaseDragging              // an orb is held
	phaseMatching              // matched orbs are flashing
	phaseFalling               // columns have dropped, waiting for the next scan
	phaseShop                  // battle mode upgrade shop
)

// Game implements one orb board session.
type Game struct {
	mode Mode

	// Loaded in Reset unless set by NewWithConfig.
	cfg        config.OrbfallConfig
	fixedCfg   bool
	preset     config.DifficultyPreset // overrides difficultyPreset when set
	catalog    *roguelike.Catalog
	catalogErr error // why the configured catalog was not used

	rng  *rand.Rand
	tick uint64
	seed int64

	screenW  int
	screenH  int
	tickRate int
	tooSmall bool

	palette []orbStyle

	grid    *match3.Grid
	engine  *match3.Engine
	cascade *match3.Cascade
	wave    match3.Wave
	wait    int

	phase     phase
	cursor    match3.Coord
	dragLeft  int // ticks until the held orb is dropped
	dragLimit int
	dragMoved bool

	score     int
	turns     int
	lastCombo int
	bestCombo int
	cleared   int
	message   string

	resolver  *combat.Resolver
	run       *roguelike.Run
	battle    *roguelike.Battle
	report    roguelike.TurnReport
	totalGold int
	shopIdx   int
	shopMsg   string

	paused   bool
	gameOver bool
	won      bool
}

// New creates a game for the given mode. Configuration is loaded on Reset.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(mode Mode, cfg config.OrbfallConfig) *Game {
	return &Game{mode: mode, cfg: cfg, fixedCfg: true}
}

// SetDifficulty picks the preset applied on the next Reset.
func (g *Game) SetDifficulty(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return string(g.mode) }

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeClear:
		return "Orbs (Clear)"
	case ModeBattle:
		return "Orbs (Battle)"
	default:
		return "Orbs (Endless)"
	}
}

// Description explains the mode in one line.
func (g *Game) Description() string {
	switch g.mode {
	case ModeClear:
		return "No refills. Match every orb off the board."
	case ModeBattle:
		return "Fight through worlds of monsters, buying upgrades between stages."
	default:
		return "Endless board. Chain combos for points."
	}
}

// loadConfig resolves the configuration, falling back to the defaults
// when the file cannot be read.
func (g *Game) loadConfig() {
	if !g.fixedCfg {
		cfg, err := config.Load(configPath)
		if err != nil {
			cfg = config.DefaultOrbfallConfig()
		}
		preset := difficultyPreset
		if g.preset != "" {
			preset = g.preset
		}
		if preset != "" {
			config.ApplyPreset(&cfg, preset)
		}
		g.cfg = cfg
	}

	g.catalog, g.catalogErr = nil, nil
	if g.mode != ModeBattle {
		return
	}
	if g.cfg.Catalog != "" {
		cat, err := roguelike.LoadCatalog(g.cfg.Catalog)
		if err == nil {
			g.catalog = cat
			return
		}
		g.catalogErr = err
	}
	cat, err := roguelike.DefaultCatalog()
	if err != nil {
		g.catalogErr = errors.Join(g.catalogErr, err)
		return
	}
	g.catalog = cat
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.loadConfig()

	g.seed = rc.Seed
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tickRate = rc.TickRate

	g.score = 0
	g.turns = 0
	g.lastCombo = 0
	g.bestCombo = 0
	g.cleared = 0
	g.message = ""
	g.paused = false
	g.gameOver = false
	g.won = false
	g.phase = phaseIdle
	g.cascade = nil
	g.wave = match3.Wave{}
	g.wait = 0
	g.dragMoved = false
	g.report = roguelike.TurnReport{}
	g.totalGold = 0
	g.shopIdx = 0
	g.shopMsg = ""

	if g.catalogErr != nil && g.catalog != nil {
		g.message = "Catalog failed to load, using built-in"
	}

	g.palette = buildPalette(g.cfg.Symbols)
	g.setupBoard()
	g.setupBattle()
	g.dragLimit = rc.MsToTicks(g.dragTimeoutMs())
	g.checkScreenSize()
}

func (g *Game) setupBoard() {
	symbols := len(g.cfg.Symbols)
	mode := match3.ModeEndless
	if g.mode == ModeClear {
		mode = match3.ModeClear
	}

	g.grid = match3.NewGrid(g.cfg.Board.Rows, g.cfg.Board.Cols)
	if err := g.grid.Populate(mode, symbols, g.rng); err != nil {
		// Clear mode needs a cell count that splits into triples; play
		// the same board with refills instead.
		g.message = "Board cannot be cleared, refills enabled"
		//nolint:errcheck // Endless population only fails on palette size, validated by config
		g.grid.Populate(match3.ModeEndless, symbols, g.rng)
	}

	gen, err := match3.NewGenerator(g.cfg.Board.Refill, symbols, g.rng)
	if err != nil {
		gen = match3.SafeGenerator{Symbols: symbols, Rand: g.rng}
	}
	g.engine = match3.NewEngine(gen, match3.WithMatcher(match3.RunMatcher{MinRun: g.cfg.Board.MinRun}))
	g.cursor = match3.Coord{Row: g.grid.Rows() / 2, Col: g.grid.Cols() / 2}
}

func (g *Game) setupBattle() {
	g.run, g.battle = nil, nil
	g.resolver = combat.NewResolver(combat.Config{
		SizeBonus:      g.cfg.Combat.SizeBonus,
		ComboScale:     g.cfg.Combat.ComboScale,
		RecoverySymbol: match3.Symbol(g.cfg.RecoverySymbol),
		BaseSize:       g.cfg.Board.MinRun,
	})
	if g.mode != ModeBattle {
		return
	}
	if g.catalog == nil {
		g.message = "No monster catalog"
		g.gameOver = true
		return
	}

	p := g.cfg.Player
	player := combat.NewActor("You", p.HP, p.Atk, p.Def, p.Rcv)
	player.ExtraLives = p.ExtraLives
	g.run = roguelike.NewRun(g.catalog, player)

	b, err := roguelike.NewBattle(g.run, g.resolver)
	if err != nil {
		g.message = err.Error()
		g.gameOver = true
		return
	}
	g.battle = b
}

func (g *Game) dragTimeoutMs() int {
	if g.run != nil {
		return g.run.DragTimeoutMs(g.cfg.Drag.TimeoutMs)
	}
	return g.cfg.Drag.TimeoutMs
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.minSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case phaseIdle:
		g.stepIdle(in)
	case phaseDragging:
		g.stepDrag(in)
	case phaseMatching, phaseFalling:
		g.stepCascade()
	case phaseShop:
		g.stepShop(in)
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// TracksRuns reports whether this mode records run history.
func (g *Game) TracksRuns() bool { return g.mode == ModeBattle }

// RunSummary reports battle progress once the run has ended.
func (g *Game) RunSummary() (registry.RunSummary, bool) {
	if g.run == nil || !g.gameOver {
		return registry.RunSummary{}, false
	}
	world, stage := g.run.WorldIdx, g.run.StageIdx
	if g.run.Finished() {
		world = len(g.catalog.Worlds) - 1
		stage = len(g.catalog.Worlds[world].Stages) - 1
	}
	return registry.RunSummary{
		WorldReached: world + 1,
		StageReached: stage + 1,
		Defeated:     g.run.Defeated,
		Gold:         g.totalGold,
		Victory:      g.won,
	}, true
}
