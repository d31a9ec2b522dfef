package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbfall/internal/combat"
	"github.com/vovakirdan/orbfall/internal/config"
	"github.com/vovakirdan/orbfall/internal/match3"
)

var (
	flagSimTurns  int
	flagSimClear  bool
	flagSimCombat bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Resolve random swaps on a seeded board",
	Long: `Build a board from the config and seed, then play random adjacent
swaps and print every resolution. Useful for checking configs and
reproducing boards without a terminal.

Examples:
  orbfall simulate --seed 42
  orbfall simulate --seed 42 --turns 20 --combat
  orbfall simulate --clear --config ./my-orbfall.yaml`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTurns, "turns", 10, "Number of swaps to play")
	simulateCmd.Flags().BoolVar(&flagSimClear, "clear", false, "Use a clear-mode board (no refills)")
	simulateCmd.Flags().BoolVar(&flagSimCombat, "combat", false, "Also report the damage and healing of each turn")
}

// simOptions parameterizes one headless simulation.
type simOptions struct {
	Config config.OrbfallConfig
	Seed   int64
	Turns  int
	Clear  bool
	Combat bool
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("simulating", "seed", seed, "turns", flagSimTurns, "clear", flagSimClear)

	return simulate(cmd.OutOrStdout(), simOptions{
		Config: cfg,
		Seed:   seed,
		Turns:  flagSimTurns,
		Clear:  flagSimClear,
		Combat: flagSimCombat,
	})
}

// simulate plays opts.Turns random swaps and writes each resolution to out.
// The same options always produce the same output.
func simulate(out io.Writer, opts simOptions) error {
	cfg := opts.Config
	rng := rand.New(rand.NewSource(opts.Seed))
	symbols := len(cfg.Symbols)

	mode := match3.ModeEndless
	if opts.Clear {
		mode = match3.ModeClear
	}
	grid := match3.NewGrid(cfg.Board.Rows, cfg.Board.Cols)
	if err := grid.Populate(mode, symbols, rng); err != nil {
		return fmt.Errorf("populate board: %w", err)
	}
	gen, err := match3.NewGenerator(cfg.Board.Refill, symbols, rng)
	if err != nil {
		return err
	}
	engine := match3.NewEngine(gen, match3.WithMatcher(match3.RunMatcher{MinRun: cfg.Board.MinRun}))

	resolver := combat.NewResolver(combat.Config{
		SizeBonus:      cfg.Combat.SizeBonus,
		ComboScale:     cfg.Combat.ComboScale,
		RecoverySymbol: match3.Symbol(cfg.RecoverySymbol),
		BaseSize:       cfg.Board.MinRun,
	})
	p := cfg.Player
	player := combat.NewActor("You", p.HP, p.Atk, p.Def, p.Rcv)
	dummy := combat.NewActor("Dummy", 1, 0, 0, 0)

	fmt.Fprintf(out, "seed %d  %dx%d  %s  %d symbols\n", opts.Seed, grid.Rows(), grid.Cols(), mode, symbols)
	fmt.Fprintln(out, grid.String())

	var total, cleared int
	for turn := 1; turn <= opts.Turns; turn++ {
		from, to, ok := randomSwap(grid, rng)
		if !ok {
			fmt.Fprintln(out, "no swaps left")
			break
		}
		//nolint:errcheck // randomSwap only returns in-bounds cells
		grid.Swap(from.Row, from.Col, to.Row, to.Col)

		res := engine.ResolveToQuiescence(grid, 0)
		total += res.TotalCombo
		cleared += res.Cleared

		fmt.Fprintf(out, "\nturn %d: swap (%d,%d)-(%d,%d)  combo %d  passes %d  cleared %d\n",
			turn, from.Row, from.Col, to.Row, to.Col, res.TotalCombo, res.Passes, res.Cleared)
		for _, g := range res.Groups {
			fmt.Fprintf(out, "  combo %d: %d x %s\n", g.Combo, g.Size(), symbolName(cfg, g.Symbol))
		}
		if opts.Combat && res.TotalCombo > 0 {
			cls := resolver.ClassifyGroups(res.Groups)
			atk := resolver.AttackDamage(player, dummy, cls.Attack, res.TotalCombo)
			rcv := resolver.Recovery(player, cls.Recovery)
			fmt.Fprintf(out, "  damage %d (x%.2f)  heal %d\n", atk.Final, atk.ComboMultiplier, rcv.Total)
		}
		fmt.Fprintln(out, grid.String())

		if opts.Clear && grid.IsClear() {
			fmt.Fprintln(out, "board cleared")
			break
		}
	}

	fmt.Fprintf(out, "\ntotal combos %d  cleared %d  remaining %d\n", total, cleared, grid.Remaining())
	return nil
}

// randomSwap picks a random occupied cell and an occupied orthogonal
// neighbour. It reports false when no such pair exists.
func randomSwap(g *match3.Grid, rng *rand.Rand) (from, to match3.Coord, ok bool) {
	var pairs [][2]match3.Coord
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.IsEmpty(r, c) {
				continue
			}
			// Down and right only, so each pair is listed once.
			for _, d := range [2][2]int{{1, 0}, {0, 1}} {
				nr, nc := r+d[0], c+d[1]
				if g.InBounds(nr, nc) && !g.IsEmpty(nr, nc) {
					pairs = append(pairs, [2]match3.Coord{{Row: r, Col: c}, {Row: nr, Col: nc}})
				}
			}
		}
	}
	if len(pairs) == 0 {
		return from, to, false
	}
	p := pairs[rng.Intn(len(pairs))]
	return p[0], p[1], true
}

func symbolName(cfg config.OrbfallConfig, s match3.Symbol) string {
	if int(s) >= 0 && int(s) < len(cfg.Symbols) {
		return cfg.Symbols[s].Name
	}
	return fmt.Sprintf("#%d", s)
}
