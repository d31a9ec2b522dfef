// orbfall is a terminal orb-matching game: drag orbs, chain cascades and
// fight through worlds of monsters.
//
// Usage:
//
//	orbfall list               - List available modes
//	orbfall play <mode>        - Play a mode
//	orbfall menu               - Pick modes interactively
//	orbfall serve              - Start SSH server for remote play
//	orbfall scores <mode>      - Show high scores or run history
//	orbfall simulate           - Resolve random swaps headlessly
//
// Global flags default to the ORBFALL_* environment variables:
//
//	--fps <rate>          - Set tick rate (ORBFALL_FPS, default: 30)
//	--seed <value>        - Set RNG seed (ORBFALL_SEED)
//	--db <path>           - Set database path (ORBFALL_DB, default: ~/.orbfall/scores.db)
//	--config <path>       - Game config YAML (ORBFALL_CONFIG)
//	--difficulty <preset> - easy, normal or hard (ORBFALL_DIFFICULTY)
//	--log-level <level>   - debug, info, warn or error (ORBFALL_LOG_LEVEL)
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbfall/internal/config"
	"github.com/vovakirdan/orbfall/internal/games/orbs"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "orbfall",
	})
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orbfall",
	Short: "Orbfall - drag orbs, chain combos, slay monsters",
	Long: `Orbfall is a terminal orb-matching game. Pick an orb up, drag it
around the board and let the cascade resolve. Three modes share the board:

  orbs         - Endless board, score cleared orbs times combo
  orbs_clear   - No refills, empty the board for a bonus
  orbs_battle  - Roguelike run through worlds of monsters

Available commands:
  list      - Show all available modes
  play      - Play a specific mode directly
  menu      - Interactive mode picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores and run history
  simulate  - Resolve random swaps without a terminal

Examples:
  orbfall list
  orbfall play orbs_battle --difficulty easy
  orbfall menu
  orbfall serve --ssh :2222
  orbfall simulate --seed 42 --turns 5`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	env, err := config.LoadEnv()
	if err != nil {
		logger.Warn("ignoring environment", "error", err)
		env = config.Env{DBPath: "~/.orbfall/scores.db", FPS: 30, LogLevel: "info", SSHAddr: ":23234"}
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", env.DBPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", env.ConfigPath, "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", env.Difficulty, "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	addServeFlags(env)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup applies the global flags before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)

	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	orbs.SetConfigPath(flagConfig)
	orbs.SetDifficultyPreset(flagDifficulty)
	logger.Debug("configured", "config", flagConfig, "difficulty", flagDifficulty, "fps", flagFPS, "db", flagDBPath)
	return nil
}
