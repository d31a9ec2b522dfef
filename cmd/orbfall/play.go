package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/orbfall/internal/core"
	"github.com/vovakirdan/orbfall/internal/platform/tui"
	"github.com/vovakirdan/orbfall/internal/registry"
	"github.com/vovakirdan/orbfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Arrows/WASD/HJKL - Move cursor, or drag the held orb
  Space/Enter      - Pick up / drop an orb, buy in the shop
  Esc/B            - End the session (endless, clear), leave the shop
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.orbfall/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More HP, an extra life and longer drags
  normal - Values from the config file
  hard   - Less HP, shorter drags and unfiltered refills

Examples:
  orbfall play orbs
  orbfall play orbs_clear --seed 7
  orbfall play orbs_battle --difficulty hard
  orbfall play orbs --config ./my-orbfall.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

// terminalConfig builds the runtime config from the terminal size and
// the global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, results will not be saved", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'orbfall list' to see available modes)", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	logger.Debug("starting game", "game", gameID, "seed", cfg.Seed)

	if err := tui.Run(game, store, cfg, logger); err != nil {
		return fmt.Errorf("running %s: %w", gameID, err)
	}
	return nil
}
