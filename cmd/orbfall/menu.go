package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbfall/internal/platform/tui"
	"github.com/vovakirdan/orbfall/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start orbfall with a mode picker menu",
	Long: `Start orbfall in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a game ends, press Esc to return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select mode
  Tab             - Scores and run history
  Q               - Quit

Examples:
  orbfall menu
  orbfall menu --fps 60
  orbfall menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	difficulty := flagDifficulty

	for {
		menuResult, err := tui.RunMenu(store, cfg, difficulty)
		if err != nil {
			return err
		}

		cfg = menuResult.Config
		difficulty = menuResult.Difficulty

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "error", err)
			continue
		}
		if ds, ok := game.(registry.DifficultySetter); ok {
			if err := ds.SetDifficulty(difficulty); err != nil {
				logger.Warn("difficulty ignored", "difficulty", difficulty, "error", err)
			}
		}

		// A fixed --seed replays the same board every time.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, logger); err != nil {
			logger.Error("game ended with error", "game", menuResult.GameID, "error", err)
		}
	}
}
