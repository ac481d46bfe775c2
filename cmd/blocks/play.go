package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

var flagNewGame bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the block puzzle",
	Long: `Start playing. The saved game of the current player is resumed unless
--new is given. Progress is saved after every placement.

Controls:
  Arrows/WASD    - Move the piece
  Tab/Shift+Tab  - Next/previous piece in hand
  1-3            - Pick a piece
  Enter/Space    - Place
  G              - Toggle grid
  P              - Pause
  R              - New game
  ?              - All keys
  Esc/Q          - Quit

Examples:
  blocks play
  blocks play --new
  blocks play --seed 42 --new
  blocks play --config ./my-blocks.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNewGame, "new", false, "Start a new game instead of resuming")
}

func runPlay(_ *cobra.Command, _ []string) error {
	game, err := registry.Create(blocks.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
		if flagNewGame {
			if err := tui.DiscardSavedGame(store, blocks.GameID, flagPlayer); err != nil {
				logger.Warn("could not discard saved game", "error", err)
			}
		}
	}

	logger.Info("starting game", "player", flagPlayer, "resume", !flagNewGame, "seed", flagSeed)
	return tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Player: flagPlayer,
		Logger: logger,
		Resume: !flagNewGame,
	})
}
