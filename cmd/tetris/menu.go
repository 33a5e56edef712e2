package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Open the main menu to start a game or browse the high scores.

Navigation:
  Up/Down      - Move selection
  Enter/Space  - Select
  B            - Back to menu (from a paused or finished game)
  Q/Ctrl+C     - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	newGame, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(tui.StoreOrNil(store), logger, terminalConfig(), newGame); err != nil {
		return fmt.Errorf("error running menu: %w", err)
	}
	return nil
}
