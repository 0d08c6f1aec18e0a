package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/maze-collector/internal/levels"
	"github.com/vovakirdan/maze-collector/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play levels in the terminal UI",
	Long: `Open the level picker, or jump straight to a level.

Controls:
  Space/Enter  - Run the selected sample program
  Tab/S-Tab    - Choose next/previous program
  S            - Skip the replay animation
  R            - Reset the board
  H            - Run history
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Examples:
  collector play
  collector play c02`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	// The TUI owns the terminal, so logs go to a file.
	logOut, closeLog := tuiLogOutput()
	defer closeLog()

	a, err := loadApp(logOut)
	exitOnError(err)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	svc, err := a.services(store)
	exitOnError(err)

	var start *levels.Level
	if len(args) == 1 {
		lvl, err := a.loader.LoadByID(args[0])
		exitOnError(err)
		start = &lvl
	}

	exitOnError(tui.Run(svc, a.runtime(width, height), start))
}
