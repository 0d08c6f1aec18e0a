package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-collector/internal/levels"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows every level found in the levels directory (or bundled in the binary).`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	a, err := loadApp(os.Stderr)
	exitOnError(err)

	lvls, err := a.loader.LoadAll()
	exitOnError(err)

	printLevels(os.Stdout, lvls)
}

func printLevels(w io.Writer, lvls []levels.Level) {
	if len(lvls) == 0 {
		fmt.Fprintln(w, "No levels available.")
		return
	}

	fmt.Fprintln(w, "Available levels:")
	fmt.Fprintln(w)

	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Fprintf(w, "  %-*s  %-*s  %-9s  %5s  %5s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Type", "Ideal", "Piles", "Programs")
	fmt.Fprintf(w, "  %-*s  %-*s  %-9s  %5s  %5s  %s\n", maxIDLen, "--", maxNameLen, "----", "----", "-----", "-----", "--------")

	for _, l := range lvls {
		fmt.Fprintf(w, "  %-*s  %-*s  %-9s  %5d  %5d  %d\n",
			maxIDLen, l.ID, maxNameLen, l.Name, l.Type, l.Ideal, l.Grid.CollectibleCount(), len(l.Programs))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'collector play <id>' to play a level.")
}
