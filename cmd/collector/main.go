// collector runs block-programming maze levels in the terminal.
//
// Usage:
//
//	collector list                          - List available levels
//	collector run <level> --sample <name>   - Run a program headlessly
//	collector play [level]                  - Play in the TUI
//	collector serve                         - Start SSH server for remote play
//	collector history <level>               - Show recent runs for a level
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.collector/config.yaml, ./configs/collector.yaml)
//	--db <path>         - Override database path
//	--locale <tag>      - Override message locale (en, es)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import level variants to register them
	_ "github.com/vovakirdan/maze-collector/internal/collector"
	_ "github.com/vovakirdan/maze-collector/internal/goal"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagLocale     string
	flagLogLevel   string
	flagLevelsDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "collector",
	Short: "Collector - block-programming maze levels in your terminal",
	Long: `Collector runs small block programs (move, turn, collect, repeat,
conditionals) for an agent on a grid maze and grades the result.

Available commands:
  list     - Show all available levels
  run      - Run a program headlessly and print the outcome
  play     - Interactive level picker and player
  serve    - Start SSH server for remote play
  history  - View recent runs for a level

Examples:
  collector list
  collector run c01 --sample all
  collector run c01 --program ./my-program.yaml
  collector play c01
  collector serve --ssh :2222
  collector history c01`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "Message locale (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: bundled levels)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}
