package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-collector/internal/engine"
	"github.com/vovakirdan/maze-collector/internal/levels"
	"github.com/vovakirdan/maze-collector/internal/maze"
	"github.com/vovakirdan/maze-collector/internal/program"
	"github.com/vovakirdan/maze-collector/internal/storage"
)

var (
	flagProgramFile string
	flagSample      string
	flagNoSave      bool
	flagStrict      bool
)

var runCmd = &cobra.Command{
	Use:   "run <level>",
	Short: "Run a program against a level and print the outcome",
	Long: `Run a block program headlessly and print the final board, the
outcome, the grade and the level's message.

Without --program or --sample every sample program bundled with the level
is run in turn.

Examples:
  collector run c01 --sample all
  collector run c01 --program ./harvest.yaml
  collector run c01 --strict        # exit 2 unless every run passes`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagProgramFile, "program", "", "Path to a program YAML file")
	runCmd.Flags().StringVar(&flagSample, "sample", "", "Name of a sample program bundled with the level")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the history database")
	runCmd.Flags().BoolVar(&flagStrict, "strict", false, "Exit with status 2 unless every run passes")
}

func runRun(_ *cobra.Command, args []string) {
	a, err := loadApp(os.Stderr)
	exitOnError(err)

	lvl, err := a.loader.LoadByID(args[0])
	exitOnError(err)

	progs, err := selectPrograms(lvl)
	exitOnError(err)

	var store *storage.Store
	if !flagNoSave {
		store = a.openStore()
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	allPassed := true
	for i, p := range progs {
		if i > 0 {
			fmt.Println()
		}
		session, err := engine.NewSession(lvl, a.messages, a.logger)
		exitOnError(err)

		res, err := a.engine.Execute(ctx, session, p, nil)
		exitOnError(err)

		printResult(os.Stdout, session, p, res)
		allPassed = allPassed && res.Grade.Passed()

		if store != nil {
			if _, err := store.SaveRun(storage.RunRecord{
				LevelID:    lvl.ID,
				Program:    p.Name,
				Player:     os.Getenv("USER"),
				Outcome:    res.Outcome,
				Grade:      res.Grade,
				BlocksUsed: res.BlocksUsed,
				Collected:  res.Collected,
			}); err != nil {
				a.logger.Warn("could not save run", "error", err)
			}
		}
	}

	if flagStrict && !allPassed {
		os.Exit(2)
	}
}

// selectPrograms resolves the --program/--sample flags.
func selectPrograms(lvl levels.Level) ([]program.Program, error) {
	switch {
	case flagProgramFile != "" && flagSample != "":
		return nil, fmt.Errorf("--program and --sample are mutually exclusive")
	case flagProgramFile != "":
		p, err := program.ParseFile(flagProgramFile)
		if err != nil {
			return nil, err
		}
		return []program.Program{p}, nil
	case flagSample != "":
		p, err := lvl.Program(flagSample)
		if err != nil {
			return nil, err
		}
		return []program.Program{p}, nil
	}

	names := lvl.ProgramNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("level %s has no sample programs; use --program", lvl.ID)
	}
	progs := make([]program.Program, 0, len(names))
	for _, n := range names {
		p, err := lvl.Program(n)
		if err != nil {
			return nil, err
		}
		progs = append(progs, p)
	}
	return progs, nil
}

// printResult writes the final board and the verdict.
func printResult(w io.Writer, s *engine.Session, p program.Program, res engine.Result) {
	agent := res.Agent
	fmt.Fprintf(w, "%s / %s\n\n", s.Level.ID, p.Name)
	fmt.Fprintln(w, maze.RenderASCII(s.Grid, &agent))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  outcome: %s\n", res.Outcome)
	fmt.Fprintf(w, "  grade:   %s\n", res.Grade)
	fmt.Fprintf(w, "  blocks:  %d / %d\n", res.BlocksUsed, res.BlockLimit)
	if s.Variant.IsCollectorLevel() {
		fmt.Fprintf(w, "  collected: %g of %g\n", res.Collected, res.Potential)
	}
	if res.Stop != engine.StopCompleted {
		fmt.Fprintf(w, "  stopped: %s after %d steps\n", res.Stop, len(res.Steps))
	}
	if res.HasMessage {
		fmt.Fprintf(w, "\n  %s\n", res.Message)
	}
	if res.Hint != "" {
		fmt.Fprintf(w, "  %s\n", res.Hint)
	}
}
