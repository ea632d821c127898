package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mathrgo/adsearch/kit"
)

// runProblem wires up a Manager for a single problem instance created by
// create, applies the flags common to every subcommand, and runs it. Each
// problem subcommand in commands.go does its own argument parsing and
// hands the resulting kit.CreateProblem here.
func runProblem(cmd *cobra.Command, name string, create kit.CreateProblem) error {
	f := cmd.Flags()
	h, err := heuristicsFromFlags(f)
	if err != nil {
		return err
	}

	man := kit.NewMan()
	man.SetHeuristics(h)
	if err := man.AddProblem(name, name, create); err != nil {
		return err
	}
	if err := man.SelectProblem(name); err != nil {
		return err
	}

	execs, _ := f.GetInt("execs")
	man.SetNrun(execs)

	seed, _ := f.GetInt64("seed")
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	man.SetProblemSeed(seed, 1)
	man.SetSolverSeed(seed+1, 7)

	debug, _ := f.GetInt("debug")
	if debug >= 1 {
		logf, err := os.Create("adsolve.log")
		if err != nil {
			return err
		}
		defer logf.Close()
		man.Log.SetOutput(logf)
		man.Log.SetFormatter(&logrus.JSONFormatter{})
	}
	if debug >= 2 {
		if err := man.AddAct("debug-prompt", "interactive per-iteration prompt", &debugPromptAct{}); err != nil {
			return err
		}
		if err := man.SelectActs("debug-prompt"); err != nil {
			return err
		}
	}

	if err := man.AddAct("print-result", "prints each run's outcome", &printResultAct{}); err != nil {
		return err
	}
	if err := man.AddAct("display-final", "displays the final configuration", &displayAct{}); err != nil {
		return err
	}
	selected := []string{"print-result", "display-final"}

	if plot, _ := f.GetBool("plot"); plot {
		if err := man.AddAct("plot-cost", "charts cost and best cost vs iteration per run", &plotCostAct{}); err != nil {
			return err
		}
		selected = append(selected, "plot-cost")
	}

	if err := man.SelectActs(selected...); err != nil {
		return err
	}

	man.Run()
	return nil
}
