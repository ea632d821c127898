/*
Command adsolve is the CLI driver for the adaptive-search engine,
replacing ad_solver.c's getopt-based option parsing with a cobra.Command
per problem family: a driver, not core. The flag set matches the
original -b/-s/-p/-f/-F/-l/-L/-x/-X/-t/-T/-i/-d options, plus -config
for the YAML heuristics overrides the original CLI lacked.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "adsolve",
		Short: "Run the adaptive-search engine against a problem instance",
		Long: "adsolve drives the adsearch engine against one of five " +
			"problem families (all-interval series, Langford/Skolem, " +
			"quasigroup completion, quasigroup with holes, stable " +
			"matching with ties and incomplete lists).",
	}
	addCommonFlags(root)
	root.AddCommand(
		newAllIntervalCmd(),
		newLangfordCmd(),
		newQuasigroupCmd(),
		newQwhCmd(),
		newSMTICmd(),
	)
	return root
}

func addCommonFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.IntP("execs", "b", 1, "number of independent runs")
	pf.Int64P("seed", "s", -1, "random seed; -1 derives one from the current time")
	pf.IntP("prob", "p", 101, "local-minimum escape probability 0..100 (>100 disables the coin flip)")
	pf.IntP("freeze-loc-min", "f", 1, "freeze horizon, in swaps, on a local-minimum escape")
	pf.IntP("freeze-swap", "F", 0, "freeze horizon, in swaps, on a committed swap")
	pf.IntP("reset-limit", "l", 1000000, "marked-variable count that triggers a reset")
	pf.IntP("reset-percent", "L", 10, "percent of variables a reset perturbs")
	pf.IntP("restart-limit", "x", 10000000, "iteration cap per restart")
	pf.IntP("restart-max", "X", 1, "restart cap")
	pf.IntP("target", "t", 0, "target cost; the run halts once reached")
	pf.BoolP("optim", "T", false, "mark the run as an optimization problem")
	pf.BoolP("do-not-init", "i", false, "skip the initial random configuration")
	pf.IntP("debug", "d", 0, "debug level: 1 logs every committed swap and reset to adsolve.log, 2 also prompts after each of them")
	pf.Lookup("debug").NoOptDefVal = "1"
	pf.String("config", "", "YAML file of heuristics overrides, applied after the flags above")
	pf.Bool("plot", false, "write a plotCost<run>.png chart of cost vs. iteration per run")
}
