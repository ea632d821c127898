package adsearch

// NoLocMinProb is the sentinel value for Heuristics.ProbSelectLocMin that
// disables probability-gated escape entirely (the engine then escapes
// unconditionally whenever both tie lists have at most one entry, exactly
// as ad_solver.c treats any value outside 0..100).
const NoLocMinProb = 101

// Heuristics bundles the per-run tuning parameters of ad_solver.c's
// AdData (renamed to drop the C struct's Hungarian-notation feel): the
// probability/freeze/reset/restart/target knobs the driver passes
// through from the command line's -p -f -F -l -L -x -X -t -T -i flags.
type Heuristics struct {
	// ProbSelectLocMin is the percent chance (0..100) of declaring a
	// local-minimum escape when no candidate partner strictly improves
	// the current cost; NoLocMinProb disables the coin flip (escape becomes
	// unconditional whenever both tie lists are singletons).
	ProbSelectLocMin int

	// FreezeLocMin is the freeze horizon (in swaps) applied to i* on a
	// local-minimum escape.
	FreezeLocMin int

	// FreezeSwap is the freeze horizon applied to both i* and j* on a
	// committed swap.
	FreezeSwap int

	// ResetLimit: once nb_var_marked+1 reaches this, escape triggers a
	// reset instead of just freezing.
	ResetLimit int

	// ResetPercent controls how many variables Reset is asked to
	// perturb: max(1, ResetPercent*N/100).
	ResetPercent int

	// RestartLimit bounds nb_iter per restart.
	RestartLimit int

	// RestartMax bounds the number of restarts.
	RestartMax int

	// TargetCost: Solve halts once TotalCost <= TargetCost.
	TargetCost int

	// OptimPb marks this as an optimization (not just satisfaction)
	// problem, for driver-side reporting only; the engine's own halting
	// rule is unaffected.
	OptimPb bool

	// DoNotInit skips the initial SetInitialConfiguration call, letting
	// the model supply its own pre-seeded Sigma (the -i flag).
	DoNotInit bool

	// Exhaustive selects the exhaustive pairwise scan instead of the
	// two-phase select-high-cost / select-min-conflict scan.
	Exhaustive bool

	// FirstBest accepts the first strictly improving candidate instead
	// of scanning for the best one.
	FirstBest bool

	// IgnoreMarkIfBest lets a frozen partner be considered anyway when
	// doing so would improve on the best cost seen this restart
	// (IGNORE_MARK_IF_BEST in ad_solver.c).
	IgnoreMarkIfBest bool

	// ReinitAfterIfSwap asserts that CostIfSwap does not restore its own
	// temporary mutations; when true the engine calls
	// CostOfSolution(false) once after each scan to re-prime the model.
	ReinitAfterIfSwap bool

	// UnmarkAtReset selects how marks are cleared on reset: 2 clears
	// every mark unconditionally; any other value leaves them untouched.
	// Model.Reset has no access to the marks, so 1 clears none either.
	UnmarkAtReset int

	// ExhaustiveTieCap bounds the ring-buffer tie list used in exhaustive
	// mode; <= 0 defaults to the problem size N. Exposed as a tunable
	// rather than hard-coded, since the underlying algorithm silently
	// truncates ties beyond this count.
	ExhaustiveTieCap int
}

// DefaultHeuristics returns the parameter set ad_solver.c's
// Init_Parameters installs before command-line overrides.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		ProbSelectLocMin: NoLocMinProb,
		FreezeLocMin:     1,
		FreezeSwap:       0,
		ResetLimit:       1000000,
		ResetPercent:     10,
		RestartLimit:     10000000,
		RestartMax:       1,
		TargetCost:       0,
		OptimPb:          false,
	}
}
