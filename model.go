/*
Package adsearch implements the generic adaptive-search local-search
engine: variable selection, neighborhood exploration, local-minimum
escape, reset and restart, driven by a pluggable problem Model. It is
grounded on ad_solver.c (Select_Var_High_Cost, Select_Var_Min_Conflict,
Select_Vars_To_Swap, Ad_Swap, Do_Reset, Ad_Solve), generalized the way
setpso.Pso generalizes its particle-swarm engine over a Fun interface:
the engine never names a concrete problem type, only the capability set
declared here.
*/
package adsearch

import "io"

// Model is the capability set a problem instance must satisfy to be
// driven by Solver.Solve. It corresponds to the source's link-time
// overridable functions (Cost_On_Variable, Reset, ...), expressed here
// as a Go interface the way setpso.go expresses Pso's problem contract
// as the Fun interface.
type Model interface {
	// Size returns the number of decision variables N.
	Size() int

	// Sigma returns the live configuration array; the engine mutates it
	// directly by index when it commits a swap. The model owns the
	// backing array for the lifetime of Solve.
	Sigma() []int

	// CostOfSolution recomputes the objective from scratch. When record
	// is true the model re-primes any private tables (row/column
	// bookkeeping, propagator domains) as a side effect.
	CostOfSolution(record bool) int

	// CostOnVariable estimates variable i's contribution to the cost.
	CostOnVariable(i int) int

	// CostIfSwap returns the cost the configuration would have if i and j
	// were exchanged, given the current total cost. It may mutate
	// private state temporarily but must restore it before returning
	// unless Heuristics.ReinitAfterIfSwap is set, in which case the
	// engine re-primes via CostOfSolution(false) once scanning ends.
	CostIfSwap(total, i, j int) int

	// ExecutedSwap notifies the model that i and j were just committed.
	ExecutedSwap(i, j int)

	// NextI returns the next variable to visit after i when scanning for
	// the highest-cost variable. Models with no special order should
	// return DefaultNextI(size, i).
	NextI(i int) int

	// NextJ returns the next partner to consider for i after j (j < 0
	// requests the first candidate). In exhaustive mode candidates must
	// satisfy j > i. Models with no special order should return
	// DefaultNextJ(size, i, j, exhaustive).
	NextJ(i, j int, exhaustive bool) int

	// Reset asks the model to perturb n variables and returns the
	// resulting cost if known; ok=false tells the engine to recompute
	// via CostOfSolution(true).
	Reset(n int) (cost int, ok bool)

	// SetInitialConfiguration (re)writes Sigma with a valid starting
	// permutation.
	SetInitialConfiguration()

	// Display writes a human-readable rendering of the current
	// configuration to w.
	Display(w io.Writer)

	// CheckSolution independently verifies the current configuration
	// satisfies the model's constraints, for diagnostics/tests.
	CheckSolution() bool
}

// DefaultNextI is the natural variable order i+1 (mod size), used by
// models that have no preferred visiting order.
func DefaultNextI(size, i int) int {
	return (i + 1) % size
}

// DefaultNextJ is the natural partner order: j+1 (mod size) in
// non-exhaustive mode; in exhaustive mode, i+1 when starting (j < 0) and
// j+1 afterward, saturating to -1 once j reaches size-1 (no more pairs
// with this i).
func DefaultNextJ(size, i, j int, exhaustive bool) int {
	if exhaustive {
		if j < 0 {
			j = i
		}
		j++
		if j >= size {
			return -1
		}
		return j
	}
	return (j + 1) % size
}
