/*
Package adsearch implements Adaptive Search, a generic local-search
meta-heuristic for constraint-satisfaction problems over permutations.
A Solver repeatedly mutates a configuration σ (a permutation of some
declared alphabet) by selecting a high-cost variable, seeking a partner
to swap it with that reduces an externally supplied cost, and escaping
local minima by freezing variables and occasionally resetting part of
the configuration. For an introduction to the underlying algorithm see
the original Adaptive Search papers and code by Codognet & Diaz.

Relation to Other Sub Packages

 Package adsearch lives at the top of a small hierarchy of packages.

 Package adsearch contains the engine itself: Solver, the Model
 interface a problem must satisfy to be searched, and Heuristics, the
 tuning knobs a driver passes through from the command line.

 Package bitvec provides the fixed-width bit-vector domains used by
 constraint-propagation-heavy models.

 Package alldiff is a forward-checking and channeling all-different
 propagator built on bitvec, used by the qwh model.

 Packages under problem/ are concrete Model implementations: All-Interval
 Series, Langford/Skolem sequences, Quasigroup Completion, Stable
 Matching with Ties and Incomplete lists.

 Package qwh is the Quasigroup-With-Holes Model, the one concrete
 instantiation detailed enough to exercise alldiff.

 Package kit enables a high level multiple-run interface where problems,
 heuristics, and reporting actions are referred to by name, the way
 psokit did for particle swarm optimizers.

Variable Selection

While searching, the Solver keeps a mark vector of swap-count
timestamps: a variable is frozen while its mark exceeds the current
swap count. Freezing lets the search move past a local minimum without
immediately undoing the escape. Select-High-Cost picks the worst
offender among unfrozen variables (breaking ties uniformly); the
engine then searches for the best swap partner for it, falling back to
"freeze and stay" when no partner improves things.

Resets and Restarts

When too many variables accumulate freezes, the Solver asks the model
to Reset a fraction of the configuration, which the model is free to
satisfy however suits its structure (QWH repairs rows; other models may
simply redraw a subrange). When an entire restart's iteration budget is
exhausted without reaching the target cost, the Solver reinitializes
the configuration and begins again, keeping the best configuration seen
across all restarts.

adsearch can be used in low level coding and the higher level run
management is provided by the kit package in

	import "github.com/mathrgo/adsearch/kit"

you can quickly get to run an example by going to the adsearch/cmd/adsolve
directory in a terminal then execute

	go run . allinterval -b 1 -s 1 12
*/
package adsearch
