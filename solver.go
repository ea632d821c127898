package adsearch

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/mathrgo/adsearch/internal/rng"
)

// bigCost is the sentinel used in place of ad_solver.c's BIG = INT_MAX/2
// for "no candidate seen yet": the natural maximum of the chosen
// integer type, not a magic exported constant.
const bigCost = math.MaxInt

// Stats reports the observable counters of a run, accumulated across
// every restart of a single Solve call.
type Stats struct {
	NbIter, NbSwap, NbSameVar, NbReset, NbLocalMin, NbRestart int
	NbIterTot, NbSwapTot, NbSameVarTot, NbResetTot, NbLocalMinTot int
	BestCost        int
	OverallBestCost int
}

// Solver owns the engine's scratch state: the mark vector, swap
// counter, and running counters of a search. It replaces ad_solver.c's
// module-global mark/list_i/list_j/list_ij arrays and "current problem"
// pointer with fields of a value the caller constructs once per Solve
// invocation.
type Solver struct {
	H   Heuristics
	Rng *rng.Source
	// Log, when non-nil, receives one Debug entry per committed swap and
	// per reset, the optional iteration log a caller can redirect to a
	// file. Local-minimum escapes that do not trigger a reset are not
	// logged.
	Log *logrus.Logger

	n         int
	mark      []uint64
	swapCount uint64

	totalCost int
	bestCost  int

	stats Stats
}

// NewSolver allocates a Solver for a problem of the given size.
func NewSolver(size int, h Heuristics, source *rng.Source) *Solver {
	return &Solver{
		H:    h,
		Rng:  source,
		n:    size,
		mark: make([]uint64, size),
	}
}

// Mark freezes variable i for k further swaps.
func (s *Solver) Mark(i, k int) {
	s.mark[i] = s.swapCount + uint64(k)
}

// Unmark clears any freeze on i.
func (s *Solver) Unmark(i int) {
	s.mark[i] = 0
}

// Frozen reports whether i is currently frozen.
func (s *Solver) Frozen(i int) bool {
	return s.mark[i] >= s.swapCount+1
}

func (s *Solver) clearMarks() {
	for i := range s.mark {
		s.mark[i] = 0
	}
}

// TotalCost returns the cost of the configuration as of the most
// recently committed swap or reset, for callers observing a run in
// progress (e.g. a per-iteration plotting Action).
func (s *Solver) TotalCost() int { return s.totalCost }

// BestCost returns the best cost seen so far in the current restart.
func (s *Solver) BestCost() int { return s.bestCost }

// Solve runs the adaptive-search loop against model until the target
// cost is reached or the restart budget is exhausted, and returns the
// best cost found together with the accumulated counters. It never
// returns an error for "target not reached": that is not a failure,
// only a result the caller interprets.
func (s *Solver) Solve(model Model) (bestCost int, stats Stats) {
	s.n = model.Size()
	if len(s.mark) != s.n {
		s.mark = make([]uint64, s.n)
	}
	overallBest := bigCost
	var overallBestSigma []int

	for restart := 0; ; restart++ {
		if !s.H.DoNotInit || restart > 0 {
			model.SetInitialConfiguration()
		}
		s.clearMarks()
		s.swapCount = 0
		s.totalCost = model.CostOfSolution(true)
		s.bestCost = s.totalCost
		bestSigma := append([]int(nil), model.Sigma()...)

		nbIter, nbSwap, nbSameVar, nbReset, nbLocalMin := 0, 0, 0, 0, 0

		for s.totalCost > s.H.TargetCost && nbIter < s.H.RestartLimit {
			nbVarMarked := 0
			var iStar, jStar, newCost int
			var committed bool

			if s.H.Exhaustive {
				var allFrozen bool
				iStar, jStar, newCost, allFrozen = s.selectExhaustive(model, &nbVarMarked, &nbSameVar)
				if allFrozen {
					s.swapCount++
					nbIter++
					continue
				}
				committed = true
			} else {
				var tieI []int
				var allFrozen bool
				var maxCost int
				iStar, tieI, maxCost, allFrozen = s.selectHighCost(model, &nbVarMarked)
				if allFrozen {
					// Every variable is frozen: no progress possible until a
					// mark thaws. Advance the swap counter artificially so
					// marks decay, a silent retry rather than a dead end.
					s.swapCount++
					nbIter++
					continue
				}
				_ = maxCost

				redraws := 0
				for !committed && redraws <= len(tieI) {
					j, c, found := s.selectPartner(model, iStar, len(tieI), &nbVarMarked, &nbSameVar)
					if !found {
						nbIter++
						redraws++
						iStar = tieI[s.Rng.Uniform(len(tieI))]
						continue
					}
					jStar, newCost = j, c
					committed = true
				}
			}

			if committed {

				if jStar == iStar {
					nbLocalMin++
					s.Mark(iStar, s.H.FreezeLocMin)
					nbVarMarked++
					if nbVarMarked+1 >= s.H.ResetLimit {
						n := maxInt(1, s.H.ResetPercent*s.n/100)
						cost, known := model.Reset(n)
						if !known {
							cost = model.CostOfSolution(true)
						}
						s.totalCost = cost
						nbReset++
						if s.H.UnmarkAtReset == 2 {
							s.clearMarks()
						}
						if s.Log != nil {
							s.Log.WithFields(logrus.Fields{"nb_reset": nbReset, "cost": cost}).Debug("reset")
						}
					}
				} else {
					s.Mark(iStar, s.H.FreezeSwap)
					s.Mark(jStar, s.H.FreezeSwap)
					sigma := model.Sigma()
					sigma[iStar], sigma[jStar] = sigma[jStar], sigma[iStar]
					s.swapCount++
					nbSwap++
					s.totalCost = newCost
					model.ExecutedSwap(iStar, jStar)
					if s.totalCost < s.bestCost {
						s.bestCost = s.totalCost
						copy(bestSigma, model.Sigma())
					}
					if s.Log != nil {
						s.Log.WithFields(logrus.Fields{
							"iter": nbIter, "cost": s.totalCost, "marked": nbVarMarked,
							"i": iStar, "j": jStar,
						}).Debug("swap")
					}
				}
			}
			nbIter++
		}

		s.stats.NbIterTot += nbIter
		s.stats.NbSwapTot += nbSwap
		s.stats.NbSameVarTot += nbSameVar
		s.stats.NbResetTot += nbReset
		s.stats.NbLocalMinTot += nbLocalMin

		if s.bestCost < overallBest {
			overallBest = s.bestCost
			overallBestSigma = append(overallBestSigma[:0], bestSigma...)
		}

		if s.totalCost <= s.H.TargetCost || restart+1 >= s.H.RestartMax {
			s.stats.NbRestart = restart + 1
			break
		}
	}

	if overallBestSigma != nil && overallBest < s.totalCost {
		copy(model.Sigma(), overallBestSigma)
		s.totalCost = overallBest
	}

	s.stats.BestCost = s.bestCost
	s.stats.OverallBestCost = overallBest
	return overallBest, s.stats
}

// selectHighCost implements the select-high-cost variable phase,
// grounded on ad_solver.c's Select_Var_High_Cost: scan every
// variable via NextI, skip frozen ones while counting them, and keep a
// reservoir tie list of the current argmax.
func (s *Solver) selectHighCost(model Model, nbVarMarked *int) (iStar int, tie []int, maxCost int, allFrozen bool) {
	maxCost = -bigCost
	i := 0
	for count := 0; count < s.n; count++ {
		if s.Frozen(i) {
			*nbVarMarked++
		} else {
			c := model.CostOnVariable(i)
			switch {
			case c > maxCost:
				maxCost = c
				tie = tie[:0]
				tie = append(tie, i)
			case c == maxCost:
				tie = append(tie, i)
			}
		}
		i = model.NextI(i)
	}
	if len(tie) == 0 {
		return 0, nil, 0, true
	}
	iStar = tie[s.Rng.Uniform(len(tie))]
	return iStar, tie, maxCost, false
}

// selectPartner implements the select-min-conflict partner phase,
// grounded on ad_solver.c's Select_Var_Min_Conflict. tieILen is the size
// of the phase-1 high-cost tie list iStar was drawn from; a forced
// escape requires both tie lists to be singletons, not just this one.
//
// When ProbSelectLocMin is the sentinel NoLocMinProb, the source leaves
// the dummy j == iStar ("stay put") in the scan instead of filtering it
// out, so it competes as an ordinary tied candidate at cost
// s.totalCost; with the probability-based escape active
// (ProbSelectLocMin <= 100) the dummy is excluded and the coin flip
// alone decides whether to escape.
func (s *Solver) selectPartner(model Model, iStar, tieILen int, nbVarMarked, nbSameVar *int) (jStar, newCost int, found bool) {
	minCost := bigCost
	var tie []int

	includeStay := s.H.ProbSelectLocMin > 100

	first := model.NextJ(iStar, -1, s.H.Exhaustive)
	j := first
	visited := 0
	for j >= 0 && visited <= s.n {
		if j == iStar {
			if includeStay {
				x := s.totalCost
				switch {
				case x < minCost:
					minCost = x
					tie = tie[:0]
					tie = append(tie, j)
				case x == minCost:
					tie = append(tie, j)
				}
			}
		} else {
			consider := !s.Frozen(j)
			if !consider && s.H.IgnoreMarkIfBest {
				consider = true
			}
			if !consider {
				*nbVarMarked++
			} else {
				x := model.CostIfSwap(s.totalCost, iStar, j)
				if s.Frozen(j) && !(x < s.bestCost) {
					// IgnoreMarkIfBest only licenses a frozen partner
					// when it actually improves on the best known cost.
				} else {
					switch {
					case x < minCost:
						minCost = x
						tie = tie[:0]
						tie = append(tie, j)
					case x == minCost:
						tie = append(tie, j)
					}
					if s.H.FirstBest && x < s.totalCost {
						if s.H.ReinitAfterIfSwap {
							model.CostOfSolution(false)
						}
						return j, x, true
					}
				}
			}
		}
		visited++
		nj := model.NextJ(iStar, j, s.H.Exhaustive)
		if nj == first || nj < 0 {
			break
		}
		j = nj
	}

	if s.H.ReinitAfterIfSwap {
		model.CostOfSolution(false)
	}

	*nbSameVar += len(tie)

	if len(tie) == 0 {
		return 0, 0, false
	}

	escape := minCost >= s.totalCost
	if escape {
		forced := len(tie) <= 1 && tieILen <= 1
		switch {
		case forced:
			return iStar, s.totalCost, true
		case s.H.ProbSelectLocMin <= 100:
			if s.Rng.Uniform(100) < s.H.ProbSelectLocMin {
				return iStar, s.totalCost, true
			}
		default:
			// Sentinel mode, not forced: let the tie list decide. It
			// already contains the "stay" dummy when includeStay is
			// set, so picking it below naturally freezes iStar instead
			// of swapping.
		}
	}

	jStar = tie[s.Rng.Uniform(len(tie))]
	return jStar, minCost, true
}

// exhaustivePair is one candidate swap kept in selectExhaustive's ring
// buffer tie list.
type exhaustivePair struct{ i, j int }

// selectExhaustive implements the exhaustive selection mode: a single
// pass over every ordered pair (i,j), j>i, yielded by NextI/NextJ, in
// place of the two-phase select-high-cost/select-min-conflict scan.
// Ties are kept in a ring buffer of capacity Heuristics.ExhaustiveTieCap
// (default N) with the overwrite rule k' = (k+1) mod cap: ties beyond
// the tieCap'th are silently dropped. When no pair improves on
// total_cost: in sentinel mode (ProbSelectLocMin is NoLocMinProb) the
// engine freezes a single variable drawn from the plain set of unfrozen
// variables, weighted, when the ring is non-empty, against taking a
// non-improving pair from the ring instead; otherwise it freezes the
// first variable of a pair drawn from the ring (reporting allFrozen
// when the ring is empty), and ProbSelectLocMin's percentage is not
// consulted in exhaustive mode.
func (s *Solver) selectExhaustive(model Model, nbVarMarked, nbSameVar *int) (iStar, jStar, newCost int, allFrozen bool) {
	tieCap := s.H.ExhaustiveTieCap
	if tieCap <= 0 {
		tieCap = s.n
	}
	if tieCap < 1 {
		tieCap = 1
	}

	ring := make([]exhaustivePair, 0, tieCap)
	k := 0
	minCost := bigCost
	var nonFrozen []int

	i := 0
	for ci := 0; ci < s.n; ci++ {
		frozenI := s.Frozen(i)
		if frozenI {
			*nbVarMarked++
		} else {
			nonFrozen = append(nonFrozen, i)
		}

		first := model.NextJ(i, -1, true)
		j := first
		visited := 0
		for j >= 0 && visited <= s.n {
			if j > i {
				consider := !frozenI && !s.Frozen(j)
				if !consider && s.H.IgnoreMarkIfBest {
					consider = true
				}
				if consider {
					x := model.CostIfSwap(s.totalCost, i, j)
					if (frozenI || s.Frozen(j)) && !(x < s.bestCost) {
						// IgnoreMarkIfBest only licenses a frozen
						// participant when it actually improves on the
						// best cost seen this restart.
					} else {
						switch {
						case x < minCost:
							minCost = x
							ring = ring[:0]
							ring = append(ring, exhaustivePair{i, j})
							k = 0
						case x == minCost:
							if len(ring) < tieCap {
								ring = append(ring, exhaustivePair{i, j})
							} else {
								ring[k] = exhaustivePair{i, j}
							}
							k = (k + 1) % tieCap
						}
						if s.H.FirstBest && x < s.totalCost {
							if s.H.ReinitAfterIfSwap {
								model.CostOfSolution(false)
							}
							return i, j, x, false
						}
					}
				}
			}
			visited++
			nj := model.NextJ(i, j, true)
			if nj == first || nj < 0 {
				break
			}
			j = nj
		}
		i = model.NextI(i)
	}

	if s.H.ReinitAfterIfSwap {
		model.CostOfSolution(false)
	}
	*nbSameVar += len(ring)

	if len(ring) > 0 && minCost < s.totalCost {
		p := ring[s.Rng.Uniform(len(ring))]
		return p.i, p.j, minCost, false
	}

	// No improving pair. In sentinel mode, force-freezing only when the
	// ring is empty: otherwise weight a fresh-variable freeze against
	// picking a non-improving pair from the ring, via
	// Random(len(ring)+n) < n, matching ad_solver.c's
	// Select_Vars_To_Swap.
	if s.H.ProbSelectLocMin > 100 {
		if len(ring) > 0 && s.Rng.Uniform(len(ring)+s.n) >= s.n {
			p := ring[s.Rng.Uniform(len(ring))]
			return p.i, p.j, minCost, false
		}
		if len(nonFrozen) == 0 {
			return 0, 0, 0, true
		}
		iStar = nonFrozen[s.Rng.Uniform(len(nonFrozen))]
		return iStar, iStar, s.totalCost, false
	}
	if len(ring) == 0 {
		return 0, 0, 0, true
	}
	p := ring[s.Rng.Uniform(len(ring))]
	return p.i, p.i, s.totalCost, false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
