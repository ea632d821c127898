/*
Package langford implements the Langford pairing problem and its Skolem
sequence sibling as adsearch.Models, grounded on langford.c and skolem3.c:
arrange K copies each of the values 0..order-1 into a sequence of
order*K positions so that the K occurrences of value x are exactly
dist(x) apart, where dist(x) = x+2 for Langford and x+1 for Skolem.
*/
package langford

import (
	"fmt"
	"io"
	"sort"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/internal/rng"
)

// Kind selects which required-distance rule governs the problem.
type Kind int

const (
	// Langford requires the two occurrences of x to be x+2 apart.
	Langford Kind = iota
	// Skolem requires the two occurrences of x to be x+1 apart.
	Skolem
)

func (k Kind) dist(x int) int {
	if k == Skolem {
		return x + 1
	}
	return x + 2
}

// Model is an L(K, order) Langford/Skolem instance. sigma has length
// order*K; sigma[x+t*order] is the position assigned to the t-th
// occurrence of value x (x in 0..order-1, t in 0..K-1), mirroring
// langford.c's sol[] array exactly.
type Model struct {
	order int
	k     int
	kind  Kind
	sigma []int
	err   []int // err[x]: 1 if value x's occurrences are not properly spaced
	rnd   *rng.Source
}

// feasible reports whether L(2, order) (or its Skolem analogue) is known
// to admit a solution at all, per the classical parity conditions;
// unconditionally true for K != 2, since no simple closed-form criterion
// is specified for triplets and beyond.
func feasible(order int, kind Kind, k int) bool {
	if k != 2 {
		return true
	}
	if kind == Langford {
		return order%4 == 0 || order%4 == 3
	}
	return order%4 == 0 || order%4 == 1
}

// New creates a Langford/Skolem model for k copies of the values
// 0..order-1. For k == 2 it rejects instances known infeasible (order
// mod 4 in {1,2} for Langford, in {2,3} for Skolem), mirroring
// Init_Parameters's size
// check, as an error rather than a panic or an unsolvable Solve loop.
func New(order int, kind Kind, k int, rnd *rng.Source) (*Model, error) {
	if order < 1 || k < 2 {
		return nil, fmt.Errorf("langford: invalid order=%d k=%d", order, k)
	}
	if !feasible(order, kind, k) {
		return nil, fmt.Errorf("langford: no solution for size %d", order)
	}
	m := &Model{
		order: order,
		k:     k,
		kind:  kind,
		sigma: make([]int, order*k),
		err:   make([]int, order),
		rnd:   rnd,
	}
	m.SetInitialConfiguration()
	return m, nil
}

func (m *Model) Size() int    { return len(m.sigma) }
func (m *Model) Sigma() []int { return m.sigma }

func (m *Model) NextI(i int) int { return adsearch.DefaultNextI(len(m.sigma), i) }
func (m *Model) NextJ(i, j int, exhaustive bool) int {
	return adsearch.DefaultNextJ(len(m.sigma), i, j, exhaustive)
}

// valueError reports whether value x's k occurrences are not evenly
// spaced dist(x) apart.
func (m *Model) valueError(x int) bool {
	positions := make([]int, m.k)
	for t := 0; t < m.k; t++ {
		positions[t] = m.sigma[x+t*m.order]
	}
	sort.Ints(positions)
	d := m.kind.dist(x)
	for t := 1; t < m.k; t++ {
		if positions[t]-positions[t-1] != d {
			return true
		}
	}
	return false
}

func (m *Model) recompute() int {
	c := 0
	for x := 0; x < m.order; x++ {
		if m.valueError(x) {
			m.err[x] = 1
			c++
		} else {
			m.err[x] = 0
		}
	}
	return c
}

// CostOfSolution recomputes every value's error flag and returns the
// count of mis-spaced values.
func (m *Model) CostOfSolution(record bool) int { return m.recompute() }

// CostOnVariable attributes to slot i the error flag of the value it
// holds (shared across that value's K slots).
func (m *Model) CostOnVariable(i int) int { return m.err[i%m.order] }

// CostIfSwap evaluates the cost of swapping slots i and j, touching only
// the (at most two) values those slots belong to and restoring them
// before returning.
func (m *Model) CostIfSwap(total, i, j int) int {
	if i == j {
		return total
	}
	xi, xj := i%m.order, j%m.order
	before := total
	if xi != xj {
		before -= m.err[xi] + m.err[xj]
	} else {
		before -= m.err[xi]
	}

	m.sigma[i], m.sigma[j] = m.sigma[j], m.sigma[i]
	var after int
	if xi != xj {
		ei, ej := 0, 0
		if m.valueError(xi) {
			ei = 1
		}
		if m.valueError(xj) {
			ej = 1
		}
		after = before + ei + ej
	} else {
		e := 0
		if m.valueError(xi) {
			e = 1
		}
		after = before + e
	}
	m.sigma[i], m.sigma[j] = m.sigma[j], m.sigma[i]
	return after
}

// ExecutedSwap re-primes the err table for the (at most two) affected
// values after a committed swap.
func (m *Model) ExecutedSwap(i, j int) {
	xi, xj := i%m.order, j%m.order
	if m.valueError(xi) {
		m.err[xi] = 1
	} else {
		m.err[xi] = 0
	}
	if xj != xi {
		if m.valueError(xj) {
			m.err[xj] = 1
		} else {
			m.err[xj] = 0
		}
	}
}

// Reset performs n swaps, each exchanging a slot of a randomly chosen
// erroring value (chosen with replacement) with a uniformly random slot;
// when no value is in error, both slots are uniformly random. It is
// grounded on langford.c's incremental-error Reset philosophy of
// perturbing only what's broken.
func (m *Model) Reset(n int) (cost int, ok bool) {
	var bad []int
	for x := 0; x < m.order; x++ {
		if m.err[x] == 1 {
			bad = append(bad, x)
		}
	}
	size := len(m.sigma)
	for n > 0 {
		var i, j int
		if len(bad) > 0 {
			x := bad[m.rnd.Uniform(len(bad))]
			i = x + m.rnd.Uniform(m.k)*m.order
			j = m.rnd.Uniform(size)
		} else {
			i = m.rnd.Uniform(size)
			j = m.rnd.Uniform(size)
		}
		if i == j {
			continue
		}
		m.sigma[i], m.sigma[j] = m.sigma[j], m.sigma[i]
		n--
	}
	return 0, false
}

// SetInitialConfiguration draws a fresh uniformly random permutation of
// the order*k positions.
func (m *Model) SetInitialConfiguration() {
	m.rnd.GeneratePermutation(m.sigma, nil, 0)
	m.recompute()
}

// Sequence decodes sigma into the order*k-long value sequence (the
// Langford/Skolem word itself, values 1-based as in the problem's usual
// presentation).
func (m *Model) Sequence() []int {
	seq := make([]int, len(m.sigma))
	for x := 0; x < m.order; x++ {
		for t := 0; t < m.k; t++ {
			seq[m.sigma[x+t*m.order]] = x + 1
		}
	}
	return seq
}

func (m *Model) Display(w io.Writer) { fmt.Fprintln(w, m.Sequence()) }

// CheckSolution independently verifies sigma is a permutation of its
// positions and every value's occurrences are properly spaced.
func (m *Model) CheckSolution() bool {
	if ok, _ := rng.ValidatePermutation(m.sigma, nil, 0); !ok {
		return false
	}
	for x := 0; x < m.order; x++ {
		if m.valueError(x) {
			return false
		}
	}
	return true
}
