/*
Package allinterval implements the all-interval series problem as an
adsearch.Model: arrange a permutation of 0..N-1 so that the N-1 absolute
differences between consecutive terms are themselves a permutation of
1..N-1. It is grounded on all-interval.c's Cost_Of_Solution/Cost_If_Swap/
Executed_Swap/Reset, generalized away from that file's hand-maintained
nb_occ diffing toward a plain recompute-on-demand style, the way the
teacher favors small self-contained Fun implementations (fun/parity,
fun/multimode) over micro-optimized incremental state.
*/
package allinterval

import (
	"fmt"
	"io"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/internal/rng"
)

// Model is the all-interval series problem of order n: a permutation of
// 0..n-1 whose n-1 consecutive differences are a permutation of 1..n-1.
type Model struct {
	n     int
	sigma []int
	nbOcc []int // nbOcc[d], d in 1..n-1: how many adjacent pairs have |diff|==d
	rnd   *rng.Source
}

// New creates an all-interval series model of order n.
func New(n int, rnd *rng.Source) *Model {
	m := &Model{n: n, sigma: make([]int, n), nbOcc: make([]int, n), rnd: rnd}
	m.SetInitialConfiguration()
	return m
}

func (m *Model) Size() int    { return m.n }
func (m *Model) Sigma() []int { return m.sigma }

func (m *Model) NextI(i int) int { return adsearch.DefaultNextI(m.n, i) }
func (m *Model) NextJ(i, j int, exhaustive bool) int {
	return adsearch.DefaultNextJ(m.n, i, j, exhaustive)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// recount rebuilds nbOcc from scratch against the live sigma.
func (m *Model) recount() {
	for i := range m.nbOcc {
		m.nbOcc[i] = 0
	}
	for i := 0; i < m.n-1; i++ {
		m.nbOcc[abs(m.sigma[i]-m.sigma[i+1])]++
	}
}

// missing counts the distances in 1..n-1 that occur zero times; since
// n-1 edges share n-1 candidate distances this also equals the total
// excess occupancy (the sum of nbOcc[d]-1 over over-represented
// distances), and it is zero exactly when sigma is a genuine
// all-interval series.
func (m *Model) missing() int {
	c := 0
	for d := 1; d < m.n; d++ {
		if m.nbOcc[d] == 0 {
			c++
		}
	}
	return c
}

// CostOfSolution recomputes nbOcc from the live sigma and returns the
// number of missing distances.
func (m *Model) CostOfSolution(record bool) int {
	m.recount()
	return m.missing()
}

// CostOnVariable counts how many of i's adjacent edges (0, 1 or 2) carry
// a distance that occurs more than once, the closest local proxy to "how
// much does this position participate in a duplicate".
func (m *Model) CostOnVariable(i int) int {
	c := 0
	if i > 0 {
		d := abs(m.sigma[i-1] - m.sigma[i])
		if m.nbOcc[d] > 1 {
			c++
		}
	}
	if i < m.n-1 {
		d := abs(m.sigma[i] - m.sigma[i+1])
		if m.nbOcc[d] > 1 {
			c++
		}
	}
	return c
}

// CostIfSwap evaluates the cost as if i and j were exchanged, restoring
// sigma and nbOcc before returning.
func (m *Model) CostIfSwap(total, i, j int) int {
	if i == j {
		return total
	}
	m.sigma[i], m.sigma[j] = m.sigma[j], m.sigma[i]
	m.recount()
	r := m.missing()
	m.sigma[i], m.sigma[j] = m.sigma[j], m.sigma[i]
	m.recount()
	return r
}

// ExecutedSwap re-primes nbOcc against the now-committed sigma.
func (m *Model) ExecutedSwap(i, j int) { m.recount() }

// Reset perturbs positions whose adjacent distance is large, swapping each
// with a uniformly random position, grounded on all-interval.c's Reset: a
// cheap, targeted perturbation rather than a blind shuffle.
func (m *Model) Reset(n int) (cost int, ok bool) {
	distMin := m.n - 3
	if distMin < 1 {
		distMin = 1
	}
	for i := 1; i < m.n; i++ {
		if abs(m.sigma[i-1]-m.sigma[i]) >= distMin {
			j := m.rnd.Uniform(m.n)
			m.sigma[i], m.sigma[j] = m.sigma[j], m.sigma[i]
		}
	}
	return 0, false
}

// SetInitialConfiguration draws a fresh uniformly random permutation of
// 0..n-1.
func (m *Model) SetInitialConfiguration() {
	m.rnd.GeneratePermutation(m.sigma, nil, 0)
	m.recount()
}

func (m *Model) Display(w io.Writer) { fmt.Fprintln(w, m.sigma) }

// CheckSolution independently verifies sigma is a permutation of 0..n-1
// whose consecutive differences are a permutation of 1..n-1.
func (m *Model) CheckSolution() bool {
	if ok, _ := rng.ValidatePermutation(m.sigma, nil, 0); !ok {
		return false
	}
	seen := make([]bool, m.n)
	for i := 0; i < m.n-1; i++ {
		d := abs(m.sigma[i] - m.sigma[i+1])
		if d < 1 || d >= m.n || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}
