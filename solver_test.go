package adsearch

import (
	"fmt"
	"io"

	"github.com/mathrgo/adsearch/internal/rng"
)

// identityModel is a minimal Model whose only constraint is "sigma[i] ==
// target[i]"; cost is the Hamming distance to the target permutation. It
// exists purely to exercise Solver.Solve end to end without depending on
// any of the concrete problem packages.
type identityModel struct {
	sigma  []int
	target []int
}

func newIdentityModel(n int, rnd *rng.Source) *identityModel {
	m := &identityModel{sigma: make([]int, n), target: make([]int, n)}
	for i := range m.target {
		m.target[i] = i
	}
	m.SetInitialConfiguration()
	_ = rnd
	return m
}

func (m *identityModel) Size() int      { return len(m.sigma) }
func (m *identityModel) Sigma() []int   { return m.sigma }
func (m *identityModel) NextI(i int) int { return DefaultNextI(len(m.sigma), i) }
func (m *identityModel) NextJ(i, j int, exhaustive bool) int {
	return DefaultNextJ(len(m.sigma), i, j, exhaustive)
}

func (m *identityModel) CostOfSolution(record bool) int {
	c := 0
	for i, v := range m.sigma {
		if v != m.target[i] {
			c++
		}
	}
	return c
}

func (m *identityModel) CostOnVariable(i int) int {
	if m.sigma[i] != m.target[i] {
		return 1
	}
	return 0
}

func (m *identityModel) CostIfSwap(total, i, j int) int {
	c := total
	if m.sigma[i] != m.target[i] {
		c--
	}
	if m.sigma[j] != m.target[j] {
		c--
	}
	if m.sigma[j] != m.target[i] {
		c++
	}
	if m.sigma[i] != m.target[j] {
		c++
	}
	return c
}

func (m *identityModel) ExecutedSwap(i, j int) {}

func (m *identityModel) Reset(n int) (int, bool) { return 0, false }

func (m *identityModel) SetInitialConfiguration() {
	for i := range m.sigma {
		m.sigma[i] = m.target[len(m.sigma)-1-i]
	}
}

func (m *identityModel) Display(w io.Writer) { fmt.Fprintln(w, m.sigma) }

func (m *identityModel) CheckSolution() bool {
	for i, v := range m.sigma {
		if v != m.target[i] {
			return false
		}
	}
	return true
}

func ExampleSolver_Solve() {
	source := rng.New(1)
	model := newIdentityModel(6, source)
	h := DefaultHeuristics()
	h.RestartLimit = 10000
	solver := NewSolver(model.Size(), h, source)
	cost, stats := solver.Solve(model)
	fmt.Println(cost)
	fmt.Println(model.CheckSolution())
	fmt.Println(stats.NbSwapTot > 0)
	// Output:
	// 0
	// true
	// true
}

func ExampleSolver_Solve_exhaustive() {
	source := rng.New(7)
	model := newIdentityModel(5, source)
	h := DefaultHeuristics()
	h.Exhaustive = true
	h.RestartLimit = 10000
	solver := NewSolver(model.Size(), h, source)
	cost, _ := solver.Solve(model)
	fmt.Println(cost)
	fmt.Println(model.CheckSolution())
	// Output:
	// 0
	// true
}
