package allinterval

import (
	"fmt"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/internal/rng"
)

func ExampleModel_solve() {
	source := rng.New(1)
	model := New(5, source)
	h := adsearch.DefaultHeuristics()
	h.RestartLimit = 20000
	h.RestartMax = 50
	solver := adsearch.NewSolver(model.Size(), h, source)
	cost, _ := solver.Solve(model)
	fmt.Println(cost == 0)
	fmt.Println(model.CheckSolution())
	// Output:
	// true
	// true
}

func ExampleModel_costOfSolution() {
	source := rng.New(2)
	model := New(4, source)
	model.sigma = []int{0, 3, 1, 2} // diffs: 3,2,1 -> all-interval series
	fmt.Println(model.CostOfSolution(true))
	fmt.Println(model.CheckSolution())
	// Output:
	// 0
	// true
}
