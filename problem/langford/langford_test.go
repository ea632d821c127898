package langford

import (
	"fmt"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/internal/rng"
)

func ExampleNew_infeasible() {
	source := rng.New(1)
	_, err := New(6, Skolem, 2, source)
	fmt.Println(err)
	// Output:
	// langford: no solution for size 6
}

func ExampleModel_solve() {
	source := rng.New(1)
	model, err := New(3, Langford, 2, source)
	if err != nil {
		fmt.Println(err)
		return
	}
	h := adsearch.DefaultHeuristics()
	h.RestartLimit = 20000
	h.RestartMax = 100
	solver := adsearch.NewSolver(model.Size(), h, source)
	cost, _ := solver.Solve(model)
	fmt.Println(cost == 0)
	fmt.Println(model.CheckSolution())
	// Output:
	// true
	// true
}
