package quasigroup

import (
	"fmt"
	"strings"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/internal/rng"
)

// a 4x4 board with a handful of holes, small enough to solve reliably.
const sample = `order 4
0 -1 2 3
-1 3 0 2
2 0 -1 1
3 -1 1 0
`

func ExampleParse() {
	b, err := Parse(strings.NewReader(sample))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(b.Order)
	fmt.Println(b.Grid[0])
	// Output:
	// 4
	// [0 -1 2 3]
}

func ExampleModel_solve() {
	b, err := Parse(strings.NewReader(sample))
	if err != nil {
		fmt.Println(err)
		return
	}
	source := rng.New(1)
	model := New(b, source)
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
