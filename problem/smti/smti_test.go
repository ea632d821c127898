package smti

import (
	"fmt"
	"strings"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/internal/rng"
)

// both men rank W1 over W2; W1 ranks M1 over M2 (W2's own preferences
// don't matter for the scenarios below). The only stable matching is
// M1-W1, M2-W2.
const sample = `2
1 2
1 2
1 2
1 2
`

func ExampleParse() {
	p, err := Parse(strings.NewReader(sample))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.Size)
	fmt.Println(p.PrefM[0])
	// Output:
	// 2
	// [{0 0} {1 1}]
}

func ExampleModel_costOfSolution() {
	p, err := Parse(strings.NewReader(sample))
	if err != nil {
		fmt.Println(err)
		return
	}
	m := New(p, rng.New(1))

	m.sigma[0], m.sigma[1] = 0, 1
	m.solW[0], m.solW[1] = 0, 1
	fmt.Println(m.CostOfSolution(true))

	m.sigma[0], m.sigma[1] = 1, 0
	m.solW[1], m.solW[0] = 0, 1
	fmt.Println(m.CostOfSolution(true))
	fmt.Println(m.BlockingPairs())
	// Output:
	// 0
	// 2
	// [{0 0}]
}

func ExampleModel_solve() {
	p, err := Parse(strings.NewReader(sample))
	if err != nil {
		fmt.Println(err)
		return
	}
	source := rng.New(1)
	model := New(p, source)
	h := adsearch.DefaultHeuristics()
	h.RestartLimit = 5000
	h.RestartMax = 20
	solver := adsearch.NewSolver(model.Size(), h, source)
	cost, _ := solver.Solve(model)
	fmt.Println(cost == 0)
	fmt.Println(model.CheckSolution())
	// Output:
	// true
	// true
}
