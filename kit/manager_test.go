package kit

import (
	"fmt"

	"github.com/mathrgo/adsearch/internal/rng"
	"github.com/mathrgo/adsearch/problem/allinterval"
)

type myProblem struct{}

func (c *myProblem) Create(sd int64) (Model, error) {
	return allinterval.New(8, rng.New(sd)), nil
}

func ExampleNewMan() {
	var pc myProblem
	man := NewMan()
	// try adding a creator under an existing built-in name
	if err := man.AddProblem("allinterval-12", "a different all-interval instance", &pc); err != nil {
		fmt.Println(err)
	}
	// try selecting a non-existent problem
	if err := man.SelectProblem("allinterval-13"); err != nil {
		fmt.Println(err)
	}
	// try deleting a problem that was never added
	if err := man.DelProblem("allinterval-9"); err != nil {
		fmt.Println(err)
	}
	// this should be the default
	fmt.Println("\n==default man==")
	fmt.Print(man)

	// add a new problem instance
	if err := man.AddProblem("allinterval-8", "all-interval series of size 8", &pc); err != nil {
		fmt.Println(err)
	}
	if err := man.SelectProblem("allinterval-8"); err != nil {
		fmt.Println(err)
	}
	fmt.Println("\n===man with new problem instance==")
	fmt.Print(man)

	// delete the problem currently selected for runs
	if err := man.DelProblem("allinterval-8"); err != nil {
		fmt.Println(err)
	}
	fmt.Println("\n===man falls back to default==")
	fmt.Print(man)
	// Output:
	// attempted to add allinterval-12 to a problem creator that exists
	// the problem instance allinterval-13 could not be found
	// could not delete problem creator allinterval-9
	//
	// ==default man==
	// Manager Settings:
	// problem = allinterval-12
	// Number of Runs = 1
	// Thinking interval between data coms = 50
	// problemSeed=3142 + runid*0	solverSeed=578 + runid*34
	//
	// ===man with new problem instance==
	// Manager Settings:
	// problem = allinterval-8
	// Number of Runs = 1
	// Thinking interval between data coms = 50
	// problemSeed=3142 + runid*0	solverSeed=578 + runid*34
	//
	// ===man falls back to default==
	// Manager Settings:
	// problem = allinterval-12
	// Number of Runs = 1
	// Thinking interval between data coms = 50
	// problemSeed=3142 + runid*0	solverSeed=578 + runid*34
}

func ExampleManager_ProblemDescription() {
	man := NewMan()
	fmt.Print(man.ProblemDescription())
	// Output:
	// Problem Description:
	// allinterval-12 :
	//   all-interval series of size 12
	// langford-4 :
	//   Langford pairing L(2,4)
	// quasigroup-demo :
	//   small quasigroup completion board with a few holes
	// qwh-demo :
	//   small quasigroup-with-holes board including an intercalate
	// skolem-4 :
	//   Skolem sequence S(2,4)
	// smti-demo :
	//   2x2 stable matching with ties and incomplete lists
}

// myResult counts how many times Result fires, as a minimal ActResult Action.
type myResult struct{ n int }

func (a *myResult) Create(sd int64) Act { return &myResult{} }
func (a *myResult) Result(man *Manager) { a.n++ }

func ExampleManager_SelectActs() {
	man := NewMan()
	if err := man.AddAct("count-results", "counts Result calls", &myResult{}); err != nil {
		fmt.Println(err)
	}
	if err := man.SelectActs("count-results"); err != nil {
		fmt.Println(err)
	}
	man.SetProblemCase("smti-demo")
	man.SetNrun(1)
	man.Run()
	r := man.actResult[0].(*myResult)
	fmt.Println(r.n)
	// Output:
	// 1
}
