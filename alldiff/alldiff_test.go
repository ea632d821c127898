package alldiff

import (
	"fmt"

	"github.com/mathrgo/adsearch/bitvec"
)

// a 2x2 board: rows {0,1} {2,3}, cols {0,2} {1,3}, order 2.
func new2x2() (*Propagator, []bitvec.Vec, []bitvec.Vec) {
	rows := []Group{{0, 1}, {2, 3}}
	cols := []Group{{0, 2}, {1, 3}}
	p := New(4, 2, rows, cols, nil)
	missingRow := []bitvec.Vec{bitvec.Full(2), bitvec.Full(2)}
	missingCol := []bitvec.Vec{bitvec.Full(2), bitvec.Full(2)}
	return p, missingRow, missingCol
}

func ExamplePropagator_TellValue() {
	p, mr, mc := new2x2()
	p.Init()
	ok := p.TellValue(0, 0)
	fmt.Println(ok)
	ok = p.Propagate(mr, mc)
	fmt.Println(ok)
	fmt.Println(p.Domain(1).Members())
	fmt.Println(p.Domain(2).Members())
	// Output:
	// true
	// true
	// [1]
	// [1]
}

func ExamplePropagator_Undo() {
	p, mr, mc := new2x2()
	p.Init()
	p.TellValue(0, 0)
	p.Propagate(mr, mc)
	p.Undo()
	fmt.Println(p.Domain(0).Members())
	fmt.Println(p.Domain(1).Members())
	// Output:
	// [0 1]
	// [0 1]
}

func ExamplePropagator_conflict() {
	p, mr, mc := new2x2()
	p.Init()
	p.TellValue(0, 0)
	p.TellValue(1, 0)
	ok := p.Propagate(mr, mc)
	fmt.Println(ok)
	// Output:
	// false
}
