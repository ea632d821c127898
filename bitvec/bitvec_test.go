package bitvec

import "fmt"

func ExampleVec_roundtrip() {
	v := Empty()
	v = v.Set(3)
	fmt.Println(v.Has(3))
	v2 := v.Reset(3)
	fmt.Println(v2 == Empty())
	// Output:
	// true
	// true
}

func ExampleVec_ForEach() {
	v := FromValues(1, 3, 4)
	var seen []int
	v.ForEach(func(x int) { seen = append(seen, x) })
	fmt.Println(seen)
	fmt.Println(v.Cardinality())
	// Output:
	// [1 3 4]
	// 3
}

func ExampleFull() {
	v := Full(4)
	fmt.Println(v.Members())
	c := v.Complement(4)
	fmt.Println(c.IsEmpty())
	// Output:
	// [0 1 2 3]
	// true
}

func ExampleVec_Subset() {
	a := FromValues(1, 2)
	b := FromValues(1, 2, 3)
	fmt.Println(a.Subset(b), b.Subset(a))
	// Output:
	// true false
}
