package rng

import (
	"fmt"
	"sort"
)

func ExampleSource_GeneratePermutation() {
	s := New(1)
	out := make([]int, 8)
	s.GeneratePermutation(out, nil, 0)
	cp := append([]int(nil), out...)
	sort.Ints(cp)
	fmt.Println(cp)
	ok, bad := ValidatePermutation(out, nil, 0)
	fmt.Println(ok, bad)
	// Output:
	// [0 1 2 3 4 5 6 7]
	// true -1
}

func ExampleSource_GeneratePermutation_alphabet() {
	s := New(42)
	alphabet := []int{10, 20, 30, 40}
	out := make([]int, 4)
	s.GeneratePermutation(out, alphabet, 0)
	cp := append([]int(nil), out...)
	sort.Ints(cp)
	fmt.Println(cp)
	// Output:
	// [10 20 30 40]
}

func ExampleSource_RepairPermutation() {
	s := New(7)
	v := []int{0, 2, 2, 3, 3, -1}
	s.RepairPermutation(v, nil, 0)
	cp := append([]int(nil), v...)
	sort.Ints(cp)
	fmt.Println(cp)
	ok, bad := ValidatePermutation(v, nil, 0)
	fmt.Println(ok, bad)
	// Output:
	// [0 1 2 3 4 5]
	// true -1
}

func ExampleValidatePermutation_bad() {
	v := []int{0, 1, 1, 3}
	ok, bad := ValidatePermutation(v, nil, 0)
	fmt.Println(ok, bad)
	// Output:
	// false 2
}
