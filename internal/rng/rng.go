/*
Package rng centralizes the seeded random-number utilities shared by the
adaptive-search engine and every problem model: uniform integer draws,
permutation generation, and permutation repair. It answers "how do we
turn the PRNG into something a problem model can use" in one place,
grounded on tools.c (Random, Random_Interval, Random_Double,
Random_Array_Permut, Random_Permut, Random_Permut_Repair).
*/
package rng

import "math/rand"

// Source wraps a *rand.Rand with the handful of draws the solver and the
// problem models need. It is intentionally not safe for concurrent use,
// matching the engine's single-threaded execution model.
type Source struct {
	rnd     *rand.Rand
	seed    int64
	hasSeed bool
}

// New returns a Source seeded deterministically with sd.
func New(sd int64) *Source {
	return &Source{rnd: rand.New(rand.NewSource(sd)), seed: sd, hasSeed: true}
}

// NewFromEntropy returns a Source seeded from the runtime entropy source and
// records the seed actually used so a run can be reproduced later by passing
// it back to New.
func NewFromEntropy() *Source {
	sd := int64(rand.New(rand.NewSource(rand.Int63())).Uint32())
	return New(sd)
}

// Seed re-seeds the source deterministically, discarding prior state.
func (s *Source) Seed(sd int64) {
	s.rnd = rand.New(rand.NewSource(sd))
	s.seed = sd
	s.hasSeed = true
}

// LastSeed returns the seed used to initialize the source, and whether one has
// been recorded at all (it always has, after New/NewFromEntropy/Seed).
func (s *Source) LastSeed() (sd int64, ok bool) {
	return s.seed, s.hasSeed
}

// Uniform returns a value in [0,n). It panics if n <= 0, mirroring
// rand.Rand.Intn's own contract.
func (s *Source) Uniform(n int) int {
	return s.rnd.Intn(n)
}

// Interval returns a value in [lo,hi] inclusive.
func (s *Source) Interval(lo, hi int) int {
	return lo + s.rnd.Intn(hi-lo+1)
}

// Double01 returns a value in [0.0,1.0).
func (s *Source) Double01() float64 {
	return s.rnd.Float64()
}

// ShuffleInPlace performs a Fisher-Yates shuffle of a, the Go-native
// equivalent of Random_Array_Permut.
func (s *Source) ShuffleInPlace(a []int) {
	s.rnd.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
}

// value maps a natural index k in [0, n) to the declared alphabet: base+k
// when no explicit alphabet is given, or alphabet[k] otherwise.
func value(k int, alphabet []int, base int) int {
	if alphabet != nil {
		return alphabet[k]
	}
	return base + k
}

// GeneratePermutation fills out with a uniformly random permutation of the
// declared alphabet (or of [base, base+len(out)) when alphabet is nil),
// the Go analogue of Random_Permut. Every value is used exactly once.
func (s *Source) GeneratePermutation(out []int, alphabet []int, base int) {
	n := len(out)
	for i := 0; i < n; i++ {
		out[i] = value(i, alphabet, base)
	}
	s.ShuffleInPlace(out)
}

// ValidatePermutation checks that v is a permutation of the declared
// alphabet (or of [base, base+len(v)) when alphabet is nil). On success it
// returns ok=true; otherwise it returns the index of the first value that
// breaks the permutation property (a duplicate or an out-of-range value).
func ValidatePermutation(v []int, alphabet []int, base int) (ok bool, firstBad int) {
	n := len(v)
	seen := make([]bool, n)
	index := func(x int) (int, bool) {
		if alphabet != nil {
			for k, a := range alphabet {
				if a == x {
					return k, true
				}
			}
			return 0, false
		}
		k := x - base
		return k, k >= 0 && k < n
	}
	for i, x := range v {
		k, inRange := index(x)
		if !inRange || seen[k] {
			return false, i
		}
		seen[k] = true
	}
	return true, -1
}

// RepairPermutation turns v, an arbitrary multiset over the declared
// alphabet, into a permutation of it in place: every value present more than
// once is replaced by a missing value, chosen uniformly among the missing
// ones, leaving already-consistent positions untouched. This is the Go
// analogue of Random_Permut_Repair; like the original it is only
// deterministic up to the draws it consumes from s.
func (s *Source) RepairPermutation(v []int, alphabet []int, base int) {
	n := len(v)
	count := make(map[int]int, n)
	slotOf := func(x int) int {
		if alphabet != nil {
			for k, a := range alphabet {
				if a == x {
					return k
				}
			}
			return -1
		}
		return x - base
	}
	present := make([]bool, n)
	for _, x := range v {
		if k := slotOf(x); k >= 0 && k < n {
			present[k] = true
		}
	}
	missing := make([]int, 0, n)
	for k := 0; k < n; k++ {
		if !present[k] {
			missing = append(missing, value(k, alphabet, base))
		}
	}
	for i, x := range v {
		k := slotOf(x)
		if k < 0 || k >= n || count[x] > 0 {
			j := s.Uniform(len(missing))
			v[i] = missing[j]
			missing = append(missing[:j], missing[j+1:]...)
		} else {
			count[x]++
		}
	}
}
