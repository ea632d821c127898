/*
Package smti implements the Stable Matching problem with Ties and
Incomplete lists (SMTI) as an adsearch.Model, grounded on smti.c and
smti-utils.c: ranked preference matrices with ties and incomplete
lists, the blocking-pair cost function, and the two-phase swap/single
reset heuristic.
*/
package smti

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/internal/rng"
)

// prefEntry is one ranked partner in a preference list: person is the
// 0-based index of the preferred partner, rank is its tie-group (equal
// ranks are tied, lower rank is more preferred).
type prefEntry struct {
	person int
	rank   int
}

// Problem is a parsed SMTI instance: two NxN preference matrices, one
// per side, with a header line and tie/removed/incomplete-list
// conventions in the rank entries.
type Problem struct {
	Size int
	PrefM,
	PrefW [][]prefEntry
}

func splitFields(line string) []string { return strings.Fields(line) }

func parseRow(tokens []string, zeroBased bool) ([]prefEntry, error) {
	var entries []prefEntry
	rank := -1
	for _, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("smti: bad preference value %q: %w", tok, err)
		}
		if v == 0 {
			if zeroBased {
				return nil, fmt.Errorf("smti: value 0 is not allowed in a zero-based row; end the row early to mark an incomplete list")
			}
			continue // removed: skip, does not occupy a rank
		}
		tie := v < 0
		mag := v
		if tie {
			mag = -v
		}
		person := mag - 1
		if zeroBased {
			person = mag
		}
		if !tie {
			rank++
		}
		entries = append(entries, prefEntry{person: person, rank: rank})
	}
	return entries, nil
}

// Parse reads an SMTI instance: a header line "N [zero] [dat] [p1 p2]"
// followed by N rows for the men's preferences and N rows for the
// women's. "zero" selects the 0-based person-index variant (instead of
// the default 1-based one); "dat" selects the format where each row is
// prefixed with its own 1-based index. Person
// ids beyond N-1 (1-based: beyond N) are rejected.
func Parse(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	nextLine := func() (string, bool) {
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	header, ok := nextLine()
	if !ok {
		return nil, fmt.Errorf("smti: empty instance file")
	}
	fields := splitFields(header)
	if len(fields) == 0 {
		return nil, fmt.Errorf("smti: bad header")
	}
	size, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("smti: bad size %q: %w", fields[0], err)
	}
	zeroBased, datFormat := false, false
	for _, f := range fields[1:] {
		switch strings.ToLower(f) {
		case "zero":
			zeroBased = true
		case "dat":
			datFormat = true
		}
	}

	readMatrix := func() ([][]prefEntry, error) {
		m := make([][]prefEntry, size)
		for i := 0; i < size; i++ {
			line, ok := nextLine()
			if !ok {
				return nil, fmt.Errorf("smti: truncated matrix at row %d", i)
			}
			toks := splitFields(line)
			if datFormat {
				if len(toks) == 0 {
					return nil, fmt.Errorf("smti: missing .dat row index at row %d", i)
				}
				idx, err := strconv.Atoi(toks[0])
				if err != nil || idx != i+1 {
					return nil, fmt.Errorf("smti: bad .dat row index at row %d: %q", i, toks[0])
				}
				toks = toks[1:]
			}
			row, err := parseRow(toks, zeroBased)
			if err != nil {
				return nil, fmt.Errorf("smti: row %d: %w", i, err)
			}
			for _, e := range row {
				if e.person < 0 || e.person >= size {
					return nil, fmt.Errorf("smti: row %d references out-of-range partner %d", i, e.person)
				}
			}
			m[i] = row
		}
		return m, nil
	}

	prefM, err := readMatrix()
	if err != nil {
		return nil, err
	}
	prefW, err := readMatrix()
	if err != nil {
		return nil, err
	}
	return &Problem{Size: size, PrefM: prefM, PrefW: prefW}, nil
}

// Model matches men (the decision variables, sigma[m] = woman assigned
// to man m) against women, minimizing blocking pairs and singles.
type Model struct {
	size      int
	prefM     [][]prefEntry
	prefW     [][]prefEntry
	revM      [][]int // revM[m][w]: m's rank for w, -1 if unacceptable
	revW      [][]int // revW[w][m]: w's rank for m, -1 if unacceptable
	sigma     []int   // sigma[m] = w
	solW      []int   // solW[w] = m
	varErr    []int
	bpSwap    []int
	nbBP      int
	nbSingles int
	singleI   int
	rnd       *rng.Source
}

// BlockingPair is a man-woman pair who would both rather be matched to
// each other than to their assigned partners.
type BlockingPair struct{ Man, Woman int }

// New builds a Model from a parsed Problem.
func New(p *Problem, rnd *rng.Source) *Model {
	n := p.Size
	m := &Model{
		size:   n,
		prefM:  p.PrefM,
		prefW:  p.PrefW,
		revM:   make([][]int, n),
		revW:   make([][]int, n),
		sigma:  make([]int, n),
		solW:   make([]int, n),
		varErr: make([]int, n),
		bpSwap: make([]int, n),
		rnd:    rnd,
	}
	for i := 0; i < n; i++ {
		m.revM[i] = make([]int, n)
		m.revW[i] = make([]int, n)
		for j := range m.revM[i] {
			m.revM[i][j] = -1
			m.revW[i][j] = -1
		}
	}
	for mi, row := range p.PrefM {
		for _, e := range row {
			m.revM[mi][e.person] = e.rank
		}
	}
	for wi, row := range p.PrefW {
		for _, e := range row {
			m.revW[wi][e.person] = e.rank
		}
	}
	m.SetInitialConfiguration()
	return m
}

func (m *Model) Size() int    { return m.size }
func (m *Model) Sigma() []int { return m.sigma }

func (m *Model) NextI(i int) int { return adsearch.DefaultNextI(m.size, i) }

// NextJ offers only the one partner worth swapping with: the man
// holding the woman that forms i's worst blocking pair, exactly as
// smti.c's Next_J.
func (m *Model) NextJ(i, j int, exhaustive bool) int {
	if j < 0 {
		return m.bpSwap[i]
	}
	return -1
}

// blockingPairError returns the error contributed by (m, w) given that
// w is currently matched to mOfW: positive iff it is a genuine blocking
// pair, grounded on smti.c's Blocking_Pair_Error.
func (m *Model) blockingPairError(w, mOfW, man int) int {
	rankMOfW := m.revW[w][mOfW]
	rankMan := m.revW[w][man]
	if rankMan < 0 {
		return 0
	}
	if rankMOfW < 0 {
		return 1
	}
	err := rankMOfW - rankMan
	if err < 0 {
		err = 0
	}
	return err
}

func (m *Model) swap2(i, j int) {
	w1, w2 := m.sigma[i], m.sigma[j]
	m.sigma[i], m.sigma[j] = w2, w1
	m.solW[w1] = j
	m.solW[w2] = i
}

// costOfSolution implements smti.c's Cost_Of_Solution: for each man,
// scans his own preference list up to (and excluding) his current
// partner's rank, looking for the first acceptable woman who would
// rather be with him than with her current partner.
func (m *Model) costOfSolution(record bool) int {
	countBP, countSingles := 0, 0
	for man := 0; man < m.size; man++ {
		wOfMan := m.sigma[man]
		rankWOfMan := m.revM[man][wOfMan]

		errMan, bpSwapMan := 0, -1
		if rankWOfMan < 0 {
			rankWOfMan = m.size
			countSingles++
			if record && m.rnd.Uniform(countSingles) == 0 {
				m.singleI = man
			}
		}

		for _, e := range m.prefM[man] {
			if e.rank >= rankWOfMan {
				break
			}
			mOfW := m.solW[e.person]
			errMan = m.blockingPairError(e.person, mOfW, man)
			if errMan > 0 {
				bpSwapMan = mOfW
				countBP++
				break
			}
		}

		if record {
			m.varErr[man] = errMan
			m.bpSwap[man] = bpSwapMan
		}
	}
	if record {
		m.nbBP = countBP
		m.nbSingles = countSingles
	}
	return countBP*m.size + countSingles
}

func (m *Model) CostOfSolution(record bool) int { return m.costOfSolution(record) }
func (m *Model) CostOnVariable(i int) int       { return m.varErr[i] }

// CostIfSwap evaluates swapping i and j's partners, restoring state
// before returning.
func (m *Model) CostIfSwap(total, i, j int) int {
	if i == j {
		return total
	}
	m.swap2(i, j)
	r := m.costOfSolution(false)
	m.swap2(i, j)
	return r
}

// ExecutedSwap updates the women-side inverse mapping for a swap the
// engine already applied to sigma, then re-primes the error/bpSwap
// tables, grounded on smti.c's Executed_Swap.
func (m *Model) ExecutedSwap(i, j int) {
	w1, w2 := m.sigma[i], m.sigma[j]
	m.solW[w1] = i
	m.solW[w2] = j
	m.costOfSolution(true)
}

// findMax returns the index of the highest-error man (excluding
// prohibited and anyone whose blocking partner is prohibited), breaking
// ties uniformly, grounded on smti.c's Find_Max.
func (m *Model) findMax(prohibited int) int {
	maxI, maxErr, maxNb := -1, 0, 0
	for i := 0; i < m.size; i++ {
		e := m.varErr[i]
		if e == 0 || i == prohibited || m.bpSwap[i] == prohibited {
			continue
		}
		switch {
		case e > maxErr:
			maxI, maxErr, maxNb = i, e, 1
		case e == maxErr:
			maxNb++
			if m.rnd.Uniform(maxNb) == 0 {
				maxI = i
			}
		}
	}
	return maxI
}

// Reset resolves the worst blocking pair and, when there are at least
// two, with high probability a second one, returning at once in that
// case; otherwise (including after resolving only one pair) it also
// swaps a single man, or a random man when there are no singles, with a
// random man. Grounded on smti.c's Reset.
func (m *Model) Reset(n int) (cost int, ok bool) {
	if m.nbBP >= 1 {
		maxI := m.findMax(-1)
		bpMaxI := m.bpSwap[maxI]
		m.swap2(maxI, bpMaxI)

		if m.nbBP >= 2 && m.rnd.Double01() < 0.98 {
			if otherI := m.findMax(bpMaxI); otherI >= 0 {
				m.swap2(otherI, m.bpSwap[otherI])
				return 0, false
			}
		}
	}

	if m.nbSingles > 0 {
		m.swap2(m.singleI, m.rnd.Uniform(m.size))
	} else {
		m.swap2(m.rnd.Uniform(m.size), m.rnd.Uniform(m.size))
	}
	return 0, false
}

// SetInitialConfiguration draws a fresh random matching.
func (m *Model) SetInitialConfiguration() {
	m.rnd.GeneratePermutation(m.sigma, nil, 0)
	for man, w := range m.sigma {
		m.solW[w] = man
	}
	m.costOfSolution(true)
}

func (m *Model) Display(w io.Writer) {
	for man, woman := range m.sigma {
		fmt.Fprintf(w, "%d %d\n", man+1, woman+1)
	}
}

// CheckSolution verifies sigma is a valid permutation (the only hard
// constraint; blocking pairs are the soft cost being minimized).
func (m *Model) CheckSolution() bool {
	ok, _ := rng.ValidatePermutation(m.sigma, nil, 0)
	return ok
}

// BlockingPairs recomputes the cost and returns every current blocking
// pair, supplementing the bare cost function with smti-utils.c's
// stability reporting.
func (m *Model) BlockingPairs() []BlockingPair {
	m.costOfSolution(true)
	var out []BlockingPair
	for man := 0; man < m.size; man++ {
		if m.varErr[man] > 0 {
			out = append(out, BlockingPair{Man: man, Woman: m.sigma[m.bpSwap[man]]})
		}
	}
	return out
}
