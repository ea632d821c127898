/*
Package quasigroup implements the Quasigroup Completion Problem (Latin
square completion) as an adsearch.Model. It is grounded on quasigroup.c
and quasigroup-utils.c, simplified to the strictly-necessary subset of
that source's machinery: it reuses internal/rng's
permutation repair for row consistency but, unlike its sibling package
qwh, carries no bit-vector domains and performs no all-different
preprocessing — there is no hole-domain restriction to propagate here,
only column-duplicate repair.
*/
package quasigroup

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/internal/rng"
)

// Board is a parsed order x order Latin-square-completion instance;
// Grid[r][c] is the cell's fixed value, or -1 if it is a hole.
type Board struct {
	Order int
	Grid  [][]int
}

// Parse reads a whitespace-tolerant ASCII instance: a header line "order
// N" followed by N rows of N integers, negative entries denoting holes,
// the same format package qwh's board parser uses.
func Parse(r io.Reader) (*Board, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	readTok := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}

	var order int
	for {
		tok, ok := readTok()
		if !ok {
			return nil, fmt.Errorf("quasigroup: bad file format (cannot read the order)")
		}
		if strings.EqualFold(tok, "order") {
			n, ok2 := readTok()
			if !ok2 {
				return nil, fmt.Errorf("quasigroup: bad file format (cannot read the order)")
			}
			v, err := strconv.Atoi(n)
			if err != nil {
				return nil, fmt.Errorf("quasigroup: bad order value %q: %w", n, err)
			}
			order = v
			break
		}
	}

	b := &Board{Order: order, Grid: make([][]int, order)}
	for r := 0; r < order; r++ {
		b.Grid[r] = make([]int, order)
		for c := 0; c < order; c++ {
			tok, ok := readTok()
			if !ok {
				return nil, fmt.Errorf("quasigroup: bad file format (order %d: cannot read value[%d][%d])", order, r, c)
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("quasigroup: bad value %q at [%d][%d]: %w", tok, r, c, err)
			}
			if v < 0 {
				v = -1
			}
			b.Grid[r][c] = v
		}
	}
	return b, nil
}

type row struct {
	beg, next int
	missing   []int
}

// Model is a Latin-square completion problem: each row and column of an
// order x order board must hold each of 0..order-1 exactly once; some
// cells are fixed, the rest (holes) are the decision variables.
type Model struct {
	order    int
	board    *Board
	sigma    []int
	rows     []row
	holeRow  []int
	holeCol  []int
	colFixed [][]bool // colFixed[c][v]: v occupies a non-hole cell of column c
	varErr   []int
	rnd      *rng.Source
}

// New builds a Model from a parsed Board.
func New(b *Board, rnd *rng.Source) *Model {
	order := b.Order
	m := &Model{
		order:    order,
		board:    b,
		rows:     make([]row, order),
		colFixed: make([][]bool, order),
		rnd:      rnd,
	}
	for c := 0; c < order; c++ {
		m.colFixed[c] = make([]bool, order)
	}

	idx := 0
	for r := 0; r < order; r++ {
		present := make([]bool, order)
		beg := idx
		for c := 0; c < order; c++ {
			v := b.Grid[r][c]
			if v >= 0 {
				present[v] = true
				m.colFixed[c][v] = true
			}
		}
		var missing []int
		for v := 0; v < order; v++ {
			if !present[v] {
				missing = append(missing, v)
			}
		}
		for c := 0; c < order; c++ {
			if b.Grid[r][c] < 0 {
				m.holeRow = append(m.holeRow, r)
				m.holeCol = append(m.holeCol, c)
				idx++
			}
		}
		m.rows[r] = row{beg: beg, next: idx, missing: missing}
	}

	m.sigma = make([]int, idx)
	m.varErr = make([]int, idx)
	m.SetInitialConfiguration()
	return m
}

func (m *Model) Size() int    { return len(m.sigma) }
func (m *Model) Sigma() []int { return m.sigma }

func (m *Model) NextI(i int) int { return adsearch.DefaultNextI(len(m.sigma), i) }

// NextJ restricts partners to i's own row, preserving the row-permutation
// invariant every swap must maintain, exactly as qwh.c's Next_J does.
func (m *Model) NextJ(i, j int, exhaustive bool) int {
	r := m.holeRow[i]
	row := m.rows[r]
	if j < 0 {
		j = i
	}
	j++
	if j >= row.next {
		return -1
	}
	return j
}

// columnCount returns, for column c, the occupancy count of every value
// (fixed cells plus holes currently assigned via sigma).
func (m *Model) columnCount(c int) []int {
	count := make([]int, m.order)
	for v := 0; v < m.order; v++ {
		if m.colFixed[c][v] {
			count[v]++
		}
	}
	for i, col := range m.holeCol {
		if col == c {
			count[m.sigma[i]]++
		}
	}
	return count
}

// recompute rebuilds varErr against the live sigma and returns the total
// cost: the sum, over every column and value, of the occupancy count in
// excess of one.
func (m *Model) recompute() int {
	for i := range m.varErr {
		m.varErr[i] = 0
	}
	total := 0
	for c := 0; c < m.order; c++ {
		count := m.columnCount(c)
		dup := make([]bool, m.order)
		for v, n := range count {
			if n > 1 {
				total += n - 1
				dup[v] = true
			}
		}
		for i, col := range m.holeCol {
			if col == c && dup[m.sigma[i]] {
				m.varErr[i]++
			}
		}
	}
	return total
}

// CostOfSolution recomputes varErr against the live sigma.
func (m *Model) CostOfSolution(record bool) int { return m.recompute() }

// CostOnVariable returns the cached per-hole error from the last
// CostOfSolution/ExecutedSwap.
func (m *Model) CostOnVariable(i int) int { return m.varErr[i] }

// CostIfSwap evaluates the cost of swapping holes i and j (always within
// the same row, per NextJ), restoring sigma before returning.
func (m *Model) CostIfSwap(total, i, j int) int {
	if i == j {
		return total
	}
	m.sigma[i], m.sigma[j] = m.sigma[j], m.sigma[i]
	r := m.recompute()
	m.sigma[i], m.sigma[j] = m.sigma[j], m.sigma[i]
	m.recompute()
	return r
}

// ExecutedSwap re-primes varErr against the now-committed sigma. As with
// qwh.Model, this recomputes rather than updating incrementally; the
// board sizes this problem targets make that an acceptable trade.
func (m *Model) ExecutedSwap(i, j int) { m.recompute() }

// Reset marks every hole belonging to an error-bearing column's row as
// unassigned and repairs each row back into a permutation of its missing
// values, grounded on qwh.c's Reset_Repair strategy.
func (m *Model) Reset(n int) (cost int, ok bool) {
	m.recompute()
	touched := make([]bool, len(m.sigma))
	mod := 0
	for c := 0; c < m.order; c++ {
		count := m.columnCount(c)
		bad := false
		for _, cnt := range count {
			if cnt > 1 {
				bad = true
				break
			}
		}
		if !bad {
			continue
		}
		for i, col := range m.holeCol {
			if col == c && !touched[i] {
				touched[i] = true
				mod++
			}
		}
	}
	for r, row := range m.rows {
		rowTouched := false
		for i := row.beg; i < row.next; i++ {
			if touched[i] {
				rowTouched = true
				break
			}
		}
		if !rowTouched {
			continue
		}
		for i := row.beg; i < row.next; i++ {
			m.sigma[i] = -1
		}
		_ = r
		m.rnd.RepairPermutation(m.sigma[row.beg:row.next], row.missing, 0)
	}
	n -= mod / 4
	if n < 1 {
		n = 1
	}
	return 0, false
}

// SetInitialConfiguration writes, into each row, a fresh random
// permutation of that row's missing values, guaranteeing every row starts
// row-consistent (columns are not), exactly as qwh.c's
// Set_Init_Configuration.
func (m *Model) SetInitialConfiguration() {
	for _, row := range m.rows {
		if row.next > row.beg {
			m.rnd.GeneratePermutation(m.sigma[row.beg:row.next], row.missing, 0)
		}
	}
	m.recompute()
}

func (m *Model) Display(w io.Writer) {
	grid := make([][]int, m.order)
	for r := range grid {
		grid[r] = append([]int(nil), m.board.Grid[r]...)
	}
	for i := range m.sigma {
		grid[m.holeRow[i]][m.holeCol[i]] = m.sigma[i]
	}
	for _, rrow := range grid {
		fmt.Fprintln(w, rrow)
	}
}

// CheckSolution independently verifies that every row and column of the
// completed board holds each value 0..order-1 exactly once.
func (m *Model) CheckSolution() bool {
	for _, row := range m.rows {
		if ok, _ := rng.ValidatePermutation(m.sigma[row.beg:row.next], row.missing, 0); !ok {
			return false
		}
	}
	for c := 0; c < m.order; c++ {
		count := m.columnCount(c)
		for _, n := range count {
			if n != 1 {
				return false
			}
		}
	}
	return true
}
