package qwh

import (
	"fmt"
	"io"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/alldiff"
	"github.com/mathrgo/adsearch/bitvec"
	"github.com/mathrgo/adsearch/internal/rng"
)

type line struct {
	beg, next int
	missing   []int // sorted missing values, rebuilt after preprocessing
}

type hole struct {
	row, col int
	domain   bitvec.Vec // post-preprocessing domain, qwh.c's bv_dom
}

// Model is a Quasigroup With Holes instance: an order x order Latin
// square with some cells missing, preprocessed once by the
// all-different propagator (package alldiff) so every remaining hole's
// domain reflects row/column/channeling consequences of the fixed
// cells, grounded end to end on qwh.c.
type Model struct {
	order    int
	grid     [][]int // working copy of the board, holes resolved during New() written in place
	rows     []line
	cols     []line
	colFixed [][]bool // colFixed[c][v]
	holes    []hole
	sigma    []int
	varErr   []int
	rnd      *rng.Source
}

func fullMinus(order int, used []bool) bitvec.Vec {
	v := bitvec.Full(order)
	for x, b := range used {
		if b {
			v = v.Reset(x)
		}
	}
	return v
}

// New preprocesses b with the all-different propagator and builds a
// Model over the holes that survive preprocessing (holes forced to a
// singleton domain become fixed cells, exactly as PLS_Load_Problem
// does). It returns an error if preprocessing proves the instance
// unsolvable: an empty domain means no value is left for some cell.
func New(b *Board, rnd *rng.Source) (*Model, error) {
	order := b.Order

	rowUsed := make([][]bool, order)
	colUsed := make([][]bool, order)
	for i := 0; i < order; i++ {
		rowUsed[i] = make([]bool, order)
		colUsed[i] = make([]bool, order)
	}
	type cell struct{ r, c int }
	var holeCells []cell
	for r := 0; r < order; r++ {
		for c := 0; c < order; c++ {
			v := b.Grid[r][c]
			if v >= 0 {
				rowUsed[r][v] = true
				colUsed[c][v] = true
			} else {
				holeCells = append(holeCells, cell{r, c})
			}
		}
	}

	rowMissing := make([]bitvec.Vec, order)
	colMissing := make([]bitvec.Vec, order)
	for i := 0; i < order; i++ {
		rowMissing[i] = fullMinus(order, rowUsed[i])
		colMissing[i] = fullMinus(order, colUsed[i])
	}

	n := len(holeCells)
	rowGroups := make([]alldiff.Group, order)
	colGroups := make([]alldiff.Group, order)
	for i, hc := range holeCells {
		rowGroups[hc.r] = append(rowGroups[hc.r], i)
		colGroups[hc.c] = append(colGroups[hc.c], i)
	}

	prop := alldiff.New(n, order, rowGroups, colGroups, nil)
	prop.Init()
	for i, hc := range holeCells {
		bv := rowMissing[hc.r].Intersect(colMissing[hc.c])
		if !prop.TellDomain(i, bv) {
			return nil, fmt.Errorf("qwh: unsolvable problem (hole %d/%d has empty domain)", hc.r, hc.c)
		}
	}
	if !prop.Propagate(rowMissing, colMissing) {
		return nil, fmt.Errorf("qwh: unsolvable problem (preprocessing failed)")
	}

	m := &Model{
		order:    order,
		grid:     make([][]int, order),
		rows:     make([]line, order),
		cols:     make([]line, order),
		colFixed: make([][]bool, order),
		rnd:      rnd,
	}
	for r := range m.grid {
		m.grid[r] = append([]int(nil), b.Grid[r]...)
	}
	for i := range m.colFixed {
		m.colFixed[i] = make([]bool, order)
	}

	// Fixed cells of the original board are always fixed.
	for r := 0; r < order; r++ {
		for c := 0; c < order; c++ {
			if v := b.Grid[r][c]; v >= 0 {
				m.colFixed[c][v] = true
			}
		}
	}

	// Resolve singleton holes into fixed cells; keep the rest.
	idx := 0
	holeIdx := make([]int, 0, n)
	for i, hc := range holeCells {
		if prop.DomSize(i) == 1 {
			x := prop.Domain(i).First()
			rowMissing[hc.r] = rowMissing[hc.r].Reset(x)
			colMissing[hc.c] = colMissing[hc.c].Reset(x)
			m.colFixed[hc.c][x] = true
			m.grid[hc.r][hc.c] = x
			continue
		}
		m.holes = append(m.holes, hole{row: hc.r, col: hc.c, domain: prop.Domain(i)})
		holeIdx = append(holeIdx, idx)
		idx++
	}

	beg := 0
	for r := 0; r < order; r++ {
		next := beg
		for next < len(m.holes) && m.holes[next].row == r {
			next++
		}
		m.rows[r] = line{beg: beg, next: next, missing: rowMissing[r].Members()}
		beg = next
	}
	// cols track only the missing-value list; hole membership for a
	// column is recovered by scanning m.holes (orders here are small).
	for c := 0; c < order; c++ {
		m.cols[c] = line{missing: colMissing[c].Members()}
	}

	m.sigma = make([]int, len(m.holes))
	m.varErr = make([]int, len(m.holes))
	m.SetInitialConfiguration()
	return m, nil
}

func (m *Model) Size() int    { return len(m.sigma) }
func (m *Model) Sigma() []int { return m.sigma }

func (m *Model) NextI(i int) int { return adsearch.DefaultNextI(len(m.sigma), i) }

// NextJ restricts j to i's own row, preserving row-consistency, the
// invariant qwh.c's Next_J depends on.
func (m *Model) NextJ(i, j int, exhaustive bool) int {
	row := m.rows[m.holes[i].row]
	if j < 0 {
		j = i
	}
	j++
	if j >= row.next {
		return -1
	}
	return j
}

func (m *Model) holesInCol(c int) []int {
	var out []int
	for i, h := range m.holes {
		if h.col == c {
			out = append(out, i)
		}
	}
	return out
}

// recompute implements qwh.c's Cost_Of_Solution: per-column
// duplicate and out-of-domain errors plus a reachability heuristic,
// grounded on qwh.c's Compute_Errors.
func (m *Model) recompute() int {
	for i := range m.varErr {
		m.varErr[i] = 0
	}
	total := 0
	for c := 0; c < m.order; c++ {
		holesC := m.holesInCol(c)
		count := make([]int, m.order)
		for v, fixed := range m.colFixed[c] {
			if fixed {
				count[v]++
			}
		}
		var errHoles []int
		rc := 0
		for _, i := range holesC {
			x := m.sigma[i]
			count[x]++
			if !m.holes[i].domain.Has(x) {
				m.varErr[i]++
				errHoles = append(errHoles, i)
				rc++
			}
		}
		for _, i := range holesC {
			x := m.sigma[i]
			if count[x] > 1 {
				m.varErr[i]++
				errHoles = append(errHoles, i)
				rc++
			}
		}
		if rc == 0 {
			continue
		}
		total += rc
		for _, x := range m.cols[c].missing {
			if count[x] != 0 {
				continue
			}
			found := false
			for _, i := range errHoles {
				x1 := m.sigma[i]
				if !m.holes[i].domain.Has(x) {
					continue
				}
				row := m.rows[m.holes[i].row]
				for i0 := row.beg; i0 < row.next; i0++ {
					if m.sigma[i0] == x {
						c0 := m.holes[i0].col
						if m.colFixed[c0][x1] {
							total += 4
						}
						found = true
						break
					}
				}
				if found {
					break
				}
			}
			if !found {
				total += m.order
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

// CostIfSwap evaluates the cost of swapping holes i and j, restoring
// sigma before returning.
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

// ExecutedSwap recomputes the full cost rather than updating it
// incrementally: the reachability term is cheap enough over one row
// that there is nothing worth amortizing.
func (m *Model) ExecutedSwap(i, j int) { m.recompute() }

// SetInitialConfiguration writes, into each row, a fresh random
// permutation of that row's missing values.
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
		grid[r] = append([]int(nil), m.grid[r]...)
	}
	for i, h := range m.holes {
		grid[h.row][h.col] = m.sigma[i]
	}
	for _, r := range grid {
		fmt.Fprintln(w, r)
	}
}

// ANSI codes for DisplayColor, named and valued exactly as qwh.c's
// Display_Solution_Color macros.
const (
	ansiNormal      = "\033[0;30m" // black
	ansiVarOK       = "\033[1;32m" // green
	ansiErrDomain   = "\033[0;41m" // background red
	ansiErrOtherVar = "\033[1;31m" // red
)

// DisplayColor prints the board with the same layout as Display but
// ANSI-highlights each hole: green when its value is domain-consistent
// and unique in its column, red background on a domain violation, red
// text on a column duplicate, grounded on qwh.c's Display_Solution_Color.
func (m *Model) DisplayColor(w io.Writer) {
	const (
		errDomain = 1 << iota
		errOther
	)
	mark := make([]int, len(m.holes))
	for c := 0; c < m.order; c++ {
		count := make([]int, m.order)
		for v, fixed := range m.colFixed[c] {
			if fixed {
				count[v]++
			}
		}
		holesC := m.holesInCol(c)
		for _, i := range holesC {
			x := m.sigma[i]
			if !m.holes[i].domain.Has(x) {
				mark[i] |= errDomain
			}
			count[x]++
		}
		for _, i := range holesC {
			if count[m.sigma[i]] > 1 {
				mark[i] |= errOther
			}
		}
	}

	holeAt := make([][]int, m.order)
	for r := range holeAt {
		holeAt[r] = make([]int, m.order)
		for c := range holeAt[r] {
			holeAt[r][c] = -1
		}
	}
	for i, h := range m.holes {
		holeAt[h.row][h.col] = i
	}

	fmt.Fprintf(w, "colors: Fixed Value   %sVariable OK%s    %sErr Domain%s   %sErr dupl on col%s\n",
		ansiVarOK, ansiNormal, ansiErrDomain, ansiNormal, ansiErrOtherVar, ansiNormal)

	fmt.Fprint(w, "    ")
	for c := 0; c < m.order; c++ {
		fmt.Fprintf(w, " %3d", c)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "    ")
	for c := 0; c < m.order; c++ {
		fmt.Fprint(w, "----")
	}
	fmt.Fprintln(w)

	for r := 0; r < m.order; r++ {
		fmt.Fprintf(w, "%2d | ", r)
		for c := 0; c < m.order; c++ {
			v := m.grid[r][c]
			if i := holeAt[r][c]; i >= 0 {
				v = m.sigma[i]
				switch {
				case mark[i]&errDomain != 0:
					fmt.Fprint(w, ansiErrDomain)
				case mark[i]&errOther != 0:
					fmt.Fprint(w, ansiErrOtherVar)
				default:
					fmt.Fprint(w, ansiVarOK)
				}
			}
			fmt.Fprintf(w, "%3d%s ", v, ansiNormal)
		}
		fmt.Fprintln(w)
	}
}

// CheckRows independently verifies that each row of holes currently
// forms a permutation of that row's missing values, grounded on qwh.c's
// Check_Solution_Line.
func (m *Model) CheckRows() bool {
	for _, row := range m.rows {
		if ok, _ := rng.ValidatePermutation(m.sigma[row.beg:row.next], row.missing, 0); !ok {
			return false
		}
	}
	return true
}

// CheckSolution independently verifies every row and column of the
// completed board holds each value 0..order-1 exactly once.
func (m *Model) CheckSolution() bool {
	if !m.CheckRows() {
		return false
	}
	for c := 0; c < m.order; c++ {
		count := make([]int, m.order)
		for v, fixed := range m.colFixed[c] {
			if fixed {
				count[v]++
			}
		}
		for _, i := range m.holesInCol(c) {
			count[m.sigma[i]]++
		}
		for _, n := range count {
			if n != 1 {
				return false
			}
		}
	}
	return true
}
