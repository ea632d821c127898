package qwh

import (
	"github.com/mathrgo/adsearch/alldiff"
	"github.com/mathrgo/adsearch/bitvec"
)

// Reset perturbs roughly n variables using one of two strategies
// selected by a threshold on how many columns are in error:
// Reset-Repair when few, Reset-With-All-Diff (a first-fail partial
// re-propagation) otherwise.
func (m *Model) Reset(n int) (cost int, ok bool) {
	m.recompute()
	badCols := 0
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
		for _, cnt := range count {
			if cnt > 1 {
				badCols++
				break
			}
		}
	}

	if badCols < m.order/4 {
		n = m.resetRepair(n)
	} else {
		n = m.resetWithAllDiff(n)
	}
	if n < 1 {
		n = 1
	}
	m.topUp(n)
	return 0, false
}

// resetRepair marks every hole in an error column's row or column as
// unassigned and repairs each row back into a permutation of its
// missing values, grounded on qwh.c's Reset_Repair.
func (m *Model) resetRepair(n int) int {
	save := append([]int(nil), m.sigma...)
	touched := make([]bool, len(m.sigma))
	for c := 0; c < m.order; c++ {
		count := make([]int, m.order)
		for v, fixed := range m.colFixed[c] {
			if fixed {
				count[v]++
			}
		}
		holesC := m.holesInCol(c)
		for _, i := range holesC {
			count[m.sigma[i]]++
		}
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
		for _, i := range holesC {
			touched[i] = true
			row := m.rows[m.holes[i].row]
			for k := row.beg; k < row.next; k++ {
				touched[k] = true
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
		_ = r
		for i := row.beg; i < row.next; i++ {
			if touched[i] {
				m.sigma[i] = -1
			}
		}
		m.rnd.RepairPermutation(m.sigma[row.beg:row.next], row.missing, 0)
	}

	diff := 0
	for i, v := range m.sigma {
		if v != save[i] {
			diff++
		}
	}
	return n - diff/2
}

// resetWithAllDiff runs a first-fail partial repair driven by the
// all-different propagator (tentatively telling each hole's current
// value, undoing on failure), then repairs each row back into a
// permutation of its missing values, grounded on qwh.c's
// Reset_With_All_Diff / Partial_Repair_FF.
func (m *Model) resetWithAllDiff(n int) int {
	save := append([]int(nil), m.sigma...)

	nHoles := len(m.holes)
	rowGroups := make([]alldiff.Group, m.order)
	colGroups := make([]alldiff.Group, m.order)
	initDom := make([]bitvec.Vec, nHoles)
	for i, h := range m.holes {
		rowGroups[h.row] = append(rowGroups[h.row], i)
		colGroups[h.col] = append(colGroups[h.col], i)
		initDom[i] = h.domain
	}
	prop := alldiff.New(nHoles, m.order, rowGroups, colGroups, initDom)

	done := make([]bool, nHoles)
	assigned := make([]bool, nHoles)
	for i := range assigned {
		assigned[i] = true
	}

	rowMissing := make([]bitvec.Vec, m.order)
	colMissing := make([]bitvec.Vec, m.order)
	for r, row := range m.rows {
		rowMissing[r] = bitvec.FromValues(row.missing...)
	}
	for c, col := range m.cols {
		colMissing[c] = bitvec.FromValues(col.missing...)
	}

	for {
		minI, minDom, minNb := -1, m.order+1, 0
		for i := 0; i < nHoles; i++ {
			if done[i] || !assigned[i] {
				continue
			}
			size := prop.DomSize(i)
			switch {
			case size < minDom:
				minDom, minI, minNb = size, i, 1
			case size == minDom:
				minNb++
				if m.rnd.Uniform(minNb) == 0 {
					minI = i
				}
			}
		}
		if minNb == 0 {
			break
		}
		i := minI
		done[i] = true

		prop.Init()
		x := m.sigma[i]
		if !prop.TellValue(i, x) || !prop.Propagate(rowMissing, colMissing) {
			prop.Undo()
			m.sigma[i] = -1
			assigned[i] = false
		}
	}

	for _, row := range m.rows {
		m.rnd.RepairPermutation(m.sigma[row.beg:row.next], row.missing, 0)
	}

	diff := 0
	for i, v := range m.sigma {
		if v != save[i] {
			diff++
		}
	}
	return n - diff/2
}

// topUp draws n additional uniformly random intra-row swaps.
func (m *Model) topUp(n int) {
	for n > 0 {
		r := m.rnd.Uniform(m.order)
		row := m.rows[r]
		nh := row.next - row.beg
		if nh <= 1 {
			continue
		}
		for k := 0; k < 3 && n > 0; k++ {
			i := row.beg + m.rnd.Uniform(nh)
			var j int
			for {
				j = row.beg + m.rnd.Uniform(nh)
				if j != i {
					break
				}
			}
			m.sigma[i], m.sigma[j] = m.sigma[j], m.sigma[i]
			n--
		}
	}
}
