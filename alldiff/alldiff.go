/*
Package alldiff implements an all-different constraint propagator:
forward checking plus row/column channeling, run to a fixed point,
with save/restore across a "tell" session. It is grounded on
qwh.c's All_Diff_Init/All_Diff_Tell_Domain/All_Diff_Tell_Value/
All_Diff_Do_Propagation/All_Diff_Undo, generalized away from QWH's
line/column naming (the propagator itself has no notion of rows and
columns; qwh.Model supplies the groupings).
*/
package alldiff

import "github.com/mathrgo/adsearch/bitvec"

// Group is a set of variable indices that must all take different values,
// e.g. the holes of one row or one column of a QWH board.
type Group []int

// hole is the propagator's private per-variable bookkeeping.
type hole struct {
	dom          bitvec.Vec
	domSize      int
	propagMe     uint64
	savedDom     bitvec.Vec
	savedSize    int
	saveStamp    uint64
}

// Propagator holds, for a fixed collection of variables, the mutable domains
// used across repeated tell/propagate/undo sessions. A Propagator is
// reused across many sessions (the timestamp advances monotonically per
// Init call) the way qwh.c's single static timestamp is reused across many
// resets.
type Propagator struct {
	hol       []hole
	order     int
	rows      []Group
	cols      []Group
	rowOf     []int
	colOf     []int
	timestamp uint64
}

// New creates a propagator over n variables with domain order `order`
// (values 0..order-1), grouped into rows and cols (every variable must
// belong to exactly one row group and one column group). initDom, if
// non-nil, gives the starting domain for each variable; otherwise every
// variable starts with the full domain.
func New(n, order int, rows, cols []Group, initDom []bitvec.Vec) *Propagator {
	p := &Propagator{
		hol:   make([]hole, n),
		order: order,
		rows:  rows,
		cols:  cols,
		rowOf: make([]int, n),
		colOf: make([]int, n),
	}
	for r, g := range rows {
		for _, i := range g {
			p.rowOf[i] = r
		}
	}
	for c, g := range cols {
		for _, i := range g {
			p.colOf[i] = c
		}
	}
	for i := range p.hol {
		d := bitvec.Full(order)
		if initDom != nil {
			d = initDom[i]
		}
		p.hol[i].dom = d
		p.hol[i].domSize = d.Cardinality()
	}
	return p
}

// Domain returns the current domain of variable i.
func (p *Propagator) Domain(i int) bitvec.Vec { return p.hol[i].dom }

// DomSize returns the current domain cardinality of variable i.
func (p *Propagator) DomSize(i int) int { return p.hol[i].domSize }

// Init begins a new tell/propagate session. Every tell performed after Init
// and before Undo is rolled back together by Undo.
func (p *Propagator) Init() {
	p.timestamp++
}

// save records the pre-session domain of i at most once per session,
// gated on saveStamp < timestamp exactly as qwh.c's ad_save_timestamp is.
func (p *Propagator) save(i int) {
	h := &p.hol[i]
	if h.saveStamp < p.timestamp {
		h.savedDom = h.dom
		h.savedSize = h.domSize
		h.saveStamp = p.timestamp
	}
}

// TellDomain intersects the domain of i with b. It returns false if the
// resulting domain is empty (the session has failed); true otherwise,
// whether or not the domain actually shrank.
func (p *Propagator) TellDomain(i int, b bitvec.Vec) bool {
	h := &p.hol[i]
	nd := h.dom.Intersect(b)
	size := nd.Cardinality()
	if size == 0 {
		return false
	}
	if size == h.domSize {
		return true
	}
	p.save(i)
	h.dom = nd
	h.domSize = size
	h.propagMe = p.timestamp
	return true
}

// TellValue collapses the domain of i to the singleton {x}. It returns
// false if x is not currently in i's domain.
func (p *Propagator) TellValue(i, x int) bool {
	h := &p.hol[i]
	if !h.dom.Has(x) {
		return false
	}
	if h.domSize == 1 {
		return true
	}
	p.save(i)
	h.dom = bitvec.FromValues(x)
	h.domSize = 1
	h.propagMe = p.timestamp
	return true
}

// Undo restores every variable touched (via TellDomain/TellValue) during the
// current session to its pre-session domain.
func (p *Propagator) Undo() {
	for i := range p.hol {
		h := &p.hol[i]
		if h.saveStamp == p.timestamp {
			h.dom = h.savedDom
			h.domSize = h.savedSize
			h.saveStamp = 0
			h.propagMe = 0
		}
	}
}

// Propagate runs the three filters to a fixed point:
// value consistency (forward checking), then row channeling, then column
// channeling, restarting from value consistency whenever any filter makes
// a change, exactly as qwh.c's All_Diff_Do_Propagation does. missingRow and
// missingCol give, for each row/column index, the bit-vector of values that
// still need to be placed into that group.
func (p *Propagator) Propagate(missingRow, missingCol []bitvec.Vec) bool {
	for {
		fixPoint := true

		for i := range p.hol {
			h := &p.hol[i]
			if h.propagMe < p.timestamp {
				continue
			}
			h.propagMe = 0
			if h.domSize > 1 {
				continue
			}
			compl := h.dom.Complement(p.order)

			for _, j := range p.rows[p.rowOf[i]] {
				if j == i {
					continue
				}
				if !p.TellDomain(j, compl) {
					return false
				}
			}
			for _, j := range p.cols[p.colOf[i]] {
				if j == i {
					continue
				}
				if !p.TellDomain(j, compl) {
					return false
				}
			}
			fixPoint = false
		}
		// The loop above always treats a singleton discovery as a change; this
		// mirrors All_Diff_Do_Propagation's "continue" after pass 1 whenever any
		// singleton was processed, not just when a *neighbor's* domain shrank:
		// the C source recomputes fix_point purely from "did pass 1 run at all".
		if !fixPoint {
			continue
		}

		if !p.channel(p.rows, missingRow) {
			return false
		}
		changedByRowChannel := p.anyPendingPropagation()
		if changedByRowChannel {
			continue
		}

		if !p.channel(p.cols, missingCol) {
			return false
		}
		if p.anyPendingPropagation() {
			continue
		}

		return true
	}
}

// anyPendingPropagation reports whether some variable was reduced to a
// singleton (or had its domain shrunk) during the last channel() call and
// is awaiting the value-consistency pass; channel() stamps propagMe on
// every variable it touches, so this is just "is propagMe current for
// anyone".
func (p *Propagator) anyPendingPropagation() bool {
	for i := range p.hol {
		if p.hol[i].propagMe == p.timestamp {
			return true
		}
	}
	return false
}

// channel implements one direction (rows, or columns) of the channeling
// filter: for each group and each value still
// missing in it, if exactly one variable of the group can still take that
// value, that variable is told to take it; if none can, the session fails.
func (p *Propagator) channel(groups []Group, missing []bitvec.Vec) bool {
	for g, grp := range groups {
		ok := true
		missing[g].ForEach(func(x int) {
			if !ok {
				return
			}
			count := 0
			j := -1
			for _, i := range grp {
				if p.hol[i].dom.Has(x) {
					count++
					j = i
					if count > 1 {
						break
					}
				}
			}
			if count == 0 {
				ok = false
				return
			}
			if count == 1 {
				if !p.TellValue(j, x) {
					ok = false
				}
			}
		})
		if !ok {
			return false
		}
	}
	return true
}
