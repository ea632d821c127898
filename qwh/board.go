/*
Package qwh implements the Quasigroup With Holes problem as an
adsearch.Model, grounded end to end on qwh.c: board loading, the
all-different preprocessing pass (package alldiff over package bitvec),
Cost_Of_Solution/Compute_Errors, Set_Init_Configuration, Next_J, and the
two reset strategies (Reset_Repair and Reset_With_All_Diff).
*/
package qwh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mathrgo/adsearch/bitvec"
)

// Board is a parsed order x order QWH instance; Grid[r][c] is the cell's
// fixed value, or -1 if it is a hole.
type Board struct {
	Order int
	Grid  [][]int
}

// Parse reads the ASCII instance format: a header line
// "order K" (K <= bitvec.MaxOrder) followed by order rows of order
// whitespace-separated integers, negative entries denoting holes.
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
			return nil, fmt.Errorf("qwh: bad file format (cannot read the order)")
		}
		if strings.EqualFold(tok, "order") {
			n, ok2 := readTok()
			if !ok2 {
				return nil, fmt.Errorf("qwh: bad file format (cannot read the order)")
			}
			v, err := strconv.Atoi(n)
			if err != nil {
				return nil, fmt.Errorf("qwh: bad order value %q: %w", n, err)
			}
			order = v
			break
		}
	}
	if order > bitvec.MaxOrder {
		return nil, fmt.Errorf("qwh: order %d exceeds max order %d", order, bitvec.MaxOrder)
	}

	b := &Board{Order: order, Grid: make([][]int, order)}
	for r := 0; r < order; r++ {
		b.Grid[r] = make([]int, order)
		for c := 0; c < order; c++ {
			tok, ok := readTok()
			if !ok {
				return nil, fmt.Errorf("qwh: bad file format (order %d: cannot read value[%d][%d])", order, r, c)
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("qwh: bad value %q at [%d][%d]: %w", tok, r, c, err)
			}
			if v < 0 {
				v = -1
			}
			b.Grid[r][c] = v
		}
	}
	return b, nil
}
