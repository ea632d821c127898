package alldiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mathrgo/adsearch/bitvec"
)

// TestUndoRoundTrip exercises a tell-domain/tell-value/undo session and
// checks every hole's domain is bit-identical to its pre-session value:
// a failed session must leave no trace.
func TestUndoRoundTrip(t *testing.T) {
	tests := map[string]struct {
		tellDomainAt int
		tellDomain   bitvec.Vec
		tellValueAt  int
		tellValue    int
	}{
		"full-domain tell then pin": {
			tellDomainAt: 0,
			tellDomain:   bitvec.FromValues(0, 1),
			tellValueAt:  2,
			tellValue:    1,
		},
		"shrink to singleton then pin": {
			tellDomainAt: 3,
			tellDomain:   bitvec.FromValues(1),
			tellValueAt:  1,
			tellValue:    0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p, mr, mc := new2x2()
			before := make([]bitvec.Vec, len(p.hol))
			for i := range p.hol {
				before[i] = p.Domain(i)
			}

			p.Init()
			if !p.TellDomain(tc.tellDomainAt, tc.tellDomain) {
				t.Fatalf("TellDomain(%d, %v) failed", tc.tellDomainAt, tc.tellDomain)
			}
			if !p.TellValue(tc.tellValueAt, tc.tellValue) {
				t.Fatalf("TellValue(%d, %d) failed", tc.tellValueAt, tc.tellValue)
			}
			p.Propagate(mr, mc)
			p.Undo()

			after := make([]bitvec.Vec, len(p.hol))
			for i := range p.hol {
				after[i] = p.Domain(i)
			}
			if diff := cmp.Diff(before, after); diff != "" {
				t.Fatalf("domains not bit-identical after undo (-before +after):\n%s", diff)
			}
		})
	}
}
