// Package bubble implements the L-Bubble-Check forward-backward check-node
// processor (spec §4.3), approximating the exact GF(q) convolution of a
// check-row's incoming Mvc lists via a serialized elementary-step composition
// with a 4-candidate comparator register.
//
// Grounded on original_source/EMS_HS_L-BubbleCheck_UBS_decoder_v2.c's
// ElementaryStep and the forward/backward sweep in CheckPassLogEMS, adapted to
// the ascending-cost (0 = best) LLR convention of spec.md §3 rather than the
// original's max-log sign convention (spec §9 re-architecting note).
package bubble

import (
	"fmt"

	"github.com/nbldpc/decoder/internal/gf"
	"github.com/nbldpc/decoder/internal/ldpc/message"
)

// ErrConfig marks configuration errors (e.g. row degree < 2) raised by this package.
var ErrConfig = fmt.Errorf("bubble: config error")

// candidate is one of the 4 comparator-register slots: a cell of the
// conceptual U×V sum matrix plus its (row, col) coordinates.
type candidate struct {
	llr      float32
	row, col int
}

// ElementaryStep approximates the GF(q)-marginalized sum of two truncated
// sorted messages U, V, bounded by nbOper comparator iterations (spec §4.3).
//
// U and V must already satisfy the sort invariant (ascending LLR, distinct GF
// per occupied slot); the result does too, normalized so S.Entries[0].LLR == 0.
func ElementaryStep(u, v message.List, tbl *gf.Tables, nbOper int) message.List {
	nm := u.Len()
	out := message.NewList(nm)
	seen := make(map[uint16]bool, nm)

	// tab_aux[i][j] = U.LLR[i] + V.LLR[j], accessed lazily through valueAt
	// instead of precomputing the full nm×nm matrix (spec §4.3: "Conceptually
	// define the matrix A[i][j]").
	valueAt := func(row, col int) (float32, bool) {
		if row >= nm || col >= nm {
			return 0, false
		}
		if u.Entries[row].GF == message.GFNone || v.Entries[col].GF == message.GFNone {
			return 0, false
		}
		return u.Entries[row].LLR + v.Entries[col].LLR, true
	}

	// The 4-candidate register covers the first two rows and two columns
	// (the "L-Bubble" restriction, spec §4.3 rationale).
	reg := make([]candidate, 4)
	alive := make([]bool, 4)
	init := []struct{ row, col int }{{0, 0}, {1, 0}, {2, 0}, {0, 1}}
	for i, rc := range init {
		v, ok := valueAt(rc.row, rc.col)
		reg[i] = candidate{llr: v, row: rc.row, col: rc.col}
		alive[i] = ok
	}

	produced := 0
	for step := 0; step < nbOper && produced < nm; step++ {
		pick := -1
		for i := 0; i < 4; i++ {
			if !alive[i] {
				continue
			}
			if pick < 0 || reg[i].llr < reg[pick].llr {
				pick = i
			}
		}
		if pick < 0 {
			break // both sentinels at every live candidate (spec §4.3 failure policy)
		}

		c := reg[pick]
		gfSym := tbl.ADD(u.Entries[c.row].GF, v.Entries[c.col].GF)
		if !seen[gfSym] {
			out.Entries[produced] = message.Msg{LLR: c.llr, GF: gfSym}
			seen[gfSym] = true
			produced++
			if produced == nm {
				break
			}
		}

		// Advance: position p with bit p>>1 choosing +1 row vs +1 col
		// (spec §4.3 step 4).
		u2 := pick >> 1
		newRow, newCol := c.row+u2, c.col+1-u2
		val, ok := valueAt(newRow, newCol)
		if !ok {
			// original_source/EMS_HS_L-BubbleCheck_UBS_decoder_v2.c stops the
			// whole elementary step as soon as the picked candidate's advance
			// runs off the matrix, rather than retiring just that candidate.
			break
		}
		reg[pick] = candidate{llr: val, row: newRow, col: newCol}
	}

	for i := produced; i < nm; i++ {
		out.Entries[i] = message.Msg{LLR: message.LLRInf, GF: message.GFNone}
	}
	out.Normalize()
	return out
}

// Process implements the CNP contract for one check-row (spec §4.3 steps 1-5):
// rotate Mvc in by matValue, forward/backward sweep, merge, rotate Mcv out.
//
// incoming[i] must be the row's i-th edge's Mvc list (already addressed via
// NtoB/edge(m,i) by the caller); matValue[i] is H_{m,n} for that edge.
func Process(incoming []message.List, matValue []uint16, tbl *gf.Tables, nbOper int) ([]message.List, error) {
	dc := len(incoming)
	if dc < 2 {
		return nil, fmt.Errorf("%w: row degree %d < 2", ErrConfig, dc)
	}
	nm := incoming[0].Len()

	// Step 1: rotation in.
	rotated := make([]message.List, dc)
	for i := range incoming {
		rotated[i] = message.NewList(nm)
		for k, e := range incoming[i].Entries {
			if e.GF == message.GFNone {
				rotated[i].Entries[k] = e
				continue
			}
			rotated[i].Entries[k] = message.Msg{LLR: e.LLR, GF: tbl.MUL(e.GF, matValue[i])}
		}
	}

	// Step 2: forward sweep, F[0..dc-2].
	forward := make([]message.List, dc-1)
	forward[0] = rotated[0]
	for i := 1; i < dc-1; i++ {
		forward[i] = ElementaryStep(forward[i-1], rotated[i], tbl, nbOper)
	}

	// Step 3: backward sweep, B[1..dc-1].
	backward := make([]message.List, dc)
	backward[dc-1] = rotated[dc-1]
	for i := dc - 2; i >= 1; i-- {
		backward[i] = ElementaryStep(backward[i+1], rotated[i], tbl, nbOper)
	}

	// Step 4: merge.
	out := make([]message.List, dc)
	out[0] = backward[1]
	out[dc-1] = forward[dc-2]
	for i := 1; i < dc-1; i++ {
		out[i] = ElementaryStep(forward[i-1], backward[i+1], tbl, nbOper)
	}

	// Step 5: rotation out.
	for i := range out {
		rot := message.NewList(nm)
		for k, e := range out[i].Entries {
			if e.GF == message.GFNone {
				rot.Entries[k] = e
				continue
			}
			rot.Entries[k] = message.Msg{LLR: e.LLR, GF: tbl.DIV(e.GF, matValue[i])}
		}
		out[i] = rot
	}

	return out, nil
}
