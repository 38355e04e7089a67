// Package message defines the edge-message value type and the truncated sorted
// list operations shared by the VNP, the L-Bubble-Check CNP, and the Syndrome CNP.
//
// This replaces the original C source's parallel "LLR array + GF array" pairs
// (spec §9) with a single value type carrying both fields, preserving the
// two-way sort invariant by construction.
package message

import "math"

// Sentinel LLR values. LLRSat is the saturation cost assigned to an unoccupied
// slot; LLRInf marks an ElementaryStep output slot that no bubble candidate
// filled. Both are named constants referenced by every call site instead of the
// magic +1e5/-1e5 literals of the original source (spec §9).
const (
	LLRSat = float32(1.0e5)
	LLRInf = float32(math.MaxFloat32)
)

// GFNone is the reserved "no symbol" sentinel, distinct from any valid GF(q) index
// since valid symbols are always < q.
const GFNone = uint16(0xFFFF)

// Msg is one (cost, symbol) pair of a truncated edge message.
type Msg struct {
	LLR float32
	GF  uint16
}

// List is a truncated, sorted (by LLR ascending) message of up to Nm distinct
// GF symbols. It backs both Mvc and the list-form Mcv used by the bubble CNP.
type List struct {
	Entries []Msg // len == nm; Entries[0].LLR == 0 once normalized
}

// NewList allocates a List of the given truncated size, every slot sentinel.
func NewList(nm int) List {
	l := List{Entries: make([]Msg, nm)}
	for i := range l.Entries {
		l.Entries[i] = Msg{LLR: LLRSat, GF: GFNone}
	}
	return l
}

// Len reports the truncation size nm.
func (l List) Len() int { return len(l.Entries) }

// Normalize shifts every entry so the minimum LLR becomes 0 (spec §3
// normalization invariant). It is a no-op on an all-sentinel list.
func (l List) Normalize() {
	if len(l.Entries) == 0 {
		return
	}
	min := l.Entries[0].LLR
	for _, e := range l.Entries[1:] {
		if e.LLR < min {
			min = e.LLR
		}
	}
	if min == 0 {
		return
	}
	for i := range l.Entries {
		if l.Entries[i].GF != GFNone {
			l.Entries[i].LLR -= min
		}
	}
}

// Validate reports whether l satisfies the sort invariant (spec §3): entries
// ascending by LLR and pairwise-distinct GF symbols among occupied slots.
func (l List) Validate() bool {
	seen := make(map[uint16]bool, len(l.Entries))
	prev := float32(-1)
	for _, e := range l.Entries {
		if e.LLR < prev {
			return false
		}
		prev = e.LLR
		if e.GF == GFNone {
			continue
		}
		if seen[e.GF] {
			return false
		}
		seen[e.GF] = true
	}
	return true
}

// Densify expands a sorted list to a dense length-q vector, filling absent
// symbols with the saturation sentinel plus a configured offset (spec §4.2).
func (l List) Densify(q int, offset float32) []float32 {
	out := make([]float32, q)
	for i := range out {
		out[i] = LLRSat + offset
	}
	for _, e := range l.Entries {
		if e.GF != GFNone && int(e.GF) < q {
			out[e.GF] = e.LLR
		}
	}
	return out
}

// Truncate extracts the nm smallest entries of a dense length-q vector,
// normalizes, and returns the resulting List (used by the VNP, spec §4.2).
func Truncate(dense []float32, nm int) List {
	type cand struct {
		llr float32
		gf  uint16
	}
	cands := make([]cand, len(dense))
	for g, v := range dense {
		cands[g] = cand{llr: v, gf: uint16(g)}
	}
	// partial selection sort for the nm smallest — nm is small (≤ ~32) relative
	// to q (≤ 256), so this is cheaper than a full sort for the common case.
	if nm > len(cands) {
		nm = len(cands)
	}
	for i := 0; i < nm; i++ {
		minIdx := i
		for j := i + 1; j < len(cands); j++ {
			if cands[j].llr < cands[minIdx].llr {
				minIdx = j
			}
		}
		cands[i], cands[minIdx] = cands[minIdx], cands[i]
	}
	l := NewList(nm)
	for i := 0; i < nm; i++ {
		l.Entries[i] = Msg{LLR: cands[i].llr, GF: cands[i].gf}
	}
	l.Normalize()
	return l
}
