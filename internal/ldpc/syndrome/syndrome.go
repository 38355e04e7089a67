package syndrome

import (
	"fmt"

	"github.com/nbldpc/decoder/internal/gf"
	"github.com/nbldpc/decoder/internal/ldpc/message"
)

// Options parameterizes one CNP.Process call: the precomputed table, the
// enabled Bayes refinement, the saturation policy, and presorting border.
type Options struct {
	Table            *ConfigTable
	SaturationPolicy SaturationPolicy
	BayesEnabled     bool
	PresortBorder    int // 0 disables presorting
}

// Presort reorders edges ascending by Mvc.LLR[·][1] (second entry), and
// additionally reorders the top `border` edges by Mvc.LLR[·][2] (spec §4.4
// "Presorting"). It returns the permuted lists and the permutation applied
// (perm[i] = original index now at position i), which the caller must invert
// on the output before rotating back.
func Presort(lists []message.List, border int) ([]message.List, []int) {
	dc := len(lists)
	perm := make([]int, dc)
	for i := range perm {
		perm[i] = i
	}

	key := func(idx, slot int) float32 {
		if slot >= lists[idx].Len() {
			return message.LLRSat
		}
		return lists[idx].Entries[slot].LLR
	}

	// primary: sort all dc edges by Mvc.LLR[·][1]
	sortByKey(perm, func(idx int) float32 { return key(idx, 1) })

	// secondary: re-sort only the leading `border` edges by Mvc.LLR[·][2],
	// identity on the rest (spec §9: "the inverse permutation must cover all
	// edges (the identity on untouched positions)").
	if border > 0 && border < dc {
		head := append([]int(nil), perm[:border]...)
		sortByKey(head, func(idx int) float32 { return key(idx, 2) })
		copy(perm[:border], head)
	}

	out := make([]message.List, dc)
	for i, orig := range perm {
		out[i] = lists[orig]
	}
	return out, perm
}

// sortByKey insertion-sorts idx in place by ascending key(idx) — dc is small
// (row degree), so this avoids pulling in sort.Slice's interface overhead for
// what the original source implements as a plain selection sort.
func sortByKey(idx []int, key func(int) float32) {
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && key(idx[j]) < key(idx[j-1]); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
}

// InvertPermutation returns perm's inverse: inv[perm[i]] = i.
func InvertPermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}

// syndromeEntry is one row's (LLR, GF) pair over the configuration table.
type syndromeEntry struct {
	llr float32
	gf  uint16
	row int // index of the configuration-table row this entry was computed from
}

// computeSyndromeSet evaluates the configuration table against the row's
// (already rotated) Mvc lists (spec §4.4 "Syndrome set"):
//
//	LLR[t] = Σ_j Mvc.LLR[j][C[t][j]]
//	GF[t]  = ⊕_j Mvc.GF[j][C[t][j]]
func computeSyndromeSet(lists []message.List, table *ConfigTable, tbl *gf.Tables) []syndromeEntry {
	out := make([]syndromeEntry, 0, len(table.Rows))
	for t, row := range table.Rows {
		var llr float32
		var gfSym uint16
		ok := true
		for j, dev := range row {
			if dev >= lists[j].Len() || lists[j].Entries[dev].GF == message.GFNone {
				ok = false
				break
			}
			llr += lists[j].Entries[dev].LLR
			gfSym = tbl.ADD(gfSym, lists[j].Entries[dev].GF)
		}
		if !ok {
			continue
		}
		out = append(out, syndromeEntry{llr: llr, gf: gfSym, row: t})
	}
	return out
}

// Process implements the Syndrome CNP contract (spec §4.4): given the row's
// dc rotated Mvc lists, produce length-q Mcv vectors per edge via config-table
// enumeration and per-edge decorrelation.
func Process(incoming []message.List, matValue []uint16, tbl *gf.Tables, opt Options) ([][]float32, error) {
	dc := len(incoming)
	if dc < 1 {
		return nil, fmt.Errorf("%w: row degree %d < 1", ErrConfig, dc)
	}
	q := tbl.Q

	// Step 1: rotation in (identical to bubble CNP, spec §4.3/§4.4).
	rotated := make([]message.List, dc)
	for i := range incoming {
		rotated[i] = message.NewList(incoming[i].Len())
		for k, e := range incoming[i].Entries {
			if e.GF == message.GFNone {
				rotated[i].Entries[k] = e
				continue
			}
			rotated[i].Entries[k] = message.Msg{LLR: e.LLR, GF: tbl.MUL(e.GF, matValue[i])}
		}
	}

	var perm []int
	if opt.PresortBorder > 0 {
		rotated, perm = Presort(rotated, opt.PresortBorder)
	}

	syndromeSet := computeSyndromeSet(rotated, opt.Table, tbl)

	out := make([][]float32, dc)
	for dcIdx := 0; dcIdx < dc; dcIdx++ {
		mcv := make([]float32, q)
		for g := range mcv {
			mcv[g] = message.LLRSat
		}

		// Decorrelation: select syndromes with C[t][dcIdx]==0 and un-add the
		// edge's own best symbol (spec §4.4 "Decorrelation per outgoing edge").
		var decorrelated []syndromeEntry
		for _, s := range syndromeSet {
			if opt.Table.Rows[s.row][dcIdx] != 0 {
				continue
			}
			g := tbl.ADD(s.gf, rotated[dcIdx].Entries[0].GF)
			decorrelated = append(decorrelated, syndromeEntry{llr: s.llr, gf: g})
		}

		updated := make([]bool, q)
		for _, d := range decorrelated {
			if !updated[d.gf] {
				mcv[d.gf] = d.llr
				updated[d.gf] = true
			} else if opt.BayesEnabled {
				mcv[d.gf] = Bayes(d.llr, mcv[d.gf])
			} else if d.llr < mcv[d.gf] {
				mcv[d.gf] = d.llr
			}
		}

		llrs := make([]float32, len(decorrelated))
		for i, d := range decorrelated {
			llrs[i] = d.llr
		}
		sat := opt.SaturationPolicy.Saturate(llrs, len(syndromeSet), dcIdx)
		for g := range mcv {
			if !updated[g] {
				mcv[g] = sat
			}
		}

		out[dcIdx] = mcv
	}

	if perm != nil {
		// Invert the presorting permutation so output edge i again
		// corresponds to the caller's original edge i (spec §9: "the inverse
		// permutation must cover all edges").
		unpermuted := make([][]float32, dc)
		for i, p := range perm {
			unpermuted[p] = out[i]
		}
		out = unpermuted
	}

	// Step 5: rotation out — Mcv is dense here, so rotate by relabeling index g
	// to DIVGF[g][matValue[i]] for each edge i.
	for i := range out {
		rotOut := make([]float32, q)
		for g := range rotOut {
			rotOut[g] = message.LLRSat
		}
		for g := 0; g < q; g++ {
			// matValue[i] is always a nonzero GF(q) coefficient (spec §3),
			// so DIV(g, matValue[i]) is always defined even for g == 0.
			rotOut[tbl.DIV(uint16(g), matValue[i])] = out[i][g]
		}
		out[i] = rotOut
	}

	return out, nil
}
