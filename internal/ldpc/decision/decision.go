// Package decision implements the hard decision over the APP matrix and the
// codeword syndrome check (spec §4.6); the APP combination itself is done by
// the scheduler. Grounded on the post-pass
// reduction helpers in sim/metrics_utils.go (a final pass over a fixed
// per-entity array producing a scalar/summary result).
package decision

import "github.com/nbldpc/decoder/internal/gf"

// HardDecide returns decide[n] = argmin_g APP[n][g] for every variable node.
func HardDecide(app [][]float32) []uint16 {
	decide := make([]uint16, len(app))
	for n, row := range app {
		best := 0
		bestLLR := row[0]
		for g := 1; g < len(row); g++ {
			if row[g] < bestLLR {
				bestLLR = row[g]
				best = g
			}
		}
		decide[n] = uint16(best)
	}
	return decide
}

// SyndromeZero reports whether the hard decision is a valid codeword (spec
// §4.6): for every check row m, ⊕_k MULGF[matValue[m][k]][decide[mat[m][k]]]
// must equal 0. Accumulation happens in GF(q) and breaks out on the first
// non-zero row, matching the convention spec §4.6 calls out explicitly.
func SyndromeZero(decide []uint16, mat [][]int, matValue [][]uint16, tbl *gf.Tables) bool {
	for m := range mat {
		var synd uint16
		for k, n := range mat[m] {
			synd = tbl.ADD(synd, tbl.MUL(matValue[m][k], decide[n]))
		}
		if synd != 0 {
			return false
		}
	}
	return true
}
