package code

import "github.com/nbldpc/decoder/internal/gf"

// GaussianEliminate reduces the dense M×N parity-check matrix (expanded from
// Mat/MatValue over GF(q)) to row-echelon form in place, returning a
// MatrixError if the matrix is not full rank (spec §7 MatrixError, §9: "only
// used to form an upper triangular form for the encoder; pure-decoder builds
// need not include it").
//
// This is the optional generator-construction path of spec.md §6's encoder
// collaborator; the decode CLI also runs it once on the loaded matrix as its
// full-rank check.
func GaussianEliminate(dense [][]uint16, tbl *gf.Tables) error {
	m := len(dense)
	if m == 0 {
		return nil
	}
	n := len(dense[0])

	row := 0
	for col := 0; col < n && row < m; col++ {
		pivot := -1
		for r := row; r < m; r++ {
			if dense[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			continue
		}
		dense[row], dense[pivot] = dense[pivot], dense[row]

		inv := tbl.DIV(1, dense[row][col])
		for c := col; c < n; c++ {
			dense[row][c] = tbl.MUL(dense[row][c], inv)
		}
		for r := 0; r < m; r++ {
			if r == row || dense[r][col] == 0 {
				continue
			}
			factor := dense[r][col]
			for c := col; c < n; c++ {
				dense[r][c] = tbl.ADD(dense[r][c], tbl.MUL(factor, dense[row][c]))
			}
		}
		row++
	}

	if row < m {
		return ErrMatrix
	}
	return nil
}

// Densify expands Params' sparse Mat/MatValue row representation into a dense
// M×N matrix over GF(q), used only by GaussianEliminate's rank check.
func (p *Params) Densify() [][]uint16 {
	dense := make([][]uint16, p.M)
	for m := range dense {
		dense[m] = make([]uint16, p.N)
		for k, n := range p.Mat[m] {
			dense[m][n] = p.MatValue[m][k]
		}
	}
	return dense
}
