// Package syndrome implements the Syndrome-based check-node processor
// (spec §4.4): a precomputed configuration table of deviations, enumerated
// per check row and decorrelated per outgoing edge.
//
// Grounded on original_source/syndrome_decoder.c's build_config_table /
// gen_config_table and the decorrelator loop.
package syndrome

import (
	"fmt"

	"github.com/nbldpc/decoder/internal/config"
)

// ErrConfig marks configuration errors raised by this package.
var ErrConfig = fmt.Errorf("syndrome: config error")

// ConfigTable is the precomputed set of deviation rows (spec §4.4). Row t's
// entries index, per edge position, which slot of that edge's sorted Mvc
// list the row deviates to; 0 means "take the best symbol".
type ConfigTable struct {
	Rows [][]int // Rows[t][0..dc)
}

// Build constructs the configuration table for row degree dc from the
// deviation budgets d (spec §4.4): the all-zero baseline row, all
// single-deviation rows bounded by d1, all two-deviation rows respecting the
// k+l<d2 trapezoid, all three-deviation rows respecting k+l+m<d3, and
// optionally four-deviation rows bounded by d4.
//
// This is precomputed once at decoder construction and is immutable
// thereafter (spec §9 "precomputed once at decoder construction").
func Build(dc int, d config.Deviations) (*ConfigTable, error) {
	if dc < 1 {
		return nil, fmt.Errorf("%w: row degree %d < 1", ErrConfig, dc)
	}

	var rows [][]int
	zero := make([]int, dc)
	rows = append(rows, zero)

	// one-deviation rows
	if d.D1 > 0 {
		for i := 0; i < dc; i++ {
			for k := 1; k < d.D1; k++ {
				row := make([]int, dc)
				row[i] = k
				rows = append(rows, row)
			}
		}
	}

	// two-deviation rows respecting k+l < d2
	if d.D2 > 0 {
		for i := 0; i < dc-1; i++ {
			for j := i + 1; j < dc; j++ {
				for k := 1; k < d.D2; k++ {
					for l := 1; l < d.D2; l++ {
						if k+l >= d.D2 {
							continue
						}
						row := make([]int, dc)
						row[i], row[j] = k, l
						rows = append(rows, row)
					}
				}
			}
		}
	}

	// three-deviation rows respecting k+l+m < d3. Each combined row is built
	// from three single-deviation rows and gated by CheckDeviation, which
	// verifies the disjointness invariant the original's check_deviation
	// enforces (spec §9 "check_deviation ... gate on configurations that are
	// pairwise disjoint in deviation support") rather than relying solely on
	// the implicit i<j<k position ordering to guarantee it.
	if d.D3 > 0 {
		for i := 0; i < dc-2; i++ {
			for j := i + 1; j < dc-1; j++ {
				for k := j + 1; k < dc; k++ {
					for a := 1; a < d.D3; a++ {
						for b := 1; b < d.D3; b++ {
							for c := 1; c < d.D3; c++ {
								if a+b+c >= d.D3 {
									continue
								}
								rowA := make([]int, dc)
								rowA[i] = a
								rowB := make([]int, dc)
								rowB[j] = b
								rowC := make([]int, dc)
								rowC[k] = c
								if !CheckDeviation(rowA, rowB, rowC) {
									continue
								}
								row := make([]int, dc)
								row[i], row[j], row[k] = a, b, c
								rows = append(rows, row)
							}
						}
					}
				}
			}
		}
	}

	// optional four-deviation rows
	if d.D4 > 0 && dc >= 4 {
		for i := 0; i < dc-3; i++ {
			for j := i + 1; j < dc-2; j++ {
				for k := j + 1; k < dc-1; k++ {
					for l := k + 1; l < dc; l++ {
						for a := 1; a < d.D4; a++ {
							for b := 1; b < d.D4; b++ {
								for c := 1; c < d.D4; c++ {
									for e := 1; e < d.D4; e++ {
										if a+b+c+e >= d.D4 {
											continue
										}
										row := make([]int, dc)
										row[i], row[j], row[k], row[l] = a, b, c, e
										rows = append(rows, row)
									}
								}
							}
						}
					}
				}
			}
		}
	}

	return &ConfigTable{Rows: rows}, nil
}

// CheckDeviation reports whether rows a, b, c are pairwise disjoint in
// deviation support: for every edge position, at most one of the three rows
// has a nonzero entry there.
//
// Grounded literally on original_source/syndrome_decoder.c's
// check_deviation, which element-wise multiplies three configuration-table
// rows; per spec §9 ("Do not infer intent beyond what testable properties
// demand") this implements exactly that disjointness gate and nothing more.
func CheckDeviation(a, b, c []int) bool {
	for i := range a {
		nonzero := 0
		if a[i] != 0 {
			nonzero++
		}
		if b[i] != 0 {
			nonzero++
		}
		if c[i] != 0 {
			nonzero++
		}
		if nonzero > 1 {
			return false
		}
	}
	return true
}
