// Package vnp implements the variable-node processor (spec §4.2): combining a
// variable node's intrinsic channel LLRs with its incoming Mcv messages to
// produce an updated truncated Mvc on each incident edge.
//
// Grounded on sim/batch_formation.go's shape: a per-entity update pass applied
// to a fixed structure (here, a variable node's incident edges) once per
// scheduling step. The summation itself is recovered from the APP accumulator
// rather than walked edge by edge: spec §4.5 maintains the invariant
// APP[n] = intrinsic[n] + Σ_all edges incident to n Mcv[e'], so edge e's Mvc
// is just that total with e's own last contribution subtracted back out.
package vnp

import "github.com/nbldpc/decoder/internal/ldpc/message"

// Update computes the new Mvc list for edge e of variable node n, given the
// node's current dense APP vector and e's current dense Mcv vector.
//
//	Mvc[e][g] = APP[n][g] - Mcv[e][g]
func Update(app, mcv []float32, nm int) message.List {
	q := len(app)
	tmp := make([]float32, q)
	for g := 0; g < q; g++ {
		tmp[g] = app[g] - mcv[g]
	}
	return message.Truncate(tmp, nm)
}
