// Package channel provides the reference AWGN channel model behind spec.md
// §6's modulateAndObserve(codeword, EbNo) -> intrinsic[N][GF] contract.
//
// This is an external collaborator per spec §1 ("random bit generation and
// AWGN channel model" are out of scope for the core); the implementation here
// exists only so the Monte Carlo driver has something concrete to run against,
// the way sim/workload is a reference generator behind the Simulator's
// arrival-injection interface.
package channel

import (
	"math"
	"math/rand"

	"github.com/nbldpc/decoder/internal/gf"
)

// AWGN models BPSK modulation of a codeword's binary image over an additive
// white Gaussian noise channel, producing per-symbol LLRs over all q field
// elements (spec §3 "Intrinsic").
type AWGN struct {
	Tables *gf.Tables
	Rate   float64 // code rate, used in the Eb/No -> noise variance conversion
}

// sigma converts Eb/No (dB) and the code rate to the per-bit noise standard
// deviation for BPSK over AWGN: sigma = 1/sqrt(2*rate*10^(EbNo/10)).
func (c AWGN) sigma(ebNoDB float64) float64 {
	ebNoLinear := math.Pow(10, ebNoDB/10)
	return 1.0 / math.Sqrt(2*c.Rate*ebNoLinear)
}

// Observe modulates codeword (one GF(q) symbol per variable node) over BPSK
// and returns the dense intrinsic LLR matrix (spec §3: "−log p(y|x=g) − K"),
// using rng for the Gaussian noise draws so a frame's channel observation is
// reproducible given a seeded *rand.Rand (mirrors sim/rng.go's
// PartitionedRNG, one *rand.Rand per subsystem/frame).
func (c AWGN) Observe(codeword []uint16, ebNoDB float64, rng *rand.Rand) [][]float32 {
	sigma := c.sigma(ebNoDB)
	n := len(codeword)
	q := c.Tables.Q
	logQ := c.Tables.LogQ

	out := make([][]float32, n)
	for i, sym := range codeword {
		received := make([]float64, logQ)
		for bit := 0; bit < logQ; bit++ {
			txBit := c.Tables.BinGF[int(sym)*logQ+bit]
			amp := 1.0
			if txBit != 0 {
				amp = -1.0
			}
			received[bit] = amp + rng.NormFloat64()*sigma
		}

		row := make([]float32, q)
		for g := 0; g < q; g++ {
			var sumSq float64
			for bit := 0; bit < logQ; bit++ {
				candidateBit := c.Tables.BinGF[g*logQ+bit]
				amp := 1.0
				if candidateBit != 0 {
					amp = -1.0
				}
				d := received[bit] - amp
				sumSq += d * d
			}
			row[g] = float32(sumSq / (2 * sigma * sigma))
		}

		// Re-reference to the best (minimum) candidate so 0 is the best
		// symbol's cost, matching the decoder's cost convention (spec §3).
		min := row[0]
		for _, v := range row[1:] {
			if v < min {
				min = v
			}
		}
		for g := range row {
			row[g] -= min
		}
		out[i] = row
	}
	return out
}
