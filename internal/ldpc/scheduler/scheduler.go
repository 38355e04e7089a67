// Package scheduler drives the horizontal/layered per-frame decoding loop
// (spec §4.5): for each check node in a fixed order, gather Mvc from APP and
// the current Mcv, invoke the configured CNP, fold the result back into APP,
// and periodically test the syndrome.
//
// Grounded on sim/simulator.go's Simulator.Run event loop (a fixed-structure
// synchronous pass updating shared state every step) and sim/scheduler.go's
// InstanceScheduler registry for variant dispatch (internal/ldpc/cnp).
package scheduler

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nbldpc/decoder/internal/config"
	"github.com/nbldpc/decoder/internal/gf"
	"github.com/nbldpc/decoder/internal/ldpc/cnp"
	"github.com/nbldpc/decoder/internal/ldpc/code"
	"github.com/nbldpc/decoder/internal/ldpc/decision"
	"github.com/nbldpc/decoder/internal/ldpc/message"
	"github.com/nbldpc/decoder/internal/ldpc/store"
	"github.com/nbldpc/decoder/internal/ldpc/vnp"
)

// ErrConfig marks configuration errors raised at decoder construction.
var ErrConfig = fmt.Errorf("scheduler: config error")

// Decoder owns the per-frame buffers (APP, edge store) and the immutable
// code/table/CNP it was constructed with. All buffers are allocated once in
// New and reused across frames via ResetFrame, the same lifecycle as
// sim.NewSimulator's one-time-allocated, reused-across-frames state.
type Decoder struct {
	Params *code.Params
	Tables *gf.Tables
	Config config.DecoderConfig
	CNP    cnp.CNP
	Store  *store.EdgeStore

	app [][]float32 // N x q

	// Checkpoints, if non-empty, causes DecodeFrame to log the syndrome state
	// at the listed 0-based iteration indices (spec §4.9 supplemented feature, replacing
	// the original's ad-hoc nb_erreurrrrrr_* milestone instrumentation).
	Checkpoints []int
}

// New constructs a Decoder for the given code and configuration, validating
// the constant-row-degree precondition the bubble and syndrome CNPs both
// require (spec §9 supplemented dc_min/dc_max check).
func New(params *code.Params, tables *gf.Tables, cfg config.DecoderConfig) (*Decoder, error) {
	dc, ok := params.RowDegreeConstant()
	if !ok {
		return nil, fmt.Errorf("%w: row degree not constant across rows", ErrConfig)
	}
	if cfg.Nm < 1 {
		return nil, fmt.Errorf("%w: nm must be >= 1, got %d", ErrConfig, cfg.Nm)
	}
	c, err := cnp.New(cfg, tables, dc)
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		Params: params,
		Tables: tables,
		Config: cfg,
		CNP:    c,
		Store:  store.New(params.NbBranch, tables.Q, params.RowDegree),
		app:    make([][]float32, params.N),
	}
	for n := range d.app {
		d.app[n] = make([]float32, tables.Q)
	}
	return d, nil
}

// FrameResult is decodeFrame's return value (spec §6 "Exposed to drivers").
type FrameResult struct {
	Decide        []uint16
	IterationsUsed int
	SyndromeZero  bool
}

// DecodeFrame runs the layered decoding loop on one frame's intrinsic channel
// LLRs (spec §4.5, §6 decodeFrame(intrinsic) contract). intrinsic must be an
// N x q dense matrix.
func (d *Decoder) DecodeFrame(intrinsic [][]float32) (FrameResult, error) {
	if len(intrinsic) != d.Params.N {
		return FrameResult{}, fmt.Errorf("%w: intrinsic has %d rows, want %d", ErrConfig, len(intrinsic), d.Params.N)
	}

	// Step 1: reset Mcv and seed APP from intrinsic.
	d.Store.ResetFrame()
	for n := range d.app {
		copy(d.app[n], intrinsic[n])
	}

	// A parity-check-free code (M=0, spec scenario S1) has no rows to visit:
	// the hard decision follows directly from the intrinsic with zero
	// decoding iterations spent.
	if d.Params.M == 0 {
		decide := decision.HardDecide(d.app)
		return FrameResult{Decide: decide, IterationsUsed: 0, SyndromeZero: true}, nil
	}

	offset := float32(d.Config.Offset)
	q := d.Tables.Q
	nm := d.Config.Nm

	// Seeded from the intrinsic alone so a zero-iteration budget still yields a
	// valid (if unrefined) decision rather than leaving decide nil.
	decide := decision.HardDecide(d.app)
	syndromeZero := decision.SyndromeZero(decide, d.Params.Mat, d.Params.MatValue, d.Tables)
	iterationsUsed := d.Config.NbIterMax

	for iter := 0; iter < d.Config.NbIterMax; iter++ {
		for m := 0; m < d.Params.M; m++ {
			dc := d.Params.RowDegree[m]
			incoming := make([]message.List, dc)

			for i := 0; i < dc; i++ {
				n := d.Params.Mat[m][i]
				e := d.Store.Edge(m, i)
				incoming[i] = vnp.Update(d.app[n], d.Store.Mcv[e], nm)
			}

			result, err := d.CNP.Process(incoming, d.Params.MatValue[m])
			if err != nil {
				return FrameResult{}, err
			}

			for i := 0; i < dc; i++ {
				n := d.Params.Mat[m][i]
				e := d.Store.Edge(m, i)

				var newMcv []float32
				if result.Dense != nil {
					newMcv = result.Dense[i]
				} else {
					newMcv = result.Sorted[i].Densify(q, offset)
				}

				mvcForUpdate := incoming[i].Densify(q, offset)
				for g := 0; g < q; g++ {
					d.app[n][g] = mvcForUpdate[g] + newMcv[g]
				}
				d.Store.Mcv[e] = newMcv
			}
		}

		decide = decision.HardDecide(d.app)
		syndromeZero = decision.SyndromeZero(decide, d.Params.Mat, d.Params.MatValue, d.Tables)

		if d.shouldCheckpoint(iter) {
			logrus.Debugf("ldpc: iteration %d, syndromeZero=%v", iter, syndromeZero)
		}

		if syndromeZero {
			iterationsUsed = iter + 1
			break
		}
	}

	return FrameResult{Decide: decide, IterationsUsed: iterationsUsed, SyndromeZero: syndromeZero}, nil
}

func (d *Decoder) shouldCheckpoint(iter int) bool {
	for _, c := range d.Checkpoints {
		if c == iter {
			return true
		}
	}
	return false
}
