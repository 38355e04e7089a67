// Package cnp dispatches among the check-node-processor implementations by a
// configured variant name, grounded on sim/scheduler.go's NewScheduler(name)
// registry pattern — generalized here to the Mvc-in/Mcv-out CNP contract
// instead of a queue-ordering contract, and to return an error on an unknown
// name rather than panic, per spec §7's "all errors are surfaced to the
// driver; no local recovery".
package cnp

import (
	"fmt"

	"github.com/nbldpc/decoder/internal/config"
	"github.com/nbldpc/decoder/internal/gf"
	"github.com/nbldpc/decoder/internal/ldpc/bubble"
	"github.com/nbldpc/decoder/internal/ldpc/message"
	"github.com/nbldpc/decoder/internal/ldpc/syndrome"
)

// ErrConfig marks an unrecognized CNP variant name.
var ErrConfig = fmt.Errorf("cnp: config error")

// Result is the outcome of one check-row CNP invocation. Exactly one of
// Sorted (bubble CNP, list-form Mcv) or Dense (syndrome CNP, length-q Mcv
// per edge) is populated, matching spec §3's "In the Syndrome CNP, Mcv[e] is
// a dense length-q vector ... In the Bubble CNP it is a length-nm sorted
// list".
type Result struct {
	Sorted []message.List
	Dense  [][]float32
}

// CNP is the shared contract every check-node-processor variant satisfies:
// given a row's incoming Mvc lists and per-edge GF(q) coefficients, produce
// the row's outgoing Mcv messages.
type CNP interface {
	Process(incoming []message.List, matValue []uint16) (Result, error)
}

// bubbleCNP adapts bubble.Process to the CNP interface.
type bubbleCNP struct {
	tbl    *gf.Tables
	nbOper int
}

func (b bubbleCNP) Process(incoming []message.List, matValue []uint16) (Result, error) {
	out, err := bubble.Process(incoming, matValue, b.tbl, b.nbOper)
	if err != nil {
		return Result{}, err
	}
	return Result{Sorted: out}, nil
}

// syndromeCNP adapts syndrome.Process to the CNP interface.
type syndromeCNP struct {
	tbl *gf.Tables
	opt syndrome.Options
}

func (s syndromeCNP) Process(incoming []message.List, matValue []uint16) (Result, error) {
	out, err := syndrome.Process(incoming, matValue, s.tbl, s.opt)
	if err != nil {
		return Result{}, err
	}
	return Result{Dense: out}, nil
}

// New constructs the configured CNP variant: "bubble", "syndrome", or
// "syndrome-bayes". dc is the (constant) row degree, used to build the
// syndrome variants' configuration table once at construction time.
func New(cfg config.DecoderConfig, tbl *gf.Tables, dc int) (CNP, error) {
	switch cfg.CNPVariant {
	case "bubble":
		return bubbleCNP{tbl: tbl, nbOper: cfg.NbOper}, nil
	case "syndrome", "syndrome-bayes":
		table, err := syndrome.Build(dc, cfg.Deviations)
		if err != nil {
			return nil, err
		}
		var sat syndrome.SaturationPolicy
		if cfg.SaturationPolicy == "median-of-medians" {
			sat = syndrome.MedianOfMediansSaturation{GroupSize: 8}
		} else {
			sat = syndrome.SelectionSaturation{}
		}
		opt := syndrome.Options{
			Table:            table,
			SaturationPolicy: sat,
			BayesEnabled:     cfg.CNPVariant == "syndrome-bayes",
			PresortBorder:    cfg.PresortBorder,
		}
		return syndromeCNP{tbl: tbl, opt: opt}, nil
	default:
		return nil, fmt.Errorf("%w: unknown CNP variant %q", ErrConfig, cfg.CNPVariant)
	}
}
