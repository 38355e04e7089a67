// Package montecarlo drives the frame-level simulation loop: transmit the
// all-zero codeword, observe it over the channel, decode, and accumulate
// frame/bit error statistics across NbMonteCarlo frames — the non-core
// collaborator the scheduler plugs into, grounded on sim/metrics.go's
// aggregation struct and cmd/root.go's CLI-driven run loop.
package montecarlo

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nbldpc/decoder/internal/channel"
	"github.com/nbldpc/decoder/internal/config"
	"github.com/nbldpc/decoder/internal/gf"
	"github.com/nbldpc/decoder/internal/ldpc/code"
	"github.com/nbldpc/decoder/internal/ldpc/scheduler"
)

// Metrics aggregates frame/bit error statistics across one SNR point's
// Monte Carlo run, mirroring sim/metrics.go's aggregation-struct-plus-Print
// shape.
type Metrics struct {
	FramesRun        int
	ErroneousFrames  int
	BitErrors        int
	TotalSymbols     int
	TotalIterations  int
}

// FER returns the observed frame error rate.
func (m Metrics) FER() float64 {
	if m.FramesRun == 0 {
		return 0
	}
	return float64(m.ErroneousFrames) / float64(m.FramesRun)
}

// BER returns the observed (symbol-level) bit/symbol error rate.
func (m Metrics) BER() float64 {
	if m.TotalSymbols == 0 {
		return 0
	}
	return float64(m.BitErrors) / float64(m.TotalSymbols)
}

// AvgIterations returns the mean number of decoding iterations per frame.
func (m Metrics) AvgIterations() float64 {
	if m.FramesRun == 0 {
		return 0
	}
	return float64(m.TotalIterations) / float64(m.FramesRun)
}

// Driver runs the Monte Carlo loop for one SNR point over a fixed code and
// decoder configuration.
type Driver struct {
	Params   *code.Params
	Tables   *gf.Tables
	Decoder  *config.DecoderConfig
	RunCfg   config.RunConfig
}

// allZeroCodeword returns the length-n all-zero symbol vector. The all-zero
// word is a codeword of every linear code regardless of H (every parity row
// sums to 0 trivially), so it is the standard stand-in transmitted codeword
// for LDPC FER simulation: a symmetric channel's error behavior does not
// depend on which codeword was actually sent, and using the all-zero word
// avoids needing a working encoder to produce a non-trivial one (spec §4.8,
// out of scope per spec §1).
func allZeroCodeword(n int) []uint16 {
	return make([]uint16, n)
}

// Run executes up to NbMonteCarlo frames at the driver's configured EbNo and
// returns the accumulated Metrics (spec §4.5's per-frame loop, §8's FER/BER
// testable properties). If RunCfg.NbMax > 0, the sweep stops as soon as that
// many erroneous frames have been observed — the standard LDPC Monte Carlo
// shortcut of collecting a fixed error count rather than a fixed frame count,
// so high-SNR points where errors are rare don't run to NbMonteCarlo for
// nothing (spec §6 CLI surface, positional arg NbMax).
//
// RunCfg.Workers > 1 fans frames out across that many goroutines (spec §5:
// "Frames are trivially parallelizable: different frames share only
// read-only tables"); each worker owns its own Decoder so per-frame buffers
// are never shared across goroutines. Workers <= 1 runs the simple
// sequential loop.
func (d *Driver) Run() (Metrics, error) {
	if d.RunCfg.Workers > 1 {
		return d.runParallel()
	}
	return d.runSequential()
}

func (d *Driver) runSequential() (Metrics, error) {
	dec, err := scheduler.New(d.Params, d.Tables, *d.Decoder)
	if err != nil {
		return Metrics{}, err
	}
	dec.Checkpoints = d.RunCfg.Checkpoints

	ch := channel.AWGN{Tables: d.Tables, Rate: d.Params.Rate}
	masterRNG := NewPartitionedRNG(SimulationKey(d.RunCfg.Seed))

	var m Metrics
	for frame := 0; frame < d.RunCfg.NbMonteCarlo; frame++ {
		frameRNG := masterRNG.ForSubsystem(FrameSubsystem(frame))
		codeword := allZeroCodeword(d.Params.N)
		intrinsic := ch.Observe(codeword, d.RunCfg.EbNo, frameRNG)

		res, err := dec.DecodeFrame(intrinsic)
		if err != nil {
			return Metrics{}, err
		}

		m.FramesRun++
		m.TotalIterations += res.IterationsUsed
		m.TotalSymbols += d.Params.N
		errSymbols := 0
		for i, sym := range codeword {
			if res.Decide[i] != sym {
				errSymbols++
			}
		}
		m.BitErrors += errSymbols
		if errSymbols > 0 {
			m.ErroneousFrames++
		}

		if d.RunCfg.Checkpoints != nil && containsCheckpoint(d.RunCfg.Checkpoints, frame) {
			logrus.Infof("ldpc: frame %d, running FER=%.6f", frame, m.FER())
		}

		if d.RunCfg.NbMax > 0 && m.ErroneousFrames >= d.RunCfg.NbMax {
			logrus.Infof("ldpc: reached NbMax=%d erroneous frames after %d frames, stopping early", d.RunCfg.NbMax, m.FramesRun)
			break
		}
	}
	return m, nil
}

// runParallel processes frames in waves of RunCfg.Workers, synchronizing
// between waves to evaluate the checkpoint/NbMax stopping conditions against
// the merged total. Frame RNG is derived solely from the frame index (spec
// idempotence law 8), so the result is bit-identical to runSequential's
// regardless of goroutine scheduling order; only the NbMax early-stop point
// may differ by up to Workers-1 frames since the whole wave completes before
// the total is checked.
func (d *Driver) runParallel() (Metrics, error) {
	workers := d.RunCfg.Workers
	ch := channel.AWGN{Tables: d.Tables, Rate: d.Params.Rate}
	masterRNG := NewPartitionedRNG(SimulationKey(d.RunCfg.Seed))

	decoders := make([]*scheduler.Decoder, workers)
	for i := range decoders {
		dec, err := scheduler.New(d.Params, d.Tables, *d.Decoder)
		if err != nil {
			return Metrics{}, err
		}
		decoders[i] = dec
	}

	var total Metrics
	var mu sync.Mutex
	var firstErr error

	for frame := 0; frame < d.RunCfg.NbMonteCarlo; {
		end := frame + workers
		if end > d.RunCfg.NbMonteCarlo {
			end = d.RunCfg.NbMonteCarlo
		}

		var wg sync.WaitGroup
		for f := frame; f < end; f++ {
			wg.Add(1)
			go func(f, slot int) {
				defer wg.Done()
				frameRNG := masterRNG.ForSubsystemStateless(FrameSubsystem(f))
				codeword := allZeroCodeword(d.Params.N)
				intrinsic := ch.Observe(codeword, d.RunCfg.EbNo, frameRNG)

				res, err := decoders[slot].DecodeFrame(intrinsic)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					return
				}
				errSymbols := 0
				for i, sym := range codeword {
					if res.Decide[i] != sym {
						errSymbols++
					}
				}
				total.FramesRun++
				total.TotalIterations += res.IterationsUsed
				total.TotalSymbols += d.Params.N
				total.BitErrors += errSymbols
				if errSymbols > 0 {
					total.ErroneousFrames++
				}
			}(f, f-frame)
		}
		wg.Wait()

		if firstErr != nil {
			return Metrics{}, firstErr
		}

		if d.RunCfg.Checkpoints != nil {
			for f := frame; f < end; f++ {
				if containsCheckpoint(d.RunCfg.Checkpoints, f) {
					logrus.Infof("ldpc: frame %d, running FER=%.6f", f, total.FER())
					break
				}
			}
		}

		if d.RunCfg.NbMax > 0 && total.ErroneousFrames >= d.RunCfg.NbMax {
			logrus.Infof("ldpc: reached NbMax=%d erroneous frames after %d frames, stopping early", d.RunCfg.NbMax, total.FramesRun)
			break
		}

		frame = end
	}
	return total, nil
}

func containsCheckpoint(checkpoints []int, frame int) bool {
	for _, c := range checkpoints {
		if c == frame {
			return true
		}
	}
	return false
}

// ResultLine formats one SNR point's result, matching
// original_source/NB_LDPC.c's results file line format exactly (spec §4.9):
//
//	SNR:<v>: FER= <e>/<n> = <rate> BER= <b>/x = <rate> avr_it= <f> time: <timestamp>
func ResultLine(ebNo float64, m Metrics, now time.Time) string {
	return fmt.Sprintf("SNR:%g: FER= %d/%d = %g BER= %d/x = %g avr_it= %g time: %s",
		ebNo, m.ErroneousFrames, m.FramesRun, m.FER(),
		m.BitErrors, m.BER(), m.AvgIterations(), now.Format(time.RFC3339))
}
