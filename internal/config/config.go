// Package config groups the plain, doc-commented configuration structs that
// parameterize decoder construction and the Monte Carlo driver, mirroring the
// teacher's sim/config.go grouping style (plain structs, no behavior).
package config

// Deviations bounds the cardinality of the Syndrome CNP's configuration table
// (spec §4.4): single-deviation rows use deviation indices 1..d1-1 at each
// position (d1-1 rows per position), d2/d3/d4 are exclusive trapezoid bounds
// on the summed deviations of two/three/four-deviation rows.
type Deviations struct {
	D1 int
	D2 int
	D3 int
	D4 int // 0 disables four-deviation rows (spec: "(Optional) four-deviation rows")
}

// DecoderConfig parameterizes one decoder construction: field order, message
// truncation, CNP variant and its tuning knobs.
type DecoderConfig struct {
	GF    int // 64 or 256
	LogGF int // 6 or 8

	Nm     int     // truncated message size
	NbOper int     // max ElementaryStep comparator iterations (bubble CNP)
	Offset float64 // offset correction factor added to densified sentinels

	CNPVariant string // "bubble", "syndrome", "syndrome-bayes"

	Deviations Deviations

	SaturationPolicy string // "selection" (default) or "median-of-medians"
	PresortBorder    int    // 0 disables presorting

	NbIterMax int // max decoding iterations per frame
}

// RunConfig parameterizes the Monte Carlo driver across one SNR sweep.
type RunConfig struct {
	NbMonteCarlo int
	NbMax        int // stop early once this many erroneous frames are seen (0 = disabled)
	EbNo         float64
	Seed         int64
	Note         string
	Checkpoints  []int // frame indices at which the sequential and parallel drivers log running FER; the sequential driver also passes them to its decoder, which logs syndrome state at matching 0-based iteration indices (spec §4.9)
	Workers      int   // frame-level parallelism, 0/1 = sequential
}
