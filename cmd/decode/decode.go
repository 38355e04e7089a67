// Package decode provides the cobra CLI entry point for running an NB-LDPC
// Monte Carlo decode sweep, grounded on cmd/root.go's rootCmd/runCmd
// flag-binding pattern and logrus-level-then-run structure.
package decode

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nbldpc/decoder/internal/config"
	"github.com/nbldpc/decoder/internal/gf"
	"github.com/nbldpc/decoder/internal/ldpc/code"
	"github.com/nbldpc/decoder/internal/montecarlo"
)

var (
	logLevel   string
	variant    string
	seed       int64
	note       string
	nm         int
	deviations string
	configPath string
)

// RootCmd is the decode CLI's root command, exposing the original
// implementation's positional argument order
// "NbMonteCarlo NbIterMax FileMatrix EbN NbMax Offset NbOper" (spec §6) plus
// additive flags for the variant, seed and run note.
var RootCmd = &cobra.Command{
	Use:   "decode NbMonteCarlo NbIterMax FileMatrix EbN NbMax Offset NbOper",
	Short: "Run an NB-LDPC Monte Carlo decode sweep",
	Args:  cobra.ExactArgs(7),
	Run:   run,
}

func init() {
	RootCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	RootCmd.Flags().StringVar(&variant, "variant", "bubble", "CNP variant: bubble, syndrome, syndrome-bayes")
	RootCmd.Flags().Int64Var(&seed, "seed", 1, "Monte Carlo RNG seed")
	RootCmd.Flags().StringVar(&note, "note", "run", "Note appended to the results file name")
	RootCmd.Flags().IntVar(&nm, "nm", 16, "Truncated message list size")
	RootCmd.Flags().StringVar(&deviations, "deviations", "4,10,10,0", "Syndrome CNP deviation bounds d1,d2,d3,d4")
	RootCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file overlaying decoder/run settings (explicit flags still win)")
}

// Execute runs the decode CLI, exiting non-zero on any error (spec §7:
// malformed input or a non-full-rank matrix are fatal at the CLI boundary).
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)

	nbMonteCarlo, err := strconv.Atoi(args[0])
	if err != nil {
		logrus.Fatalf("invalid NbMonteCarlo %q: %v", args[0], err)
	}
	nbIterMax, err := strconv.Atoi(args[1])
	if err != nil {
		logrus.Fatalf("invalid NbIterMax %q: %v", args[1], err)
	}
	fileMatrix := args[2]
	ebNo, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		logrus.Fatalf("invalid EbN %q: %v", args[3], err)
	}
	nbMax, err := strconv.Atoi(args[4])
	if err != nil {
		logrus.Fatalf("invalid NbMax %q: %v", args[4], err)
	}
	offset, err := strconv.ParseFloat(args[5], 64)
	if err != nil {
		logrus.Fatalf("invalid Offset %q: %v", args[5], err)
	}
	nbOper, err := strconv.Atoi(args[6])
	if err != nil {
		logrus.Fatalf("invalid NbOper %q: %v", args[6], err)
	}

	params, err := code.LoadAlist(fileMatrix)
	if err != nil {
		logrus.Fatalf("loading matrix %s: %v", fileMatrix, err)
	}

	var q gf.Order
	switch params.GF {
	case 64:
		q = gf.GF64
	case 256:
		q = gf.GF256
	default:
		logrus.Fatalf("unsupported GF order %d", params.GF)
	}
	tables, err := gf.BuildTables(q)
	if err != nil {
		logrus.Fatalf("building GF(%d) tables: %v", params.GF, err)
	}
	if err := code.GaussianEliminate(params.Densify(), tables); err != nil {
		logrus.Fatalf("matrix %s is not full rank: %v", fileMatrix, err)
	}

	dev, err := parseDeviations(deviations)
	if err != nil {
		logrus.Fatalf("invalid --deviations: %v", err)
	}

	decCfg := config.DecoderConfig{
		GF:               params.GF,
		LogGF:            params.LogGF,
		Nm:               nm,
		NbOper:           nbOper,
		Offset:           offset,
		CNPVariant:       variant,
		Deviations:       dev,
		SaturationPolicy: "selection",
		NbIterMax:        nbIterMax,
	}

	runCfg := config.RunConfig{
		NbMonteCarlo: nbMonteCarlo,
		NbMax:        nbMax,
		EbNo:         ebNo,
		Seed:         seed,
		Note:         note,
	}

	// --config overlays defaults but never clobbers a flag the caller set
	// explicitly, matching cmd/hfconfig.go's documented precedence "explicit
	// flag > file > default".
	if configPath != "" {
		file, err := config.LoadFile(configPath)
		if err != nil {
			logrus.Fatalf("loading --config: %v", err)
		}
		overlay := decCfg
		overlayRun := runCfg
		file.ApplyTo(&overlay, &overlayRun)
		if !cmd.Flags().Changed("nm") {
			decCfg.Nm = overlay.Nm
		}
		if !cmd.Flags().Changed("variant") {
			decCfg.CNPVariant = overlay.CNPVariant
		}
		if !cmd.Flags().Changed("deviations") {
			decCfg.Deviations = overlay.Deviations
		}
		if !cmd.Flags().Changed("note") {
			runCfg.Note = overlayRun.Note
		}
		// NbOper/Offset/NbIterMax come from required positional arguments, not
		// flags, so they are always explicit and the file never overrides them.
		// SaturationPolicy, PresortBorder, Checkpoints and Workers have no CLI
		// flag of their own, so the file is their only source besides defaults.
		decCfg.SaturationPolicy = overlay.SaturationPolicy
		decCfg.PresortBorder = overlay.PresortBorder
		runCfg.Checkpoints = overlayRun.Checkpoints
		runCfg.Workers = overlayRun.Workers
	}

	logrus.Infof("ldpc: N=%d M=%d GF=%d variant=%s nm=%d nbIterMax=%d ebNo=%.2f nbMonteCarlo=%d",
		params.N, params.M, params.GF, decCfg.CNPVariant, decCfg.Nm, decCfg.NbIterMax, ebNo, nbMonteCarlo)

	driver := &montecarlo.Driver{Params: params, Tables: tables, Decoder: &decCfg, RunCfg: runCfg}
	metrics, err := driver.Run()
	if err != nil {
		logrus.Fatalf("decode run failed: %v", err)
	}

	line := montecarlo.ResultLine(ebNo, metrics, time.Now())
	logrus.Info(line)

	path := resultsPath(params, decCfg, runCfg.Note)
	if err := montecarlo.AppendResultLine(path, line); err != nil {
		logrus.Fatalf("writing results file: %v", err)
	}
}

func parseDeviations(s string) (config.Deviations, error) {
	var d1, d2, d3, d4 int
	n, err := fmt.Sscanf(s, "%d,%d,%d,%d", &d1, &d2, &d3, &d4)
	if err != nil || n != 4 {
		return config.Deviations{}, fmt.Errorf("expected d1,d2,d3,d4, got %q", s)
	}
	return config.Deviations{D1: d1, D2: d2, D3: d3, D4: d4}, nil
}

func resultsPath(p *code.Params, cfg config.DecoderConfig, note string) string {
	return fmt.Sprintf("data/results_N%d_CR%.3f_GF%d_IT%d_Offset%.2f_nm%d_%s.txt",
		p.N, p.Rate, cfg.GF, cfg.NbIterMax, cfg.Offset, cfg.Nm, note)
}
