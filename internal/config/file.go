package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk, yaml-tagged overlay for DecoderConfig/RunConfig,
// mirroring cmd/default_config.go's yaml-tagged Config struct. A decode run
// may be driven entirely by CLI flags, or by a --config file whose values
// are applied before flag overrides, the same precedence cmd/hfconfig.go
// documents ("explicit flag > file > default").
type File struct {
	Nm               int        `yaml:"nm"`
	NbOper           int        `yaml:"nb_oper"`
	Offset           float64    `yaml:"offset"`
	CNPVariant       string     `yaml:"cnp_variant"`
	Deviations       Deviations `yaml:"deviations"`
	SaturationPolicy string     `yaml:"saturation_policy"`
	PresortBorder    int        `yaml:"presort_border"`
	NbIterMax        int        `yaml:"nb_iter_max"`
	Note             string     `yaml:"note"`
	Checkpoints      []int      `yaml:"checkpoints"`
	Workers          int        `yaml:"workers"`
}

// LoadFile parses a YAML decoder-configuration overlay from path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &f, nil
}

// ApplyTo overlays the file's non-zero fields onto cfg, leaving fields the
// file left unset (zero value) untouched so CLI defaults still apply.
func (f *File) ApplyTo(cfg *DecoderConfig, run *RunConfig) {
	if f.Nm != 0 {
		cfg.Nm = f.Nm
	}
	if f.NbOper != 0 {
		cfg.NbOper = f.NbOper
	}
	if f.Offset != 0 {
		cfg.Offset = f.Offset
	}
	if f.CNPVariant != "" {
		cfg.CNPVariant = f.CNPVariant
	}
	if f.Deviations != (Deviations{}) {
		cfg.Deviations = f.Deviations
	}
	if f.SaturationPolicy != "" {
		cfg.SaturationPolicy = f.SaturationPolicy
	}
	if f.PresortBorder != 0 {
		cfg.PresortBorder = f.PresortBorder
	}
	if f.NbIterMax != 0 {
		cfg.NbIterMax = f.NbIterMax
	}
	if f.Note != "" {
		run.Note = f.Note
	}
	if len(f.Checkpoints) > 0 {
		run.Checkpoints = f.Checkpoints
	}
	if f.Workers != 0 {
		run.Workers = f.Workers
	}
}
