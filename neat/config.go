package neat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config stores the configuration parameters of an evolutionary run.
type Config struct {
	Neat          NeatConfig          `yaml:"NEAT"`
	Genome        GenomeConfig        `yaml:"DefaultGenome"`
	Compatibility CompatibilityConfig `yaml:"Compatibility"`
}

// NeatConfig holds run-wide switches.
type NeatConfig struct {
	Strict bool  `ini:"strict" yaml:"strict"` // Validation checks; disable for performance-sensitive runs
	Seed   int64 `ini:"seed" yaml:"seed"`     // 0 means seed from the clock
}

// GenomeConfig holds parameters for the structure and mutation of genomes.
type GenomeConfig struct {
	NumInputs         int     `ini:"num_inputs" yaml:"num_inputs"`
	NumOutputs        int     `ini:"num_outputs" yaml:"num_outputs"`
	InitialConnection string  `ini:"initial_connection" yaml:"initial_connection"` // unconnected | full_direct
	WeightInitMean    float64 `ini:"weight_init_mean" yaml:"weight_init_mean"`
	WeightInitStdev   float64 `ini:"weight_init_stdev" yaml:"weight_init_stdev"`

	ConnAddProb       float64 `ini:"conn_add_prob" yaml:"conn_add_prob"`
	NodeAddProb       float64 `ini:"node_add_prob" yaml:"node_add_prob"`
	WeightMutateProb  float64 `ini:"weight_mutate_prob" yaml:"weight_mutate_prob"`
	WeightMutatePower float64 `ini:"weight_mutate_power" yaml:"weight_mutate_power"` // Half-width of the uniform perturbation

	// DisableSplitConnection turns off the connection an add-node mutation
	// splits. Off by default: the split connection keeps its enabled status.
	DisableSplitConnection bool `ini:"disable_split_connection" yaml:"disable_split_connection"`
}

// CompatibilityConfig holds the coefficients of the compatibility distance.
type CompatibilityConfig struct {
	ExcessCoefficient   float64 `ini:"excess_coefficient" yaml:"excess_coefficient"`
	DisjointCoefficient float64 `ini:"disjoint_coefficient" yaml:"disjoint_coefficient"`
	WeightCoefficient   float64 `ini:"weight_coefficient" yaml:"weight_coefficient"`
	Normalize           bool    `ini:"normalize" yaml:"normalize"` // Divide gene counts by the longer genome's length
}

// DefaultConfig returns the parameters used when a file leaves a key out.
func DefaultConfig() *Config {
	return &Config{
		Neat: NeatConfig{Strict: true},
		Genome: GenomeConfig{
			NumInputs:              1,
			NumOutputs:             1,
			InitialConnection:      "unconnected",
			WeightInitStdev:        1.0,
			ConnAddProb:            0.5,
			NodeAddProb:            0.2,
			WeightMutateProb:       0.8,
			WeightMutatePower:      0.25,
			DisableSplitConnection: false,
		},
		Compatibility: CompatibilityConfig{
			ExcessCoefficient:   1.0,
			DisjointCoefficient: 0.5,
			WeightCoefficient:   0.4,
			Normalize:           true,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file, or from YAML
// when the file ends in .yaml or .yml. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to decode config file '%s': %w", filePath, err)
		}
	default:
		cfg, err := ini.LoadSources(ini.LoadOptions{
			IgnoreInlineComment:         true,
			UnescapeValueCommentSymbols: true,
		}, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
		}
		if err := cfg.Section("NEAT").MapTo(&config.Neat); err != nil {
			return nil, fmt.Errorf("failed to map [NEAT] section: %w", err)
		}
		if err := cfg.Section("DefaultGenome").MapTo(&config.Genome); err != nil {
			return nil, fmt.Errorf("failed to map [DefaultGenome] section: %w", err)
		}
		if err := cfg.Section("Compatibility").MapTo(&config.Compatibility); err != nil {
			return nil, fmt.Errorf("failed to map [Compatibility] section: %w", err)
		}
	}

	config.Genome.InitialConnection = cleanIniString(config.Genome.InitialConnection)
	if config.Genome.InitialConnection == "" {
		config.Genome.InitialConnection = "unconnected"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	g := c.Genome
	if g.NumInputs <= 0 {
		return fmt.Errorf("config error: num_inputs must be positive")
	}
	if g.NumOutputs <= 0 {
		return fmt.Errorf("config error: num_outputs must be positive")
	}
	if g.WeightInitStdev < 0 {
		return fmt.Errorf("config error: weight_init_stdev cannot be negative")
	}
	for name, p := range map[string]float64{
		"conn_add_prob":      g.ConnAddProb,
		"node_add_prob":      g.NodeAddProb,
		"weight_mutate_prob": g.WeightMutateProb,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("config error: %s must be between 0 and 1", name)
		}
	}
	if g.WeightMutatePower < 0 {
		return fmt.Errorf("config error: weight_mutate_power cannot be negative")
	}
	switch g.InitialConnection {
	case "unconnected", "full_direct":
	default:
		return fmt.Errorf("config error: invalid initial_connection type '%s'", g.InitialConnection)
	}

	cc := c.Compatibility
	if cc.ExcessCoefficient < 0 || cc.DisjointCoefficient < 0 || cc.WeightCoefficient < 0 {
		return fmt.Errorf("config error: compatibility coefficients cannot be negative")
	}
	return nil
}

// Levels derives the contiguous input and output node ids.
func (gc *GenomeConfig) Levels() (inputs, outputs []NodeID) {
	inputs = make([]NodeID, gc.NumInputs)
	for i := range inputs {
		inputs[i] = NodeID(i + 1)
	}
	outputs = make([]NodeID, gc.NumOutputs)
	for i := range outputs {
		outputs[i] = NodeID(gc.NumInputs + i + 1)
	}
	return inputs, outputs
}

// NewRegistry creates the ledger for a run described by this config, with
// its levels already declared.
func (c *Config) NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := NewRegistry(append([]RegistryOption{WithStrict(c.Neat.Strict)}, opts...)...)
	inputs, outputs := c.Genome.Levels()
	if err := r.DeclareLevels(inputs, outputs); err != nil {
		return nil, fmt.Errorf("failed to declare levels: %w", err)
	}
	return r, nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
