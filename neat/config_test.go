package neat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigINI(t *testing.T) {
	path := writeConfig(t, "run-config", `
[NEAT]
strict = false
seed   = 42

[DefaultGenome]
num_inputs          = 3
num_outputs         = 2
initial_connection  = full_direct   # connect everything
conn_add_prob       = 0.3
weight_mutate_power = 0.5
disable_split_connection = true

[Compatibility]
excess_coefficient = 2.0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.Neat.Strict)
	assert.Equal(t, int64(42), cfg.Neat.Seed)
	assert.Equal(t, 3, cfg.Genome.NumInputs)
	assert.Equal(t, 2, cfg.Genome.NumOutputs)
	assert.Equal(t, "full_direct", cfg.Genome.InitialConnection)
	assert.Equal(t, 0.3, cfg.Genome.ConnAddProb)
	assert.Equal(t, 0.5, cfg.Genome.WeightMutatePower)
	assert.True(t, cfg.Genome.DisableSplitConnection)
	assert.Equal(t, 2.0, cfg.Compatibility.ExcessCoefficient)

	// Untouched keys keep their defaults.
	assert.Equal(t, 0.2, cfg.Genome.NodeAddProb)
	assert.Equal(t, 0.5, cfg.Compatibility.DisjointCoefficient)
	assert.True(t, cfg.Compatibility.Normalize)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "run.yaml", `
NEAT:
  strict: true
DefaultGenome:
  num_inputs: 4
  num_outputs: 1
  node_add_prob: 0.05
Compatibility:
  weight_coefficient: 0.8
  normalize: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Genome.NumInputs)
	assert.Equal(t, 0.05, cfg.Genome.NodeAddProb)
	assert.Equal(t, 0.8, cfg.Compatibility.WeightCoefficient)
	assert.False(t, cfg.Compatibility.Normalize)
	assert.False(t, cfg.Genome.DisableSplitConnection, "split connections stay enabled unless configured")
	assert.Equal(t, "unconnected", cfg.Genome.InitialConnection)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no inputs", content: "[DefaultGenome]\nnum_inputs = 0\n"},
		{name: "probability above one", content: "[DefaultGenome]\nnode_add_prob = 1.5\n"},
		{name: "negative power", content: "[DefaultGenome]\nweight_mutate_power = -1\n"},
		{name: "unknown initial connection", content: "[DefaultGenome]\ninitial_connection = partial 0.5\n"},
		{name: "negative coefficient", content: "[Compatibility]\ndisjoint_coefficient = -0.1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, "bad-config", tc.content))
			assert.ErrorContains(t, err, "config error")
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestConfigNewRegistry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Genome.NumInputs = 2
	cfg.Genome.NumOutputs = 3
	cfg.Neat.Strict = false

	r, err := cfg.NewRegistry()
	require.NoError(t, err)
	assert.False(t, r.Strict())
	assert.Equal(t, []NodeID{1, 2}, r.Inputs())
	assert.Equal(t, []NodeID{3, 4, 5}, r.Outputs())
	assert.Equal(t, NodeID(6), r.MintNode())
}
