package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryWithConnections(t *testing.T, pairs ...[2]NodeID) *Registry {
	t.Helper()
	r := NewRegistry()
	for _, p := range pairs {
		_, err := r.Register(p[0], p[1], ConnectionFeature)
		require.NoError(t, err)
	}
	return r
}

func TestGenomeAppendAndIndex(t *testing.T) {
	g := NewGenome()
	g.Append(4, 0.5, true)
	g.Append(1, -1.2, false)

	assert.Equal(t, 2, g.Len())
	i, ok := g.Index(1)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = g.Index(7)
	assert.False(t, ok)
	assert.Equal(t, FeatureID(4), g.MaxFeature())
	assert.Equal(t, "Genome[#4:0.500 #1:-1.200(off)]", g.String())
}

func TestGenomeMaxFeatureEmpty(t *testing.T) {
	assert.Equal(t, FeatureID(-1), NewGenome().MaxFeature())
}

func TestGenomeCopyIsDeep(t *testing.T) {
	g := NewGenome()
	g.Append(0, 1.0, true)

	c := g.Copy()
	c.Weights[0] = 2.0
	c.Enabled[0] = false
	c.Append(1, 0, true)

	assert.Equal(t, 1.0, g.Weights[0])
	assert.True(t, g.Enabled[0])
	assert.Equal(t, 1, g.Len())
}

func TestGenomeValidate(t *testing.T) {
	r := registryWithConnections(t, [2]NodeID{1, 2}, [2]NodeID{0, 2})

	tests := []struct {
		name    string
		genome  *Genome
		wantErr error
	}{
		{
			name:   "valid",
			genome: &Genome{Genes: []FeatureID{0, 1}, Weights: []float64{1, 1}, Enabled: []bool{true, false}},
		},
		{
			name:    "length mismatch",
			genome:  &Genome{Genes: []FeatureID{0, 1}, Weights: []float64{1}, Enabled: []bool{true, true}},
			wantErr: ErrGenomeLengthMismatch,
		},
		{
			name:    "unknown feature",
			genome:  &Genome{Genes: []FeatureID{0, 5}, Weights: []float64{1, 1}, Enabled: []bool{true, true}},
			wantErr: ErrUnknownFeatureReference,
		},
		{
			name:    "duplicate reference",
			genome:  &Genome{Genes: []FeatureID{1, 1}, Weights: []float64{1, 1}, Enabled: []bool{true, true}},
			wantErr: ErrDuplicateGeneReference,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.genome.Validate(r)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGenomeValidateUncheckedAllowsDuplicates(t *testing.T) {
	r := NewRegistry(WithStrict(false))
	_, err := r.Register(1, 2, ConnectionFeature)
	require.NoError(t, err)

	g := &Genome{Genes: []FeatureID{0, 0}, Weights: []float64{1, 1}, Enabled: []bool{true, true}}
	assert.NoError(t, g.Validate(r))
}

func TestNewSeedGenome(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Genome.NumInputs = 2
	cfg.Genome.NumOutputs = 2

	t.Run("unconnected", func(t *testing.T) {
		r, err := cfg.NewRegistry()
		require.NoError(t, err)
		g, err := NewSeedGenome(r, &cfg.Genome, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		assert.Equal(t, 0, g.Len())
	})

	t.Run("full_direct", func(t *testing.T) {
		r, err := cfg.NewRegistry()
		require.NoError(t, err)
		cfg.Genome.InitialConnection = "full_direct"

		rnd := rand.New(rand.NewSource(1))
		first, err := NewSeedGenome(r, &cfg.Genome, rnd)
		require.NoError(t, err)
		second, err := NewSeedGenome(r, &cfg.Genome, rnd)
		require.NoError(t, err)

		// bias + 2 inputs, each to 2 outputs
		assert.Equal(t, 6, first.Len())
		assert.Equal(t, 6, r.Len())
		assert.Equal(t, first.Genes, second.Genes)
		require.NoError(t, first.Validate(r))

		for _, id := range first.Genes {
			f, ok := r.Feature(id)
			require.True(t, ok)
			assert.Equal(t, OutputLevel, r.Level(f.To))
		}
	})

	t.Run("invalid", func(t *testing.T) {
		r, err := cfg.NewRegistry()
		require.NoError(t, err)
		bad := cfg.Genome
		bad.InitialConnection = "partial"
		_, err = NewSeedGenome(r, &bad, rand.New(rand.NewSource(1)))
		assert.Error(t, err)
	})
}
