package neat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRoundTrip(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.DeclareLevels([]NodeID{1}, []NodeID{2}))
	conn, _, err := r.ResolveConnection(1, 2)
	require.NoError(t, err)
	split, _, err := r.ResolveSplit(1, 2)
	require.NoError(t, err)

	g := NewGenome()
	g.Append(conn, 0.75, false)
	g.Append(split.ID, 0, true)

	path := filepath.Join(t.TempDir(), "run.gz")
	require.NoError(t, SaveCheckpoint(path, r, []*Genome{g}))

	loaded, genomes, err := LoadCheckpoint(path)
	require.NoError(t, err)

	assert.Equal(t, r.Snapshot(), loaded.Snapshot())
	require.Len(t, genomes, 1)
	assert.Equal(t, g, genomes[0])

	// The lookup table is rebuilt and the counter continues where it stopped.
	id, ok := loaded.Lookup(1, 2, NodeSplitFeature)
	require.True(t, ok)
	assert.Equal(t, split.ID, id)
	assert.Equal(t, split.Node+1, loaded.MintNode())
}

func TestLoadCheckpointCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))

	_, _, err := LoadCheckpoint(path)
	assert.Error(t, err)
}

func TestRestoreRegistryRejectsDuplicates(t *testing.T) {
	snap := NewRegistry().Snapshot()
	snap.Features = []Feature{
		{ID: 0, From: 1, To: 2},
		{ID: 1, From: 1, To: 2},
	}
	_, err := RestoreRegistry(snap)
	assert.ErrorIs(t, err, ErrDuplicateFeature)
}
