package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/baldhumanity/neat-core/neat"
	"github.com/baldhumanity/neat-core/neat/nn"
)

func compileSample(t *testing.T) *nn.Network {
	t.Helper()
	r := neat.NewRegistry()
	require.NoError(t, r.DeclareLevels([]neat.NodeID{1}, []neat.NodeID{2}))

	g := neat.NewGenome()
	for _, c := range []struct {
		from, to neat.NodeID
		weight   float64
	}{{1, 3, 0.5}, {3, 2, -1}, {0, 2, 2}} {
		id, _, err := r.ResolveConnection(c.from, c.to)
		require.NoError(t, err)
		g.Append(id, c.weight, true)
	}

	net, err := nn.Compile(g, r)
	require.NoError(t, err)
	return net
}

func TestFromNetwork(t *testing.T) {
	d := FromNetwork(compileSample(t))

	assert.Equal(t, []neat.NodeID{1, 3, 2, 0}, d.Nodes)
	assert.Equal(t, [][]neat.NodeID{{1, 0}, {3}, {2}}, d.Layers)
	assert.Equal(t, [][2]neat.NodeID{{1, 3}, {3, 2}, {0, 2}}, d.Connections)
	assert.Equal(t, []float64{0.5, -1, 2}, d.Weights)
	require.Len(t, d.Components, 1)
	assert.Equal(t, [2]int{0, 3}, d.Components[0].Waves)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FromNetwork(compileSample(t)).WriteJSON(&buf))

	var decoded struct {
		Nodes       []int    `json:"nodes"`
		Layers      [][]int  `json:"layers"`
		Connections [][2]int `json:"connections"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []int{1, 3, 2, 0}, decoded.Nodes)
	assert.Equal(t, [][]int{{1, 0}, {3}, {2}}, decoded.Layers)
	assert.Equal(t, [2]int{3, 2}, decoded.Connections[1])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	want := FromNetwork(compileSample(t))
	require.NoError(t, want.WriteYAML(&buf))

	var got Dump
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want, &got)
}
