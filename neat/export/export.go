// Package export serializes compiled networks for inspection and rendering.
// It only reads the public surface of nn.Network.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/baldhumanity/neat-core/neat"
	"github.com/baldhumanity/neat-core/neat/nn"
)

// Dump is the node/layer/connection view of a network. Connections[i] is a
// [from, to] pair whose weight is Weights[i].
type Dump struct {
	Nodes       []neat.NodeID    `json:"nodes" yaml:"nodes"`
	Layers      [][]neat.NodeID  `json:"layers" yaml:"layers"`
	Connections [][2]neat.NodeID `json:"connections" yaml:"connections"`
	Weights     []float64        `json:"weights" yaml:"weights"`
	Components  []ComponentDump  `json:"components" yaml:"components"`
}

// ComponentDump describes one independently scheduled subgraph.
type ComponentDump struct {
	Roots []neat.NodeID `json:"roots" yaml:"roots"`
	Waves [2]int        `json:"waves" yaml:"waves,flow"` // [first, count]
}

// FromNetwork builds a Dump from net.
func FromNetwork(net *nn.Network) *Dump {
	d := &Dump{
		Nodes:  net.NodeIDs(),
		Layers: net.Layers(),
	}
	for _, e := range net.Edges() {
		d.Connections = append(d.Connections, [2]neat.NodeID{e.From, e.To})
		d.Weights = append(d.Weights, e.Weight)
	}
	for _, c := range net.Components() {
		d.Components = append(d.Components, ComponentDump{Roots: c.Roots, Waves: [2]int{c.FirstWave, c.NumWaves}})
	}
	return d
}

// WriteJSON writes the dump as indented JSON.
func (d *Dump) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode network as JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the dump as YAML.
func (d *Dump) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode network as YAML: %w", err)
	}
	return enc.Close()
}
