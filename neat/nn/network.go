// Package nn compiles genomes into runnable networks.
//
// A compiled Network is an arena of nodes and edges addressed by dense
// index. Its execution order is a sequence of waves: each wave is a set of
// edges whose sources are fully accumulated, so the edges of one wave can
// fire in any order.
package nn

import (
	"fmt"

	"github.com/baldhumanity/neat-core/neat"
)

// EdgeID indexes an edge of a compiled Network.
type EdgeID int

// Node is a neuron of a compiled network. Value is the additive accumulation
// of every incoming edge during the last activation.
type Node struct {
	ID        neat.NodeID
	Level     neat.Level
	Incoming  []EdgeID
	Outgoing  []EdgeID
	Value     float64
	Wave      int // Index of the layer holding this node, -1 if unscheduled
	Component int
}

// Edge is an enabled connection gene instantiated in the network.
type Edge struct {
	From    neat.NodeID
	To      neat.NodeID
	Weight  float64
	Feature neat.FeatureID

	src, dst int // arena indices of From and To
}

// Component is a weakly connected part of the network and the contiguous
// range of waves it was scheduled into.
type Component struct {
	Roots     []neat.NodeID
	FirstWave int
	NumWaves  int
}

// Network is the phenotype compiled from a genome. It is rebuilt on demand
// and never persisted. Activate mutates node values, so a single Network
// must not be activated from several goroutines at once.
type Network struct {
	nodes []Node
	index map[neat.NodeID]int
	edges []Edge

	inputs  []int // arena indices of declared inputs, in declared order
	outputs []int // arena indices of declared outputs, in declared order
	bias    int

	layers     [][]int
	waves      [][]EdgeID
	components []Component
	strict     bool
}

// FitnessFunc scores a compiled network. It is supplied by the caller's
// training loop; nothing in this module invokes it.
type FitnessFunc func(net *Network) float64

// Compile builds the network encoded by g. Disabled genes and node-split
// genes produce no edge. The bias node and every declared input and output
// are always present, even without incident edges.
func Compile(g *neat.Genome, r *neat.Registry) (*Network, error) {
	if err := g.Validate(r); err != nil {
		return nil, fmt.Errorf("invalid genome: %w", err)
	}

	net := &Network{
		index:  make(map[neat.NodeID]int),
		strict: r.Strict(),
	}

	ids := make([]neat.NodeID, 0, 2*g.Len()+1)
	for i, fid := range g.Genes {
		if !g.Enabled[i] {
			continue
		}
		f, _ := r.Feature(fid)
		if f.Kind == neat.NodeSplitFeature {
			continue
		}
		net.edges = append(net.edges, Edge{From: f.From, To: f.To, Weight: g.Weights[i], Feature: fid})
		ids = append(ids, f.From, f.To)
	}
	inputs, outputs := r.Inputs(), r.Outputs()
	ids = append(ids, neat.BiasNode)
	ids = append(ids, inputs...)
	ids = append(ids, outputs...)

	for _, id := range ids {
		if _, seen := net.index[id]; seen {
			continue
		}
		net.index[id] = len(net.nodes)
		net.nodes = append(net.nodes, Node{ID: id, Level: r.Level(id), Wave: -1})
	}

	for i := range net.edges {
		e := &net.edges[i]
		e.src, e.dst = net.index[e.From], net.index[e.To]
		net.nodes[e.src].Outgoing = append(net.nodes[e.src].Outgoing, EdgeID(i))
		net.nodes[e.dst].Incoming = append(net.nodes[e.dst].Incoming, EdgeID(i))
	}

	net.bias = net.index[neat.BiasNode]
	net.inputs = make([]int, len(inputs))
	for i, id := range inputs {
		net.inputs[i] = net.index[id]
	}
	net.outputs = make([]int, len(outputs))
	for i, id := range outputs {
		net.outputs[i] = net.index[id]
	}

	if net.strict {
		for _, n := range append([]int{net.bias}, net.inputs...) {
			if k := len(net.nodes[n].Incoming); k > 0 {
				return nil, fmt.Errorf("node %d has %d incoming edges: %w", net.nodes[n].ID, k, neat.ErrInvalidInputTopology)
			}
		}
	}

	scheduled := net.layer()
	if net.strict && scheduled != len(net.nodes) {
		return nil, fmt.Errorf("scheduled %d of %d nodes: %w", scheduled, len(net.nodes), neat.ErrCyclicTopology)
	}
	return net, nil
}

// Node returns the node with the given id.
func (net *Network) Node(id neat.NodeID) (Node, bool) {
	i, ok := net.index[id]
	if !ok {
		return Node{}, false
	}
	return net.nodes[i], true
}

// Nodes returns every node in first-seen order.
func (net *Network) Nodes() []Node {
	return net.nodes
}

// NodeIDs returns the deduplicated node ids in first-seen order.
func (net *Network) NodeIDs() []neat.NodeID {
	ids := make([]neat.NodeID, len(net.nodes))
	for i, n := range net.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Edges returns every edge, indexed by EdgeID.
func (net *Network) Edges() []Edge {
	return net.edges
}

// HasEdge reports whether the network has an enabled edge from -> to.
func (net *Network) HasEdge(from, to neat.NodeID) bool {
	i, ok := net.index[from]
	if !ok {
		return false
	}
	for _, e := range net.nodes[i].Outgoing {
		if net.edges[e].To == to {
			return true
		}
	}
	return false
}

// WaveOf returns the wave index of a node, or -1 when it is absent or unscheduled.
func (net *Network) WaveOf(id neat.NodeID) int {
	i, ok := net.index[id]
	if !ok {
		return -1
	}
	return net.nodes[i].Wave
}

// Layers returns the node ids of every wave.
func (net *Network) Layers() [][]neat.NodeID {
	layers := make([][]neat.NodeID, len(net.layers))
	for w, layer := range net.layers {
		layers[w] = make([]neat.NodeID, len(layer))
		for j, n := range layer {
			layers[w][j] = net.nodes[n].ID
		}
	}
	return layers
}

// Waves returns the edges fired by every wave.
func (net *Network) Waves() [][]EdgeID {
	return net.waves
}

// Components returns the weakly connected components in scheduling order.
func (net *Network) Components() []Component {
	return net.components
}

// NumInputs returns the declared input count.
func (net *Network) NumInputs() int {
	return len(net.inputs)
}

// NumOutputs returns the declared output count.
func (net *Network) NumOutputs() int {
	return len(net.outputs)
}
