package mutation

import (
	"github.com/baldhumanity/neat-core/neat"
	"github.com/baldhumanity/neat-core/neat/nn"
)

// Pair is a candidate connection.
type Pair struct {
	From neat.NodeID
	To   neat.NodeID
}

// LegalConnections lists every connection that may be added to net without
// creating a cycle. The source must not be an output, the target must not be
// the bias or an input, and the pair must not already be an enabled edge.
// Inside one component the target must sit in a strictly later wave than the
// source; nodes in different components have no path between them, so any
// direction is acyclic.
func LegalConnections(net *nn.Network) []Pair {
	nodes := net.Nodes()
	var pairs []Pair
	for _, a := range nodes {
		if a.Level == neat.OutputLevel || a.Wave < 0 {
			continue
		}
		for _, b := range nodes {
			if b.Level == neat.BiasLevel || b.Level == neat.InputLevel || b.Wave < 0 || a.ID == b.ID {
				continue
			}
			if a.Component == b.Component && b.Wave <= a.Wave {
				continue
			}
			if net.HasEdge(a.ID, b.ID) {
				continue
			}
			pairs = append(pairs, Pair{From: a.ID, To: b.ID})
		}
	}
	return pairs
}

// splittable lists the enabled edges of net that g has not split yet.
func splittable(net *nn.Network, g *neat.Genome, r *neat.Registry) []nn.Edge {
	var edges []nn.Edge
	for _, e := range net.Edges() {
		if !unsplit(net, g, r, e.From, e.To) {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// unsplit reports whether splitting from->to would introduce a node the
// genome does not carry yet.
func unsplit(net *nn.Network, g *neat.Genome, r *neat.Registry, from, to neat.NodeID) bool {
	id, ok := r.Lookup(from, to, neat.NodeSplitFeature)
	if !ok {
		return true
	}
	if _, has := g.Index(id); has {
		return false
	}
	f, _ := r.Feature(id)
	_, present := net.Node(f.Node)
	return !present
}
