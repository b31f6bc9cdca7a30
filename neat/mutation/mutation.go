// Package mutation implements the structural and weight mutation operators.
// Every operator resolves features through the run's Registry so that the
// same structural innovation receives the same id in every lineage.
package mutation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/baldhumanity/neat-core/neat"
	"github.com/baldhumanity/neat-core/neat/metrics"
	"github.com/baldhumanity/neat-core/neat/nn"
)

// Mutator applies mutations to genomes in place.
type Mutator struct {
	Config  *neat.GenomeConfig
	Rand    neat.Rand
	Logger  *slog.Logger
	Metrics *metrics.Metrics // Optional
}

// New creates a Mutator drawing from rnd.
func New(config *neat.GenomeConfig, rnd neat.Rand) *Mutator {
	return &Mutator{
		Config: config,
		Rand:   rnd,
		Logger: slog.Default().With(slog.String("component", "mutation")),
	}
}

// Mutate draws three independent gates, in order add-connection, add-node,
// perturb-weight, and applies every operator whose gate fires.
func (m *Mutator) Mutate(g *neat.Genome, r *neat.Registry) error {
	if m.Rand.Float64() < m.Config.ConnAddProb {
		if err := m.AddConnection(g, r); err != nil {
			return err
		}
	}
	if m.Rand.Float64() < m.Config.NodeAddProb {
		if err := m.AddNode(g, r); err != nil {
			return err
		}
	}
	if m.Rand.Float64() < m.Config.WeightMutateProb {
		m.PerturbWeight(g)
	}
	return nil
}

// AddConnection adds one uniformly chosen legal connection with weight 0.
// A connection already known to the registry keeps its id; if the genome
// carries it disabled, it is re-enabled instead of appended.
func (m *Mutator) AddConnection(g *neat.Genome, r *neat.Registry) error {
	net, err := m.compile(g, r)
	if err != nil {
		return fmt.Errorf("add connection: %w", err)
	}

	pairs := LegalConnections(net)
	if len(pairs) == 0 {
		return fmt.Errorf("add connection on %d nodes: %w", len(net.Nodes()), neat.ErrNoLegalMutationTarget)
	}
	p := pairs[m.Rand.Intn(len(pairs))]
	if err := m.connect(g, r, p.From, p.To, 0.0); err != nil {
		return fmt.Errorf("add connection: %w", err)
	}

	m.Metrics.Mutation(metrics.OperatorAddConnection)
	m.logger().Debug("added connection", slog.Int("from", int(p.From)), slog.Int("to", int(p.To)))
	return nil
}

// AddNode splits a connection a->b with a hidden node m, appending the split
// gene followed by a->m (weight 1) and m->b (the split edge's weight).
// Enabled edges are split first; when the genome has none, a legal pair is
// split instead. The split edge stays enabled unless
// Config.DisableSplitConnection is set. On error the genome is unchanged.
func (m *Mutator) AddNode(g *neat.Genome, r *neat.Registry) error {
	net, err := m.compile(g, r)
	if err != nil {
		return fmt.Errorf("add node: %w", err)
	}

	var (
		from, to  neat.NodeID
		outWeight float64
		splitGene = -1
	)
	if edges := splittable(net, g, r); len(edges) > 0 {
		e := edges[m.Rand.Intn(len(edges))]
		from, to, outWeight = e.From, e.To, e.Weight
		splitGene, _ = g.Index(e.Feature)
	} else {
		var pairs []Pair
		for _, p := range LegalConnections(net) {
			if unsplit(net, g, r, p.From, p.To) {
				pairs = append(pairs, p)
			}
		}
		if len(pairs) == 0 {
			return fmt.Errorf("add node on %d nodes: %w", len(net.Nodes()), neat.ErrNoLegalMutationTarget)
		}
		p := pairs[m.Rand.Intn(len(pairs))]
		from, to = p.From, p.To
	}

	split, created, err := r.ResolveSplit(from, to)
	if err != nil {
		return fmt.Errorf("add node: %w", err)
	}
	if created {
		m.Metrics.FeatureRegistered()
		m.Metrics.NodeMinted()
	}
	in, err := m.resolve(r, from, split.Node)
	if err != nil {
		return fmt.Errorf("add node: %w", err)
	}
	out, err := m.resolve(r, split.Node, to)
	if err != nil {
		return fmt.Errorf("add node: %w", err)
	}
	if err := spliceNode(g, split.ID, in, out, outWeight); err != nil {
		return fmt.Errorf("add node %d->%d: %w", from, to, err)
	}
	if splitGene >= 0 && m.Config.DisableSplitConnection {
		g.Enabled[splitGene] = false
	}

	m.Metrics.Mutation(metrics.OperatorAddNode)
	m.logger().Debug("split connection",
		slog.Int("from", int(from)),
		slog.Int("to", int(to)),
		slog.Int("node", int(split.Node)),
		slog.Bool("new_node", created),
	)
	return nil
}

// PerturbWeight adds a uniform delta in [-WeightMutatePower, WeightMutatePower)
// to one uniformly chosen gene. The result is not clamped.
func (m *Mutator) PerturbWeight(g *neat.Genome) {
	if g.Len() == 0 {
		return
	}
	i := m.Rand.Intn(g.Len())
	delta := (m.Rand.Float64()*2 - 1) * m.Config.WeightMutatePower
	g.Weights[i] += delta

	m.Metrics.Mutation(metrics.OperatorPerturbWeight)
	m.logger().Debug("perturbed weight", slog.Int("gene", i), slog.Float64("delta", delta))
}

// connect makes from->to an enabled gene of g.
func (m *Mutator) connect(g *neat.Genome, r *neat.Registry, from, to neat.NodeID, weight float64) error {
	id, err := m.resolve(r, from, to)
	if err != nil {
		return err
	}
	if i, ok := g.Index(id); ok && g.Enabled[i] {
		return fmt.Errorf("connection %d->%d is already enabled", from, to)
	}
	enable(g, id, weight)
	return nil
}

func (m *Mutator) resolve(r *neat.Registry, from, to neat.NodeID) (neat.FeatureID, error) {
	id, created, err := r.ResolveConnection(from, to)
	if err != nil {
		return id, err
	}
	if created {
		m.Metrics.FeatureRegistered()
	}
	return id, nil
}

// spliceNode appends the split gene followed by the in and out connection
// genes. The genome is left untouched unless every gene can be added.
func spliceNode(g *neat.Genome, split, in, out neat.FeatureID, outWeight float64) error {
	if _, ok := g.Index(split); ok {
		return fmt.Errorf("split #%d is already in the genome", split)
	}
	for _, id := range [...]neat.FeatureID{in, out} {
		if i, ok := g.Index(id); ok && g.Enabled[i] {
			return fmt.Errorf("connection #%d is already enabled", id)
		}
	}

	g.Append(split, 0.0, true)
	enable(g, in, 1.0)
	enable(g, out, outWeight)
	return nil
}

// enable turns on the gene carrying id, appending it with weight when the
// genome does not carry it. A re-enabled gene keeps its weight.
func enable(g *neat.Genome, id neat.FeatureID, weight float64) {
	if i, ok := g.Index(id); ok {
		g.Enabled[i] = true
		return
	}
	g.Append(id, weight, true)
}

func (m *Mutator) compile(g *neat.Genome, r *neat.Registry) (*nn.Network, error) {
	start := time.Now()
	net, err := nn.Compile(g, r)
	m.Metrics.ObserveCompile(start)
	return net, err
}

func (m *Mutator) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}
