package neat

import (
	"fmt"
	"strings"
)

// Rand is the random source consumed by seeding and mutation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	NormFloat64() float64
	Intn(n int) int
}

// Genome encodes one network as three parallel sequences. Gene order is
// insertion history: new genes are only ever appended, never reordered.
type Genome struct {
	Genes   []FeatureID
	Weights []float64
	Enabled []bool
}

// NewGenome returns an empty genome.
func NewGenome() *Genome {
	return &Genome{}
}

// Len returns the number of genes.
func (g *Genome) Len() int {
	return len(g.Genes)
}

// Append adds a gene at the end of the genome.
func (g *Genome) Append(id FeatureID, weight float64, enabled bool) {
	g.Genes = append(g.Genes, id)
	g.Weights = append(g.Weights, weight)
	g.Enabled = append(g.Enabled, enabled)
}

// Index returns the position of the gene carrying id.
func (g *Genome) Index(id FeatureID) (int, bool) {
	for i, gene := range g.Genes {
		if gene == id {
			return i, true
		}
	}
	return -1, false
}

// MaxFeature returns the highest feature id cited by the genome, or -1 when empty.
func (g *Genome) MaxFeature() FeatureID {
	return maxFeature(g.Genes)
}

func maxFeature(ids []FeatureID) FeatureID {
	maxID := FeatureID(-1)
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}
	return maxID
}

// Copy creates a deep copy of the genome.
func (g *Genome) Copy() *Genome {
	return &Genome{
		Genes:   append([]FeatureID(nil), g.Genes...),
		Weights: append([]float64(nil), g.Weights...),
		Enabled: append([]bool(nil), g.Enabled...),
	}
}

// Validate checks the genome against the registry. Sequence lengths and
// feature references are always checked; duplicate references only in
// strict mode.
func (g *Genome) Validate(r *Registry) error {
	if len(g.Genes) != len(g.Weights) || len(g.Genes) != len(g.Enabled) {
		return fmt.Errorf("genes=%d weights=%d enabled=%d: %w",
			len(g.Genes), len(g.Weights), len(g.Enabled), ErrGenomeLengthMismatch)
	}

	known := r.Len()
	for i, id := range g.Genes {
		if id < 0 || int(id) >= known {
			return fmt.Errorf("gene %d cites feature %d: %w", i, id, ErrUnknownFeatureReference)
		}
	}

	if r.Strict() {
		seen := make(map[FeatureID]int, len(g.Genes))
		for i, id := range g.Genes {
			if first, dup := seen[id]; dup {
				return fmt.Errorf("feature %d at genes %d and %d: %w", id, first, i, ErrDuplicateGeneReference)
			}
			seen[id] = i
		}
	}
	return nil
}

// String returns a compact representation, e.g. "Genome[#0:0.500 #3:-1.200(off)]".
func (g *Genome) String() string {
	var sb strings.Builder
	sb.WriteString("Genome[")
	for i, id := range g.Genes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "#%d:%.3f", id, g.Weights[i])
		if !g.Enabled[i] {
			sb.WriteString("(off)")
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// NewSeedGenome creates a first-generation genome following
// cfg.InitialConnection. "unconnected" yields an empty genome; "full_direct"
// connects the bias and every input to every output.
func NewSeedGenome(r *Registry, cfg *GenomeConfig, rnd Rand) (*Genome, error) {
	g := NewGenome()

	switch cfg.InitialConnection {
	case "unconnected":
		// No connections are made.
	case "full_direct":
		sources := append([]NodeID{BiasNode}, r.Inputs()...)
		for _, from := range sources {
			for _, to := range r.Outputs() {
				id, _, err := r.ResolveConnection(from, to)
				if err != nil {
					return nil, fmt.Errorf("seed connection %d->%d: %w", from, to, err)
				}
				g.Append(id, rnd.NormFloat64()*cfg.WeightInitStdev+cfg.WeightInitMean, true)
			}
		}
	default:
		return nil, fmt.Errorf("invalid initial_connection type: %s", cfg.InitialConnection)
	}
	return g, nil
}
