package neat

import "math"

// Alignment is the result of lining two genomes up by feature id.
type Alignment struct {
	Matching int
	Disjoint int
	Excess   int
	// WeightDiffs holds |w1 - w2| for every matching gene, in the first genome's order.
	WeightDiffs []float64
}

// Align classifies the genes of a and b. A gene present in only one genome
// is excess when its id lies beyond the other genome's highest id, and
// disjoint otherwise. Genes without a weight are ignored, so genomes should
// pass Validate first.
func Align(a, b *Genome) Alignment {
	genesA, weightsA := weighted(a)
	genesB, weightsB := weighted(b)

	byIDA := make(map[FeatureID]float64, len(genesA))
	for i, id := range genesA {
		byIDA[id] = weightsA[i]
	}
	byIDB := make(map[FeatureID]float64, len(genesB))
	for i, id := range genesB {
		byIDB[id] = weightsB[i]
	}

	var al Alignment
	maxA, maxB := maxFeature(genesA), maxFeature(genesB)

	for i, id := range genesA {
		if w, ok := byIDB[id]; ok {
			al.Matching++
			al.WeightDiffs = append(al.WeightDiffs, math.Abs(weightsA[i]-w))
			continue
		}
		al.classify(id, maxB)
	}
	for _, id := range genesB {
		if _, ok := byIDA[id]; !ok {
			al.classify(id, maxA)
		}
	}
	return al
}

// weighted returns the genes of g that carry a weight.
func weighted(g *Genome) ([]FeatureID, []float64) {
	n := min(len(g.Genes), len(g.Weights))
	return g.Genes[:n], g.Weights[:n]
}

func (al *Alignment) classify(id, otherMax FeatureID) {
	if id > otherMax {
		al.Excess++
	} else {
		al.Disjoint++
	}
}

// Distance calculates the compatibility distance between two genomes:
//
//	d = (c1*E + c2*D) / N + c3*W
//
// where W is the mean weight difference of matching genes (0 when there are
// none) and N is the longer genome's gene count when cfg.Normalize is set.
func Distance(a, b *Genome, cfg *CompatibilityConfig) float64 {
	al := Align(a, b)

	n := 1.0
	if cfg.Normalize {
		genesA, _ := weighted(a)
		genesB, _ := weighted(b)
		n = math.Max(float64(max(len(genesA), len(genesB))), 1.0)
	}

	d := (cfg.ExcessCoefficient*float64(al.Excess) + cfg.DisjointCoefficient*float64(al.Disjoint)) / n
	if al.Matching > 0 {
		d += cfg.WeightCoefficient * Mean(al.WeightDiffs)
	}
	return d
}
