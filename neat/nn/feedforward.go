package nn

import (
	"fmt"

	"github.com/baldhumanity/neat-core/neat"
)

// Activate computes the network's outputs for one input vector. Every node is
// reset to 0 except the bias, which is fixed at 1.0; the inputs are loaded in
// declared order, then each wave adds source.Value*weight to its edges'
// targets. Outputs are returned in declared order.
func (net *Network) Activate(inputs []float64) ([]float64, error) {
	if net.strict && len(inputs) != len(net.inputs) {
		return nil, fmt.Errorf("got %d inputs for %d input nodes: %w", len(inputs), len(net.inputs), neat.ErrInputArityMismatch)
	}

	for i := range net.nodes {
		net.nodes[i].Value = 0.0
	}
	net.nodes[net.bias].Value = 1.0
	for i, n := range net.inputs {
		if i == len(inputs) {
			break
		}
		net.nodes[n].Value = inputs[i]
	}

	for _, wave := range net.waves {
		for _, e := range wave {
			edge := &net.edges[e]
			net.nodes[edge.dst].Value += net.nodes[edge.src].Value * edge.Weight
		}
	}

	outputs := make([]float64, len(net.outputs))
	for i, n := range net.outputs {
		outputs[i] = net.nodes[n].Value
	}
	return outputs, nil
}
