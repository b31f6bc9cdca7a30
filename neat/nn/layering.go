package nn

// layer partitions the network into weakly connected components and orders
// each one into waves, concatenating the components' waves in the order the
// components were first seen. Within a component the frontier starts at every
// node with no incoming edges, and a node joins the next wave only once all
// of its incoming edges have been fired by earlier waves. It returns the
// number of nodes scheduled; fewer than len(net.nodes) means a cycle.
func (net *Network) layer() int {
	comp := net.connectedComponents()

	roots := make([][]int, len(net.components))
	remaining := make([]int, len(net.nodes))
	for i := range net.nodes {
		remaining[i] = len(net.nodes[i].Incoming)
		if remaining[i] == 0 {
			roots[comp[i]] = append(roots[comp[i]], i)
		}
	}

	scheduled := 0
	for c := range net.components {
		component := &net.components[c]
		component.FirstWave = len(net.layers)
		for _, n := range roots[c] {
			component.Roots = append(component.Roots, net.nodes[n].ID)
		}

		frontier := roots[c]
		for len(frontier) > 0 {
			w := len(net.layers)
			net.layers = append(net.layers, frontier)
			wave := []EdgeID{}

			var next []int
			for _, n := range frontier {
				net.nodes[n].Wave = w
				scheduled++
				for _, e := range net.nodes[n].Outgoing {
					wave = append(wave, e)
					dst := net.edges[e].dst
					remaining[dst]--
					if remaining[dst] == 0 {
						next = append(next, dst)
					}
				}
			}
			net.waves = append(net.waves, wave)
			frontier = next
		}
		component.NumWaves = len(net.layers) - component.FirstWave
	}
	return scheduled
}

// connectedComponents labels every node with its weakly connected component
// and allocates net.components. Components are numbered by their first node
// in arena order.
func (net *Network) connectedComponents() []int {
	parent := make([]int, len(net.nodes))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for _, e := range net.edges {
		a, b := find(e.src), find(e.dst)
		if a == b {
			continue
		}
		// Keep the lowest arena index as representative.
		if a < b {
			parent[b] = a
		} else {
			parent[a] = b
		}
	}

	comp := make([]int, len(net.nodes))
	label := make(map[int]int)
	for i := range net.nodes {
		root := find(i)
		c, ok := label[root]
		if !ok {
			c = len(label)
			label[root] = c
		}
		comp[i] = c
		net.nodes[i].Component = c
	}
	net.components = make([]Component, len(label))
	return comp
}
