// Package neat provides the core of NeuroEvolution of Augmenting Topologies
// (NEAT): a historical marking registry, a genome encoding built on it, a
// compiler from genomes to layered feedforward networks, the structural and
// weight mutation operators, and the compatibility distance.
//
// Population management, speciation, selection and crossover are left to the
// caller. The library supplies the pieces a generational loop is built from;
// see examples/linear for a complete one.
//
// Every structural feature of a run, whether a connection or the split of a
// connection into a new hidden node, receives a FeatureID from the run's
// Registry the first time any lineage creates it. Genomes cite features by id,
// so two genomes can be aligned gene by gene without comparing topology.
//
// Basic usage:
//
//	// Load configuration
//	config, err := neat.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// One registry per run, with inputs 1..n and the outputs after them
//	registry, err := config.NewRegistry()
//	if err != nil {
//		log.Fatalf("Error creating registry: %v", err)
//	}
//
//	rnd := rand.New(rand.NewSource(config.Neat.Seed))
//	genome, _ := neat.NewSeedGenome(registry, &config.Genome, rnd)
//
//	// Grow the genome
//	mutator := mutation.New(&config.Genome, rnd)
//	if err := mutator.Mutate(genome, registry); err != nil {
//		log.Printf("Mutation skipped: %v", err)
//	}
//
//	// Compile and run it
//	net, err := nn.Compile(genome, registry)
//	if err != nil {
//		log.Fatalf("Error compiling genome: %v", err)
//	}
//	outputs, err := net.Activate([]float64{0.5, -1.0})
//
//	// Compare two genomes
//	d := neat.Distance(genome, other, &config.Compatibility)
package neat
