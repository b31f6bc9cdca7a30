package neat

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// NodeID identifies a node across every genome of a run.
// Node 0 is the constant bias node.
type NodeID int

// FeatureID is the historical marking (innovation number) of a Feature.
// It is the Feature's insertion index in the Registry.
type FeatureID int

// BiasNode is the reserved node that always outputs 1.0.
const BiasNode NodeID = 0

// FeatureKind distinguishes connection features from node-creation events.
type FeatureKind int

const (
	ConnectionFeature FeatureKind = iota
	NodeSplitFeature
)

func (k FeatureKind) String() string {
	switch k {
	case ConnectionFeature:
		return "connection"
	case NodeSplitFeature:
		return "node-split"
	default:
		return fmt.Sprintf("FeatureKind(%d)", int(k))
	}
}

// Level is the structural role of a node.
type Level int

const (
	BiasLevel Level = iota
	InputLevel
	OutputLevel
	HiddenLevel
)

func (l Level) String() string {
	switch l {
	case BiasLevel:
		return "bias"
	case InputLevel:
		return "input"
	case OutputLevel:
		return "output"
	default:
		return "hidden"
	}
}

// Feature is one entry of the historical marking ledger.
type Feature struct {
	ID   FeatureID
	From NodeID
	To   NodeID
	Kind FeatureKind
	// Node is the hidden node created by a NodeSplitFeature. Zero for connections.
	Node NodeID
}

func (f Feature) String() string {
	if f.Kind == NodeSplitFeature {
		return fmt.Sprintf("Feature(#%d split %d->%d as %d)", f.ID, f.From, f.To, f.Node)
	}
	return fmt.Sprintf("Feature(#%d %d->%d)", f.ID, f.From, f.To)
}

type featureKey struct {
	from NodeID
	to   NodeID
	kind FeatureKind
}

// Registry is the historical marking ledger of one evolutionary run.
// It assigns a stable FeatureID to every structural feature the first time it
// appears, owns the input/output partition and mints hidden node ids.
//
// Reads are safe from many goroutines. Registration is serialized so that two
// workers discovering the same novel feature receive the same id.
type Registry struct {
	RunID uuid.UUID

	mu          sync.RWMutex
	strict      bool
	features    []Feature
	index       map[featureKey]FeatureID
	inputs      []NodeID
	outputs     []NodeID
	declared    bool
	nodeCounter NodeID
}

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithStrict toggles validation of contiguity, arity, duplicate registration
// and input topology. Strict mode is on by default.
func WithStrict(strict bool) RegistryOption {
	return func(r *Registry) { r.strict = strict }
}

// WithRunID overrides the randomly generated run identifier.
func WithRunID(id uuid.UUID) RegistryOption {
	return func(r *Registry) { r.RunID = id }
}

// NewRegistry creates an empty ledger for a new run.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		RunID:  uuid.New(),
		strict: true,
		index:  make(map[featureKey]FeatureID),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strict reports whether validation checks are enabled for this run.
func (r *Registry) Strict() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.strict
}

// Register records a new feature and returns its id. Registering an existing
// (from, to, kind) triple fails with ErrDuplicateFeature in strict mode; with
// validation disabled the existing id is returned instead. A NodeSplitFeature
// registered here gets a freshly minted hidden node.
func (r *Registry) Register(from, to NodeID, kind FeatureKind) (FeatureID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(Feature{From: from, To: to, Kind: kind})
}

// RegisterSplit records that the connection from->to was split by creating
// node. Passing BiasNode mints the node instead.
func (r *Registry) RegisterSplit(from, to, node NodeID) (FeatureID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(Feature{From: from, To: to, Kind: NodeSplitFeature, Node: node})
}

func (r *Registry) registerLocked(f Feature) (FeatureID, error) {
	key := featureKey{from: f.From, to: f.To, kind: f.Kind}
	if id, exists := r.index[key]; exists {
		if r.strict {
			return id, fmt.Errorf("register %s %d->%d (already #%d): %w", f.Kind, f.From, f.To, id, ErrDuplicateFeature)
		}
		return id, nil
	}

	// Keep minted ids clear of anything registered by hand.
	for _, n := range [...]NodeID{f.From, f.To, f.Node} {
		if n > r.nodeCounter {
			r.nodeCounter = n
		}
	}
	// The bias never splits a connection, so it marks a split with no node yet.
	if f.Kind == NodeSplitFeature && f.Node == BiasNode {
		r.nodeCounter++
		f.Node = r.nodeCounter
	}

	f.ID = FeatureID(len(r.features))
	r.features = append(r.features, f)
	r.index[key] = f.ID
	return f.ID, nil
}

// Lookup returns the id of an existing feature. It never fails.
func (r *Registry) Lookup(from, to NodeID, kind FeatureKind) (FeatureID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.index[featureKey{from: from, to: to, kind: kind}]
	return id, ok
}

// ResolveConnection returns the id of the connection from->to, registering
// it first if no lineage has created it yet. created reports whether a new
// feature was added to the ledger.
func (r *Registry) ResolveConnection(from, to NodeID) (id FeatureID, created bool, err error) {
	if id, ok := r.Lookup(from, to, ConnectionFeature); ok {
		return id, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another writer may have won the race between the lookup and the lock.
	if id, ok := r.index[featureKey{from: from, to: to, kind: ConnectionFeature}]; ok {
		return id, false, nil
	}
	id, err = r.registerLocked(Feature{From: from, To: to, Kind: ConnectionFeature})
	return id, err == nil, err
}

// ResolveSplit returns the split feature of the connection from->to. When the
// connection has never been split, a hidden node is minted and the split is
// registered under the same lock, so every lineage splitting the same
// connection shares one node id.
func (r *Registry) ResolveSplit(from, to NodeID) (f Feature, created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.index[featureKey{from: from, to: to, kind: NodeSplitFeature}]; ok {
		return r.features[id], false, nil
	}
	id, err := r.registerLocked(Feature{From: from, To: to, Kind: NodeSplitFeature})
	if err != nil {
		return Feature{}, false, err
	}
	return r.features[id], true, nil
}

// Feature returns the ledger entry for id.
func (r *Registry) Feature(id FeatureID) (Feature, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || int(id) >= len(r.features) {
		return Feature{}, false
	}
	return r.features[id], true
}

// Len returns the number of features registered so far.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.features)
}

// DeclareLevels sets the input/output partition. Inputs must be exactly
// 1..len(inputs) and outputs the block that immediately follows, which lets
// Level classify any node by range comparison.
func (r *Registry) DeclareLevels(inputs, outputs []NodeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.declared {
		return ErrLevelsAlreadyDeclared
	}
	if r.strict {
		for i, id := range inputs {
			if id != NodeID(i+1) {
				return fmt.Errorf("input %d has id %d, want %d: %w", i, id, i+1, ErrNonContiguousLevels)
			}
		}
		for i, id := range outputs {
			if want := NodeID(len(inputs) + i + 1); id != want {
				return fmt.Errorf("output %d has id %d, want %d: %w", i, id, want, ErrNonContiguousLevels)
			}
		}
	}

	r.inputs = append([]NodeID(nil), inputs...)
	r.outputs = append([]NodeID(nil), outputs...)
	r.declared = true
	for _, id := range r.inputs {
		if id > r.nodeCounter {
			r.nodeCounter = id
		}
	}
	for _, id := range r.outputs {
		if id > r.nodeCounter {
			r.nodeCounter = id
		}
	}
	return nil
}

// Inputs returns the declared input node ids in order.
func (r *Registry) Inputs() []NodeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]NodeID(nil), r.inputs...)
}

// Outputs returns the declared output node ids in order.
func (r *Registry) Outputs() []NodeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]NodeID(nil), r.outputs...)
}

// Level classifies a node by its position relative to the declared blocks.
func (r *Registry) Level(id NodeID) Level {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nIn, nOut := NodeID(len(r.inputs)), NodeID(len(r.outputs))
	switch {
	case id == BiasNode:
		return BiasLevel
	case id <= nIn:
		return InputLevel
	case id <= nIn+nOut:
		return OutputLevel
	default:
		return HiddenLevel
	}
}

// MintNode returns a fresh hidden node id.
func (r *Registry) MintNode() NodeID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodeCounter++
	return r.nodeCounter
}

// NodeCounter returns the highest node id known to the registry.
func (r *Registry) NodeCounter() NodeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nodeCounter
}
