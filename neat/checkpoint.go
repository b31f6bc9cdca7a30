package neat

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// RegistrySnapshot is the plain-data form of a Registry.
type RegistrySnapshot struct {
	RunID       uuid.UUID
	Strict      bool
	Features    []Feature
	Inputs      []NodeID
	Outputs     []NodeID
	Declared    bool
	NodeCounter NodeID
}

// Snapshot copies the ledger out of the registry.
func (r *Registry) Snapshot() RegistrySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RegistrySnapshot{
		RunID:       r.RunID,
		Strict:      r.strict,
		Features:    append([]Feature(nil), r.features...),
		Inputs:      append([]NodeID(nil), r.inputs...),
		Outputs:     append([]NodeID(nil), r.outputs...),
		Declared:    r.declared,
		NodeCounter: r.nodeCounter,
	}
}

// RestoreRegistry rebuilds a registry from a snapshot, re-deriving the lookup table.
func RestoreRegistry(s RegistrySnapshot) (*Registry, error) {
	r := NewRegistry(WithRunID(s.RunID), WithStrict(s.Strict))
	for i, f := range s.Features {
		if f.ID != FeatureID(i) {
			return nil, fmt.Errorf("feature at position %d carries id %d", i, f.ID)
		}
		key := featureKey{from: f.From, to: f.To, kind: f.Kind}
		if _, exists := r.index[key]; exists {
			return nil, fmt.Errorf("restore %s: %w", f, ErrDuplicateFeature)
		}
		r.index[key] = f.ID
	}
	r.features = append([]Feature(nil), s.Features...)
	r.inputs = append([]NodeID(nil), s.Inputs...)
	r.outputs = append([]NodeID(nil), s.Outputs...)
	r.declared = s.Declared
	r.nodeCounter = s.NodeCounter
	return r, nil
}

// checkpointData holds what is needed to resume a run.
type checkpointData struct {
	Registry RegistrySnapshot
	Genomes  []*Genome
}

// SaveCheckpoint writes the registry and genomes of a run to a gzip-compressed gob file.
func SaveCheckpoint(filePath string, r *Registry, genomes []*Genome) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	data := checkpointData{
		Registry: r.Snapshot(),
		Genomes:  genomes,
	}
	if err := gob.NewEncoder(gzWriter).Encode(data); err != nil {
		_ = gzWriter.Close()
		return fmt.Errorf("failed to encode checkpoint data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint file '%s': %w", filePath, err)
	}

	slog.Default().Info("checkpoint saved",
		slog.String("component", "checkpoint"),
		slog.String("path", filePath),
		slog.String("run_id", data.Registry.RunID.String()),
		slog.Int("features", len(data.Registry.Features)),
		slog.Int("genomes", len(genomes)),
	)
	return nil
}

// LoadCheckpoint reads a checkpoint written by SaveCheckpoint.
func LoadCheckpoint(filePath string) (*Registry, []*Genome, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	var data checkpointData
	if err := gob.NewDecoder(gzReader).Decode(&data); err != nil {
		return nil, nil, fmt.Errorf("failed to decode checkpoint data: %w", err)
	}

	r, err := RestoreRegistry(data.Registry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to restore registry: %w", err)
	}
	for i, g := range data.Genomes {
		if err := g.Validate(r); err != nil {
			return nil, nil, fmt.Errorf("checkpoint genome %d: %w", i, err)
		}
	}

	slog.Default().Info("checkpoint loaded",
		slog.String("component", "checkpoint"),
		slog.String("path", filePath),
		slog.String("run_id", r.RunID.String()),
		slog.Int("genomes", len(data.Genomes)),
	)
	return r, data.Genomes, nil
}
