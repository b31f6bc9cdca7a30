package neat

import "errors"

// Errors reported by the core. They are returned wrapped with context, so
// callers should match them with errors.Is.
var (
	ErrDuplicateFeature        = errors.New("duplicate feature")
	ErrNonContiguousLevels     = errors.New("non-contiguous input/output levels")
	ErrLevelsAlreadyDeclared   = errors.New("input/output levels already declared")
	ErrGenomeLengthMismatch    = errors.New("genome sequences differ in length")
	ErrInputArityMismatch      = errors.New("input arity mismatch")
	ErrInvalidInputTopology    = errors.New("input node has incoming edges")
	ErrUnknownFeatureReference = errors.New("unknown feature reference")
	ErrDuplicateGeneReference  = errors.New("genome references a feature more than once")
	ErrCyclicTopology          = errors.New("network contains a cycle")
	ErrNoLegalMutationTarget   = errors.New("no legal mutation target")
)
