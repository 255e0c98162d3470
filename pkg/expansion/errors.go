package expansion

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound     = errors.New("visual node not found")
	ErrEntityNotFound   = errors.New("backing entity not found")
	ErrResolverFailure  = errors.New("link resolution failed")
	ErrMalformedVersion = errors.New("version missing id")
)

// EngineError provides structured error information for engine operations.
type EngineError struct {
	Op      string // Operation that failed (e.g., "Expand", "ExpandPath")
	Entity  string // Entity kind ("node", "record", "document")
	Key     string // Node id or entity key (if applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.Key, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *EngineError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building EngineErrors.
type ErrorBuilder struct {
	err EngineError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: EngineError{Op: op}}
}

// Node sets the entity to "node" with the given id.
func (b *ErrorBuilder) Node(id string) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.Key = id
	return b
}

// Record sets the entity to "record" with the given key.
func (b *ErrorBuilder) Record(key string) *ErrorBuilder {
	b.err.Entity = "record"
	b.err.Key = key
	return b
}

// Document sets the entity to "document" with the given key.
func (b *ErrorBuilder) Document(key string) *ErrorBuilder {
	b.err.Entity = "document"
	b.err.Key = key
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// IsResolverFailure returns true if the error stems from phase-1 resolution.
func IsResolverFailure(err error) bool {
	return errors.Is(err, ErrResolverFailure)
}

// IsNotFound returns true if the error indicates a missing node or entity.
// Engine operations absorb these as no-ops; the sentinels exist for
// resolvers and callers that want to surface absence explicitly.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrEntityNotFound)
}
