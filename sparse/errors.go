// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set and the typed operation error.
// This file defines ONLY package-level sentinel errors plus OperationError.
// All constructors MUST return these sentinels and tests MUST check them via
// errors.Is. Panics are reserved for programmer errors (dimension mismatches
// in arithmetic preconditions, unknown Op tags).

package sparse

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "sparse: ..." for consistency and to allow
// easy grepping across logs. Wrap with fmt.Errorf("ctx: %w", ErrX) at outer
// boundaries when context is essential — errors.Is still matches.

var (
	// ErrOffsetsLength — the offsets array must have exactly majorDim+1 entries.
	ErrOffsetsLength = errors.New("sparse: offsets length must equal major dimension + 1")

	// ErrOffsetsStart — offsets[0] must be exactly 0.
	ErrOffsetsStart = errors.New("sparse: first offset must be zero")

	// ErrOffsetsOrder — offsets must be monotonically non-decreasing.
	ErrOffsetsOrder = errors.New("sparse: offsets must be non-decreasing")

	// ErrIndicesLength — offsets[majorDim] must equal len(minorIndices).
	ErrIndicesLength = errors.New("sparse: last offset must equal number of minor indices")

	// ErrMinorOutOfRange — a minor index is >= the minor dimension.
	ErrMinorOutOfRange = errors.New("sparse: minor index out of range")

	// ErrMinorOrder — minor indices within one major lane must be strictly
	// increasing; duplicates and out-of-order entries are both violations.
	ErrMinorOrder = errors.New("sparse: minor indices not strictly increasing within lane")

	// ErrValuesLength — the values slice must align index-for-index with the
	// pattern's minor indices (len(values) == pattern.NNZ()).
	ErrValuesLength = errors.New("sparse: values length must equal pattern nnz")

	// ErrNilPattern — a nil *SparsityPattern was passed to a constructor.
	ErrNilPattern = errors.New("sparse: nil sparsity pattern")
)

// OperationErrorKind enumerates the kinds of arithmetic operation errors.
type OperationErrorKind int

const (
	// InvalidPattern indicates that one or more sparsity patterns involved in
	// the operation violate the expectations of the routine — typically that
	// the output pattern cannot contain the result of the operation.
	InvalidPattern OperationErrorKind = iota
)

// String returns the kind's stable name (used in error text and logs).
func (k OperationErrorKind) String() string {
	switch k {
	case InvalidPattern:
		return "InvalidPattern"
	default:
		return fmt.Sprintf("OperationErrorKind(%d)", int(k))
	}
}

// OperationError describes a recoverable failure of a sparse arithmetic
// routine. It is a value type: compare kinds via Kind(), not identity.
type OperationError struct {
	kind    OperationErrorKind
	message string
}

// newOperationError builds an OperationError from a kind and message.
func newOperationError(kind OperationErrorKind, message string) *OperationError {
	return &OperationError{kind: kind, message: message}
}

// Kind returns the operation error kind.
func (e *OperationError) Kind() OperationErrorKind { return e.kind }

// Error implements the error interface.
func (e *OperationError) Error() string {
	return fmt.Sprintf("sparse: %s: %s", e.kind, e.message)
}
