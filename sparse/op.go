// SPDX-License-Identifier: MIT
// Package sparse: the transpose-intent operand tag.
//
// Op is a closed, two-variant tagged choice over an arithmetic operand:
// either the operand itself (NoOp) or its transpose (Transposed). It carries
// no data beyond the wrapped operand, and exists so arithmetic routines can
// consume "A or Aᵀ" without an explicit transposed copy being built at the
// call site. Consumers switch exhaustively on Kind(); an unknown tag is a
// programmer error and panics.

package sparse

// OpKind discriminates the two Op variants.
type OpKind int

const (
	// KindNoOp tags the operand as used as-is.
	KindNoOp OpKind = iota

	// KindTranspose tags the operand as used transposed.
	KindTranspose
)

// panicUnknownOpKind is the message for the closed-set violation.
const panicUnknownOpKind = "sparse: unknown Op kind"

// Op wraps an operand of type M together with its transpose intent.
// The zero value is a NoOp of M's zero value; prefer the constructors.
type Op[M any] struct {
	kind  OpKind
	inner M
}

// NoOp wraps m to be used as-is.
func NoOp[M any](m M) Op[M] { return Op[M]{kind: KindNoOp, inner: m} }

// Transposed wraps m to be used transposed.
func Transposed[M any](m M) Op[M] { return Op[M]{kind: KindTranspose, inner: m} }

// Kind returns the operand's transpose tag.
func (o Op[M]) Kind() OpKind { return o.kind }

// Inner returns the wrapped operand.
func (o Op[M]) Inner() M { return o.inner }

// IsTranspose reports whether the operand is used transposed.
func (o Op[M]) IsTranspose() bool { return o.kind == KindTranspose }
