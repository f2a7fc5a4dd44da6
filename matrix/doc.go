// Package matrix offers dense matrix primitives for numeric computation.
//
// The matrix package provides:
//
//   - A minimal Matrix interface (Rows/Cols/At/Set/Clone) so algorithms can
//     accept any conforming implementation.
//   - Dense, a row-major float64 implementation with flat backing storage
//     for performance and cache friendliness.
//   - Allocation-explicit kernels (Add, Sub, Mul, Scale, Transpose, Abs,
//     MatVec) with strict fail-fast validation and sentinel errors.
//   - Convenience constructors (NewZeros, NewIdentity, FromRows).
//
// Dense matrices are best for small-to-medium problems where O(r*c) memory
// is acceptable; see the sparse package for compressed formats.
//
// See matrix/ops for LU/QR decompositions and linear solves, and expm for
// the matrix exponential built on top of this package.
package matrix
