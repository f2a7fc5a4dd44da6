// Package sparse offers compressed sparse matrix formats and pattern-aware,
// allocation-free arithmetic between them.
//
// The sparse package provides:
//
//   - SparsityPattern, an immutable, validated compressed index structure
//     (major offsets + minor indices) shared by every matrix built on it.
//   - CsrMatrix (compressed sparse row) and CscMatrix (compressed sparse
//     column), each owning a shared pattern plus an aligned values slice.
//   - Op, a two-variant tagged operand (NoOp/Transposed) that carries the
//     transpose intent into arithmetic without materializing a copy up front.
//   - SpAdd*Prealloc and SpMM*Prealloc, which compute βC + α·op(A) and
//     βC + α·op(A)·op(B) into a pre-allocated output pattern.
//
// The prealloc convention trades dynamic flexibility for allocation-free,
// predictable-cost arithmetic: the output pattern must be decided before the
// operation runs and must contain every position the result can touch;
// a missing slot surfaces as an InvalidPattern operation error, never as a
// silently truncated result.
//
// All routines are synchronous and single-threaded. Concurrent calls on
// disjoint output matrices are safe; the same output matrix requires
// external synchronization (single-writer discipline).
package sparse
