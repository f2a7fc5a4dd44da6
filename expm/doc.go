// SPDX-License-Identifier: MIT

// Package expm computes the exponential of a square dense matrix.
//
// The implementation follows the scaling-and-squaring method of
// Al-Mohy & Higham ("A New Scaling and Squaring Algorithm for the Matrix
// Exponential", SIAM J. Matrix Anal. Appl. 31(3), 2009): a Padé rational
// approximant of minimal adequate order (3, 5, 7, 9 or 13) is selected by
// a cascade of published 1-norm error bounds; when even order 13 is not
// accurate enough at the input's scale, the matrix is scaled by 2⁻ˢ,
// approximated, and the result squared s times.
//
// The package provides:
//
//   - Exp — the driver, the only entry point most callers need.
//   - OneNorm — the matrix 1-norm (maximum absolute column sum).
//   - A memoized Padé helper that caches the even powers A², A⁴, A⁶, A⁸, A¹⁰
//     and their 2k-th-root norms across order attempts within one call.
//
// All state is call-local: concurrent Exp calls on distinct matrices are
// safe. The θ thresholds and coefficient tables are the published constants
// of the algorithm, not tunables.
package expm
