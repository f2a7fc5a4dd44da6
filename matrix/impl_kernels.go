// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, elementwise absolute value and scalar scaling. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used across the module.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - All kernels use central validators and return plain sentinels wrapped
//     via matrixErrorf at the facade.
//   - Kernels never mutate operands; every result is a freshly allocated Dense.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for dot-product accumulation loops.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opAbs       = "Abs"
	opMatVec    = "MatVec"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are
// not mutated. Internal helper for Add/Sub to share validation, allocation,
// and fast-path.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Inputs:
//   - a, b: conformable matrices (non-nil; same rows/cols).
//   - sign: +1 for Add, −1 for Sub (callers must enforce).
//   - opTag: opAdd for Add, opSub for Sub (for error wrapping).
//
// Returns:
//   - *Dense: newly allocated result.
//   - error : validation/allocation failures wrapped with opAdd/opSub.
//
// Determinism:
//   - Fast-path: single flat slice walk 0..(r*c−1).
//   - Fallback: fixed nested loops i=0..r−1, j=0..c−1.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	// Validate shapes match
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Allocate result Dense
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			// direct element-wise addition on backing slices
			length := rows * cols
			for idx := 0; idx < length; idx++ { // deterministic 0..n-1
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int       // loop iterators (deterministic order)
	var av, bv float64 // element temporaries
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			// Read a(i,j).
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			// Read b(i,j).
			bv, err = b.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			// Write result(i,j).
			if err = res.Set(i, j, av+sign*bv); err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("Set(%d,%d): %w", i, j, err))
			}
		}
	}

	// Return result
	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c). The fast path is bandwidth-bound.
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c). The fast path is bandwidth-bound.
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul computes the matrix product C = A·B and returns a fresh Dense result.
//
// Implementation:
//   - Stage 1: ValidateBinaryMulCompat(a, b). Allocate result Dense.
//   - Stage 2: Fast-path i→k→j loop over flat slices when both are *Dense
//     (k-outer inner loop keeps B row-contiguous for cache friendliness).
//     Otherwise, fallback At/Set with fixed i→j→k order.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (a.Cols != b.Rows).
//
// Complexity:
//   - Time O(r*k*c), Space O(r*c) for the new result.
func Mul(a, b Matrix) (*Dense, error) {
	// Validate inner dimensions
	if err := ValidateBinaryMulCompat(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Allocate result Dense
	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Fast path: *Dense with *Dense → flat i→k→j accumulation.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var i, k, j int // loop iterators (deterministic order)
			var av float64  // pinned A(i,k) for the inner sweep
			for i = 0; i < rows; i++ {
				for k = 0; k < inner; k++ {
					av = da.data[i*inner+k]
					if av == 0 { // skip null contributions early
						continue
					}
					for j = 0; j < cols; j++ {
						res.data[i*cols+j] += av * db.data[k*cols+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j→k order.
	var i, j, k int    // loop iterators
	var sum float64    // dot-product accumulator
	var av, bv float64 // element temporaries
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			sum = ZeroSum               // reset accumulator
			for k = 0; k < inner; k++ { // sum A[i][k]*B[k][j]
				av, err = a.At(i, k)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				bv, err = b.At(k, j)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				sum += av * bv // accumulate product
			}
			if err = res.Set(i, j, sum); err != nil {
				return nil, matrixErrorf(opMul, fmt.Errorf("Set(%d,%d): %w", i, j, err))
			}
		}
	}

	// Return result
	return res, nil
}

// Scale computes C = s·A (scalar multiplication) and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale(a Matrix, s float64) (*Dense, error) {
	return mapElements(a, opScale, func(v float64) float64 { return s * v })
}

// Abs computes C[i,j] = |A[i,j]| and returns a fresh Dense result.
// Used by the exponential driver's error estimator, which operates on |A|.
//
// Errors:
//   - ErrNilMatrix (nil input).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Abs(a Matrix) (*Dense, error) {
	return mapElements(a, opAbs, math.Abs)
}

// mapElements applies f to every element of a into a fresh Dense.
// Shared body for Scale/Abs; keeps loop order and fast-path policy in one place.
// Complexity: O(r*c) time and space.
func mapElements(a Matrix, opTag string, f func(float64) float64) (*Dense, error) {
	// Validate operand
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Allocate result Dense
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense → single flat loop.
	if da, ok := a.(*Dense); ok {
		length := rows * cols
		for idx := 0; idx < length; idx++ { // deterministic 0..n-1
			res.data[idx] = f(da.data[idx])
		}

		return res, nil
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int   // loop iterators
	var av float64 // element temporary
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if err = res.Set(i, j, f(av)); err != nil {
				return nil, matrixErrorf(opTag, fmt.Errorf("Set(%d,%d): %w", i, j, err))
			}
		}
	}

	return res, nil
}

// Transpose computes C = Aᵀ and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input).
//
// Complexity:
//   - Time O(r*c), Space O(c*r).
func Transpose(a Matrix) (*Dense, error) {
	// Validate operand
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// Allocate result with swapped dimensions
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// Fast path: *Dense → flat read, strided write.
	if da, ok := a.(*Dense); ok {
		var i, j int // loop iterators
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = da.data[i*cols+j]
			}
		}

		return res, nil
	}

	// Fallback: interface path.
	var i, j int   // loop iterators
	var av float64 // element temporary
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if err = res.Set(j, i, av); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("Set(%d,%d): %w", j, i, err))
			}
		}
	}

	return res, nil
}

// MatVec computes y = A·x and returns a fresh slice of length A.Rows().
//
// Errors:
//   - ErrNilMatrix (nil input or nil vector), ErrDimensionMismatch
//     (len(x) != A.Cols()).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(a Matrix, x []float64) ([]float64, error) {
	// Validate operand and vector length
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := a.Rows(), a.Cols()
	if err := ValidateVecLen(x, cols); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	// Allocate result vector
	y := make([]float64, rows)

	// Fast path: *Dense → row-contiguous dot products.
	if da, ok := a.(*Dense); ok {
		var i, j int    // loop iterators
		var sum float64 // accumulator
		for i = 0; i < rows; i++ {
			sum = ZeroSum
			for j = 0; j < cols; j++ {
				sum += da.data[i*cols+j] * x[j]
			}
			y[i] = sum
		}

		return y, nil
	}

	// Fallback: interface path.
	var i, j int    // loop iterators
	var av float64  // element temporary
	var sum float64 // accumulator
	var err error
	for i = 0; i < rows; i++ {
		sum = ZeroSum
		for j = 0; j < cols; j++ {
			av, err = a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			sum += av * x[j]
		}
		y[i] = sum
	}

	return y, nil
}
