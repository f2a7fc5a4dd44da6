// SPDX-License-Identifier: MIT
// Package expm: 1-norm computation and the power-norm estimator.
// These are the measurement primitives the order-selection cascade is built
// on; they never mutate their inputs.

package expm

import (
	"fmt"

	"github.com/katalvlaran/lvlmat/matrix"
)

// onesValue seeds the estimator vector (a vector of all ones).
const onesValue = 1.0

// OneNorm returns the matrix 1-norm of m: max over columns of the sum of
// absolute values in the column.
// Stage 1 (Validate): reject nil input.
// Stage 2 (Execute): accumulate per-column absolute sums, track the maximum.
// Complexity: O(r*c) time, O(1) extra space.
func OneNorm(m matrix.Matrix) (float64, error) {
	// Validate operand.
	if err := matrix.ValidateNotNil(m); err != nil {
		return 0, fmt.Errorf("OneNorm: %w", err)
	}

	// Accumulate column sums with a fixed j→i order.
	var (
		i, j     int     // loop indices
		v        float64 // element temporary
		sum, max float64 // current column sum and running maximum
		err      error
	)
	for j = 0; j < m.Cols(); j++ {
		sum = matrix.NormZero
		for i = 0; i < m.Rows(); i++ {
			v, err = m.At(i, j)
			if err != nil {
				return 0, fmt.Errorf("OneNorm: At(%d,%d): %w", i, j, err)
			}
			if v < 0 { // |v| without a math.Abs call in the hot loop
				v = -v
			}
			sum += v
		}
		if j == 0 || sum > max { // first column seeds the maximum
			max = sum
		}
	}

	return max, nil
}

// oneNormPowerNonneg estimates ‖Mᵖ‖₁ for an elementwise non-negative matrix M
// without materializing the power: a ones-vector is left-multiplied by Mᵀ
// p times and the maximum component is returned. The estimate is exact for
// non-negative M because column sums of Mᵖ are reachable through the
// all-ones functional. Callers pass |A| (elementwise absolute value).
//
// Returns exactly 0 for the zero matrix without running the power iteration —
// downstream error bounds rely on "zero norm ⇒ zero error contribution".
//
// Complexity: O(p*n²) time, O(n) space — cheaper than forming Mᵖ (O(p*n³))
// for the small p used by the driver.
func oneNormPowerNonneg(m *matrix.Dense, p int) (float64, error) {
	// Short-circuit the zero matrix: its every power has norm zero.
	norm, err := OneNorm(m)
	if err != nil {
		return 0, fmt.Errorf("oneNormPowerNonneg: %w", err)
	}
	if norm == matrix.NormZero {
		return 0, nil
	}

	// Prepare the transposed operand and the ones seed vector.
	mt, err := matrix.Transpose(m)
	if err != nil {
		return 0, fmt.Errorf("oneNormPowerNonneg: %w", err)
	}
	v := make([]float64, m.Rows())
	for i := range v {
		v[i] = onesValue
	}

	// Execute p left-multiplications by Mᵀ.
	for k := 0; k < p; k++ {
		v, err = matrix.MatVec(mt, v)
		if err != nil {
			return 0, fmt.Errorf("oneNormPowerNonneg: %w", err)
		}
	}

	// Finalize: the maximum component is the estimate.
	max := v[0]
	for _, x := range v[1:] {
		if x > max {
			max = x
		}
	}

	return max, nil
}
