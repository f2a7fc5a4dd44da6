// SPDX-License-Identifier: MIT
// Package expm: the scaling-and-squaring driver.
//
// The driver tries Padé orders 3, 5, 7, 9 in sequence; the first order whose
// 1-norm error bound θₘ admits the input (and whose ell correction is zero)
// wins. Otherwise order 13 is used with a scaling exponent s chosen from θ₁₃
// and refined by ell at the chosen scale, followed by s repeated squarings.
//
// The θ thresholds and the ell construction are from Al-Mohy & Higham (2009);
// reproduce them digit-for-digit — they are proven error bounds, not tunables.

package expm

import (
	"fmt"
	"math"
	"math/big"

	"github.com/katalvlaran/lvlmat/matrix"
	"github.com/katalvlaran/lvlmat/matrix/ops"
)

// Order-selection thresholds θₘ: the largest ‖A‖-scale at which the order-m
// diagonal Padé approximant keeps the backward error under unit roundoff.
const (
	theta3  = 1.495585217958292e-02
	theta5  = 2.539398330063230e-01
	theta7  = 9.504178996162932e-01
	theta9  = 2.097847961257068e+00
	theta13 = 4.25
)

// unitRoundoff is the double-precision unit roundoff u = 2⁻⁵³.
const unitRoundoff = 0x1p-53

// Exp returns the matrix exponential of the square matrix m.
//
// Implementation:
//   - Stage 1 (Validate): non-nil square input; 1×1 short-circuits to the
//     scalar exponential.
//   - Stage 2 (Select): walk the order cascade over the memoized Padé engine.
//   - Stage 3 (Solve): form the rational approximant via (V-U)·X = (U+V).
//   - Stage 4 (Square): for order 13, square the result s times.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare on malformed input.
//   - matrix.ErrSingular when the Padé denominator cannot be solved; such an
//     input lies outside the algorithm's validity domain and the call fails
//     fast rather than returning a degraded result.
//
// Concurrency: all state is call-local; concurrent calls on distinct
// matrices are safe.
// Complexity: O(n³) per matrix multiply; at most a handful of n×n temporaries.
func Exp(m *matrix.Dense) (*matrix.Dense, error) {
	// Stage 1: Validate input shape. The concrete-pointer nil check comes
	// first: a nil *Dense wrapped in the interface slips past ValidateNotNil.
	if m == nil {
		return nil, fmt.Errorf("Exp: %w", matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}

	// 1×1 matrix: apply the scalar exponential directly.
	if m.Rows() == 1 {
		x, _ := m.At(0, 0)
		out, err := matrix.NewDense(1, 1)
		if err != nil {
			return nil, fmt.Errorf("Exp: %w", err)
		}
		_ = out.Set(0, 0, math.Exp(x))

		return out, nil
	}

	// Stage 2: Build the per-call Padé engine around a private copy.
	h, err := newPadeHelper(m.CloneDense(), true)
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}

	// 2.1: Order 3 — η₁ = max(d4Loose, d6Loose).
	d4, err := h.d4Loose()
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	d6, err := h.d6Loose()
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	eta1 := math.Max(d4, d6)
	if eta1 < theta3 {
		bound, err := ell(h.a, 3)
		if err != nil {
			return nil, fmt.Errorf("Exp: %w", err)
		}
		if bound == 0 {
			u, v, err := h.pade3()
			if err != nil {
				return nil, fmt.Errorf("Exp: %w", err)
			}
			return solvePQ(u, v)
		}
	}

	// 2.2: Order 5 — η₂ = max(d4Tight, d6Loose).
	d4, err = h.d4Tight()
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	d6, err = h.d6Loose()
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	eta2 := math.Max(d4, d6)
	if eta2 < theta5 {
		bound, err := ell(h.a, 5)
		if err != nil {
			return nil, fmt.Errorf("Exp: %w", err)
		}
		if bound == 0 {
			u, v, err := h.pade5()
			if err != nil {
				return nil, fmt.Errorf("Exp: %w", err)
			}
			return solvePQ(u, v)
		}
	}

	// 2.3: Orders 7 and 9 — η₃ = max(d6Tight, d8Loose).
	d6, err = h.d6Tight()
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	d8, err := h.d8Loose()
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	eta3 := math.Max(d6, d8)
	if eta3 < theta7 {
		bound, err := ell(h.a, 7)
		if err != nil {
			return nil, fmt.Errorf("Exp: %w", err)
		}
		if bound == 0 {
			u, v, err := h.pade7()
			if err != nil {
				return nil, fmt.Errorf("Exp: %w", err)
			}
			return solvePQ(u, v)
		}
	}
	if eta3 < theta9 {
		bound, err := ell(h.a, 9)
		if err != nil {
			return nil, fmt.Errorf("Exp: %w", err)
		}
		if bound == 0 {
			u, v, err := h.pade9()
			if err != nil {
				return nil, fmt.Errorf("Exp: %w", err)
			}
			return solvePQ(u, v)
		}
	}

	// 2.4: Order 13 — choose the scaling exponent s from η₅ = min(η₃, η₄).
	d8, err = h.d8Loose()
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	d10, err := h.d10Loose()
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	eta4 := math.Max(d8, d10)
	eta5 := math.Min(eta3, eta4)

	s := 0
	if eta5 > 0 { // η₅ == 0 ⇒ no scaling needed
		if l2 := math.Ceil(math.Log2(eta5 / theta13)); l2 > 0 {
			s = int(l2)
		}
	}

	// 2.5: Refine s by the truncation-error correction at the chosen scale.
	scaled, err := matrix.Scale(h.a, math.Exp2(-float64(s)))
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	bound, err := ell(scaled, 13)
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	s += bound

	// Stage 3: Evaluate the scaled order-13 approximant and solve.
	u, v, err := h.pade13Scaled(s)
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	x, err := solvePQ(u, v)
	if err != nil {
		return nil, err
	}

	// Stage 4: Undo the scaling — exp(A) = exp(A·2⁻ˢ)^(2ˢ).
	for i := 0; i < s; i++ {
		if x, err = matrix.Mul(x, x); err != nil {
			return nil, fmt.Errorf("Exp: %w", err)
		}
	}

	return x, nil
}

// solvePQ forms the Padé rational approximant R = (V-U)⁻¹(U+V) by solving
// the linear system (V-U)·X = (U+V). A singular denominator propagates as
// matrix.ErrSingular out of the exponential (fail fast; see Exp).
func solvePQ(u, v *matrix.Dense) (*matrix.Dense, error) {
	p, err := matrix.Add(u, v)
	if err != nil {
		return nil, fmt.Errorf("solvePQ: %w", err)
	}
	q, err := matrix.Sub(v, u)
	if err != nil {
		return nil, fmt.Errorf("solvePQ: %w", err)
	}

	x, err := ops.Solve(q, p)
	if err != nil {
		return nil, fmt.Errorf("solvePQ: %w", err)
	}

	return x, nil
}

// ell returns the integer number of correctional squarings required to keep
// the order-m Padé truncation error below unit roundoff:
//
//	α = (‖|A|^{2m+1}‖₁ / ‖A‖₁) / (C(2m,m)·(2m+1)!)
//	ell = max(0, ⌈log₂(α/u) / (2m)⌉)     with u = 2⁻⁵³
//
// The estimator works on |A| (elementwise absolute value) and returns 0
// immediately when ‖|A|^{2m+1}‖₁ is zero.
// The combinatorial constant is computed exactly in big integers (27! for
// m=13 overflows uint64) and converted to float64 once.
func ell(a *matrix.Dense, m int) (int, error) {
	// Estimate ‖|A|^{2m+1}‖₁ without forming the power.
	absA, err := matrix.Abs(a)
	if err != nil {
		return 0, fmt.Errorf("ell: %w", err)
	}
	powerNorm, err := oneNormPowerNonneg(absA, 2*m+1)
	if err != nil {
		return 0, fmt.Errorf("ell: %w", err)
	}
	if powerNorm == 0 { // zero norm ⇒ zero error contribution
		return 0, nil
	}

	norm, err := OneNorm(a)
	if err != nil {
		return 0, fmt.Errorf("ell: %w", err)
	}

	// c = C(2m,m)·(2m+1)! exactly, then one conversion to float64.
	choose := new(big.Int).Quo(
		factorial(2*m),
		new(big.Int).Mul(factorial(m), factorial(m)),
	)
	absCRecip := new(big.Int).Mul(choose, factorial(2*m+1))
	c, _ := new(big.Float).SetInt(absCRecip).Float64()

	alpha := (powerNorm / norm) / c

	// Number of extra squarings to push α under unit roundoff.
	value := math.Ceil(math.Log2(alpha/unitRoundoff) / float64(2*m))
	if value > 0 {
		return int(value), nil
	}

	return 0, nil
}

// factorial returns n! as an exact big integer. Arguments are small fixed
// values derived from the Padé orders (at most 2·13+1 = 27).
func factorial(n int) *big.Int {
	return new(big.Int).MulRange(1, int64(n))
}
