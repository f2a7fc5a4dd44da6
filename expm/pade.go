// SPDX-License-Identifier: MIT
// Package expm: memoized Padé numerator/denominator engine.
//
// Purpose:
//   - Cache the even powers A², A⁴, A⁶, A⁸, A¹⁰ so that later (higher) order
//     attempts reuse work done by earlier (lower) ones within a single call.
//   - Expose the tight/loose 2k-th-root norm accessors the driver's
//     order-selection cascade consumes.
//   - Evaluate the degree 3/5/7/9/13 Padé numerator U and denominator V from
//     fixed published coefficient tables.
//
// Memoization contract (safety-relevant):
//   - Every cached field is computed at most once and NEVER invalidated or
//     mutated for the remainder of the call.
//   - An exact norm, once computed, permanently supersedes the approximate
//     cache (one-way upgrade; the approximate slot is never read again).
//
// All state is owned by one padeHelper value, which lives for exactly one
// Exp invocation; accessors take *padeHelper so the memo writes are explicit
// (no interior-mutation tricks).

package expm

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlmat/matrix"
)

// Padé coefficient tables for orders 3, 5, 7, 9 and 13. These are the exact
// rational coefficients of the diagonal Padé approximants to eˣ; they are
// published constants of the algorithm, not tunables.
var (
	padeCoeff3 = [4]float64{120, 60, 12, 1}
	padeCoeff5 = [6]float64{30240, 15120, 3360, 420, 30, 1}
	padeCoeff7 = [8]float64{17297280, 8648640, 1995840, 277200, 25200, 1512, 56, 1}
	padeCoeff9 = [10]float64{
		17643225600, 8821612800, 2075673600, 302702400, 30270240,
		2162160, 110880, 3960, 90, 1,
	}
	padeCoeff13 = [14]float64{
		64764752532480000, 32382376266240000, 7771770303897600,
		1187353796428800, 129060195264000, 10559470521600, 670442572800,
		33522128640, 1323241920, 40840800, 960960, 16380, 182, 1,
	}
)

// memoNorm is a compute-once cache slot for a scalar norm.
type memoNorm struct {
	val float64
	set bool
}

// padeHelper owns the per-call cached state of the Padé engine.
// Lifetime: one Exp invocation; nothing it owns outlives the call.
type padeHelper struct {
	useExactNorm bool          // when true, loose accessors resolve to tight
	ident        *matrix.Dense // identity of A's dimension
	a            *matrix.Dense // the input matrix (owned by the helper)

	// Cached even powers; nil until first access, then fixed.
	a2, a4, a6, a8, a10 *matrix.Dense

	// Cached 2k-th-root norms: exact (tight) and approximate slots.
	d4Exact, d6Exact, d8Exact, d10Exact     memoNorm
	d4Approx, d6Approx, d8Approx, d10Approx memoNorm
}

// newPadeHelper builds the per-call engine state around matrix a.
// The helper takes ownership of a; callers must not mutate it afterwards.
// Complexity: O(n²) for the identity allocation.
func newPadeHelper(a *matrix.Dense, useExactNorm bool) (*padeHelper, error) {
	ident, err := matrix.NewIdentity(a.Rows())
	if err != nil {
		return nil, fmt.Errorf("newPadeHelper: %w", err)
	}

	return &padeHelper{useExactNorm: useExactNorm, ident: ident, a: a}, nil
}

// ---------- Cached even powers ----------
// Each accessor computes its power from the next-lower cached even power on
// the first call (A⁴ = A²·A², A⁶ = A⁴·A², A⁸ = A⁶·A², A¹⁰ = A⁶·A⁴) and
// returns the cached value ever after.

// pow2 returns the cached A², computing A·A on first access.
func (h *padeHelper) pow2() (*matrix.Dense, error) {
	if h.a2 == nil {
		p, err := matrix.Mul(h.a, h.a)
		if err != nil {
			return nil, fmt.Errorf("pow2: %w", err)
		}
		h.a2 = p
	}

	return h.a2, nil
}

// pow4 returns the cached A⁴ = A²·A².
func (h *padeHelper) pow4() (*matrix.Dense, error) {
	if h.a4 == nil {
		a2, err := h.pow2()
		if err != nil {
			return nil, err
		}
		p, err := matrix.Mul(a2, a2)
		if err != nil {
			return nil, fmt.Errorf("pow4: %w", err)
		}
		h.a4 = p
	}

	return h.a4, nil
}

// pow6 returns the cached A⁶ = A⁴·A².
func (h *padeHelper) pow6() (*matrix.Dense, error) {
	if h.a6 == nil {
		a2, err := h.pow2()
		if err != nil {
			return nil, err
		}
		a4, err := h.pow4()
		if err != nil {
			return nil, err
		}
		p, err := matrix.Mul(a4, a2)
		if err != nil {
			return nil, fmt.Errorf("pow6: %w", err)
		}
		h.a6 = p
	}

	return h.a6, nil
}

// pow8 returns the cached A⁸ = A⁶·A².
func (h *padeHelper) pow8() (*matrix.Dense, error) {
	if h.a8 == nil {
		a2, err := h.pow2()
		if err != nil {
			return nil, err
		}
		a6, err := h.pow6()
		if err != nil {
			return nil, err
		}
		p, err := matrix.Mul(a6, a2)
		if err != nil {
			return nil, fmt.Errorf("pow8: %w", err)
		}
		h.a8 = p
	}

	return h.a8, nil
}

// pow10 returns the cached A¹⁰ = A⁶·A⁴.
func (h *padeHelper) pow10() (*matrix.Dense, error) {
	if h.a10 == nil {
		a4, err := h.pow4()
		if err != nil {
			return nil, err
		}
		a6, err := h.pow6()
		if err != nil {
			return nil, err
		}
		p, err := matrix.Mul(a6, a4)
		if err != nil {
			return nil, fmt.Errorf("pow10: %w", err)
		}
		h.a10 = p
	}

	return h.a10, nil
}

// ---------- Tight and loose 2k-th-root norms ----------
// dKTight always computes the exact ‖A^{2k}‖₁^{1/2k} from the cached power.
// dKLoose resolves to the tight value when useExactNorm is set or an exact
// value already exists; otherwise it fills the approximate slot. The
// approximate slot currently evaluates the same quantity from the cached
// power — it exists as the seam where a cheaper estimate can be plugged in
// without touching the driver.

// rootNorm fills slot with OneNorm(power(h))^(1/(2k)) on first use.
func rootNorm(slot *memoNorm, power func() (*matrix.Dense, error), exponent float64) (float64, error) {
	if !slot.set {
		p, err := power()
		if err != nil {
			return 0, err
		}
		norm, err := OneNorm(p)
		if err != nil {
			return 0, err
		}
		slot.val = math.Pow(norm, exponent)
		slot.set = true
	}

	return slot.val, nil
}

// looseNorm implements the one-way upgrade policy shared by all dKLoose
// accessors: exact wins if present (or demanded), approx fills otherwise.
func (h *padeHelper) looseNorm(exact, approx *memoNorm, power func() (*matrix.Dense, error), exponent float64) (float64, error) {
	if h.useExactNorm {
		return rootNorm(exact, power, exponent)
	}
	if exact.set { // an exact value permanently supersedes the approximation
		return exact.val, nil
	}

	return rootNorm(approx, power, exponent)
}

func (h *padeHelper) d4Tight() (float64, error) {
	return rootNorm(&h.d4Exact, h.pow4, 1.0/4.0)
}

func (h *padeHelper) d6Tight() (float64, error) {
	return rootNorm(&h.d6Exact, h.pow6, 1.0/6.0)
}

func (h *padeHelper) d8Tight() (float64, error) {
	return rootNorm(&h.d8Exact, h.pow8, 1.0/8.0)
}

func (h *padeHelper) d10Tight() (float64, error) {
	return rootNorm(&h.d10Exact, h.pow10, 1.0/10.0)
}

func (h *padeHelper) d4Loose() (float64, error) {
	return h.looseNorm(&h.d4Exact, &h.d4Approx, h.pow4, 1.0/4.0)
}

func (h *padeHelper) d6Loose() (float64, error) {
	return h.looseNorm(&h.d6Exact, &h.d6Approx, h.pow6, 1.0/6.0)
}

func (h *padeHelper) d8Loose() (float64, error) {
	return h.looseNorm(&h.d8Exact, &h.d8Approx, h.pow8, 1.0/8.0)
}

func (h *padeHelper) d10Loose() (float64, error) {
	return h.looseNorm(&h.d10Exact, &h.d10Approx, h.pow10, 1.0/10.0)
}

// ---------- Padé numerator/denominator evaluation ----------

// accumulate computes Σ coeff[i]·term[i] over aligned slices into a fresh
// matrix. Shared Horner-building block for all orders.
func accumulate(terms []*matrix.Dense, coeffs []float64) (*matrix.Dense, error) {
	// Seed the sum with the first scaled term.
	sum, err := matrix.Scale(terms[0], coeffs[0])
	if err != nil {
		return nil, err
	}
	// Fold the remaining scaled terms in fixed order.
	for i := 1; i < len(terms); i++ {
		t, err := matrix.Scale(terms[i], coeffs[i])
		if err != nil {
			return nil, err
		}
		sum, err = matrix.Add(sum, t)
		if err != nil {
			return nil, err
		}
	}

	return sum, nil
}

// pade3 evaluates the order-3 approximant:
// U = A·(b₃A² + b₁I), V = b₂A² + b₀I.
func (h *padeHelper) pade3() (u, v *matrix.Dense, err error) {
	b := padeCoeff3
	a2, err := h.pow2()
	if err != nil {
		return nil, nil, fmt.Errorf("pade3: %w", err)
	}
	inner, err := accumulate([]*matrix.Dense{a2, h.ident}, []float64{b[3], b[1]})
	if err != nil {
		return nil, nil, fmt.Errorf("pade3: %w", err)
	}
	if u, err = matrix.Mul(h.a, inner); err != nil {
		return nil, nil, fmt.Errorf("pade3: %w", err)
	}
	if v, err = accumulate([]*matrix.Dense{a2, h.ident}, []float64{b[2], b[0]}); err != nil {
		return nil, nil, fmt.Errorf("pade3: %w", err)
	}

	return u, v, nil
}

// pade5 evaluates the order-5 approximant:
// U = A·(b₅A⁴ + b₃A² + b₁I), V = b₄A⁴ + b₂A² + b₀I.
func (h *padeHelper) pade5() (u, v *matrix.Dense, err error) {
	b := padeCoeff5
	a2, err := h.pow2()
	if err != nil {
		return nil, nil, fmt.Errorf("pade5: %w", err)
	}
	a4, err := h.pow4()
	if err != nil {
		return nil, nil, fmt.Errorf("pade5: %w", err)
	}
	inner, err := accumulate([]*matrix.Dense{a4, a2, h.ident}, []float64{b[5], b[3], b[1]})
	if err != nil {
		return nil, nil, fmt.Errorf("pade5: %w", err)
	}
	if u, err = matrix.Mul(h.a, inner); err != nil {
		return nil, nil, fmt.Errorf("pade5: %w", err)
	}
	if v, err = accumulate([]*matrix.Dense{a4, a2, h.ident}, []float64{b[4], b[2], b[0]}); err != nil {
		return nil, nil, fmt.Errorf("pade5: %w", err)
	}

	return u, v, nil
}

// pade7 evaluates the order-7 approximant:
// U = A·(b₇A⁶ + b₅A⁴ + b₃A² + b₁I), V = b₆A⁶ + b₄A⁴ + b₂A² + b₀I.
func (h *padeHelper) pade7() (u, v *matrix.Dense, err error) {
	b := padeCoeff7
	a2, err := h.pow2()
	if err != nil {
		return nil, nil, fmt.Errorf("pade7: %w", err)
	}
	a4, err := h.pow4()
	if err != nil {
		return nil, nil, fmt.Errorf("pade7: %w", err)
	}
	a6, err := h.pow6()
	if err != nil {
		return nil, nil, fmt.Errorf("pade7: %w", err)
	}
	inner, err := accumulate(
		[]*matrix.Dense{a6, a4, a2, h.ident},
		[]float64{b[7], b[5], b[3], b[1]},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("pade7: %w", err)
	}
	if u, err = matrix.Mul(h.a, inner); err != nil {
		return nil, nil, fmt.Errorf("pade7: %w", err)
	}
	v, err = accumulate(
		[]*matrix.Dense{a6, a4, a2, h.ident},
		[]float64{b[6], b[4], b[2], b[0]},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("pade7: %w", err)
	}

	return u, v, nil
}

// pade9 evaluates the order-9 approximant:
// U = A·(b₉A⁸ + b₇A⁶ + b₅A⁴ + b₃A² + b₁I),
// V = b₈A⁸ + b₆A⁶ + b₄A⁴ + b₂A² + b₀I.
func (h *padeHelper) pade9() (u, v *matrix.Dense, err error) {
	b := padeCoeff9
	a2, err := h.pow2()
	if err != nil {
		return nil, nil, fmt.Errorf("pade9: %w", err)
	}
	a4, err := h.pow4()
	if err != nil {
		return nil, nil, fmt.Errorf("pade9: %w", err)
	}
	a6, err := h.pow6()
	if err != nil {
		return nil, nil, fmt.Errorf("pade9: %w", err)
	}
	a8, err := h.pow8()
	if err != nil {
		return nil, nil, fmt.Errorf("pade9: %w", err)
	}
	inner, err := accumulate(
		[]*matrix.Dense{a8, a6, a4, a2, h.ident},
		[]float64{b[9], b[7], b[5], b[3], b[1]},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("pade9: %w", err)
	}
	if u, err = matrix.Mul(h.a, inner); err != nil {
		return nil, nil, fmt.Errorf("pade9: %w", err)
	}
	v, err = accumulate(
		[]*matrix.Dense{a8, a6, a4, a2, h.ident},
		[]float64{b[8], b[6], b[4], b[2], b[0]},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("pade9: %w", err)
	}

	return u, v, nil
}

// pade13Scaled evaluates the order-13 approximant of the scaled matrix
// B = A·2⁻ˢ. Each cached power is rescaled independently (A^{2k} by 2^{-2ks})
// instead of rescaling A and recomputing powers — the cached chain stays
// untouched for the rest of the call.
//
// U = B·(B⁶·(b₁₃B⁶ + b₁₁B⁴ + b₉B²) + b₇B⁶ + b₅B⁴ + b₃B² + b₁I)
// V =    B⁶·(b₁₂B⁶ + b₁₀B⁴ + b₈B²) + b₆B⁶ + b₄B⁴ + b₂B² + b₀I
func (h *padeHelper) pade13Scaled(s int) (u, v *matrix.Dense, err error) {
	b := padeCoeff13
	sf := float64(s)

	// Gather the cached power chain.
	a2, err := h.pow2()
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	a4, err := h.pow4()
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	a6, err := h.pow6()
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}

	// Rescale per power: B = 2⁻ˢA, B² = 2⁻²ˢA², B⁴ = 2⁻⁴ˢA⁴, B⁶ = 2⁻⁶ˢA⁶.
	mb, err := matrix.Scale(h.a, math.Exp2(-sf))
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	mb2, err := matrix.Scale(a2, math.Exp2(-2*sf))
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	mb4, err := matrix.Scale(a4, math.Exp2(-4*sf))
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	mb6, err := matrix.Scale(a6, math.Exp2(-6*sf))
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}

	// U = B·(B⁶·(b₁₃B⁶ + b₁₁B⁴ + b₉B²) + b₇B⁶ + b₅B⁴ + b₃B² + b₁I).
	u2inner, err := accumulate([]*matrix.Dense{mb6, mb4, mb2}, []float64{b[13], b[11], b[9]})
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	u2, err := matrix.Mul(mb6, u2inner)
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	uTail, err := accumulate(
		[]*matrix.Dense{mb6, mb4, mb2, h.ident},
		[]float64{b[7], b[5], b[3], b[1]},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	uSum, err := matrix.Add(u2, uTail)
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	if u, err = matrix.Mul(mb, uSum); err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}

	// V = B⁶·(b₁₂B⁶ + b₁₀B⁴ + b₈B²) + b₆B⁶ + b₄B⁴ + b₂B² + b₀I.
	v2inner, err := accumulate([]*matrix.Dense{mb6, mb4, mb2}, []float64{b[12], b[10], b[8]})
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	v2, err := matrix.Mul(mb6, v2inner)
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	vTail, err := accumulate(
		[]*matrix.Dense{mb6, mb4, mb2, h.ident},
		[]float64{b[6], b[4], b[2], b[0]},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}
	if v, err = matrix.Add(v2, vTail); err != nil {
		return nil, nil, fmt.Errorf("pade13Scaled: %w", err)
	}

	return u, v, nil
}
