// Package lvlmat is your in-memory toolkit for dense and sparse linear
// algebra — from core matrix primitives to the matrix exponential and
// pattern-aware sparse kernels.
//
// 🚀 What is lvlmat?
//
//	A focused numerical library that brings together:
//		• Core primitives: a row-major Dense matrix with validated access
//		• Kernels: add, subtract, multiply, scale, transpose, mat-vec
//		• Decompositions: pivoted LU, Householder QR, solve & inverse
//		• expm: the matrix exponential via Padé scaling-and-squaring
//		• sparse: CSR/CSC formats over shared immutable sparsity patterns,
//		  with in-place (prealloc) spadd and spmm kernels
//
// ✨ Why choose lvlmat?
//
//   - Beginner-friendly – minimal API, clear, intuitive naming
//   - Rock-solid guarantees – sentinel errors, fail-fast validation
//   - Predictable memory – sparse kernels never allocate in the hot path
//   - Proven numerics – published error bounds, not ad-hoc tolerances
//
// Under the hood, everything is organized under three subpackages:
//
//	matrix/     — the Dense type, arithmetic kernels and validators
//	matrix/ops/ — LU, QR, linear solve and inverse
//	expm/       — the matrix exponential driver and its Padé engine
//	sparse/     — sparsity patterns, CSR/CSC and prealloc arithmetic
//
// Quick usage sketch:
//
//	a, _ := matrix.FromRows([][]float64{{0, -1}, {1, 0}})
//	e, _ := expm.Exp(a)   // a rotation: e is cos/sin structured
//
// Dive into README.md for full examples and the package-by-package tour.
//
//	go get github.com/katalvlaran/lvlmat
package lvlmat
