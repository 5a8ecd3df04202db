package hyperdual

// ============================================================
// Typed seeding
// ============================================================

// SeedDual returns x with unit derivative.
func SeedDual[F Number[F]](x F) Dual[F] { return Dual[F]{re: x, eps: one[F]()} }

// SeedDualVec returns one jet per component of x. Jet i carries x[i] and the
// i-th standard basis vector as its gradient.
func SeedDualVec[A Array[Real]](x A) []DualVec[Real, A] {
	out := make([]DualVec[Real, A], len(x))
	for i := range out {
		out[i] = DualVec[Real, A]{re: x[i], eps: basis[Real, A](i)}
	}
	return out
}

// SeedHyperDual seeds both directions of x with 1, so the cross term of a
// result is its second derivative.
func SeedHyperDual[F Number[F]](x F) HyperDual[F] {
	return HyperDual[F]{re: x, eps1: one[F](), eps2: one[F]()}
}

// SeedHyperDualPair seeds x1 along the first direction and x2 along the
// second, so the cross term of a result is the mixed partial.
func SeedHyperDualPair[F Number[F]](x1, x2 F) (HyperDual[F], HyperDual[F]) {
	return HyperDual[F]{re: x1, eps1: one[F]()}, HyperDual[F]{re: x2, eps2: one[F]()}
}

// SeedHessian returns one jet per component of x with both gradients set to
// the i-th basis vector. The mixed block of a result is its Hessian. B cannot
// be inferred: SeedHessian[[3][3]Real](x).
func SeedHessian[B Block[A], A Array[Real]](x A) []HyperDualVec[Real, A, A, B] {
	var b B
	checkBlock(len(b), len(x))
	out := make([]HyperDualVec[Real, A, A, B], len(x))
	for i := range out {
		e := basis[Real, A](i)
		out[i] = HyperDualVec[Real, A, A, B]{re: x[i], eps1: e, eps2: e}
	}
	return out
}

// SeedHyperDualVec seeds x1 along the first direction group and x2 along the
// second. The mixed block of a result holds every cross partial between the
// two groups.
func SeedHyperDualVec[B Block[A2], A1 Array[Real], A2 Array[Real]](x1 A1, x2 A2) ([]HyperDualVec[Real, A1, A2, B], []HyperDualVec[Real, A1, A2, B]) {
	var b B
	checkBlock(len(b), len(x1))
	out1 := make([]HyperDualVec[Real, A1, A2, B], len(x1))
	for i := range out1 {
		out1[i] = HyperDualVec[Real, A1, A2, B]{re: x1[i], eps1: basis[Real, A1](i)}
	}
	out2 := make([]HyperDualVec[Real, A1, A2, B], len(x2))
	for j := range out2 {
		out2[j] = HyperDualVec[Real, A1, A2, B]{re: x2[j], eps2: basis[Real, A2](j)}
	}
	return out1, out2
}

// SeedThirdOrderJet returns x with unit first derivative and zero higher
// derivatives, so v1, v2 and v3 of f(x) are the first, second and third
// derivatives of f.
func SeedThirdOrderJet[F Number[F]](x F) ThirdOrderJet[F] {
	return ThirdOrderJet[F]{v0: x, v1: one[F]()}
}
