package sumcheck

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/spartan/transcript"
	"github.com/luxfi/spartan/zkerr"
)

// ProveR1CS runs the sum-check protocol for the degree-3 claim
// sum(e .* (a.*b - c)) == s, the shape Spartan's R1CS check reduces to:
// e is the MLE of eq(r, x) for some outer random point r, and a, b, c are
// Az, Bz, Cz. All four tables are folded in place round by round.
//
// Per round the prover sends (p(0), p(-1), p(infinity)): three evaluations
// of a cubic, together with the invariant p(1) = claim - p(0), are enough to
// reconstruct all four coefficients (spec.md section 4.9's "cubic R1CS"
// case).
func ProveR1CS(tr *transcript.Prover, e, a, b, c []fr.Element, numVars int) (fr.Element, []fr.Element, error) {
	if err := checkLen(e, numVars); err != nil {
		return fr.Element{}, nil, err
	}
	if len(a) != len(e) || len(b) != len(e) || len(c) != len(e) {
		return fr.Element{}, nil, zkerr.New(zkerr.InvalidSize, "e, a, b, c must have equal length")
	}

	claim := r1csSum(e, a, b, c)
	tr.Write(claim)

	challenges := make([]fr.Element, numVars)
	te, ta, tb, tc := e, a, b, c
	for round := 0; round < numVars; round++ {
		half := len(te) / 2
		eLo, eHi := te[:half], te[half:]
		aLo, aHi := ta[:half], ta[half:]
		bLo, bHi := tb[:half], tb[half:]
		cLo, cHi := tc[:half], tc[half:]

		p0 := r1csSum(eLo, aLo, bLo, cLo)
		pNeg1 := r1csSumAt(eLo, eHi, aLo, aHi, bLo, bHi, cLo, cHi, negOne())
		pInf := r1csLeadingCoeff(eLo, eHi, aLo, aHi, bLo, bHi)

		tr.Write(p0)
		tr.Write(pNeg1)
		tr.Write(pInf)

		r := tr.Read()
		challenges[round] = r

		for i := 0; i < half; i++ {
			foldInPlace(&eLo[i], &eHi[i], r)
			foldInPlace(&aLo[i], &aHi[i], r)
			foldInPlace(&bLo[i], &bHi[i], r)
			foldInPlace(&cLo[i], &cHi[i], r)
		}
		te, ta, tb, tc = eLo, aLo, bLo, cLo

		var p1 fr.Element
		p1.Sub(&claim, &p0)
		claim = evalCubic(p0, p1, pNeg1, pInf, r)
	}
	return claim, challenges, nil
}

// VerifyR1CS mirrors ProveR1CS.
func VerifyR1CS(tr *transcript.Verifier, numVars int) (fr.Element, []fr.Element, error) {
	if numVars <= 0 {
		return fr.Element{}, nil, zkerr.New(zkerr.InvalidSize, "sum-check requires at least one variable")
	}
	claim, err := tr.Read()
	if err != nil {
		return fr.Element{}, nil, err
	}

	challenges := make([]fr.Element, numVars)
	for round := 0; round < numVars; round++ {
		p0, err := tr.Read()
		if err != nil {
			return fr.Element{}, nil, err
		}
		pNeg1, err := tr.Read()
		if err != nil {
			return fr.Element{}, nil, err
		}
		pInf, err := tr.Read()
		if err != nil {
			return fr.Element{}, nil, err
		}

		var p1 fr.Element
		p1.Sub(&claim, &p0)

		r := tr.Generate()
		challenges[round] = r
		claim = evalCubic(p0, p1, pNeg1, pInf, r)
	}
	return claim, challenges, nil
}

func r1csSum(e, a, b, c []fr.Element) fr.Element {
	var total fr.Element
	for i := range e {
		var ab, diff, term fr.Element
		ab.Mul(&a[i], &b[i])
		diff.Sub(&ab, &c[i])
		term.Mul(&e[i], &diff)
		total.Add(&total, &term)
	}
	return total
}

// negOne returns -1 in Fr.
func negOne() fr.Element {
	var one, out fr.Element
	one.SetOne()
	out.Neg(&one)
	return out
}

// interp evaluates the linear interpolation of (lo, hi) at x.
func interp(lo, hi, x fr.Element) fr.Element {
	var diff, scaled, out fr.Element
	diff.Sub(&hi, &lo)
	scaled.Mul(&x, &diff)
	out.Add(&lo, &scaled)
	return out
}

// r1csSumAt evaluates sum(e(x).*(a(x).*b(x) - c(x))) at the single point x,
// where each of e, a, b, c is affine in x between its low/high halves.
func r1csSumAt(eLo, eHi, aLo, aHi, bLo, bHi, cLo, cHi []fr.Element, x fr.Element) fr.Element {
	var total fr.Element
	for i := range eLo {
		ev := interp(eLo[i], eHi[i], x)
		av := interp(aLo[i], aHi[i], x)
		bv := interp(bLo[i], bHi[i], x)
		cv := interp(cLo[i], cHi[i], x)

		var ab, diff, term fr.Element
		ab.Mul(&av, &bv)
		diff.Sub(&ab, &cv)
		term.Mul(&ev, &diff)
		total.Add(&total, &term)
	}
	return total
}

// r1csLeadingCoeff computes the X^3 coefficient of e(X).*(a(X).*b(X) - c(X)):
// since c is affine in X it contributes no cubic term, leaving
// sum((eHi-eLo)*(aHi-aLo)*(bHi-bLo)).
func r1csLeadingCoeff(eLo, eHi, aLo, aHi, bLo, bHi []fr.Element) fr.Element {
	var total fr.Element
	for i := range eLo {
		var de, da, db, term fr.Element
		de.Sub(&eHi[i], &eLo[i])
		da.Sub(&aHi[i], &aLo[i])
		db.Sub(&bHi[i], &bLo[i])
		term.Mul(&de, &da)
		term.Mul(&term, &db)
		total.Add(&total, &term)
	}
	return total
}

// evalCubic reconstructs p(r) given p(0), p(1), p(-1) and the cubic's
// leading coefficient p(infinity):
//
//	c0 = p(0)
//	c3 = p(infinity)
//	c2 = (p(1)+p(-1))/2 - c0
//	c1 = (p(1)-p(-1))/2 - c3
func evalCubic(p0, p1, pNeg1, pInf, r fr.Element) fr.Element {
	var half fr.Element
	half.SetOne()
	two := half
	two.Double(&two)
	half.Inverse(&two)

	var sum, diff, c2, c1 fr.Element
	sum.Add(&p1, &pNeg1)
	c2.Mul(&sum, &half)
	c2.Sub(&c2, &p0)

	diff.Sub(&p1, &pNeg1)
	c1.Mul(&diff, &half)
	c1.Sub(&c1, &pInf)

	var r2, r3, t1, t2, t3, out fr.Element
	r2.Square(&r)
	r3.Mul(&r2, &r)
	t1.Mul(&c1, &r)
	t2.Mul(&c2, &r2)
	t3.Mul(&pInf, &r3)
	out.Add(&p0, &t1)
	out.Add(&out, &t2)
	out.Add(&out, &t3)
	return out
}
