package sumcheck

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/spartan/transcript"
	"github.com/luxfi/spartan/zkerr"
)

// ProveProduct runs the sum-check protocol for the degree-2 claim
// sum(f .* g) == s. f and g are folded in place round by round. Per round
// the prover sends (p(0), p(1), p(infinity)): p(0) and p(1) are the low/high
// half products, p(infinity) is the leading (X^2) coefficient, obtained from
// the difference of each half (spec.md section 4.9's "quadratic" case).
func ProveProduct(tr *transcript.Prover, f, g []fr.Element, numVars int) (fr.Element, []fr.Element, error) {
	if err := checkLen(f, numVars); err != nil {
		return fr.Element{}, nil, err
	}
	if len(g) != len(f) {
		return fr.Element{}, nil, zkerr.New(zkerr.InvalidSize, "f and g must have equal length, got %d and %d", len(f), len(g))
	}

	claim := dotSum(f, g)
	tr.Write(claim)

	challenges := make([]fr.Element, numVars)
	tf, tg := f, g
	for round := 0; round < numVars; round++ {
		half := len(tf) / 2
		fLo, fHi := tf[:half], tf[half:]
		gLo, gHi := tg[:half], tg[half:]

		p0 := dotSum(fLo, gLo)
		p1 := dotSum(fHi, gHi)
		pInf := dotDiffSum(fLo, fHi, gLo, gHi)

		tr.Write(p0)
		tr.Write(p1)
		tr.Write(pInf)

		r := tr.Read()
		challenges[round] = r

		for i := 0; i < half; i++ {
			foldInPlace(&fLo[i], &fHi[i], r)
			foldInPlace(&gLo[i], &gHi[i], r)
		}
		tf, tg = fLo, gLo

		claim = evalQuadratic(p0, p1, pInf, r)
	}
	return claim, challenges, nil
}

// VerifyProduct mirrors ProveProduct: each round reads (p0, p1, pInf),
// checks p0+p1 against the running claim, squeezes r, and folds the claim
// forward via the reconstructed quadratic.
func VerifyProduct(tr *transcript.Verifier, numVars int) (fr.Element, []fr.Element, error) {
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
		p1, err := tr.Read()
		if err != nil {
			return fr.Element{}, nil, err
		}
		pInf, err := tr.Read()
		if err != nil {
			return fr.Element{}, nil, err
		}

		var sum fr.Element
		sum.Add(&p0, &p1)
		if !sum.Equal(&claim) {
			return fr.Element{}, nil, zkerr.NewSumcheckFailed(round, "p(0)+p(1) = %s does not match running claim %s", sum.String(), claim.String())
		}

		r := tr.Generate()
		challenges[round] = r
		claim = evalQuadratic(p0, p1, pInf, r)
	}
	return claim, challenges, nil
}

func dotSum(a, b []fr.Element) fr.Element {
	var total fr.Element
	for i := range a {
		var term fr.Element
		term.Mul(&a[i], &b[i])
		total.Add(&total, &term)
	}
	return total
}

// dotDiffSum computes sum((aHi-aLo)*(bHi-bLo)), the leading coefficient of
// the quadratic formed by two linear interpolations.
func dotDiffSum(aLo, aHi, bLo, bHi []fr.Element) fr.Element {
	var total fr.Element
	for i := range aLo {
		var da, db, term fr.Element
		da.Sub(&aHi[i], &aLo[i])
		db.Sub(&bHi[i], &bLo[i])
		term.Mul(&da, &db)
		total.Add(&total, &term)
	}
	return total
}

// foldInPlace replaces lo with lo + r*(hi-lo), the linear interpolation of
// the pair at X=r.
func foldInPlace(lo, hi *fr.Element, r fr.Element) {
	var diff, scaled fr.Element
	diff.Sub(hi, lo)
	scaled.Mul(&r, &diff)
	lo.Add(lo, &scaled)
}

// evalQuadratic reconstructs p(r) for a quadratic p from p(0), p(1), and its
// leading coefficient p(infinity): p(X) = p0 + (p1-p0-pInf)*X + pInf*X^2.
func evalQuadratic(p0, p1, pInf, r fr.Element) fr.Element {
	var c1 fr.Element
	c1.Sub(&p1, &p0)
	c1.Sub(&c1, &pInf)

	var r2, term1, term2, out fr.Element
	r2.Square(&r)
	term1.Mul(&c1, &r)
	term2.Mul(&pInf, &r2)
	out.Add(&p0, &term1)
	out.Add(&out, &term2)
	return out
}
