package sumcheck

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/spartan/transcript"
	"github.com/luxfi/spartan/zkerr"
)

// ProveLinear runs the sum-check protocol for the degree-1 claim
// sum(f) == s over f's numVars-variable Boolean hypercube. f is folded in
// place round by round (fi <- fi + r*(fi+half - fi)); the first element of
// the returned challenges is the round-0 challenge. The proof, written to
// tr, consists of the initial claim followed by (p(0), p(1)) per round.
func ProveLinear(tr *transcript.Prover, f []fr.Element, numVars int) (fr.Element, []fr.Element, error) {
	if err := checkLen(f, numVars); err != nil {
		return fr.Element{}, nil, err
	}
	claim := sumAll(f)
	tr.Write(claim)

	challenges := make([]fr.Element, numVars)
	table := f
	for round := 0; round < numVars; round++ {
		half := len(table) / 2
		lo, hi := table[:half], table[half:]

		p0 := sumAll(lo)
		p1 := sumAll(hi)
		tr.Write(p0)
		tr.Write(p1)

		r := tr.Read()
		challenges[round] = r

		for i := 0; i < half; i++ {
			var diff, scaled fr.Element
			diff.Sub(&hi[i], &lo[i])
			scaled.Mul(&r, &diff)
			lo[i].Add(&lo[i], &scaled)
		}
		table = lo

		var oneMinusR fr.Element
		oneMinusR.SetOne()
		oneMinusR.Sub(&oneMinusR, &r)
		var t0, t1 fr.Element
		t0.Mul(&oneMinusR, &p0)
		t1.Mul(&r, &p1)
		claim.Add(&t0, &t1)
	}
	return claim, challenges, nil
}

// VerifyLinear replays a ProveLinear proof against tr: at each round it
// reads (p0, p1), checks p0+p1 equals the running claim, squeezes the next
// challenge, and updates the claim to p(r). The final claim and the full
// challenge vector are returned for the caller to reconcile against an
// explicit MLE evaluation (an opening from a PCS).
func VerifyLinear(tr *transcript.Verifier, numVars int) (fr.Element, []fr.Element, error) {
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

		var sum fr.Element
		sum.Add(&p0, &p1)
		if !sum.Equal(&claim) {
			return fr.Element{}, nil, zkerr.NewSumcheckFailed(round, "p(0)+p(1) = %s does not match running claim %s", sum.String(), claim.String())
		}

		r := tr.Generate()
		challenges[round] = r

		var oneMinusR, t0, t1 fr.Element
		oneMinusR.SetOne()
		oneMinusR.Sub(&oneMinusR, &r)
		t0.Mul(&oneMinusR, &p0)
		t1.Mul(&r, &p1)
		claim.Add(&t0, &t1)
	}
	return claim, challenges, nil
}
