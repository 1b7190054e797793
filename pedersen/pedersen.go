// Package pedersen implements vector Pedersen commitments over BN254 G1 and
// the Fiat-Shamir Sigma-protocols built on top of them (equality, product,
// and inner-product relations), following
// original_source/src/pcs/hyrax/pedersen.rs.
package pedersen

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/crypto/chacha20"

	"github.com/luxfi/spartan/transcript"
	"github.com/luxfi/spartan/zkerr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// seedLabel is the fixed ASCII label the generator set is derived from, matching
// the reference implementation's SEED constant exactly so independent
// implementations of this module agree on the same basis.
var seedLabel = []byte("pedersen::PedersenCommitter::new")

// Committer holds a basis of generators derived deterministically from
// seedLabel via a ChaCha20 keystream: generators[0] commits the blinding
// factor, generators[1:] commit the value vector's coordinates.
type Committer struct {
	Generators []bn254.G1Affine
}

// New builds a Committer able to commit vectors of up to size elements (plus
// one blinding generator).
func New(size int) (*Committer, error) {
	if size <= 0 {
		return nil, zkerr.New(zkerr.InvalidSize, "committer size must be positive, got %d", size)
	}
	return &Committer{Generators: deriveGenerators(size + 1)}, nil
}

// deriveGenerators samples n nothing-up-my-sleeve G1 points by hashing a
// ChaCha20 keystream seeded with the fixed label into scalars and
// multiplying the curve's canonical generator, then sends those points
// through the curve's standard generator via scalar multiplication of the
// base point — a deterministic derivation any implementation reading seedLabel
// can reproduce without a trusted setup.
func deriveGenerators(n int) []bn254.G1Affine {
	var seed [32]byte
	copy(seed[:], seedLabel)
	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		panic(err)
	}

	_, _, base, _ := bn254.Generators()

	out := make([]bn254.G1Affine, n)
	zero := make([]byte, 32*n)
	stream := make([]byte, len(zero))
	cipher.XORKeyStream(stream, zero)
	for i := 0; i < n; i++ {
		var scalar fr.Element
		scalar.SetBytes(stream[i*32 : (i+1)*32])
		var point bn254.G1Affine
		point.ScalarMultiplication(&base, scalar.BigInt(new(big.Int)))
		out[i] = point
	}
	return out
}

// Commit returns blinding * generators[0] + sum(values[i] * generators[i+1]).
func (c *Committer) Commit(values []fr.Element, blinding fr.Element) (bn254.G1Affine, error) {
	if len(values) >= len(c.Generators) {
		return bn254.G1Affine{}, zkerr.New(zkerr.TooManyValues, "committer supports at most %d values, got %d", len(c.Generators)-1, len(values))
	}
	var commitment bn254.G1Affine
	commitment.ScalarMultiplication(&c.Generators[0], blinding.BigInt(new(big.Int)))
	for i, v := range values {
		var term bn254.G1Affine
		term.ScalarMultiplication(&c.Generators[i+1], v.BigInt(new(big.Int)))
		commitment.Add(&commitment, &term)
	}
	return commitment, nil
}

// CommitRandom samples a fresh blinding factor and returns the commitment
// together with the blinding factor used, mirroring the reference
// implementation's commit(rng, values).
func (c *Committer) CommitRandom(values []fr.Element) (commitment bn254.G1Affine, blinding fr.Element, err error) {
	blinding.SetRandom()
	commitment, err = c.Commit(values, blinding)
	return
}

// BatchCommit commits each row of a matrix (rows of equal length) and writes
// every commitment to the transcript, the row-wise batching Hyrax uses to
// commit a multilinear extension's coefficient matrix.
func (c *Committer) BatchCommit(tr *transcript.Prover, rows [][]fr.Element) ([]bn254.G1Affine, []fr.Element, error) {
	commitments := make([]bn254.G1Affine, len(rows))
	blindings := make([]fr.Element, len(rows))
	for i, row := range rows {
		commitment, blinding, err := c.CommitRandom(row)
		if err != nil {
			return nil, nil, err
		}
		commitments[i] = commitment
		blindings[i] = blinding
		tr.WriteG1(commitment)
	}
	return commitments, blindings, nil
}

// Verify reports whether commitment opens to values under blinding.
func (c *Committer) Verify(commitment bn254.G1Affine, values []fr.Element, blinding fr.Element) (bool, error) {
	expected, err := c.Commit(values, blinding)
	if err != nil {
		return false, err
	}
	return commitment.Equal(&expected), nil
}

func scalarMul(p bn254.G1Affine, s fr.Element) bn254.G1Affine {
	var out bn254.G1Affine
	out.ScalarMultiplication(&p, s.BigInt(new(big.Int)))
	return out
}

// ProveEqual produces a Fiat-Shamir proof that cu and cv commit to the same
// value, given their respective blinding factors ru and rv. Since the values
// agree, cu - cv = (ru - rv)*H; the proof is a Schnorr proof of knowledge of
// that discrete log relative to the blinding generator.
func (c *Committer) ProveEqual(tr *transcript.Prover, ru, rv fr.Element) {
	var k fr.Element
	k.SetRandom()
	t := scalarMul(c.Generators[0], k)
	tr.WriteG1(t)

	challenge := tr.Read()

	var blindingDiff, z fr.Element
	blindingDiff.Sub(&ru, &rv)
	z.Mul(&challenge, &blindingDiff)
	z.Add(&z, &k)

	tr.Write(z)
}

// VerifyEqual checks a proof produced by ProveEqual that cu and cv commit to
// the same value.
func (c *Committer) VerifyEqual(tr *transcript.Verifier, cu, cv bn254.G1Affine) (bool, error) {
	t, err := tr.ReadG1()
	if err != nil {
		return false, err
	}
	challenge := tr.Generate()
	z, err := tr.Read()
	if err != nil {
		return false, err
	}

	var diff bn254.G1Affine
	diff.Sub(&cu, &cv)
	rhs := scalarMul(diff, challenge)
	rhs.Add(&rhs, &t)

	lhs := scalarMul(c.Generators[0], z)
	return lhs.Equal(&rhs), nil
}

// ProveProduct proves that w = u*v for committed scalars u, v, w, following
// the Sigma-protocol in the reference implementation: disclose blinded
// combinations of the witnesses and three derived commitments, then let the
// verifier check three linear relations.
func (c *Committer) ProveProduct(tr *transcript.Prover, u, ru, v, rv, rw fr.Element) error {
	var a, b, s1, s2 fr.Element
	a.SetRandom()
	b.SetRandom()
	s1.SetRandom()
	s2.SetRandom()

	cu, err := c.Commit([]fr.Element{a}, s1)
	if err != nil {
		return err
	}
	cv, err := c.Commit([]fr.Element{b}, s2)
	if err != nil {
		return err
	}
	var s3 fr.Element
	s3.SetRandom()
	var ab fr.Element
	ab.Mul(&a, &v)
	var ba fr.Element
	ba.Mul(&b, &u)
	var cross fr.Element
	cross.Add(&ab, &ba)
	cw, err := c.Commit([]fr.Element{cross}, s3)
	if err != nil {
		return err
	}

	tr.WriteG1(cu)
	tr.WriteG1(cv)
	tr.WriteG1(cw)

	challenge := tr.Read()

	var za, zb, zs1, zs2, zs3 fr.Element
	za.Mul(&challenge, &u)
	za.Add(&za, &a)
	zb.Mul(&challenge, &v)
	zb.Add(&zb, &b)
	zs1.Mul(&challenge, &ru)
	zs1.Add(&zs1, &s1)
	zs2.Mul(&challenge, &rv)
	zs2.Add(&zs2, &s2)

	var challengeSq fr.Element
	challengeSq.Square(&challenge)
	var term fr.Element
	term.Mul(&challengeSq, &rw)
	zs3.Mul(&challenge, &s3)
	zs3.Add(&zs3, &term)

	tr.Write(za)
	tr.Write(zb)
	tr.Write(zs1)
	tr.Write(zs2)
	tr.Write(zs3)
	return nil
}

// VerifyProduct checks a ProveProduct proof against commitments to u, v, w.
func (c *Committer) VerifyProduct(tr *transcript.Verifier, cu, cv, cw bn254.G1Affine) (bool, error) {
	cuBlind, err := tr.ReadG1()
	if err != nil {
		return false, err
	}
	cvBlind, err := tr.ReadG1()
	if err != nil {
		return false, err
	}
	cwBlind, err := tr.ReadG1()
	if err != nil {
		return false, err
	}
	challenge := tr.Generate()

	za, err := tr.Read()
	if err != nil {
		return false, err
	}
	zb, err := tr.Read()
	if err != nil {
		return false, err
	}
	zs1, err := tr.Read()
	if err != nil {
		return false, err
	}
	zs2, err := tr.Read()
	if err != nil {
		return false, err
	}
	zs3, err := tr.Read()
	if err != nil {
		return false, err
	}

	lhs1, err := c.Commit([]fr.Element{za}, zs1)
	if err != nil {
		return false, err
	}
	rhs1 := scalarMul(cu, challenge)
	rhs1.Add(&rhs1, &cuBlind)
	if !lhs1.Equal(&rhs1) {
		return false, nil
	}

	lhs2, err := c.Commit([]fr.Element{zb}, zs2)
	if err != nil {
		return false, err
	}
	rhs2 := scalarMul(cv, challenge)
	rhs2.Add(&rhs2, &cvBlind)
	if !lhs2.Equal(&rhs2) {
		return false, nil
	}

	var crossTerm fr.Element
	crossTerm.Mul(&za, &zb)
	lhs3, err := c.Commit([]fr.Element{crossTerm}, zs3)
	if err != nil {
		return false, err
	}
	var challengeSq fr.Element
	challengeSq.Square(&challenge)
	rhs3 := scalarMul(cw, challengeSq)
	rhs3.Add(&rhs3, &cwBlind)
	return lhs3.Equal(&rhs3), nil
}

// ProveDotProduct proves that the inner product of the committed vector f
// (committed under blindF) against a public vector a equals the claimed
// scalar committed under cBlind, by masking with a random blinding vector and
// revealing the masked combination. This is the single-vector building block
// Hyrax's row-combined contraction proof reduces to.
func (c *Committer) ProveDotProduct(tr *transcript.Prover, f []fr.Element, blindF fr.Element, a []fr.Element, cBlind fr.Element) error {
	if len(f) != len(a) {
		return zkerr.New(zkerr.InvalidSize, "dot product operands must have equal length")
	}
	mask := make([]fr.Element, len(f))
	for i := range mask {
		mask[i].SetRandom()
	}
	var maskBlind fr.Element
	maskBlind.SetRandom()

	commitMask, err := c.Commit(mask, maskBlind)
	if err != nil {
		return err
	}
	var dotMask fr.Element
	for i := range mask {
		var term fr.Element
		term.Mul(&mask[i], &a[i])
		dotMask.Add(&dotMask, &term)
	}
	var dotMaskBlinding fr.Element
	dotMaskBlinding.SetRandom()
	dotMaskCommit, err := c.Commit([]fr.Element{dotMask}, dotMaskBlinding)
	if err != nil {
		return err
	}

	tr.WriteG1(commitMask)
	tr.WriteG1(dotMaskCommit)

	challenge := tr.Read()

	response := make([]fr.Element, len(f))
	for i := range response {
		response[i].Mul(&challenge, &f[i])
		response[i].Add(&response[i], &mask[i])
	}
	var blindingCombined, scaledBlindF fr.Element
	scaledBlindF.Mul(&challenge, &blindF)
	blindingCombined.Add(&scaledBlindF, &maskBlind)

	var dotResponseBlind fr.Element
	var scaled fr.Element
	scaled.Mul(&challenge, &cBlind)
	dotResponseBlind.Add(&scaled, &dotMaskBlinding)

	for _, v := range response {
		tr.Write(v)
	}
	tr.Write(blindingCombined)
	tr.Write(dotResponseBlind)
	return nil
}

// VerifyDotProduct checks a ProveDotProduct proof that the length-n vector
// committed in commitF has inner product with the public vector a equal to
// the scalar committed in commitC.
func (c *Committer) VerifyDotProduct(tr *transcript.Verifier, commitF bn254.G1Affine, a []fr.Element, commitC bn254.G1Affine, n int) (bool, error) {
	commitMask, err := tr.ReadG1()
	if err != nil {
		return false, err
	}
	dotMaskCommit, err := tr.ReadG1()
	if err != nil {
		return false, err
	}
	challenge := tr.Generate()

	response := make([]fr.Element, n)
	for i := range response {
		response[i], err = tr.Read()
		if err != nil {
			return false, err
		}
	}
	blindingCombined, err := tr.Read()
	if err != nil {
		return false, err
	}
	dotResponseBlind, err := tr.Read()
	if err != nil {
		return false, err
	}

	lhs, err := c.Commit(response, blindingCombined)
	if err != nil {
		return false, err
	}
	rhs := scalarMul(commitF, challenge)
	rhs.Add(&rhs, &commitMask)
	if !lhs.Equal(&rhs) {
		return false, nil
	}

	var dot fr.Element
	for i := range response {
		var term fr.Element
		term.Mul(&response[i], &a[i])
		dot.Add(&dot, &term)
	}
	lhs2, err := c.Commit([]fr.Element{dot}, dotResponseBlind)
	if err != nil {
		return false, err
	}
	rhs2 := scalarMul(commitC, challenge)
	rhs2.Add(&rhs2, &dotMaskCommit)
	return lhs2.Equal(&rhs2), nil
}
