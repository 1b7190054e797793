// Package hyrax implements the Hyrax polynomial commitment scheme: a
// multilinear extension's coefficient matrix is committed row-by-row with
// Pedersen, and an evaluation a^T F b = c is proven by linearly combining the
// row commitments with the public vector a and delegating the remainder to a
// single Pedersen dot-product proof. Grounded in
// original_source/src/pcs/hyrax/mod.rs.
package hyrax

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/spartan/pedersen"
	"github.com/luxfi/spartan/transcript"
	"github.com/luxfi/spartan/zkerr"
)

// ComputeContraction evaluates a^T F b for a rows x cols matrix F stored
// row-major. ProveContraction uses it to compute the claimed value; the
// verifier does not call it.
func ComputeContraction(f []fr.Element, rows, cols int, a, b []fr.Element) (fr.Element, error) {
	if len(a) != rows || len(b) != cols || len(f) != rows*cols {
		return fr.Element{}, zkerr.New(zkerr.InvalidSize, "contraction operand size mismatch")
	}
	var total fr.Element
	for i := 0; i < rows; i++ {
		var rowDot fr.Element
		row := f[i*cols : (i+1)*cols]
		for j := 0; j < cols; j++ {
			var term fr.Element
			term.Mul(&row[j], &b[j])
			rowDot.Add(&rowDot, &term)
		}
		var scaled fr.Element
		scaled.Mul(&rowDot, &a[i])
		total.Add(&total, &scaled)
	}
	return total, nil
}

// Committer commits and proves evaluations of a rows x cols matrix.
type Committer struct {
	pedersen *pedersen.Committer
	rows     int
	cols     int
}

// New builds a Committer able to commit rows x cols matrices.
func New(rows, cols int) (*Committer, error) {
	p, err := pedersen.New(cols)
	if err != nil {
		return nil, err
	}
	return &Committer{pedersen: p, rows: rows, cols: cols}, nil
}

// Commitment is the row-wise Pedersen commitment to a matrix, together with
// the per-row blinding factors the prover retains to answer a contraction
// query.
type Commitment struct {
	Rows      []bn254.G1Affine
	blindings []fr.Element
}

// Commit commits a rows x cols matrix row-by-row, writing each row
// commitment to the transcript.
func (c *Committer) Commit(tr *transcript.Prover, f []fr.Element) (Commitment, error) {
	if len(f) != c.rows*c.cols {
		return Commitment{}, zkerr.New(zkerr.InvalidSize, "matrix has %d entries, expected %d", len(f), c.rows*c.cols)
	}
	matrixRows := make([][]fr.Element, c.rows)
	for i := 0; i < c.rows; i++ {
		matrixRows[i] = f[i*c.cols : (i+1)*c.cols]
	}
	commitments, blindings, err := c.pedersen.BatchCommit(tr, matrixRows)
	if err != nil {
		return Commitment{}, err
	}
	return Commitment{Rows: commitments, blindings: blindings}, nil
}

// ProveContraction proves that a^T F b = c for the matrix f (with secrets
// commitment) previously committed, writing the proof to tr.
func (c *Committer) ProveContraction(tr *transcript.Prover, f []fr.Element, commitment Commitment, a, b []fr.Element) error {
	claim, err := ComputeContraction(f, c.rows, c.cols, a, b)
	if err != nil {
		return err
	}
	var cBlind fr.Element
	cBlind.SetRandom()
	commitClaim, err := c.pedersen.Commit([]fr.Element{claim}, cBlind)
	if err != nil {
		return err
	}
	tr.WriteG1(commitClaim)

	combinedRow := make([]fr.Element, c.cols)
	var combinedBlind fr.Element
	for i := 0; i < c.rows; i++ {
		row := f[i*c.cols : (i+1)*c.cols]
		for j := range combinedRow {
			var term fr.Element
			term.Mul(&row[j], &a[i])
			combinedRow[j].Add(&combinedRow[j], &term)
		}
		var term fr.Element
		term.Mul(&commitment.blindings[i], &a[i])
		combinedBlind.Add(&combinedBlind, &term)
	}

	return c.pedersen.ProveDotProduct(tr, combinedRow, combinedBlind, b, cBlind)
}

// VerifyContraction verifies a ProveContraction proof against the row
// commitments and the public vectors a, b.
func (c *Committer) VerifyContraction(tr *transcript.Verifier, commitment Commitment, a, b []fr.Element) (bool, error) {
	if len(a) != len(commitment.Rows) {
		return false, zkerr.New(zkerr.InvalidSize, "a has %d entries, expected %d rows", len(a), len(commitment.Rows))
	}
	commitClaim, err := tr.ReadG1()
	if err != nil {
		return false, err
	}

	var combined bn254.G1Affine
	for i, row := range commitment.Rows {
		var scaled bn254.G1Affine
		scaled.ScalarMultiplication(&row, a[i].BigInt(new(big.Int)))
		if i == 0 {
			combined = scaled
		} else {
			combined.Add(&combined, &scaled)
		}
	}

	return c.pedersen.VerifyDotProduct(tr, combined, b, commitClaim, c.cols)
}
