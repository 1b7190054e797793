// Package ligero implements the Ligero polynomial commitment scheme: a
// message is reshaped into a matrix shaped by DeriveParams, each row is Reed-Solomon
// encoded, the encoded matrix is transposed to column-major order, and a
// Merkle tree is built over Poseidon2-compressed columns. Grounded in
// original_source/src/pcs/ligero.rs.
package ligero

import (
	"math"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/spartan/merkle"
	"github.com/luxfi/spartan/ntt"
	"github.com/luxfi/spartan/poseidon2"
	"github.com/luxfi/spartan/reedsolomon"
	"github.com/luxfi/spartan/transcript"
	"github.com/luxfi/spartan/zkerr"
)

// Expansion is the Reed-Solomon code rate's inverse (rho = 1/Expansion),
// matching the reference implementation's fixed expansion factor of 4.
const Expansion = 4

// Params captures the matrix shape a message of a given length is reshaped
// into: rows is the largest power of two not exceeding sqrt(2*len(message)/QueryCount),
// per DeriveParams.
type Params struct {
	Rows        int
	Cols        int
	EncodedCols int
	QueryCount  int
	MessageLen  int
}

// DeriveParams computes the Ligero matrix shape and query count for a
// message of length n at the requested soundness level, per spec.md section
// 4.8: the query count is Q = ceil(soundnessBits / (1 - log2(1 + 1/rho)))
// with rho = Expansion, the row count is the largest power of two not
// exceeding sqrt(2n/Q), and the number of random linear combinations the
// verifier needs to check,
// 1 + floor((soundnessBits-1) / (log2(field_order) - log2(code_length))),
// must come out to exactly 1 — anything larger means a single combined-row
// check (ProveContraction/VerifyContraction) is not enough to reach the
// requested soundness, which this module does not implement.
func DeriveParams(n int, soundnessBits int) (Params, error) {
	if n <= 0 {
		return Params{}, zkerr.New(zkerr.InvalidSize, "message length must be positive")
	}
	if soundnessBits <= 0 {
		return Params{}, zkerr.New(zkerr.InvalidSize, "soundnessBits must be positive")
	}

	rho := 1.0 / float64(Expansion)
	queryCount := int(math.Ceil(float64(soundnessBits) / (1 - math.Log2(1+rho))))
	if queryCount < 1 {
		queryCount = 1
	}

	// rows is the largest power of two with rows*rows*queryCount <= 2n, i.e.
	// rows <= sqrt(2n/Q).
	rows := 1
	for (rows*2)*(rows*2)*queryCount <= 2*n {
		rows *= 2
	}
	if n%rows != 0 {
		return Params{}, zkerr.New(zkerr.InvalidSize, "message length %d is not a multiple of derived row count %d", n, rows)
	}
	cols := n / rows
	codeLength := cols * Expansion

	fieldOrderBits := float64(fr.Modulus().BitLen())
	gap := fieldOrderBits - math.Log2(float64(codeLength))
	combinations := 1 + int(math.Floor(float64(soundnessBits-1)/gap))
	if combinations != 1 {
		return Params{}, zkerr.New(zkerr.ParameterError, "message length %d at %d-bit soundness needs %d random combinations, only 1 is supported", n, soundnessBits, combinations)
	}

	return Params{Rows: rows, Cols: cols, EncodedCols: codeLength, QueryCount: queryCount, MessageLen: n}, nil
}

// Commitment is a Ligero commitment: the Merkle tree over encoded,
// transposed columns, plus the shape parameters needed to interpret an
// opening.
type Commitment struct {
	Tree   *merkle.Tree
	Params Params
}

// Commit reshapes message into a Params.Rows x Params.Cols matrix, encodes
// each row with reedsolomon.Encode, transposes the encoded matrix to
// column-major order, and builds a Merkle tree whose leaves are the
// Poseidon2 compression of each column.
func Commit(message []fr.Element, params Params) (Commitment, error) {
	if len(message) != params.MessageLen {
		return Commitment{}, zkerr.New(zkerr.InvalidSize, "message length %d does not match params %d", len(message), params.MessageLen)
	}
	encoded := make([]fr.Element, params.Rows*params.EncodedCols)
	for r := 0; r < params.Rows; r++ {
		row := message[r*params.Cols : (r+1)*params.Cols]
		dst := encoded[r*params.EncodedCols : (r+1)*params.EncodedCols]
		if err := reedsolomon.Encode(row, dst); err != nil {
			return Commitment{}, err
		}
	}

	ntt.Transpose(encoded, params.Rows, params.EncodedCols)

	leaves := make([]fr.Element, params.EncodedCols)
	for col := 0; col < params.EncodedCols; col++ {
		columnValues := encoded[col*params.Rows : (col+1)*params.Rows]
		leaves[col] = compressColumn(columnValues)
	}

	tree, err := merkle.New(leaves)
	if err != nil {
		return Commitment{}, err
	}
	return Commitment{Tree: tree, Params: params}, nil
}

func compressColumn(column []fr.Element) fr.Element {
	return poseidon2.Compress(column)
}

// ProveContraction proves a linear combination of the committed message's
// rows, scaled by coeffs, equals the claimed combinedRow, then opens every
// column listed in queryIndices so the verifier can check the claimed row's
// encoding is consistent with the committed columns.
//
// queryIndices selects which encoded columns to open; callers derive them
// from the transcript (Fiat-Shamir) before calling this function so prover
// and verifier agree on the same indices.
func ProveContraction(tr *transcript.Prover, message []fr.Element, params Params, encodedColumns []fr.Element, coeffs []fr.Element, queryIndices []int) error {
	if len(coeffs) != params.Rows {
		return zkerr.New(zkerr.InvalidSize, "coeffs has %d entries, expected %d rows", len(coeffs), params.Rows)
	}
	combinedRow := make([]fr.Element, params.Cols)
	for r := 0; r < params.Rows; r++ {
		row := message[r*params.Cols : (r+1)*params.Cols]
		for j := range combinedRow {
			var term fr.Element
			term.Mul(&row[j], &coeffs[r])
			combinedRow[j].Add(&combinedRow[j], &term)
		}
	}
	for _, v := range combinedRow {
		tr.Write(v)
	}

	tree, err := merkle.New(columnLeaves(encodedColumns, params))
	if err != nil {
		return err
	}
	for _, idx := range queryIndices {
		column := encodedColumns[idx*params.Rows : (idx+1)*params.Rows]
		for _, v := range column {
			tr.Reveal(v)
		}
		if err := tree.Reveal(tr, idx); err != nil {
			return err
		}
	}
	return nil
}

func columnLeaves(encodedColumnsMajor []fr.Element, params Params) []fr.Element {
	leaves := make([]fr.Element, params.EncodedCols)
	for col := 0; col < params.EncodedCols; col++ {
		leaves[col] = compressColumn(encodedColumnsMajor[col*params.Rows : (col+1)*params.Rows])
	}
	return leaves
}

// VerifyContraction checks a ProveContraction proof: it reads the claimed
// combined row, re-encodes it, and for each queried column checks that the
// revealed column, scaled by coeffs, matches the corresponding coordinate of
// the re-encoded claimed row, and that the revealed column opens against
// commitment's Merkle root.
//
// This decoding verifier has no counterpart in original_source/ (lib.rs
// leaves prove_r1cs, and therefore any Ligero verifier wiring, as a TODO);
// it is new work designed directly from spec.md's description of the
// column-consistency check (see DESIGN.md).
func VerifyContraction(tr *transcript.Verifier, commitment Commitment, coeffs []fr.Element, queryIndices []int) (bool, error) {
	params := commitment.Params
	if len(coeffs) != params.Rows {
		return false, zkerr.New(zkerr.InvalidSize, "coeffs has %d entries, expected %d rows", len(coeffs), params.Rows)
	}

	combinedRow := make([]fr.Element, params.Cols)
	for i := range combinedRow {
		v, err := tr.Read()
		if err != nil {
			return false, err
		}
		combinedRow[i] = v
	}

	encodedClaim := make([]fr.Element, params.EncodedCols)
	if err := reedsolomon.Encode(combinedRow, encodedClaim); err != nil {
		return false, err
	}

	root := commitment.Tree.Root()
	for _, idx := range queryIndices {
		column := make([]fr.Element, params.Rows)
		for r := range column {
			v, err := tr.Reveal()
			if err != nil {
				return false, err
			}
			column[r] = v
		}

		var combined fr.Element
		for r := range column {
			var term fr.Element
			term.Mul(&column[r], &coeffs[r])
			combined.Add(&combined, &term)
		}
		if !combined.Equal(&encodedClaim[idx]) {
			return false, nil
		}

		leaf := compressColumn(column)
		ok, err := merkle.Verify(tr, root, idx, leaf, params.EncodedCols)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
