package ligero

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/spartan/ntt"
	"github.com/luxfi/spartan/reedsolomon"
	"github.com/luxfi/spartan/transcript"
)

func vec(values ...uint64) []fr.Element {
	out := make([]fr.Element, len(values))
	for i, v := range values {
		out[i].SetUint64(v)
	}
	return out
}

func TestDeriveParamsRejectsNonPositive(t *testing.T) {
	_, err := DeriveParams(0, 100)
	require.Error(t, err)
}

func TestCommitProveVerifyContraction(t *testing.T) {
	message := vec(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)
	params, err := DeriveParams(len(message), 40)
	require.NoError(t, err)
	require.Equal(t, len(message), params.Rows*params.Cols)

	commitment, err := Commit(message, params)
	require.NoError(t, err)

	encoded := make([]fr.Element, params.Rows*params.EncodedCols)
	for r := 0; r < params.Rows; r++ {
		row := message[r*params.Cols : (r+1)*params.Cols]
		dst := encoded[r*params.EncodedCols : (r+1)*params.EncodedCols]
		require.NoError(t, reedsolomon.Encode(row, dst))
	}
	ntt.Transpose(encoded, params.Rows, params.EncodedCols)

	coeffs := make([]fr.Element, params.Rows)
	for i := range coeffs {
		coeffs[i].SetUint64(1)
	}

	queryIndices := make([]int, params.QueryCount)
	for i := range queryIndices {
		queryIndices[i] = i % params.EncodedCols
	}

	prover := transcript.NewProver()
	require.NoError(t, ProveContraction(prover, message, params, encoded, coeffs, queryIndices))

	verifier := transcript.NewVerifier(prover.Finish())
	ok, err := VerifyContraction(verifier, commitment, coeffs, queryIndices)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyContractionRejectsTamperedColumn(t *testing.T) {
	message := vec(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)
	params, err := DeriveParams(len(message), 40)
	require.NoError(t, err)

	commitment, err := Commit(message, params)
	require.NoError(t, err)

	encoded := make([]fr.Element, params.Rows*params.EncodedCols)
	for r := 0; r < params.Rows; r++ {
		row := message[r*params.Cols : (r+1)*params.Cols]
		dst := encoded[r*params.EncodedCols : (r+1)*params.EncodedCols]
		require.NoError(t, reedsolomon.Encode(row, dst))
	}
	ntt.Transpose(encoded, params.Rows, params.EncodedCols)

	coeffs := make([]fr.Element, params.Rows)
	for i := range coeffs {
		coeffs[i].SetUint64(1)
	}
	queryIndices := []int{0}

	prover := transcript.NewProver()
	require.NoError(t, ProveContraction(prover, message, params, encoded, coeffs, queryIndices))
	proof := prover.Finish()
	// Tamper with a revealed column entry (appended after the combined row).
	var one fr.Element
	one.SetUint64(1)
	proof[params.Cols].Add(&proof[params.Cols], &one)

	verifier := transcript.NewVerifier(proof)
	ok, err := VerifyContraction(verifier, commitment, coeffs, queryIndices)
	require.NoError(t, err)
	require.False(t, ok)
}
