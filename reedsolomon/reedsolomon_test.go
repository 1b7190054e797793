package reedsolomon

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestEncodeIsSystematic(t *testing.T) {
	message := make([]fr.Element, 8)
	for i := range message {
		message[i].SetUint64(uint64(i + 1))
	}
	codeword := make([]fr.Element, len(message)*4)
	require.NoError(t, Encode(message, codeword))

	// The first chunk is the identity coset, so it must equal the message
	// exactly: systematic encoding.
	for i := range message {
		require.True(t, message[i].Equal(&codeword[i]))
	}
}

func TestEncodeRejectsIncompatibleLengths(t *testing.T) {
	message := make([]fr.Element, 8)
	codeword := make([]fr.Element, 20) // not a multiple of 8
	require.Error(t, Encode(message, codeword))
}

func TestEncodeCosetsDiffer(t *testing.T) {
	message := make([]fr.Element, 4)
	for i := range message {
		message[i].SetUint64(uint64(i + 1))
	}
	codeword := make([]fr.Element, len(message)*2)
	require.NoError(t, Encode(message, codeword))

	firstChunk := codeword[:len(message)]
	secondChunk := codeword[len(message):]
	differs := false
	for i := range firstChunk {
		if !firstChunk[i].Equal(&secondChunk[i]) {
			differs = true
			break
		}
	}
	require.True(t, differs)
}
