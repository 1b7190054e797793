package merkle

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/spartan/transcript"
)

func leaves(n int) []fr.Element {
	out := make([]fr.Element, n)
	for i := range out {
		out[i].SetUint64(uint64(i))
	}
	return out
}

func TestOpenVerifyRoundTrip(t *testing.T) {
	for _, n := range []int{1, 15, 16, 17, 255, 256, 10000} {
		n := n
		t.Run("", func(t *testing.T) {
			ls := leaves(n)
			tree, err := New(ls)
			require.NoError(t, err)

			index := (n * 7 / 11) % n
			prover := transcript.NewProver()
			require.NoError(t, tree.Reveal(prover, index))

			verifier := transcript.NewVerifier(prover.Finish())
			ok, err := Verify(verifier, tree.Root(), index, ls[index], n)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestVerifyRejectsTamperedSibling(t *testing.T) {
	ls := leaves(10000)
	tree, err := New(ls)
	require.NoError(t, err)

	index := 5123
	prover := transcript.NewProver()
	require.NoError(t, tree.Reveal(prover, index))
	proof := prover.Finish()
	var one fr.Element
	one.SetUint64(1)
	proof[0].Add(&proof[0], &one)

	verifier := transcript.NewVerifier(proof)
	ok, err := Verify(verifier, tree.Root(), index, ls[index], 10000)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRevealOutOfRange(t *testing.T) {
	tree, err := New(leaves(4))
	require.NoError(t, err)
	prover := transcript.NewProver()
	require.Error(t, tree.Reveal(prover, 4))
}
