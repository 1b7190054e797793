package ntt

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

// nttRef is the O(n^2) reference DFT, kept as an unexported test helper
// mirroring test::ntt_ref in the reference implementation.
func nttRef(values []fr.Element) []fr.Element {
	n := len(values)
	out := make([]fr.Element, n)
	root, err := rootOfUnity(n)
	if err != nil {
		panic(err)
	}
	for i := 0; i < n; i++ {
		var wi fr.Element
		wi.Exp(root, big.NewInt(int64(i)))
		var acc fr.Element
		var pow fr.Element
		pow.SetOne()
		for j := 0; j < n; j++ {
			var term fr.Element
			term.Mul(&values[j], &pow)
			acc.Add(&acc, &term)
			pow.Mul(&pow, &wi)
		}
		out[i] = acc
	}
	return out
}

func randomVector(t *testing.T, n int) []fr.Element {
	t.Helper()
	out := make([]fr.Element, n)
	for i := range out {
		out[i].SetUint64(uint64(i*7 + 3))
	}
	return out
}

func TestNTTMatchesReferenceDFT(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 8, 12, 16, 32, 64, 128, 256, 512, 768, 1024} {
		size := size
		t.Run("", func(t *testing.T) {
			values := randomVector(t, size)
			want := nttRef(values)

			got := make([]fr.Element, size)
			copy(got, values)
			require.NoError(t, NTT(got))

			for i := range want {
				require.True(t, want[i].Equal(&got[i]), "index %d size %d", i, size)
			}
		})
	}
}

func TestNTTRoundTrip(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 8, 12, 16, 32, 64, 128, 256, 512, 768, 1024} {
		size := size
		t.Run("", func(t *testing.T) {
			values := randomVector(t, size)
			roundTripped := make([]fr.Element, size)
			copy(roundTripped, values)

			require.NoError(t, NTT(roundTripped))
			require.NoError(t, INTT(roundTripped))

			for i := range values {
				require.True(t, values[i].Equal(&roundTripped[i]), "index %d size %d", i, size)
			}
		})
	}
}

func TestNTTUnsupportedSize(t *testing.T) {
	values := make([]fr.Element, 5)
	err := NTT(values)
	require.Error(t, err)
}

func TestTransposeInvolution(t *testing.T) {
	rows, cols := 4, 6
	values := randomVector(t, rows*cols)
	original := make([]fr.Element, len(values))
	copy(original, values)

	Transpose(values, rows, cols)
	Transpose(values, cols, rows)

	for i := range original {
		require.True(t, original[i].Equal(&values[i]))
	}
}
