package poseidon2

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestPermute3Deterministic(t *testing.T) {
	var a, b [3]fr.Element
	for i := range a {
		a[i].SetUint64(uint64(i))
		b[i].SetUint64(uint64(i))
	}
	Permute3(&a)
	Permute3(&b)
	require.Equal(t, a, b)
}

func TestPermute3NotIdentity(t *testing.T) {
	var state [3]fr.Element
	state[0].SetUint64(0)
	state[1].SetUint64(1)
	state[2].SetUint64(2)
	before := state
	Permute3(&state)
	require.NotEqual(t, before, state)
}

func TestPermute16Deterministic(t *testing.T) {
	var a, b [16]fr.Element
	for i := range a {
		a[i].SetUint64(uint64(i))
		b[i].SetUint64(uint64(i))
	}
	Permute16(&a)
	Permute16(&b)
	require.Equal(t, a, b)
}

func TestCompress16DiffersOnDifferentInputs(t *testing.T) {
	var a, b [16]fr.Element
	for i := range a {
		a[i].SetUint64(uint64(i))
		b[i].SetUint64(uint64(i))
	}
	b[15].SetUint64(9999)

	ca := Compress16(a)
	cb := Compress16(b)
	require.False(t, ca.Equal(&cb))
}

func TestCompressMatchesCompress16AtWidth16(t *testing.T) {
	var chunk [16]fr.Element
	for i := range chunk {
		chunk[i].SetUint64(uint64(i + 1))
	}
	want := Compress16(chunk)
	got := Compress(chunk[:])
	require.True(t, want.Equal(&got))
}

func TestCompressHandlesNonMultipleOf16(t *testing.T) {
	for _, n := range []int{1, 15, 17, 33, 257} {
		n := n
		t.Run("", func(t *testing.T) {
			input := make([]fr.Element, n)
			for i := range input {
				input[i].SetUint64(uint64(i + 1))
			}
			// Must not panic and must be deterministic.
			a := Compress(input)
			b := Compress(input)
			require.True(t, a.Equal(&b))
		})
	}
}

func TestCompressDiffersOnDifferentLongInputs(t *testing.T) {
	a := make([]fr.Element, 33)
	b := make([]fr.Element, 33)
	for i := range a {
		a[i].SetUint64(uint64(i))
		b[i].SetUint64(uint64(i))
	}
	b[32].SetUint64(9999)

	ca := Compress(a)
	cb := Compress(b)
	require.False(t, ca.Equal(&cb))
}

func TestStatsIncrement(t *testing.T) {
	before := Stats()
	var state [3]fr.Element
	Permute3(&state)
	after := Stats()
	require.Equal(t, before.Permute3Calls+1, after.Permute3Calls)
}
