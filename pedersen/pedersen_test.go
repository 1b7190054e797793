package pedersen

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/spartan/transcript"
)

func vec(values ...uint64) []fr.Element {
	out := make([]fr.Element, len(values))
	for i, v := range values {
		out[i].SetUint64(v)
	}
	return out
}

func TestCommitVerifyRoundTrip(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	values := vec(1, 2, 3, 4)
	var blinding fr.Element
	blinding.SetUint64(42)

	commitment, err := c.Commit(values, blinding)
	require.NoError(t, err)

	ok, err := c.Verify(commitment, values, blinding)
	require.NoError(t, err)
	require.True(t, ok)

	tampered := vec(1, 2, 3, 5)
	ok, err = c.Verify(commitment, tampered, blinding)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCommitTooManyValuesFails(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)
	var blinding fr.Element
	_, err = c.Commit(vec(1, 2, 3), blinding)
	require.Error(t, err)
}

func TestProveVerifyEqual(t *testing.T) {
	c, err := New(1)
	require.NoError(t, err)

	var value fr.Element
	value.SetUint64(7)
	var ru, rv fr.Element
	ru.SetUint64(11)
	rv.SetUint64(13)

	cu, err := c.Commit([]fr.Element{value}, ru)
	require.NoError(t, err)
	cv, err := c.Commit([]fr.Element{value}, rv)
	require.NoError(t, err)

	p := transcript.NewProver()
	c.ProveEqual(p, ru, rv)

	v := transcript.NewVerifier(p.Finish())
	ok, err := c.VerifyEqual(v, cu, cv)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestProveVerifyProduct(t *testing.T) {
	c, err := New(1)
	require.NoError(t, err)

	var u, v, w, ru, rv, rw fr.Element
	u.SetUint64(3)
	v.SetUint64(4)
	w.Mul(&u, &v)
	ru.SetUint64(5)
	rv.SetUint64(6)
	rw.SetUint64(7)

	cu, err := c.Commit([]fr.Element{u}, ru)
	require.NoError(t, err)
	cv, err := c.Commit([]fr.Element{v}, rv)
	require.NoError(t, err)
	cw, err := c.Commit([]fr.Element{w}, rw)
	require.NoError(t, err)

	p := transcript.NewProver()
	require.NoError(t, c.ProveProduct(p, u, ru, v, rv, rw))

	ver := transcript.NewVerifier(p.Finish())
	ok, err := c.VerifyProduct(ver, cu, cv, cw)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestProveVerifyDotProduct(t *testing.T) {
	c, err := New(8)
	require.NoError(t, err)

	f := vec(1, 2, 3, 4)
	a := vec(5, 6, 7, 8)
	var blindF fr.Element
	blindF.SetUint64(100)

	commitF, err := c.Commit(f, blindF)
	require.NoError(t, err)

	var dot fr.Element
	for i := range f {
		var term fr.Element
		term.Mul(&f[i], &a[i])
		dot.Add(&dot, &term)
	}
	var cBlind fr.Element
	cBlind.SetUint64(999)
	commitC, err := c.Commit([]fr.Element{dot}, cBlind)
	require.NoError(t, err)

	p := transcript.NewProver()
	require.NoError(t, c.ProveDotProduct(p, f, blindF, a, cBlind))

	ver := transcript.NewVerifier(p.Finish())
	ok, err := c.VerifyDotProduct(ver, commitF, a, commitC, len(f))
	require.NoError(t, err)
	require.True(t, ok)
}
