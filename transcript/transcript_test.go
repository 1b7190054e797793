package transcript

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestProverVerifierAgreeOnChallenges(t *testing.T) {
	p := NewProver()
	var a, b fr.Element
	a.SetUint64(7)
	b.SetUint64(11)
	p.Write(a)
	challenge1 := p.Read()
	p.Write(b)
	challenge2 := p.Read()

	v := NewVerifier(p.Finish())
	gotA, err := v.Read()
	require.NoError(t, err)
	require.True(t, gotA.Equal(&a))

	vc1 := v.Generate()
	require.True(t, challenge1.Equal(&vc1))

	gotB, err := v.Read()
	require.NoError(t, err)
	require.True(t, gotB.Equal(&b))

	vc2 := v.Generate()
	require.True(t, challenge2.Equal(&vc2))
}

func TestRevealDoesNotAffectChallenges(t *testing.T) {
	p1 := NewProver()
	var a fr.Element
	a.SetUint64(5)
	p1.Write(a)
	challenge1 := p1.Read()

	p2 := NewProver()
	p2.Write(a)
	var sibling fr.Element
	sibling.SetUint64(999)
	p2.Reveal(sibling)
	challenge2 := p2.Read()

	require.True(t, challenge1.Equal(&challenge2))
}

func TestVerifierRejectsExhaustedTranscript(t *testing.T) {
	v := NewVerifier(nil)
	_, err := v.Read()
	require.Error(t, err)
}
