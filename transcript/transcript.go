// Package transcript implements the Fiat-Shamir transcript shared by every
// interactive-turned-non-interactive protocol in this module: a duplex
// sponge built on poseidon2.Permute16, with symmetric Prover/Verifier sides
// so a verifier replays exactly the absorb/squeeze sequence the prover used.
// Grounded in original_source/src/transcript/mod.rs.
package transcript

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/spartan/poseidon2"
	"github.com/luxfi/spartan/zkerr"
)

// rate is the number of lanes absorbed/squeezed per permutation call; the
// remaining lane is the sponge's capacity.
const rate = 15

type sponge struct {
	state     [16]fr.Element
	absorbed  int // lanes absorbed into the current block, < rate
	squeezeAt int // next lane to read; rate means "permute before reading"
	dirty     bool
}

func (s *sponge) absorb(v fr.Element) {
	s.state[s.absorbed].Add(&s.state[s.absorbed], &v)
	s.absorbed++
	s.dirty = true
	if s.absorbed == rate {
		poseidon2.Permute16(&s.state)
		s.absorbed = 0
		s.squeezeAt = rate
		s.dirty = false
	}
}

func (s *sponge) squeeze() fr.Element {
	if s.dirty || s.squeezeAt >= rate {
		poseidon2.Permute16(&s.state)
		s.absorbed = 0
		s.squeezeAt = 0
		s.dirty = false
	}
	out := s.state[s.squeezeAt]
	s.squeezeAt++
	return out
}

// Prover accumulates the sequence of field elements that together make up
// the non-interactive proof, while driving the same sponge a verifier will
// replay.
type Prover struct {
	sponge sponge
	proof  []fr.Element
}

// NewProver starts a fresh transcript bound to no prior state, matching
// Prover::new in the reference implementation.
func NewProver() *Prover {
	return &Prover{}
}

// Write absorbs v into the sponge and appends it to the proof stream: this
// is how the prover sends a value the verifier must also absorb.
func (p *Prover) Write(v fr.Element) {
	p.sponge.absorb(v)
	p.proof = append(p.proof, v)
}

// Reveal appends v to the proof stream without absorbing it, for data (like
// Merkle siblings) the verifier needs but that should not perturb the
// sponge's challenge derivation.
func (p *Prover) Reveal(v fr.Element) {
	p.proof = append(p.proof, v)
}

// Read squeezes a Fiat-Shamir challenge from the sponge without touching the
// proof stream, mirroring Verifier.Generate.
func (p *Prover) Read() fr.Element {
	return p.sponge.squeeze()
}

// WriteFp writes a base-field element by coercing it into Fr through its
// canonical byte representation, the same coercion read_g1/write_g1 need
// because G1 point coordinates live in Fq, not Fr. Panics if v does not fit
// in Fr, matching the reference implementation's Fr::from_bigint(...).expect(...):
// an honest prover never hits this, since it requires an Fq coordinate to
// land in the roughly 2^-127 sliver of Fq above Fr's modulus.
func (p *Prover) WriteFp(v fp.Element) {
	b := v.Bytes()
	var asBig big.Int
	asBig.SetBytes(b[:])
	if asBig.Cmp(fr.Modulus()) >= 0 {
		panic("transcript: Fq coordinate does not fit in Fr")
	}
	var asFr fr.Element
	asFr.SetBytes(b[:])
	p.Write(asFr)
}

// WriteG1 writes a G1 point's affine coordinates to the transcript.
func (p *Prover) WriteG1(point bn254.G1Affine) {
	p.WriteFp(point.X)
	p.WriteFp(point.Y)
}

// Finish returns the accumulated proof stream.
func (p *Prover) Finish() []fr.Element {
	return p.proof
}

// Verifier replays a Prover's absorb/squeeze sequence against a fixed proof
// stream, so it must call Read/Reveal/Generate/ReadG1 in exactly the order
// the prover called Write/Reveal/Read/WriteG1.
type Verifier struct {
	sponge sponge
	proof  []fr.Element
	cursor int
}

// NewVerifier constructs a Verifier reading from proof.
func NewVerifier(proof []fr.Element) *Verifier {
	return &Verifier{proof: proof}
}

func (v *Verifier) next() (fr.Element, error) {
	if v.cursor >= len(v.proof) {
		return fr.Element{}, zkerr.New(zkerr.DecodeFailed, "transcript exhausted at position %d", v.cursor)
	}
	out := v.proof[v.cursor]
	v.cursor++
	return out, nil
}

// Read consumes the next proof element, absorbs it into the sponge, and
// returns it, mirroring Prover.Write.
func (v *Verifier) Read() (fr.Element, error) {
	val, err := v.next()
	if err != nil {
		return fr.Element{}, err
	}
	v.sponge.absorb(val)
	return val, nil
}

// Reveal consumes the next proof element without absorbing it, mirroring
// Prover.Reveal.
func (v *Verifier) Reveal() (fr.Element, error) {
	return v.next()
}

// Generate squeezes a Fiat-Shamir challenge from the sponge, mirroring
// Prover.Read.
func (v *Verifier) Generate() fr.Element {
	return v.sponge.squeeze()
}

// ReadFp consumes a base-field element written via WriteFp.
func (v *Verifier) ReadFp() (fp.Element, error) {
	asFr, err := v.Read()
	if err != nil {
		return fp.Element{}, err
	}
	var out fp.Element
	b := asFr.Bytes()
	out.SetBytes(b[:])
	return out, nil
}

// ReadG1 reads a G1 point's coordinates and checks that it is on the curve
// and in the correct subgroup, matching the reference implementation's
// read_g1 assertions.
func (v *Verifier) ReadG1() (bn254.G1Affine, error) {
	x, err := v.ReadFp()
	if err != nil {
		return bn254.G1Affine{}, err
	}
	y, err := v.ReadFp()
	if err != nil {
		return bn254.G1Affine{}, err
	}
	point := bn254.G1Affine{X: x, Y: y}
	if !point.IsOnCurve() {
		return bn254.G1Affine{}, zkerr.New(zkerr.NotOnCurve, "point is not on the BN254 G1 curve")
	}
	if !point.IsInSubGroup() {
		return bn254.G1Affine{}, zkerr.New(zkerr.NotInSubgroup, "point is not in the correct subgroup")
	}
	return point, nil
}
