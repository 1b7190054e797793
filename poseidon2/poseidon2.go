// Package poseidon2 implements the Poseidon2 algebraic permutation over the
// BN254 scalar field at state widths 3 and 16, following the construction in
// original_source/src/transcript/poseidon2/mod.rs: an external (MDS) linear
// layer applied once before the first round and in every full round, an
// internal linear layer applied only in partial rounds, x -> x^5 as the S-box, and a round schedule of 4 initial
// full rounds, N partial rounds, then 4 terminal full rounds.
//
// The reference implementation's round-constant tables (constants.RC3,
// constants.RC16, constants.MAT_DIAG16) were not available to this module
// (see DESIGN.md). Constants here are instead derived deterministically from
// a fixed ChaCha20 keystream, the same domain-separation technique this
// module's pedersen package uses for its generator set — see
// deriveFieldElements.
package poseidon2

import (
	"sync/atomic"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/chacha20"
)

const (
	width3  = 3
	width16 = 16

	fullRoundsHalf = 4 // 4 initial + 4 terminal, matching spec.md section 4.3

	partialRounds3  = 56
	partialRounds16 = 68
)

// deriveFieldElements expands a fixed ASCII label into n field elements via
// a zero-nonce ChaCha20 keystream, reducing each 32-byte block modulo r. This
// is the same nothing-up-my-sleeve technique pedersen.deriveGenerators uses
// for its generator basis, with a distinct per-purpose label standing in for
// domain separation.
func deriveFieldElements(label string, n int) []fr.Element {
	var seed [32]byte
	copy(seed[:], label)
	var nonce [chacha20.NonceSize]byte

	cipher, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		panic(err)
	}

	out := make([]fr.Element, n)
	zero := make([]byte, 32*n)
	stream := make([]byte, len(zero))
	cipher.XORKeyStream(stream, zero)
	for i := 0; i < n; i++ {
		out[i].SetBytes(stream[i*32 : (i+1)*32])
	}
	return out
}

type roundConstants struct {
	full    [][]fr.Element // fullRoundsHalf*2 rows of width elements
	partial []fr.Element   // one element per partial round (applied to lane 0)
}

func buildRoundConstants(label string, width, partialCount int) roundConstants {
	fullCount := fullRoundsHalf * 2
	flatFull := deriveFieldElements(label+"::full", fullCount*width)
	full := make([][]fr.Element, fullCount)
	for i := range full {
		full[i] = flatFull[i*width : (i+1)*width]
	}
	partial := deriveFieldElements(label+"::partial", partialCount)
	return roundConstants{full: full, partial: partial}
}

var (
	rc3  = buildRoundConstants("poseidon2::rc::width3", width3, partialRounds3)
	rc16 = buildRoundConstants("poseidon2::rc::width16", width16, partialRounds16)
)

// m4 is the 4x4 MDS matrix from the Poseidon2 external-layer construction,
// used as the building block of the width-16 external matrix (mat_full_16).
// The width-3 external layer is circ(2,1,1) (matmulExternal3) and does not
// use m4.
var m4 = [4][4]uint64{
	{5, 7, 1, 3},
	{4, 6, 1, 1},
	{1, 3, 5, 7},
	{1, 1, 4, 6},
}

// internalDiag16 holds the diagonal entries of the width-16 internal linear
// layer (ones(16,16) + diag(d)), derived the same way as the round
// constants. The width-3 internal layer instead uses the fixed small diagonal
// (1, 1, 2) (see matmulInternal3).
var internalDiag16 = deriveFieldElements("poseidon2::internal_diag::width16", width16)

// CountersEnabled gates the process-wide invocation counters. Set to false
// to skip the atomic increments in a release build, mirroring the reference
// implementation's release-mode-disabled performance counters.
var CountersEnabled = true

var (
	permute3Count  atomic.Uint64
	permute16Count atomic.Uint64
	compressCount  atomic.Uint64
)

// Counters reports the process-wide Poseidon2 invocation counts.
type Counters struct {
	Permute3Calls  uint64
	Permute16Calls uint64
	CompressCalls  uint64
}

// Stats returns a snapshot of the current invocation counters.
func Stats() Counters {
	return Counters{
		Permute3Calls:  permute3Count.Load(),
		Permute16Calls: permute16Count.Load(),
		CompressCalls:  compressCount.Load(),
	}
}

func sbox(x *fr.Element) {
	var x2, x4 fr.Element
	x2.Square(x)
	x4.Square(&x2)
	x.Mul(&x4, x)
}

// matmulExternal3 applies circ(2,1,1) to a width-3 state in place.
func matmulExternal3(state []fr.Element) {
	var sum fr.Element
	sum.Add(&state[0], &state[1])
	sum.Add(&sum, &state[2])
	for i := range state {
		state[i].Add(&state[i], &sum)
	}
}

// matmulInternal3 applies ones(3,3) + diag(1,1,2) to a width-3 state:
// sum = s0+s1+s2, double s2, then add sum to every lane.
func matmulInternal3(state []fr.Element) {
	var sum fr.Element
	sum.Add(&state[0], &state[1])
	sum.Add(&sum, &state[2])

	state[2].Double(&state[2])
	for i := range state {
		state[i].Add(&state[i], &sum)
	}
}

func applyM4(state []fr.Element) {
	var out [4]fr.Element
	for i := 0; i < 4; i++ {
		var acc fr.Element
		for j := 0; j < 4; j++ {
			if m4[i][j] == 0 {
				continue
			}
			var term fr.Element
			var coeff fr.Element
			coeff.SetUint64(m4[i][j])
			term.Mul(&state[j], &coeff)
			acc.Add(&acc, &term)
		}
		out[i] = acc
	}
	copy(state, out[:])
}

// matmulExternal16 applies the block-circulant matrix built from four copies
// of m4 (diagonal blocks doubled), the standard Poseidon2 external layer for
// widths that are a multiple of 4.
func matmulExternal16(state []fr.Element) {
	for b := 0; b < width16; b += 4 {
		applyM4(state[b : b+4])
	}
	var colSum [4]fr.Element
	for c := 0; c < 4; c++ {
		for b := 0; b < width16; b += 4 {
			colSum[c].Add(&colSum[c], &state[b+c])
		}
	}
	for b := 0; b < width16; b += 4 {
		for c := 0; c < 4; c++ {
			state[b+c].Add(&state[b+c], &colSum[c])
		}
	}
}

// matmulInternal16 applies ones(16,16) + diag(internalDiag16).
func matmulInternal16(state []fr.Element) {
	var sum fr.Element
	for i := range state {
		sum.Add(&sum, &state[i])
	}
	for i := range state {
		var term fr.Element
		term.Mul(&state[i], &internalDiag16[i])
		state[i].Add(&term, &sum)
	}
}

func permute(state []fr.Element, rc roundConstants, matExternal, matInternal func([]fr.Element), partialRounds int) {
	matExternal(state)

	round := 0
	for r := 0; r < fullRoundsHalf; r++ {
		addRoundConstants(state, rc.full[round])
		for i := range state {
			sbox(&state[i])
		}
		matExternal(state)
		round++
	}

	for r := 0; r < partialRounds; r++ {
		state[0].Add(&state[0], &rc.partial[r])
		sbox(&state[0])
		matInternal(state)
	}

	for r := 0; r < fullRoundsHalf; r++ {
		addRoundConstants(state, rc.full[round])
		for i := range state {
			sbox(&state[i])
		}
		matExternal(state)
		round++
	}
}

func addRoundConstants(state []fr.Element, rc []fr.Element) {
	for i := range state {
		state[i].Add(&state[i], &rc[i])
	}
}

// Permute3 applies the width-3 Poseidon2 permutation to state in place.
func Permute3(state *[3]fr.Element) {
	if CountersEnabled {
		permute3Count.Add(1)
	}
	permute(state[:], rc3, matmulExternal3, matmulInternal3, partialRounds3)
}

// Permute16 applies the width-16 Poseidon2 permutation to state in place.
func Permute16(state *[16]fr.Element) {
	if CountersEnabled {
		permute16Count.Add(1)
	}
	permute(state[:], rc16, matmulExternal16, matmulInternal16, partialRounds16)
}

// Compress16 permutes a 16-element input and returns lane 0, the compression
// function used to build interior nodes of the 16-ary Merkle tree. Counted
// separately from Permute16 so the two stats reflect distinct call sites.
func Compress16(input [16]fr.Element) fr.Element {
	if CountersEnabled {
		compressCount.Add(1)
	}
	state := input
	permute(state[:], rc16, matmulExternal16, matmulInternal16, partialRounds16)
	return state[0]
}

// Compress folds an arbitrary-length input down to a single element by
// building a 16-ary Merkle tree over it (zero-padding the final chunk of
// each layer) and returning its root. Only the final, partial chunk of a
// layer is padded; no all-zero chunk is ever compressed, so the result is
// not the root of the input zero-padded to a power of 16 once that padding
// would fill a whole chunk (for example at length 17). Inputs of length 2 to
// 16 give Compress16 of the zero-padded input, a one-element input is
// returned unchanged, and an empty input gives Compress16 of all zeros.
func Compress(input []fr.Element) fr.Element {
	if len(input) == 0 {
		var chunk [16]fr.Element
		return Compress16(chunk)
	}
	layer := input
	for len(layer) > 1 {
		next := make([]fr.Element, (len(layer)+15)/16)
		for off := 0; off < len(layer); off += 16 {
			var chunk [16]fr.Element
			copy(chunk[:], layer[off:minInt(off+16, len(layer))])
			next[off/16] = Compress16(chunk)
		}
		layer = next
	}
	return layer[0]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
