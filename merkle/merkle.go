// Package merkle implements the 16-ary Merkle tree over Poseidon2's
// compression function, following original_source/src/merkle_tree.rs.
package merkle

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/spartan/poseidon2"
	"github.com/luxfi/spartan/transcript"
	"github.com/luxfi/spartan/zkerr"
)

// Arity is the tree's fan-out: each interior node compresses 16 children.
const Arity = 16

// Tree is a 16-ary Merkle tree built bottom-up from a leaf layer, each
// interior layer computed by grouping the layer below into chunks of Arity
// (the last chunk zero-padded) and compressing each chunk with
// poseidon2.Compress16.
type Tree struct {
	layers [][]fr.Element // layers[0] is the leaf layer, layers[len-1] is {root}
}

// New builds a Tree over leaves. leaves must be non-empty.
func New(leaves []fr.Element) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, zkerr.New(zkerr.InvalidSize, "merkle tree needs at least one leaf")
	}
	layer := make([]fr.Element, len(leaves))
	copy(layer, leaves)

	layers := [][]fr.Element{layer}
	for len(layer) > 1 {
		next := make([]fr.Element, 0, (len(layer)+Arity-1)/Arity)
		for off := 0; off < len(layer); off += Arity {
			var chunk [Arity]fr.Element
			copy(chunk[:], layer[off:min(off+Arity, len(layer))])
			next = append(next, poseidon2.Compress16(chunk))
		}
		layers = append(layers, next)
		layer = next
	}
	return &Tree{layers: layers}, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Root returns the tree's root element.
func (t *Tree) Root() fr.Element {
	top := t.layers[len(t.layers)-1]
	return top[0]
}

// Leaves returns the tree's leaf layer.
func (t *Tree) Leaves() []fr.Element {
	return t.layers[0]
}

// Reveal writes the sibling set needed to open the leaf at index into the
// prover's transcript. Each layer reveals the 15 siblings of index's chunk
// (zero-padded past the end of the layer); these are revealed but not
// absorbed into the sponge state, matching Prover.reveal's semantics.
func (t *Tree) Reveal(tr *transcript.Prover, index int) error {
	if index < 0 || index >= len(t.layers[0]) {
		return zkerr.New(zkerr.InvalidSize, "index %d out of range for %d leaves", index, len(t.layers[0]))
	}
	for layerIdx := 0; layerIdx < len(t.layers)-1; layerIdx++ {
		layer := t.layers[layerIdx]
		chunkStart := (index / Arity) * Arity
		posInChunk := index % Arity
		for i := 0; i < Arity; i++ {
			if i == posInChunk {
				continue
			}
			var sibling fr.Element
			if chunkStart+i < len(layer) {
				sibling = layer[chunkStart+i]
			}
			tr.Reveal(sibling)
		}
		index /= Arity
	}
	return nil
}

// Verify reconstructs a root from a revealed opening and reports whether it
// matches root, reading the same 15-sibling-per-layer sequence Reveal wrote
// via Verifier.Reveal.
func Verify(tr *transcript.Verifier, root fr.Element, index int, leaf fr.Element, numLeaves int) (bool, error) {
	if index < 0 || index >= numLeaves {
		return false, zkerr.New(zkerr.InvalidSize, "index %d out of range for %d leaves", index, numLeaves)
	}
	current := leaf
	layerSize := numLeaves
	for layerSize > 1 {
		posInChunk := index % Arity
		var chunk [Arity]fr.Element
		for i := 0; i < Arity; i++ {
			if i == posInChunk {
				chunk[i] = current
				continue
			}
			sibling, err := tr.Reveal()
			if err != nil {
				return false, err
			}
			chunk[i] = sibling
		}
		current = poseidon2.Compress16(chunk)
		index /= Arity
		layerSize = (layerSize + Arity - 1) / Arity
	}
	return current.Equal(&root), nil
}
