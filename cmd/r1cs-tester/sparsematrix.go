// Command r1cs-tester checks that a witness satisfies an R1CS instance
// (Az ∘ Bz = Cz) read from a JSON fixture, following
// original_source/src/bin/r1cs-tester.rs and src/sparse_matrix.rs. It is the
// "R1CS witness-loader utility" spec.md section 1 treats as an external
// collaborator of the core: it consumes the core's matrices/witness shape
// but none of its proving machinery.
package main

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// SparseEntry is one (constraint, signal, value) triple of a sparse R1CS
// matrix, matching the JSON shape spec.md section 6 describes.
type SparseEntry struct {
	Constraint int
	Signal     int
	Value      fr.Element
}

// MulLeft computes the sparse matrix's product against the dense witness z,
// following SparseMatrix::mul_left: result[constraint] accumulates
// value*z[signal] for every entry in that constraint's row.
func MulLeft(entries []SparseEntry, numConstraints int, z []fr.Element) []fr.Element {
	out := make([]fr.Element, numConstraints)
	for _, e := range entries {
		var term fr.Element
		term.Mul(&e.Value, &z[e.Signal])
		out[e.Constraint].Add(&out[e.Constraint], &term)
	}
	return out
}
