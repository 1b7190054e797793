// Package reedsolomon implements systematic Reed-Solomon encoding of a
// message over Fr by evaluating its interpolating polynomial on successive
// cosets of the evaluation subgroup, following original_source/src/reed_solomon.rs.
package reedsolomon

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/spartan/ntt"
	"github.com/luxfi/spartan/zkerr"
)

// Encode writes the Reed-Solomon encoding of message into codeword. The
// expansion factor is len(codeword)/len(message), which must be a positive
// integer; codeword's length and message's length must each be supported by
// the ntt package.
//
// The message is first inverse-transformed into coefficient form. Each
// len(message)-sized chunk of the codeword is then the forward transform of
// the message scaled onto the corresponding coset of the generator subgroup:
// chunk 0 is the identity coset (the original message is systematic), chunk
// k>0 is scaled by CosetGenerator^k before transforming.
func Encode(message []fr.Element, codeword []fr.Element) error {
	n := len(message)
	if n == 0 || len(codeword) == 0 {
		return zkerr.New(zkerr.InvalidSize, "message and codeword must be non-empty")
	}
	if len(codeword)%n != 0 {
		return zkerr.New(zkerr.InvalidSize, "codeword length %d is not a multiple of message length %d", len(codeword), n)
	}
	expansion := len(codeword) / n

	coeffs := make([]fr.Element, n)
	copy(coeffs, message)
	if err := ntt.INTT(coeffs); err != nil {
		return err
	}

	scaled := make([]fr.Element, n)
	var cosetPower fr.Element
	cosetPower.SetOne()
	for k := 0; k < expansion; k++ {
		chunk := codeword[k*n : (k+1)*n]
		if k == 0 {
			copy(chunk, coeffs)
		} else {
			var power fr.Element
			power.SetOne()
			for i := 0; i < n; i++ {
				scaled[i].Mul(&coeffs[i], &power)
				power.Mul(&power, &cosetPower)
			}
			copy(chunk, scaled)
		}
		if err := ntt.NTT(chunk); err != nil {
			return err
		}
		cosetPower.Mul(&cosetPower, &ntt.CosetGenerator)
	}
	return nil
}
