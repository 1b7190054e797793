// Package ntt implements the mixed-radix Number-Theoretic Transform over the
// BN254 scalar field. Fr's multiplicative group has a smooth subgroup of
// order 2^28 * 3^2 = 2415919104; every NTT/INTT call operates on a buffer
// whose length divides that order.
//
// The algorithm is the six-step Cooley-Tukey decomposition: split an n-point
// transform into an n1 x n2 grid, transpose, recurse on the rows, apply
// twiddle factors, recurse on the columns, transpose back. Sizes 1, 2, 3 and
// 4 are hand-unrolled base cases; every other size (including 8, whose
// hand-unrolled radix-2 butterfly spec.md describes) falls through to the
// generic recursion, since sqrt_factor(8) already picks n1=2, n2=4 and lands
// on the same hand-unrolled base cases — see DESIGN.md for this deliberate
// simplification.
package ntt

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/spartan/zkerr"
)

// SmoothOrder is the order of the largest 2-3-smooth subgroup of Fr's
// multiplicative group: 2^28 * 3^2.
const SmoothOrder uint64 = 2415919104

// CosetGenerator is the element used by the Reed-Solomon encoder to walk
// between cosets of the evaluation subgroup (spec.md section 6).
var CosetGenerator = mustFr("5")

// Hard-coded base-case constants, reproduced bit-exactly from the reference
// Rust implementation (original_source/src/ntt.rs) so that NTT(4) and the
// Rader NTT(3) butterfly agree with it element-wise.
var (
	omega4             = mustFr("21888242871839275217838484774961031246007050428528088939761107053157389710902")
	halfOmega3PlusTwo  = mustFr("10944121435919637611123202872628637544274182200208017171849102093287904247808")
	halfOmega3MinusTwo = mustFr("10944121435919637615531123842924881386667549415214173256765571550433748226270")
	omegaSmooth        = mustFr("8001236115608269688640730372558895144313937963023562728862538587154079436142")
)

func mustFr(s string) fr.Element {
	var e fr.Element
	e.SetString(s)
	return e
}

// twiddle cache: a process-global, lazily-grown table of powers of the
// smooth-order root of unity. Guarded by a readers-writer lock with
// double-checked initialization: readers take the shared lock, test whether
// the cache already covers the requested size, and only take the exclusive
// lock on a miss, re-testing before recomputing (spec.md section 4.1/5).
var (
	twiddleMu    sync.RWMutex
	twiddleCache []fr.Element
)

func cacheCoversSize(cache []fr.Element, n int) bool {
	return len(cache) >= n && len(cache)%n == 0
}

// ensureTwiddles returns a cache of powers of the order-`size` root of unity
// whose length is a multiple of n, growing the process-global cache to
// lcm(old size, n) if necessary.
func ensureTwiddles(n int) ([]fr.Element, error) {
	twiddleMu.RLock()
	if cacheCoversSize(twiddleCache, n) {
		cache := twiddleCache
		twiddleMu.RUnlock()
		return cache, nil
	}
	twiddleMu.RUnlock()

	twiddleMu.Lock()
	defer twiddleMu.Unlock()
	if cacheCoversSize(twiddleCache, n) {
		return twiddleCache, nil
	}

	size := n
	if len(twiddleCache) > 0 {
		size = lcm(len(twiddleCache), n)
	}
	root, err := rootOfUnity(size)
	if err != nil {
		return nil, err
	}
	newCache := make([]fr.Element, size)
	newCache[0].SetOne()
	for i := 1; i < size; i++ {
		newCache[i].Mul(&newCache[i-1], &root)
	}
	twiddleCache = newCache
	return twiddleCache, nil
}

// rootOfUnity returns a root of unity of the given order, derived from the
// hard-coded smooth-subgroup generator. Only orders dividing SmoothOrder are
// supported.
func rootOfUnity(order int) (fr.Element, error) {
	if order <= 0 || SmoothOrder%uint64(order) != 0 {
		return fr.Element{}, zkerr.New(zkerr.UnsupportedSize, "order %d does not divide %d", order, SmoothOrder)
	}
	var root fr.Element
	root.Exp(omegaSmooth, big.NewInt(int64(SmoothOrder/uint64(order))))
	return root, nil
}

func lcm(a, b int) int { return a / gcd(a, b) * b }

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// sqrtFactor picks the Cooley-Tukey row count n1, a divisor of n close to
// sqrt(n): writing n = 2^a * 3^b (b in {0,1,2}, the only factorizations
// SmoothOrder admits), n1 = 2^(a/2) * 3^(1 if b>=1 else 0).
func sqrtFactor(n int) int {
	a, b := 0, 0
	m := n
	for m%2 == 0 {
		m /= 2
		a++
	}
	for m%3 == 0 {
		m /= 3
		b++
	}
	f := 1 << (a / 2)
	if b >= 1 {
		f *= 3
	}
	return f
}

// NTT computes the forward Number-Theoretic Transform of values in place,
// with respect to the root of unity of order len(values). Fails with
// zkerr.UnsupportedSize if that length does not divide SmoothOrder.
func NTT(values []fr.Element) error {
	if len(values) == 0 {
		return nil
	}
	roots, err := ensureTwiddles(len(values))
	if err != nil {
		return err
	}
	ntt(values, roots, len(values))
	return nil
}

// INTT computes the inverse NTT in place: scale by len^-1, reverse the tail,
// then apply the forward transform.
func INTT(values []fr.Element) error {
	if len(values) == 0 {
		return nil
	}
	var invLen fr.Element
	invLen.SetUint64(uint64(len(values)))
	invLen.Inverse(&invLen)
	for i := range values {
		values[i].Mul(&values[i], &invLen)
	}
	reverseTail(values)
	return NTT(values)
}

func reverseTail(values []fr.Element) {
	tail := values[1:]
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}
}

func ntt(values []fr.Element, roots []fr.Element, size int) {
	switch size {
	case 0, 1:
		return
	case 2:
		for off := 0; off+2 <= len(values); off += 2 {
			v := values[off : off+2]
			v0, v1 := v[0], v[1]
			v[0].Add(&v0, &v1)
			v[1].Sub(&v0, &v1)
		}
	case 3:
		for off := 0; off+3 <= len(values); off += 3 {
			v := values[off : off+3]
			v0 := v[0]
			var sum1, diff1 fr.Element
			sum1.Add(&v[1], &v[2])
			diff1.Sub(&v[1], &v[2])
			v[0].Add(&v0, &sum1)
			var t1, t2 fr.Element
			t1.Mul(&sum1, &halfOmega3PlusTwo)
			t2.Mul(&diff1, &halfOmega3MinusTwo)
			t1.Add(&t1, &v0)
			v[1].Add(&t1, &t2)
			v[2].Sub(&t1, &t2)
		}
	case 4:
		for off := 0; off+4 <= len(values); off += 4 {
			v := values[off : off+4]
			var s02, d02, s13, d13 fr.Element
			s02.Add(&v[0], &v[2])
			d02.Sub(&v[0], &v[2])
			s13.Add(&v[1], &v[3])
			d13.Sub(&v[1], &v[3])
			d13.Mul(&d13, &omega4)
			var s, d fr.Element
			s.Add(&s02, &s13)
			d.Sub(&s02, &s13)
			var s2, d2 fr.Element
			s2.Add(&d02, &d13)
			d2.Sub(&d02, &d13)
			v[0] = s
			v[1] = s2
			v[2] = d
			v[3] = d2
		}
	default:
		n1 := sqrtFactor(size)
		n2 := size / n1
		step := len(roots) / size
		for off := 0; off+size <= len(values); off += size {
			block := values[off : off+size]
			Transpose(block, n1, n2)
			ntt(block, roots, n1)
			Transpose(block, n2, n1)

			for i := 1; i < n1; i++ {
				base := (i * step) % len(roots)
				index := base
				for j := 1; j < n2; j++ {
					index %= len(roots)
					block[i*n2+j].Mul(&block[i*n2+j], &roots[index])
					index += base
				}
			}

			ntt(block, roots, n2)
			Transpose(block, n1, n2)
		}
	}
}

// Transpose reorders an rows*cols matrix stored in row-major order into
// column-major order (equivalently, transposes it in place). Exported
// because Ligero's column-major reshape and the six-step NTT both need it,
// and transposing twice with swapped dimensions is the identity
// (spec.md testable property 3).
func Transpose(matrix []fr.Element, rows, cols int) {
	if rows == cols {
		for i := 0; i < rows; i++ {
			for j := i + 1; j < cols; j++ {
				matrix[i*cols+j], matrix[j*rows+i] = matrix[j*rows+i], matrix[i*cols+j]
			}
		}
		return
	}
	cp := make([]fr.Element, len(matrix))
	copy(cp, matrix)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			matrix[j*rows+i] = cp[i*cols+j]
		}
	}
}
