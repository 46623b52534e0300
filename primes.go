// MIT License

package ddkit

import "math/big"

// Prime-sized table helpers, used to size the operation cache so that
// modulo-hashing spreads entries evenly (node-store buckets are not
// prime-sized; they double). Grounded verbatim on the teacher's primes.go.

func hasFactor(src, n int) bool {
	return src != n && src%n == 0
}

func hasEasyFactors(src int) bool {
	return hasFactor(src, 3) || hasFactor(src, 5) || hasFactor(src, 7) || hasFactor(src, 11) || hasFactor(src, 13)
}

// primeGte returns the smallest prime >= src.
func primeGte(src int) int {
	if src < 2 {
		return 2
	}
	if src%2 == 0 {
		src++
	}
	for {
		if hasEasyFactors(src) {
			src += 2
			continue
		}
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src += 2
	}
}

// nextPow2 rounds n up to the next power of two (spec.md §3.3: "sized to
// a power of two"). Nothing calls it: store.go's per-variable buckets
// start at a power of two and grow by doubling.
func nextPow2(n int) int {
	if n < 2 {
		return 2
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
