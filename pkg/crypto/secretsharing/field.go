// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.
//
// go-slip39 is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package secretsharing

// GF(256) arithmetic using the Rijndael field representation.
// The field is defined by the irreducible polynomial x^8 + x^4 + x^3 + x + 1.

// gfAdd performs addition in GF(256), which is XOR.
func gfAdd(a, b byte) byte {
	return a ^ b
}

// gfSub performs subtraction in GF(256), which is also XOR.
func gfSub(a, b byte) byte {
	return a ^ b
}

// gfMul performs multiplication in GF(256).
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExpTable[(int(gfLogTable[a])+int(gfLogTable[b]))%255]
}

// gfDiv divides a by b in GF(256). b must be non-zero.
func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return gfMul(a, gfInverse(b))
}

// gfInverse computes the multiplicative inverse in GF(256).
func gfInverse(a byte) byte {
	if a == 0 {
		panic("division by zero in GF(256)")
	}
	return gfExpTable[(255-int(gfLogTable[a]))%255]
}

// Pre-computed logarithm and exponentiation tables for GF(256).
var (
	gfLogTable [256]byte
	gfExpTable [256]byte
)

func init() {
	// Generator 0x03, irreducible polynomial 0x11B
	var x byte = 1
	for i := 0; i < 255; i++ {
		gfExpTable[i] = x
		gfLogTable[x] = byte(i)
		x = gfMultiply(x, 0x03)
	}
	gfExpTable[255] = gfExpTable[0]
}

// gfMultiply performs multiplication in GF(256) using the peasant algorithm.
// This is used only during table initialization and in tests.
func gfMultiply(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		highBit := a & 0x80
		a <<= 1
		if highBit != 0 {
			a ^= 0x1B
		}
		b >>= 1
	}
	return p
}

// evaluatePolynomial evaluates a polynomial at point x in GF(256).
// Uses Horner's method: p(x) = a0 + x(a1 + x(a2 + ... + x*an))
func evaluatePolynomial(coeffs []byte, x byte) byte {
	if len(coeffs) == 0 {
		return 0
	}
	result := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = gfAdd(gfMul(result, x), coeffs[i])
	}
	return result
}

// interpolate evaluates, at point x, the unique polynomial of degree
// len(shares)-1 passing through every share, independently for each byte
// position. All share values must have the same length and the share
// indices must be distinct.
func interpolate(shares []Share, x byte) []byte {
	for _, s := range shares {
		if s.Index == x {
			out := make([]byte, len(s.Value))
			copy(out, s.Value)
			return out
		}
	}

	out := make([]byte, len(shares[0].Value))
	for i := range shares {
		xi := shares[i].Index

		// Lagrange basis l_i(x) = prod_{j != i} (x - xj) / (xi - xj)
		var numerator byte = 1
		var denominator byte = 1
		for j := range shares {
			if i == j {
				continue
			}
			xj := shares[j].Index
			numerator = gfMul(numerator, gfSub(x, xj))
			denominator = gfMul(denominator, gfSub(xi, xj))
		}
		basis := gfDiv(numerator, denominator)

		for k, y := range shares[i].Value {
			out[k] = gfAdd(out[k], gfMul(y, basis))
		}
	}
	return out
}
