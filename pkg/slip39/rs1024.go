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

package slip39

const (
	// ChecksumLengthWords is the number of words holding the RS1024 checksum.
	ChecksumLengthWords = 3

	customizationStandard   = "shamir"
	customizationExtendable = "shamir_extendable"
)

var rs1024Generator = [10]uint32{
	0xE0E040,
	0x1C1C080,
	0x3838100,
	0x7070200,
	0xE0E0009,
	0x1C0C2412,
	0x38086C24,
	0x3090FC48,
	0x21B1F890,
	0x3F3F120,
}

// customization returns the checksum customization string for a share.
func customization(extendable bool) []byte {
	if extendable {
		return []byte(customizationExtendable)
	}
	return []byte(customizationStandard)
}

// rs1024Polymod computes the BCH-style remainder over GF(1024) of the
// customization string followed by values.
func rs1024Polymod(custom []byte, values []int) uint32 {
	chk := uint32(1)
	step := func(v uint32) {
		b := chk >> 20
		chk = (chk&0xFFFFF)<<10 ^ v
		for i := 0; i < 10; i++ {
			if (b>>i)&1 != 0 {
				chk ^= rs1024Generator[i]
			}
		}
	}
	for _, c := range custom {
		step(uint32(c))
	}
	for _, v := range values {
		step(uint32(v))
	}
	return chk
}

// rs1024CreateChecksum returns the three checksum words for data.
func rs1024CreateChecksum(data []int, extendable bool) []int {
	values := make([]int, len(data)+ChecksumLengthWords)
	copy(values, data)
	polymod := rs1024Polymod(customization(extendable), values) ^ 1

	out := make([]int, ChecksumLengthWords)
	for i := 0; i < ChecksumLengthWords; i++ {
		shift := RadixBits * (ChecksumLengthWords - 1 - i)
		out[i] = int(polymod>>shift) & (Radix - 1)
	}
	return out
}

// rs1024VerifyChecksum reports whether data, including its trailing
// checksum words, is a valid codeword.
func rs1024VerifyChecksum(data []int, extendable bool) bool {
	return rs1024Polymod(customization(extendable), data) == 1
}
