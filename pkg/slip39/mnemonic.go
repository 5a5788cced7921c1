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

import (
	"fmt"
	"strings"
)

const (
	// IDLengthBits is the length of the random share set identifier.
	IDLengthBits = 15

	// ExtendableFlagLengthBits is the length of the extendable backup flag.
	ExtendableFlagLengthBits = 1

	// IterationExpLengthBits is the length of the iteration exponent.
	IterationExpLengthBits = 4

	// IDExpLengthWords is the number of words holding the identifier,
	// extendable flag and iteration exponent.
	IDExpLengthWords = 2

	// MetadataLengthWords is the number of non-value words in a mnemonic.
	MetadataLengthWords = IDExpLengthWords + 2 + ChecksumLengthWords

	// MinStrengthBits is the minimum master secret length in bits.
	MinStrengthBits = 128

	// MinMnemonicLengthWords is the length of the shortest valid mnemonic.
	MinMnemonicLengthWords = MetadataLengthWords + (MinStrengthBits+RadixBits-1)/RadixBits

	// MaxShareCount is the maximum number of groups, and of members per group.
	MaxShareCount = 16

	maxIdentifier = 1<<IDLengthBits - 1
)

// Share is a single decoded share: the metadata carried by every word
// mnemonic plus its share value. GroupIndex and MemberIndex are zero based.
// The RS1024 checksum is not stored: it is computed on encode and checked
// on decode.
type Share struct {
	Identifier        uint16
	Extendable        bool
	IterationExponent uint8
	GroupIndex        int
	GroupThreshold    int
	GroupCount        int
	MemberIndex       int
	MemberThreshold   int
	Value             []byte
}

// Mnemonic encodes the share as a space separated word mnemonic.
func (s *Share) Mnemonic() (string, error) {
	return EncodeMnemonic(s)
}

func (s *Share) validate() error {
	switch {
	case int(s.Identifier) > maxIdentifier:
		return configError("encode", "identifier %d exceeds %d bits", s.Identifier, IDLengthBits)
	case s.IterationExponent > MaxIterationExponent:
		return configError("encode", "iteration exponent %d exceeds %d", s.IterationExponent, MaxIterationExponent)
	case s.GroupCount < 1 || s.GroupCount > MaxShareCount:
		return configError("encode", "group count %d out of range 1..%d", s.GroupCount, MaxShareCount)
	case s.GroupThreshold < 1 || s.GroupThreshold > s.GroupCount:
		return configError("encode", "group threshold %d out of range 1..%d", s.GroupThreshold, s.GroupCount)
	case s.GroupIndex < 0 || s.GroupIndex >= MaxShareCount:
		return configError("encode", "group index %d out of range 0..%d", s.GroupIndex, MaxShareCount-1)
	case s.MemberIndex < 0 || s.MemberIndex >= MaxShareCount:
		return configError("encode", "member index %d out of range 0..%d", s.MemberIndex, MaxShareCount-1)
	case s.MemberThreshold < 1 || s.MemberThreshold > MaxShareCount:
		return configError("encode", "member threshold %d out of range 1..%d", s.MemberThreshold, MaxShareCount)
	case len(s.Value)*8 < MinStrengthBits || len(s.Value)%2 != 0:
		return configError("encode", "share value must be an even number of bytes, at least %d, got %d",
			MinStrengthBits/8, len(s.Value))
	}
	return nil
}

// EncodeMnemonic encodes a share as a space separated word mnemonic.
func EncodeMnemonic(s *Share) (string, error) {
	indices, err := s.wordIndices()
	if err != nil {
		return "", err
	}
	words := make([]string, len(indices))
	for i, idx := range indices {
		words[i] = wordlist[idx]
	}
	return strings.Join(words, " "), nil
}

// wordIndices lays the share out as 10-bit words, MSB first:
// identifier(15) extendable(1) exponent(4) | group index(4) group
// threshold-1(4) group count-1(4) member index(4) member threshold-1(4) |
// value, left padded to a word boundary | checksum(30).
func (s *Share) wordIndices() ([]int, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	ext := 0
	if s.Extendable {
		ext = 1
	}
	idExp := int(s.Identifier)<<(ExtendableFlagLengthBits+IterationExpLengthBits) |
		ext<<IterationExpLengthBits |
		int(s.IterationExponent)

	params := s.GroupIndex<<16 |
		(s.GroupThreshold-1)<<12 |
		(s.GroupCount-1)<<8 |
		s.MemberIndex<<4 |
		(s.MemberThreshold - 1)

	data := []int{
		idExp >> RadixBits, idExp & (Radix - 1),
		params >> RadixBits, params & (Radix - 1),
	}
	data = append(data, bytesToWords(s.Value)...)
	data = append(data, rs1024CreateChecksum(data, s.Extendable)...)
	return data, nil
}

// DecodeMnemonic parses and verifies a word mnemonic. Every failure is
// reported with KindChecksum.
func DecodeMnemonic(mnemonic string) (*Share, error) {
	fields := strings.Fields(mnemonic)
	data := make([]int, len(fields))
	for i, w := range fields {
		idx, ok := WordIndex(w)
		if !ok {
			return nil, checksumError("unknown word %q at position %d", w, i+1)
		}
		data[i] = idx
	}

	if len(data) < MinMnemonicLengthWords {
		return nil, checksumError("mnemonic has %d words, need at least %d", len(data), MinMnemonicLengthWords)
	}

	valueWords := data[IDExpLengthWords+2 : len(data)-ChecksumLengthWords]
	paddingLen := (RadixBits * len(valueWords)) % 16
	if paddingLen > 8 {
		return nil, checksumError("invalid mnemonic length %d", len(data))
	}

	idExp := data[0]<<RadixBits | data[1]
	identifier := idExp >> (ExtendableFlagLengthBits + IterationExpLengthBits)
	extendable := (idExp>>IterationExpLengthBits)&1 == 1
	exponent := idExp & (1<<IterationExpLengthBits - 1)

	if !rs1024VerifyChecksum(data, extendable) {
		return nil, checksumError("checksum verification failed")
	}

	params := data[2]<<RadixBits | data[3]
	share := &Share{
		Identifier:        uint16(identifier),
		Extendable:        extendable,
		IterationExponent: uint8(exponent),
		GroupIndex:        params >> 16 & 0xF,
		GroupThreshold:    params>>12&0xF + 1,
		GroupCount:        params>>8&0xF + 1,
		MemberIndex:       params >> 4 & 0xF,
		MemberThreshold:   params&0xF + 1,
	}

	if share.GroupCount < share.GroupThreshold {
		return nil, checksumError("group threshold %d exceeds group count %d", share.GroupThreshold, share.GroupCount)
	}

	if valueWords[0]>>(RadixBits-paddingLen) != 0 {
		return nil, checksumError("invalid mnemonic padding")
	}
	share.Value = wordsToBytes(valueWords, (RadixBits*len(valueWords)-paddingLen)/8)

	return share, nil
}

// bytesToWords packs b as a big-endian integer into ceil(8n/10) words,
// left padded with zero bits.
func bytesToWords(b []byte) []int {
	n := (len(b)*8 + RadixBits - 1) / RadixBits
	out := make([]int, n)
	acc, bits, idx := 0, 0, n-1
	for i := len(b) - 1; i >= 0; i-- {
		acc |= int(b[i]) << bits
		bits += 8
		for bits >= RadixBits {
			out[idx] = acc & (Radix - 1)
			idx--
			acc >>= RadixBits
			bits -= RadixBits
		}
	}
	if bits > 0 {
		out[idx] = acc
	}
	return out
}

// wordsToBytes unpacks the low n bytes of the big-endian integer held in
// words. Padding bits above them are discarded.
func wordsToBytes(words []int, n int) []byte {
	out := make([]byte, n)
	acc, bits, idx := 0, 0, n-1
	for i := len(words) - 1; i >= 0 && idx >= 0; i-- {
		acc |= words[i] << bits
		bits += RadixBits
		for bits >= 8 && idx >= 0 {
			out[idx] = byte(acc)
			idx--
			acc >>= 8
			bits -= 8
		}
	}
	return out
}

// String describes the share without revealing its value.
func (s *Share) String() string {
	return fmt.Sprintf("share{id=%d group=%d/%d of %d member=%d threshold=%d}",
		s.Identifier, s.GroupIndex+1, s.GroupThreshold, s.GroupCount, s.MemberIndex+1, s.MemberThreshold)
}
