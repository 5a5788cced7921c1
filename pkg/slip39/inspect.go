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

// ShareInfo is the public metadata of a single mnemonic. Group and member
// numbers are one based.
type ShareInfo struct {
	Identifier        uint16 `json:"identifier" yaml:"identifier"`
	Extendable        bool   `json:"extendable" yaml:"extendable"`
	IterationExponent uint8  `json:"iteration_exponent" yaml:"iteration_exponent"`
	Iterations        int    `json:"iterations" yaml:"iterations"`
	GroupNumber       int    `json:"group" yaml:"group"`
	GroupThreshold    int    `json:"group_threshold" yaml:"group_threshold"`
	GroupCount        int    `json:"group_count" yaml:"group_count"`
	MemberNumber      int    `json:"member" yaml:"member"`
	MemberThreshold   int    `json:"member_threshold" yaml:"member_threshold"`
	ValueBytes        int    `json:"value_bytes" yaml:"value_bytes"`
	Words             int    `json:"words" yaml:"words"`
}

// Inspect decodes a mnemonic and reports its metadata. The share value is
// not included.
func Inspect(mnemonic string) (*ShareInfo, error) {
	s, err := DecodeMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	defer wipe(s.Value)

	words := MetadataLengthWords + (len(s.Value)*8+RadixBits-1)/RadixBits
	return &ShareInfo{
		Identifier:        s.Identifier,
		Extendable:        s.Extendable,
		IterationExponent: s.IterationExponent,
		Iterations:        BaseIterationCount << s.IterationExponent,
		GroupNumber:       s.GroupIndex + 1,
		GroupThreshold:    s.GroupThreshold,
		GroupCount:        s.GroupCount,
		MemberNumber:      s.MemberIndex + 1,
		MemberThreshold:   s.MemberThreshold,
		ValueBytes:        len(s.Value),
		Words:             words,
	}, nil
}
