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

// GroupShare is one group of a split: its member threshold and the member
// shares with their mnemonics, in member index order.
type GroupShare struct {
	GroupIndex      int
	MemberThreshold int
	Shares          []Share
	Mnemonics       []string
}

// MemberCount returns the number of member shares in the group.
func (g GroupShare) MemberCount() int {
	return len(g.Shares)
}

func (g GroupShare) clone() GroupShare {
	out := GroupShare{
		GroupIndex:      g.GroupIndex,
		MemberThreshold: g.MemberThreshold,
		Shares:          make([]Share, len(g.Shares)),
		Mnemonics:       append([]string(nil), g.Mnemonics...),
	}
	for i, s := range g.Shares {
		s.Value = append([]byte(nil), s.Value...)
		out.Shares[i] = s
	}
	return out
}

// Slip39 is the result of a split. It is never mutated after creation;
// accessors return copies.
type Slip39 struct {
	identifier        uint16
	extendable        bool
	iterationExponent uint8
	groupThreshold    int
	groups            []GroupShare
}

// Identifier returns the random identifier shared by every mnemonic.
func (s *Slip39) Identifier() uint16 { return s.identifier }

// Extendable reports whether the shares use the extendable backup format.
func (s *Slip39) Extendable() bool { return s.extendable }

// IterationExponent returns the PBKDF2 iteration exponent.
func (s *Slip39) IterationExponent() uint8 { return s.iterationExponent }

// GroupThreshold returns the number of groups required for recovery.
func (s *Slip39) GroupThreshold() int { return s.groupThreshold }

// GroupCount returns the number of groups.
func (s *Slip39) GroupCount() int { return len(s.groups) }

// Groups returns a deep copy of the groups.
func (s *Slip39) Groups() []GroupShare {
	out := make([]GroupShare, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.clone()
	}
	return out
}

// Group returns a copy of group i and false when i is out of range.
func (s *Slip39) Group(i int) (GroupShare, bool) {
	if i < 0 || i >= len(s.groups) {
		return GroupShare{}, false
	}
	return s.groups[i].clone(), true
}

// Mnemonics returns the mnemonics of every group, indexed by group.
func (s *Slip39) Mnemonics() [][]string {
	out := make([][]string, len(s.groups))
	for i, g := range s.groups {
		out[i] = append([]string(nil), g.Mnemonics...)
	}
	return out
}

// ShareCount returns the total number of member shares.
func (s *Slip39) ShareCount() int {
	n := 0
	for _, g := range s.groups {
		n += len(g.Shares)
	}
	return n
}

// shareBuilder stamps the split-wide parameters onto each member share.
type shareBuilder struct {
	identifier        uint16
	extendable        bool
	iterationExponent uint8
	groupThreshold    int
	groupCount        int
}

func (b shareBuilder) build(groupIndex, memberThreshold, memberIndex int, value []byte) Share {
	return Share{
		Identifier:        b.identifier,
		Extendable:        b.extendable,
		IterationExponent: b.iterationExponent,
		GroupIndex:        groupIndex,
		GroupThreshold:    b.groupThreshold,
		GroupCount:        b.groupCount,
		MemberIndex:       memberIndex,
		MemberThreshold:   memberThreshold,
		Value:             value,
	}
}
