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
	"regexp"
	"strconv"
	"strings"
)

var groupSpecPattern = regexp.MustCompile(`^(\d+)\s*(?:-?of-?|:|/)\s*(\d+)$`)

// ParseGroupSpec parses "T-of-N", "TofN", "T:N" or "T/N".
func ParseGroupSpec(s string) (GroupSpec, error) {
	m := groupSpecPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return GroupSpec{}, configError("parse", "invalid group %q, expected T-of-N", s)
	}
	threshold, err := strconv.Atoi(m[1])
	if err != nil {
		return GroupSpec{}, newError(KindConfiguration, "parse", err, "invalid group %q", s)
	}
	count, err := strconv.Atoi(m[2])
	if err != nil {
		return GroupSpec{}, newError(KindConfiguration, "parse", err, "invalid group %q", s)
	}
	if count < 1 || count > MaxShareCount {
		return GroupSpec{}, configError("parse", "group %q: member count must be between 1 and %d", s, MaxShareCount)
	}
	if threshold < 1 || threshold > count {
		return GroupSpec{}, configError("parse", "group %q: threshold must be between 1 and %d", s, count)
	}
	return GroupSpec{MemberThreshold: threshold, MemberCount: count}, nil
}

// ParseGroupSpecs parses each entry with ParseGroupSpec.
func ParseGroupSpecs(specs []string) ([]GroupSpec, error) {
	out := make([]GroupSpec, 0, len(specs))
	for _, s := range specs {
		g, err := ParseGroupSpec(s)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
