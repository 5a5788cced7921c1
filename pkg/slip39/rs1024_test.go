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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRS1024_VectorVerifies(t *testing.T) {
	for _, m := range []string{vector1of1, vector2of3a, vector2of3b} {
		data := indicesOf(t, m)
		assert.True(t, rs1024VerifyChecksum(data, false))
		assert.False(t, rs1024VerifyChecksum(data, true))
	}
}

func TestRS1024_CreateMatchesVector(t *testing.T) {
	data := indicesOf(t, vector1of1)
	body := data[:len(data)-ChecksumLengthWords]
	assert.Equal(t, data[len(data)-ChecksumLengthWords:], rs1024CreateChecksum(body, false))
}

func TestRS1024_DetectsSingleErrors(t *testing.T) {
	data := indicesOf(t, vector2of3a)
	for pos := range data {
		for _, delta := range []int{1, 512, Radix - 1} {
			corrupted := append([]int(nil), data...)
			corrupted[pos] = (corrupted[pos] + delta) % Radix
			assert.False(t, rs1024VerifyChecksum(corrupted, false), "position %d delta %d", pos, delta)
		}
	}
}

func TestRS1024_Extendable(t *testing.T) {
	body := []int{1, 2, 3, 4, 5, 6, 7}
	std := append(append([]int(nil), body...), rs1024CreateChecksum(body, false)...)
	ext := append(append([]int(nil), body...), rs1024CreateChecksum(body, true)...)

	assert.True(t, rs1024VerifyChecksum(std, false))
	assert.True(t, rs1024VerifyChecksum(ext, true))
	assert.NotEqual(t, std, ext)
}

func indicesOf(t *testing.T, m string) []int {
	t.Helper()
	fields := strings.Fields(m)
	out := make([]int, len(fields))
	for i, w := range fields {
		idx, ok := WordIndex(w)
		require.True(t, ok, w)
		out[i] = idx
	}
	return out
}
