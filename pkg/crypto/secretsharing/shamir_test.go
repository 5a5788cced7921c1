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

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func randomSecret(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

// subsets calls fn with every k-element subset of shares.
func subsets(shares []Share, k int, fn func([]Share)) {
	var walk func(start int, acc []Share)
	walk = func(start int, acc []Share) {
		if len(acc) == k {
			fn(append([]Share(nil), acc...))
			return
		}
		for i := start; i < len(shares); i++ {
			walk(i+1, append(acc, shares[i]))
		}
	}
	walk(0, nil)
}

// TestNewShamir tests Shamir instance creation with various configurations.
func TestNewShamir(t *testing.T) {
	tests := []struct {
		name      string
		config    *ShareConfig
		wantError bool
	}{
		{name: "valid configuration", config: &ShareConfig{Threshold: 3, TotalShares: 5}},
		{name: "threshold equals total shares", config: &ShareConfig{Threshold: 5, TotalShares: 5}},
		{name: "minimum valid configuration", config: &ShareConfig{Threshold: 1, TotalShares: 1}},
		{name: "maximum valid configuration", config: &ShareConfig{Threshold: MaxShares, TotalShares: MaxShares}},
		{name: "nil config", config: nil, wantError: true},
		{name: "zero threshold", config: &ShareConfig{Threshold: 0, TotalShares: 5}, wantError: true},
		{name: "threshold greater than total", config: &ShareConfig{Threshold: 6, TotalShares: 5}, wantError: true},
		{name: "too many shares", config: &ShareConfig{Threshold: 2, TotalShares: MaxShares + 1}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewShamir(tt.config)
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.config.Threshold, s.config.Threshold)
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		total     int
		secretLen int
		wantError error
	}{
		{name: "1 of 1", threshold: 1, total: 1, secretLen: 16},
		{name: "1 of 5", threshold: 1, total: 5, secretLen: 16},
		{name: "2 of 3", threshold: 2, total: 3, secretLen: 16},
		{name: "3 of 5", threshold: 3, total: 5, secretLen: 32},
		{name: "16 of 16", threshold: 16, total: 16, secretLen: 64},
		{name: "secret too short", threshold: 2, total: 3, secretLen: DigestLength, wantError: ErrSecretTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewShamir(&ShareConfig{Threshold: tt.threshold, TotalShares: tt.total})
			require.NoError(t, err)

			secret := randomSecret(t, tt.secretLen)
			shares, err := s.Split(secret)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			require.Len(t, shares, tt.total)

			for i, share := range shares {
				assert.Equal(t, byte(i), share.Index)
				assert.Len(t, share.Value, tt.secretLen)
				if tt.threshold == 1 {
					assert.Equal(t, secret, share.Value)
				}
			}
		})
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		threshold int
		total     int
	}{
		{1, 1}, {1, 3}, {2, 2}, {2, 3}, {3, 5}, {4, 6}, {5, 5},
	}

	for _, tt := range tests {
		s, err := NewShamir(&ShareConfig{Threshold: tt.threshold, TotalShares: tt.total})
		require.NoError(t, err)

		secret := randomSecret(t, 32)
		shares, err := s.Split(secret)
		require.NoError(t, err)

		subsets(shares, tt.threshold, func(subset []Share) {
			recovered, err := s.Combine(subset)
			require.NoError(t, err)
			assert.Equal(t, secret, recovered)
		})
	}
}

// TestCombineKnownAnswer recovers the encrypted master secret of the
// 2-of-3 SLIP-0039 reference vector from its two member share values.
func TestCombineKnownAnswer(t *testing.T) {
	s, err := NewShamir(&ShareConfig{Threshold: 2, TotalShares: 3})
	require.NoError(t, err)

	shares := []Share{
		{Index: 2, Value: mustHex(t, "08fb14b66e692e25dfe2edf53289ed62")},
		{Index: 0, Value: mustHex(t, "06ab48fef4bedc8ce58baeef0a73f76e")},
	}
	secret, err := s.Combine(shares)
	require.NoError(t, err)
	assert.Equal(t, "cdc017fddc829e791b1371780be0605a", hex.EncodeToString(secret))
}

func TestCombineInsufficient(t *testing.T) {
	s, err := NewShamir(&ShareConfig{Threshold: 3, TotalShares: 5})
	require.NoError(t, err)

	shares, err := s.Split(randomSecret(t, 16))
	require.NoError(t, err)

	_, err = s.Combine(shares[:2])
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = s.Combine(nil)
	assert.ErrorIs(t, err, ErrInsufficientShares)
}

func TestCombineWrongShares(t *testing.T) {
	s, err := NewShamir(&ShareConfig{Threshold: 2, TotalShares: 3})
	require.NoError(t, err)

	sharesA, err := s.Split(randomSecret(t, 16))
	require.NoError(t, err)
	sharesB, err := s.Split(randomSecret(t, 16))
	require.NoError(t, err)

	// Shares from two different splits interpolate to a point that does
	// not match either digest.
	_, err = s.Combine([]Share{sharesA[0], sharesB[1]})
	assert.ErrorIs(t, err, ErrDigestMismatch)
}

func TestCombineTamperedShare(t *testing.T) {
	s, err := NewShamir(&ShareConfig{Threshold: 3, TotalShares: 5})
	require.NoError(t, err)

	secret := randomSecret(t, 32)
	shares, err := s.Split(secret)
	require.NoError(t, err)

	for pos := 0; pos < len(secret); pos++ {
		tampered := []Share{
			{Index: shares[0].Index, Value: bytes.Clone(shares[0].Value)},
			shares[1],
			shares[2],
		}
		tampered[0].Value[pos] ^= 0x01
		_, err := s.Combine(tampered)
		assert.ErrorIs(t, err, ErrDigestMismatch, "byte %d", pos)
	}
}

func TestVerify(t *testing.T) {
	s, err := NewShamir(&ShareConfig{Threshold: 2, TotalShares: 3})
	require.NoError(t, err)

	shares, err := s.Split(randomSecret(t, 16))
	require.NoError(t, err)
	require.NoError(t, s.Verify(shares))

	tests := []struct {
		name    string
		shares  []Share
		wantErr error
	}{
		{
			name:    "duplicate index",
			shares:  []Share{shares[0], shares[0]},
			wantErr: ErrDuplicateIndex,
		},
		{
			name:    "length mismatch",
			shares:  []Share{shares[0], {Index: 1, Value: shares[1].Value[:8]}},
			wantErr: ErrInconsistentShares,
		},
		{
			name:    "empty value",
			shares:  []Share{{Index: 0}},
			wantErr: ErrInconsistentShares,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Verify(tt.shares)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source exhausted")
}

func TestSplitRandomFailure(t *testing.T) {
	s, err := NewShamir(&ShareConfig{Threshold: 3, TotalShares: 5, Rand: failingReader{}})
	require.NoError(t, err)

	_, err = s.Split(randomSecret(t, 16))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entropy source exhausted")
}

func TestSplitUsesConfiguredReader(t *testing.T) {
	secret := randomSecret(t, 16)
	split := func() []Share {
		s, err := NewShamir(&ShareConfig{
			Threshold:   3,
			TotalShares: 4,
			Rand:        bytes.NewReader(bytes.Repeat([]byte{0x5a}, 64)),
		})
		require.NoError(t, err)
		shares, err := s.Split(secret)
		require.NoError(t, err)
		return shares
	}
	assert.Equal(t, split(), split())
}

func BenchmarkSplit32(b *testing.B) {
	s, _ := NewShamir(&ShareConfig{Threshold: 3, TotalShares: 5})
	secret := make([]byte, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Split(secret)
	}
}

func BenchmarkCombine32(b *testing.B) {
	s, _ := NewShamir(&ShareConfig{Threshold: 3, TotalShares: 5})
	shares, _ := s.Split(make([]byte, 32))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Combine(shares[:3])
	}
}
