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

package kdf

import (
	"crypto"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testIKM  = []byte("passphrase")
	testSalt = []byte("saltsaltsalt")
)

func TestKDFAlgorithm_String(t *testing.T) {
	assert.Equal(t, "PBKDF2", AlgorithmPBKDF2.String())
}

func TestDefaultParams(t *testing.T) {
	params := DefaultParams(AlgorithmPBKDF2)
	require.NotNil(t, params)
	assert.Equal(t, AlgorithmPBKDF2, params.Algorithm)
	assert.Equal(t, MinPBKDF2Iterations, params.Iterations)
	assert.Equal(t, 32, params.KeyLength)
	assert.Equal(t, crypto.SHA256, params.Hash)
	assert.Nil(t, params.Salt)

	assert.Nil(t, DefaultParams("scrypt"))
}

func TestRoundParams(t *testing.T) {
	prefix := []byte("shamir\x1f\x09")
	r := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	params := RoundParams(5000, prefix, r)
	assert.Equal(t, AlgorithmPBKDF2, params.Algorithm)
	assert.Equal(t, 5000, params.Iterations)
	assert.Equal(t, len(r), params.KeyLength)
	assert.Equal(t, crypto.SHA256, params.Hash)
	assert.Equal(t, append(append([]byte{}, prefix...), r...), params.Salt)

	// The salt does not alias its inputs.
	params.Salt[0] = 'X'
	params.Salt[len(params.Salt)-1] = 0
	assert.Equal(t, byte('s'), prefix[0])
	assert.Equal(t, byte(8), r[7])

	// Extendable shares have no prefix.
	params = RoundParams(2500, nil, r)
	assert.Equal(t, r, params.Salt)
	require.NoError(t, NewPBKDF2Adapter().ValidateParams(params))
}

func TestPBKDF2Adapter_DeriveKey(t *testing.T) {
	adapter := NewPBKDF2Adapter()

	valid := func() *KDFParams {
		return &KDFParams{
			Algorithm:  AlgorithmPBKDF2,
			Salt:       testSalt,
			Iterations: MinPBKDF2Iterations,
			KeyLength:  32,
			Hash:       crypto.SHA256,
		}
	}

	tests := []struct {
		name    string
		ikm     []byte
		params  func() *KDFParams
		wantErr error
	}{
		{name: "valid derivation", ikm: testIKM, params: valid},
		{name: "nil params", ikm: testIKM, params: func() *KDFParams { return nil }, wantErr: ErrInvalidParams},
		{name: "empty IKM", ikm: nil, params: valid, wantErr: ErrInvalidIKM},
		{
			name: "salt too short",
			ikm:  testIKM,
			params: func() *KDFParams {
				p := valid()
				p.Salt = []byte("short")
				return p
			},
			wantErr: ErrInvalidSalt,
		},
		{
			name: "iterations too low",
			ikm:  testIKM,
			params: func() *KDFParams {
				p := valid()
				p.Iterations = MinPBKDF2Iterations - 1
				return p
			},
			wantErr: ErrInvalidIterations,
		},
		{
			name: "invalid key length",
			ikm:  testIKM,
			params: func() *KDFParams {
				p := valid()
				p.KeyLength = 0
				return p
			},
			wantErr: ErrInvalidKeyLength,
		},
		{
			name: "missing hash",
			ikm:  testIKM,
			params: func() *KDFParams {
				p := valid()
				p.Hash = 0
				return p
			},
			wantErr: ErrInvalidHash,
		},
		{
			name: "wrong algorithm",
			ikm:  testIKM,
			params: func() *KDFParams {
				p := valid()
				p.Algorithm = "HKDF"
				return p
			},
			wantErr: ErrUnsupportedAlgorithm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params()
			key, err := adapter.DeriveKey(tt.ikm, params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, key, params.KeyLength)
		})
	}
}

func TestPBKDF2Adapter_KnownAnswer(t *testing.T) {
	adapter := NewPBKDF2Adapter()

	key, err := adapter.DeriveKey(testIKM, &KDFParams{
		Algorithm:  AlgorithmPBKDF2,
		Salt:       testSalt,
		Iterations: 2500,
		KeyLength:  32,
		Hash:       crypto.SHA256,
	})
	require.NoError(t, err)
	assert.Equal(t, "f0090802fed481184c26c2efc1a1415068fce8f9933d96b7be148c81b3c7cebb", hex.EncodeToString(key))

	// First Feistel round of identifier 7945 over an all-zero right half.
	key, err = adapter.DeriveKey(append([]byte{0}, "TREZOR"...),
		RoundParams(2500, []byte("shamir\x1f\x09"), make([]byte, 8)))
	require.NoError(t, err)
	assert.Equal(t, "89aca6ef6fb193e4", hex.EncodeToString(key))
}

func TestPBKDF2Adapter_Deterministic(t *testing.T) {
	adapter := NewPBKDF2Adapter()
	params := DefaultParams(AlgorithmPBKDF2)
	params.Salt = testSalt

	key1, err := adapter.DeriveKey(testIKM, params)
	require.NoError(t, err)
	key2, err := adapter.DeriveKey(testIKM, params)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	key3, err := adapter.DeriveKey([]byte("other"), params)
	require.NoError(t, err)
	assert.NotEqual(t, key1, key3)
}

func TestPBKDF2Adapter_Algorithm(t *testing.T) {
	var adapter KDFAdapter = NewPBKDF2Adapter()
	assert.Equal(t, AlgorithmPBKDF2, adapter.Algorithm())
}

func BenchmarkPBKDF2(b *testing.B) {
	adapter := NewPBKDF2Adapter()
	params := DefaultParams(AlgorithmPBKDF2)
	params.Salt = testSalt

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = adapter.DeriveKey(testIKM, params)
	}
}
