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

package rand

import (
	"encoding/hex"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver_SoftwareMode(t *testing.T) {
	resolver, err := NewResolver(ModeSoftware)
	require.NoError(t, err)
	defer func() { _ = resolver.Close() }()

	assert.True(t, resolver.Available())
	assert.IsType(t, &SoftwareResolver{}, resolver)
}

func TestNewResolver_NilConfig(t *testing.T) {
	resolver, err := NewResolver(nil)
	require.NoError(t, err)
	defer func() { _ = resolver.Close() }()

	assert.IsType(t, &SoftwareResolver{}, resolver)
}

func TestNewResolver_InvalidMode(t *testing.T) {
	_, err := NewResolver(&Config{Mode: "tpm2"})
	assert.ErrorContains(t, err, "unknown mode")

	_, err = NewResolver("software")
	assert.ErrorContains(t, err, "unsupported configuration type string")
}

func TestNormalizeConfig(t *testing.T) {
	var nilCfg *Config
	tests := []struct {
		name  string
		input interface{}
		want  Mode
	}{
		{name: "nil", input: nil, want: ModeSoftware},
		{name: "mode", input: ModeDeterministic, want: ModeDeterministic},
		{name: "nil config", input: nilCfg, want: ModeSoftware},
		{name: "empty config", input: &Config{}, want: ModeSoftware},
		{name: "config value", input: Config{Mode: ModeDeterministic}, want: ModeDeterministic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := normalizeConfig(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Mode)
		})
	}

	// The caller's Config is not modified.
	input := &Config{}
	_, err := normalizeConfig(input)
	require.NoError(t, err)
	assert.Equal(t, Mode(""), input.Mode)
}

// read draws n bytes from r.
func read(t testing.TB, r io.Reader, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	return buf
}

func TestSoftwareResolver_Read(t *testing.T) {
	resolver, _ := NewResolver(ModeSoftware)
	defer func() { _ = resolver.Close() }()

	for _, size := range []int{0, 1, 16, 32, 64, 256} {
		n, err := resolver.Read(make([]byte, size))
		require.NoError(t, err)
		assert.Equal(t, size, n)
	}

	assert.NotEqual(t, read(t, resolver, 32), read(t, resolver, 32))
}

func TestDeterministicResolver_KnownAnswer(t *testing.T) {
	resolver, err := NewResolver(&Config{Mode: ModeDeterministic, Seed: []byte("slip39-test-seed")})
	require.NoError(t, err)
	defer func() { _ = resolver.Close() }()

	assert.Equal(t, "df499452c7bdfbfee667a49899bfa23c", hex.EncodeToString(read(t, resolver, 16)))

	// The stream continues where the previous read stopped.
	assert.Equal(t, "3af887c4ffb2a077082efee81c5243d2", hex.EncodeToString(read(t, resolver, 16)))
}

func TestDeterministicResolver_Reproducible(t *testing.T) {
	stream := func(seed string) []byte {
		r, err := NewResolver(&Config{Mode: ModeDeterministic, Seed: []byte(seed)})
		require.NoError(t, err)
		return read(t, r, 100)
	}

	assert.Equal(t, stream("a"), stream("a"))
	assert.NotEqual(t, stream("a"), stream("b"))
}

func TestDeterministicResolver_EmptySeed(t *testing.T) {
	_, err := NewResolver(ModeDeterministic)
	assert.ErrorIs(t, err, ErrEmptySeed)

	_, err = NewResolver(Config{Mode: ModeDeterministic, Seed: []byte{}})
	assert.ErrorIs(t, err, ErrEmptySeed)
}

func TestDeterministicResolver_Close(t *testing.T) {
	r, err := NewResolver(&Config{Mode: ModeDeterministic, Seed: []byte("x")})
	require.NoError(t, err)
	assert.True(t, r.Available())
	require.NoError(t, r.Close())
	assert.False(t, r.Available())

	_, err = r.Read(make([]byte, 1))
	assert.Error(t, err)
}

func TestDeterministicResolver_Concurrent(t *testing.T) {
	r, err := NewResolver(&Config{Mode: ModeDeterministic, Seed: []byte("concurrent")})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Read(make([]byte, 64))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func BenchmarkSoftwareResolver_Read32(b *testing.B) {
	resolver, _ := NewResolver(ModeSoftware)
	defer func() { _ = resolver.Close() }()

	buf := make([]byte, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = resolver.Read(buf)
	}
}
