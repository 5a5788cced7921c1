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
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// ErrEmptySeed is returned when a deterministic resolver is created without a seed.
var ErrEmptySeed = errors.New("rand: deterministic mode requires a seed")

// DeterministicResolver expands a seed into a ChaCha20 keystream. The
// cipher key is SHA-256(seed) and the nonce is zero, so equal seeds yield
// equal byte streams.
type DeterministicResolver struct {
	mu     sync.Mutex
	stream *chacha20.Cipher
	closed bool
}

var _ Resolver = (*DeterministicResolver)(nil)

func newDeterministicResolver(seed []byte) (Resolver, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySeed
	}
	key := sha256.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	stream, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to create keystream: %w", err)
	}
	return &DeterministicResolver{stream: stream}, nil
}

// Read fills p with the next len(p) keystream bytes.
func (d *DeterministicResolver) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, errors.New("rand: deterministic resolver is closed")
	}
	for i := range p {
		p[i] = 0
	}
	d.stream.XORKeyStream(p, p)
	return len(p), nil
}

// Available reports whether the resolver is still open.
func (d *DeterministicResolver) Available() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.closed
}

func (d *DeterministicResolver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
