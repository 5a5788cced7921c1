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
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

const (
	// DigestIndex is the x coordinate of the share carrying the digest.
	DigestIndex byte = 254

	// SecretIndex is the x coordinate of the shared secret itself.
	SecretIndex byte = 255

	// DigestLength is the number of digest bytes stored in the digest share.
	DigestLength = 4

	// MaxShares is the largest number of shares a single split can emit.
	// Indices 254 and 255 are reserved for the digest and the secret.
	MaxShares = 254
)

var (
	// ErrInvalidConfig is returned for out-of-range thresholds or share counts.
	ErrInvalidConfig = errors.New("secretsharing: invalid configuration")

	// ErrSecretTooShort is returned when a secret cannot hold a digest.
	ErrSecretTooShort = errors.New("secretsharing: secret too short")

	// ErrInsufficientShares is returned when fewer than threshold shares are supplied.
	ErrInsufficientShares = errors.New("secretsharing: insufficient shares")

	// ErrDuplicateIndex is returned when two shares carry the same index.
	ErrDuplicateIndex = errors.New("secretsharing: duplicate share index")

	// ErrInconsistentShares is returned when share values differ in length.
	ErrInconsistentShares = errors.New("secretsharing: share values differ in length")

	// ErrDigestMismatch is returned when the recovered secret does not
	// match the digest embedded in the shares.
	ErrDigestMismatch = errors.New("secretsharing: digest mismatch")
)

// ShareConfig configures secret sharing parameters.
type ShareConfig struct {
	Threshold   int       // M - minimum shares needed to reconstruct
	TotalShares int       // N - total shares to create
	Rand        io.Reader // randomness source, crypto/rand when nil
}

// Share represents a single share of a secret.
type Share struct {
	Index byte   // x coordinate, 0 to MaxShares-1
	Value []byte // y coordinates, one per secret byte
}

// Shamir implements digest-protected Shamir's Secret Sharing over GF(256).
//
// The sharing polynomial is fixed by threshold-2 random shares, a digest
// share at DigestIndex and the secret at SecretIndex. The digest share holds
// HMAC-SHA256(key=R, msg=secret)[:4] || R for a random R, so any wrong
// combination of shares is detected on recovery.
type Shamir struct {
	config *ShareConfig
}

// NewShamir creates a new Shamir instance with the given configuration.
// Returns an error if the configuration is invalid.
func NewShamir(config *ShareConfig) (*Shamir, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}
	if config.Threshold < 1 {
		return nil, fmt.Errorf("%w: threshold must be at least 1, got %d", ErrInvalidConfig, config.Threshold)
	}
	if config.TotalShares < config.Threshold {
		return nil, fmt.Errorf("%w: total shares (%d) must be >= threshold (%d)",
			ErrInvalidConfig, config.TotalShares, config.Threshold)
	}
	if config.TotalShares > MaxShares {
		return nil, fmt.Errorf("%w: total shares must be <= %d, got %d",
			ErrInvalidConfig, MaxShares, config.TotalShares)
	}
	return &Shamir{config: config}, nil
}

func (s *Shamir) random(n int) ([]byte, error) {
	r := s.config.Rand
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// Split divides a secret into TotalShares shares with indices 0..N-1,
// any Threshold of which recover it. With a threshold of one every share
// is a copy of the secret.
func (s *Shamir) Split(secret []byte) ([]Share, error) {
	if len(secret) <= DigestLength {
		return nil, fmt.Errorf("%w: need more than %d bytes, got %d", ErrSecretTooShort, DigestLength, len(secret))
	}

	threshold := s.config.Threshold
	count := s.config.TotalShares
	shares := make([]Share, 0, count)

	if threshold == 1 {
		for i := 0; i < count; i++ {
			value := make([]byte, len(secret))
			copy(value, secret)
			shares = append(shares, Share{Index: byte(i), Value: value})
		}
		return shares, nil
	}

	randomShareCount := threshold - 2
	for i := 0; i < randomShareCount; i++ {
		value, err := s.random(len(secret))
		if err != nil {
			return nil, err
		}
		shares = append(shares, Share{Index: byte(i), Value: value})
	}

	randomPart, err := s.random(len(secret) - DigestLength)
	if err != nil {
		return nil, err
	}
	digestShare := append(createDigest(randomPart, secret), randomPart...)

	base := make([]Share, 0, threshold)
	base = append(base, shares...)
	base = append(base,
		Share{Index: DigestIndex, Value: digestShare},
		Share{Index: SecretIndex, Value: secret},
	)

	for i := randomShareCount; i < count; i++ {
		shares = append(shares, Share{Index: byte(i), Value: interpolate(base, byte(i))})
	}

	wipe(digestShare)
	wipe(randomPart)
	return shares, nil
}

// Combine reconstructs the secret from Threshold or more shares and
// verifies it against the embedded digest. Only the first Threshold
// shares take part in the interpolation.
func (s *Shamir) Combine(shares []Share) ([]byte, error) {
	threshold := s.config.Threshold
	if len(shares) < threshold {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientShares, threshold, len(shares))
	}
	if err := s.Verify(shares); err != nil {
		return nil, err
	}

	if threshold == 1 {
		out := make([]byte, len(shares[0].Value))
		copy(out, shares[0].Value)
		return out, nil
	}

	shares = shares[:threshold]
	secret := interpolate(shares, SecretIndex)
	digestShare := interpolate(shares, DigestIndex)
	defer wipe(digestShare)

	digest, randomPart := digestShare[:DigestLength], digestShare[DigestLength:]
	if !hmac.Equal(digest, createDigest(randomPart, secret)) {
		wipe(secret)
		return nil, ErrDigestMismatch
	}
	return secret, nil
}

// Verify checks that shares are structurally usable together: non-empty
// values of a single length and distinct indices.
func (s *Shamir) Verify(shares []Share) error {
	if len(shares) == 0 {
		return fmt.Errorf("%w: no shares", ErrInsufficientShares)
	}
	seen := make(map[byte]struct{}, len(shares))
	length := len(shares[0].Value)
	for i, share := range shares {
		if len(share.Value) == 0 {
			return fmt.Errorf("%w: share %d has empty value", ErrInconsistentShares, i)
		}
		if len(share.Value) != length {
			return fmt.Errorf("%w: share %d has %d bytes, expected %d",
				ErrInconsistentShares, i, len(share.Value), length)
		}
		if _, ok := seen[share.Index]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateIndex, share.Index)
		}
		seen[share.Index] = struct{}{}
	}
	return nil
}

// createDigest returns the first DigestLength bytes of
// HMAC-SHA256(key=randomPart, msg=secret).
func createDigest(randomPart, secret []byte) []byte {
	mac := hmac.New(sha256.New, randomPart)
	mac.Write(secret)
	return mac.Sum(nil)[:DigestLength]
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
