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

// Package rand provides the randomness sources used to generate master
// secrets, share identifiers and Shamir polynomials.
//
// Two sources exist. ModeSoftware reads crypto/rand and is the default for
// anything that leaves the process. ModeDeterministic expands a seed into a
// ChaCha20 keystream so test fixtures can be regenerated byte for byte.
//
// Every Resolver is an io.Reader and can be handed to the share splitter:
//
//	rng, _ := rand.NewResolver(rand.ModeSoftware)
//	splitter := &slip39.Splitter{Rand: rng}
//
// Resolvers are safe for concurrent use.
package rand

import (
	"crypto/rand"
	"fmt"
)

// Mode specifies which RNG source to use.
type Mode string

const (
	// ModeSoftware reads the operating system CSPRNG through crypto/rand.
	ModeSoftware Mode = "software"

	// ModeDeterministic uses a seeded ChaCha20 keystream. Never use it for
	// real secrets: anyone holding the seed can regenerate every share.
	ModeDeterministic Mode = "deterministic"
)

// Config contains RNG configuration.
type Config struct {
	// Mode defaults to ModeSoftware.
	Mode Mode

	// Seed keys the deterministic source (ModeDeterministic only).
	Seed []byte
}

// Resolver is a source of random bytes.
type Resolver interface {
	// Read fills p completely or returns an error.
	Read(p []byte) (n int, err error)

	// Available returns false once the resolver is closed.
	Available() bool

	// Close releases the resolver. Reads after Close fail.
	Close() error
}

// NewResolver creates a resolver from a Mode, a Config, a *Config or nil,
// which selects ModeSoftware.
func NewResolver(config interface{}) (Resolver, error) {
	cfg, err := normalizeConfig(config)
	if err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case ModeSoftware:
		return &SoftwareResolver{}, nil
	case ModeDeterministic:
		return newDeterministicResolver(cfg.Seed)
	default:
		return nil, fmt.Errorf("rand: unknown mode %q", cfg.Mode)
	}
}

func normalizeConfig(config interface{}) (*Config, error) {
	var cfg Config
	switch v := config.(type) {
	case nil:
	case Mode:
		cfg.Mode = v
	case Config:
		cfg = v
	case *Config:
		if v != nil {
			cfg = *v
		}
	default:
		return nil, fmt.Errorf("rand: unsupported configuration type %T", config)
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeSoftware
	}
	return &cfg, nil
}

// SoftwareResolver reads crypto/rand. The zero value is ready to use.
type SoftwareResolver struct{}

var _ Resolver = (*SoftwareResolver)(nil)

// Read implements io.Reader.
func (s *SoftwareResolver) Read(p []byte) (int, error) {
	n, err := rand.Read(p)
	if err != nil {
		return n, fmt.Errorf("rand: system source: %w", err)
	}
	return n, nil
}

// Available always reports true.
func (s *SoftwareResolver) Available() bool { return true }

// Close is a no-op.
func (s *SoftwareResolver) Close() error { return nil }
