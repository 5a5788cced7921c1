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
	_ "crypto/sha256" // link SHA-256 for crypto.SHA256.New
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// MinPBKDF2Iterations is the per-round count at iteration exponent
	// zero: 10000 iterations spread over four rounds.
	MinPBKDF2Iterations = 2500

	// MinPBKDF2SaltLength is the shortest salt accepted. Extendable shares
	// of a 16 byte secret have an 8 byte round salt.
	MinPBKDF2SaltLength = 8
)

// PBKDF2Adapter derives round keys with golang.org/x/crypto/pbkdf2.
type PBKDF2Adapter struct{}

var _ KDFAdapter = (*PBKDF2Adapter)(nil)

// NewPBKDF2Adapter creates a new PBKDF2 adapter
func NewPBKDF2Adapter() *PBKDF2Adapter {
	return &PBKDF2Adapter{}
}

// DeriveKey runs PBKDF2 over ikm, which is the round number byte followed
// by the passphrase and therefore never empty.
func (p *PBKDF2Adapter) DeriveKey(ikm []byte, params *KDFParams) ([]byte, error) {
	if len(ikm) == 0 {
		return nil, ErrInvalidIKM
	}
	if err := p.ValidateParams(params); err != nil {
		return nil, err
	}
	return pbkdf2.Key(ikm, params.Salt, params.Iterations, params.KeyLength, params.Hash.New), nil
}

// Algorithm returns AlgorithmPBKDF2.
func (p *PBKDF2Adapter) Algorithm() KDFAlgorithm {
	return AlgorithmPBKDF2
}

// ValidateParams checks params against the PBKDF2 minimums.
func (p *PBKDF2Adapter) ValidateParams(params *KDFParams) error {
	switch {
	case params == nil:
		return ErrInvalidParams
	case params.Algorithm != AlgorithmPBKDF2:
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, params.Algorithm)
	case params.KeyLength <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidKeyLength, params.KeyLength)
	case len(params.Salt) < MinPBKDF2SaltLength:
		return fmt.Errorf("%w: %d bytes, minimum %d", ErrInvalidSalt, len(params.Salt), MinPBKDF2SaltLength)
	case params.Iterations < MinPBKDF2Iterations:
		return fmt.Errorf("%w: %d, minimum %d", ErrInvalidIterations, params.Iterations, MinPBKDF2Iterations)
	case params.Hash == 0 || !params.Hash.Available():
		return ErrInvalidHash
	}
	return nil
}
