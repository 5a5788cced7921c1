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

// Package kdf provides the key derivation used by the share encryption
// round function.
//
// The Feistel cipher derives each round key through the KDFAdapter
// interface so tests can observe the exact inputs of every round, or
// substitute a failing implementation.
package kdf

import (
	"crypto"
	"errors"
)

// KDFAlgorithm names a key derivation function.
type KDFAlgorithm string

// AlgorithmPBKDF2 is PBKDF2 (RFC 8018) over HMAC.
const AlgorithmPBKDF2 KDFAlgorithm = "PBKDF2"

// String returns the string representation of the KDF algorithm
func (a KDFAlgorithm) String() string {
	return string(a)
}

// KDFParams contains parameters for key derivation
type KDFParams struct {
	Algorithm KDFAlgorithm

	// Salt is the round salt: the cipher salt prefix followed by the
	// right half of the Feistel state.
	Salt []byte

	// Iterations is the per-round PBKDF2 iteration count.
	Iterations int

	// KeyLength is the derived key length in bytes, equal to the half
	// state length.
	KeyLength int

	// Hash is the HMAC hash, SHA-256 for share encryption.
	Hash crypto.Hash
}

// KDFAdapter derives round keys.
type KDFAdapter interface {
	// DeriveKey derives params.KeyLength bytes from ikm.
	DeriveKey(ikm []byte, params *KDFParams) ([]byte, error)

	// Algorithm returns the KDF algorithm this adapter implements
	Algorithm() KDFAlgorithm

	// ValidateParams reports whether params can be used with this adapter.
	ValidateParams(params *KDFParams) error
}

var (
	ErrInvalidParams        = errors.New("kdf: invalid parameters")
	ErrInvalidSalt          = errors.New("kdf: invalid salt")
	ErrInvalidKeyLength     = errors.New("kdf: invalid key length")
	ErrInvalidIterations    = errors.New("kdf: invalid iterations")
	ErrInvalidHash          = errors.New("kdf: invalid or unsupported hash function")
	ErrInvalidIKM           = errors.New("kdf: invalid input key material")
	ErrUnsupportedAlgorithm = errors.New("kdf: unsupported algorithm")
)

// DefaultParams returns the parameters of a round at iteration exponent
// zero with a 32 byte key, or nil for an unknown algorithm. Callers fill in
// Salt.
func DefaultParams(algorithm KDFAlgorithm) *KDFParams {
	if algorithm != AlgorithmPBKDF2 {
		return nil
	}
	return &KDFParams{
		Algorithm:  AlgorithmPBKDF2,
		Iterations: MinPBKDF2Iterations,
		KeyLength:  32,
		Hash:       crypto.SHA256,
	}
}

// RoundParams returns the PBKDF2-HMAC-SHA256 parameters of one Feistel
// round over the right half r. The salt is prefix || r in a fresh buffer
// and the key is as long as r.
func RoundParams(iterations int, prefix, r []byte) *KDFParams {
	params := DefaultParams(AlgorithmPBKDF2)
	params.Salt = make([]byte, 0, len(prefix)+len(r))
	params.Salt = append(params.Salt, prefix...)
	params.Salt = append(params.Salt, r...)
	params.Iterations = iterations
	params.KeyLength = len(r)
	return params
}
