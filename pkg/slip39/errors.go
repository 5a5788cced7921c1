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
	"errors"
	"fmt"
)

// Kind classifies every error returned by this package.
type Kind int

const (
	// KindUnknown is reported for errors that did not come from this package.
	KindUnknown Kind = iota

	// KindConfiguration covers invalid thresholds, counts, secret lengths,
	// passphrases and iteration exponents. Raised before any cryptography runs.
	KindConfiguration

	// KindChecksum covers mnemonics that fail to decode: unknown words, bad
	// length or padding, or an RS1024 checksum mismatch.
	KindChecksum

	// KindInsufficientShares is raised when too few members or groups are
	// supplied to recover the secret.
	KindInsufficientShares

	// KindMismatchedShares is raised when shares do not belong to the same
	// split or carry conflicting parameters.
	KindMismatchedShares

	// KindDigestMismatch is raised when a recovered value fails its digest,
	// which includes recovery with the wrong passphrase.
	KindDigestMismatch
)

// Sentinel errors for each Kind. These errors can be checked with errors.Is().
var (
	// ErrConfiguration indicates invalid split parameters.
	ErrConfiguration = errors.New("slip39: invalid configuration")

	// ErrChecksum indicates a malformed or corrupted mnemonic.
	ErrChecksum = errors.New("slip39: invalid mnemonic checksum")

	// ErrInsufficientShares indicates the threshold was not met.
	ErrInsufficientShares = errors.New("slip39: insufficient shares")

	// ErrMismatchedShares indicates shares from different splits or with
	// conflicting parameters.
	ErrMismatchedShares = errors.New("slip39: mismatched shares")

	// ErrDigestMismatch indicates a failed digest check.
	ErrDigestMismatch = errors.New("slip39: digest mismatch")
)

// String returns the snake_case name of the kind, suitable for metric labels.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindChecksum:
		return "checksum"
	case KindInsufficientShares:
		return "insufficient_shares"
	case KindMismatchedShares:
		return "mismatched_shares"
	case KindDigestMismatch:
		return "digest_mismatch"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindChecksum:
		return ErrChecksum
	case KindInsufficientShares:
		return ErrInsufficientShares
	case KindMismatchedShares:
		return ErrMismatchedShares
	case KindDigestMismatch:
		return ErrDigestMismatch
	default:
		return nil
	}
}

// Error is the concrete error type returned by this package.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "split" or "decode"
	Msg  string // human readable detail
	Err  error  // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "slip39: error"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Op)
	}
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the kind sentinel and the cause for errors.Is() support.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the Kind of err, or KindUnknown when err is nil or did
// not originate from this package.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for _, k := range []Kind{
		KindConfiguration, KindChecksum, KindInsufficientShares,
		KindMismatchedShares, KindDigestMismatch,
	} {
		if errors.Is(err, k.sentinel()) {
			return k
		}
	}
	return KindUnknown
}

func newError(kind Kind, op string, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: cause}
}

func configError(op, format string, args ...interface{}) error {
	return newError(KindConfiguration, op, nil, format, args...)
}

func checksumError(format string, args ...interface{}) error {
	return newError(KindChecksum, "decode", nil, format, args...)
}

func insufficientError(format string, args ...interface{}) error {
	return newError(KindInsufficientShares, "combine", nil, format, args...)
}

func mismatchedError(format string, args ...interface{}) error {
	return newError(KindMismatchedShares, "combine", nil, format, args...)
}
