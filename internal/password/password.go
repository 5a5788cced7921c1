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

// Package password holds the share passphrase in memory for the lifetime of
// one CLI command and zeroes it afterwards.
package password

import (
	"crypto/subtle"
	"errors"
)

// ErrPasswordZeroed is returned when the password has been zeroed.
var ErrPasswordZeroed = errors.New("password has been zeroed")

// ClearPassword stores a passphrase in memory as cleartext until Clear is
// called. The empty passphrase is valid: shares may be created without one.
type ClearPassword struct {
	password []byte
	cleared  bool
}

// NewClearPassword copies password into a new ClearPassword.
func NewClearPassword(password []byte) *ClearPassword {
	p := make([]byte, len(password))
	copy(p, password)
	return &ClearPassword{password: p}
}

// NewClearPasswordFromString creates a new ClearPassword from a string.
func NewClearPasswordFromString(password string) *ClearPassword {
	return &ClearPassword{password: []byte(password)}
}

// Bytes returns a copy of the passphrase, or nil once cleared.
func (p *ClearPassword) Bytes() []byte {
	if p.cleared {
		return nil
	}
	result := make([]byte, len(p.password))
	copy(result, p.password)
	return result
}

// Len returns the passphrase length in bytes.
func (p *ClearPassword) Len() int {
	return len(p.password)
}

// Clear overwrites the passphrase with zeros. It is irreversible.
func (p *ClearPassword) Clear() {
	if p.cleared {
		return
	}
	for i := range p.password {
		p.password[i] = 0
	}
	subtle.ConstantTimeCopy(1, p.password, make([]byte, len(p.password)))
	p.password = nil
	p.cleared = true
}

// Equal compares two passphrases in constant time.
func Equal(a, b *ClearPassword) (bool, error) {
	if a.cleared || b.cleared {
		return false, ErrPasswordZeroed
	}
	return subtle.ConstantTimeCompare(a.password, b.password) == 1, nil
}
