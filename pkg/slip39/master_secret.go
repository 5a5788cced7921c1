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
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/jeremyhahn/go-slip39/pkg/crypto/rand"
)

// DefaultEntropyBits is the master secret length used by the CLI when none
// is requested.
const DefaultEntropyBits = 256

// MasterSecret holds the secret being shared. Bytes returns a copy; Clear
// zeroes the backing buffer.
type MasterSecret struct {
	b []byte
}

// NewMasterSecret draws a master secret of entropyBits from rnd. A nil rnd
// uses the operating system source. entropyBits must be at least 128 and a
// multiple of 16.
func NewMasterSecret(entropyBits int, rnd io.Reader) (*MasterSecret, error) {
	if entropyBits < MinStrengthBits || entropyBits%16 != 0 {
		return nil, configError("generate",
			"entropy must be at least %d bits and a multiple of 16, got %d", MinStrengthBits, entropyBits)
	}
	b := make([]byte, entropyBits/8)
	if _, err := io.ReadFull(randomSource(rnd), b); err != nil {
		return nil, fmt.Errorf("slip39: read entropy: %w", err)
	}
	return &MasterSecret{b: b}, nil
}

// MasterSecretFromBytes copies b into a MasterSecret. Only a non-empty even
// length is checked here; Split enforces the minimum strength.
func MasterSecretFromBytes(b []byte) (*MasterSecret, error) {
	if len(b) == 0 || len(b)%2 != 0 {
		return nil, configError("master_secret", "length must be a non-zero even number of bytes, got %d", len(b))
	}
	return &MasterSecret{b: append([]byte(nil), b...)}, nil
}

// MasterSecretFromHex decodes a hex string, ignoring surrounding whitespace
// and an optional 0x prefix.
func MasterSecretFromHex(s string) (*MasterSecret, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		// The decoder error quotes the offending character of the secret.
		return nil, configError("master_secret", "invalid hex encoding")
	}
	defer wipe(b)
	return MasterSecretFromBytes(b)
}

// Bytes returns a copy of the secret.
func (m *MasterSecret) Bytes() []byte {
	return append([]byte(nil), m.b...)
}

// Hex returns the secret as lowercase hex.
func (m *MasterSecret) Hex() string {
	return hex.EncodeToString(m.b)
}

// Len returns the secret length in bytes.
func (m *MasterSecret) Len() int {
	return len(m.b)
}

// Equal compares two secrets in constant time.
func (m *MasterSecret) Equal(other *MasterSecret) bool {
	if m == nil || other == nil {
		return m == other
	}
	return subtle.ConstantTimeCompare(m.b, other.b) == 1
}

// Clear zeroes the secret.
func (m *MasterSecret) Clear() {
	wipe(m.b)
}

// String hides the secret.
func (m *MasterSecret) String() string {
	return fmt.Sprintf("MasterSecret(%d bytes)", len(m.b))
}

func randomSource(r io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return &rand.SoftwareResolver{}
}
