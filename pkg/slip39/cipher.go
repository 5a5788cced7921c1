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
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-slip39/pkg/adapters/kdf"
)

const (
	// BaseIterationCount is the total PBKDF2 iteration count across all
	// rounds at iteration exponent zero.
	BaseIterationCount = 10000

	// RoundCount is the number of Feistel rounds.
	RoundCount = 4

	// MaxIterationExponent is the largest exponent the 4-bit field can hold.
	MaxIterationExponent = 15

	// VerifierDigestLength is the length of the passphrase verification
	// digest prepended to the master secret before encryption.
	VerifierDigestLength = 4

	// VerifierPaddingLength is the length of the random key for the
	// passphrase verification digest.
	VerifierPaddingLength = 4

	// VerifierOverhead is the number of bytes the verification layer adds
	// to every share value.
	VerifierOverhead = VerifierDigestLength + VerifierPaddingLength

	cipherSaltPrefix = "shamir"
)

// feistel is the 4-round Feistel cipher that turns a master secret into
// the encrypted master secret. Its round function is PBKDF2-HMAC-SHA256.
type feistel struct {
	kdf kdf.KDFAdapter
}

func newFeistel(adapter kdf.KDFAdapter) *feistel {
	if adapter == nil {
		adapter = kdf.NewPBKDF2Adapter()
	}
	return &feistel{kdf: adapter}
}

// Encrypt encrypts a master secret under passphrase. The result has the
// same length as the input. The identifier only enters the salt of
// non-extendable shares.
func Encrypt(masterSecret, passphrase []byte, iterationExponent uint8, identifier uint16, extendable bool) ([]byte, error) {
	return newFeistel(nil).encrypt(masterSecret, passphrase, iterationExponent, identifier, extendable)
}

// Decrypt inverts Encrypt. Any passphrase decrypts to some value; only a
// verification digest can tell a wrong one apart.
func Decrypt(encrypted, passphrase []byte, iterationExponent uint8, identifier uint16, extendable bool) ([]byte, error) {
	return newFeistel(nil).decrypt(encrypted, passphrase, iterationExponent, identifier, extendable)
}

func (f *feistel) encrypt(ms, passphrase []byte, e uint8, identifier uint16, extendable bool) ([]byte, error) {
	return f.run("encrypt", ms, passphrase, e, identifier, extendable, []int{0, 1, 2, 3})
}

func (f *feistel) decrypt(ems, passphrase []byte, e uint8, identifier uint16, extendable bool) ([]byte, error) {
	return f.run("decrypt", ems, passphrase, e, identifier, extendable, []int{3, 2, 1, 0})
}

func (f *feistel) run(op string, in, passphrase []byte, e uint8, identifier uint16, extendable bool, rounds []int) ([]byte, error) {
	if len(in) == 0 || len(in)%2 != 0 {
		return nil, configError(op, "input must be a non-empty even number of bytes, got %d", len(in))
	}
	if e > MaxIterationExponent {
		return nil, configError(op, "iteration exponent %d exceeds %d", e, MaxIterationExponent)
	}
	if err := validatePassphrase(op, passphrase); err != nil {
		return nil, err
	}

	half := len(in) / 2
	l := append([]byte(nil), in[:half]...)
	r := append([]byte(nil), in[half:]...)
	salt := cipherSalt(identifier, extendable)

	for _, i := range rounds {
		k, err := f.round(i, passphrase, e, salt, r)
		if err != nil {
			wipe(l)
			wipe(r)
			return nil, newError(KindConfiguration, op, err, "round %d", i)
		}
		next := make([]byte, half)
		for j := range next {
			next[j] = l[j] ^ k[j]
		}
		wipe(k)
		wipe(l)
		l, r = r, next
	}

	out := make([]byte, 0, len(in))
	out = append(out, r...)
	out = append(out, l...)
	wipe(l)
	wipe(r)
	return out, nil
}

// round computes PBKDF2(byte(i) || passphrase, salt || r) truncated to len(r).
func (f *feistel) round(i int, passphrase []byte, e uint8, salt, r []byte) ([]byte, error) {
	ikm := make([]byte, 0, 1+len(passphrase))
	ikm = append(ikm, byte(i))
	ikm = append(ikm, passphrase...)
	defer wipe(ikm)

	params := kdf.RoundParams((BaseIterationCount<<e)/RoundCount, salt, r)
	defer wipe(params.Salt)

	return f.kdf.DeriveKey(ikm, params)
}

// cipherSalt returns "shamir" || identifier (big-endian) for
// non-extendable shares and an empty prefix for extendable ones.
func cipherSalt(identifier uint16, extendable bool) []byte {
	if extendable {
		return nil
	}
	salt := []byte(cipherSaltPrefix)
	return append(salt, byte(identifier>>8), byte(identifier))
}

// validatePassphrase accepts printable ASCII only.
func validatePassphrase(op string, passphrase []byte) error {
	for i, c := range passphrase {
		if c < 32 || c > 126 {
			return configError(op, "passphrase character at position %d is not printable ASCII", i+1)
		}
	}
	return nil
}

// sealSecret prepends HMAC-SHA256(key=pad, msg=ms)[:4] || pad to ms for a
// random 4 byte pad. The digest lets recovery reject a wrong passphrase.
func sealSecret(ms []byte, rnd io.Reader) ([]byte, error) {
	pad := make([]byte, VerifierPaddingLength)
	if _, err := io.ReadFull(rnd, pad); err != nil {
		return nil, fmt.Errorf("read verifier padding: %w", err)
	}
	out := make([]byte, 0, VerifierOverhead+len(ms))
	out = append(out, verifierDigest(pad, ms)...)
	out = append(out, pad...)
	out = append(out, ms...)
	return out, nil
}

// openSecret checks and strips the verification prefix added by sealSecret.
func openSecret(buf []byte) ([]byte, error) {
	if len(buf) < VerifierOverhead+MinStrengthBits/8 {
		return nil, newError(KindDigestMismatch, "combine", nil,
			"recovered value of %d bytes cannot carry a passphrase digest", len(buf))
	}
	digest := buf[:VerifierDigestLength]
	pad := buf[VerifierDigestLength:VerifierOverhead]
	ms := buf[VerifierOverhead:]
	if subtle.ConstantTimeCompare(digest, verifierDigest(pad, ms)) != 1 {
		return nil, newError(KindDigestMismatch, "combine", nil,
			"passphrase verification failed: wrong passphrase or shares made without verification")
	}
	return append([]byte(nil), ms...), nil
}

func verifierDigest(pad, ms []byte) []byte {
	mac := hmac.New(sha256.New, pad)
	mac.Write(ms)
	return mac.Sum(nil)[:VerifierDigestLength]
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
