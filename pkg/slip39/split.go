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
	"io"

	"github.com/jeremyhahn/go-slip39/pkg/adapters/kdf"
	"github.com/jeremyhahn/go-slip39/pkg/adapters/logger"
	"github.com/jeremyhahn/go-slip39/pkg/crypto/secretsharing"
)

// GroupSpec is the member threshold and member count of one group.
type GroupSpec struct {
	MemberThreshold int
	MemberCount     int
}

// String renders the spec as "T-of-N".
func (g GroupSpec) String() string {
	return fmt.Sprintf("%d-of-%d", g.MemberThreshold, g.MemberCount)
}

// Splitter splits master secrets into two-level shares. The zero value is
// ready to use.
type Splitter struct {
	// Rand supplies the identifier, padding and polynomial coefficients.
	// The operating system source is used when nil.
	Rand io.Reader

	// Logger receives progress records. Secret material is never logged.
	Logger logger.Logger

	// KDF overrides the PBKDF2 adapter used by the Feistel rounds.
	KDF kdf.KDFAdapter

	// Extendable sets the extendable backup flag on every share, which
	// drops the identifier from the encryption salt.
	Extendable bool

	// Standard omits the passphrase verification digest. Shares are then
	// plain SLIP-39 and any passphrase recovers some secret.
	Standard bool
}

// Split splits ms with a default Splitter.
func Split(groupThreshold int, groups []GroupSpec, ms *MasterSecret, passphrase []byte, iterationExponent uint8) (*Slip39, error) {
	return (&Splitter{}).Split(groupThreshold, groups, ms, passphrase, iterationExponent)
}

// Split encrypts ms under passphrase and splits it into groups, any
// groupThreshold of which recover it when each contributes its own member
// threshold of shares.
func (s *Splitter) Split(groupThreshold int, groups []GroupSpec, ms *MasterSecret, passphrase []byte, iterationExponent uint8) (*Slip39, error) {
	log := s.logger()

	if err := validateSplit(groupThreshold, groups, ms, passphrase, iterationExponent); err != nil {
		log.Warn("split rejected", logger.Error(err))
		return nil, err
	}

	log.Debug("splitting master secret",
		logger.Int("group_threshold", groupThreshold),
		logger.Int("group_count", len(groups)),
		logger.Int("secret_bytes", ms.Len()),
		logger.Int("iteration_exponent", int(iterationExponent)),
		logger.Bool("extendable", s.Extendable),
		logger.Bool("standard", s.Standard))

	rnd := randomSource(s.Rand)

	identifier, err := randomIdentifier(rnd)
	if err != nil {
		return nil, err
	}

	payload := ms.Bytes()
	defer wipe(payload)
	if !s.Standard {
		sealed, err := sealSecret(payload, rnd)
		if err != nil {
			return nil, err
		}
		defer wipe(sealed)
		payload = sealed
	}

	ems, err := newFeistel(s.KDF).encrypt(payload, passphrase, iterationExponent, identifier, s.Extendable)
	if err != nil {
		return nil, err
	}
	defer wipe(ems)

	groupSecrets, err := splitSecret(groupThreshold, len(groups), ems, rnd)
	if err != nil {
		return nil, err
	}

	builder := shareBuilder{
		identifier:        identifier,
		extendable:        s.Extendable,
		iterationExponent: iterationExponent,
		groupThreshold:    groupThreshold,
		groupCount:        len(groups),
	}

	out := &Slip39{
		identifier:        identifier,
		extendable:        s.Extendable,
		iterationExponent: iterationExponent,
		groupThreshold:    groupThreshold,
		groups:            make([]GroupShare, len(groups)),
	}

	for gi, spec := range groups {
		members, err := splitSecret(spec.MemberThreshold, spec.MemberCount, groupSecrets[gi].Value, rnd)
		wipe(groupSecrets[gi].Value)
		if err != nil {
			return nil, err
		}

		group := GroupShare{
			GroupIndex:      gi,
			MemberThreshold: spec.MemberThreshold,
			Shares:          make([]Share, len(members)),
			Mnemonics:       make([]string, len(members)),
		}
		for _, m := range members {
			share := builder.build(gi, spec.MemberThreshold, int(m.Index), m.Value)
			mnemonic, err := EncodeMnemonic(&share)
			if err != nil {
				return nil, err
			}
			group.Shares[m.Index] = share
			group.Mnemonics[m.Index] = mnemonic
		}
		out.groups[gi] = group
	}

	log.Info("master secret split",
		logger.Int("identifier", int(identifier)),
		logger.Int("groups", len(groups)),
		logger.Int("shares", out.ShareCount()))

	return out, nil
}

func (s *Splitter) logger() logger.Logger {
	if s.Logger == nil {
		return logger.Nop()
	}
	return s.Logger
}

func validateSplit(groupThreshold int, groups []GroupSpec, ms *MasterSecret, passphrase []byte, e uint8) error {
	const op = "split"

	if ms == nil {
		return configError(op, "master secret is nil")
	}
	if ms.Len()*8 < MinStrengthBits {
		return configError(op, "master secret must be at least %d bits, got %d", MinStrengthBits, ms.Len()*8)
	}
	if ms.Len()%2 != 0 {
		return configError(op, "master secret must be an even number of bytes, got %d", ms.Len())
	}
	if e > MaxIterationExponent {
		return configError(op, "iteration exponent %d exceeds %d", e, MaxIterationExponent)
	}
	if len(groups) == 0 || len(groups) > MaxShareCount {
		return configError(op, "group count must be between 1 and %d, got %d", MaxShareCount, len(groups))
	}
	if groupThreshold < 1 || groupThreshold > len(groups) {
		return configError(op, "group threshold must be between 1 and %d, got %d", len(groups), groupThreshold)
	}
	for i, g := range groups {
		if g.MemberCount < 1 || g.MemberCount > MaxShareCount {
			return configError(op, "group %d: member count must be between 1 and %d, got %d",
				i+1, MaxShareCount, g.MemberCount)
		}
		if g.MemberThreshold < 1 || g.MemberThreshold > g.MemberCount {
			return configError(op, "group %d: member threshold must be between 1 and %d, got %d",
				i+1, g.MemberCount, g.MemberThreshold)
		}
	}
	return validatePassphrase(op, passphrase)
}

func randomIdentifier(rnd io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(rnd, b[:]); err != nil {
		return 0, fmt.Errorf("slip39: read identifier: %w", err)
	}
	return (uint16(b[0])<<8 | uint16(b[1])) & maxIdentifier, nil
}

// splitSecret runs one level of digest-protected Shamir sharing.
func splitSecret(threshold, count int, secret []byte, rnd io.Reader) ([]secretsharing.Share, error) {
	sss, err := secretsharing.NewShamir(&secretsharing.ShareConfig{
		Threshold:   threshold,
		TotalShares: count,
		Rand:        rnd,
	})
	if err != nil {
		return nil, newError(KindConfiguration, "split", err, "%d-of-%d", threshold, count)
	}
	shares, err := sss.Split(secret)
	if err != nil {
		if errors.Is(err, secretsharing.ErrSecretTooShort) {
			return nil, newError(KindConfiguration, "split", err, "%d-of-%d", threshold, count)
		}
		return nil, fmt.Errorf("slip39: split: %w", err)
	}
	return shares, nil
}
