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
	"sort"
	"strings"

	"github.com/jeremyhahn/go-slip39/pkg/adapters/kdf"
	"github.com/jeremyhahn/go-slip39/pkg/adapters/logger"
	"github.com/jeremyhahn/go-slip39/pkg/crypto/secretsharing"
)

// Combiner recovers master secrets from mnemonics. The zero value is
// ready to use.
//
// Shares are grouped by group index. A group is complete once it holds
// member threshold shares; extra shares are ignored and the lowest member
// indices are used. Incomplete groups are ignored as long as group
// threshold complete groups remain.
type Combiner struct {
	// Logger receives progress records. Secret material is never logged.
	Logger logger.Logger

	// KDF overrides the PBKDF2 adapter used by the Feistel rounds.
	KDF kdf.KDFAdapter

	// Standard expects shares made without the passphrase verification
	// digest. It must match the Splitter that produced the shares.
	Standard bool
}

// Combine recovers the master secret with a default Combiner.
func Combine(mnemonics []string, passphrase []byte) (*MasterSecret, error) {
	return (&Combiner{}).Combine(mnemonics, passphrase)
}

// Combine decodes mnemonics and recovers the master secret.
func (c *Combiner) Combine(mnemonics []string, passphrase []byte) (*MasterSecret, error) {
	shares := make([]*Share, 0, len(mnemonics))
	for i, m := range mnemonics {
		share, err := DecodeMnemonic(m)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Msg = fmt.Sprintf("mnemonic %d: %s", i+1, e.Msg)
			}
			c.logger().Warn("mnemonic rejected", logger.Int("position", i+1), logger.Error(err))
			return nil, err
		}
		shares = append(shares, share)
	}
	return c.CombineShares(shares, passphrase)
}

// CombineShares recovers the master secret from decoded shares.
func (c *Combiner) CombineShares(shares []*Share, passphrase []byte) (*MasterSecret, error) {
	log := c.logger()

	if err := validatePassphrase("combine", passphrase); err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, insufficientError("no shares supplied")
	}

	groups, err := groupShares(shares)
	if err != nil {
		log.Warn("shares rejected", logger.Error(err))
		return nil, err
	}

	first := shares[0]
	complete := make([]int, 0, len(groups))
	var missing []string
	for _, gi := range sortedKeys(groups) {
		members := groups[gi]
		threshold := members[0].MemberThreshold
		if len(members) >= threshold {
			complete = append(complete, gi)
			continue
		}
		missing = append(missing, fmt.Sprintf("group %d has %d of %d shares", gi+1, len(members), threshold))
	}

	log.Debug("combining shares",
		logger.Int("identifier", int(first.Identifier)),
		logger.Int("shares", len(shares)),
		logger.Int("groups", len(groups)),
		logger.Int("complete_groups", len(complete)),
		logger.Int("group_threshold", first.GroupThreshold))

	if len(complete) < first.GroupThreshold {
		msg := fmt.Sprintf("need %d complete groups, have %d", first.GroupThreshold, len(complete))
		if len(missing) > 0 {
			msg += " (" + strings.Join(missing, ", ") + ")"
		}
		return nil, insufficientError("%s", msg)
	}

	groupSecrets := make([]secretsharing.Share, 0, first.GroupThreshold)
	defer func() {
		for _, gs := range groupSecrets {
			wipe(gs.Value)
		}
	}()
	for _, gi := range complete[:first.GroupThreshold] {
		members := groups[gi]
		threshold := members[0].MemberThreshold
		points := make([]secretsharing.Share, threshold)
		for i, m := range members[:threshold] {
			points[i] = secretsharing.Share{Index: byte(m.MemberIndex), Value: m.Value}
		}
		secret, err := combineSecret(threshold, points)
		if err != nil {
			return nil, wrapCombineError(err, "group %d", gi+1)
		}
		groupSecrets = append(groupSecrets, secretsharing.Share{Index: byte(gi), Value: secret})
	}

	ems, err := combineSecret(first.GroupThreshold, groupSecrets)
	if err != nil {
		return nil, wrapCombineError(err, "groups")
	}
	defer wipe(ems)

	payload, err := newFeistel(c.KDF).decrypt(ems, passphrase, first.IterationExponent, first.Identifier, first.Extendable)
	if err != nil {
		return nil, err
	}
	defer wipe(payload)

	secret := payload
	if !c.Standard {
		if secret, err = openSecret(payload); err != nil {
			log.Warn("passphrase verification failed", logger.Int("identifier", int(first.Identifier)))
			return nil, err
		}
	}

	ms, err := MasterSecretFromBytes(secret)
	if err != nil {
		return nil, err
	}
	if !c.Standard {
		wipe(secret)
	}

	log.Info("master secret recovered",
		logger.Int("identifier", int(first.Identifier)),
		logger.Int("secret_bytes", ms.Len()))
	return ms, nil
}

func (c *Combiner) logger() logger.Logger {
	if c.Logger == nil {
		return logger.Nop()
	}
	return c.Logger
}

// groupShares checks that all shares belong to one split and buckets them
// by group index, each bucket sorted by member index.
func groupShares(shares []*Share) (map[int][]*Share, error) {
	first := shares[0]
	groups := make(map[int][]*Share)
	for i, s := range shares {
		if s == nil {
			return nil, mismatchedError("share %d is nil", i+1)
		}
		switch {
		case s.Identifier != first.Identifier:
			return nil, mismatchedError("share %d has identifier %d, expected %d", i+1, s.Identifier, first.Identifier)
		case s.Extendable != first.Extendable:
			return nil, mismatchedError("share %d has a different extendable flag", i+1)
		case s.IterationExponent != first.IterationExponent:
			return nil, mismatchedError("share %d has iteration exponent %d, expected %d",
				i+1, s.IterationExponent, first.IterationExponent)
		case s.GroupThreshold != first.GroupThreshold:
			return nil, mismatchedError("share %d has group threshold %d, expected %d",
				i+1, s.GroupThreshold, first.GroupThreshold)
		case s.GroupCount != first.GroupCount:
			return nil, mismatchedError("share %d has group count %d, expected %d", i+1, s.GroupCount, first.GroupCount)
		case len(s.Value) != len(first.Value):
			return nil, mismatchedError("share %d has a %d byte value, expected %d", i+1, len(s.Value), len(first.Value))
		case s.GroupIndex >= s.GroupCount:
			return nil, mismatchedError("share %d has group index %d beyond group count %d",
				i+1, s.GroupIndex+1, s.GroupCount)
		}

		members := groups[s.GroupIndex]
		for _, m := range members {
			if m.MemberThreshold != s.MemberThreshold {
				return nil, mismatchedError("group %d has member thresholds %d and %d",
					s.GroupIndex+1, m.MemberThreshold, s.MemberThreshold)
			}
			if m.MemberIndex == s.MemberIndex {
				return nil, mismatchedError("group %d has member index %d more than once",
					s.GroupIndex+1, s.MemberIndex+1)
			}
		}
		groups[s.GroupIndex] = append(members, s)
	}

	for _, members := range groups {
		sort.Slice(members, func(a, b int) bool {
			return members[a].MemberIndex < members[b].MemberIndex
		})
	}
	return groups, nil
}

func sortedKeys(groups map[int][]*Share) []int {
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func combineSecret(threshold int, points []secretsharing.Share) ([]byte, error) {
	sss, err := secretsharing.NewShamir(&secretsharing.ShareConfig{
		Threshold:   threshold,
		TotalShares: threshold,
	})
	if err != nil {
		return nil, err
	}
	return sss.Combine(points)
}

func wrapCombineError(err error, format string, args ...interface{}) error {
	kind := KindMismatchedShares
	switch {
	case errors.Is(err, secretsharing.ErrDigestMismatch):
		kind = KindDigestMismatch
	case errors.Is(err, secretsharing.ErrInsufficientShares):
		kind = KindInsufficientShares
	}
	return newError(kind, "combine", err, format, args...)
}
