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

// Package slip39 implements SLIP-39 Shamir backups: a master secret is
// encrypted with a passphrase, split into groups, and each group secret is
// split again into member shares encoded as word mnemonics.
//
// Recovery needs GroupThreshold groups, each contributing its own
// MemberThreshold shares:
//
//	ms, _ := slip39.NewMasterSecret(256, nil)
//	out, _ := slip39.Split(2, []slip39.GroupSpec{{2, 3}, {3, 5}, {1, 1}}, ms, passphrase, 1)
//	recovered, _ := slip39.Combine(mnemonics, passphrase)
//
// By default a 4 byte passphrase digest is sealed inside the encrypted
// secret so that recovery with the wrong passphrase fails with
// KindDigestMismatch. Splitter.Standard and Combiner.Standard produce and
// accept plain SLIP-39 shares instead, interoperable with other wallets,
// where a wrong passphrase silently yields a different secret.
//
// Every error returned by this package is an *Error whose Kind can be read
// with KindOf or matched with errors.Is against the Err* sentinels.
package slip39
