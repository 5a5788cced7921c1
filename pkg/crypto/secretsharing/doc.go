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

// Package secretsharing implements Shamir's Secret Sharing Scheme with an
// embedded integrity digest, as used by SLIP-0039.
//
// # Mathematical Foundation
//
// Every byte position of the secret is shared independently with a
// polynomial over GF(2^8) (the Rijndael field, polynomial 0x11B). The
// polynomial of degree M-1 is not built from random coefficients. It is
// fixed by M points instead:
//
//   - M-2 points with random values at x = 0 .. M-3
//   - the digest point at x = 254
//   - the secret at x = 255
//
// The remaining shares are found by Lagrange interpolation of those points
// at x = M-2 .. N-1. The digest point holds
//
//	HMAC-SHA256(key=R, msg=secret)[:4] || R
//
// for a random R, so recovery can tell a correct secret from the output of
// a wrong or tampered share set.
//
// With M = 1 every share is the secret itself.
//
// # Security Properties
//
//   - M-1 shares reveal no information about the secret
//   - The secret point is never handed out as a share
//   - A wrong combination fails with ErrDigestMismatch except with
//     probability 2^-32
//
// # Usage Example
//
//	shamir, err := secretsharing.NewShamir(&secretsharing.ShareConfig{
//	    Threshold:   3,
//	    TotalShares: 5,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	shares, err := shamir.Split(secret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	recovered, err := shamir.Combine(shares[1:4])
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Constraints
//
//   - Threshold M must satisfy: 1 <= M <= N <= 254
//   - Secrets must be longer than the 4 byte digest
//   - Share indices are bytes 0..253, 254 and 255 are reserved
package secretsharing
