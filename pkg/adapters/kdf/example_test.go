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

package kdf_test

import (
	"fmt"
	"log"

	"github.com/jeremyhahn/go-slip39/pkg/adapters/kdf"
)

// ExampleRoundParams derives the key of the first Feistel round of a
// 32 byte secret.
func ExampleRoundParams() {
	adapter := kdf.NewPBKDF2Adapter()

	right := make([]byte, 16)
	params := kdf.RoundParams(kdf.MinPBKDF2Iterations, []byte("shamir\x00\x2a"), right)

	key, err := adapter.DeriveKey(append([]byte{0}, "passphrase"...), params)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("round key: %d bytes, salt: %d bytes\n", len(key), len(params.Salt))
	// Output: round key: 16 bytes, salt: 24 bytes
}

// Example_validateParams shows the error for a salt below the minimum.
func Example_validateParams() {
	adapter := kdf.NewPBKDF2Adapter()

	params := kdf.DefaultParams(kdf.AlgorithmPBKDF2)
	params.Salt = []byte("short")

	if err := adapter.ValidateParams(params); err != nil {
		fmt.Println(err)
	}
	// Output: kdf: invalid salt: 5 bytes, minimum 8
}
