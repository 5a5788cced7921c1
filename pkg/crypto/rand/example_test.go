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

package rand_test

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/jeremyhahn/go-slip39/pkg/crypto/rand"
)

// ExampleNewResolver draws a 256 bit master secret from the system source.
func ExampleNewResolver() {
	resolver, err := rand.NewResolver(rand.ModeSoftware)
	if err != nil {
		log.Fatal(err)
	}
	defer resolver.Close()

	secret := make([]byte, 32)
	if _, err := io.ReadFull(resolver, secret); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d byte master secret\n", len(secret))
	// Output: 32 byte master secret
}

// ExampleNewResolver_deterministic shows that two resolvers with the same
// seed produce the same stream, which makes splits reproducible in tests.
func ExampleNewResolver_deterministic() {
	cfg := &rand.Config{Mode: rand.ModeDeterministic, Seed: []byte("fixture")}

	a, _ := rand.NewResolver(cfg)
	b, _ := rand.NewResolver(cfg)

	x := make([]byte, 16)
	y := make([]byte, 16)
	_, _ = io.ReadFull(a, x)
	_, _ = io.ReadFull(b, y)

	fmt.Println(bytes.Equal(x, y))
	// Output: true
}
