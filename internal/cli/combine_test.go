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

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine_StandardVectors(t *testing.T) {
	isolate(t)

	stdout, stderr, code := runCLI(t, "", "-p", testPassphrase, "combine", "--standard", vector1of1)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, vector1of1Secret+"\n", stdout)

	stdout, stderr, code = runCLI(t, "", "-p", testPassphrase, "combine", "--standard", vector2of3a, vector2of3b)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, vector2of3Secret+"\n", stdout)
}

func TestCombine_FromStdin(t *testing.T) {
	isolate(t)

	stdin := "# two of three\n" + vector2of3b + "\n\n  " + vector2of3a + "  \n"
	stdout, stderr, code := runCLI(t, stdin, "-p", testPassphrase, "combine", "--standard")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, vector2of3Secret+"\n", stdout)
}

func TestCombine_PassphraseFromEnvironment(t *testing.T) {
	isolate(t)

	t.Setenv(EnvPassphrase, testPassphrase)
	stdout, _, code := runCLI(t, "", "combine", "--standard", vector1of1)
	require.Equal(t, 0, code)
	assert.Equal(t, vector1of1Secret+"\n", stdout)

	t.Setenv(EnvPassphrase, "")
	t.Setenv(EnvPassword, testPassphrase)
	stdout, _, code = runCLI(t, "", "combine", "--standard", vector1of1)
	require.Equal(t, 0, code)
	assert.Equal(t, vector1of1Secret+"\n", stdout)
}

func TestCombine_FlagOverridesEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(EnvPassphrase, "wrong")

	stdout, _, code := runCLI(t, "", "-p", testPassphrase, "combine", "--standard", vector1of1)
	require.Equal(t, 0, code)
	assert.Equal(t, vector1of1Secret+"\n", stdout)
}

func TestCombine_StandardWrongPassphraseGivesOtherSecret(t *testing.T) {
	isolate(t)

	stdout, _, code := runCLI(t, "", "combine", "--standard", vector1of1)
	require.Equal(t, 0, code)
	assert.NotEqual(t, vector1of1Secret+"\n", stdout)
	assert.Len(t, strings.TrimSpace(stdout), 32)
}

func TestCombine_WrongPassphraseDetected(t *testing.T) {
	isolate(t)

	r := splitJSON(t, "-p", testPassphrase, "split", "--hex", vector1of1Secret, "-g", "1of1", "-e", "0", "--seed", "wrong")
	m := r.Groups[0].Shares[0].Mnemonic

	stdout, stderr, code := runCLI(t, "", "-p", "not it", "combine", m)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error:")
	assert.Contains(t, stderr, "digest mismatch")
	assert.NotContains(t, stderr, vector1of1Secret)

	_, stderr, code = runCLI(t, "", "-o", "yaml", "-p", "not it", "combine", m)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "kind: digest_mismatch")
}

func TestCombine_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"no shares", "", nil, "insufficient shares"},
		{"one of two", "", []string{vector2of3a}, "insufficient shares"},
		{"bad checksum", "", []string{strings.Replace(vector1of1, "keyboard", "academic", 1)}, "mnemonic 1"},
		{"mixed sets", "", []string{vector1of1, vector2of3a}, "mismatched shares"},
		{"unknown format", "", []string{"--format", "base64", vector1of1}, "unknown secret format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"combine", "--standard"}, tt.args...)
			_, stderr, code := runCLI(t, tt.stdin, args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestCombine_InsufficientNamesGroups(t *testing.T) {
	isolate(t)

	r := splitJSON(t, "generate", "-g", "2of3", "-g", "2of3", "-e", "0", "--seed", "groups")
	_, stderr, code := runCLI(t, "", "combine",
		r.Groups[0].Shares[0].Mnemonic, r.Groups[0].Shares[1].Mnemonic, r.Groups[1].Shares[0].Mnemonic)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "group 2 has 1 of 2 shares")
}

func TestCombine_OutputFormats(t *testing.T) {
	isolate(t)

	stdout, _, code := runCLI(t, "", "-o", "json", "-p", testPassphrase, "combine", "--standard", vector1of1)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"secret": "`+vector1of1Secret+`"`)

	stdout, _, code = runCLI(t, "", "-o", "yaml", "-p", testPassphrase, "combine", "--standard", vector1of1)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "secret: "+vector1of1Secret)
	assert.Contains(t, stdout, "format: hex")
}
