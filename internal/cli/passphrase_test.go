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
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTerminal replaces readPassword with answers served in order.
func fakeTerminal(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	orig := readPassword
	readPassword = func(prompt string, _ io.Writer) ([]byte, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return nil, errors.New("no input")
		}
		answer := answers[0]
		answers = answers[1:]
		return []byte(answer), nil
	}
	t.Cleanup(func() { readPassword = orig })
	return &prompts
}

func TestPrompt_SplitConfirmsPassphrase(t *testing.T) {
	isolate(t)
	prompts := fakeTerminal(t, testPassphrase, testPassphrase)

	r := splitJSON(t, "--prompt", "split", "--hex", vector1of1Secret, "-g", "1of1", "-e", "0", "--seed", "prompt")
	assert.Equal(t, []string{"Passphrase: ", "Confirm passphrase: "}, *prompts)

	stdout, _, code := runCLI(t, "", "-p", testPassphrase, "combine", r.Groups[0].Shares[0].Mnemonic)
	require.Equal(t, 0, code)
	assert.Equal(t, vector1of1Secret+"\n", stdout)
}

func TestPrompt_CombineAsksOnce(t *testing.T) {
	isolate(t)
	prompts := fakeTerminal(t, testPassphrase)

	stdout, _, code := runCLI(t, "", "--prompt", "combine", "--standard", vector1of1)
	require.Equal(t, 0, code)
	assert.Equal(t, vector1of1Secret+"\n", stdout)
	assert.Equal(t, []string{"Passphrase: "}, *prompts)
}

func TestPrompt_Mismatch(t *testing.T) {
	isolate(t)
	fakeTerminal(t, testPassphrase, "TREZ0R")

	stdout, stderr, code := runCLI(t, "", "--prompt", "split", "--hex", vector1of1Secret, "-g", "1of1", "-e", "0")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, ErrPassphraseMismatch.Error())
}

func TestPrompt_ReadFailure(t *testing.T) {
	isolate(t)
	fakeTerminal(t)

	_, stderr, code := runCLI(t, "", "--prompt", "combine", "--standard", vector1of1)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no input")
}

func TestPrompt_SkippedWhenPassphraseSet(t *testing.T) {
	isolate(t)
	prompts := fakeTerminal(t)

	stdout, _, code := runCLI(t, "", "--prompt", "-p", testPassphrase, "combine", "--standard", vector1of1)
	require.Equal(t, 0, code)
	assert.Equal(t, vector1of1Secret+"\n", stdout)
	assert.Empty(t, *prompts)
}

func TestPassphrase_Unprintable(t *testing.T) {
	isolate(t)

	_, stderr, code := runCLI(t, "", "-p", "tab\there", "combine", "--standard", vector1of1)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "printable ASCII")
	assert.NotContains(t, stderr, "tab\there")
}
