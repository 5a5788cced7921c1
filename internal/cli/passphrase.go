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
	"fmt"
	"io"
	"os"

	"github.com/jeremyhahn/go-slip39/internal/password"
	"golang.org/x/term"
)

// ErrPassphraseMismatch is returned when the confirmation prompt differs.
var ErrPassphraseMismatch = errors.New("passphrases do not match")

// readPassword reads a line from the terminal without echo. Tests replace it.
var readPassword = func(prompt string, out io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("--prompt requires a terminal on stdin")
	}
	fmt.Fprint(out, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return b, nil
}

// passphrase resolves the share passphrase: flag, environment or config
// first, then the terminal prompt when enabled. No passphrase at all is the
// empty passphrase. With confirm set the prompt asks twice.
func (a *app) passphrase(out io.Writer, confirm bool) (*password.ClearPassword, error) {
	if p, ok := a.cfg.Passphrase(); ok {
		return password.NewClearPasswordFromString(p), nil
	}
	if !a.cfg.Prompt {
		return password.NewClearPassword(nil), nil
	}

	first, err := readPassword("Passphrase: ", out)
	if err != nil {
		return nil, err
	}
	pw := password.NewClearPassword(first)
	wipeBytes(first)
	if !confirm {
		return pw, nil
	}

	second, err := readPassword("Confirm passphrase: ", out)
	if err != nil {
		pw.Clear()
		return nil, err
	}
	check := password.NewClearPassword(second)
	wipeBytes(second)
	defer check.Clear()

	equal, err := password.Equal(pw, check)
	if err != nil {
		pw.Clear()
		return nil, err
	}
	if !equal {
		pw.Clear()
		return nil, ErrPassphraseMismatch
	}
	return pw, nil
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
