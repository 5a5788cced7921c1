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
	"fmt"
	"strings"
	"time"

	"github.com/jeremyhahn/go-slip39/pkg/adapters/logger"
	"github.com/jeremyhahn/go-slip39/pkg/metrics"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
	"github.com/spf13/cobra"
	bip39 "github.com/tyler-smith/go-bip39"
)

const (
	secretFormatHex   = "hex"
	secretFormatBIP39 = "bip39"
)

func (a *app) combineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine [MNEMONIC...]",
		Short: "Recover the master secret from mnemonic shares",
		Long: `Recover the master secret from mnemonic shares. Each argument is one
quoted mnemonic. Without arguments one mnemonic per line is read from
standard input; blank lines and lines starting with # are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			start := time.Now()
			defer func() { a.observe(metrics.OpCombine, start, err) }()

			format := strings.ToLower(a.v.GetString("format"))
			if format != secretFormatHex && format != secretFormatBIP39 {
				return fmt.Errorf("unknown secret format: %s", format)
			}

			mnemonics := args
			if len(mnemonics) == 0 {
				if mnemonics, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			a.log.DebugContext(a.ctx, "combining", logger.Int("mnemonics", len(mnemonics)))

			pw, err := a.passphrase(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer pw.Clear()
			passphrase := pw.Bytes()
			defer wipeBytes(passphrase)

			combiner := &slip39.Combiner{Logger: a.libraryLogger(), Standard: a.v.GetBool("standard")}
			ms, err := combiner.Combine(mnemonics, passphrase)
			if err != nil {
				return err
			}
			defer ms.Clear()
			metrics.RecordShares(metrics.OpCombine, len(mnemonics))

			report := &SecretReport{Format: format}
			switch format {
			case secretFormatBIP39:
				entropy := ms.Bytes()
				defer wipeBytes(entropy)
				if report.Secret, err = bip39.NewMnemonic(entropy); err != nil {
					return fmt.Errorf("secret of %d bytes has no BIP-39 form: %w", ms.Len(), err)
				}
			default:
				report.Secret = ms.Hex()
			}
			return a.printer(cmd).PrintSecret(report)
		},
	}

	cmd.Flags().StringP("format", "f", secretFormatHex, "secret output format (hex, bip39)")
	cmd.Flags().Bool("standard", false,
		"shares were created without the passphrase verification digest")
	return cmd
}
