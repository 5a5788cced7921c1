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
	"time"

	"github.com/jeremyhahn/go-slip39/pkg/adapters/logger"
	"github.com/jeremyhahn/go-slip39/pkg/metrics"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
	"github.com/spf13/cobra"
)

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new master secret and split it into mnemonic shares",
		Long: `Generate a random master secret and split it into SLIP-39 shares.
The secret itself is never printed: only the shares can recover it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			start := time.Now()
			defer func() { a.observe(metrics.OpGenerate, start, err) }()

			rnd, err := a.cfg.RandomSource()
			if err != nil {
				return err
			}
			defer func() { _ = rnd.Close() }()

			entropyBits := a.v.GetInt("entropy-bits")
			ms, err := slip39.NewMasterSecret(entropyBits, rnd)
			if err != nil {
				return err
			}
			defer ms.Clear()
			a.log.DebugContext(a.ctx, "master secret generated", logger.Int("entropy_bits", entropyBits))

			return a.split(cmd, metrics.OpGenerate, ms, rnd)
		},
	}

	cmd.Flags().IntP("entropy-bits", "b", slip39.DefaultEntropyBits,
		"master secret length in bits (at least 128, multiple of 16)")
	registerSplitFlags(cmd.Flags())
	return cmd
}
