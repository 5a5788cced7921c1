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
	"time"

	"github.com/jeremyhahn/go-slip39/pkg/metrics"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
	"github.com/spf13/cobra"
)

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect MNEMONIC",
		Short: "Show the metadata of a mnemonic share",
		Long: `Decode one mnemonic and show its identifier, group and member
parameters. No recovery is attempted and no passphrase is needed.
The words may be given quoted or as separate arguments.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			start := time.Now()
			defer func() { a.observe(metrics.OpInspect, start, err) }()

			info, err := slip39.Inspect(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintShareInfo(info)
		},
	}
}
