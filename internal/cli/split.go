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
	"io"
	"strings"
	"time"

	"github.com/jeremyhahn/go-slip39/pkg/adapters/logger"
	"github.com/jeremyhahn/go-slip39/pkg/metrics"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	bip39 "github.com/tyler-smith/go-bip39"
)

// splitOptions are the settings shared by generate and split.
type splitOptions struct {
	groups            []string
	requiredGroups    int
	iterationExponent uint8
	extendable        bool
	standard          bool
}

func registerSplitFlags(flags *pflag.FlagSet) {
	flags.StringArrayP("group", "g", nil,
		"group as T-of-N, repeat for every group (e.g. --group 2of3 --group 3of5)")
	flags.IntP("required-groups", "t", 0,
		"number of groups required for recovery (default: all groups)")
	flags.Uint8P("iteration-exponent", "e", 1,
		"PBKDF2 work factor exponent, 10000 << e iterations (0-15)")
	flags.Bool("extendable", false, "create extendable backup shares")
	flags.Bool("standard", false,
		"omit the passphrase verification digest (plain SLIP-39, interoperable with wallets)")
}

// splitSettings reads the split flags, which may also come from the
// environment or the config file.
func (a *app) splitSettings() (*splitOptions, error) {
	e := a.v.GetUint("iteration-exponent")
	if e > slip39.MaxIterationExponent {
		return nil, fmt.Errorf("iteration exponent %d exceeds %d", e, slip39.MaxIterationExponent)
	}
	return &splitOptions{
		groups:            a.v.GetStringSlice("group"),
		requiredGroups:    a.v.GetInt("required-groups"),
		iterationExponent: uint8(e),
		extendable:        a.v.GetBool("extendable"),
		standard:          a.v.GetBool("standard"),
	}, nil
}

// split runs the splitter over ms and prints the report.
func (a *app) split(cmd *cobra.Command, op string, ms *slip39.MasterSecret, rnd io.Reader) error {
	o, err := a.splitSettings()
	if err != nil {
		return err
	}
	if len(o.groups) == 0 {
		return fmt.Errorf("at least one --group is required")
	}
	groups, err := slip39.ParseGroupSpecs(o.groups)
	if err != nil {
		return err
	}
	required := o.requiredGroups
	if required == 0 {
		required = len(groups)
	}

	pw, err := a.passphrase(cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer pw.Clear()

	a.log.DebugContext(a.ctx, "splitting",
		logger.String("groups", strings.Join(o.groups, ",")),
		logger.Int("required_groups", required),
		logger.Int("iteration_exponent", int(o.iterationExponent)),
		logger.Bool("passphrase_set", pw.Len() > 0))

	splitter := &slip39.Splitter{
		Rand:       rnd,
		Logger:     a.libraryLogger(),
		Extendable: o.extendable,
		Standard:   o.standard,
	}
	passphrase := pw.Bytes()
	defer wipeBytes(passphrase)

	out, err := splitter.Split(required, groups, ms, passphrase, o.iterationExponent)
	if err != nil {
		return err
	}
	metrics.RecordShares(op, out.ShareCount())

	return a.printer(cmd).PrintSplit(NewSplitReport(out))
}

func (a *app) splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split an existing secret into mnemonic shares",
		Long: `Split a master secret given as hex (--hex) or as a BIP-39 mnemonic
(--bip39 or env ` + EnvBIP39 + `) into SLIP-39 shares.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			start := time.Now()
			defer func() { a.observe(metrics.OpSplit, start, err) }()

			ms, err := secretFromInput(a.v.GetString("hex"), a.v.GetString("bip39"))
			if err != nil {
				return err
			}
			defer ms.Clear()

			rnd, err := a.cfg.RandomSource()
			if err != nil {
				return err
			}
			defer func() { _ = rnd.Close() }()

			return a.split(cmd, metrics.OpSplit, ms, rnd)
		},
	}

	cmd.Flags().String("hex", "", "master secret as hex")
	cmd.Flags().String("bip39", "", "master secret as a BIP-39 mnemonic (env "+EnvBIP39+")")
	registerSplitFlags(cmd.Flags())
	return cmd
}

// secretFromInput decodes exactly one of a hex string or a BIP-39 mnemonic.
func secretFromInput(hexArg, mnemonic string) (*slip39.MasterSecret, error) {
	hexArg = strings.TrimSpace(hexArg)
	mnemonic = strings.TrimSpace(mnemonic)

	switch {
	case hexArg != "" && mnemonic != "":
		return nil, fmt.Errorf("--hex and --bip39 are mutually exclusive")
	case hexArg != "":
		return slip39.MasterSecretFromHex(hexArg)
	case mnemonic != "":
		entropy, err := bip39.EntropyFromMnemonic(strings.Join(strings.Fields(mnemonic), " "))
		if err != nil {
			return nil, fmt.Errorf("invalid BIP-39 mnemonic: %w", err)
		}
		defer wipeBytes(entropy)
		return slip39.MasterSecretFromBytes(entropy)
	default:
		return nil, fmt.Errorf("one of --hex or --bip39 is required")
	}
}

// readLines returns the non-empty trimmed lines of r.
func readLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
