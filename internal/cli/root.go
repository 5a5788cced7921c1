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
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jeremyhahn/go-slip39/pkg/adapters/logger"
	"github.com/jeremyhahn/go-slip39/pkg/correlation"
	"github.com/jeremyhahn/go-slip39/pkg/metrics"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	cfg *Config
	v   *viper.Viper
	ctx context.Context
	log logger.ContextLogger
}

func newApp() *app {
	return &app{
		cfg: NewConfig(),
		v:   viper.New(),
		ctx: context.Background(),
		log: logger.NoopLogger{},
	}
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes the command line args and returns the exit code: 0 on
// success, 1 on any failure.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp()
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()

	if a.cfg.MetricsFile != "" {
		if werr := metrics.WriteTextfile(a.cfg.MetricsFile); werr != nil {
			a.log.WarnContext(a.ctx, "failed to write metrics file",
				logger.String("path", a.cfg.MetricsFile), logger.Error(werr))
			if err == nil {
				err = fmt.Errorf("failed to write metrics file: %w", werr)
			}
		}
	}

	if err != nil {
		a.log.ErrorContext(a.ctx, "command failed",
			logger.String("kind", slip39.KindOf(err).String()), logger.Error(err))
		handleError(a.cfg, stderr, err)
		return 1
	}
	return 0
}

// rootCmd builds the base command
func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "slip39",
		Short: "slip39 - Shamir backups of wallet secrets as word mnemonics",
		Long: `slip39 splits a master secret into SLIP-39 mnemonic shares organised in
groups, and recovers it from a sufficient subset of shares.

Recovery needs the group threshold of groups, each contributing its own
member threshold of shares, plus the passphrase used when splitting.

Examples:
  slip39 generate --group 2of3 --group 3of5 --required-groups 2
  slip39 split --hex 0c94... --group 1of1 --group 2of3
  slip39 combine < shares.txt
  slip39 inspect "duckling enlarge academic ..."`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.ConfigFile, "config", "",
		"config file (default is $HOME/"+DefaultConfigName+".yaml)")
	flags.StringP("output", "o", a.cfg.OutputFormat, "output format (text, json, yaml, words)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("log-format", a.cfg.LogFormat, "log format (text, json, console)")
	flags.String("log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile after the command")
	flags.StringP("passphrase", "p", "", "passphrase protecting the shares (env "+EnvPassphrase+")")
	flags.Bool("prompt", false, "prompt for the passphrase on the terminal when none is set")
	flags.String("seed", "", "derive all randomness from this seed (testing only)")
	_ = flags.MarkHidden("seed")

	root.AddCommand(a.generateCmd())
	root.AddCommand(a.splitCmd())
	root.AddCommand(a.combineCmd())
	root.AddCommand(a.inspectCmd())
	root.AddCommand(a.versionCmd())
	return root
}

// setup loads configuration and sets up logging for the command about to run.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.cfg.Load(a.v, cmd.Flags()); err != nil {
		return err
	}

	ctx, _ := correlation.Ensure(cmd.Context(), a.cfg.CorrelationID)
	a.ctx = ctx
	a.log = a.cfg.NewLogger(cmd.ErrOrStderr())

	if a.cfg.MetricsFile != "" {
		metrics.Enable()
	} else {
		metrics.Disable()
	}

	a.log.DebugContext(a.ctx, "command started",
		logger.String("command", cmd.Name()),
		logger.String("output", a.cfg.OutputFormat))
	if a.cfg.Seed != "" {
		a.log.WarnContext(a.ctx, "deterministic randomness enabled, shares are reproducible from the seed")
	}
	return nil
}

// libraryLogger returns the logger handed to the splitter and combiner,
// carrying the correlation ID on every record.
func (a *app) libraryLogger() logger.Logger {
	return a.log.With(logger.String("correlation_id", correlation.GetCorrelationID(a.ctx)))
}

// observe records metrics and logs the outcome of an operation.
func (a *app) observe(op string, start time.Time, err error) {
	metrics.RecordOperation(op, start, err, slip39.KindOf(err).String())
	if err == nil {
		a.log.InfoContext(a.ctx, "operation complete",
			logger.String("operation", op),
			logger.Int64("duration_ms", time.Since(start).Milliseconds()))
	}
}

func (a *app) printer(cmd *cobra.Command) *Printer {
	return NewPrinter(a.cfg.OutputFormat, cmd.OutOrStdout())
}

// handleError prints an error to w in the configured format
func handleError(cfg *Config, w io.Writer, err error) {
	printer := NewPrinter(cfg.OutputFormat, w)
	if _, ferr := ParseOutputFormat(cfg.OutputFormat); ferr != nil {
		printer = NewPrinter(string(OutputFormatText), w)
	}
	_ = printer.PrintError(err) // Error printing to stderr is best-effort
}
