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
	"path/filepath"
	"strings"

	"github.com/jeremyhahn/go-slip39/pkg/adapters/logger"
	"github.com/jeremyhahn/go-slip39/pkg/correlation"
	"github.com/jeremyhahn/go-slip39/pkg/crypto/rand"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the CLI.
	EnvPrefix = "SLIP39"

	// EnvPassphrase supplies the share passphrase.
	EnvPassphrase = "SLIP39_PASSPHRASE"

	// EnvPassword is an alias of EnvPassphrase.
	EnvPassword = "SLIP39_PASSWORD"

	// EnvBIP39 supplies the BIP-39 mnemonic for "split --bip39".
	EnvBIP39 = "SLIP39_BIP39"

	// DefaultConfigName is looked up in the home directory when --config
	// is not given.
	DefaultConfigName = ".slip39"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// OutputFormat controls output formatting (text, json, yaml, words)
	OutputFormat string

	// Verbose enables debug logging
	Verbose bool

	// LogFormat selects the log encoder (text, json, console)
	LogFormat string

	// LogLevel is the minimum level logged when Verbose is off
	LogLevel string

	// MetricsFile receives Prometheus metrics in the textfile format
	MetricsFile string

	// Prompt asks for the passphrase on the terminal when none is set
	Prompt bool

	// Seed switches randomness to the deterministic source. Test use only.
	Seed string

	// CorrelationID tags every log line of the invocation
	CorrelationID string

	passphrase    string
	passphraseSet bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: string(OutputFormatText),
		LogFormat:    "text",
		LogLevel:     "warn",
	}
}

// Load merges flags, SLIP39_* environment variables and the optional YAML
// config file into c. Flags win over the environment, which wins over the
// file.
func (c *Config) Load(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := v.BindEnv("passphrase", EnvPassphrase, EnvPassword); err != nil {
		return fmt.Errorf("failed to bind passphrase environment: %w", err)
	}
	if err := v.BindEnv("correlation-id", correlation.EnvVar); err != nil {
		return fmt.Errorf("failed to bind correlation environment: %w", err)
	}

	if err := c.readConfigFile(v); err != nil {
		return err
	}

	c.OutputFormat = strings.ToLower(v.GetString("output"))
	c.Verbose = v.GetBool("verbose")
	c.LogFormat = strings.ToLower(v.GetString("log-format"))
	c.LogLevel = v.GetString("log-level")
	c.MetricsFile = v.GetString("metrics-file")
	c.Prompt = v.GetBool("prompt")
	c.Seed = v.GetString("seed")
	c.CorrelationID = v.GetString("correlation-id")
	c.passphrase = v.GetString("passphrase")
	c.passphraseSet = v.IsSet("passphrase")

	if _, err := ParseOutputFormat(c.OutputFormat); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json", "console":
	default:
		return fmt.Errorf("unknown log format: %q", c.LogFormat)
	}
	return nil
}

func (c *Config) readConfigFile(v *viper.Viper) error {
	v.SetConfigType("yaml")
	if c.ConfigFile != "" {
		v.SetConfigFile(c.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", c.ConfigFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.SetConfigName(DefaultConfigName)
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w",
			filepath.Join(home, DefaultConfigName+".yaml"), err)
	}
	return nil
}

// Passphrase returns the passphrase from flags, environment or config, and
// whether one was set at all.
func (c *Config) Passphrase() (string, bool) {
	return c.passphrase, c.passphraseSet
}

// NewLogger builds the logger selected by LogFormat, writing to w.
func (c *Config) NewLogger(w io.Writer) logger.ContextLogger {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		level = logger.LevelWarn
	}
	if c.Verbose {
		level = logger.LevelDebug
	}

	switch c.LogFormat {
	case "json":
		return logger.NewSlogAdapter(&logger.SlogConfig{Writer: w, Level: level, JSON: true})
	case "console":
		return logger.NewZerologAdapter(&logger.ZerologConfig{Writer: w, Level: level, Console: true})
	default:
		return logger.NewSlogAdapter(&logger.SlogConfig{Writer: w, Level: level})
	}
}

// RandomSource returns the operating system source, or the deterministic
// source when Seed is set.
func (c *Config) RandomSource() (rand.Resolver, error) {
	cfg := &rand.Config{Mode: rand.ModeSoftware}
	if c.Seed != "" {
		cfg = &rand.Config{Mode: rand.ModeDeterministic, Seed: []byte(c.Seed)}
	}
	r, err := rand.NewResolver(cfg)
	if err != nil {
		return nil, err
	}
	if !r.Available() {
		_ = r.Close()
		return nil, fmt.Errorf("%s random source is not available", cfg.Mode)
	}
	return r, nil
}
