// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lojban-nesy/lojbanesy/internal/config"
	"github.com/lojban-nesy/lojbanesy/internal/logging"
)

// Global flags available to all subcommands.
var (
	configFile string
	logFormat  string
)

// exitInput and exitInternal are the CLI's two non-zero exit codes,
// matching spec.md §6's "0 success, 1 input error, 2 internal".
const (
	exitInput    = 1
	exitInternal = 2
)

// cliError tags an error with the exit code main should return for it.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func inputError(err error) error {
	return &cliError{code: exitInput, err: err}
}

func internalError(err error) error {
	return &cliError{code: exitInternal, err: err}
}

func exitCodeFor(err error) int {
	var ce *cliError
	if ok := asCliError(err, &ce); ok {
		return ce.code
	}
	return exitInternal
}

func asCliError(err error, target **cliError) bool {
	for err != nil {
		if ce, ok := err.(*cliError); ok {
			*target = ce
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// NewRootCmd creates the root command for the lojban reasoning CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lojban",
		Short: "A Lojban neuro-symbolic reasoning pipeline",
		Long: `lojban tokenizes, parses, and compiles Lojban sentences into a
typed first-order logical representation, then asserts or queries them
against a bounded forward-chaining reasoning core.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default $XDG_CONFIG_HOME/lojbanesy/config.yaml)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newReplCmd())
	cmd.AddCommand(newAssertCmd())
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig resolves the layered Config for a subcommand, binding its
// own flag set (which shares the persistent flags registered above).
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := configFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, internalError(err)
	}
	return cfg, nil
}

func setupLogging() *slog.Logger {
	logger := logging.Setup("lojban", version, logFormat, nil)
	slog.SetDefault(logger)
	return logger
}
