// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Storepass is a command-line password manager reading and writing
// Revelation v2 database files. See storepass.io/spec.md §6.3 for its
// full command contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"storepass.io/config"
	"storepass.io/log"
)

// appError marks an error as caller-visible (exit code 1) rather than
// an argument-parsing failure from cobra itself (exit code 2).
type appError struct{ err error }

func (e *appError) Error() string { return e.err.Error() }
func (e *appError) Unwrap() error { return e.err }

func fail(err error) error {
	if err == nil {
		return nil
	}
	return &appError{err}
}

func main() {
	root := newRootCmd()
	root.SilenceUsage = true
	root.SilenceErrors = true

	err := root.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "storepass: %v\n", err)
	if _, ok := err.(*appError); ok {
		os.Exit(1)
	}
	os.Exit(2)
}

func logLevelFromFlag(s string) log.Level {
	switch s {
	case "debug":
		return log.Ldebug
	case "info":
		return log.Linfo
	case "error":
		return log.Lerror
	case "disabled":
		return log.Ldisabled
	}
	return log.Linvalid
}

func newRootCmd() *cobra.Command {
	var dbPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:           "storepass",
		Short:         "A local, single-file password manager compatible with Revelation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl := logLevelFromFlag(logLevel)
			if lvl == log.Linvalid {
				return fmt.Errorf("unrecognized --log value %q", logLevel)
			}
			log.SetLevel(lvl)
			return nil
		},
	}
	defaultPath := config.DefaultDBPath()
	if v, ok := os.LookupEnv(config.EnvDBPath); ok && v != "" {
		defaultPath = v
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", defaultPath, "path to the password database")
	cmd.PersistentFlags().StringVar(&logLevel, "log", config.DefaultLogLevel, "log level: debug, info, error, disabled")

	cmd.AddCommand(
		newInitCmd(&dbPath),
		newListCmd(&dbPath),
		newShowCmd(&dbPath),
		newAddCmd(&dbPath),
		newEditCmd(&dbPath),
		newDeleteCmd(&dbPath),
		newDumpCmd(&dbPath),
	)
	return cmd
}
