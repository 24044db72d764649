// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config defines the small set of package-level defaults
// shared between storepass binaries, in the same spirit as
// upspin.io/flags: a handful of vars with OS-derived defaults that the
// CLI binds to its own flag set.
package config

import (
	"os"
	"path/filepath"
)

// DefaultDBPath returns the default location of the password database,
// $HOME/.storepass.db, as required by the persisted-state contract.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".storepass.db")
}

// DefaultLogLevel is the logging level new CLI invocations start at.
const DefaultLogLevel = "info"

// EnvDBPath is the environment variable that overrides the database
// path when the --db flag is not given.
const EnvDBPath = "STOREPASS_DB"
