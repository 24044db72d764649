// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
	"storepass.io/storage"
)

// terminalPasswordProvider returns a storage.PasswordProvider that
// reads the database passphrase from the controlling terminal without
// echo, implementing the PasswordProvider contract of spec.md §4.7.
func terminalPasswordProvider(prompt string) storage.PasswordProvider {
	return func() (string, error) {
		return promptSecret(prompt)
	}
}

// promptSecret writes prompt to stderr and reads one line from the
// terminal with echo disabled, used both for the database passphrase
// and for "--password" given without a value (spec.md §6.3).
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}
