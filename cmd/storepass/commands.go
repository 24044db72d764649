// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"storepass.io/entry"
	"storepass.io/model"
	"storepass.io/storage"
)

// touchUpdated stamps n's updated timestamp with the current time,
// truncated to the second, as original_source/storepass/cli/__main__.py's
// "add"/"edit" handlers do with datetime.datetime.now(utc).
func touchUpdated(n *entry.Node) {
	now := time.Now().UTC().Truncate(time.Second)
	n.SetUpdated(&now)
}

// promptSentinel is the NoOptDefVal for --password: it lets the flag
// be passed bare ("--password" with no value) to mean "prompt",
// distinguishing that from "not passed at all" (fs.Changed is false).
const promptSentinel = "\x00prompt\x00"

func openStorage(dbPath string) *storage.Storage {
	return storage.New(dbPath, terminalPasswordProvider(fmt.Sprintf("Passphrase for %s: ", dbPath)))
}

func loadModel(dbPath string) (*model.Model, *storage.Storage, error) {
	s := openStorage(dbPath)
	m := model.New()
	if err := m.Load(s); err != nil {
		return nil, nil, err
	}
	return m, s, nil
}

func newInitCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := openStorage(*dbPath)
			return fail(s.WriteTree(entry.NewRoot(), true))
		},
	}
}

func newListCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all entries as an indented outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := loadModel(*dbPath)
			if err != nil {
				return fail(err)
			}
			renderList(os.Stdout, m.Root())
			return nil
		},
	}
}

func newShowCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show ENTRY",
		Short: "Show one entry in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := loadModel(*dbPath)
			if err != nil {
				return fail(err)
			}
			n, err := m.Lookup(args[0])
			if err != nil {
				return fail(err)
			}
			renderShow(os.Stdout, n)
			return nil
		},
	}
}

func newDumpCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the plain XML payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := openStorage(*dbPath)
			xml, err := s.ReadPlain()
			if err != nil {
				return fail(err)
			}
			fmt.Fprint(os.Stdout, xml)
			return nil
		},
	}
}

func newDeleteCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENTRY",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, s, err := loadModel(*dbPath)
			if err != nil {
				return fail(err)
			}
			if err := m.RemoveEntry(args[0]); err != nil {
				return fail(err)
			}
			return fail(m.Save(s, false))
		},
	}
}

// peekType scans args for a "--type VALUE" or "--type=VALUE" pair
// without fully parsing the rest, so the correct per-kind flag set can
// be built before the real parse runs.
func peekType(args []string) (entry.Kind, error) {
	for i, a := range args {
		var val string
		switch {
		case a == "--type":
			if i+1 >= len(args) {
				return 0, fmt.Errorf("--type requires a value")
			}
			val = args[i+1]
		case strings.HasPrefix(a, "--type="):
			val = strings.TrimPrefix(a, "--type=")
		default:
			continue
		}
		k, ok := entry.KindByCLIName(val)
		if !ok {
			return 0, fmt.Errorf("unrecognized --type %q", val)
		}
		return k, nil
	}
	return entry.KindGeneric, nil
}

// entryFlagSet is a per-kind pflag.FlagSet built by buildEntryFlagSet:
// one string flag per property in the kind's schema, plus the common
// --description/--notes/--type flags.
type entryFlagSet struct {
	fs       *pflag.FlagSet
	kind     entry.Kind
	typeFlag *string
	descFlag *string
	notes    *string
	props    map[string]*string // cliName -> value
}

func buildEntryFlagSet(op string, kind entry.Kind) *entryFlagSet {
	fs := pflag.NewFlagSet(op, pflag.ContinueOnError)
	e := &entryFlagSet{fs: fs, kind: kind, props: make(map[string]*string)}
	e.typeFlag = fs.String("type", kind.CLIName(), "entry kind")
	e.descFlag = fs.String("description", "", "free-text description")
	e.notes = fs.String("notes", "", "free-text notes")
	for _, p := range kind.Properties() {
		v := fs.String(p.CLIName, "", p.Label)
		e.props[p.CLIName] = v
		if p.CLIName == "password" {
			fs.Lookup("password").NoOptDefVal = promptSentinel
		}
	}
	return e
}

// apply writes every flag the caller actually passed onto n, prompting
// for --password when it was passed with no value.
func (e *entryFlagSet) apply(n *entry.Node) error {
	if e.fs.Changed("description") {
		d := *e.descFlag
		n.SetDescription(&d)
	}
	if e.fs.Changed("notes") {
		nt := *e.notes
		n.SetNotes(&nt)
	}
	for cliName, v := range e.props {
		if !e.fs.Changed(cliName) {
			continue
		}
		val := *v
		if cliName == "password" && val == promptSentinel {
			pw, err := promptSecret(fmt.Sprintf("Value for --%s: ", cliName))
			if err != nil {
				return err
			}
			val = pw
		}
		if err := n.SetProperty(cliName, val); err != nil {
			return err
		}
	}
	return nil
}

func newAddCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "add [flags] ENTRY",
		Short:              "Add a new entry",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(*dbPath, args)
		},
	}
	return cmd
}

func runAdd(dbPath string, args []string) error {
	kind, err := peekType(args)
	if err != nil {
		return err
	}
	e := buildEntryFlagSet("add", kind)
	if err := e.fs.Parse(args); err != nil {
		return err
	}
	rest := e.fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("add: expected exactly one ENTRY argument, got %d", len(rest))
	}

	m, s, err := loadModel(dbPath)
	if err != nil {
		return fail(err)
	}
	n, err := m.AddEntry(rest[0], kind)
	if err != nil {
		return fail(err)
	}
	if err := e.apply(n); err != nil {
		return fail(err)
	}
	touchUpdated(n)
	return fail(m.Save(s, false))
}

func newEditCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "edit [flags] ENTRY",
		Short:              "Edit an existing entry",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(*dbPath, args)
		},
	}
	return cmd
}

func runEdit(dbPath string, args []string) error {
	newKind, err := peekType(args)
	typeGiven := err == nil && hasTypeFlag(args)
	if err != nil {
		return err
	}

	m, s, err := loadModel(dbPath)
	if err != nil {
		return fail(err)
	}

	// A first, permissive pass only to locate ENTRY and the old kind,
	// since the flag set (and therefore the valid --<property> names)
	// depends on which kind ends up governing this edit.
	peekFS := buildEntryFlagSet("edit", newKind)
	if !typeGiven {
		// Without --type the existing entry's own kind governs which
		// --<property> flags are legal.
		peekRest, perr := peekEntryPath(args)
		if perr != nil {
			return perr
		}
		old, lerr := m.Lookup(peekRest)
		if lerr != nil {
			return fail(lerr)
		}
		newKind = old.Kind()
		peekFS = buildEntryFlagSet("edit", newKind)
	}

	if err := peekFS.fs.Parse(args); err != nil {
		return err
	}
	rest := peekFS.fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("edit: expected exactly one ENTRY argument, got %d", len(rest))
	}
	path := rest[0]

	old, err := m.Lookup(path)
	if err != nil {
		return fail(err)
	}

	if !typeGiven || newKind == old.Kind() {
		if err := peekFS.apply(old); err != nil {
			return fail(err)
		}
		touchUpdated(old)
		return fail(m.Save(s, false))
	}

	var replacement *entry.Node
	if newKind == entry.KindFolder {
		replacement = entry.NewFolder(old.Name())
	} else {
		replacement, err = entry.NewAccount(newKind, old.Name())
		if err != nil {
			return fail(err)
		}
	}
	// Carry over values of properties that exist in both schemas.
	for _, p := range newKind.Properties() {
		if v, ok := old.Property(p.CLIName); ok {
			_ = replacement.SetProperty(p.CLIName, v)
		}
	}
	if err := peekFS.apply(replacement); err != nil {
		return fail(err)
	}
	touchUpdated(replacement)
	if err := m.ReplaceEntry(path, replacement); err != nil {
		return fail(err)
	}
	return fail(m.Save(s, false))
}

func hasTypeFlag(args []string) bool {
	for _, a := range args {
		if a == "--type" || strings.HasPrefix(a, "--type=") {
			return true
		}
	}
	return false
}

// peekEntryPath extracts the positional ENTRY argument, which by
// convention is always the last command-line argument (flags, like
// "edit [flags] ENTRY" in the Use string, always precede it). This
// lets the kind-governed flag set be built without first parsing the
// very flags whose legality depends on that kind.
func peekEntryPath(args []string) (string, error) {
	if len(args) == 0 || strings.HasPrefix(args[len(args)-1], "-") {
		return "", fmt.Errorf("expected exactly one ENTRY argument")
	}
	return args[len(args)-1], nil
}
