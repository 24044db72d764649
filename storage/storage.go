// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage is the façade described by spec.md §4.7: it bundles
// the envelope codec and the XML codec behind read_plain/read_tree/
// write_plain/write_tree, lazily prompting for a passphrase through a
// caller-supplied PasswordProvider at most once per façade lifetime.
// Grounded on client/client.go's pattern of a façade type that bundles
// several sub-services behind one constructor.
package storage

import (
	"os"

	"storepass.io/entry"
	"storepass.io/envelope"
	"storepass.io/rvlxml"
	"storepass.io/storeerr"
)

// PasswordProvider supplies the passphrase protecting a database file.
// It is invoked lazily, at most once per Storage, the first time a
// read or write operation actually needs the passphrase.
type PasswordProvider func() (string, error)

// Storage is the façade bound to one on-disk path and one passphrase
// source. It is not safe for concurrent use; see spec.md §5.
type Storage struct {
	path     string
	provider PasswordProvider

	havePassphrase bool
	passphrase     string
}

// New returns a façade for the database at path, using provider to
// obtain the passphrase on first use.
func New(path string, provider PasswordProvider) *Storage {
	return &Storage{path: path, provider: provider}
}

func (s *Storage) passwordOnce() (string, error) {
	if s.havePassphrase {
		return s.passphrase, nil
	}
	pw, err := s.provider()
	if err != nil {
		return "", err
	}
	s.passphrase = pw
	s.havePassphrase = true
	return pw, nil
}

// ReadPlain reads and decrypts the database, returning its raw UTF-8
// XML payload without parsing it.
func (s *Storage) ReadPlain() (string, error) {
	const op = "storage.ReadPlain"
	pw, err := s.passwordOnce()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", storeerr.E(op, storeerr.IoError, err)
	}
	plain, err := envelope.Open(data, pw)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// ReadTree reads, decrypts and parses the database into an entry tree.
func (s *Storage) ReadTree() (*entry.Node, error) {
	plain, err := s.ReadPlain()
	if err != nil {
		return nil, err
	}
	return rvlxml.Unmarshal([]byte(plain))
}

// WritePlain encrypts and writes xml verbatim as the database content.
// When exclusive is true, the destination must not already exist; it
// fails with storeerr.AlreadyExists otherwise.
func (s *Storage) WritePlain(xml string, exclusive bool) error {
	const op = "storage.WritePlain"
	pw, err := s.passwordOnce()
	if err != nil {
		return err
	}
	sealed, err := envelope.Seal([]byte(xml), pw)
	if err != nil {
		return err
	}
	return writeFile(op, s.path, sealed, exclusive)
}

// WriteTree renders root as XML and writes it as the database content,
// with the same exclusivity semantics as WritePlain.
func (s *Storage) WriteTree(root *entry.Node, exclusive bool) error {
	xml, err := rvlxml.Marshal(root)
	if err != nil {
		return err
	}
	return s.WritePlain(xml, exclusive)
}

// writeFile implements §4.6.4: exclusive mode uses create-exclusive
// semantics and reports an existing file as storeerr.AlreadyExists;
// non-exclusive mode is a plain overwrite.
func writeFile(op, path string, data []byte, exclusive bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exclusive {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0600)
	if err != nil {
		if exclusive && os.IsExist(err) {
			return storeerr.E(op, storeerr.AlreadyExists, storeerr.Path(path))
		}
		return storeerr.E(op, storeerr.IoError, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return storeerr.E(op, storeerr.IoError, err)
	}
	return nil
}
