// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model is the façade described by spec.md §4.8: it holds the
// current entry tree and exposes load/save/lookup and the structural
// mutations in terms of path strings rather than *entry.Node, parsing
// each path through package pathspec before descending through
// package entry. Grounded on client/client.go's façade-over-sub-services
// pattern.
package model

import (
	"storepass.io/entry"
	"storepass.io/pathspec"
	"storepass.io/storage"
	"storepass.io/storeerr"
)

// Model holds the current tree in memory. It is not safe for
// concurrent mutation; see spec.md §5.
type Model struct {
	root *entry.Node
}

// New returns a Model with an empty tree, as after "storepass init".
func New() *Model {
	return &Model{root: entry.NewRoot()}
}

// Root returns the current root node.
func (m *Model) Root() *entry.Node { return m.root }

// Load replaces the current tree with the one read from s.
func (m *Model) Load(s *storage.Storage) error {
	root, err := s.ReadTree()
	if err != nil {
		return err
	}
	m.root = root
	return nil
}

// Save writes the current tree to s.
func (m *Model) Save(s *storage.Storage, exclusive bool) error {
	return s.WriteTree(m.root, exclusive)
}

// Lookup parses pathString through pathspec and descends the tree,
// per spec.md §4.1 and §4.3.
func (m *Model) Lookup(pathString string) (*entry.Node, error) {
	elems, err := pathspec.Decode(pathString)
	if err != nil {
		return nil, err
	}
	return entry.Lookup(m.root, elems)
}

// splitParentLeaf splits a decoded path into its parent elements and
// leaf name. An empty input path ("") decodes to a single empty
// element, whose empty leaf name AddEntry rejects with
// storeerr.EmptyName exactly as a literal empty leaf.
func splitParentLeaf(elems []string) ([]string, string) {
	if len(elems) == 0 {
		return nil, ""
	}
	return elems[:len(elems)-1], elems[len(elems)-1]
}

// AddEntry splits pathString into (parent_path, leaf_name), resolves
// the parent, constructs a new entry of kind with the leaf name and
// inserts it, returning the new node so the caller can set its
// properties.
func (m *Model) AddEntry(pathString string, kind entry.Kind) (*entry.Node, error) {
	const op = "model.AddEntry"
	elems, err := pathspec.Decode(pathString)
	if err != nil {
		return nil, err
	}
	parentElems, leaf := splitParentLeaf(elems)
	if leaf == "" {
		return nil, storeerr.E(op, storeerr.EmptyName)
	}
	parent, err := entry.Lookup(m.root, parentElems)
	if err != nil {
		return nil, err
	}

	var child *entry.Node
	if kind == entry.KindFolder {
		child = entry.NewFolder(leaf)
	} else {
		child, err = entry.NewAccount(kind, leaf)
		if err != nil {
			return nil, err
		}
	}

	if err := entry.Add(parent, child); err != nil {
		return nil, err
	}
	return child, nil
}

// MoveEntry moves the node at srcPath to become a child of the
// container at dstPath.
func (m *Model) MoveEntry(srcPath, dstPath string) error {
	src, err := m.Lookup(srcPath)
	if err != nil {
		return err
	}
	dst, err := m.Lookup(dstPath)
	if err != nil {
		return err
	}
	return entry.Move(src, dst)
}

// RemoveEntry removes the node at pathString.
func (m *Model) RemoveEntry(pathString string) error {
	n, err := m.Lookup(pathString)
	if err != nil {
		return err
	}
	return entry.Remove(n)
}

// ReplaceEntry replaces the node at pathString with newEntry, which
// the caller has already constructed with its final name (possibly
// different from the old entry's, in which case this also renames).
func (m *Model) ReplaceEntry(pathString string, newEntry *entry.Node) error {
	old, err := m.Lookup(pathString)
	if err != nil {
		return err
	}
	return entry.Replace(old, newEntry)
}

// VisitAll walks the whole tree from the root; see package entry's
// Visitor protocol.
func (m *Model) VisitAll(v entry.Visitor) {
	entry.Accept(m.root, v, false)
}
