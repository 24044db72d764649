// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entry

import (
	"time"

	"storepass.io/storeerr"
)

// Node is a single entry in the password tree: the Root, a Folder, or
// one of the twelve account kinds. Root is the only Node with no
// name and no parent; every other Node has exactly one parent once
// attached (see Add/Move in tree.go) and an immutable, non-empty name.
//
// A Node owns its children; a child's parent pointer is a relation
// only, never ownership, so the tree can be walked both ways without
// creating a reference cycle the garbage collector can't handle
// (Go's GC handles cycles fine, but keeping the direction explicit
// matches the arena-vs-pointer-graph design used by the model this
// type replaces).
type Node struct {
	kind Kind
	name string

	description *string
	updated     *time.Time
	notes       *string
	props       map[string]string

	parent   *Node
	children []*Node
}

// NewRoot creates a detached, empty Root node.
func NewRoot() *Node {
	return &Node{kind: KindRoot}
}

// NewFolder creates a detached Folder with the given name.
func NewFolder(name string) *Node {
	return &Node{kind: KindFolder, name: name}
}

// NewAccount creates a detached account entry of the given kind. It
// fails if kind is Root or Folder, or isn't a recognized kind.
func NewAccount(kind Kind, name string) (*Node, error) {
	const op = "entry.NewAccount"
	if !kind.Valid() || !kind.IsAccount() {
		return nil, storeerr.E(op, storeerr.Other)
	}
	return &Node{kind: kind, name: name}, nil
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Name returns the node's name. Root's name is always "".
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil if detached or Root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in sort order. The returned
// slice must not be mutated by the caller; use the tree operations in
// tree.go instead.
func (n *Node) Children() []*Node { return n.children }

// Description returns the optional free-text description, and whether
// it is set.
func (n *Node) Description() (string, bool) {
	if n.description == nil {
		return "", false
	}
	return *n.description, true
}

// SetDescription sets or clears the description.
func (n *Node) SetDescription(v *string) { n.description = v }

// Updated returns the optional last-modified instant, and whether it
// is set. The instant has one-second resolution.
func (n *Node) Updated() (time.Time, bool) {
	if n.updated == nil {
		return time.Time{}, false
	}
	return *n.updated, true
}

// SetUpdated sets or clears the last-modified instant.
func (n *Node) SetUpdated(v *time.Time) { n.updated = v }

// Notes returns the optional free-text notes, and whether they are set.
func (n *Node) Notes() (string, bool) {
	if n.notes == nil {
		return "", false
	}
	return *n.notes, true
}

// SetNotes sets or clears the notes.
func (n *Node) SetNotes(v *string) { n.notes = v }

// Property returns the value of a kind-specific property by its
// command-line name, and whether it is set. It returns false, "" for
// names that aren't part of the node's kind schema.
func (n *Node) Property(cliName string) (string, bool) {
	if n.props == nil {
		return "", false
	}
	v, ok := n.props[cliName]
	return v, ok
}

// SetProperty sets a kind-specific property by its command-line name.
// It fails if cliName is not part of the node's kind schema.
func (n *Node) SetProperty(cliName, value string) error {
	const op = "entry.SetProperty"
	if _, ok := PropertyByCLIName(n.kind, cliName); !ok {
		return storeerr.E(op, storeerr.Other, storeerr.Path(cliName))
	}
	if n.props == nil {
		n.props = make(map[string]string)
	}
	n.props[cliName] = value
	return nil
}

// ClearProperty removes a kind-specific property, making it absent.
func (n *Node) ClearProperty(cliName string) {
	delete(n.props, cliName)
}

// Path returns the list of names from the root (exclusive) down to n,
// e.g. ["Work", "Email accounts", "Company mail"]. Root returns nil.
func (n *Node) Path() []string {
	if n.parent == nil {
		return nil
	}
	return append(n.parent.Path(), n.name)
}
