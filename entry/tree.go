// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entry

import (
	"sort"

	"storepass.io/pathspec"
	"storepass.io/storeerr"
)

// childIndex returns the index at which a child with the given name
// either is, or would be inserted to keep n.children sorted.
func (n *Node) childIndex(name string) int {
	return sort.Search(len(n.children), func(i int) bool {
		return n.children[i].name >= name
	})
}

// childByName returns a container's child with the given name, and
// whether it was found.
func (n *Node) childByName(name string) (*Node, bool) {
	i := n.childIndex(name)
	if i < len(n.children) && n.children[i].name == name {
		return n.children[i], true
	}
	return nil, false
}

// insertSorted inserts child into n.children preserving sort order.
// Caller must already have validated there's no name clash.
func (n *Node) insertSorted(child *Node) {
	i := n.childIndex(child.name)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
}

// detach removes child from n.children. Caller guarantees child is
// actually a child of n.
func (n *Node) detach(child *Node) {
	i := n.childIndex(child.name)
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
}

// Lookup walks the tree starting at root following path elements,
// failing with storeerr.NotFound if a component is absent or
// storeerr.NotAContainer if a non-container is encountered before the
// path is exhausted.
func Lookup(root *Node, elems []string) (*Node, error) {
	const op = "entry.Lookup"
	cur := root
	for i, elem := range elems {
		if !cur.kind.IsContainer() {
			return nil, storeerr.E(op, storeerr.NotAContainer,
				storeerr.Path(pathspec.Encode(elems[:i])))
		}
		child, ok := cur.childByName(elem)
		if !ok {
			return nil, storeerr.E(op, storeerr.NotFound,
				storeerr.Path(pathspec.Encode(elems[:i+1])))
		}
		cur = child
	}
	return cur, nil
}

// Add attaches a detached node as a child of parent, preserving the
// sort-by-name invariant. It fails with storeerr.EmptyName if child's
// name is empty, or storeerr.Duplicate if parent already has a child
// with that name.
func Add(parent, child *Node) error {
	const op = "entry.Add"
	if child.name == "" {
		return storeerr.E(op, storeerr.EmptyName)
	}
	if _, ok := parent.childByName(child.name); ok {
		return storeerr.E(op, storeerr.Duplicate, storeerr.Path(childPath(parent, child.name)))
	}
	parent.insertSorted(child)
	return nil
}

// AttachChildrenSorted sets parent's children to a stable sort of
// children by name and fixes up their parent pointers. Unlike Add, it
// does not reject duplicate names: it exists for the XML codec, which
// must accept a document containing sibling entries with clashing
// names (the model merely re-sorts them) even though Add forbids
// creating such a state through normal mutation.
func AttachChildrenSorted(parent *Node, children []*Node) {
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].name < children[j].name
	})
	for _, c := range children {
		c.parent = parent
	}
	parent.children = children
}

// Move reparents an already-attached node under newParent. It fails
// with storeerr.CyclicMove if newParent is entry itself or one of its
// descendants, and storeerr.Duplicate if newParent already has a
// child with entry's name. The tree is left unchanged on failure.
func Move(entryNode, newParent *Node) error {
	const op = "entry.Move"
	if entryNode.parent == nil {
		return storeerr.E(op, storeerr.Other)
	}
	if newParent == entryNode || isDescendant(entryNode, newParent) {
		return storeerr.E(op, storeerr.CyclicMove,
			storeerr.Path(pathspec.Encode(entryNode.Path())+" -> "+pathspec.Encode(newParent.Path())))
	}
	if _, ok := newParent.childByName(entryNode.name); ok {
		return storeerr.E(op, storeerr.Duplicate, storeerr.Path(childPath(newParent, entryNode.name)))
	}
	oldParent := entryNode.parent
	oldParent.detach(entryNode)
	newParent.insertSorted(entryNode)
	return nil
}

// isDescendant reports whether candidate is a descendant of ancestor.
func isDescendant(ancestor, candidate *Node) bool {
	for p := candidate.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Remove detaches and drops a node. It fails with
// storeerr.NonEmptyContainer if the node is a container with children.
func Remove(entryNode *Node) error {
	const op = "entry.Remove"
	if entryNode.kind.IsContainer() && len(entryNode.children) > 0 {
		return storeerr.E(op, storeerr.NonEmptyContainer, storeerr.Path(pathspec.Encode(entryNode.Path())))
	}
	if entryNode.parent != nil {
		entryNode.parent.detach(entryNode)
	}
	return nil
}

// Replace swaps oldEntry for newEntry at the same position in the
// tree. If oldEntry is a non-empty Folder and newEntry is not a
// Folder, it fails with storeerr.NonEmptyContainerReplace. If the
// names differ and a different sibling already has newEntry's name,
// it fails with storeerr.Duplicate. When both are Folders, oldEntry's
// children transfer to newEntry.
func Replace(oldEntry, newEntry *Node) error {
	const op = "entry.Replace"
	parent := oldEntry.parent
	if parent == nil {
		return storeerr.E(op, storeerr.Other)
	}

	if oldEntry.name != newEntry.name {
		if sibling, ok := parent.childByName(newEntry.name); ok && sibling != oldEntry {
			return storeerr.E(op, storeerr.Duplicate, storeerr.Path(childPath(parent, newEntry.name)))
		}
	}
	if oldEntry.kind == KindFolder && len(oldEntry.children) > 0 && newEntry.kind != KindFolder {
		return storeerr.E(op, storeerr.NonEmptyContainerReplace, storeerr.Path(pathspec.Encode(oldEntry.Path())))
	}

	var transferred []*Node
	if oldEntry.kind == KindFolder && newEntry.kind == KindFolder && len(oldEntry.children) > 0 {
		transferred = oldEntry.children
		oldEntry.children = nil
	}

	parent.detach(oldEntry)
	parent.insertSorted(newEntry)
	for _, c := range transferred {
		c.parent = newEntry
	}
	newEntry.children = transferred

	return nil
}

func childPath(parent *Node, name string) string {
	return pathspec.Encode(append(parent.Path(), name))
}
