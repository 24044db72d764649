// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entry

// Visitor receives one callback per entry kind during a tree
// traversal, plus two container-boundary callbacks. Each per-entry
// callback may return an opaque value; when the visited entry is
// itself a container, that value is threaded through as the
// parentData argument to the following EnterContainer call.
//
// Traversal is synchronous and non-cancellable, matching
// original_source/storepass/model.py's ModelVisitor: a Visitor that
// wants to abort a walk early must do so with a panic (recovered by
// the caller) rather than through the interface itself.
type Visitor interface {
	OnRoot(n *Node) interface{}
	OnFolder(n *Node) interface{}
	OnCreditCard(n *Node) interface{}
	OnCryptoKey(n *Node) interface{}
	OnDatabase(n *Node) interface{}
	OnDoor(n *Node) interface{}
	OnEmail(n *Node) interface{}
	OnFTP(n *Node) interface{}
	OnGeneric(n *Node) interface{}
	OnPhone(n *Node) interface{}
	OnRemoteDesktop(n *Node) interface{}
	OnShell(n *Node) interface{}
	OnVNC(n *Node) interface{}
	OnWebsite(n *Node) interface{}

	// EnterContainer is called before a container's children are
	// visited, with the parentData returned by the container's own
	// On* callback.
	EnterContainer(container *Node, parentData interface{})
	// LeaveContainer is called after a container's children have all
	// been visited.
	LeaveContainer()
}

// dispatch calls the single On* callback matching n's kind.
func dispatch(v Visitor, n *Node) interface{} {
	switch n.kind {
	case KindRoot:
		return v.OnRoot(n)
	case KindFolder:
		return v.OnFolder(n)
	case KindCreditCard:
		return v.OnCreditCard(n)
	case KindCryptoKey:
		return v.OnCryptoKey(n)
	case KindDatabase:
		return v.OnDatabase(n)
	case KindDoor:
		return v.OnDoor(n)
	case KindEmail:
		return v.OnEmail(n)
	case KindFTP:
		return v.OnFTP(n)
	case KindGeneric:
		return v.OnGeneric(n)
	case KindPhone:
		return v.OnPhone(n)
	case KindRemoteDesktop:
		return v.OnRemoteDesktop(n)
	case KindShell:
		return v.OnShell(n)
	case KindVNC:
		return v.OnVNC(n)
	case KindWebsite:
		return v.OnWebsite(n)
	}
	panic("entry: dispatch on unknown kind")
}

// Accept runs a depth-first, pre-order traversal starting at n. When
// single is true only n itself is visited, without descending into
// its children even if it is a container.
func Accept(n *Node, v Visitor, single bool) {
	parentData := dispatch(v, n)
	if single || !n.kind.IsContainer() {
		return
	}
	v.EnterContainer(n, parentData)
	for _, child := range n.children {
		Accept(child, v, false)
	}
	v.LeaveContainer()
}
