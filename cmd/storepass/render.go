// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"storepass.io/entry"
	"storepass.io/pathspec"
)

// address returns the value the outline renderer shows in brackets
// next to an account's name: its hostname property if present, else
// its URL property if present, else "", per spec.md §6.3. Grounded on
// original_source/storepass/plainview.py's address-line fallback.
func address(n *entry.Node) string {
	if v, ok := n.Property("hostname"); ok && v != "" {
		return v
	}
	if v, ok := n.Property("url"); ok && v != "" {
		return v
	}
	return ""
}

// outlineVisitor renders the tree as the indented "list" outline of
// spec.md §6.3: containers as "+ NAME[: DESCRIPTION]", accounts as
// "- NAME[ [address]][: DESCRIPTION]", indented two spaces per depth
// level below the root.
type outlineVisitor struct {
	w     io.Writer
	depth int
}

func (v *outlineVisitor) line(n *entry.Node, marker string) interface{} {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", v.depth))
	b.WriteString(marker)
	b.WriteString(" ")
	b.WriteString(n.Name())
	if addr := address(n); addr != "" && n.Kind() != entry.KindFolder {
		fmt.Fprintf(&b, " [%s]", addr)
	}
	if desc, ok := n.Description(); ok && desc != "" {
		fmt.Fprintf(&b, ": %s", desc)
	}
	fmt.Fprintln(v.w, b.String())
	return nil
}

func (v *outlineVisitor) OnRoot(n *entry.Node) interface{}   { return nil }
func (v *outlineVisitor) OnFolder(n *entry.Node) interface{} { return v.line(n, "+") }

func (v *outlineVisitor) OnCreditCard(n *entry.Node) interface{}    { return v.line(n, "-") }
func (v *outlineVisitor) OnCryptoKey(n *entry.Node) interface{}     { return v.line(n, "-") }
func (v *outlineVisitor) OnDatabase(n *entry.Node) interface{}      { return v.line(n, "-") }
func (v *outlineVisitor) OnDoor(n *entry.Node) interface{}          { return v.line(n, "-") }
func (v *outlineVisitor) OnEmail(n *entry.Node) interface{}         { return v.line(n, "-") }
func (v *outlineVisitor) OnFTP(n *entry.Node) interface{}           { return v.line(n, "-") }
func (v *outlineVisitor) OnGeneric(n *entry.Node) interface{}       { return v.line(n, "-") }
func (v *outlineVisitor) OnPhone(n *entry.Node) interface{}         { return v.line(n, "-") }
func (v *outlineVisitor) OnRemoteDesktop(n *entry.Node) interface{} { return v.line(n, "-") }
func (v *outlineVisitor) OnShell(n *entry.Node) interface{}         { return v.line(n, "-") }
func (v *outlineVisitor) OnVNC(n *entry.Node) interface{}           { return v.line(n, "-") }
func (v *outlineVisitor) OnWebsite(n *entry.Node) interface{}       { return v.line(n, "-") }

func (v *outlineVisitor) EnterContainer(container *entry.Node, parentData interface{}) {
	v.depth++
}
func (v *outlineVisitor) LeaveContainer() {
	v.depth--
}

// renderList writes the full-tree outline to w. depth starts at -1 so
// that root's own EnterContainer (which never prints a line for root
// itself) brings the root's direct children to depth 0, matching
// spec.md §6.3's "two spaces per depth level below the root".
func renderList(w io.Writer, root *entry.Node) {
	v := &outlineVisitor{w: w, depth: -1}
	entry.Accept(root, v, false)
}

// renderShow writes the detailed single-entry view of spec.md §6.3:
// header "+ FULL_PATH (LABEL)", then each present kind-specific
// property in schema order, then Description, Notes and Last modified.
func renderShow(w io.Writer, n *entry.Node) {
	fullPath := pathspec.Encode(n.Path())
	fmt.Fprintf(w, "+ %s (%s)\n", fullPath, n.Kind().Label())

	for _, prop := range n.Kind().Properties() {
		val, ok := n.Property(prop.CLIName)
		if !ok || val == "" {
			continue
		}
		fmt.Fprintf(w, "  - %s: %s\n", prop.Label, val)
	}

	if desc, ok := n.Description(); ok && desc != "" {
		fmt.Fprintf(w, "  - Description: %s\n", desc)
	}
	if notes, ok := n.Notes(); ok && notes != "" {
		fmt.Fprintf(w, "  - Notes: %s\n", notes)
	}
	if updated, ok := n.Updated(); ok {
		fmt.Fprintf(w, "  - Last modified: %s\n", updated.Local().Format("Mon Jan _2 15:04:05 2006 MST"))
	}
}
