// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rvlxml translates between the storepass entry tree and the
// <revelationdata> XML grammar used on disk. It is grounded on
// original_source/storepass/storage.py's _XMLToModelConvertor and
// _ModelToXMLConvertor, reporting the same XPath-accurate errors.
package rvlxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"storepass.io/entry"
	"storepass.io/storeerr"
)

// xpath tracks the path to the XML element currently being processed,
// formatted the way spec error messages expect it:
// "/revelationdata/entry[1]/name".
type xpath struct {
	parts []string
}

func (x *xpath) push(s string) { x.parts = append(x.parts, s) }
func (x *xpath) pop()          { x.parts = x.parts[:len(x.parts)-1] }
func (x *xpath) String() string {
	return strings.Join(x.parts, "")
}

func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// validateAttrs fails with storeerr.UnknownAttribute if attrs contains
// any name not in accepted.
func validateAttrs(attrs []xml.Attr, xp *xpath, accepted ...string) error {
	const op = "rvlxml.Unmarshal"
	for _, a := range attrs {
		ok := false
		for _, acc := range accepted {
			if a.Name.Local == acc {
				ok = true
				break
			}
		}
		if !ok {
			return storeerr.E(op, storeerr.UnknownAttribute, storeerr.Path(xp.String()+"/@"+a.Name.Local))
		}
	}
	return nil
}

type commonProps struct {
	name        *string
	description *string
	updated     *time.Time
	notes       *string
}

// readText consumes tokens up to the matching EndElement of the
// element whose StartElement has already been read, returning its
// concatenated character data. It rejects nested elements, which
// never occur in a well-formed storepass document's leaf properties.
func readText(dec *xml.Decoder, xp *xpath) (string, error) {
	const op = "rvlxml.Unmarshal"
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", storeerr.E(op, storeerr.InvalidValue, storeerr.Path(xp.String()), err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			return b.String(), nil
		case xml.StartElement:
			return "", storeerr.E(op, storeerr.InvalidValue, storeerr.Path(xp.String()),
				fmt.Errorf("unexpected child element '%s'", t.Name.Local))
		}
	}
}

func parseUpdated(text string, xp *xpath) (time.Time, error) {
	const op = "rvlxml.Unmarshal"
	if text == "" {
		return time.Time{}, storeerr.E(op, storeerr.InvalidValue, storeerr.Path(xp.String()),
			fmt.Errorf("string is empty"))
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return time.Time{}, storeerr.E(op, storeerr.InvalidValue, storeerr.Path(xp.String()),
				fmt.Errorf("string contains a non-digit character"))
		}
	}
	secs, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return time.Time{}, storeerr.E(op, storeerr.InvalidValue, storeerr.Path(xp.String()), err)
	}
	return time.Unix(secs, 0).UTC(), nil
}

// parseCommonProp parses a <name>/<description>/<updated>/<notes>
// element, having already consumed its StartElement. xp must already
// include the element's own path component.
func parseCommonProp(dec *xml.Decoder, t xml.StartElement, xp *xpath, props *commonProps) error {
	const op = "rvlxml.Unmarshal"
	if err := validateAttrs(t.Attr, xp); err != nil {
		return err
	}
	text, err := readText(dec, xp)
	if err != nil {
		return err
	}
	switch t.Name.Local {
	case "name":
		if text == "" {
			return storeerr.E(op, storeerr.InvalidValue, storeerr.Path(xp.String()),
				fmt.Errorf("string is empty"))
		}
		props.name = &text
	case "description":
		props.description = &text
	case "updated":
		u, err := parseUpdated(text, xp)
		if err != nil {
			return err
		}
		props.updated = &u
	case "notes":
		props.notes = &text
	}
	return nil
}

func isCommonPropTag(tag string) bool {
	switch tag {
	case "name", "description", "updated", "notes":
		return true
	}
	return false
}

// parseFolderBody parses the children of a folder <entry>, having
// already consumed the <entry> StartElement, up to and including its
// EndElement.
func parseFolderBody(dec *xml.Decoder, xp *xpath) (commonProps, []*entry.Node, error) {
	const op = "rvlxml.Unmarshal"
	var props commonProps
	var children []*entry.Node
	idx := 1
	seenEntry := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return props, nil, storeerr.E(op, storeerr.UnknownFolderElement, storeerr.Path(xp.String()), err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "entry" {
				seenEntry = true
				xp.push(fmt.Sprintf("/entry[%d]", idx))
				idx++
				child, err := parseEntry(dec, t, xp)
				xp.pop()
				if err != nil {
					return props, nil, err
				}
				children = append(children, child)
				continue
			}
			if seenEntry || !isCommonPropTag(t.Name.Local) {
				return props, nil, storeerr.E(op, storeerr.UnknownFolderElement,
					storeerr.Path(xp.String()+"/"+t.Name.Local))
			}
			xp.push("/" + t.Name.Local)
			err := parseCommonProp(dec, t, xp, &props)
			xp.pop()
			if err != nil {
				return props, nil, err
			}
		case xml.EndElement:
			return props, children, nil
		}
	}
}

// parseEntryList parses a sequence of <entry> children only, used for
// the <revelationdata> root, which (unlike a folder) never carries
// name/description/updated/notes properties of its own.
func parseEntryList(dec *xml.Decoder, xp *xpath) ([]*entry.Node, error) {
	const op = "rvlxml.Unmarshal"
	var children []*entry.Node
	idx := 1

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, storeerr.E(op, storeerr.UnknownFolderElement, storeerr.Path(xp.String()), err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "entry" {
				return nil, storeerr.E(op, storeerr.UnknownFolderElement,
					storeerr.Path(xp.String()+"/"+t.Name.Local))
			}
			xp.push(fmt.Sprintf("/entry[%d]", idx))
			idx++
			child, err := parseEntry(dec, t, xp)
			xp.pop()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		case xml.EndElement:
			return children, nil
		}
	}
}

// parseAccountBody parses the children of a non-folder <entry>.
func parseAccountBody(dec *xml.Decoder, xp *xpath, kind entry.Kind) (commonProps, map[string]string, error) {
	const op = "rvlxml.Unmarshal"
	var props commonProps
	values := make(map[string]string)

	for {
		tok, err := dec.Token()
		if err != nil {
			return props, nil, storeerr.E(op, storeerr.UnknownAccountElement, storeerr.Path(xp.String()), err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isCommonPropTag(t.Name.Local):
				xp.push("/" + t.Name.Local)
				err := parseCommonProp(dec, t, xp, &props)
				xp.pop()
				if err != nil {
					return props, nil, err
				}
			case t.Name.Local == "field":
				xp.push("/field")
				id, _ := attrValue(t.Attr, "id")
				if err := validateAttrs(t.Attr, xp, "id"); err != nil {
					xp.pop()
					return props, nil, err
				}
				prop, ok := entry.PropertyByFieldID(kind, id)
				if !ok {
					xp.pop()
					allowed := strings.Join(entry.FieldIDsFor(kind), ", ")
					return props, nil, storeerr.E(op, storeerr.UnknownFieldId, storeerr.Path(xp.String()),
						fmt.Errorf("'%s', expected one of %s", id, allowed))
				}
				text, err := readText(dec, xp)
				xp.pop()
				if err != nil {
					return props, nil, err
				}
				values[prop.CLIName] = text
			default:
				return props, nil, storeerr.E(op, storeerr.UnknownAccountElement,
					storeerr.Path(xp.String()+"/"+t.Name.Local))
			}
		case xml.EndElement:
			return props, values, nil
		}
	}
}

func applyCommon(n *entry.Node, props commonProps) {
	n.SetDescription(props.description)
	n.SetUpdated(props.updated)
	n.SetNotes(props.notes)
}

// parseEntry parses a single <entry> element, having already consumed
// its StartElement (but xp already includes its own "/entry[i]" part).
func parseEntry(dec *xml.Decoder, start xml.StartElement, xp *xpath) (*entry.Node, error) {
	const op = "rvlxml.Unmarshal"
	if err := validateAttrs(start.Attr, xp, "type"); err != nil {
		return nil, err
	}
	typ, _ := attrValue(start.Attr, "type")
	kind, ok := entry.KindByXMLType(typ)
	if !ok {
		return nil, storeerr.E(op, storeerr.InvalidValue, storeerr.Path(xp.String()+"/@type"),
			fmt.Errorf("'%s' is not a recognized entry type", typ))
	}

	if kind == entry.KindFolder {
		props, children, err := parseFolderBody(dec, xp)
		if err != nil {
			return nil, err
		}
		if props.name == nil {
			return nil, storeerr.E(op, storeerr.MissingName, storeerr.Path(xp.String()))
		}
		n := entry.NewFolder(*props.name)
		applyCommon(n, props)
		entry.AttachChildrenSorted(n, children)
		return n, nil
	}

	props, values, err := parseAccountBody(dec, xp, kind)
	if err != nil {
		return nil, err
	}
	if props.name == nil {
		return nil, storeerr.E(op, storeerr.MissingName, storeerr.Path(xp.String()))
	}
	n, err := entry.NewAccount(kind, *props.name)
	if err != nil {
		return nil, err
	}
	applyCommon(n, props)
	for cliName, v := range values {
		_ = n.SetProperty(cliName, v)
	}
	return n, nil
}

func escapeText(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func indent(depth int) string {
	return strings.Repeat("\t", depth)
}

// writeLeaf appends a one-line "<tag>value</tag>" element at depth,
// with value XML-escaped.
func writeLeaf(b *strings.Builder, depth int, tag, value string) {
	b.WriteString(indent(depth))
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	b.WriteString(escapeText(value))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
}

// writeCommon appends name/description/updated/notes child elements
// for n, in that fixed order, skipping unset optional properties.
func writeCommon(b *strings.Builder, n *entry.Node, depth int) {
	writeLeaf(b, depth, "name", n.Name())
	if d, ok := n.Description(); ok {
		writeLeaf(b, depth, "description", d)
	}
	if u, ok := n.Updated(); ok {
		writeLeaf(b, depth, "updated", strconv.FormatInt(u.Unix(), 10))
	}
	if nt, ok := n.Notes(); ok {
		writeLeaf(b, depth, "notes", nt)
	}
}

// writeEntry appends n, one element per line, TAB-indented by depth.
func writeEntry(b *strings.Builder, n *entry.Node, depth int) {
	b.WriteString(indent(depth))
	b.WriteString(fmt.Sprintf("<entry type=\"%s\">\n", n.Kind().XMLType()))

	writeCommon(b, n, depth+1)

	if n.Kind() == entry.KindFolder {
		for _, c := range n.Children() {
			writeEntry(b, c, depth+1)
		}
	} else {
		for _, prop := range n.Kind().Properties() {
			v, ok := n.Property(prop.CLIName)
			if !ok || v == "" {
				continue
			}
			b.WriteString(indent(depth + 1))
			b.WriteString(fmt.Sprintf("<field id=\"%s\">", prop.FieldID))
			b.WriteString(escapeText(v))
			b.WriteString("</field>\n")
		}
	}

	b.WriteString(indent(depth))
	b.WriteString("</entry>\n")
}

// Marshal renders root's children (root itself is never written) as a
// <revelationdata> document, TAB-indented with one element per line.
// An empty tree produces a self-closing root element, mirroring
// original_source/storepass/storage.py's ElementTree-based writer.
func Marshal(root *entry.Node) (string, error) {
	var b strings.Builder
	b.WriteString("<?xml version='1.0' encoding='UTF-8'?>\n")

	children := root.Children()
	if len(children) == 0 {
		b.WriteString("<revelationdata dataversion=\"1\" />\n")
		return b.String(), nil
	}

	b.WriteString("<revelationdata dataversion=\"1\">\n")
	for _, c := range children {
		writeEntry(&b, c, 1)
	}
	b.WriteString("</revelationdata>\n")
	return b.String(), nil
}

// Unmarshal parses a <revelationdata> XML document into a detached
// Root node.
func Unmarshal(data []byte) (*entry.Node, error) {
	const op = "rvlxml.Unmarshal"
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root xml.StartElement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, storeerr.E(op, storeerr.InvalidRoot, fmt.Errorf("no root element"))
		}
		if err != nil {
			return nil, storeerr.E(op, storeerr.InvalidRoot, err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			root = se
			break
		}
	}

	xp := &xpath{}
	xp.push("/" + root.Name.Local)
	if root.Name.Local != "revelationdata" {
		return nil, storeerr.E(op, storeerr.InvalidRoot, storeerr.Path(xp.String()),
			fmt.Errorf("expected 'revelationdata'"))
	}
	if err := validateAttrs(root.Attr, xp, "version", "dataversion"); err != nil {
		return nil, err
	}
	dataversion, _ := attrValue(root.Attr, "dataversion")
	if dataversion != "1" {
		return nil, storeerr.E(op, storeerr.UnsupportedVersion, storeerr.Path(xp.String()+"/@dataversion"),
			fmt.Errorf("expected '1', found '%s'", dataversion))
	}

	children, err := parseEntryList(dec, xp)
	if err != nil {
		return nil, err
	}

	rootNode := entry.NewRoot()
	entry.AttachChildrenSorted(rootNode, children)
	return rootNode, nil
}
