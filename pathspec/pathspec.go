// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pathspec parses and prints the slash-separated,
// backslash-escaped entry paths used to address nodes in a storepass
// tree, such as "Work/Email accounts/Company mail".
package pathspec

import (
	"strings"

	"storepass.io/storeerr"
)

// state is the decoder state machine used by Decode.
type state int

const (
	stateNormal state = iota
	stateEscape
)

// Decode splits a path string into its raw elements. '/' separates
// elements; '\' escapes the following byte. Only "\\" and "\/" are
// recognized escape sequences — any other character following '\'
// is rejected, matching the reference implementation's test suite
// (see original_source/storepass/model.py, path_string_to_spec).
//
// Decode does not validate that elements are non-empty; that rule
// belongs to the tree model, not the path grammar. An empty input
// string decodes to a single empty element: [""].
func Decode(path string) ([]string, error) {
	const op = "pathspec.Decode"

	var elems []string
	var cur strings.Builder
	st := stateNormal

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch st {
		case stateNormal:
			switch c {
			case '/':
				elems = append(elems, cur.String())
				cur.Reset()
			case '\\':
				st = stateEscape
			default:
				cur.WriteByte(c)
			}
		case stateEscape:
			switch c {
			case '\\', '/':
				cur.WriteByte(c)
				st = stateNormal
			default:
				return nil, storeerr.E(op, storeerr.InvalidEscape,
					storeerr.Path("\\"+string(c)))
			}
		}
	}
	if st == stateEscape {
		return nil, storeerr.E(op, storeerr.IncompleteEscape, storeerr.Path(path))
	}
	elems = append(elems, cur.String())
	return elems, nil
}

// Encode is the inverse of Decode: it joins path elements with '/',
// escaping '\' and '/' within each element.
func Encode(elems []string) string {
	encoded := make([]string, len(elems))
	for i, e := range elems {
		encoded[i] = encodeElement(e)
	}
	return strings.Join(encoded, "/")
}

func encodeElement(elem string) string {
	var b strings.Builder
	for i := 0; i < len(elem); i++ {
		switch elem[i] {
		case '\\':
			b.WriteString(`\\`)
		case '/':
			b.WriteString(`\/`)
		default:
			b.WriteByte(elem[i])
		}
	}
	return b.String()
}
