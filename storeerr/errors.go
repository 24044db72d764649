// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storeerr defines the error handling used across storepass.
// It follows the shape of upspin.io/errors: a single Error type built
// from typed constructor arguments, so call sites read like a short
// sentence instead of a wall of fmt.Errorf plumbing.
package storeerr

import (
	"bytes"
	"fmt"
)

// Kind classifies an Error into one of the four taxonomies of the
// storepass core: path parsing, the in-memory model, reading the
// encrypted database and writing it.
type Kind uint8

const (
	Other Kind = iota

	// PathError reasons.
	IncompleteEscape
	InvalidEscape

	// ModelError reasons.
	EmptyName
	NotFound
	NotAContainer
	Duplicate
	CyclicMove
	NonEmptyContainer
	NonEmptyContainerReplace

	// StorageReadError reasons (envelope).
	HeaderIncomplete
	SaltIncomplete
	IVIncomplete
	Misaligned
	InvalidMagic
	UnsupportedEnvelopeVersion
	NonZeroPadding
	BadPaddingLength
	BadPaddingBytes
	EmptyCompressed
	WrongPassword
	DecompressError
	Utf8Error

	// StorageReadError reasons (XML).
	InvalidRoot
	UnsupportedVersion
	UnknownAttribute
	MissingName
	InvalidValue
	UnknownFieldId
	UnknownFolderElement
	UnknownAccountElement

	// StorageWriteError reasons.
	AlreadyExists
	IoError
	CompressError
)

var kindText = map[Kind]string{
	Other:                      "error",
	IncompleteEscape:           "incomplete escape sequence",
	InvalidEscape:              "invalid escape sequence",
	EmptyName:                  "empty name",
	NotFound:                   "entry not found",
	NotAContainer:              "not a container",
	Duplicate:                  "duplicate entry",
	CyclicMove:                 "cyclic move",
	NonEmptyContainer:          "container is not empty",
	NonEmptyContainerReplace:   "cannot replace non-empty container",
	HeaderIncomplete:           "file header is incomplete",
	SaltIncomplete:             "salt record is incomplete",
	IVIncomplete:               "initialization vector is incomplete",
	Misaligned:                 "data record is not 16-byte aligned",
	InvalidMagic:               "invalid magic number",
	UnsupportedEnvelopeVersion: "unsupported envelope data version",
	NonZeroPadding:             "non-zero header padding",
	BadPaddingLength:           "incorrect padding length",
	BadPaddingBytes:            "incorrect padding bytes",
	EmptyCompressed:            "compressed data has zero size",
	WrongPassword:              "incorrect password",
	DecompressError:            "decompression failed",
	Utf8Error:                  "invalid UTF-8 payload",
	InvalidRoot:                "invalid root element",
	UnsupportedVersion:         "unsupported XML data version",
	UnknownAttribute:           "unrecognized attribute",
	MissingName:                "missing name element",
	InvalidValue:               "invalid value",
	UnknownFieldId:             "unrecognized field id",
	UnknownFolderElement:       "unrecognized folder element",
	UnknownAccountElement:      "unrecognized account element",
	AlreadyExists:              "file already exists",
	IoError:                    "I/O error",
	CompressError:              "compression failed",
}

func (k Kind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return "unknown error kind"
}

// Error is the type returned by every storepass operation that can fail.
type Error struct {
	// Op is the operation being performed, usually "package.Func".
	Op string
	// Kind classifies the failure; see the Kind constants above.
	Kind Kind
	// Path is the entry path or file path the error concerns, if any.
	Path string
	// Err is the underlying error that triggered this one, if any.
	Err error
}

var _ error = (*Error)(nil)

// E builds an *Error from its arguments. The type of each argument
// determines its meaning; at most one of each type may be given (the
// last one wins):
//
//	string      the operation name
//	Kind        the error classification
//	error       the wrapped underlying error
//
// A string meant as a path is passed wrapped by Path, so that it is not
// taken for the operation name.
func E(args ...interface{}) error {
	if len(args) == 0 {
		return nil
	}
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case string:
			e.Op = a
		case Kind:
			e.Kind = a
		case error:
			e.Err = a
		case pathArg:
			e.Path = string(a)
		default:
			panic(fmt.Sprintf("storeerr.E: bad call, unknown type %T, value %v", arg, arg))
		}
	}
	return e
}

// pathArg lets callers pass a path without it being confused with the
// Op string argument: storeerr.E(op, kind, storeerr.Path(p)).
type pathArg string

// Path wraps a path string for use as a storeerr.E argument.
func Path(p string) interface{} { return pathArg(p) }

func pad(b *bytes.Buffer, s string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(s)
}

func (e *Error) Error() string {
	b := new(bytes.Buffer)
	if e.Op != "" {
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		pad(b, ": ")
		b.WriteString(e.Path)
	}
	if e.Kind != Other {
		pad(b, ": ")
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		if _, ok := e.Err.(*Error); ok {
			pad(b, ":\n\t")
		} else {
			pad(b, ": ")
		}
		b.WriteString(e.Err.Error())
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether err is a *Error of the given Kind.
func Is(kind Kind, err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}
