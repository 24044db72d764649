// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storepass.io/entry"
)

func TestAddressFallsBackToURL(t *testing.T) {
	n, err := entry.NewAccount(entry.KindWebsite, "E1")
	require.NoError(t, err)
	require.NoError(t, n.SetProperty("url", "https://example.com"))
	assert.Equal(t, "https://example.com", address(n))
}

func TestAddressEmptyWhenNeitherSet(t *testing.T) {
	n, err := entry.NewAccount(entry.KindGeneric, "E1")
	require.NoError(t, err)
	assert.Equal(t, "", address(n))
}

func TestRenderListOutline(t *testing.T) {
	root := entry.NewRoot()
	f := entry.NewFolder("Work")
	require.NoError(t, entry.Add(root, f))
	g, err := entry.NewAccount(entry.KindGeneric, "Mail")
	require.NoError(t, err)
	require.NoError(t, g.SetProperty("hostname", "mail.example.com"))
	require.NoError(t, entry.Add(f, g))

	var buf bytes.Buffer
	renderList(&buf, root)
	assert.Equal(t, "+ Work\n  - Mail [mail.example.com]\n", buf.String())
}

func TestRenderShowDetail(t *testing.T) {
	n, err := entry.NewAccount(entry.KindWebsite, "Bank")
	require.NoError(t, err)
	require.NoError(t, n.SetProperty("url", "https://bank.example.com"))
	require.NoError(t, entry.Add(entry.NewRoot(), n))

	var buf bytes.Buffer
	renderShow(&buf, n)
	assert.Contains(t, buf.String(), "+ Bank (Website)")
	assert.Contains(t, buf.String(), "- URL: https://bank.example.com")
}
