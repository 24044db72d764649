// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storepass.io/entry"
	"storepass.io/storage"
	"storepass.io/storeerr"
)

func constantProvider(pw string) storage.PasswordProvider {
	return func() (string, error) { return pw, nil }
}

func TestAddLookupRemove(t *testing.T) {
	m := New()
	f, err := m.AddEntry("Work", entry.KindFolder)
	require.NoError(t, err)
	assert.Equal(t, "Work", f.Name())

	g, err := m.AddEntry("Work/Mail", entry.KindGeneric)
	require.NoError(t, err)
	require.NoError(t, g.SetProperty("hostname", "mail.example.com"))

	got, err := m.Lookup("Work/Mail")
	require.NoError(t, err)
	assert.Same(t, g, got)

	require.NoError(t, m.RemoveEntry("Work/Mail"))
	_, err = m.Lookup("Work/Mail")
	require.Error(t, err)
}

func TestAddEmptyLeafName(t *testing.T) {
	m := New()
	_, err := m.AddEntry("", entry.KindFolder)
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.EmptyName, err))
}

func TestMoveEntry(t *testing.T) {
	m := New()
	_, err := m.AddEntry("F1", entry.KindFolder)
	require.NoError(t, err)
	_, err = m.AddEntry("F2", entry.KindFolder)
	require.NoError(t, err)
	_, err = m.AddEntry("F1/g", entry.KindGeneric)
	require.NoError(t, err)

	require.NoError(t, m.MoveEntry("F1/g", "F2"))
	_, err = m.Lookup("F2/g")
	require.NoError(t, err)
	_, err = m.Lookup("F1/g")
	require.Error(t, err)
}

func TestReplaceEntry(t *testing.T) {
	m := New()
	_, err := m.AddEntry("E1", entry.KindGeneric)
	require.NoError(t, err)

	website, err := entry.NewAccount(entry.KindWebsite, "E1")
	require.NoError(t, err)
	require.NoError(t, m.ReplaceEntry("E1", website))

	got, err := m.Lookup("E1")
	require.NoError(t, err)
	assert.Equal(t, entry.KindWebsite, got.Kind())
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.rvl")

	m := New()
	_, err := m.AddEntry("E1", entry.KindGeneric)
	require.NoError(t, err)

	s := storage.New(path, constantProvider("pw"))
	require.NoError(t, m.Save(s, true))

	m2 := New()
	s2 := storage.New(path, constantProvider("pw"))
	require.NoError(t, m2.Load(s2))
	_, err = m2.Lookup("E1")
	require.NoError(t, err)
}

func TestVisitAll(t *testing.T) {
	m := New()
	_, err := m.AddEntry("F1", entry.KindFolder)
	require.NoError(t, err)
	_, err = m.AddEntry("F1/g", entry.KindGeneric)
	require.NoError(t, err)

	v := &countingVisitor{}
	m.VisitAll(v)
	assert.Equal(t, 3, v.count) // root, F1, g
}

type countingVisitor struct{ count int }

func (v *countingVisitor) bump(*entry.Node) interface{} { v.count++; return nil }

func (v *countingVisitor) OnRoot(n *entry.Node) interface{}          { return v.bump(n) }
func (v *countingVisitor) OnFolder(n *entry.Node) interface{}        { return v.bump(n) }
func (v *countingVisitor) OnCreditCard(n *entry.Node) interface{}    { return v.bump(n) }
func (v *countingVisitor) OnCryptoKey(n *entry.Node) interface{}     { return v.bump(n) }
func (v *countingVisitor) OnDatabase(n *entry.Node) interface{}      { return v.bump(n) }
func (v *countingVisitor) OnDoor(n *entry.Node) interface{}          { return v.bump(n) }
func (v *countingVisitor) OnEmail(n *entry.Node) interface{}         { return v.bump(n) }
func (v *countingVisitor) OnFTP(n *entry.Node) interface{}           { return v.bump(n) }
func (v *countingVisitor) OnGeneric(n *entry.Node) interface{}       { return v.bump(n) }
func (v *countingVisitor) OnPhone(n *entry.Node) interface{}         { return v.bump(n) }
func (v *countingVisitor) OnRemoteDesktop(n *entry.Node) interface{} { return v.bump(n) }
func (v *countingVisitor) OnShell(n *entry.Node) interface{}         { return v.bump(n) }
func (v *countingVisitor) OnVNC(n *entry.Node) interface{}           { return v.bump(n) }
func (v *countingVisitor) OnWebsite(n *entry.Node) interface{}       { return v.bump(n) }
func (v *countingVisitor) EnterContainer(*entry.Node, interface{})   {}
func (v *countingVisitor) LeaveContainer()                          {}
