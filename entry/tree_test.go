package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storepass.io/storeerr"
)

func buildSmallTree(t *testing.T) (root, f1, f2 *Node) {
	root = NewRoot()
	f1 = NewFolder("F1")
	require.NoError(t, Add(root, f1))
	f2 = NewFolder("F2")
	require.NoError(t, Add(f1, f2))
	return
}

func TestAddSortsByName(t *testing.T) {
	root := NewRoot()
	require.NoError(t, Add(root, NewFolder("banana")))
	require.NoError(t, Add(root, NewFolder("apple")))
	require.NoError(t, Add(root, NewFolder("cherry")))

	names := []string{}
	for _, c := range root.Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"apple", "banana", "cherry"}, names)
}

func TestAddEmptyName(t *testing.T) {
	root := NewRoot()
	err := Add(root, NewFolder(""))
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.EmptyName, err))
}

func TestAddDuplicate(t *testing.T) {
	root := NewRoot()
	require.NoError(t, Add(root, NewFolder("dup")))
	err := Add(root, NewFolder("dup"))
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	root, _, f2 := buildSmallTree(t)
	g, err := NewAccount(KindGeneric, "g1")
	require.NoError(t, err)
	require.NoError(t, Add(f2, g))

	got, err := Lookup(root, []string{"F1", "F2", "g1"})
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = Lookup(root, []string{"F1", "nope"})
	require.Error(t, err)

	_, err = Lookup(root, []string{"F1", "F2", "g1", "x"})
	require.Error(t, err) // g1 is not a container
}

func TestMoveCyclic(t *testing.T) {
	root, f1, f2 := buildSmallTree(t)
	_ = root
	err := Move(f1, f2)
	require.Error(t, err)
}

func TestMoveSuccess(t *testing.T) {
	root := NewRoot()
	f1 := NewFolder("F1")
	f2 := NewFolder("F2")
	require.NoError(t, Add(root, f1))
	require.NoError(t, Add(root, f2))
	g, err := NewAccount(KindGeneric, "g1")
	require.NoError(t, err)
	require.NoError(t, Add(f1, g))

	require.NoError(t, Move(g, f2))
	assert.Same(t, f2, g.Parent())
	assert.Empty(t, f1.Children())
	assert.Len(t, f2.Children(), 1)
}

func TestMoveDuplicate(t *testing.T) {
	root := NewRoot()
	f1 := NewFolder("F1")
	f2 := NewFolder("F2")
	require.NoError(t, Add(root, f1))
	require.NoError(t, Add(root, f2))
	require.NoError(t, Add(f1, NewFolder("same")))
	moving := NewFolder("same")
	require.NoError(t, Add(f2, moving))

	err := Move(moving, f1)
	require.Error(t, err)
}

func TestRemoveNonEmptyContainer(t *testing.T) {
	root, f1, _ := buildSmallTree(t)
	err := Remove(f1)
	require.Error(t, err)
	assert.Len(t, root.Children(), 1)
}

func TestRemoveLeaf(t *testing.T) {
	root, _, f2 := buildSmallTree(t)
	require.NoError(t, Remove(f2))
	f1 := root.Children()[0]
	assert.Empty(t, f1.Children())
}

func TestReplaceTypeChange(t *testing.T) {
	root := NewRoot()
	g, _ := NewAccount(KindGeneric, "E1")
	require.NoError(t, g.SetProperty("hostname", "H"))
	require.NoError(t, g.SetProperty("username", "U"))
	require.NoError(t, g.SetProperty("password", "P"))
	require.NoError(t, Add(root, g))

	w, _ := NewAccount(KindWebsite, "E1")
	require.NoError(t, w.SetProperty("url", "X"))
	require.NoError(t, w.SetProperty("username", "U2"))
	if v, ok := g.Property("password"); ok {
		require.NoError(t, w.SetProperty("password", v))
	}

	require.NoError(t, Replace(g, w))
	got, err := Lookup(root, []string{"E1"})
	require.NoError(t, err)
	assert.Same(t, w, got)
	url, _ := w.Property("url")
	assert.Equal(t, "X", url)
	pass, _ := w.Property("password")
	assert.Equal(t, "P", pass)
	_, hasHostname := w.Property("hostname")
	assert.False(t, hasHostname)
}

func TestReplaceNonEmptyFolderWithLeaf(t *testing.T) {
	_, f1, _ := buildSmallTree(t)
	g, _ := NewAccount(KindGeneric, "F1")
	err := Replace(f1, g)
	require.Error(t, err)
}

func TestReplaceFolderKeepsChildren(t *testing.T) {
	root, f1, f2 := buildSmallTree(t)
	newFolder := NewFolder("F1")
	require.NoError(t, Replace(f1, newFolder))
	got, err := Lookup(root, []string{"F1", "F2"})
	require.NoError(t, err)
	assert.Same(t, f2, got)
	assert.Same(t, newFolder, f2.Parent())
}
