package storage

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
    t.Helper()
    s, err := New(filepath.Join(t.TempDir(), "uploads"))
    require.NoError(t, err)
    return s
}

func TestNew_CreatesRoot(t *testing.T) {
    root := filepath.Join(t.TempDir(), "a", "b", "uploads")
    s, err := New(root)
    require.NoError(t, err)

    info, err := os.Stat(s.Root())
    require.NoError(t, err)
    assert.True(t, info.IsDir())

    // Idempotent on an existing directory.
    again, err := New(root)
    require.NoError(t, err)
    assert.Equal(t, s.Root(), again.Root())
}

func TestIsPathSafe(t *testing.T) {
    s := newStore(t)

    assert.True(t, s.IsPathSafe(s.Root()), "root itself is safe")
    assert.True(t, s.IsPathSafe(filepath.Join(s.Root(), "x")), "direct child is safe")
    assert.True(t, s.IsPathSafe(filepath.Join(s.Root(), "sub", "x.pdf")), "nested child is safe")

    assert.False(t, s.IsPathSafe(filepath.Join(s.Root(), "..", "etc", "passwd")),
        "dot-dot traversal must not pass")
    assert.False(t, s.IsPathSafe("/etc/passwd"), "absolute path outside root must not pass")
    assert.False(t, s.IsPathSafe(filepath.Dir(s.Root())), "parent of root must not pass")

    // A sibling directory sharing the root as name prefix is outside.
    assert.False(t, s.IsPathSafe(s.Root()+"2"))
}

func TestIsPathSafe_SymlinkEscape(t *testing.T) {
    s := newStore(t)

    outside := t.TempDir()
    link := filepath.Join(s.Root(), "link")
    require.NoError(t, os.Symlink(outside, link))

    assert.False(t, s.IsPathSafe(filepath.Join(link, "x")),
        "a symlink pointing outside the root must fail containment")
}

func TestSaveReadRoundtrip(t *testing.T) {
    s := newStore(t)

    path, err := s.Save([]byte("%PDF-1.7 stub"), "abc123.pdf")
    require.NoError(t, err)
    assert.True(t, s.IsPathSafe(path))

    data, err := s.Read(path)
    require.NoError(t, err)
    assert.Equal(t, []byte("%PDF-1.7 stub"), data)
}

func TestSave_RejectsEscapingFilename(t *testing.T) {
    s := newStore(t)
    _, err := s.Save([]byte("x"), filepath.Join("..", "escape.pdf"))
    assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestRead_AbsentIsNotAnError(t *testing.T) {
    s := newStore(t)
    data, err := s.Read(filepath.Join(s.Root(), "missing.pdf"))
    assert.NoError(t, err)
    assert.Nil(t, data)
}

func TestRead_UnsafePath(t *testing.T) {
    s := newStore(t)
    _, err := s.Read("/etc/passwd")
    assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestDelete(t *testing.T) {
    s := newStore(t)

    path, err := s.Save([]byte("x"), "doomed.pdf")
    require.NoError(t, err)

    require.NoError(t, s.Delete(path))
    _, statErr := os.Stat(path)
    assert.True(t, os.IsNotExist(statErr))

    // Deleting an already-absent file is a no-op.
    assert.NoError(t, s.Delete(path))

    assert.ErrorIs(t, s.Delete(filepath.Join(s.Root(), "..", "x")), ErrInvalidPath)
}
