// Package storage confines all uploaded-file I/O to a single root
// directory.  Every operation that takes a path re-validates that the
// path resolves inside the root before touching the filesystem; stored
// paths come from database metadata and are never trusted.
package storage

import (
    "errors"
    "os"
    "path/filepath"
    "strings"
)

// ErrInvalidPath is returned when a path fails the containment check.
// Handlers must treat it as an integrity fault, not as user input.
var ErrInvalidPath = errors.New("invalid file path")

// Store is a file store rooted at a single directory.
type Store struct {
    root string // absolute, symlink-resolved root directory
}

// New creates (if needed) the root directory and returns a store
// confined to it.
func New(root string) (*Store, error) {
    if err := os.MkdirAll(root, 0o755); err != nil {
        return nil, err
    }
    abs, err := filepath.Abs(root)
    if err != nil {
        return nil, err
    }
    // Resolve the root itself so a symlinked uploads directory still
    // compares correctly against canonicalized candidates.
    resolved, err := filepath.EvalSymlinks(abs)
    if err != nil {
        return nil, err
    }
    return &Store{root: resolved}, nil
}

// Root returns the absolute root directory of the store.
func (s *Store) Root() string {
    return s.root
}

// IsPathSafe reports whether the canonicalized path is the store root
// or a descendant of it.  Relative segments and symlinked parents are
// resolved before the comparison, so neither `..` nor a link pointing
// outside the root can pass.
func (s *Store) IsPathSafe(path string) bool {
    canon, err := s.canonical(path)
    if err != nil {
        return false
    }
    return canon == s.root || strings.HasPrefix(canon, s.root+string(filepath.Separator))
}

// Save writes data under the root using the given filename and returns
// the resulting path.  The caller supplies a collision-resistant name;
// the store neither deduplicates nor versions.
func (s *Store) Save(data []byte, filename string) (string, error) {
    path := filepath.Join(s.root, filename)
    if !s.IsPathSafe(path) {
        return "", ErrInvalidPath
    }
    if err := os.WriteFile(path, data, 0o644); err != nil {
        return "", err
    }
    return path, nil
}

// Read returns the bytes at path.  An unsafe path fails with
// ErrInvalidPath.  A safe path with no file returns (nil, nil): a
// metadata row pointing at missing bytes is an expected condition, not
// an error.
func (s *Store) Read(path string) ([]byte, error) {
    if !s.IsPathSafe(path) {
        return nil, ErrInvalidPath
    }
    data, err := os.ReadFile(path)
    if err != nil {
        if os.IsNotExist(err) {
            return nil, nil
        }
        return nil, err
    }
    return data, nil
}

// Delete removes the file at path.  An unsafe path fails with
// ErrInvalidPath; a safe path with no file is a no-op.
func (s *Store) Delete(path string) error {
    if !s.IsPathSafe(path) {
        return ErrInvalidPath
    }
    if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
        return err
    }
    return nil
}

// canonical makes path absolute, cleans `..` segments and resolves
// symlinks through the deepest existing ancestor.  Components that do
// not exist yet (e.g. the target of a pending Save) are re-appended
// unresolved.
func (s *Store) canonical(path string) (string, error) {
    abs, err := filepath.Abs(path)
    if err != nil {
        return "", err
    }
    abs = filepath.Clean(abs)

    rest := ""
    for dir := abs; ; {
        resolved, err := filepath.EvalSymlinks(dir)
        if err == nil {
            return filepath.Join(resolved, rest), nil
        }
        if !os.IsNotExist(err) {
            return "", err
        }
        rest = filepath.Join(filepath.Base(dir), rest)
        parent := filepath.Dir(dir)
        if parent == dir {
            return abs, nil
        }
        dir = parent
    }
}
