package vault

import (
	"os"
	"path/filepath"
	"strings"
)

// WriteResult reports the outcome of a successful write.
type WriteResult struct {
	Path    string // relative, forward-slash
	Created bool   // false when an existing file was replaced
	Bytes   int
}

// Write validates rel, guards the target against symlink escapes, and writes
// content. Order matters: the size and structural checks run before any
// filesystem call, intermediate directories are created before the ancestor
// symlink walk (so new directories are covered by it), and the terminal open
// is a single no-follow syscall rather than check-then-write.
func (r *Root) Write(rel string, content []byte) (*WriteResult, error) {
	if len(content) > MaxWriteSize {
		return nil, NewValidationErrorf("content is %d bytes (limit %d)", len(content), MaxWriteSize)
	}
	target, err := r.ValidateWritePath(rel)
	if err != nil {
		return nil, err
	}

	// Create-vs-update is phrased from the inventory, not from a stat on the
	// target: the enumerator is the single source of truth for what exists.
	cleanRel := relPath(target, r.Path())
	existed, err := r.inInventory(cleanRel)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, err
	}
	if err := assertNoSymlinkAncestors(target, r.Path()); err != nil {
		return nil, err
	}

	f, err := openNoFollow(target)
	if err != nil {
		if isSymlinkOpenError(err) {
			return nil, &SymlinkTargetError{Path: cleanRel}
		}
		return nil, err
	}
	_, writeErr := f.Write(content)
	closeErr := f.Close()
	if writeErr != nil {
		return nil, writeErr
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return &WriteResult{Path: cleanRel, Created: !existed, Bytes: len(content)}, nil
}

// inInventory reports whether rel is already listed by the enumerator.
func (r *Root) inInventory(rel string) (bool, error) {
	entries, err := r.List()
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.Path == rel {
			return true, nil
		}
	}
	return false, nil
}

// relPath converts an absolute target under root back to the forward-slash
// relative form used in responses and the inventory.
func relPath(target, root string) string {
	rel := strings.TrimPrefix(target, root+string(filepath.Separator))
	return filepath.ToSlash(rel)
}
