package vault

import (
	"os"
	"path/filepath"
	"strings"
)

// assertNoSymlinkAncestors walks from the parent of target up to the vault
// root and fails if any existing directory on the chain is a symbolic link.
// It must run after missing intermediate directories have been created, so
// freshly created directories are covered rather than skipped for being
// absent at check time.
//
// The no-follow open only polices the final path component; this walk closes
// the second escape vector, an intermediate directory that is itself a link.
func assertNoSymlinkAncestors(target, root string) error {
	dir := filepath.Dir(target)
	for dir != root {
		// Lexical containment was already asserted; this guard only stops
		// the loop if the chain somehow leaves the root.
		if !strings.HasPrefix(dir, root+string(filepath.Separator)) {
			break
		}
		info, err := os.Lstat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				dir = filepath.Dir(dir)
				continue
			}
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return &SymlinkedParentError{Path: dir}
		}
		dir = filepath.Dir(dir)
	}
	return nil
}
