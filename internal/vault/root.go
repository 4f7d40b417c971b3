// Package vault confines all filesystem access issued by an untrusted caller
// to a single root directory.
//
// Every operation runs the same discipline: structural validation of the
// caller-supplied relative path, lexical containment against the canonical
// root, and symlink checks at the syscall level for writes. Containment is
// deliberately re-checked at multiple layers; each check site hedges against
// a different upstream producer being wrong.
package vault

import (
	"os"
	"path/filepath"
)

// Root is the canonical, symlink-resolved vault root. It is established once
// at process start and never mutated; all later path math is relative to it.
type Root struct {
	path string
}

// ResolveRoot canonicalizes raw into a vault root. It fails if raw is empty,
// does not exist, or is not a directory. The returned root has all symlinks
// resolved so later prefix comparisons operate on the true filesystem
// location rather than an alias.
func ResolveRoot(raw string) (*Root, error) {
	if raw == "" {
		return nil, NewConfigErrorf("vault root is not set")
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return nil, NewConfigErrorf("cannot resolve vault root %q: %v", raw, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, NewConfigErrorf("vault root %q does not exist", raw)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, NewConfigErrorf("cannot stat vault root %q: %v", raw, err)
	}
	if !info.IsDir() {
		return nil, NewConfigErrorf("vault root %q is not a directory", raw)
	}
	return &Root{path: resolved}, nil
}

// Path returns the canonical root directory. It panics if the root was never
// initialized through ResolveRoot; there is deliberately no way to reach the
// filesystem through a zero-value Root.
func (r *Root) Path() string {
	if r == nil || r.path == "" {
		panic("vault: root accessed before initialization")
	}
	return r.path
}
