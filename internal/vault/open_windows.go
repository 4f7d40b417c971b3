//go:build windows

package vault

import (
	"errors"
	"os"
)

// errSymlinkOpen marks an open refused because the target is a symlink.
var errSymlinkOpen = errors.New("target is a symbolic link")

// openNoFollow opens target for writing, refusing symlink targets. Windows
// has no O_NOFOLLOW, so this falls back to Lstat-then-open; the unix build
// is the one that closes the race in a single syscall.
func openNoFollow(target string) (*os.File, error) {
	info, err := os.Lstat(target)
	if err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errSymlinkOpen
	}
	return os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

// isSymlinkOpenError reports whether err came from openNoFollow refusing a
// symlink target.
func isSymlinkOpenError(err error) bool {
	return errors.Is(err, errSymlinkOpen)
}
