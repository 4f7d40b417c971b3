//go:build unix

package vault

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// openNoFollow opens target for writing in a single syscall that fails if
// the final path component is a symbolic link. There is no separate
// check-then-open step, so another process cannot swap a symlink in between.
func openNoFollow(target string) (*os.File, error) {
	return os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|unix.O_NOFOLLOW, 0o644)
}

// isSymlinkOpenError reports whether err is the kernel refusing an
// O_NOFOLLOW open because the target is a symlink. Linux and macOS return
// ELOOP; FreeBSD uses EMLINK.
func isSymlinkOpenError(err error) bool {
	return errors.Is(err, unix.ELOOP) || errors.Is(err, unix.EMLINK)
}
