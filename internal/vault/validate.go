package vault

import (
	"path/filepath"
	"strings"
)

// ValidateWritePath runs the full validation pipeline over a caller-supplied
// relative path and returns the resolved absolute write target. Checks run in
// a fixed order, cheap structural checks first; later checks assume earlier
// ones passed.
func (r *Root) ValidateWritePath(rel string) (string, error) {
	if err := rejectNullBytes(rel); err != nil {
		return "", err
	}
	// Normalize backslashes before any segment checks so traversal patterns
	// like "..\" are caught on every platform.
	normalized := strings.ReplaceAll(rel, "\\", "/")
	if err := rejectAbsolute(normalized); err != nil {
		return "", err
	}
	if err := rejectDotSegments(normalized); err != nil {
		return "", err
	}
	if err := rejectDisallowedExtension(normalized); err != nil {
		return "", err
	}
	if err := enforcePathLimits(rel, normalized); err != nil {
		return "", err
	}
	resolved := filepath.Join(r.Path(), filepath.FromSlash(normalized))
	if err := assertContainment(resolved, r.Path()); err != nil {
		return "", err
	}
	return resolved, nil
}

// rejectNullBytes fails if the path contains a NUL character. A NUL can make
// the validated string and the OS-level interpretation diverge.
func rejectNullBytes(path string) error {
	if strings.ContainsRune(path, 0) {
		return NewValidationError("path contains a null byte")
	}
	return nil
}

// rejectAbsolute fails on absolute paths and Windows drive prefixes; only
// vault-relative paths are accepted.
func rejectAbsolute(path string) error {
	if strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return NewValidationError("path must be relative to the vault root")
	}
	if len(path) >= 2 && path[1] == ':' {
		return NewValidationError("path must be relative to the vault root")
	}
	return nil
}

// rejectDotSegments fails if any /-delimited segment starts with a dot. This
// one rule closes two attack classes at once: ".." traversal and hidden or
// auto-loaded paths such as ".git", ".obsidian", or ".secret". It also
// forbids legitimate dot-named notes; that over-restriction is intentional
// and must not be relaxed into an allowlist of dangerous names.
func rejectDotSegments(path string) error {
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, ".") {
			return NewValidationErrorf("path segment %q starts with a dot", segment)
		}
	}
	return nil
}

// rejectDisallowedExtension fails unless the final extension is in the write
// allowlist. No extension at all is also a failure.
func rejectDisallowedExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return NewValidationError("path has no file extension")
	}
	if !writeExtensions[ext] {
		return NewValidationErrorf("file extension %q is not allowed", ext)
	}
	return nil
}

// enforcePathLimits bounds the raw string length and the segment depth.
func enforcePathLimits(raw, normalized string) error {
	if len(raw) > MaxPathLength {
		return NewValidationErrorf("path exceeds %d characters", MaxPathLength)
	}
	segments := strings.Split(strings.Trim(normalized, "/"), "/")
	if len(segments) > MaxPathDepth {
		return NewValidationErrorf("path exceeds %d segments", MaxPathDepth)
	}
	return nil
}

// assertContainment fails unless resolved is a strict descendant of root.
// Equality with the root itself is rejected, not merely tolerated.
func assertContainment(resolved, root string) error {
	if !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return NewValidationError("path escapes the vault root")
	}
	return nil
}
