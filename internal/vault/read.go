package vault

import (
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the "did you mean" hints attached to a not-found
// marker.
const maxSuggestions = 3

// FileContent is one resolved file within a read result. Err is set when the
// file matched but could not be read (for example, over the size ceiling).
type FileContent struct {
	Path    string
	Content string
	Err     error
}

// ReadResult is the outcome for a single requested name. Exactly one of
// Files or NotFound is meaningful; a batch never aborts on a miss.
type ReadResult struct {
	Name        string
	Files       []FileContent
	NotFound    bool
	Suggestions []string // near-miss names offered alongside a not-found marker
	Suppressed  int      // partial matches beyond MaxPartialMatches
}

// ReadFile reads a single vault-relative path under the size ceiling. It
// re-validates containment immediately before the read even when the caller
// produced rel from List; a stale or buggy producer must not widen access.
func (r *Root) ReadFile(rel string) (string, error) {
	if err := rejectNullBytes(rel); err != nil {
		return "", err
	}
	normalized := strings.ReplaceAll(rel, "\\", "/")
	if err := rejectAbsolute(normalized); err != nil {
		return "", err
	}
	// SecureJoin below would clamp ".." at the root instead of failing;
	// reject it outright so a bad producer surfaces as an error, not as a
	// silently rewritten path.
	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", NewValidationError("path escapes the vault root")
		}
	}
	// SecureJoin resolves any symlinks in rel inside the root, so the
	// containment assertion below runs on the real location.
	resolved, err := securejoin.SecureJoin(r.Path(), filepath.FromSlash(normalized))
	if err != nil {
		return "", NewValidationErrorf("cannot resolve path %q", rel)
	}
	if err := assertContainment(resolved, r.Path()); err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Name: rel}
		}
		return "", err
	}
	if info.Size() > MaxReadSize {
		return "", &TooLargeError{Path: rel, Size: info.Size(), Limit: MaxReadSize}
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadBatch resolves up to MaxReadNames requested names against the
// inventory and reads every match. Each name yields either content or a
// not-found marker; the batch is returned whole, never partially thrown
// away.
func (r *Root) ReadBatch(names []string) ([]ReadResult, error) {
	if len(names) > MaxReadNames {
		return nil, NewValidationErrorf("too many names: %d (limit %d)", len(names), MaxReadNames)
	}
	entries, err := r.List()
	if err != nil {
		return nil, err
	}
	results := make([]ReadResult, 0, len(names))
	for _, name := range names {
		results = append(results, r.resolveName(name, entries))
	}
	return results, nil
}

// resolveName looks one name up and reads whatever it matched.
func (r *Root) resolveName(name string, entries []Entry) ReadResult {
	matches, suppressed := lookup(name, entries)
	if len(matches) == 0 {
		return ReadResult{
			Name:        name,
			NotFound:    true,
			Suggestions: suggestNames(name, entries),
		}
	}
	result := ReadResult{Name: name, Suppressed: suppressed}
	for _, entry := range matches {
		content, err := r.ReadFile(entry.Path)
		result.Files = append(result.Files, FileContent{Path: entry.Path, Content: content, Err: err})
	}
	return result
}

// lookup resolves a caller-supplied name against the inventory in three
// stages: exact relative path, case-insensitive full path, then a
// case-insensitive substring match on base names only. The partial stage is
// capped at MaxPartialMatches; the second return value is how many further
// matches were suppressed.
func lookup(name string, entries []Entry) ([]Entry, int) {
	for _, entry := range entries {
		if entry.Path == name {
			return []Entry{entry}, 0
		}
	}
	var ciMatches []Entry
	for _, entry := range entries {
		if strings.EqualFold(entry.Path, name) {
			ciMatches = append(ciMatches, entry)
		}
	}
	if len(ciMatches) > 0 {
		return ciMatches, 0
	}
	needle := strings.ToLower(name)
	var partial []Entry
	suppressed := 0
	for _, entry := range entries {
		base := strings.ToLower(filepath.Base(entry.Path))
		if !strings.Contains(base, needle) {
			continue
		}
		if len(partial) < MaxPartialMatches {
			partial = append(partial, entry)
		} else {
			suppressed++
		}
	}
	return partial, suppressed
}

// suggestNames fuzzy-matches a missed name against the inventory's base
// names so the not-found marker can point at near misses.
func suggestNames(name string, entries []Entry) []string {
	paths := make([]string, len(entries))
	for i, entry := range entries {
		paths[i] = entry.Path
	}
	ranked := fuzzy.Find(name, paths)
	var suggestions []string
	for _, match := range ranked {
		suggestions = append(suggestions, match.Str)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
