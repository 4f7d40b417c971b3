package vault

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one file in the vault inventory: a forward-slash relative path
// and its modification time. Entries are recomputed on every listing and
// never persisted.
type Entry struct {
	Path    string
	ModTime time.Time
}

// List enumerates every visible file under the root. Dot-prefixed entries
// are excluded at every depth (which also prevents descending into
// dot-directories), symlinked directories are not followed, and symlinked
// files are filtered out. The result is sorted most recently modified first;
// ties keep the walk's lexicographic discovery order (stable sort).
//
// This is the shared source of truth for what exists in the vault. The write
// path consults it only to phrase created-vs-updated responses, never for
// containment decisions.
func (r *Root) List() ([]Entry, error) {
	var entries []Entry
	if err := r.collect(r.Path(), "", &entries); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}

// collect walks dir recursively, appending visible files to entries with
// prefix-joined relative paths. os.ReadDir returns names sorted, so the
// discovery order is deterministic.
func (r *Root) collect(dir, prefix string, entries *[]Entry) error {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if de.Type()&os.ModeSymlink != 0 {
			continue
		}
		rel := name
		if prefix != "" {
			rel = prefix + "/" + name
		}
		if de.IsDir() {
			if err := r.collect(filepath.Join(dir, name), rel, entries); err != nil {
				return err
			}
			continue
		}
		if !de.Type().IsRegular() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info.
			continue
		}
		*entries = append(*entries, Entry{Path: rel, ModTime: info.ModTime()})
	}
	return nil
}
