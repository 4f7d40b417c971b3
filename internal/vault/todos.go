package vault

import (
	"path/filepath"
	"strings"
)

// todoMarker is the literal unchecked-checkbox prefix the scanner looks for.
// Checked items ("- [x]") do not match.
const todoMarker = "- [ ]"

// Todo is one unchecked checklist line, tagged with the file it came from.
// It exists only transiently in a response.
type Todo struct {
	Path string
	Line string
}

// ScanTodos extracts every unchecked checkbox line from the vault's markdown
// files. It operates only over files the enumerator already filtered, so
// symlink and dot exclusions are inherited; containment is still re-checked
// per file before reading. Files over the read ceiling are skipped silently.
// Output order is enumeration order (most recently modified file first),
// then line order within a file.
func (r *Root) ScanTodos() ([]Todo, error) {
	entries, err := r.List()
	if err != nil {
		return nil, err
	}
	var todos []Todo
	for _, entry := range entries {
		if !strings.EqualFold(filepath.Ext(entry.Path), todoExtension) {
			continue
		}
		content, err := r.ReadFile(entry.Path)
		if err != nil {
			if IsTooLargeError(err) || IsNotFoundError(err) {
				continue
			}
			return nil, err
		}
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimRight(line, "\r")
			if isOpenTodo(line) {
				todos = append(todos, Todo{Path: entry.Path, Line: line})
			}
		}
	}
	return todos, nil
}

// isOpenTodo reports whether a line is an unchecked checklist item.
func isOpenTodo(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), todoMarker)
}
