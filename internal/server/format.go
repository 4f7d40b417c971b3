package server

import (
	"fmt"
	"strings"

	"github.com/noteguard/noteguard/internal/vault"
)

// formatListing renders the inventory, one relative path per line in the
// enumerator's order (most recently modified first).
func formatListing(entries []vault.Entry) string {
	if len(entries) == 0 {
		return "The vault contains no files."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d file(s), most recently modified first:\n", len(entries))
	for _, entry := range entries {
		b.WriteString(entry.Path)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatReadResults renders a read batch: every name resolves to content
// blocks or a not-found marker, all returned together. errText is the
// error-to-text policy for per-file read failures.
func formatReadResults(results []vault.ReadResult, errText func(error) string) string {
	var blocks []string
	for _, result := range results {
		if result.NotFound {
			marker := fmt.Sprintf("Not found: %s", result.Name)
			if len(result.Suggestions) > 0 {
				marker += fmt.Sprintf(" (did you mean: %s)", strings.Join(result.Suggestions, ", "))
			}
			blocks = append(blocks, marker)
			continue
		}
		for _, file := range result.Files {
			if file.Err != nil {
				blocks = append(blocks, fmt.Sprintf("File: %s\n%s", file.Path, errText(file.Err)))
				continue
			}
			blocks = append(blocks, fmt.Sprintf("File: %s\n%s", file.Path, file.Content))
		}
		if result.Suppressed > 0 {
			blocks = append(blocks, fmt.Sprintf("(%d more match(es) for %q; repeat the request with a more specific name)",
				result.Suppressed, result.Name))
		}
	}
	return strings.Join(blocks, "\n\n")
}

// formatTodos renders the open-item count followed by each item tagged with
// its file, in scan order.
func formatTodos(todos []vault.Todo) string {
	if len(todos) == 0 {
		return "0 open todo(s)."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d open todo(s):\n", len(todos))
	for _, todo := range todos {
		fmt.Fprintf(&b, "%s: %s\n", todo.Path, strings.TrimSpace(todo.Line))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatWriteResult phrases created-vs-updated, a cosmetic distinction fed
// by the enumerator.
func formatWriteResult(result *vault.WriteResult) string {
	verb := "Updated"
	if result.Created {
		verb = "Created"
	}
	return fmt.Sprintf("%s %s (%d bytes)", verb, result.Path, result.Bytes)
}
