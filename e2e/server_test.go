// E2E tests for noteguard.
//
// These drive the real MCP server through an in-memory client session, so
// the full wire path is exercised: JSON-RPC framing, tool schemas, handler
// dispatch, and the vault enforcement layer underneath.
package e2e

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteguard/noteguard/internal/server"
	"github.com/noteguard/noteguard/internal/vault"
)

// session wires a client to a fresh server over in-memory transports and
// returns the client session plus the vault directory it serves.
func session(t *testing.T) (*mcp.ClientSession, string) {
	t.Helper()
	dir := t.TempDir()
	root, err := vault.ResolveRoot(dir)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	srv := server.New(root, log)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ctx := context.Background()
	_, err = srv.MCP().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "noteguard-e2e", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs, root.Path()
}

func callText(t *testing.T, cs *mcp.ClientSession, tool string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestE2E_ListsAllFourTools(t *testing.T) {
	cs, _ := session(t)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"list_files", "read_files", "scan_todos", "write_file"} {
		assert.True(t, names[want], want)
	}
	assert.Len(t, res.Tools, 4)
}

func TestE2E_WriteListReadRoundTrip(t *testing.T) {
	cs, _ := session(t)

	text, isErr := callText(t, cs, "write_file", map[string]any{
		"path":    "notes/idea.md",
		"content": "remember this",
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Created notes/idea.md")

	text, isErr = callText(t, cs, "list_files", nil)
	require.False(t, isErr, text)
	assert.Contains(t, text, "notes/idea.md")

	text, isErr = callText(t, cs, "read_files", map[string]any{
		"names": []string{"notes/idea.md"},
	})
	require.False(t, isErr, text)
	assert.Contains(t, text, "File: notes/idea.md")
	assert.Contains(t, text, "remember this")
}

func TestE2E_TraversalRejectedOverTheWire(t *testing.T) {
	cs, vaultDir := session(t)

	text, isErr := callText(t, cs, "write_file", map[string]any{
		"path":    "../escape.md",
		"content": "payload",
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "validation error")

	_, statErr := os.Stat(filepath.Join(filepath.Dir(vaultDir), "escape.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestE2E_SymlinkedDirectoryStaysInvisible(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires symlinks")
	}
	cs, vaultDir := session(t)

	outside := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(outside, "secret.md"), []byte("- [ ] leak\n"), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(vaultDir, "linked")))

	text, isErr := callText(t, cs, "list_files", nil)
	require.False(t, isErr)
	assert.NotContains(t, text, "secret.md")

	text, isErr = callText(t, cs, "scan_todos", nil)
	require.False(t, isErr)
	assert.NotContains(t, text, "secret.md")
	assert.Contains(t, text, "0 open todo(s)")
}

func TestE2E_ScanTodos(t *testing.T) {
	cs, _ := session(t)

	_, isErr := callText(t, cs, "write_file", map[string]any{
		"path":    "notes/a.md",
		"content": "- [ ] first\n- [x] done\n- [ ] second\n",
	})
	require.False(t, isErr)

	text, isErr := callText(t, cs, "scan_todos", nil)
	require.False(t, isErr)
	assert.Contains(t, text, "2 open todo(s)")
	assert.Contains(t, text, "notes/a.md: - [ ] first")
	assert.Contains(t, text, "notes/a.md: - [ ] second")
}

func TestE2E_ReadBatchWithMisses(t *testing.T) {
	cs, _ := session(t)

	_, isErr := callText(t, cs, "write_file", map[string]any{
		"path": "hit.md", "content": "found",
	})
	require.False(t, isErr)

	text, isErr := callText(t, cs, "read_files", map[string]any{
		"names": []string{"hit.md", "nothing-like-this.md"},
	})
	require.False(t, isErr)
	assert.Contains(t, text, "File: hit.md")
	assert.Contains(t, text, "Not found: nothing-like-this.md")
}
