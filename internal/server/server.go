// Package server exposes the vault over MCP stdio.
//
// Four tools, one vault. Every handler runs synchronously to completion,
// translates the vault's typed errors into caller-safe text, and logs one
// record per invocation on the operator channel. Logs go to stderr; stdout
// belongs to the wire.
package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/noteguard/noteguard/internal/vault"
	"github.com/noteguard/noteguard/internal/version"
)

// genericFailure is the only thing an untrusted caller sees for errors
// outside the taxonomy. Native OS error text can leak filesystem layout,
// usernames, or mount structure.
const genericFailure = "operation failed: internal error"

// Server wires the vault core to an MCP server instance.
type Server struct {
	root *vault.Root
	log  *logrus.Logger
	mcp  *mcp.Server
}

// New creates a Server serving the given vault root.
func New(root *vault.Root, log *logrus.Logger) *Server {
	s := &Server{root: root, log: log}
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "noteguard",
		Version: version.Version,
	}, nil)
	s.register(srv)
	s.mcp = srv
	return s
}

// Run serves MCP over stdio until the context is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// MCP returns the underlying SDK server, for connecting alternative
// transports in tests.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

func (s *Server) register(srv *mcp.Server) {
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_files",
		Description: "List every file in the vault, most recently modified first. Paths are relative to the vault root. Hidden (dot-prefixed) entries and symlinks are never listed.",
		Annotations: readOnly,
	}, s.handleListFiles)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "read_files",
		Description: "Read one or more files from the vault.\n\nArgs:\n  names: Up to 50 file names. Each may be an exact relative path, a case-insensitive path, or a partial file name (substring match, capped at 5 files per name).\n\nReturns each file's content prefixed with its path. Names that match nothing get an inline not-found marker; the rest of the batch is still returned.",
		Annotations: readOnly,
	}, s.handleReadFiles)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "scan_todos",
		Description: "Scan every markdown file in the vault for unchecked checklist items (lines starting with \"- [ ]\"). Returns the open item count and each item tagged with its file.",
		Annotations: readOnly,
	}, s.handleScanTodos)

	falseVal := false
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "write_file",
		Description: "Create or update a file in the vault.\n\nArgs:\n  path: Relative path inside the vault (e.g. 'notes/idea.md'). No dot-prefixed segments; extension must be one of .md .txt .csv .json .yaml .yml .canvas.\n  content: File content, at most 1,000,000 bytes.\n\nReturns whether the file was created or updated.",
		Annotations: &mcp.ToolAnnotations{DestructiveHint: &falseVal, IdempotentHint: true},
	}, s.handleWriteFile)
}

// emptyInput is the schema for tools that take no arguments.
type emptyInput struct{}

type readFilesInput struct {
	Names []string `json:"names" jsonschema:"File names to read (exact path, case-insensitive path, or partial file name)"`
}

type writeFileInput struct {
	Path    string `json:"path" jsonschema:"Relative path inside the vault (e.g. notes/idea.md)"`
	Content string `json:"content" jsonschema:"File content (max 1,000,000 bytes)"`
}

func (s *Server) handleListFiles(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, any, error) {
	op := s.begin("list_files")
	entries, err := s.root.List()
	if err != nil {
		return s.fail(op, err), nil, nil
	}
	s.done(op, nil)
	return textResult(formatListing(entries)), nil, nil
}

func (s *Server) handleReadFiles(ctx context.Context, req *mcp.CallToolRequest, in readFilesInput) (*mcp.CallToolResult, any, error) {
	op := s.begin("read_files")
	if len(in.Names) == 0 {
		err := vault.NewValidationError("names must not be empty")
		return s.fail(op, err), nil, nil
	}
	results, err := s.root.ReadBatch(in.Names)
	if err != nil {
		return s.fail(op, err), nil, nil
	}
	s.done(op, nil)
	return textResult(formatReadResults(results, s.callerMessage(op))), nil, nil
}

func (s *Server) handleScanTodos(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, any, error) {
	op := s.begin("scan_todos")
	todos, err := s.root.ScanTodos()
	if err != nil {
		return s.fail(op, err), nil, nil
	}
	s.done(op, nil)
	return textResult(formatTodos(todos)), nil, nil
}

func (s *Server) handleWriteFile(ctx context.Context, req *mcp.CallToolRequest, in writeFileInput) (*mcp.CallToolResult, any, error) {
	op := s.begin("write_file")
	result, err := s.root.Write(in.Path, []byte(in.Content))
	if err != nil {
		return s.fail(op, err), nil, nil
	}
	s.done(op, logrus.Fields{"path": result.Path, "created": result.Created})
	return textResult(formatWriteResult(result)), nil, nil
}

// operation carries the per-invocation log context.
type operation struct {
	id   string
	tool string
}

func (s *Server) begin(tool string) operation {
	op := operation{id: uuid.NewString(), tool: tool}
	s.log.WithFields(logrus.Fields{"op": op.id, "tool": tool}).Debug("tool invoked")
	return op
}

func (s *Server) done(op operation, fields logrus.Fields) {
	entry := s.log.WithFields(logrus.Fields{"op": op.id, "tool": op.tool})
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Info("tool completed")
}

// fail logs the error and builds the caller-facing error result. Errors in
// the taxonomy are echoed verbatim; everything else is flattened to the
// generic failure string.
func (s *Server) fail(op operation, err error) *mcp.CallToolResult {
	return errorResult(s.callerMessage(op)(err))
}

// callerMessage returns the error-to-text policy bound to one operation's
// log context, so batch formatting can apply it per file.
func (s *Server) callerMessage(op operation) func(error) string {
	return func(err error) string {
		entry := s.log.WithFields(logrus.Fields{"op": op.id, "tool": op.tool})
		switch {
		case vault.IsValidationError(err), vault.IsSymlinkError(err), vault.IsTooLargeError(err), vault.IsNotFoundError(err):
			entry.WithField("reason", err.Error()).Info("tool rejected")
			return err.Error()
		default:
			entry.WithError(err).Error("unexpected I/O failure")
			return genericFailure
		}
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}
