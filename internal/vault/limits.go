package vault

// Hard ceilings the enforcement layer applies to every operation. These are
// part of the tool contract, not tuning knobs.
const (
	// MaxReadSize is the byte ceiling for any single file read. Files over
	// this size are rejected from a stat call, before any content is loaded.
	MaxReadSize = 10 << 20 // 10 MiB

	// MaxWriteSize is the byte ceiling for write_file content. Checked
	// before any filesystem call.
	MaxWriteSize = 1_000_000

	// MaxReadNames bounds how many names one read batch may carry.
	MaxReadNames = 50

	// MaxPartialMatches caps how many files a single partial name query can
	// resolve to. Without it a batch of MaxReadNames broad queries would
	// multiply into an unbounded fan-out of reads.
	MaxPartialMatches = 5

	// MaxPathLength is the ceiling on the raw candidate path string.
	MaxPathLength = 512

	// MaxPathDepth is the ceiling on /-separated path segments.
	MaxPathDepth = 10
)

// writeExtensions is the allowlist for the write path: non-executable,
// non-interpretable document formats only. Extensions are compared
// case-insensitively; a path with no extension is rejected.
var writeExtensions = map[string]bool{
	".md":     true,
	".txt":    true,
	".csv":    true,
	".json":   true,
	".yaml":   true,
	".yml":    true,
	".canvas": true,
}

// todoExtension restricts the to-do scanner to markdown files.
const todoExtension = ".md"
