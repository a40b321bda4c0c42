// Package blockfile maintains named, marker-delimited blocks inside shell
// startup files. A block is a unique comment marker line followed by one or
// more content lines; blocks are separated by blank lines. Ensure is the
// only mutation path for these shared files: it appends a missing block,
// leaves an identical block alone, and refuses to overwrite a divergent one.
package blockfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/rigup/internal/ports"
)

// Result is the tri-state outcome of ensuring a block.
type Result string

const (
	// ResultApplied indicates the block was appended.
	ResultApplied Result = "applied"
	// ResultSkipped indicates an identical block already exists.
	ResultSkipped Result = "skipped"
	// ResultConflict indicates an existing block's body differs from the
	// desired content; the file was left unchanged.
	ResultConflict Result = "conflict"
)

// Validation errors.
var (
	ErrEmptyMarker   = errors.New("block marker cannot be empty")
	ErrInvalidMarker = errors.New("block marker must be a single comment line")
	ErrEmptyContent  = errors.New("block content cannot be empty")
	ErrBlankLine     = errors.New("block content cannot contain blank lines")
)

// Block is a named fragment idempotently maintained in TargetFile.
type Block struct {
	// Marker is the unique comment line that identifies the block.
	Marker string
	// Content is the literal text inserted after the marker line.
	Content string
	// TargetFile is the path of the startup file, ~-expansion allowed.
	TargetFile string
}

// Validate checks the block's fields.
func (b Block) Validate() error {
	if strings.TrimSpace(b.Marker) == "" {
		return ErrEmptyMarker
	}
	if strings.ContainsRune(b.Marker, '\n') || !strings.HasPrefix(b.Marker, "#") {
		return ErrInvalidMarker
	}
	if strings.TrimSpace(b.Content) == "" {
		return ErrEmptyContent
	}
	// Blocks end at the first blank line, so interior blank lines would
	// make the written block unrecognizable on the next run.
	for _, line := range strings.Split(normalize(b.Content), "\n") {
		if strings.TrimSpace(line) == "" {
			return ErrBlankLine
		}
	}
	return nil
}

// Writer ensures blocks inside startup files.
type Writer struct {
	fs ports.FileSystem
}

// NewWriter creates a Writer over the given filesystem.
func NewWriter(fs ports.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Ensure makes the target file contain the block exactly once.
// A missing file is treated as empty and created on write.
func (w *Writer) Ensure(block Block) (Result, error) {
	result, content, err := w.resolve(block)
	if err != nil {
		return result, err
	}
	if result != ResultApplied {
		return result, nil
	}
	if err := w.fs.WriteFile(ports.ExpandPath(block.TargetFile), []byte(content), 0o644); err != nil {
		return ResultApplied, fmt.Errorf("write %s: %w", block.TargetFile, err)
	}
	return ResultApplied, nil
}

// Check reports what Ensure would do, without writing anything.
func (w *Writer) Check(block Block) (Result, error) {
	result, _, err := w.resolve(block)
	return result, err
}

// resolve computes the Ensure result and, for ResultApplied, the new file
// content.
func (w *Writer) resolve(block Block) (Result, string, error) {
	if err := block.Validate(); err != nil {
		return ResultConflict, "", err
	}

	path := ports.ExpandPath(block.TargetFile)
	var existing string
	if w.fs.Exists(path) {
		data, err := w.fs.ReadFile(path)
		if err != nil {
			return ResultConflict, "", fmt.Errorf("read %s: %w", block.TargetFile, err)
		}
		existing = string(data)
	}

	body, found := findBlock(existing, block.Marker)
	if found {
		if body == normalize(block.Content) {
			return ResultSkipped, "", nil
		}
		return ResultConflict, "", nil
	}

	return ResultApplied, appendBlock(existing, block), nil
}

// findBlock locates the marker as an exact line and returns the block body:
// the text between the marker line and the next blank line or end of file.
func findBlock(content, marker string) (string, bool) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line != marker {
			continue
		}
		var body []string
		for _, next := range lines[i+1:] {
			if strings.TrimSpace(next) == "" {
				break
			}
			body = append(body, next)
		}
		return strings.Join(body, "\n"), true
	}
	return "", false
}

// appendBlock returns the file content with the block appended: a blank
// separator line (unless the file is empty), the marker line, then the
// content, ending with a trailing newline.
func appendBlock(existing string, block Block) string {
	var b strings.Builder

	if existing != "" {
		b.WriteString(existing)
		if !strings.HasSuffix(existing, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(block.Marker)
	b.WriteString("\n")
	b.WriteString(normalize(block.Content))
	b.WriteString("\n")

	return b.String()
}

// normalize strips trailing newlines so block bodies compare line-wise.
func normalize(content string) string {
	return strings.TrimRight(content, "\n")
}
