package builder

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriter handles atomic file writing using the temp → rename pattern,
// so a reader never observes a partially written documentation file.
type AtomicWriter struct {
	outputDir string
	tempDir   string
}

// NewAtomicWriter creates a new atomic writer rooted at outputDir.
func NewAtomicWriter(outputDir string) (*AtomicWriter, error) {
	tempDir := filepath.Join(outputDir, ".tmp")

	// Ensure directories exist
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Clean up stale temp files
	if err := os.RemoveAll(tempDir); err != nil {
		return nil, fmt.Errorf("failed to clean temp directory: %w", err)
	}

	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &AtomicWriter{
		outputDir: outputDir,
		tempDir:   tempDir,
	}, nil
}

// WriteFile writes a file under the output directory atomically.
func (w *AtomicWriter) WriteFile(filename string, data []byte) error {
	// Write to temp file
	tempPath := filepath.Join(w.tempDir, filename)
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Rename to final location (atomic operation)
	finalPath := filepath.Join(w.outputDir, filename)
	if err := os.Rename(tempPath, finalPath); err != nil {
		// Clean up temp file on error
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Close removes the temp directory.
func (w *AtomicWriter) Close() error {
	return os.RemoveAll(w.tempDir)
}
