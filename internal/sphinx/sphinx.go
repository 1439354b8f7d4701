package sphinx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	// sphinxBinary is the executable invoked to build the documentation.
	sphinxBinary = "sphinx-build"

	// BuildTimeout is the maximum time allowed for one sphinx-build run.
	BuildTimeout = 5 * time.Minute
)

// BuildRunner executes the sphinx-build binary. Tests substitute a fake.
type BuildRunner interface {
	// Run executes sphinx-build with the given arguments and returns its
	// standard output.
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// execRunner runs the real sphinx-build binary.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(sphinxBinary); err != nil {
		return nil, fmt.Errorf("sphinx-build not found in PATH (install sphinx and sphinx-rtd-theme): %w", err)
	}

	execCtx, cancel := context.WithTimeout(ctx, BuildTimeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, sphinxBinary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("sphinx-build timed out after %s", BuildTimeout)
		}
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("sphinx-build error: %s", stderr.String())
		}
		return nil, fmt.Errorf("sphinx-build failed: %w", err)
	}

	return stdout.Bytes(), nil
}

// Builder drives sphinx-build over a generated docs directory.
type Builder interface {
	// Build runs the configured sphinx builder over docsDir and returns the
	// directory holding the built documentation.
	Build(ctx context.Context, docsDir string) (string, error)
}

// builder implements the Builder interface.
type builder struct {
	builderName string
	runner      BuildRunner
}

// NewBuilder creates a Builder for the named sphinx builder (html, dirhtml
// or singlehtml). A nil runner means the real sphinx-build binary.
func NewBuilder(builderName string, runner BuildRunner) Builder {
	if runner == nil {
		runner = execRunner{}
	}
	return &builder{
		builderName: builderName,
		runner:      runner,
	}
}

// Build writes into docsDir/_build/<builder>, the same layout the standard
// sphinx quickstart Makefile produces.
func (b *builder) Build(ctx context.Context, docsDir string) (string, error) {
	outputDir := filepath.Join(docsDir, "_build", b.builderName)

	if _, err := b.runner.Run(ctx, "-b", b.builderName, docsDir, outputDir); err != nil {
		return "", fmt.Errorf("documentation build failed: %w", err)
	}

	return outputDir, nil
}
