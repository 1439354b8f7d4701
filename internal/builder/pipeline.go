package builder

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/vyper-tools/vyperdoc/internal/vyper"
)

// Pipeline handles the discover → read → extract cycle over a contracts
// directory.
type Pipeline interface {
	// Run discovers contract sources and extracts a Contract from each.
	// Returns the contracts in discovery order plus statistics.
	Run(ctx context.Context) (*Result, error)
}

// Result tracks what was built.
type Result struct {
	Contracts      []*vyper.Contract
	FilesProcessed int
	CacheHits      int
	Issues         int
	Elapsed        time.Duration
}

// pipeline implements Pipeline.
type pipeline struct {
	contractsDir string
	discovery    *ContractDiscovery
	assembler    vyper.Assembler
	cache        *ContractCache
	progress     ProgressReporter
}

// NewPipeline creates a new Pipeline instance. The cache may be nil to
// disable memoization.
func NewPipeline(
	contractsDir string,
	discovery *ContractDiscovery,
	assembler vyper.Assembler,
	cache *ContractCache,
	progress ProgressReporter,
) Pipeline {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	return &pipeline{
		contractsDir: contractsDir,
		discovery:    discovery,
		assembler:    assembler,
		cache:        cache,
		progress:     progress,
	}
}

// Run processes the contracts directory through the complete pipeline.
// Extraction issues are logged but never drop a file: every discovered
// source yields exactly one Contract. The writing and completion
// callbacks are left to the caller, which owns what happens with the
// extracted contracts.
func (p *pipeline) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	result := &Result{Contracts: []*vyper.Contract{}}

	// The contracts directory must exist before any extraction happens
	info, err := os.Stat(p.contractsDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("invalid contracts directory: %s", p.contractsDir)
	}

	p.progress.OnDiscoveryStart()
	files, err := p.discovery.DiscoverContracts()
	if err != nil {
		return nil, fmt.Errorf("failed to discover contracts: %w", err)
	}
	p.progress.OnDiscoveryComplete(len(files))

	p.progress.OnExtractionStart(len(files))

	for _, file := range files {
		// Check for cancellation
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		relPath, err := filepath.Rel(p.contractsDir, file)
		if err != nil {
			return nil, fmt.Errorf("failed to get relative path for %s: %w", file, err)
		}
		relPath = filepath.ToSlash(relPath)

		content, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: failed to read %s: %v", relPath, err)
			p.progress.OnFileProcessed(relPath)
			continue
		}

		var contract *vyper.Contract
		var key string
		if p.cache != nil {
			key = CacheKey(relPath, content)
			if cached, ok := p.cache.Get(key); ok {
				contract = cached
				result.CacheHits++
			}
		}

		if contract == nil {
			contract = p.assembler.Assemble(string(content), relPath)
			if p.cache != nil {
				p.cache.Set(key, contract)
			}
		}

		// Surface extraction issues without dropping the contract
		for _, issue := range contract.Issues() {
			log.Printf("%s: %s", relPath, issue)
			result.Issues++
		}

		result.Contracts = append(result.Contracts, contract)
		result.FilesProcessed++
		p.progress.OnFileProcessed(relPath)
	}

	result.Elapsed = time.Since(startTime)

	return result, nil
}
