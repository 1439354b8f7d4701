package builder

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/vyper-tools/vyperdoc/internal/vyper"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// ContractDiscovery finds Vyper source files under a contracts directory,
// refined by include and exclude glob patterns.
type ContractDiscovery struct {
	contractsDir    string
	includePatterns []compiledPattern
	excludePatterns []compiledPattern
}

// NewContractDiscovery creates a new discovery instance. Empty include
// patterns mean every .vy file is a candidate.
func NewContractDiscovery(contractsDir string, includePatterns, excludePatterns []string) (*ContractDiscovery, error) {
	cd := &ContractDiscovery{
		contractsDir: contractsDir,
	}

	// Compile glob patterns
	for _, pattern := range includePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		cd.includePatterns = append(cd.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		cd.excludePatterns = append(cd.excludePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return cd, nil
}

// DiscoverContracts walks the contracts directory and returns matching
// source files in walk order (lexical within each directory).
func (cd *ContractDiscovery) DiscoverContracts() ([]string, error) {
	files := []string{}

	err := filepath.Walk(cd.contractsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip directories
		if info.IsDir() {
			return nil
		}

		// Get relative path for pattern matching
		relPath, err := filepath.Rel(cd.contractsDir, path)
		if err != nil {
			return err
		}

		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if cd.Matches(relPath) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// Matches reports whether a slash-separated relative path is a contract
// candidate: a .vy file passing the include and exclude patterns.
func (cd *ContractDiscovery) Matches(relPath string) bool {
	if filepath.Ext(relPath) != vyper.SourceExtension {
		return false
	}

	if cd.shouldExclude(relPath) {
		return false
	}

	// No include patterns means everything is included
	if len(cd.includePatterns) == 0 {
		return true
	}

	return cd.matchesAnyPattern(relPath, cd.includePatterns)
}

// shouldExclude checks if a path matches any exclude pattern. Parent
// directories are checked too, so the bare pattern "mocks" excludes
// everything under mocks/.
func (cd *ContractDiscovery) shouldExclude(relPath string) bool {
	if cd.matchesAnyPattern(relPath, cd.excludePatterns) {
		return true
	}

	for dir := path.Dir(relPath); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if cd.matchesAnyPattern(dir, cd.excludePatterns) {
			return true
		}
	}

	return false
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (cd *ContractDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Special handling: if path is in root (no slash), also try matching against
	// patterns with **/ prefix removed. This makes "**/*.vy" match both "token.vy"
	// and "nested/token.vy" as users would expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			// If pattern starts with **/, try matching without it
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
