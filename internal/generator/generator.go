package generator

import (
	"fmt"

	"github.com/vyper-tools/vyperdoc/internal/builder"
	"github.com/vyper-tools/vyperdoc/internal/vyper"
)

// indexHeader is the fixed preamble of docs/index.rst; one toctree entry per
// contract is appended after it.
const indexHeader = `Vyper Smart Contracts Documentation
================================

.. toctree::
   :maxdepth: 2
   :caption: Contents:

`

// sphinxConf is the complete docs/conf.py written next to the generated
// pages. sphinx-build needs nothing beyond this to build the tree.
const sphinxConf = `# Configuration file for Sphinx documentation

project = 'Vyper Smart Contracts'
copyright = '2023'
author = 'Vyper Developer'

extensions = [
    'sphinx.ext.autodoc',
    'sphinx.ext.napoleon',
    'sphinx.ext.viewcode'
]

templates_path = ['_templates']
exclude_patterns = ['_build', 'Thumbs.db', '.DS_Store']

html_theme = 'sphinx_rtd_theme'
html_static_path = ['_static']
`

// Generator writes a Sphinx documentation tree for extracted contracts.
type Generator interface {
	// Generate writes conf.py, index.rst and one RST page per contract into
	// the docs directory, creating it if needed.
	Generate(contracts []*vyper.Contract) error
}

// generator implements the Generator interface.
type generator struct {
	docsDir string
}

// NewGenerator creates a generator that writes into docsDir.
func NewGenerator(docsDir string) Generator {
	return &generator{docsDir: docsDir}
}

func (g *generator) Generate(contracts []*vyper.Contract) error {
	writer, err := builder.NewAtomicWriter(g.docsDir)
	if err != nil {
		return fmt.Errorf("failed to prepare docs directory: %w", err)
	}
	defer writer.Close()

	if err := writer.WriteFile("conf.py", []byte(sphinxConf)); err != nil {
		return fmt.Errorf("failed to write conf.py: %w", err)
	}

	if err := writer.WriteFile("index.rst", []byte(formatIndex(contracts))); err != nil {
		return fmt.Errorf("failed to write index.rst: %w", err)
	}

	for _, contract := range contracts {
		filename := contract.Name + ".rst"
		if err := writer.WriteFile(filename, []byte(formatContract(contract))); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
	}

	return nil
}
