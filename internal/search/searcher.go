package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/vyper-tools/vyperdoc/internal/vyper"
)

// DefaultMaxResults caps search hits when no limit is configured.
const DefaultMaxResults = 20

// Searcher answers full-text queries over extracted contracts.
type Searcher interface {
	// Search executes a query using bleve query string syntax. Supports
	// field scoping (functions:transfer), phrases and wildcards.
	Search(ctx context.Context, queryStr string) ([]*Result, error)

	// Close releases resources held by the searcher.
	Close() error
}

// Result is a single search hit.
type Result struct {
	Name       string   // contract name
	Path       string   // path relative to the contracts root
	Docstring  string   // contract docstring
	Score      float64  // match quality
	Highlights []string // matching snippets with <em> tags
}

// searcher implements Searcher using an in-memory bleve index.
type searcher struct {
	index      bleve.Index
	maxResults int
}

// NewSearcher creates a Searcher over the given contracts. One document is
// indexed per contract, keyed by its relative path.
func NewSearcher(ctx context.Context, contracts []*vyper.Contract, maxResults int) (Searcher, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	if err := indexContracts(ctx, index, contracts); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index contracts: %w", err)
	}

	return &searcher{
		index:      index,
		maxResults: maxResults,
	}, nil
}

// buildIndexMapping creates the index mapping for contract documents.
// Name-like fields use the keyword analyzer for exact matching, prose
// fields use the standard analyzer.
func buildIndexMapping() *mapping.IndexMappingImpl {
	nameMapping := bleve.NewTextFieldMapping()
	nameMapping.Analyzer = "keyword"
	nameMapping.Store = true
	nameMapping.Index = true

	pathMapping := bleve.NewTextFieldMapping()
	pathMapping.Analyzer = "standard"
	pathMapping.Store = true
	pathMapping.Index = true

	// Prose fields are stored for highlighting; term vectors enable phrase
	// queries.
	docstringMapping := bleve.NewTextFieldMapping()
	docstringMapping.Analyzer = "standard"
	docstringMapping.Store = true
	docstringMapping.Index = true
	docstringMapping.IncludeTermVectors = true

	functionDocsMapping := bleve.NewTextFieldMapping()
	functionDocsMapping.Analyzer = "standard"
	functionDocsMapping.Store = true
	functionDocsMapping.Index = true
	functionDocsMapping.IncludeTermVectors = true

	keywordListMapping := bleve.NewTextFieldMapping()
	keywordListMapping.Analyzer = "keyword"
	keywordListMapping.Store = true
	keywordListMapping.Index = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", nameMapping)
	docMapping.AddFieldMappingsAt("path", pathMapping)
	docMapping.AddFieldMappingsAt("docstring", docstringMapping)
	docMapping.AddFieldMappingsAt("functions", keywordListMapping)
	docMapping.AddFieldMappingsAt("function_docs", functionDocsMapping)
	docMapping.AddFieldMappingsAt("events", keywordListMapping)
	docMapping.AddFieldMappingsAt("structs", keywordListMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// indexContracts adds contracts to the bleve index in batches.
func indexContracts(ctx context.Context, index bleve.Index, contracts []*vyper.Contract) error {
	const batchSize = 100

	batch := index.NewBatch()
	for i, contract := range contracts {
		if i%batchSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if err := batch.Index(contract.Path, contractToDocument(contract)); err != nil {
			return fmt.Errorf("failed to add %s to batch: %w", contract.Path, err)
		}

		if batch.Size() >= batchSize {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("failed to execute batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute final batch: %w", err)
		}
	}

	return nil
}

// contractToDocument converts a contract to a bleve document.
func contractToDocument(contract *vyper.Contract) map[string]interface{} {
	functionNames := make([]string, 0, len(contract.Functions))
	var functionDocs strings.Builder
	for _, f := range contract.Functions {
		functionNames = append(functionNames, f.Name)
		if f.Docstring != "" {
			functionDocs.WriteString(f.Docstring)
			functionDocs.WriteString("\n")
		}
	}

	eventNames := make([]string, 0, len(contract.Events))
	for _, e := range contract.Events {
		eventNames = append(eventNames, e.Name)
	}

	structNames := make([]string, 0, len(contract.Structs))
	for _, s := range contract.Structs {
		structNames = append(structNames, s.Name)
	}

	return map[string]interface{}{
		"name":          contract.Name,
		"path":          contract.Path,
		"docstring":     contract.Docstring,
		"functions":     functionNames,
		"function_docs": functionDocs.String(),
		"events":        eventNames,
		"structs":       structNames,
	}
}

// Search executes a query and returns up to maxResults hits, best first.
func (s *searcher) Search(ctx context.Context, queryStr string) ([]*Result, error) {
	limit := s.maxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	query := bleve.NewQueryStringQuery(queryStr)

	searchRequest := bleve.NewSearchRequestOptions(query, limit, 0, false)
	highlightStyle := "html"
	searchRequest.Highlight = bleve.NewHighlight()
	searchRequest.Highlight.Style = &highlightStyle
	searchRequest.Highlight.Fields = []string{"docstring", "function_docs"}
	searchRequest.Fields = []string{"name", "path", "docstring"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]*Result, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		name, _ := hit.Fields["name"].(string)
		path, _ := hit.Fields["path"].(string)
		docstring, _ := hit.Fields["docstring"].(string)

		results = append(results, &Result{
			Name:       name,
			Path:       path,
			Docstring:  docstring,
			Score:      hit.Score,
			Highlights: extractHighlights(hit.Fragments),
		})
	}

	return results, nil
}

// extractHighlights flattens bleve fragments. Limited to 3 snippets per hit
// to keep terminal output short.
func extractHighlights(fragments map[string][]string) []string {
	var highlights []string
	for _, snippets := range fragments {
		highlights = append(highlights, snippets...)
	}

	if len(highlights) > 3 {
		highlights = highlights[:3]
	}

	return highlights
}

// Close releases resources held by the searcher.
func (s *searcher) Close() error {
	if s.index != nil {
		return s.index.Close()
	}
	return nil
}
