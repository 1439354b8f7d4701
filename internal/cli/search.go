package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vyper-tools/vyperdoc/internal/builder"
	"github.com/vyper-tools/vyperdoc/internal/config"
	"github.com/vyper-tools/vyperdoc/internal/search"
	"github.com/vyper-tools/vyperdoc/internal/vyper"
)

var (
	searchContractsFlag string
	searchLimitFlag     int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search extracted contract documentation",
	Long: `Search extracts the contracts and runs a full-text query over their
names, docstrings, function documentation and entity names.

The query uses the bleve query string syntax, so terms can be scoped
to a field (name, path, docstring, functions, events, structs,
function_docs).

Examples:
  # Find contracts mentioning transfers
  vyperdoc search transfer

  # Search a specific contracts directory
  vyperdoc search deposit --contracts ./src/contracts

  # Only contracts declaring a function called mint
  vyperdoc search "functions:mint"

  # Cap the number of results
  vyperdoc search vault --limit 5
`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchContractsFlag, "contracts", "", "Contracts directory to search (default from config)")
	searchCmd.Flags().IntVar(&searchLimitFlag, "limit", 0, "Maximum number of results (default from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if searchContractsFlag != "" {
		cfg.Contracts = searchContractsFlag
	}
	if cmd.Flags().Changed("limit") {
		cfg.Search.MaxResults = searchLimitFlag
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return executeSearch(cmd.Context(), cfg, args[0], cmd.OutOrStdout())
}

// executeSearch extracts the contracts, indexes them in memory and prints
// the hits for the query.
func executeSearch(ctx context.Context, cfg *config.Config, query string, out io.Writer) error {
	discovery, err := builder.NewContractDiscovery(cfg.Contracts, cfg.Include, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("failed to configure contract discovery: %w", err)
	}

	pipeline := builder.NewPipeline(cfg.Contracts, discovery, vyper.NewAssembler(vyper.DefaultVocabulary()), nil, nil)
	result, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	searcher, err := search.NewSearcher(ctx, result.Contracts, cfg.Search.MaxResults)
	if err != nil {
		return err
	}
	defer searcher.Close()

	hits, err := searcher.Search(ctx, query)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Fprintf(out, "No results for %q\n", query)
		return nil
	}

	fmt.Fprintf(out, "Found %d result(s) for %q:\n\n", len(hits), query)
	for i, hit := range hits {
		fmt.Fprintf(out, "%d. %s (%s)\n", i+1, hit.Name, hit.Path)
		for _, fragment := range hit.Highlights {
			fmt.Fprintf(out, "   %s\n", stripHighlightTags(fragment))
		}
		if len(hit.Highlights) == 0 && hit.Docstring != "" {
			fmt.Fprintf(out, "   %s\n", summaryLine(hit.Docstring))
		}
	}
	return nil
}

// stripHighlightTags removes the <em> markers the index wraps around
// matched terms; they carry nothing in terminal output.
func stripHighlightTags(fragment string) string {
	fragment = strings.ReplaceAll(fragment, "<em>", "")
	return strings.ReplaceAll(fragment, "</em>", "")
}

// summaryLine returns the first line of a docstring.
func summaryLine(docstring string) string {
	if idx := strings.IndexByte(docstring, '\n'); idx >= 0 {
		return docstring[:idx]
	}
	return docstring
}
