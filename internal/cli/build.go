package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vyper-tools/vyperdoc/internal/builder"
	"github.com/vyper-tools/vyperdoc/internal/config"
	"github.com/vyper-tools/vyperdoc/internal/generator"
	"github.com/vyper-tools/vyperdoc/internal/sphinx"
	"github.com/vyper-tools/vyperdoc/internal/vyper"
)

var (
	buildOutputFlag string
	skipSphinxFlag  bool
	watchFlag       bool
	quietFlag       bool
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [contracts-dir]",
	Short: "Extract contract documentation and build the Sphinx site",
	Long: `Build scans the contracts directory for Vyper sources, extracts their
public interface and docstrings, and writes one reStructuredText page
per contract plus an index and a Sphinx configuration.

Unless --skip-sphinx is given, sphinx-build then renders the pages to
HTML under docs/_build. The sphinx and sphinx-rtd-theme Python
packages must be installed for that step.

Examples:
  # Build documentation for ./contracts
  vyperdoc build

  # Build a specific directory into a chosen output root
  vyperdoc build ./src/contracts --output ./site

  # Generate only the RST pages
  vyperdoc build --skip-sphinx

  # Rebuild whenever a contract changes
  vyperdoc build --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutputFlag, "output", "o", "", "Output directory root (default from config)")
	buildCmd.Flags().BoolVar(&skipSphinxFlag, "skip-sphinx", false, "Generate RST pages without running sphinx-build")
	buildCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for contract changes and rebuild")
	buildCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling build...")
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Command line arguments override the config file
	if len(args) > 0 {
		cfg.Contracts = args[0]
	}
	if buildOutputFlag != "" {
		cfg.Output = buildOutputFlag
	}
	if skipSphinxFlag {
		cfg.Sphinx.Enabled = false
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	discovery, err := builder.NewContractDiscovery(cfg.Contracts, cfg.Include, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("failed to configure contract discovery: %w", err)
	}

	cache, err := builder.NewDefaultContractCache()
	if err != nil {
		return fmt.Errorf("failed to create contract cache: %w", err)
	}
	defer cache.Close()

	assembler := vyper.NewAssembler(vyper.DefaultVocabulary())
	progress := NewCLIProgressReporter(quietFlag)
	pipeline := builder.NewPipeline(cfg.Contracts, discovery, assembler, cache, progress)
	htmlBuilder := sphinx.NewBuilder(cfg.Sphinx.Builder, nil)
	out := cmd.OutOrStdout()

	if err := executeBuild(ctx, cfg, pipeline, progress, htmlBuilder, out); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}

	// Watch mode: the watcher logs each change batch, so rebuilds run
	// without progress bars. The shared cache keeps untouched files cheap.
	silent := builder.NewPipeline(cfg.Contracts, discovery, assembler, cache, nil)
	watcher, err := builder.NewContractWatcher(cfg.Contracts, discovery, cfg.Watch.Debounce(), func(ctx context.Context, changed []string) {
		if err := executeBuild(ctx, cfg, silent, &builder.NoOpProgressReporter{}, htmlBuilder, out); err != nil {
			log.Printf("Rebuild failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}

	watcher.Start(ctx)
	if !quietFlag {
		log.Println("Watching for contract changes. Press Ctrl+C to stop.")
	}
	<-ctx.Done()
	watcher.Stop()
	if !quietFlag {
		log.Println("Watch mode stopped")
	}
	return nil
}

// executeBuild runs one extraction pass, writes the documentation tree
// and, when enabled, renders it with sphinx-build.
func executeBuild(ctx context.Context, cfg *config.Config, pipeline builder.Pipeline, progress builder.ProgressReporter, htmlBuilder sphinx.Builder, out io.Writer) error {
	result, err := pipeline.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("build cancelled")
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	progress.OnWritingDocs()
	if err := generator.NewGenerator(cfg.DocsDir()).Generate(result.Contracts); err != nil {
		return fmt.Errorf("failed to write documentation: %w", err)
	}
	progress.OnComplete(result)

	if !cfg.Sphinx.Enabled {
		fmt.Fprintf(out, "Documentation written to %s\n", cfg.DocsDir())
		return nil
	}

	htmlDir, err := htmlBuilder.Build(ctx, cfg.DocsDir())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Documentation built successfully in %s\n", htmlDir)
	return nil
}
