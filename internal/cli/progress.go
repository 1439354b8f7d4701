package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/vyper-tools/vyperdoc/internal/builder"
)

// CLIProgressReporter implements progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet      bool
	extractBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	log.Println("Discovering contracts...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(contracts int) {
	if c.quiet {
		return
	}
	log.Printf("Found %d contract file(s)\n", contracts)
	fmt.Println()
}

func (c *CLIProgressReporter) OnExtractionStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.extractBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting contracts"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string) {
	if c.quiet {
		return
	}
	if c.extractBar != nil {
		c.extractBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnWritingDocs() {
	if c.quiet {
		return
	}
	log.Println("Writing documentation...")
}

func (c *CLIProgressReporter) OnComplete(result *builder.Result) {
	if c.quiet {
		return
	}

	fmt.Println()
	fmt.Printf("✓ Documented %d contract(s) in %.1fs\n", result.FilesProcessed, result.Elapsed.Seconds())
	fmt.Printf("  Cache hits: %d\n", result.CacheHits)
	fmt.Printf("  Issues:     %d\n", result.Issues)
}
